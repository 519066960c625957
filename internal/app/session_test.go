package app

import (
	"context"
	"testing"

	"github.com/dshills/autobullet/internal/config"
	"github.com/dshills/autobullet/internal/editor"
	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/plugin/autobullet"
)

func newTestSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSessionContinuesBullets(t *testing.T) {
	s := newTestSession(t, nil)
	ctx := context.Background()

	doc, err := s.Workspace().OpenDocument(ctx, "- Lorem Ipsum", editor.LanguageMarkdown)
	if err != nil {
		t.Fatal(err)
	}
	doc.CursorToEnd()
	if s.Bullets().State() != autobullet.StateActive {
		t.Fatalf("state = %s, want active", s.Bullets().State())
	}

	if err := s.Workspace().PressKey(ctx, input.KeyEnter, 0); err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "- Lorem Ipsum\n- " {
		t.Errorf("text = %q", doc.Text())
	}
}

func TestSessionDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.AutoBullet.Enabled = false
	s := newTestSession(t, cfg)
	ctx := context.Background()

	if _, err := s.Workspace().OpenDocument(ctx, "- a", editor.LanguageMarkdown); err != nil {
		t.Fatal(err)
	}
	if s.Bullets().State() != autobullet.StateInactive {
		t.Errorf("state = %s, want inactive", s.Bullets().State())
	}

	cfg.AutoBullet.Enabled = true
	s.Apply(ctx, cfg)
	if s.Bullets().State() != autobullet.StateActive {
		t.Errorf("state after Apply = %s, want active", s.Bullets().State())
	}
}

func TestSessionKeymap(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap = map[string]string{"delete": "deleteLeft"}
	s := newTestSession(t, cfg)
	km := s.Workspace().Keymap()

	if cmd, ok := km.Lookup(input.KeyDelete); !ok || cmd != "deleteLeft" {
		t.Errorf("delete bound to %q, %v", cmd, ok)
	}
	if cmd, _ := km.Lookup(input.KeyBackspace); cmd != autobullet.CommandDeleteLeft {
		t.Errorf("backspace bound to %q, want the extension command", cmd)
	}

	s.Apply(context.Background(), config.Default())
	if _, ok := km.Lookup(input.KeyDelete); ok {
		t.Error("reload should remove bindings dropped from the keymap")
	}
}
