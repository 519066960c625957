package dispatcher

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/autobullet/internal/dispatcher/hook"
	"github.com/dshills/autobullet/internal/input"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	noop := func(context.Context, map[string]any) error { return nil }

	reg, err := r.Register("b", noop)
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if _, err := r.Register("a", noop); err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if _, err := r.Register("b", noop); !errors.Is(err, ErrCommandExists) {
		t.Errorf("expected ErrCommandExists, got %v", err)
	}
	if _, err := r.Register("", noop); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", err)
	}
	if !reflect.DeepEqual(r.List(), []string{"a", "b"}) {
		t.Errorf("List() = %v", r.List())
	}

	reg.Dispose()
	if r.Has("b") {
		t.Error("disposed command still registered")
	}

	// A stale token must not remove a new registration under the same name.
	if _, err := r.Register("b", noop); err != nil {
		t.Fatalf("re-Register error = %v", err)
	}
	reg.Dispose()
	if !r.Has("b") {
		t.Error("stale dispose removed a newer registration")
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}

func TestDispatcherExecute(t *testing.T) {
	d := New()

	var got map[string]any
	_, _ = d.Registry().Register("echo", func(_ context.Context, args map[string]any) error {
		got = args
		return nil
	})

	if err := d.Execute(context.Background(), "echo", map[string]any{"x": 1}); err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if got["x"] != 1 {
		t.Errorf("args = %v", got)
	}

	if err := d.Execute(context.Background(), "missing", nil); !errors.Is(err, ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", err)
	}
}

func TestDispatcherExecutePanic(t *testing.T) {
	d := New()
	_, _ = d.Registry().Register("boom", func(context.Context, map[string]any) error {
		panic("boom")
	})

	if err := d.Execute(context.Background(), "boom", nil); !errors.Is(err, ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", err)
	}
}

func TestDispatcherType(t *testing.T) {
	d := New()

	var typed []string
	_, _ = d.Registry().Register(CommandDefaultType, func(_ context.Context, args map[string]any) error {
		text, _ := TextArg(args)
		typed = append(typed, text)
		return nil
	})

	ctx := context.Background()
	if err := d.Type(ctx, &input.Keystroke{Text: "a"}); err != nil {
		t.Fatalf("Type error = %v", err)
	}

	reg, _ := d.Hooks().Register(hook.NewKeystrokeFunc("bullets", 100, func(_ context.Context, ks *input.Keystroke) bool {
		if ks.Text == "x" {
			return false
		}
		ks.Text += "- "
		return true
	}))

	_ = d.Type(ctx, &input.Keystroke{Text: "\n"})
	_ = d.Type(ctx, &input.Keystroke{Text: "x"})
	reg.Dispose()
	_ = d.Type(ctx, &input.Keystroke{Text: "\n"})

	want := []string{"a", "\n- ", "\n"}
	if !reflect.DeepEqual(typed, want) {
		t.Errorf("typed = %q, want %q", typed, want)
	}
}

func TestTextArg(t *testing.T) {
	if text, ok := TextArg(map[string]any{ArgText: "\n"}); !ok || text != "\n" {
		t.Errorf("TextArg = %q, %v", text, ok)
	}
	if _, ok := TextArg(map[string]any{ArgText: 3}); ok {
		t.Error("non-string text accepted")
	}
	if _, ok := TextArg(nil); ok {
		t.Error("nil args accepted")
	}
}
