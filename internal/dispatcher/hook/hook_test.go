package hook

import (
	"context"
	"reflect"
	"testing"

	"github.com/dshills/autobullet/internal/input"
)

func TestManagerPriorityOrder(t *testing.T) {
	m := NewManager()

	var order []string
	record := func(name string) func(context.Context, *input.Keystroke) bool {
		return func(context.Context, *input.Keystroke) bool {
			order = append(order, name)
			return true
		}
	}

	for _, h := range []*KeystrokeFunc{
		NewKeystrokeFunc("user", 10, record("user")),
		NewKeystrokeFunc("system", 1000, record("system")),
		NewKeystrokeFunc("plugin-a", 200, record("plugin-a")),
		NewKeystrokeFunc("plugin-b", 200, record("plugin-b")),
	} {
		if _, err := m.Register(h); err != nil {
			t.Fatalf("Register error = %v", err)
		}
	}

	if !m.Run(context.Background(), &input.Keystroke{Text: "a"}) {
		t.Fatal("Run returned false with no suppressing hook")
	}

	want := []string{"system", "plugin-a", "plugin-b", "user"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !reflect.DeepEqual(m.Names(), want) {
		t.Errorf("Names() = %v, want %v", m.Names(), want)
	}
}

func TestManagerSuppressAndModify(t *testing.T) {
	m := NewManager()
	ranAfter := false

	_, _ = m.Register(NewKeystrokeFunc("append", 300, func(_ context.Context, ks *input.Keystroke) bool {
		ks.Text += "- "
		return true
	}))
	_, _ = m.Register(NewKeystrokeFunc("suppress", 200, func(_ context.Context, ks *input.Keystroke) bool {
		return ks.Text != "\n- "
	}))
	_, _ = m.Register(NewKeystrokeFunc("after", 100, func(context.Context, *input.Keystroke) bool {
		ranAfter = true
		return true
	}))

	ks := &input.Keystroke{Text: "\n"}
	if m.Run(context.Background(), ks) {
		t.Error("expected keystroke to be suppressed")
	}
	if ks.Text != "\n- " {
		t.Errorf("keystroke text = %q", ks.Text)
	}
	if ranAfter {
		t.Error("hook after a suppressing hook should not run")
	}
}

func TestRegistrationDispose(t *testing.T) {
	m := NewManager()
	calls := 0

	reg, err := m.Register(NewKeystrokeFunc("count", 100, func(context.Context, *input.Keystroke) bool {
		calls++
		return true
	}))
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if reg.ID() == "" || reg.Name() != "count" || !reg.Active() {
		t.Fatalf("unexpected registration %+v", reg)
	}

	m.Run(context.Background(), &input.Keystroke{})
	reg.Dispose()
	reg.Dispose()
	m.Run(context.Background(), &input.Keystroke{})

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if m.Count() != 0 {
		t.Errorf("expected 0 hooks, got %d", m.Count())
	}
	if reg.Active() {
		t.Error("disposed registration reports active")
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	m := NewManager()

	var panicked string
	m.SetPanicHandler(func(name string, _ any) { panicked = name })

	_, _ = m.Register(NewKeystrokeFunc("bad", 200, func(context.Context, *input.Keystroke) bool {
		panic("boom")
	}))
	reached := false
	_, _ = m.Register(NewKeystrokeFunc("good", 100, func(context.Context, *input.Keystroke) bool {
		reached = true
		return true
	}))

	if !m.Run(context.Background(), &input.Keystroke{Text: "x"}) {
		t.Error("panicking hook must not suppress the keystroke")
	}
	if panicked != "bad" {
		t.Errorf("panic handler got %q", panicked)
	}
	if !reached {
		t.Error("hooks after a panicking hook did not run")
	}
}

func TestRegisterNil(t *testing.T) {
	if _, err := NewManager().Register(nil); err == nil {
		t.Error("expected error for nil hook")
	}
}

func TestNilFuncContinues(t *testing.T) {
	h := NewKeystrokeFunc("nil", 0, nil)
	if !h.PreType(context.Background(), &input.Keystroke{}) {
		t.Error("nil func should continue")
	}
}
