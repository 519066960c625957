package hook

import (
	"context"

	"github.com/dshills/autobullet/internal/input"
)

// Hook is the base interface for all keystroke hooks.
type Hook interface {
	// Name returns an identifier used in logs and diagnostics.
	Name() string

	// Priority returns the hook priority. Higher values run first.
	Priority() int
}

// KeystrokeHook runs before a keystroke reaches the default type handler.
type KeystrokeHook interface {
	Hook

	// PreType may modify ks. Returns false to suppress the default handler.
	PreType(ctx context.Context, ks *input.Keystroke) bool
}

// KeystrokeFunc wraps a function as a KeystrokeHook.
type KeystrokeFunc struct {
	name     string
	priority int
	fn       func(ctx context.Context, ks *input.Keystroke) bool
}

// NewKeystrokeFunc creates a new KeystrokeFunc hook.
func NewKeystrokeFunc(name string, priority int, fn func(ctx context.Context, ks *input.Keystroke) bool) *KeystrokeFunc {
	return &KeystrokeFunc{
		name:     name,
		priority: priority,
		fn:       fn,
	}
}

// Name implements Hook.
func (f *KeystrokeFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *KeystrokeFunc) Priority() int { return f.priority }

// PreType implements KeystrokeHook.
func (f *KeystrokeFunc) PreType(ctx context.Context, ks *input.Keystroke) bool {
	if f.fn == nil {
		return true
	}
	return f.fn(ctx, ks)
}
