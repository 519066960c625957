package api

import (
	"context"

	"github.com/dshills/autobullet/internal/event"
	"github.com/dshills/autobullet/internal/event/topic"
	"github.com/dshills/autobullet/internal/input"
)

// CommandHandler executes a named command.
type CommandHandler func(ctx context.Context, args map[string]any) error

// KeystrokeHandler inspects a keystroke before the host types it.
// It may modify ks in place. Returning false suppresses the keystroke.
type KeystrokeHandler func(ctx context.Context, ks *input.Keystroke) bool

// Host is the editor as seen by an extension.
type Host interface {
	// ActiveEditor returns the editor that has focus, if any.
	ActiveEditor() (TextEditor, bool)

	// ExecuteCommand runs a registered command.
	ExecuteCommand(ctx context.Context, name string, args map[string]any) error

	// RegisterCommand registers a named command.
	RegisterCommand(name string, fn CommandHandler) (Disposable, error)

	// InterceptKeystrokes installs a handler that runs before the host
	// types a keystroke. Handlers with higher priority run first.
	InterceptKeystrokes(name string, priority int, fn KeystrokeHandler) (Disposable, error)

	// BindKey routes a key to a command, shadowing any existing binding
	// until disposed.
	BindKey(key input.Key, command string) (Disposable, error)

	// Subscribe registers an event handler on the host's bus.
	Subscribe(pattern topic.Topic, fn event.HandlerFunc) (Disposable, error)
}
