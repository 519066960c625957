package editor

import (
	"context"
	"fmt"

	"github.com/dshills/autobullet/internal/dispatcher"
	"github.com/dshills/autobullet/internal/dispatcher/hook"
	"github.com/dshills/autobullet/internal/event"
	"github.com/dshills/autobullet/internal/event/topic"
	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/plugin/api"
)

var _ api.Host = (*Workspace)(nil)

// ActiveEditor returns the active editor.
func (w *Workspace) ActiveEditor() (api.TextEditor, bool) {
	if w.active == nil {
		return nil, false
	}
	return &textEditor{doc: w.active}, true
}

// ExecuteCommand runs a registered command.
func (w *Workspace) ExecuteCommand(ctx context.Context, name string, args map[string]any) error {
	return w.dispatcher.Execute(ctx, name, args)
}

// RegisterCommand registers a command.
func (w *Workspace) RegisterCommand(name string, fn api.CommandHandler) (api.Disposable, error) {
	if fn == nil {
		return nil, dispatcher.ErrInvalidCommand
	}
	reg, err := w.dispatcher.Registry().Register(name, dispatcher.CommandFunc(fn))
	if err != nil {
		return nil, fmt.Errorf("register command %q: %w", name, err)
	}
	return reg, nil
}

// InterceptKeystrokes installs a keystroke hook.
func (w *Workspace) InterceptKeystrokes(name string, priority int, fn api.KeystrokeHandler) (api.Disposable, error) {
	if fn == nil {
		return nil, hook.ErrNilHook
	}
	reg, err := w.dispatcher.Hooks().Register(hook.NewKeystrokeFunc(name, priority, fn))
	if err != nil {
		return nil, fmt.Errorf("intercept keystrokes %q: %w", name, err)
	}
	return reg, nil
}

// BindKey binds a key to a command until the binding is disposed.
func (w *Workspace) BindKey(key input.Key, command string) (api.Disposable, error) {
	if key == input.KeyNone || key == input.KeyRune {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if command == "" {
		return nil, dispatcher.ErrInvalidCommand
	}
	return api.DisposableFunc(w.keymap.Bind(key, command)), nil
}

// Subscribe registers an event handler on the workspace bus.
func (w *Workspace) Subscribe(pattern topic.Topic, fn event.HandlerFunc) (api.Disposable, error) {
	sub, err := w.bus.Subscribe(pattern, fn)
	if err != nil {
		return nil, err
	}
	return sub, nil
}
