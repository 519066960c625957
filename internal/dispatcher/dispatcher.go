package dispatcher

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dshills/autobullet/internal/dispatcher/hook"
	"github.com/dshills/autobullet/internal/input"
)

// Built-in command names.
const (
	CommandType        = "type"
	CommandDefaultType = "default:type"
	CommandDeleteLeft  = "deleteLeft"
)

// ArgText is the argument key carrying the text of a type command.
const ArgText = "text"

// Dispatcher executes commands and keystrokes.
// It is driven from a single goroutine, the host's event loop.
type Dispatcher struct {
	registry *Registry
	hooks    *hook.Manager
}

// New creates a dispatcher with an empty registry and hook manager.
func New() *Dispatcher {
	return &Dispatcher{
		registry: NewRegistry(),
		hooks:    hook.NewManager(),
	}
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Hooks returns the keystroke hook manager.
func (d *Dispatcher) Hooks() *hook.Manager {
	return d.hooks
}

// Execute runs the named command.
// A panicking handler is converted into an error wrapping ErrPanic.
func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) (err error) {
	fn, ok := d.registry.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, name)
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("%w for %s: %v\n%s", ErrPanic, name, r, stack[:n])
		}
	}()

	return fn(ctx, args)
}

// Type runs the keystroke hooks and, unless one of them suppresses the
// keystroke, forwards its (possibly modified) text to default:type.
func (d *Dispatcher) Type(ctx context.Context, ks *input.Keystroke) error {
	if !d.hooks.Run(ctx, ks) {
		return nil
	}
	return d.Execute(ctx, CommandDefaultType, map[string]any{ArgText: ks.Text})
}

// TextArg extracts the text argument of a type command.
func TextArg(args map[string]any) (string, bool) {
	text, ok := args[ArgText].(string)
	return text, ok
}
