package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/autobullet/internal/editor"
	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/plugin/lua"
)

// ModuleName is the name scripts require.
const ModuleName = "ks"

// Runner executes scenario scripts against one workspace.
// A Runner is not safe for concurrent use; give each goroutine its own
// Runner and Workspace.
type Runner struct {
	ws      *editor.Workspace
	logger  *logging.Logger
	output  io.Writer
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithOutput sets the writer receiving print output from scripts.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.output = w
		}
	}
}

// WithTimeout bounds each script run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner creates a runner driving ws.
func NewRunner(ws *editor.Workspace, opts ...Option) *Runner {
	r := &Runner{
		ws:      ws,
		logger:  logging.Nop(),
		output:  os.Stdout,
		timeout: lua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")
	return r
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	state, mod, err := r.newState()
	if err != nil {
		return err
	}
	defer state.Close()

	r.logger.Debug("running %s", filepath.Base(path))
	if err := state.DoFile(ctx, path); err != nil {
		return &Error{Script: path, Err: mod.failure, Lua: err}
	}
	return nil
}

// RunString executes code. name identifies the script in errors.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	state, mod, err := r.newState()
	if err != nil {
		return err
	}
	defer state.Close()

	if err := state.DoString(ctx, code); err != nil {
		return &Error{Script: name, Err: mod.failure, Lua: err}
	}
	return nil
}

func (r *Runner) newState() (*lua.State, *module, error) {
	state, err := lua.NewState(
		lua.WithExecutionTimeout(r.timeout),
		lua.WithOutput(r.output),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("script: create state: %w", err)
	}
	mod := &module{ws: r.ws}
	state.PreloadModule(ModuleName, mod.loader)
	return state, mod, nil
}
