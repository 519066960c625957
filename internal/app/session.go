package app

import (
	"context"
	"sync"

	"github.com/dshills/autobullet/internal/config"
	"github.com/dshills/autobullet/internal/editor"
	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/plugin"
	"github.com/dshills/autobullet/internal/plugin/autobullet"
)

// Session is a workspace with the auto-bullet extension activated.
type Session struct {
	mu sync.Mutex

	logger    *logging.Logger
	workspace *editor.Workspace
	manager   *plugin.Manager
	bullets   *autobullet.Controller

	// unbind removes the bindings applied from the config keymap.
	unbind []func()
}

// NewSession creates a workspace, activates the extension and applies cfg.
func NewSession(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	ws := editor.New(editor.WithLogger(logger))
	s := &Session{
		logger:    logger.WithComponent("app"),
		workspace: ws,
		manager:   plugin.NewManager(ws, logger),
		bullets:   autobullet.New(autobullet.WithEnabled(cfg.AutoBullet.Enabled)),
	}

	if err := s.manager.Register(s.bullets); err != nil {
		ws.Close(ctx)
		return nil, &InitError{Component: "extensions", Err: err}
	}
	if err := s.manager.ActivateAll(ctx); err != nil {
		ws.Close(ctx)
		return nil, &InitError{Component: "extensions", Err: err}
	}
	s.bindKeys(cfg)
	return s, nil
}

// Workspace returns the session's workspace.
func (s *Session) Workspace() *editor.Workspace { return s.workspace }

// Bullets returns the auto-bullet controller.
func (s *Session) Bullets() *autobullet.Controller { return s.bullets }

// Apply updates the session from a reloaded configuration.
func (s *Session) Apply(ctx context.Context, cfg *config.Config) {
	s.logger.SetLevel(cfg.Logging().Level)
	state := s.bullets.SetEnabled(ctx, cfg.AutoBullet.Enabled)
	s.bindKeys(cfg)
	s.logger.Info("config applied, %s %s", autobullet.Name, state)
}

// bindKeys replaces the config keymap bindings. They stack above the
// bindings installed by extensions.
func (s *Session) bindKeys(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.unbind) - 1; i >= 0; i-- {
		s.unbind[i]()
	}
	s.unbind = s.unbind[:0]

	for _, b := range cfg.Bindings() {
		s.unbind = append(s.unbind, s.workspace.Keymap().Bind(b.Key, b.Command))
		s.logger.Debug("bound %s", b)
	}
}

// Close deactivates extensions and closes the workspace.
func (s *Session) Close(ctx context.Context) error {
	err := s.manager.DeactivateAll(ctx)
	s.workspace.Close(ctx)
	return err
}
