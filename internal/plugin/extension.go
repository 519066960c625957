package plugin

import (
	"context"

	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/plugin/api"
)

// Extension is a unit of editor behavior activated by the Manager.
type Extension interface {
	// Name returns the unique extension name.
	Name() string

	// Activate installs the extension into the host.
	Activate(ctx context.Context, ec *Context) error

	// Deactivate tears the extension down. Registrations added to the
	// Context's Subscriptions are disposed by the Manager afterwards.
	Deactivate(ctx context.Context) error
}

// Context is passed to Extension.Activate.
type Context struct {
	// Host is the editor API.
	Host api.Host

	// Logger is scoped to the extension.
	Logger *logging.Logger

	// Subscriptions collects registrations to dispose on deactivation.
	Subscriptions *api.Disposables
}
