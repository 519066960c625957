package autobullet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/autobullet/internal/bullet"
	"github.com/dshills/autobullet/internal/dispatcher"
	"github.com/dshills/autobullet/internal/event"
	"github.com/dshills/autobullet/internal/event/events"
	"github.com/dshills/autobullet/internal/event/topic"
	"github.com/dshills/autobullet/internal/input"
	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/plugin"
	"github.com/dshills/autobullet/internal/plugin/api"
)

// Extension identifiers.
const (
	// Name is the extension name.
	Name = "markdown-auto-bullets"

	// CommandDeleteLeft is the command bound to Backspace.
	CommandDeleteLeft = Name + ".deleteLeft"

	// Language is the only language the extension acts on.
	Language = "markdown"

	hookName     = Name + ".type"
	hookPriority = 100
)

// triggers are the host events that can change the active language.
var triggers = []topic.Topic{
	events.TopicActiveEditorChanged,
	events.TopicDocumentOpened,
	events.TopicDocumentLanguageChanged,
}

// Controller is the auto-bullet extension.
type Controller struct {
	mu      sync.Mutex
	host    api.Host
	logger  *logging.Logger
	enabled bool
	state   State
	hook    api.Disposable
}

var _ plugin.Extension = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithEnabled sets whether interception may activate at all.
func WithEnabled(enabled bool) Option {
	return func(c *Controller) {
		c.enabled = enabled
	}
}

// New creates an inactive controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		logger:  logging.Nop(),
		enabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements plugin.Extension.
func (c *Controller) Name() string { return Name }

// Activate registers the backspace command and key binding, subscribes to
// the language triggers and evaluates the active editor once.
func (c *Controller) Activate(ctx context.Context, ec *plugin.Context) error {
	c.mu.Lock()
	c.host = ec.Host
	if ec.Logger != nil {
		c.logger = ec.Logger.WithComponent(Name)
	}
	c.state = StateInactive
	c.mu.Unlock()

	cmd, err := ec.Host.RegisterCommand(CommandDeleteLeft, c.deleteLeft)
	if err != nil {
		return err
	}
	ec.Subscriptions.Add(cmd)

	bind, err := ec.Host.BindKey(input.KeyBackspace, CommandDeleteLeft)
	if err != nil {
		return err
	}
	ec.Subscriptions.Add(bind)

	for _, t := range triggers {
		sub, err := ec.Host.Subscribe(t, c.onTrigger)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
		ec.Subscriptions.Add(sub)
	}

	c.Sync(ctx)
	return nil
}

// Deactivate forces the controller inactive.
func (c *Controller) Deactivate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.detachLocked()
	return nil
}

// State returns the current interception state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetEnabled turns interception on or off and re-evaluates the state.
func (c *Controller) SetEnabled(ctx context.Context, enabled bool) State {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
	return c.Sync(ctx)
}

// Sync attaches the keystroke hook when the active document is markdown
// and detaches it otherwise. Calling it repeatedly is harmless.
func (c *Controller) Sync(context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.host == nil {
		return c.state
	}

	want := c.enabled && c.markdownActive()
	switch {
	case want && c.state == StateInactive:
		reg, err := c.host.InterceptKeystrokes(hookName, hookPriority, c.onKeystroke)
		if err != nil {
			c.logger.Error("attach keystroke hook: %v", err)
			return c.state
		}
		c.hook = reg
		c.state = StateActive
		c.logger.Debug("interception active")
	case !want && c.state == StateActive:
		c.detachLocked()
		c.logger.Debug("interception inactive")
	}
	return c.state
}

func (c *Controller) onTrigger(ctx context.Context, _ event.Event) error {
	c.Sync(ctx)
	return nil
}

// markdownActive must be called with mu held.
func (c *Controller) markdownActive() bool {
	ed, ok := c.host.ActiveEditor()
	return ok && ed.LanguageID() == Language
}

// detachLocked must be called with mu held.
func (c *Controller) detachLocked() {
	if c.hook != nil {
		c.hook.Dispose()
		c.hook = nil
	}
	c.state = StateInactive
}

// onKeystroke handles a keystroke while interception is active. Any fault
// is logged and the keystroke goes through unmodified.
func (c *Controller) onKeystroke(ctx context.Context, ks *input.Keystroke) (forward bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("keystroke handler panicked: %v", r)
			forward = true
		}
	}()

	if !ks.IsNewline() {
		return true
	}

	c.mu.Lock()
	host := c.host
	c.mu.Unlock()

	ed, ok := host.ActiveEditor()
	if !ok || ed.LanguageID() != Language {
		c.mu.Lock()
		c.detachLocked()
		c.mu.Unlock()
		return true
	}

	cursor := ed.Cursor()
	text, err := ed.LineText(cursor.Line)
	if err != nil {
		c.logger.Warn("read line %d: %v", cursor.Line, err)
		return true
	}

	if bullet.IsBlank(text) {
		if err := clearLine(ctx, ed, cursor.Line); err != nil {
			c.logger.Error("clear blank bullet on line %d: %v", cursor.Line, err)
			return true
		}
		return false
	}

	prefix, ok := bullet.Parse(text)
	if !ok {
		return true
	}
	if cursor.Column >= 0 && cursor.Column <= len(text) && strings.HasPrefix(text[cursor.Column:], prefix) {
		return true
	}
	ks.Text += prefix
	return true
}

// deleteLeft clears a blank bullet line while interception is active and
// otherwise performs the host's ordinary deleteLeft.
func (c *Controller) deleteLeft(ctx context.Context, _ map[string]any) error {
	c.mu.Lock()
	host := c.host
	active := c.state == StateActive
	c.mu.Unlock()

	if active && c.clearBlankBullet(ctx, host) {
		return nil
	}
	return host.ExecuteCommand(ctx, dispatcher.CommandDeleteLeft, nil)
}

// clearBlankBullet clears the cursor line if it is a blank bullet in a
// markdown editor and reports whether it did.
func (c *Controller) clearBlankBullet(ctx context.Context, host api.Host) (cleared bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("backspace handler panicked: %v", r)
			cleared = false
		}
	}()

	ed, ok := host.ActiveEditor()
	if !ok {
		return false
	}
	if ed.LanguageID() != Language {
		c.Sync(ctx)
		return false
	}

	line := ed.Cursor().Line
	text, err := ed.LineText(line)
	if err != nil || !bullet.IsBlank(text) {
		return false
	}
	if err := clearLine(ctx, ed, line); err != nil {
		c.logger.Error("clear blank bullet on line %d: %v", line, err)
		return false
	}
	return true
}

// clearLine replaces the full text of line with the empty string.
func clearLine(ctx context.Context, ed api.TextEditor, line int) error {
	r, err := ed.LineRange(line)
	if err != nil {
		return err
	}
	return ed.Edit(ctx, func(b api.EditBuilder) error {
		b.Replace(r, "")
		return nil
	})
}
