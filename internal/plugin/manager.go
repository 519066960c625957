package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/plugin/api"
)

// Manager manages the lifecycle of extensions.
type Manager struct {
	mu sync.RWMutex

	host   api.Host
	logger *logging.Logger

	// Registered extensions by name
	extensions map[string]*entry

	// Registration order (for deterministic iteration)
	order []string

	// Event handlers (protected by mu)
	eventHandlers []EventHandler
}

type entry struct {
	ext   Extension
	state State
	err   error
	subs  *api.Disposables
}

// EventHandler handles extension manager events.
// Handlers must be non-blocking and should not call back into the Manager.
// Panics in handlers are recovered.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents an extension manager event.
type ManagerEvent struct {
	Type      ManagerEventType
	Extension string
	Error     error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventActivated is emitted when an extension is activated.
	EventActivated ManagerEventType = iota
	// EventDeactivated is emitted when an extension is deactivated.
	EventDeactivated
	// EventError is emitted when activation or deactivation fails.
	EventError
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventActivated:
		return "activated"
	case EventDeactivated:
		return "deactivated"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// NewManager creates an extension manager for host.
func NewManager(host api.Host, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		host:       host,
		logger:     logger.WithComponent("plugin"),
		extensions: make(map[string]*entry),
	}
}

// Register adds an extension in the unloaded state.
func (m *Manager) Register(ext Extension) error {
	if ext == nil || ext.Name() == "" {
		return ErrInvalidExtension
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := ext.Name()
	if _, exists := m.extensions[name]; exists {
		return fmt.Errorf("extension %q: %w", name, ErrAlreadyRegistered)
	}
	m.extensions[name] = &entry{ext: ext, state: StateUnloaded}
	m.order = append(m.order, name)
	return nil
}

// Activate activates a registered extension.
// On failure the extension's registrations are disposed and it moves to
// the error state.
func (m *Manager) Activate(ctx context.Context, name string) error {
	m.mu.Lock()
	e, ok := m.extensions[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("extension %q: %w", name, ErrExtensionNotFound)
	}
	if !e.state.CanActivate() {
		m.mu.Unlock()
		return fmt.Errorf("extension %q: %w", name, ErrAlreadyActive)
	}
	e.state = StateActivating
	e.err = nil
	subs := &api.Disposables{}
	e.subs = subs
	m.mu.Unlock()

	ec := &Context{
		Host:          m.host,
		Logger:        m.logger.WithField("extension", name),
		Subscriptions: subs,
	}
	err := guard(func() error { return e.ext.Activate(ctx, ec) })

	m.mu.Lock()
	if err != nil {
		e.state = StateError
		e.err = err
		e.subs = nil
	} else {
		e.state = StateActive
	}
	m.mu.Unlock()

	if err != nil {
		subs.Dispose()
		m.logger.Error("activate %s: %v", name, err)
		m.emitEvent(ManagerEvent{Type: EventError, Extension: name, Error: err})
		return fmt.Errorf("activate extension %q: %w", name, err)
	}

	m.logger.Debug("activated %s", name)
	m.emitEvent(ManagerEvent{Type: EventActivated, Extension: name})
	return nil
}

// ActivateAll activates every inactive extension in registration order.
func (m *Manager) ActivateAll(ctx context.Context) error {
	var errs []error
	for _, name := range m.List() {
		if state, _ := m.State(name); !state.CanActivate() {
			continue
		}
		if err := m.Activate(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Deactivate deactivates an active extension and disposes its
// registrations, even if Deactivate fails.
func (m *Manager) Deactivate(ctx context.Context, name string) error {
	m.mu.Lock()
	e, ok := m.extensions[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("extension %q: %w", name, ErrExtensionNotFound)
	}
	if e.state != StateActive {
		m.mu.Unlock()
		return fmt.Errorf("extension %q: %w", name, ErrNotActive)
	}
	e.state = StateDeactivating
	subs := e.subs
	m.mu.Unlock()

	err := guard(func() error { return e.ext.Deactivate(ctx) })
	subs.Dispose()

	m.mu.Lock()
	e.subs = nil
	if err != nil {
		e.state = StateError
		e.err = err
	} else {
		e.state = StateUnloaded
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("deactivate %s: %v", name, err)
		m.emitEvent(ManagerEvent{Type: EventError, Extension: name, Error: err})
		return fmt.Errorf("deactivate extension %q: %w", name, err)
	}

	m.logger.Debug("deactivated %s", name)
	m.emitEvent(ManagerEvent{Type: EventDeactivated, Extension: name})
	return nil
}

// DeactivateAll deactivates active extensions in reverse registration order.
func (m *Manager) DeactivateAll(ctx context.Context) error {
	names := m.List()
	var errs []error
	for i := len(names) - 1; i >= 0; i-- {
		if state, _ := m.State(names[i]); state != StateActive {
			continue
		}
		if err := m.Deactivate(ctx, names[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// State returns the state of an extension.
func (m *Manager) State(name string) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.extensions[name]
	if !ok {
		return StateUnloaded, false
	}
	return e.state, true
}

// Err returns the last activation or deactivation error of an extension.
func (m *Manager) Err(name string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.extensions[name]; ok {
		return e.err
	}
	return nil
}

// List returns extension names in registration order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// Subscribe registers an event handler and returns a function removing it.
func (m *Manager) Subscribe(handler EventHandler) func() {
	if handler == nil {
		return func() {}
	}

	m.mu.Lock()
	m.eventHandlers = append(m.eventHandlers, handler)
	index := len(m.eventHandlers) - 1
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if index < len(m.eventHandlers) {
			m.eventHandlers[index] = nil
		}
	}
}

func (m *Manager) emitEvent(event ManagerEvent) {
	m.mu.RLock()
	handlers := make([]EventHandler, len(m.eventHandlers))
	copy(handlers, m.eventHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Warn("manager event handler panicked: %v", r)
				}
			}()
			handler(event)
		}()
	}
}

// guard runs fn, converting a panic into an error wrapping ErrExtensionPanic.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrExtensionPanic, r)
		}
	}()
	return fn()
}
