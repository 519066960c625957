package hook

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/autobullet/internal/input"
)

// PanicHandler is called when a hook panics. The keystroke continues to the
// next hook as if the panicking hook had returned true.
type PanicHandler func(name string, recovered any)

// Registration is the disposal token returned by Manager.Register.
type Registration struct {
	id       string
	name     string
	manager  *Manager
	disposed atomic.Bool
}

// ID returns the unique registration identifier.
func (r *Registration) ID() string { return r.id }

// Name returns the registered hook's name.
func (r *Registration) Name() string { return r.name }

// Active reports whether the hook is still registered.
func (r *Registration) Active() bool { return !r.disposed.Load() }

// Dispose unregisters the hook. Disposing twice is a no-op.
func (r *Registration) Dispose() {
	if r.disposed.Swap(true) {
		return
	}
	r.manager.remove(r.id)
}

type entry struct {
	id   string
	hook KeystrokeHook
}

// Manager manages keystroke hooks with priority-based ordering.
type Manager struct {
	mu      sync.RWMutex
	entries []entry
	onPanic PanicHandler
}

// NewManager creates a new hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetPanicHandler sets the handler called when a hook panics.
func (m *Manager) SetPanicHandler(h PanicHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onPanic = h
}

// Register adds a keystroke hook and returns its disposal token.
// Hooks with equal priority run in registration order.
func (m *Manager) Register(h KeystrokeHook) (*Registration, error) {
	if h == nil {
		return nil, ErrNilHook
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{id: uuid.NewString(), hook: h}
	m.entries = append(m.entries, e)
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].hook.Priority() > m.entries[j].hook.Priority()
	})

	return &Registration{id: e.id, name: h.Name(), manager: m}, nil
}

// Run runs all hooks in priority order.
// Returns false if any hook suppresses the keystroke.
func (m *Manager) Run(ctx context.Context, ks *input.Keystroke) bool {
	m.mu.RLock()
	entries := make([]entry, len(m.entries))
	copy(entries, m.entries)
	onPanic := m.onPanic
	m.mu.RUnlock()

	for _, e := range entries {
		if !m.runOne(ctx, e.hook, ks, onPanic) {
			return false
		}
	}
	return true
}

func (m *Manager) runOne(ctx context.Context, h KeystrokeHook, ks *input.Keystroke, onPanic PanicHandler) (cont bool) {
	defer func() {
		if r := recover(); r != nil {
			if onPanic != nil {
				onPanic(h.Name(), r)
			}
			cont = true
		}
	}()
	return h.PreType(ctx, ks)
}

// Count returns the number of registered hooks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Names returns the names of all hooks in run order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.hook.Name()
	}
	return names
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.id == id {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			return
		}
	}
}
