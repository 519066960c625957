package dispatcher

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// CommandFunc executes a command with optional arguments.
type CommandFunc func(ctx context.Context, args map[string]any) error

type command struct {
	id string
	fn CommandFunc
}

// Registry manages command registration by exact name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]command),
	}
}

// CommandRegistration is the disposal token returned by Register.
type CommandRegistration struct {
	id       string
	name     string
	registry *Registry
	disposed atomic.Bool
}

// Name returns the registered command name.
func (r *CommandRegistration) Name() string { return r.name }

// Dispose unregisters the command. Disposing twice is a no-op, and a
// disposed token never removes a later registration under the same name.
func (r *CommandRegistration) Dispose() {
	if r.disposed.Swap(true) {
		return
	}
	r.registry.remove(r.name, r.id)
}

// Register adds a command. Names are unique; registering a taken name
// returns ErrCommandExists.
func (r *Registry) Register(name string, fn CommandFunc) (*CommandRegistration, error) {
	if name == "" || fn == nil {
		return nil, ErrInvalidCommand
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[name]; ok {
		return nil, ErrCommandExists
	}

	id := uuid.NewString()
	r.commands[name] = command{id: id, fn: fn}
	return &CommandRegistration{id: id, name: name, registry: r}, nil
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (CommandFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.commands[name]
	return c.fn, ok
}

// Has checks if a command exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

func (r *Registry) remove(name, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.commands[name]; ok && c.id == id {
		delete(r.commands, name)
	}
}
