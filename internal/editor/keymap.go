package editor

import (
	"sync"

	"github.com/dshills/autobullet/internal/dispatcher"
	"github.com/dshills/autobullet/internal/input"
)

// Keymap maps keys to command names. Bindings for the same key stack: the
// most recent binding wins until it is removed.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[input.Key][]*binding
}

type binding struct {
	command string
}

// NewKeymap creates a keymap with the default bindings.
func NewKeymap() *Keymap {
	km := &Keymap{bindings: make(map[input.Key][]*binding)}
	km.Bind(input.KeyBackspace, dispatcher.CommandDeleteLeft)
	return km
}

// Bind binds key to command and returns a function removing that binding.
func (km *Keymap) Bind(key input.Key, command string) (unbind func()) {
	b := &binding{command: command}

	km.mu.Lock()
	km.bindings[key] = append(km.bindings[key], b)
	km.mu.Unlock()

	return func() { km.remove(key, b) }
}

// Lookup returns the command bound to key.
func (km *Keymap) Lookup(key input.Key) (string, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	stack := km.bindings[key]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1].command, true
}

func (km *Keymap) remove(key input.Key, b *binding) {
	km.mu.Lock()
	defer km.mu.Unlock()

	stack := km.bindings[key]
	for i, other := range stack {
		if other == b {
			km.bindings[key] = append(stack[:i:i], stack[i+1:]...)
			return
		}
	}
}
