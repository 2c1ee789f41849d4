package keymap

import "sync"

// ContextKeys is the boolean context-key store bindings' When
// expressions read from. Safe for concurrent use.
type ContextKeys struct {
	mu   sync.RWMutex
	keys map[string]bool
}

// NewContextKeys creates an empty store.
func NewContextKeys() *ContextKeys {
	return &ContextKeys{keys: make(map[string]bool)}
}

// SetContextKey sets a key's value.
func (c *ContextKeys) SetContextKey(name string, value bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[name] = value
}

// Get returns a key's value. Unset keys are false.
func (c *ContextKeys) Get(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keys[name]
}

// Snapshot returns a copy of all keys.
func (c *ContextKeys) Snapshot() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]bool, len(c.keys))
	for k, v := range c.keys {
		out[k] = v
	}
	return out
}
