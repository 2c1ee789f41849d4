package keymap

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownAction indicates the action name is not registered.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateAction indicates the action name is already taken.
	ErrDuplicateAction = errors.New("duplicate action")
)

// Action is an editor operation invocable from a binding.
type Action func()

// Registry maps action names to implementations and stores the
// binding table. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	actions  map[string]Action
	bindings []Binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// RegisterAction adds an action under the given name.
func (r *Registry) RegisterAction(name string, fn Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("register action %q: %w", name, ErrDuplicateAction)
	}
	r.actions[name] = fn
	return nil
}

// Invoke runs the named action.
func (r *Registry) Invoke(name string) error {
	r.mu.RLock()
	fn, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("invoke %q: %w", name, ErrUnknownAction)
	}
	fn()
	return nil
}

// Bind appends bindings to the table.
func (r *Registry) Bind(bindings ...Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, bindings...)
}

// Bindings returns a copy of the binding table.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// BindingsFor returns the bindings mapped to the given action.
func (r *Registry) BindingsFor(action string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for _, b := range r.bindings {
		if b.Action == action {
			out = append(out, b)
		}
	}
	return out
}
