// Package command implements the named-command registry that runs
// follow-up actions after a suggestion is accepted.
package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownCommand indicates the command name is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDuplicateCommand indicates the command name is already taken.
	ErrDuplicateCommand = errors.New("duplicate command")
)

// Handler executes a command with its declared arguments.
type Handler func(ctx context.Context, args ...any) error

// Registry maps command names to handlers. It is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under the given name.
func (r *Registry) Register(name string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateCommand)
	}
	r.handlers[name] = h
	return nil
}

// Execute runs the named command.
func (r *Registry) Execute(ctx context.Context, name string, args ...any) error {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("execute %q: %w", name, ErrUnknownCommand)
	}
	return h(ctx, args...)
}

// Has reports whether a command is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered command names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	return out
}
