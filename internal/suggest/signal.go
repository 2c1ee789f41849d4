package suggest

import (
	"sync/atomic"

	"github.com/dshills/suggest/internal/config"
)

// Context key names bound into the keybinding precondition system.
const (
	// ContextKeyAcceptOnEnter gates the Enter accept binding.
	ContextKeyAcceptOnEnter = "acceptSuggestionOnEnter"
)

// ContextKeySetter stores boolean context keys for the keybinding
// layer's precondition expressions.
type ContextKeySetter interface {
	SetContextKey(name string, value bool)
}

// Signal mirrors one configuration field into a keybinding context
// key. The value is re-derived on construction and on every
// configuration change; it holds no other state.
type Signal struct {
	key    string
	derive func(config.Config) bool
	keys   ContextKeySetter
	value  atomic.Bool
	sub    *config.Subscription
}

// NewSignal creates a signal that keeps the context key in sync with
// the derived configuration value.
func NewSignal(key string, derive func(config.Config) bool, m *config.Manager, keys ContextKeySetter) *Signal {
	s := &Signal{key: key, derive: derive, keys: keys}
	s.update(m.Current())
	s.sub = m.Notifier().Subscribe(func(change config.Change) {
		s.update(change.New)
	})
	return s
}

// NewAcceptOnEnterSignal mirrors suggest.accept_on_enter into
// ContextKeyAcceptOnEnter.
func NewAcceptOnEnterSignal(m *config.Manager, keys ContextKeySetter) *Signal {
	return NewSignal(ContextKeyAcceptOnEnter, func(cfg config.Config) bool {
		return cfg.Suggest.AcceptOnEnter
	}, m, keys)
}

// Value returns the current mirrored value.
func (s *Signal) Value() bool {
	return s.value.Load()
}

// Key returns the context key name this signal maintains.
func (s *Signal) Key() string {
	return s.key
}

// Dispose stops tracking configuration changes. Safe to call multiple
// times.
func (s *Signal) Dispose() {
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

func (s *Signal) update(cfg config.Config) {
	v := s.derive(cfg)
	s.value.Store(v)
	if s.keys != nil {
		s.keys.SetContextKey(s.key, v)
	}
}
