package suggest

import "github.com/google/uuid"

// TriggerOptions describes how a suggestion session was requested.
type TriggerOptions struct {
	// Explicit is true when the user invoked the trigger directly
	// (as opposed to auto-trigger while typing).
	Explicit bool

	// Retrigger is true when this trigger immediately replaces an
	// active session, which suppresses the widget hide in between.
	Retrigger bool
}

// Session is one suggestion interaction, from trigger to accept or
// cancel. At most one session is live at any time; the Coordinator
// owns the current session exclusively.
type Session struct {
	// ID uniquely identifies the session. Stale engine notifications
	// are detected by comparing IDs.
	ID string

	// Explicit records the trigger reason.
	Explicit bool

	// Retrigger records whether this session replaced another.
	Retrigger bool

	// Frozen marks the result set as final; later async updates for
	// this session are not accepted.
	Frozen bool
}

// NewSession creates a session for the given trigger.
func NewSession(opts TriggerOptions) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Explicit:  opts.Explicit,
		Retrigger: opts.Retrigger,
	}
}

// Auto returns true if the session was auto-triggered while typing.
func (s *Session) Auto() bool {
	return !s.Explicit
}

// Same reports whether other is the same session.
func (s *Session) Same(other *Session) bool {
	return s != nil && other != nil && s.ID == other.ID
}
