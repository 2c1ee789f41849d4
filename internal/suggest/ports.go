package suggest

import (
	"context"

	"github.com/dshills/suggest/internal/snippet"
)

// Engine is the suggestion-computation collaborator. Trigger returns
// immediately; results arrive later through Listener notifications.
type Engine interface {
	// Trigger requests a new suggestion session. Any in-flight
	// computation is superseded.
	Trigger(opts TriggerOptions)

	// Cancel tears down the active computation. When retrigger is
	// true a new trigger follows immediately and the presentation
	// surface should not hide in between.
	Cancel(retrigger bool)

	// Subscribe registers a listener for session notifications.
	// The returned function removes the subscription.
	Subscribe(l Listener) (unsubscribe func())
}

// Listener receives session notifications from the engine. All
// notifications are delivered on the editor's UI-logic goroutine.
type Listener interface {
	// OnTriggered fires when the engine begins computing.
	OnTriggered(s *Session, auto bool)

	// OnSuggest fires with computed candidates. frozen=true signals
	// the result set is final.
	OnSuggest(s *Session, set *CandidateSet, frozen, auto bool)

	// OnCancelled fires when the session ends without an accept.
	OnCancelled(s *Session, retrigger bool)
}

// Surface is the presentation collaborator that renders candidates
// and owns the focused index.
type Surface interface {
	// ShowTriggered signals an opening session. auto controls whether
	// the surface shows immediately or waits for first results.
	ShowTriggered(auto bool)

	// ShowSuggestions renders the candidate set with the given focus.
	// frozen=true means the surface should stop showing a loading
	// indicator.
	ShowSuggestions(set *CandidateSet, focused int, frozen, auto bool)

	// SetFocus moves the rendered focus to the given index.
	SetFocus(index int)

	// FocusedIndex returns the currently focused candidate index.
	// ok is false when nothing is focused.
	FocusedIndex() (index int, ok bool)

	// IsDetailsVisible reports whether the details sub-view is open.
	IsDetailsVisible() bool

	// CollapseDetails closes the details sub-view, keeping the list.
	CollapseDetails()

	// ToggleDetails toggles the details sub-view.
	ToggleDetails()

	// Hide removes the widget entirely.
	Hide()
}

// Inserter applies snippet text around the document cursor.
type Inserter interface {
	// Insert replaces [cursor-before, cursor+after) with the snippet
	// text and positions the cursor on the first tab stop.
	Insert(sn *snippet.Snippet, before, after int64) error
}

// CommandRunner executes named follow-up commands.
type CommandRunner interface {
	Execute(ctx context.Context, name string, args ...any) error
}

// ErrorSink receives failures that must never surface to the caller
// of a coordinator operation.
type ErrorSink interface {
	OnUnexpectedError(err error)
}
