package suggest

import (
	"github.com/dshills/suggest/internal/event"
	"github.com/dshills/suggest/internal/history"
	"github.com/dshills/suggest/internal/log"
	"github.com/dshills/suggest/internal/textdoc"
)

// WordProviderName tags the built-in provider whose candidates are
// verbatim words already typed by the user. Accepting one of its
// candidates emits no usage signal.
const WordProviderName = "words"

// Coordinator owns the suggestion session lifecycle. It subscribes to
// engine notifications, forwards state to the presentation surface,
// and drives navigation and the accept path.
//
// All methods must be called from the editor's single UI-logic
// goroutine; engine notifications are delivered on the same goroutine.
type Coordinator struct {
	engine   Engine
	surface  Surface
	doc      *textdoc.Document
	cursor   *textdoc.Cursor
	hist     *history.History
	inserter Inserter
	commands CommandRunner
	bus      *event.Bus
	errs     ErrorSink
	logger   *log.Logger

	suppressed string

	current *Session
	set     *CandidateSet
	nav     *NavigationState

	unsubscribe func()
	disposed    bool
}

// Options configures a Coordinator. Engine, Surface, Doc, Cursor,
// History, and Inserter are required; the rest default to inert
// implementations.
type Options struct {
	Engine   Engine
	Surface  Surface
	Doc      *textdoc.Document
	Cursor   *textdoc.Cursor
	History  *history.History
	Inserter Inserter
	Commands CommandRunner
	Bus      *event.Bus
	Errors   ErrorSink
	Logger   *log.Logger

	// PageSize is the navigation page-step size.
	PageSize int

	// SuppressedProvider tags the provider whose accepts emit no
	// usage signal. Defaults to WordProviderName.
	SuppressedProvider string
}

// NewCoordinator creates a coordinator and subscribes it to the
// engine's notifications.
func NewCoordinator(opts Options) *Coordinator {
	c := &Coordinator{
		engine:     opts.Engine,
		surface:    opts.Surface,
		doc:        opts.Doc,
		cursor:     opts.Cursor,
		hist:       opts.History,
		inserter:   opts.Inserter,
		commands:   opts.Commands,
		bus:        opts.Bus,
		errs:       opts.Errors,
		logger:     opts.Logger,
		suppressed: opts.SuppressedProvider,
		nav:        NewNavigationState(opts.PageSize),
	}
	if c.logger == nil {
		c.logger = log.Null
	}
	if c.suppressed == "" {
		c.suppressed = WordProviderName
	}
	if c.engine != nil {
		c.unsubscribe = c.engine.Subscribe(c)
	}
	return c
}

// Trigger requests a new suggestion session. Any in-flight session is
// superseded. Engine failures surface through the cancel path, never
// as an error here.
func (c *Coordinator) Trigger(explicit, retrigger bool) {
	if c.disposed {
		return
	}
	c.engine.Trigger(TriggerOptions{Explicit: explicit, Retrigger: retrigger})
}

// OnTriggered implements Listener. The engine has begun computing.
func (c *Coordinator) OnTriggered(s *Session, auto bool) {
	if c.disposed {
		return
	}
	c.current = s
	c.set = nil
	c.nav.Clear()
	c.surface.ShowTriggered(auto)
	c.logger.Debug("session %s triggered (auto=%v)", s.ID, auto)
}

// OnSuggest implements Listener. Results for superseded sessions, and
// updates after the result set froze, are dropped.
func (c *Coordinator) OnSuggest(s *Session, set *CandidateSet, frozen, auto bool) {
	if c.disposed || !s.Same(c.current) {
		return
	}
	if c.current.Frozen {
		return
	}
	if frozen {
		c.current.Frozen = true
	}

	c.set = set
	c.nav.Reset(set.Len(), set.PreselectedIndex())
	focused, _ := c.nav.Index()
	c.surface.ShowSuggestions(set, focused, frozen, auto)
}

// OnCancelled implements Listener. Always clears the session
// reference; hides the surface unless an immediate retrigger follows.
func (c *Coordinator) OnCancelled(s *Session, retrigger bool) {
	if c.disposed {
		return
	}
	if c.current != nil && !s.Same(c.current) {
		return // stale cancel for a superseded session
	}
	c.current = nil
	c.set = nil
	c.nav.Clear()
	if !retrigger {
		c.surface.Hide()
	}
}

// AcceptFocused applies the surface's focused candidate to the
// document. With no focus or an empty candidate set it is a no-op.
// The session always ends afterwards, whether or not edits applied.
func (c *Coordinator) AcceptFocused() {
	if c.disposed || c.current == nil || c.set.Len() == 0 {
		return
	}
	index, ok := c.surface.FocusedIndex()
	if !ok {
		return
	}
	cand, ok := c.set.At(index)
	if !ok {
		return
	}

	defer c.endSession()
	c.accept(cand)
}

// Cancel implements the two-level hide contract: an open details view
// collapses first; a second cancel tears down the session.
func (c *Coordinator) Cancel() {
	if c.disposed {
		return
	}
	if c.surface.IsDetailsVisible() {
		c.surface.CollapseDetails()
		return
	}
	c.engine.Cancel(false)
}

// SelectNext moves the focus to the next candidate, wrapping.
func (c *Coordinator) SelectNext() { c.navigate((*NavigationState).Next) }

// SelectPrev moves the focus to the previous candidate, wrapping.
func (c *Coordinator) SelectPrev() { c.navigate((*NavigationState).Prev) }

// SelectNextPage moves the focus a page forward.
func (c *Coordinator) SelectNextPage() { c.navigate((*NavigationState).NextPage) }

// SelectPrevPage moves the focus a page backward.
func (c *Coordinator) SelectPrevPage() { c.navigate((*NavigationState).PrevPage) }

func (c *Coordinator) navigate(step func(*NavigationState)) {
	if c.disposed || c.current == nil || c.set.Len() == 0 {
		return
	}
	step(c.nav)
	if index, ok := c.nav.Index(); ok {
		c.surface.SetFocus(index)
	}
}

// ToggleDetails forwards to the presentation surface.
func (c *Coordinator) ToggleDetails() {
	if c.disposed {
		return
	}
	c.surface.ToggleDetails()
}

// Session returns the live session, or nil.
func (c *Coordinator) Session() *Session {
	return c.current
}

// Dispose unsubscribes from the engine and releases collaborators.
// Safe to call multiple times.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.current = nil
	c.set = nil
	c.surface = nil
	c.engine = nil
}

// endSession unconditionally tears down the current session.
func (c *Coordinator) endSession() {
	c.current = nil
	c.set = nil
	c.nav.Clear()
	c.engine.Cancel(false)
}

// reportError routes a failure to the unexpected-error sink.
func (c *Coordinator) reportError(err error) {
	if err == nil {
		return
	}
	if c.errs != nil {
		c.errs.OnUnexpectedError(err)
		return
	}
	c.logger.Error("unexpected: %v", err)
}
