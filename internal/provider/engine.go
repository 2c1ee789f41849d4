package provider

import (
	"context"
	"sync"

	"github.com/dshills/suggest/internal/log"
	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

// DefaultMaxResults bounds the candidate list shown per session.
const DefaultMaxResults = 50

// Engine runs providers asynchronously and reports results through
// session notifications. It implements suggest.Engine.
//
// Computation runs on background goroutines; notifications are handed
// to the configured delivery function, which is responsible for
// running them on the editor's UI-logic goroutine.
type Engine struct {
	mu         sync.Mutex
	providers  []Provider
	doc        *textdoc.Document
	cursor     *textdoc.Cursor
	deliver    func(func())
	logger     *log.Logger
	maxResults int

	listeners map[uint64]suggest.Listener
	nextSub   uint64

	current *suggest.Session
	cancel  context.CancelFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithDelivery sets the function used to run notifications on the
// UI-logic goroutine. The default runs them inline on the computing
// goroutine, which is only safe in tests.
func WithDelivery(fn func(func())) Option {
	return func(e *Engine) { e.deliver = fn }
}

// WithMaxResults bounds the number of candidates per session.
// Zero means unbounded.
func WithMaxResults(n int) Option {
	return func(e *Engine) { e.maxResults = n }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine over the given document and providers.
// Providers run in order; earlier providers' results are delivered
// incrementally while later ones are still computing.
func NewEngine(doc *textdoc.Document, cursor *textdoc.Cursor, providers []Provider, opts ...Option) *Engine {
	e := &Engine{
		providers:  providers,
		doc:        doc,
		cursor:     cursor,
		deliver:    func(fn func()) { fn() },
		logger:     log.Null,
		maxResults: DefaultMaxResults,
		listeners:  make(map[uint64]suggest.Listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe implements suggest.Engine.
func (e *Engine) Subscribe(l suggest.Listener) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = l
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Trigger implements suggest.Engine. The document state is snapshotted
// at call time; results reflect the document as it was when triggered.
func (e *Engine) Trigger(opts suggest.TriggerOptions) {
	sess := suggest.NewSession(opts)

	offset := e.cursor.Offset()
	position := e.cursor.Point()
	req := Request{
		Doc:      e.doc,
		Offset:   offset,
		Position: position,
		Prefix:   WordPrefix(e.doc.Text(), offset),
		Explicit: opts.Explicit,
	}

	ctx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.current = sess
	e.cancel = cancel
	e.mu.Unlock()

	e.notify(sess, func(l suggest.Listener) {
		l.OnTriggered(sess, sess.Auto())
	})

	go e.compute(ctx, sess, req)
}

// Cancel implements suggest.Engine.
func (e *Engine) Cancel(retrigger bool) {
	e.mu.Lock()
	sess := e.current
	if sess == nil {
		e.mu.Unlock()
		return
	}
	e.current = nil
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	e.deliverAll(func(l suggest.Listener) {
		l.OnCancelled(sess, retrigger)
	})
}

// compute runs every provider and delivers results. A provider error
// is logged and treated as an empty result.
func (e *Engine) compute(ctx context.Context, sess *suggest.Session, req Request) {
	var all []suggest.Candidate

	for i, p := range e.providers {
		items, err := p.Complete(ctx, req)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			e.logger.Warn("provider %s failed: %v", p.Name(), err)
			continue
		}
		all = append(all, items...)

		// Incremental delivery while later providers still run.
		if i < len(e.providers)-1 && len(all) > 0 {
			partial := e.process(all, req.Prefix)
			e.notify(sess, func(l suggest.Listener) {
				l.OnSuggest(sess, suggest.NewCandidateSet(partial), false, sess.Auto())
			})
		}
	}

	final := e.process(all, req.Prefix)
	if len(final) == 0 {
		e.mu.Lock()
		if e.current == sess {
			e.current = nil
			e.cancel = nil
		}
		e.mu.Unlock()
		e.notify(sess, func(l suggest.Listener) {
			l.OnCancelled(sess, false)
		})
		return
	}

	e.notify(sess, func(l suggest.Listener) {
		l.OnSuggest(sess, suggest.NewCandidateSet(final), true, sess.Auto())
	})
}

// process filters, sorts, and truncates candidates for presentation.
func (e *Engine) process(items []suggest.Candidate, prefix string) []suggest.Candidate {
	if prefix != "" {
		items = FilterCandidates(items, prefix)
	}
	items = SortCandidates(items, prefix)
	if e.maxResults > 0 && len(items) > e.maxResults {
		items = items[:e.maxResults]
	}
	return items
}

// notify delivers fn to all listeners, dropping it if sess has been
// superseded by the time delivery runs.
func (e *Engine) notify(sess *suggest.Session, fn func(suggest.Listener)) {
	e.deliver(func() {
		e.mu.Lock()
		stale := e.current != nil && !sess.Same(e.current)
		listeners := e.snapshotLocked()
		e.mu.Unlock()
		if stale {
			return
		}
		for _, l := range listeners {
			fn(l)
		}
	})
}

// deliverAll delivers fn to all listeners unconditionally.
func (e *Engine) deliverAll(fn func(suggest.Listener)) {
	e.deliver(func() {
		e.mu.Lock()
		listeners := e.snapshotLocked()
		e.mu.Unlock()
		for _, l := range listeners {
			fn(l)
		}
	})
}

func (e *Engine) snapshotLocked() []suggest.Listener {
	out := make([]suggest.Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		out = append(out, l)
	}
	return out
}
