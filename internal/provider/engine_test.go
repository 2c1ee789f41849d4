package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

// stubProvider returns fixed candidates, optionally blocking until
// released or the context ends.
type stubProvider struct {
	name    string
	items   []suggest.Candidate
	err     error
	release chan struct{}
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(ctx context.Context, _ Request) ([]suggest.Candidate, error) {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.items, p.err
}

type suggestEvent struct {
	sess   *suggest.Session
	set    *suggest.CandidateSet
	frozen bool
}

type cancelEvent struct {
	sess      *suggest.Session
	retrigger bool
}

// captureListener forwards notifications onto channels so tests can
// wait for the async pipeline.
type captureListener struct {
	triggered chan *suggest.Session
	suggests  chan suggestEvent
	cancelled chan cancelEvent
}

func newCaptureListener() *captureListener {
	return &captureListener{
		triggered: make(chan *suggest.Session, 8),
		suggests:  make(chan suggestEvent, 8),
		cancelled: make(chan cancelEvent, 8),
	}
}

func (l *captureListener) OnTriggered(s *suggest.Session, _ bool) {
	l.triggered <- s
}

func (l *captureListener) OnSuggest(s *suggest.Session, set *suggest.CandidateSet, frozen, _ bool) {
	l.suggests <- suggestEvent{sess: s, set: set, frozen: frozen}
}

func (l *captureListener) OnCancelled(s *suggest.Session, retrigger bool) {
	l.cancelled <- cancelEvent{sess: s, retrigger: retrigger}
}

func waitSuggest(t *testing.T, l *captureListener) suggestEvent {
	t.Helper()
	select {
	case ev := <-l.suggests:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no OnSuggest notification")
		return suggestEvent{}
	}
}

func waitCancelled(t *testing.T, l *captureListener) cancelEvent {
	t.Helper()
	select {
	case ev := <-l.cancelled:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no OnCancelled notification")
		return cancelEvent{}
	}
}

func engineFixture(text string, cursorAt int64, providers ...Provider) (*Engine, *captureListener) {
	doc := textdoc.NewFromString(text)
	cursor := textdoc.NewCursor(doc)
	cursor.MoveTo(cursorAt)
	e := NewEngine(doc, cursor, providers)
	l := newCaptureListener()
	e.Subscribe(l)
	return e, l
}

func TestEngineDeliversFrozenResults(t *testing.T) {
	stub := &stubProvider{name: "stub", items: []suggest.Candidate{
		{Label: "handle", InsertText: "handle"},
	}}
	e, l := engineFixture("han", 3, stub)

	e.Trigger(suggest.TriggerOptions{Explicit: true})

	sess := <-l.triggered
	ev := waitSuggest(t, l)
	if !ev.sess.Same(sess) {
		t.Error("suggest notification for a different session")
	}
	if !ev.frozen {
		t.Error("final result set not frozen")
	}
	if ev.set.Len() != 1 {
		t.Fatalf("set.Len() = %d, want 1", ev.set.Len())
	}
}

func TestEngineFiltersByPrefix(t *testing.T) {
	stub := &stubProvider{name: "stub", items: []suggest.Candidate{
		{Label: "handle"},
		{Label: "unrelated"},
	}}
	e, l := engineFixture("han", 3, stub)

	e.Trigger(suggest.TriggerOptions{Explicit: true})
	<-l.triggered

	ev := waitSuggest(t, l)
	if ev.set.Len() != 1 {
		t.Fatalf("set.Len() = %d after prefix filter, want 1", ev.set.Len())
	}
	if c, _ := ev.set.At(0); c.Label != "handle" {
		t.Errorf("candidate = %q, want handle", c.Label)
	}
}

func TestEngineEmptyResultCancels(t *testing.T) {
	stub := &stubProvider{name: "stub"}
	e, l := engineFixture("", 0, stub)

	e.Trigger(suggest.TriggerOptions{Explicit: true})
	sess := <-l.triggered

	ev := waitCancelled(t, l)
	if !ev.sess.Same(sess) {
		t.Error("cancel notification for a different session")
	}
	if ev.retrigger {
		t.Error("empty-result cancel reported retrigger")
	}
}

func TestEngineProviderErrorIsEmptyResult(t *testing.T) {
	failing := &stubProvider{name: "bad", err: errors.New("backend down")}
	e, l := engineFixture("", 0, failing)

	e.Trigger(suggest.TriggerOptions{Explicit: true})
	<-l.triggered

	waitCancelled(t, l)
}

func TestEngineProviderErrorDoesNotPoisonOthers(t *testing.T) {
	failing := &stubProvider{name: "bad", err: errors.New("backend down")}
	good := &stubProvider{name: "good", items: []suggest.Candidate{{Label: "ok"}}}
	e, l := engineFixture("", 0, failing, good)

	e.Trigger(suggest.TriggerOptions{Explicit: true})
	<-l.triggered

	ev := waitSuggest(t, l)
	if !ev.frozen || ev.set.Len() != 1 {
		t.Errorf("frozen = %v, len = %d, want frozen single result", ev.frozen, ev.set.Len())
	}
}

func TestEngineTriggerSupersedes(t *testing.T) {
	slow := &stubProvider{
		name:    "slow",
		items:   []suggest.Candidate{{Label: "old"}},
		release: make(chan struct{}),
	}
	e, l := engineFixture("", 0, slow)

	e.Trigger(suggest.TriggerOptions{})
	first := <-l.triggered

	// Second trigger cancels the first computation's context.
	e.Trigger(suggest.TriggerOptions{Retrigger: true})
	second := <-l.triggered
	if first.Same(second) {
		t.Fatal("second trigger reused the first session")
	}

	close(slow.release)

	// Only the second session may produce results.
	ev := waitSuggest(t, l)
	if !ev.sess.Same(second) {
		t.Errorf("results delivered for superseded session %s", ev.sess.ID)
	}
}

func TestEngineCancelNotifies(t *testing.T) {
	slow := &stubProvider{name: "slow", release: make(chan struct{})}
	e, l := engineFixture("", 0, slow)

	e.Trigger(suggest.TriggerOptions{})
	sess := <-l.triggered

	e.Cancel(false)
	ev := waitCancelled(t, l)
	if !ev.sess.Same(sess) {
		t.Error("cancel notification for a different session")
	}

	// Cancel with no live session is a no-op.
	e.Cancel(false)
	select {
	case <-l.cancelled:
		t.Error("cancel without session produced a notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngineUnsubscribeStopsNotifications(t *testing.T) {
	stub := &stubProvider{name: "stub", items: []suggest.Candidate{{Label: "x"}}}
	doc := textdoc.NewFromString("")
	cursor := textdoc.NewCursor(doc)
	e := NewEngine(doc, cursor, []Provider{stub})
	l := newCaptureListener()
	unsubscribe := e.Subscribe(l)
	unsubscribe()

	e.Trigger(suggest.TriggerOptions{})

	select {
	case <-l.triggered:
		t.Error("unsubscribed listener was notified")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEngineMaxResults(t *testing.T) {
	items := make([]suggest.Candidate, 10)
	for i := range items {
		items[i] = suggest.Candidate{Label: string(rune('a' + i))}
	}
	stub := &stubProvider{name: "stub", items: items}

	doc := textdoc.NewFromString("")
	cursor := textdoc.NewCursor(doc)
	e := NewEngine(doc, cursor, []Provider{stub}, WithMaxResults(3))
	l := newCaptureListener()
	e.Subscribe(l)

	e.Trigger(suggest.TriggerOptions{})
	<-l.triggered

	ev := waitSuggest(t, l)
	if ev.set.Len() != 3 {
		t.Errorf("set.Len() = %d, want 3", ev.set.Len())
	}
}
