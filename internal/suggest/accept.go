package suggest

import (
	"context"
	"fmt"

	"github.com/dshills/suggest/internal/event"
	"github.com/dshills/suggest/internal/snippet"
)

// TopicAccepted is the usage-signal topic published when a candidate
// is accepted.
const TopicAccepted event.Topic = "suggest.accepted"

// AcceptedEvent is the payload published on TopicAccepted.
type AcceptedEvent struct {
	Label           string
	Provider        string
	HasPlaceholders bool
}

// accept applies the chosen candidate: auxiliary edits and the primary
// insertion inside one undo group, then the follow-up command and the
// usage signal. The caller ends the session regardless of the outcome.
func (c *Coordinator) accept(cand Candidate) {
	// The cursor may have drifted since the candidate was computed.
	// The replace-before extent grows or shrinks by exactly that
	// drift; skipping this corrupts the edit.
	cur := c.cursor.Point()
	columnDelta := int64(cur.Column) - int64(cand.Position.Column)

	scope := c.hist.GroupScope("accept suggestion")
	defer scope.End()

	if len(cand.AdditionalEdits) > 0 {
		if _, err := c.doc.ApplyAll(cand.AdditionalEdits); err != nil {
			c.reportError(fmt.Errorf("suggest: auxiliary edits for %q: %w", cand.Label, err))
			return
		}
	}

	var sn *snippet.Snippet
	if cand.IsTemplate {
		sn = snippet.Parse(cand.EffectiveInsertText())
	} else {
		sn = snippet.Literal(cand.EffectiveInsertText())
	}

	before := cand.OverwriteBefore + columnDelta
	if before < 0 {
		before = 0
	}
	if err := c.inserter.Insert(sn, before, cand.OverwriteAfter); err != nil {
		c.reportError(fmt.Errorf("suggest: insert %q: %w", cand.Label, err))
		return
	}

	if cand.Command != nil {
		c.runCommand(*cand.Command)
	}

	if c.bus != nil && cand.Provider != c.suppressed {
		c.bus.Publish(TopicAccepted, AcceptedEvent{
			Label:           cand.Label,
			Provider:        cand.Provider,
			HasPlaceholders: sn.HasPlaceholders(),
		})
	}
}

// runCommand executes the follow-up command asynchronously. Failures
// and panics go to the unexpected-error sink; they never reach the
// accept caller and never block the accept sequence.
func (c *Coordinator) runCommand(cmd CommandRef) {
	if c.commands == nil {
		return
	}
	runner := c.commands
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.reportError(fmt.Errorf("suggest: command %s panicked: %v", cmd.ID, r))
			}
		}()
		if err := runner.Execute(context.Background(), cmd.ID, cmd.Args...); err != nil {
			c.reportError(fmt.Errorf("suggest: command %s: %w", cmd.ID, err))
		}
	}()
}
