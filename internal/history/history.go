// Package history provides undo/redo tracking for a document, with
// grouping so compound edits undo as a single user action.
package history

import (
	"errors"
	"sync"

	"github.com/dshills/suggest/internal/textdoc"
)

// Errors returned by history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry is one undoable unit: a named batch of recorded changes.
type entry struct {
	name    string
	changes []textdoc.Change
}

// History records document changes and supports grouped undo/redo.
// All methods are thread-safe.
type History struct {
	mu        sync.Mutex
	doc       *textdoc.Document
	undoStack []*entry
	redoStack []*entry

	group      *entry
	groupDepth int

	// suspended prevents recording while undo/redo replays changes.
	suspended bool
}

// New creates a History attached to the document. Every change applied
// to the document from this point on is recorded.
func New(doc *textdoc.Document) *History {
	h := &History{doc: doc}
	doc.OnChange(h.record)
	return h
}

// record receives change notifications from the document.
func (h *History) record(c textdoc.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.suspended {
		return
	}
	h.redoStack = nil

	if h.group != nil {
		h.group.changes = append(h.group.changes, c)
		return
	}
	h.undoStack = append(h.undoStack, &entry{changes: []textdoc.Change{c}})
}

// BeginGroup starts a compound-edit group. Groups nest; only the
// outermost EndGroup closes the unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.groupDepth++
	if h.group == nil {
		h.group = &entry{name: name}
	}
}

// EndGroup closes the current group and pushes it as one undo unit.
// Empty groups are discarded.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		return
	}
	h.groupDepth--
	if h.groupDepth > 0 {
		return
	}

	if h.group != nil && len(h.group.changes) > 0 {
		h.undoStack = append(h.undoStack, h.group)
	}
	h.group = nil
}

// CancelGroup closes the current group without creating a compound
// unit. Changes already recorded become individual undo entries.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		return
	}
	h.groupDepth = 0
	if h.group != nil {
		for _, c := range h.group.changes {
			h.undoStack = append(h.undoStack, &entry{changes: []textdoc.Change{c}})
		}
	}
	h.group = nil
}

// IsGrouping returns true if a group is currently open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.groupDepth > 0
}

// Undo reverts the most recent undo unit.
func (h *History) Undo() error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.suspended = true
	h.mu.Unlock()

	// Apply inverses newest-first.
	var applyErr error
	for i := len(e.changes) - 1; i >= 0; i-- {
		inv := e.changes[i].Invert()
		if _, err := h.doc.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
			applyErr = err
			break
		}
	}

	h.mu.Lock()
	h.suspended = false
	if applyErr == nil {
		h.redoStack = append(h.redoStack, e)
	}
	h.mu.Unlock()
	return applyErr
}

// Redo re-applies the most recently undone unit.
func (h *History) Redo() error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.suspended = true
	h.mu.Unlock()

	var applyErr error
	for _, c := range e.changes {
		if _, err := h.doc.Replace(c.Range.Start, c.Range.End, c.NewText); err != nil {
			applyErr = err
			break
		}
	}

	h.mu.Lock()
	h.suspended = false
	if applyErr == nil {
		h.undoStack = append(h.undoStack, e)
	}
	h.mu.Unlock()
	return applyErr
}

// CanUndo returns true if there is anything to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is anything to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo units.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo units.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}
