// Package textdoc provides the document model used by the suggestion
// core: byte-offset positions, ranges, edits, and a small in-memory
// document with change notification.
package textdoc

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap")
)

// ChangeObserver is called after every applied change.
type ChangeObserver func(Change)

// Document is an in-memory text document.
// All methods are thread-safe.
type Document struct {
	mu        sync.RWMutex
	text      string
	revision  RevisionID
	observers []ChangeObserver
}

// New creates a new empty document.
func New() *Document {
	return &Document{}
}

// NewFromString creates a document with initial content.
func NewFromString(s string) *Document {
	return &Document{text: s}
}

// OnChange registers an observer called after each applied change.
// Observers are invoked synchronously in registration order.
func (d *Document) OnChange(fn ChangeObserver) {
	d.mu.Lock()
	d.observers = append(d.observers, fn)
	d.mu.Unlock()
}

// Text returns the full document content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// TextRange returns the content of the given range.
func (d *Document) TextRange(start, end ByteOffset) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		return ""
	}
	return d.text[start:end]
}

// Len returns the document length in bytes.
func (d *Document) Len() ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ByteOffset(len(d.text))
}

// Revision returns the current revision ID.
func (d *Document) Revision() RevisionID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() uint32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return uint32(strings.Count(d.text, "\n")) + 1
}

// Insert inserts text at the given offset.
func (d *Document) Insert(offset ByteOffset, text string) (EditResult, error) {
	return d.Replace(offset, offset, text)
}

// Delete removes the text in [start, end).
func (d *Document) Delete(start, end ByteOffset) (EditResult, error) {
	return d.Replace(start, end, "")
}

// Replace replaces the text in [start, end) with the given text.
func (d *Document) Replace(start, end ByteOffset, text string) (EditResult, error) {
	d.mu.Lock()
	res, change, err := d.replaceLocked(start, end, text)
	observers := d.observers
	d.mu.Unlock()
	if err != nil {
		return res, err
	}
	for _, fn := range observers {
		fn(change)
	}
	return res, nil
}

// Apply applies a single edit.
func (d *Document) Apply(edit Edit) (EditResult, error) {
	return d.Replace(edit.Range.Start, edit.Range.End, edit.NewText)
}

// ApplyAll applies a batch of edits as one mutation. Edits must not
// overlap; they are applied highest-offset first so earlier edits do
// not shift later ones. Either every edit applies or none does.
func (d *Document) ApplyAll(edits []Edit) ([]EditResult, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start > sorted[j].Range.Start
	})

	d.mu.Lock()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Range.End > sorted[i-1].Range.Start {
			d.mu.Unlock()
			return nil, ErrEditsOverlap
		}
	}
	for _, e := range sorted {
		if !e.Range.IsValid() || e.Range.End > ByteOffset(len(d.text)) {
			d.mu.Unlock()
			return nil, ErrRangeInvalid
		}
	}

	results := make([]EditResult, 0, len(sorted))
	changes := make([]Change, 0, len(sorted))
	for _, e := range sorted {
		res, change, err := d.replaceLocked(e.Range.Start, e.Range.End, e.NewText)
		if err != nil {
			d.mu.Unlock()
			return nil, err
		}
		results = append(results, res)
		changes = append(changes, change)
	}
	observers := d.observers
	d.mu.Unlock()

	for _, c := range changes {
		for _, fn := range observers {
			fn(c)
		}
	}
	return results, nil
}

// replaceLocked performs the replacement. Caller holds d.mu.
func (d *Document) replaceLocked(start, end ByteOffset, text string) (EditResult, Change, error) {
	if start < 0 || end > ByteOffset(len(d.text)) {
		return EditResult{}, Change{}, ErrOffsetOutOfRange
	}
	if start > end {
		return EditResult{}, Change{}, ErrRangeInvalid
	}

	oldText := d.text[start:end]
	d.text = d.text[:start] + text + d.text[end:]
	d.revision++

	oldRange := NewRange(start, end)
	newRange := NewRange(start, start+ByteOffset(len(text)))
	res := EditResult{
		OldRange: oldRange,
		NewRange: newRange,
		OldText:  oldText,
		Delta:    int64(len(text)) - int64(len(oldText)),
	}
	change := Change{
		Range:    oldRange,
		NewRange: newRange,
		OldText:  oldText,
		NewText:  text,
	}
	return res, change, nil
}

// OffsetToPoint converts a byte offset to a line/column point.
func (d *Document) OffsetToPoint(offset ByteOffset) Point {
	d.mu.RLock()
	defer d.mu.RUnlock()
	offset = d.clamp(offset)

	var line, lineStart ByteOffset
	for i := ByteOffset(0); i < offset; i++ {
		if d.text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Point{Line: uint32(line), Column: uint32(offset - lineStart)}
}

// PointToOffset converts a line/column point to a byte offset.
// Points past the end of a line clamp to the line end.
func (d *Document) PointToOffset(p Point) ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()

	offset := d.lineStartLocked(p.Line)
	lineEnd := d.lineEndLocked(p.Line)
	offset += ByteOffset(p.Column)
	if offset > lineEnd {
		offset = lineEnd
	}
	return offset
}

// LineStartOffset returns the offset of the first byte of the line.
func (d *Document) LineStartOffset(line uint32) ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineStartLocked(line)
}

// LineEndOffset returns the offset just past the last content byte of
// the line, excluding the newline.
func (d *Document) LineEndOffset(line uint32) ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineEndLocked(line)
}

func (d *Document) lineStartLocked(line uint32) ByteOffset {
	if line == 0 {
		return 0
	}
	var seen uint32
	for i := 0; i < len(d.text); i++ {
		if d.text[i] == '\n' {
			seen++
			if seen == line {
				return ByteOffset(i + 1)
			}
		}
	}
	return ByteOffset(len(d.text))
}

func (d *Document) lineEndLocked(line uint32) ByteOffset {
	start := d.lineStartLocked(line)
	for i := start; i < ByteOffset(len(d.text)); i++ {
		if d.text[i] == '\n' {
			return i
		}
	}
	return ByteOffset(len(d.text))
}

func (d *Document) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > ByteOffset(len(d.text)) {
		return ByteOffset(len(d.text))
	}
	return offset
}
