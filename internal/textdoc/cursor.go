package textdoc

import "sync"

// Cursor is the primary edit cursor for a document.
// All methods are thread-safe.
type Cursor struct {
	mu  sync.RWMutex
	doc *Document
	off ByteOffset
}

// NewCursor creates a cursor at offset 0. The cursor tracks document
// changes: edits entirely before it shift it by the edit's delta, and
// an edit spanning it moves it to the end of the replacement.
func NewCursor(doc *Document) *Cursor {
	c := &Cursor{doc: doc}
	doc.OnChange(c.adjust)
	return c
}

// adjust shifts the cursor in response to a document change.
func (c *Cursor) adjust(ch Change) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case ch.Range.End <= c.off:
		c.off += ByteOffset(len(ch.NewText)) - ch.Range.Len()
	case ch.Range.Start < c.off:
		c.off = ch.NewRange.End
	}
}

// Offset returns the cursor's byte offset.
func (c *Cursor) Offset() ByteOffset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.off
}

// Point returns the cursor's line/column position.
func (c *Cursor) Point() Point {
	return c.doc.OffsetToPoint(c.Offset())
}

// MoveTo moves the cursor to the given offset, clamped to the document.
func (c *Cursor) MoveTo(offset ByteOffset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	if max := c.doc.Len(); offset > max {
		offset = max
	}
	c.off = offset
}

// Advance moves the cursor by delta bytes, clamped to the document.
func (c *Cursor) Advance(delta ByteOffset) {
	c.MoveTo(c.Offset() + delta)
}
