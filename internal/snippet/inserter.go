package snippet

import (
	"errors"

	"github.com/dshills/suggest/internal/textdoc"
)

// ErrNoDocument indicates the inserter has no document bound.
var ErrNoDocument = errors.New("snippet: no document")

// Inserter performs cursor-relative snippet insertion on a document.
// The replaced region is [cursor-before, cursor+after); after insertion
// the cursor lands on the snippet's first tab stop, or at the end of
// the inserted text when there is none.
type Inserter struct {
	doc    *textdoc.Document
	cursor *textdoc.Cursor
}

// NewInserter creates an Inserter bound to a document and its cursor.
func NewInserter(doc *textdoc.Document, cursor *textdoc.Cursor) *Inserter {
	return &Inserter{doc: doc, cursor: cursor}
}

// Insert replaces the region around the cursor with the snippet text.
// before and after are byte counts relative to the current cursor
// offset, clamped to the document bounds.
func (in *Inserter) Insert(sn *Snippet, before, after int64) error {
	if in.doc == nil || in.cursor == nil {
		return ErrNoDocument
	}

	cur := in.cursor.Offset()
	start := cur - before
	if start < 0 {
		start = 0
	}
	end := cur + after
	if max := in.doc.Len(); end > max {
		end = max
	}
	if start > end {
		start = end
	}

	if _, err := in.doc.Replace(start, end, sn.Text); err != nil {
		return err
	}

	in.cursor.MoveTo(start + textdoc.ByteOffset(sn.FirstStop()))
	return nil
}
