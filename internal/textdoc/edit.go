package textdoc

// Edit describes a single text replacement: the text in Range is
// replaced by NewText. An empty Range is an insertion; empty NewText
// is a deletion.
type Edit struct {
	Range   Range
	NewText string
}

// IsInsert returns true if this edit only inserts text.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this edit only removes text.
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in document length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	Delta    int64
}

// Change records an applied edit for change tracking and undo.
type Change struct {
	Range    Range  // original range that was affected
	NewRange Range  // resulting range after the change
	OldText  string // text that was removed
	NewText  string // text that was added
}

// Invert returns the inverse change that would undo this change.
func (c Change) Invert() Change {
	return Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
}
