// Package suggest implements the completion-session coordination core:
// it owns the suggestion session lifecycle, candidate navigation, and
// the accept path that applies a chosen candidate to the document.
package suggest

import (
	"github.com/dshills/suggest/internal/textdoc"
)

// Kind indicates the type of completion candidate.
type Kind int

const (
	KindText Kind = iota
	KindMethod
	KindFunction
	KindConstructor
	KindField
	KindVariable
	KindClass
	KindInterface
	KindModule
	KindProperty
	KindUnit
	KindValue
	KindEnum
	KindKeyword
	KindSnippet
	KindColor
	KindFile
	KindReference
	KindFolder
	KindEnumMember
	KindConstant
	KindStruct
	KindEvent
	KindOperator
	KindTypeParameter
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindMethod:
		return "Method"
	case KindFunction:
		return "Function"
	case KindConstructor:
		return "Constructor"
	case KindField:
		return "Field"
	case KindVariable:
		return "Variable"
	case KindClass:
		return "Class"
	case KindInterface:
		return "Interface"
	case KindModule:
		return "Module"
	case KindProperty:
		return "Property"
	case KindUnit:
		return "Unit"
	case KindValue:
		return "Value"
	case KindEnum:
		return "Enum"
	case KindKeyword:
		return "Keyword"
	case KindSnippet:
		return "Snippet"
	case KindColor:
		return "Color"
	case KindFile:
		return "File"
	case KindReference:
		return "Reference"
	case KindFolder:
		return "Folder"
	case KindEnumMember:
		return "EnumMember"
	case KindConstant:
		return "Constant"
	case KindStruct:
		return "Struct"
	case KindEvent:
		return "Event"
	case KindOperator:
		return "Operator"
	case KindTypeParameter:
		return "TypeParameter"
	default:
		return "Unknown"
	}
}

// CommandRef names a follow-up command to run after a candidate is
// accepted, with its declared arguments.
type CommandRef struct {
	ID   string
	Args []any
}

// Candidate is a single proposed completion.
type Candidate struct {
	// Label is the display text.
	Label string

	// Kind indicates the candidate type.
	Kind Kind

	// Detail provides additional information for the details view.
	Detail string

	// InsertText is the text to insert. Empty means use Label.
	InsertText string

	// IsTemplate marks InsertText as tab-stop template syntax.
	IsTemplate bool

	// FilterText overrides Label for filtering.
	FilterText string

	// SortText overrides Label for ordering.
	SortText string

	// Preselect indicates this item should be focused by default.
	Preselect bool

	// OverwriteBefore is the number of bytes before the trigger-time
	// cursor that the insertion replaces.
	OverwriteBefore int64

	// OverwriteAfter is the number of bytes after the trigger-time
	// cursor that the insertion replaces.
	OverwriteAfter int64

	// Position is the cursor position at which the candidate was
	// computed. Accept compensates for cursor drift relative to it.
	Position textdoc.Point

	// AdditionalEdits are document changes applied elsewhere in the
	// document, atomically alongside the primary insertion.
	AdditionalEdits []textdoc.Edit

	// Command is an optional follow-up command.
	Command *CommandRef

	// Provider tags the computation provider that produced this
	// candidate.
	Provider string
}

// EffectiveInsertText returns InsertText, falling back to Label.
func (c Candidate) EffectiveInsertText() string {
	if c.InsertText != "" {
		return c.InsertText
	}
	return c.Label
}

// CandidateSet is the ordered candidate list belonging to a session.
type CandidateSet struct {
	Items []Candidate
}

// NewCandidateSet creates a set from the given items.
func NewCandidateSet(items []Candidate) *CandidateSet {
	return &CandidateSet{Items: items}
}

// Len returns the number of candidates.
func (s *CandidateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// At returns the candidate at index i.
func (s *CandidateSet) At(i int) (Candidate, bool) {
	if s == nil || i < 0 || i >= len(s.Items) {
		return Candidate{}, false
	}
	return s.Items[i], true
}

// PreselectedIndex returns the index of the first preselected
// candidate, or 0.
func (s *CandidateSet) PreselectedIndex() int {
	if s == nil {
		return 0
	}
	for i, c := range s.Items {
		if c.Preselect {
			return i
		}
	}
	return 0
}
