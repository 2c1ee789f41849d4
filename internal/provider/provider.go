// Package provider implements the suggestion-computation engine: a
// set of candidate providers run asynchronously, filtered and sorted,
// with results delivered through session notifications.
package provider

import (
	"context"

	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

// Request carries the document state a provider computes against.
type Request struct {
	// Doc is the document being completed.
	Doc *textdoc.Document

	// Offset is the cursor byte offset at trigger time.
	Offset textdoc.ByteOffset

	// Position is the cursor line/column at trigger time.
	Position textdoc.Point

	// Prefix is the word fragment before the cursor.
	Prefix string

	// Explicit is true for a user-invoked trigger.
	Explicit bool
}

// Provider computes completion candidates.
type Provider interface {
	// Name returns the provider's origin tag. Every candidate the
	// provider returns must carry it.
	Name() string

	// Complete returns candidates for the request. Returning no
	// candidates is not an error.
	Complete(ctx context.Context, req Request) ([]suggest.Candidate, error)
}

// IsWordChar returns true if the rune is a word character.
func IsWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_'
}

// WordPrefix returns the word fragment ending at offset.
func WordPrefix(text string, offset textdoc.ByteOffset) string {
	if offset > textdoc.ByteOffset(len(text)) {
		offset = textdoc.ByteOffset(len(text))
	}
	start := offset
	for start > 0 && IsWordChar(rune(text[start-1])) {
		start--
	}
	return text[start:offset]
}
