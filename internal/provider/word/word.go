// Package word provides buffer-word completion: candidates are the
// distinct words already present in the document that share the
// cursor prefix.
package word

import (
	"context"

	"github.com/dshills/suggest/internal/provider"
	"github.com/dshills/suggest/internal/suggest"
)

// Provider completes from words in the current document.
type Provider struct{}

// New creates a buffer-word provider.
func New() *Provider {
	return &Provider{}
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return suggest.WordProviderName
}

// Complete implements provider.Provider. Without a prefix there is
// nothing useful to offer, so it returns no candidates.
func (p *Provider) Complete(_ context.Context, req provider.Request) ([]suggest.Candidate, error) {
	if req.Prefix == "" {
		return nil, nil
	}

	words := findWordsWithPrefix(req.Doc.Text(), req.Prefix)
	if len(words) == 0 {
		return nil, nil
	}

	items := make([]suggest.Candidate, len(words))
	for i, w := range words {
		items[i] = suggest.Candidate{
			Label:           w,
			Kind:            suggest.KindText,
			InsertText:      w,
			OverwriteBefore: int64(len(req.Prefix)),
			Position:        req.Position,
			Provider:        p.Name(),
		}
	}
	return items, nil
}

// findWordsWithPrefix finds all words in text that start with prefix.
func findWordsWithPrefix(text, prefix string) []string {
	seen := make(map[string]bool)
	var words []string

	i := 0
	for i < len(text) {
		// Skip non-word characters
		for i < len(text) && !provider.IsWordChar(rune(text[i])) {
			i++
		}

		// Collect word
		start := i
		for i < len(text) && provider.IsWordChar(rune(text[i])) {
			i++
		}

		if start < i {
			word := text[start:i]
			if len(word) > len(prefix) && hasPrefix(word, prefix) && !seen[word] {
				seen[word] = true
				words = append(words, word)
			}
		}
	}

	return words
}

// hasPrefix checks if s starts with prefix (case-insensitive).
func hasPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toLower(s[i]) != toLower(prefix[i]) {
			return false
		}
	}
	return true
}

// toLower converts a byte to lowercase.
func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
