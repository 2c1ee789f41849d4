package provider

import (
	"sort"
	"strings"

	"github.com/dshills/suggest/internal/suggest"
)

// FilterCandidates filters candidates by prefix using fuzzy matching.
// FuzzyMatch handles case-insensitive matching internally.
func FilterCandidates(items []suggest.Candidate, prefix string) []suggest.Candidate {
	if prefix == "" {
		return items
	}

	var filtered []suggest.Candidate

	for _, item := range items {
		// Use FilterText if available, otherwise Label
		text := item.FilterText
		if text == "" {
			text = item.Label
		}

		if FuzzyMatch(text, prefix) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// SortCandidates sorts candidates for optimal presentation.
func SortCandidates(items []suggest.Candidate, prefix string) []suggest.Candidate {
	if len(items) <= 1 {
		return items
	}

	prefixLower := strings.ToLower(prefix)

	// Create a copy to avoid mutating the original
	sorted := make([]suggest.Candidate, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		// 1. Preselected items first
		if a.Preselect != b.Preselect {
			return a.Preselect
		}

		// 2. Exact prefix matches first
		if prefixLower != "" {
			aPrefix := strings.HasPrefix(strings.ToLower(a.Label), prefixLower)
			bPrefix := strings.HasPrefix(strings.ToLower(b.Label), prefixLower)
			if aPrefix != bPrefix {
				return aPrefix
			}
		}

		// 3. By kind priority (methods/functions over keywords/text)
		aPriority := kindPriority(a.Kind)
		bPriority := kindPriority(b.Kind)
		if aPriority != bPriority {
			return aPriority < bPriority
		}

		// 4. By sort text (case-insensitive alphabetically)
		sortA := a.SortText
		if sortA == "" {
			sortA = a.Label
		}
		sortB := b.SortText
		if sortB == "" {
			sortB = b.Label
		}
		return strings.ToLower(sortA) < strings.ToLower(sortB)
	})

	return sorted
}

// kindPriority returns priority for sorting (lower = higher priority).
func kindPriority(k suggest.Kind) int {
	switch k {
	case suggest.KindMethod, suggest.KindFunction:
		return 1
	case suggest.KindField, suggest.KindVariable:
		return 2
	case suggest.KindClass, suggest.KindStruct, suggest.KindInterface:
		return 3
	case suggest.KindConstant:
		return 4
	case suggest.KindKeyword:
		return 5
	case suggest.KindSnippet:
		return 6
	case suggest.KindText:
		return 10
	default:
		return 7
	}
}

// FuzzyMatch returns true if text matches the pattern using fuzzy matching.
// Matching is case-insensitive.
func FuzzyMatch(text, pattern string) bool {
	if pattern == "" {
		return true
	}

	textLower := strings.ToLower(text)
	patternLower := strings.ToLower(pattern)

	// First check for substring match
	if strings.Contains(textLower, patternLower) {
		return true
	}

	// Then check for fuzzy character matching using runes
	textRunes := []rune(textLower)
	patternRunes := []rune(patternLower)

	ti := 0
	for pi := 0; pi < len(patternRunes) && ti < len(textRunes); pi++ {
		for ti < len(textRunes) && textRunes[ti] != patternRunes[pi] {
			ti++
		}
		if ti >= len(textRunes) {
			return false
		}
		ti++
	}

	return true
}
