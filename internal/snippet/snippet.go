// Package snippet provides snippet expansion for completion insert
// text: template syntax with tab-stop placeholders ($1, ${2:default})
// and plain literal text, plus cursor-relative insertion.
package snippet

import "strings"

// Placeholder is a single tab stop inside an expanded snippet.
type Placeholder struct {
	// Index is the tab-stop number. 0 is the final cursor position.
	Index int
	// Offset is the byte offset of the stop within the expanded text.
	Offset int
	// Len is the length of the default value, if any.
	Len int
}

// Snippet is insert text with its placeholders resolved.
type Snippet struct {
	// Text is the expanded text: defaults substituted, markers removed.
	Text string
	// Placeholders are the tab stops found, in source order.
	Placeholders []Placeholder
}

// PlaceholderCount returns the number of tab stops.
func (s *Snippet) PlaceholderCount() int {
	return len(s.Placeholders)
}

// HasPlaceholders returns true if the snippet contains any tab stops.
func (s *Snippet) HasPlaceholders() bool {
	return len(s.Placeholders) > 0
}

// FirstStop returns the offset the cursor should land on after
// insertion: the lowest positive tab stop, then $0, then text end.
func (s *Snippet) FirstStop() int {
	best := -1
	bestIndex := 0
	for _, p := range s.Placeholders {
		if p.Index == 0 {
			continue
		}
		if best == -1 || p.Index < bestIndex {
			best = p.Offset
			bestIndex = p.Index
		}
	}
	if best >= 0 {
		return best
	}
	for _, p := range s.Placeholders {
		if p.Index == 0 {
			return p.Offset
		}
	}
	return len(s.Text)
}

// Literal returns a snippet for plain text with no placeholders.
func Literal(text string) *Snippet {
	return &Snippet{Text: text}
}

// Parse expands template syntax into a Snippet.
// Handles $N tab stops and ${N:default} placeholders. Unterminated or
// malformed markers pass through as literal text.
func Parse(template string) *Snippet {
	var b strings.Builder
	var stops []Placeholder

	runes := []rune(template)
	i := 0
	for i < len(runes) {
		if runes[i] != '$' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		next := runes[i+1]
		switch {
		case next == '{':
			end := -1
			for j := i + 2; j < len(runes); j++ {
				if runes[j] == '}' {
					end = j
					break
				}
			}
			if end == -1 {
				b.WriteRune(runes[i])
				i++
				continue
			}
			content := string(runes[i+2 : end])
			index, def, ok := splitPlaceholder(content)
			if !ok {
				b.WriteRune(runes[i])
				i++
				continue
			}
			stops = append(stops, Placeholder{
				Index:  index,
				Offset: b.Len(),
				Len:    len(def),
			})
			b.WriteString(def)
			i = end + 1

		case next >= '0' && next <= '9':
			j := i + 1
			index := 0
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				index = index*10 + int(runes[j]-'0')
				j++
			}
			stops = append(stops, Placeholder{Index: index, Offset: b.Len()})
			i = j

		default:
			b.WriteRune(runes[i])
			i++
		}
	}

	return &Snippet{Text: b.String(), Placeholders: stops}
}

// splitPlaceholder parses "N" or "N:default" content.
func splitPlaceholder(content string) (index int, def string, ok bool) {
	numPart := content
	if colon := strings.Index(content, ":"); colon != -1 {
		numPart = content[:colon]
		def = content[colon+1:]
	}
	if numPart == "" {
		return 0, "", false
	}
	for _, r := range numPart {
		if r < '0' || r > '9' {
			return 0, "", false
		}
		index = index*10 + int(r-'0')
	}
	return index, def, true
}
