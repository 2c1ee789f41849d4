package word

import (
	"context"
	"testing"

	"github.com/dshills/suggest/internal/provider"
	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

func request(text string, cursorAt int64) provider.Request {
	doc := textdoc.NewFromString(text)
	return provider.Request{
		Doc:      doc,
		Offset:   cursorAt,
		Position: doc.OffsetToPoint(cursorAt),
		Prefix:   provider.WordPrefix(text, cursorAt),
	}
}

func labels(items []suggest.Candidate) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Label
	}
	return out
}

func TestCompleteFindsBufferWords(t *testing.T) {
	text := "handler handleError handle han"
	p := New()

	items, err := p.Complete(context.Background(), request(text, int64(len(text))))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	want := map[string]bool{"handler": true, "handleError": true, "handle": true}
	got := labels(items)
	if len(got) != len(want) {
		t.Fatalf("Complete() = %v, want 3 distinct words", got)
	}
	for _, l := range got {
		if !want[l] {
			t.Errorf("unexpected candidate %q", l)
		}
	}
}

func TestCompleteNoPrefixReturnsNothing(t *testing.T) {
	p := New()

	items, err := p.Complete(context.Background(), request("words here ", 11))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Complete() = %v without prefix, want none", labels(items))
	}
}

func TestCompleteDeduplicates(t *testing.T) {
	text := "value value value val"
	p := New()

	items, err := p.Complete(context.Background(), request(text, int64(len(text))))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Complete() = %v, want single deduplicated word", labels(items))
	}
}

func TestCompleteExcludesExactPrefix(t *testing.T) {
	// The word being typed must not suggest itself.
	text := "han han"
	p := New()

	items, err := p.Complete(context.Background(), request(text, int64(len(text))))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Complete() = %v, want none for exact-length matches", labels(items))
	}
}

func TestCompleteCaseInsensitivePrefix(t *testing.T) {
	text := "HandleRequest han"
	p := New()

	items, err := p.Complete(context.Background(), request(text, int64(len(text))))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 1 || items[0].Label != "HandleRequest" {
		t.Fatalf("Complete() = %v, want HandleRequest", labels(items))
	}
}

func TestCompleteCandidateShape(t *testing.T) {
	text := "handler han"
	p := New()

	items, err := p.Complete(context.Background(), request(text, int64(len(text))))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Complete() returned %d items, want 1", len(items))
	}

	c := items[0]
	if c.Provider != suggest.WordProviderName {
		t.Errorf("Provider = %q, want %q", c.Provider, suggest.WordProviderName)
	}
	if c.OverwriteBefore != 3 {
		t.Errorf("OverwriteBefore = %d, want prefix length 3", c.OverwriteBefore)
	}
	if c.Kind != suggest.KindText {
		t.Errorf("Kind = %v, want KindText", c.Kind)
	}
}
