package suggest

import "testing"

func TestEffectiveInsertText(t *testing.T) {
	tests := []struct {
		name string
		cand Candidate
		want string
	}{
		{"insert text wins", Candidate{Label: "println", InsertText: "println()"}, "println()"},
		{"falls back to label", Candidate{Label: "println"}, "println"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cand.EffectiveInsertText(); got != tt.want {
				t.Errorf("EffectiveInsertText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidateSetNilSafe(t *testing.T) {
	var set *CandidateSet

	if got := set.Len(); got != 0 {
		t.Errorf("nil set Len() = %d, want 0", got)
	}
	if _, ok := set.At(0); ok {
		t.Error("nil set At(0) ok = true")
	}
	if got := set.PreselectedIndex(); got != 0 {
		t.Errorf("nil set PreselectedIndex() = %d, want 0", got)
	}
}

func TestCandidateSetAt(t *testing.T) {
	set := NewCandidateSet([]Candidate{{Label: "a"}, {Label: "b"}})

	if c, ok := set.At(1); !ok || c.Label != "b" {
		t.Errorf("At(1) = %q, %v, want b, true", c.Label, ok)
	}
	if _, ok := set.At(2); ok {
		t.Error("At(2) ok = true past end")
	}
	if _, ok := set.At(-1); ok {
		t.Error("At(-1) ok = true")
	}
}

func TestSessionIdentity(t *testing.T) {
	a := NewSession(TriggerOptions{Explicit: true})
	b := NewSession(TriggerOptions{Explicit: true})

	if !a.Same(a) {
		t.Error("Same(self) = false")
	}
	if a.Same(b) {
		t.Error("distinct sessions compare Same")
	}
	if a.Same(nil) {
		t.Error("Same(nil) = true")
	}
	if a.Auto() {
		t.Error("explicit session reports Auto")
	}
	if !NewSession(TriggerOptions{}).Auto() {
		t.Error("implicit session does not report Auto")
	}
}
