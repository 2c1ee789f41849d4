package snippet

import (
	"testing"

	"github.com/dshills/suggest/internal/textdoc"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		wantText  string
		wantStops int
	}{
		{"plain text", "foo()", "foo()", 0},
		{"single tabstop", "foo($1)", "foo()", 1},
		{"tabstop with default", "foo(${1:x})", "foo(x)", 1},
		{"multiple stops", "for ${1:i} := range $2 {\n\t$0\n}", "for i := range  {\n\t\n}", 3},
		{"final stop only", "done()$0", "done()", 1},
		{"dollar literal", "cost: $amount", "cost: $amount", 0},
		{"unterminated brace", "foo(${1:x", "foo(${1:x", 0},
		{"multidigit stop", "a$12b", "ab", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := Parse(tt.template)
			if sn.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", sn.Text, tt.wantText)
			}
			if got := sn.PlaceholderCount(); got != tt.wantStops {
				t.Errorf("PlaceholderCount = %d, want %d", got, tt.wantStops)
			}
		})
	}
}

func TestFirstStop(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     int
	}{
		{"no stops lands at end", "foo()", 5},
		{"lowest positive stop", "foo($2, $1)", 4 + 2}, // inside "foo(, )" after "$2" removed: offset of $1
		{"zero stop used when alone", "bar()$0;", 5},
		{"default value start", "x(${1:name})", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn := Parse(tt.template)
			if got := sn.FirstStop(); got != tt.want {
				t.Errorf("FirstStop = %d, want %d (text %q)", got, tt.want, sn.Text)
			}
		})
	}
}

func TestLiteral(t *testing.T) {
	sn := Literal("foo($1)")
	if sn.HasPlaceholders() {
		t.Error("literal snippets never have placeholders")
	}
	if sn.Text != "foo($1)" {
		t.Errorf("Text = %q", sn.Text)
	}
	if got := sn.FirstStop(); got != len("foo($1)") {
		t.Errorf("FirstStop = %d", got)
	}
}

func TestInsert(t *testing.T) {
	doc := textdoc.NewFromString("fo bar")
	cur := textdoc.NewCursor(doc)
	cur.MoveTo(2) // after "fo"

	in := NewInserter(doc, cur)
	if err := in.Insert(Literal("foo()"), 2, 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := doc.Text(); got != "foo() bar" {
		t.Errorf("got %q", got)
	}
	if got := cur.Offset(); got != 5 {
		t.Errorf("cursor at %d, want 5", got)
	}
}

func TestInsertReplacesAfter(t *testing.T) {
	doc := textdoc.NewFromString("prefix_old")
	cur := textdoc.NewCursor(doc)
	cur.MoveTo(6) // between "prefix" and "_old"

	in := NewInserter(doc, cur)
	if err := in.Insert(Literal("_new"), 0, 4); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := doc.Text(); got != "prefix_new" {
		t.Errorf("got %q", got)
	}
}

func TestInsertCursorOnFirstStop(t *testing.T) {
	doc := textdoc.NewFromString("pr")
	cur := textdoc.NewCursor(doc)
	cur.MoveTo(2)

	in := NewInserter(doc, cur)
	if err := in.Insert(Parse("print($1)$0"), 2, 0); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := doc.Text(); got != "print()" {
		t.Errorf("got %q", got)
	}
	if got := cur.Offset(); got != 6 {
		t.Errorf("cursor at %d, want 6 (inside parens)", got)
	}
}

func TestInsertClamps(t *testing.T) {
	doc := textdoc.NewFromString("ab")
	cur := textdoc.NewCursor(doc)
	cur.MoveTo(1)

	in := NewInserter(doc, cur)
	if err := in.Insert(Literal("X"), 10, 10); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := doc.Text(); got != "X" {
		t.Errorf("got %q", got)
	}
}
