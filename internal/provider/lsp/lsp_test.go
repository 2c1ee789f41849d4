package lsp

import (
	"context"
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/suggest/internal/provider"
	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

// fakeTransport returns a canned response and records the request.
type fakeTransport struct {
	method   string
	params   []byte
	response string
	err      error
}

func (f *fakeTransport) Request(_ context.Context, method string, params []byte) ([]byte, error) {
	f.method = method
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.response), nil
}

func lspRequest(text string, cursorAt int64) provider.Request {
	doc := textdoc.NewFromString(text)
	return provider.Request{
		Doc:      doc,
		Offset:   cursorAt,
		Position: doc.OffsetToPoint(cursorAt),
		Prefix:   provider.WordPrefix(text, cursorAt),
		Explicit: true,
	}
}

func TestBuildsCompletionParams(t *testing.T) {
	transport := &fakeTransport{response: `[]`}
	p := New("gopls", "file:///main.go", transport)

	if _, err := p.Complete(context.Background(), lspRequest("line one\nfn", 11)); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if transport.method != MethodCompletion {
		t.Errorf("method = %q, want %q", transport.method, MethodCompletion)
	}

	params := gjson.ParseBytes(transport.params)
	if got := params.Get("textDocument.uri").String(); got != "file:///main.go" {
		t.Errorf("uri = %q", got)
	}
	if got := params.Get("position.line").Int(); got != 1 {
		t.Errorf("line = %d, want 1", got)
	}
	if got := params.Get("position.character").Int(); got != 2 {
		t.Errorf("character = %d, want 2", got)
	}
	if got := params.Get("context.triggerKind").Int(); got != 1 {
		t.Errorf("triggerKind = %d, want 1 for explicit", got)
	}
}

func TestDecodesBareItemArray(t *testing.T) {
	transport := &fakeTransport{response: `[
		{"label": "println", "kind": 3, "detail": "func(...)"},
		{"label": "print", "kind": 3}
	]`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("pr", 2))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Kind != suggest.KindFunction {
		t.Errorf("Kind = %v, want KindFunction", items[0].Kind)
	}
	if items[0].Detail != "func(...)" {
		t.Errorf("Detail = %q", items[0].Detail)
	}
	if items[0].Provider != "gopls" {
		t.Errorf("Provider = %q, want gopls", items[0].Provider)
	}
}

func TestDecodesCompletionList(t *testing.T) {
	transport := &fakeTransport{response: `{
		"isIncomplete": true,
		"items": [{"label": "alpha"}]
	}`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("", 0))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 1 || items[0].Label != "alpha" {
		t.Fatalf("items = %v, want single alpha", items)
	}
	// insertText falls back to the label.
	if items[0].InsertText != "alpha" {
		t.Errorf("InsertText = %q, want alpha", items[0].InsertText)
	}
}

func TestDecodesTextEditExtents(t *testing.T) {
	// Document "ab.cd" with cursor after "c" (offset 4). The edit
	// replaces "cd", so one byte on each side of the cursor.
	transport := &fakeTransport{response: `[{
		"label": "code",
		"textEdit": {
			"range": {
				"start": {"line": 0, "character": 3},
				"end": {"line": 0, "character": 5}
			},
			"newText": "code"
		}
	}]`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("ab.cd", 4))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	c := items[0]
	if c.OverwriteBefore != 1 {
		t.Errorf("OverwriteBefore = %d, want 1", c.OverwriteBefore)
	}
	if c.OverwriteAfter != 1 {
		t.Errorf("OverwriteAfter = %d, want 1", c.OverwriteAfter)
	}
	if c.InsertText != "code" {
		t.Errorf("InsertText = %q, want code", c.InsertText)
	}
}

func TestDecodesSnippetFormat(t *testing.T) {
	transport := &fakeTransport{response: `[{
		"label": "printf",
		"insertText": "printf(${1:format})$0",
		"insertTextFormat": 2,
		"kind": 15
	}]`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("", 0))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !items[0].IsTemplate {
		t.Error("IsTemplate = false for snippet format")
	}
	if items[0].Kind != suggest.KindSnippet {
		t.Errorf("Kind = %v, want KindSnippet", items[0].Kind)
	}
}

func TestDecodesAdditionalEditsAndCommand(t *testing.T) {
	transport := &fakeTransport{response: `[{
		"label": "Println",
		"additionalTextEdits": [{
			"range": {
				"start": {"line": 0, "character": 0},
				"end": {"line": 0, "character": 0}
			},
			"newText": "import \"fmt\"\n"
		}],
		"command": {
			"title": "Organize imports",
			"command": "editor.organizeImports",
			"arguments": ["file:///main.go"]
		}
	}]`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("Pr", 2))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	c := items[0]
	if len(c.AdditionalEdits) != 1 {
		t.Fatalf("AdditionalEdits = %d, want 1", len(c.AdditionalEdits))
	}
	if c.AdditionalEdits[0].NewText != "import \"fmt\"\n" {
		t.Errorf("edit NewText = %q", c.AdditionalEdits[0].NewText)
	}
	if c.Command == nil || c.Command.ID != "editor.organizeImports" {
		t.Fatalf("Command = %+v, want editor.organizeImports", c.Command)
	}
	if len(c.Command.Args) != 1 {
		t.Errorf("Command args = %d, want 1", len(c.Command.Args))
	}
}

func TestSkipsItemsWithoutLabel(t *testing.T) {
	transport := &fakeTransport{response: `[{"kind": 1}, {"label": "ok"}]`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("", 0))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(items) != 1 || items[0].Label != "ok" {
		t.Fatalf("items = %v, want single ok", items)
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	transport := &fakeTransport{err: errors.New("server gone")}
	p := New("gopls", "file:///main.go", transport)

	if _, err := p.Complete(context.Background(), lspRequest("", 0)); err == nil {
		t.Fatal("Complete() error = nil, want transport error")
	}
}

func TestUnknownKindFallsBackToText(t *testing.T) {
	transport := &fakeTransport{response: `[{"label": "x", "kind": 99}]`}
	p := New("gopls", "file:///main.go", transport)

	items, err := p.Complete(context.Background(), lspRequest("", 0))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if items[0].Kind != suggest.KindText {
		t.Errorf("Kind = %v for unknown, want KindText", items[0].Kind)
	}
}
