// Package lsp provides language-server completion over a JSON-RPC
// transport. Requests and responses use the textDocument/completion
// protocol shape.
package lsp

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/suggest/internal/provider"
	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

// MethodCompletion is the completion request method name.
const MethodCompletion = "textDocument/completion"

// Transport sends a request to the language server and returns the
// raw JSON result.
type Transport interface {
	Request(ctx context.Context, method string, params []byte) ([]byte, error)
}

// Provider completes through a language server.
type Provider struct {
	name      string
	uri       string
	transport Transport
}

// New creates an LSP completion provider. name tags the candidates it
// produces; uri identifies the document to the server.
func New(name, uri string, transport Transport) *Provider {
	return &Provider{name: name, uri: uri, transport: transport}
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return p.name
}

// Complete implements provider.Provider.
func (p *Provider) Complete(ctx context.Context, req provider.Request) ([]suggest.Candidate, error) {
	params, err := p.buildParams(req)
	if err != nil {
		return nil, fmt.Errorf("build completion params: %w", err)
	}

	raw, err := p.transport.Request(ctx, MethodCompletion, params)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}

	return p.decodeResult(raw, req), nil
}

// buildParams assembles textDocument/completion params.
func (p *Provider) buildParams(req provider.Request) ([]byte, error) {
	out := "{}"
	var err error
	if out, err = sjson.Set(out, "textDocument.uri", p.uri); err != nil {
		return nil, err
	}
	if out, err = sjson.Set(out, "position.line", req.Position.Line); err != nil {
		return nil, err
	}
	if out, err = sjson.Set(out, "position.character", req.Position.Column); err != nil {
		return nil, err
	}
	kind := 1 // Invoked
	if !req.Explicit {
		kind = 2 // TriggerCharacter
	}
	if out, err = sjson.Set(out, "context.triggerKind", kind); err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// decodeResult converts a completion response into candidates. The
// result is either a bare item array or a CompletionList object.
func (p *Provider) decodeResult(raw []byte, req provider.Request) []suggest.Candidate {
	result := gjson.ParseBytes(raw)

	items := result
	if result.IsObject() {
		items = result.Get("items")
	}
	if !items.IsArray() {
		return nil
	}

	var out []suggest.Candidate
	items.ForEach(func(_, item gjson.Result) bool {
		if c, ok := p.decodeItem(item, req); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

// decodeItem converts one completion item.
func (p *Provider) decodeItem(item gjson.Result, req provider.Request) (suggest.Candidate, bool) {
	label := item.Get("label").String()
	if label == "" {
		return suggest.Candidate{}, false
	}

	c := suggest.Candidate{
		Label:      label,
		Kind:       kindFromLSP(item.Get("kind").Int()),
		Detail:     item.Get("detail").String(),
		InsertText: item.Get("insertText").String(),
		FilterText: item.Get("filterText").String(),
		SortText:   item.Get("sortText").String(),
		Preselect:  item.Get("preselect").Bool(),
		IsTemplate: item.Get("insertTextFormat").Int() == 2,
		Position:   req.Position,
		Provider:   p.name,
	}

	if edit := item.Get("textEdit"); edit.Exists() {
		rng := edit.Get("range")
		if !rng.Exists() {
			// insertReplaceEdit variant; use the insert range.
			rng = edit.Get("insert")
		}
		start := req.Doc.PointToOffset(decodePoint(rng.Get("start")))
		end := req.Doc.PointToOffset(decodePoint(rng.Get("end")))
		if start <= req.Offset && req.Offset <= end {
			c.OverwriteBefore = int64(req.Offset - start)
			c.OverwriteAfter = int64(end - req.Offset)
		}
		c.InsertText = edit.Get("newText").String()
	}

	if c.InsertText == "" {
		c.InsertText = label
	}

	if extra := item.Get("additionalTextEdits"); extra.IsArray() {
		extra.ForEach(func(_, e gjson.Result) bool {
			c.AdditionalEdits = append(c.AdditionalEdits, textdoc.Edit{
				Range: textdoc.Range{
					Start: req.Doc.PointToOffset(decodePoint(e.Get("range.start"))),
					End:   req.Doc.PointToOffset(decodePoint(e.Get("range.end"))),
				},
				NewText: e.Get("newText").String(),
			})
			return true
		})
	}

	if cmd := item.Get("command"); cmd.Exists() {
		ref := &suggest.CommandRef{ID: cmd.Get("command").String()}
		if args := cmd.Get("arguments"); args.IsArray() {
			for _, a := range args.Array() {
				ref.Args = append(ref.Args, a.Value())
			}
		}
		c.Command = ref
	}

	return c, true
}

// decodePoint converts an LSP position object.
func decodePoint(pos gjson.Result) textdoc.Point {
	return textdoc.Point{
		Line:   uint32(pos.Get("line").Int()),
		Column: uint32(pos.Get("character").Int()),
	}
}

// kindFromLSP maps an LSP CompletionItemKind to a candidate kind.
// LSP kinds are 1-based in the same order.
func kindFromLSP(n int64) suggest.Kind {
	if n >= 1 && n <= int64(suggest.KindTypeParameter)+1 {
		return suggest.Kind(n - 1)
	}
	return suggest.KindText
}
