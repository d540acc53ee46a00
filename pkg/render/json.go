package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// JSONDocument is the top-level JSON structure.
type JSONDocument struct {
	Blocks []JSONNode `json:"blocks"`
}

// JSONNode is one block or inline. Type is the node kind name.
type JSONNode struct {
	Type string `json:"type"`

	Level            int    `json:"level,omitempty"`
	Setext           bool   `json:"setext,omitempty"`
	Style            string `json:"style,omitempty"`
	Bullet           string `json:"bullet,omitempty"`
	Language         string `json:"language,omitempty"`
	DetectedLanguage string `json:"detectedLanguage,omitempty"`
	Fenced           bool   `json:"fenced,omitempty"`
	Delimiter        string `json:"delimiter,omitempty"`
	Escaped          bool   `json:"escaped,omitempty"`
	Text             string `json:"text,omitempty"`
	URL              string `json:"url,omitempty"`
	Title            string `json:"title,omitempty"`
	Alt              string `json:"alt,omitempty"`

	Align []string       `json:"align,omitempty"`
	Rows  [][][]JSONNode `json:"rows,omitempty"`
	Data  map[string]any `json:"data,omitempty"`

	Children []JSONNode `json:"children,omitempty"`
	Inlines  []JSONNode `json:"inlines,omitempty"`
}

// NewJSONDocument converts doc to its JSON form.
func NewJSONDocument(doc *mdast.Document) JSONDocument {
	ctx := &JSONContext{}
	Document[*JSONContext](JSONRenderer{}, ctx, doc)

	if ctx.nodes == nil {
		ctx.nodes = []JSONNode{}
	}

	return JSONDocument{Blocks: ctx.nodes}
}

// EncodeJSON writes doc as JSON to w.
func EncodeJSON(w io.Writer, doc *mdast.Document, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(NewJSONDocument(doc)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// JSONContext collects converted nodes at one nesting level.
type JSONContext struct {
	nodes []JSONNode
}

func (c *JSONContext) add(n JSONNode) {
	c.nodes = append(c.nodes, n)
}

// JSONRenderer converts nodes into JSONNode values.
type JSONRenderer struct{}

var _ Renderer[*JSONContext] = JSONRenderer{}

func (r JSONRenderer) blocks(blocks []mdast.Block) []JSONNode {
	ctx := &JSONContext{}
	Blocks(r, ctx, blocks)

	return ctx.nodes
}

func (r JSONRenderer) inlines(inlines []mdast.Inline) []JSONNode {
	ctx := &JSONContext{}
	Inlines(r, ctx, inlines)

	return ctx.nodes
}

func (r JSONRenderer) Paragraph(ctx *JSONContext, b *mdast.Paragraph) {
	ctx.add(JSONNode{Type: b.Kind().String(), Inlines: r.inlines(b.Inlines)})
}

func (r JSONRenderer) Heading(ctx *JSONContext, b *mdast.Heading) {
	ctx.add(JSONNode{
		Type:    b.Kind().String(),
		Level:   b.Level,
		Setext:  b.Setext,
		Inlines: r.inlines(b.Inlines),
	})
}

func (r JSONRenderer) List(ctx *JSONContext, b *mdast.List) {
	node := JSONNode{Type: b.Kind().String(), Style: b.Style.String()}
	if b.Bullet != 0 {
		node.Bullet = string(b.Bullet)
	}

	items := &JSONContext{}
	for _, item := range b.Items {
		r.ListItem(items, item)
	}

	node.Children = items.nodes
	ctx.add(node)
}

func (r JSONRenderer) ListItem(ctx *JSONContext, b *mdast.ListItem) {
	ctx.add(JSONNode{Type: b.Kind().String(), Children: r.blocks(b.Blocks)})
}

func (r JSONRenderer) Quote(ctx *JSONContext, b *mdast.Quote) {
	ctx.add(JSONNode{Type: b.Kind().String(), Children: r.blocks(b.Blocks)})
}

func (JSONRenderer) Code(ctx *JSONContext, b *mdast.Code) {
	ctx.add(JSONNode{
		Type:             b.Kind().String(),
		Text:             b.Text,
		Language:         b.Language,
		DetectedLanguage: b.DetectedLanguage,
		Fenced:           b.Fenced,
	})
}

func (r JSONRenderer) Table(ctx *JSONContext, b *mdast.Table) {
	node := JSONNode{
		Type:  b.Kind().String(),
		Align: make([]string, len(b.Columns)),
		Rows:  make([][][]JSONNode, len(b.Rows)),
	}

	for i, col := range b.Columns {
		node.Align[i] = col.Alignment.String()
	}

	for i, row := range b.Rows {
		node.Rows[i] = make([][]JSONNode, len(row.Cells))
		for j, cell := range row.Cells {
			node.Rows[i][j] = r.inlines(cell.Inlines)
		}
	}

	ctx.add(node)
}

func (JSONRenderer) HorizontalRule(ctx *JSONContext, b *mdast.HorizontalRule) {
	ctx.add(JSONNode{Type: b.Kind().String()})
}

func (JSONRenderer) YamlHeader(ctx *JSONContext, b *mdast.YamlHeader) {
	ctx.add(JSONNode{Type: b.Kind().String(), Text: b.Raw, Data: b.Data})
}

func (JSONRenderer) OtherBlock(ctx *JSONContext, b mdast.Block) {
	ctx.add(JSONNode{Type: b.Kind().String(), Text: b.String()})
}

func (JSONRenderer) Text(ctx *JSONContext, in *mdast.Text) {
	ctx.add(JSONNode{Type: in.Kind().String(), Text: in.Text, Escaped: in.Escaped})
}

func (r JSONRenderer) Bold(ctx *JSONContext, in *mdast.Bold) {
	ctx.add(JSONNode{Type: in.Kind().String(), Delimiter: in.Delimiter, Inlines: r.inlines(in.Inlines)})
}

func (r JSONRenderer) Italic(ctx *JSONContext, in *mdast.Italic) {
	ctx.add(JSONNode{Type: in.Kind().String(), Delimiter: in.Delimiter, Inlines: r.inlines(in.Inlines)})
}

func (r JSONRenderer) Strikethrough(ctx *JSONContext, in *mdast.Strikethrough) {
	ctx.add(JSONNode{Type: in.Kind().String(), Inlines: r.inlines(in.Inlines)})
}

func (r JSONRenderer) Subscript(ctx *JSONContext, in *mdast.Subscript) {
	ctx.add(JSONNode{Type: in.Kind().String(), Inlines: r.inlines(in.Inlines)})
}

func (r JSONRenderer) Superscript(ctx *JSONContext, in *mdast.Superscript) {
	ctx.add(JSONNode{Type: in.Kind().String(), Inlines: r.inlines(in.Inlines)})
}

func (JSONRenderer) CodeSpan(ctx *JSONContext, in *mdast.CodeSpan) {
	ctx.add(JSONNode{Type: in.Kind().String(), Text: in.Text})
}

func (r JSONRenderer) Link(ctx *JSONContext, in *mdast.Link) {
	ctx.add(JSONNode{
		Type:    in.Kind().String(),
		URL:     in.URL,
		Title:   in.Title,
		Inlines: r.inlines(in.Inlines),
	})
}

func (JSONRenderer) Image(ctx *JSONContext, in *mdast.Image) {
	ctx.add(JSONNode{Type: in.Kind().String(), Alt: in.Alt, URL: in.URL, Title: in.Title})
}

func (JSONRenderer) OtherInline(ctx *JSONContext, in mdast.Inline) {
	ctx.add(JSONNode{Type: in.Kind().String(), Text: in.String()})
}
