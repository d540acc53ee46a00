package render

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// Text renders doc as plain text: no markup, blocks separated by blank
// lines, list items keep their markers and nested content is indented.
func Text(doc *mdast.Document) string {
	ctx := &TextContext{}
	Document[*TextContext](TextRenderer{}, ctx, doc)

	if len(ctx.parts) == 0 {
		return ""
	}

	return ctx.String() + "\n"
}

// TextContext collects rendered blocks and the inline text of the block
// being rendered.
type TextContext struct {
	parts  []string
	inline strings.Builder
}

// String joins the rendered blocks with blank lines.
func (c *TextContext) String() string {
	return strings.Join(c.parts, "\n\n")
}

func (c *TextContext) add(s string) {
	c.parts = append(c.parts, s)
}

// TextRenderer writes plain text into a TextContext.
type TextRenderer struct{}

var _ Renderer[*TextContext] = TextRenderer{}

func (r TextRenderer) inlines(inlines []mdast.Inline) string {
	ctx := &TextContext{}
	Inlines(r, ctx, inlines)

	return ctx.inline.String()
}

func (r TextRenderer) blocks(blocks []mdast.Block) string {
	ctx := &TextContext{}
	Blocks(r, ctx, blocks)

	return ctx.String()
}

func (r TextRenderer) Paragraph(ctx *TextContext, b *mdast.Paragraph) {
	ctx.add(r.inlines(b.Inlines))
}

func (r TextRenderer) Heading(ctx *TextContext, b *mdast.Heading) {
	ctx.add(r.inlines(b.Inlines))
}

func (r TextRenderer) List(ctx *TextContext, b *mdast.List) {
	lines := make([]string, 0, len(b.Items))

	for i, item := range b.Items {
		marker := "- "
		if b.Style == mdast.ListNumbered {
			marker = strconv.Itoa(i+1) + ". "
		}

		body := r.blocks(item.Blocks)
		lines = append(lines, marker+indentLines(body, strings.Repeat(" ", len(marker))))
	}

	ctx.add(strings.Join(lines, "\n"))
}

func (r TextRenderer) ListItem(ctx *TextContext, b *mdast.ListItem) {
	ctx.add(r.blocks(b.Blocks))
}

func (r TextRenderer) Quote(ctx *TextContext, b *mdast.Quote) {
	ctx.add(indentLines("  "+r.blocks(b.Blocks), "  "))
}

func (TextRenderer) Code(ctx *TextContext, b *mdast.Code) {
	ctx.add(b.Text)
}

func (r TextRenderer) Table(ctx *TextContext, b *mdast.Table) {
	rows := make([]string, 0, len(b.Rows))

	for _, row := range b.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = r.inlines(cell.Inlines)
		}

		rows = append(rows, strings.Join(cells, "\t"))
	}

	ctx.add(strings.Join(rows, "\n"))
}

func (TextRenderer) HorizontalRule(ctx *TextContext, _ *mdast.HorizontalRule) {
	ctx.add("---")
}

// YamlHeader writes nothing.
func (TextRenderer) YamlHeader(*TextContext, *mdast.YamlHeader) {}

func (TextRenderer) OtherBlock(ctx *TextContext, b mdast.Block) {
	ctx.add(b.String())
}

func (TextRenderer) Text(ctx *TextContext, in *mdast.Text) {
	ctx.inline.WriteString(in.Text)
}

func (r TextRenderer) Bold(ctx *TextContext, in *mdast.Bold) {
	Inlines(r, ctx, in.Inlines)
}

func (r TextRenderer) Italic(ctx *TextContext, in *mdast.Italic) {
	Inlines(r, ctx, in.Inlines)
}

func (r TextRenderer) Strikethrough(ctx *TextContext, in *mdast.Strikethrough) {
	Inlines(r, ctx, in.Inlines)
}

func (r TextRenderer) Subscript(ctx *TextContext, in *mdast.Subscript) {
	Inlines(r, ctx, in.Inlines)
}

func (r TextRenderer) Superscript(ctx *TextContext, in *mdast.Superscript) {
	Inlines(r, ctx, in.Inlines)
}

func (TextRenderer) CodeSpan(ctx *TextContext, in *mdast.CodeSpan) {
	ctx.inline.WriteString(in.Text)
}

func (r TextRenderer) Link(ctx *TextContext, in *mdast.Link) {
	Inlines(r, ctx, in.Inlines)
}

func (TextRenderer) Image(ctx *TextContext, in *mdast.Image) {
	ctx.inline.WriteString(in.Alt)
}

func (TextRenderer) OtherInline(ctx *TextContext, in mdast.Inline) {
	ctx.inline.WriteString(in.String())
}

// indentLines prefixes every non-empty line after the first.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
