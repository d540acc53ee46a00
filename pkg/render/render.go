// Package render turns mdast documents into output formats.
//
// A renderer implements one method per block and inline kind plus a
// catch-all for kinds it does not know, such as blocks from extension
// parsers. Walk and WalkInlines dispatch on the concrete node type and pass a
// caller-owned context through every call.
package render

import (
	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// BlockRenderer renders blocks into a context of type C.
type BlockRenderer[C any] interface {
	Paragraph(ctx C, b *mdast.Paragraph)
	Heading(ctx C, b *mdast.Heading)
	List(ctx C, b *mdast.List)
	ListItem(ctx C, b *mdast.ListItem)
	Quote(ctx C, b *mdast.Quote)
	Code(ctx C, b *mdast.Code)
	Table(ctx C, b *mdast.Table)
	HorizontalRule(ctx C, b *mdast.HorizontalRule)
	YamlHeader(ctx C, b *mdast.YamlHeader)

	// OtherBlock receives every block without a dedicated method.
	OtherBlock(ctx C, b mdast.Block)
}

// InlineRenderer renders inlines into a context of type C.
type InlineRenderer[C any] interface {
	Text(ctx C, in *mdast.Text)
	Bold(ctx C, in *mdast.Bold)
	Italic(ctx C, in *mdast.Italic)
	Strikethrough(ctx C, in *mdast.Strikethrough)
	Subscript(ctx C, in *mdast.Subscript)
	Superscript(ctx C, in *mdast.Superscript)
	CodeSpan(ctx C, in *mdast.CodeSpan)
	Link(ctx C, in *mdast.Link)
	Image(ctx C, in *mdast.Image)

	// OtherInline receives every inline without a dedicated method.
	OtherInline(ctx C, in mdast.Inline)
}

// Renderer renders both blocks and inlines.
type Renderer[C any] interface {
	BlockRenderer[C]
	InlineRenderer[C]
}

// Block dispatches b to the matching method of r.
func Block[C any](r BlockRenderer[C], ctx C, b mdast.Block) {
	switch n := b.(type) {
	case *mdast.Paragraph:
		r.Paragraph(ctx, n)
	case *mdast.Heading:
		r.Heading(ctx, n)
	case *mdast.List:
		r.List(ctx, n)
	case *mdast.ListItem:
		r.ListItem(ctx, n)
	case *mdast.Quote:
		r.Quote(ctx, n)
	case *mdast.Code:
		r.Code(ctx, n)
	case *mdast.Table:
		r.Table(ctx, n)
	case *mdast.HorizontalRule:
		r.HorizontalRule(ctx, n)
	case *mdast.YamlHeader:
		r.YamlHeader(ctx, n)
	default:
		r.OtherBlock(ctx, b)
	}
}

// Blocks renders each block in order.
func Blocks[C any](r BlockRenderer[C], ctx C, blocks []mdast.Block) {
	for _, b := range blocks {
		Block(r, ctx, b)
	}
}

// Inline dispatches in to the matching method of r.
func Inline[C any](r InlineRenderer[C], ctx C, in mdast.Inline) {
	switch n := in.(type) {
	case *mdast.Text:
		r.Text(ctx, n)
	case *mdast.Bold:
		r.Bold(ctx, n)
	case *mdast.Italic:
		r.Italic(ctx, n)
	case *mdast.Strikethrough:
		r.Strikethrough(ctx, n)
	case *mdast.Subscript:
		r.Subscript(ctx, n)
	case *mdast.Superscript:
		r.Superscript(ctx, n)
	case *mdast.CodeSpan:
		r.CodeSpan(ctx, n)
	case *mdast.Link:
		r.Link(ctx, n)
	case *mdast.Image:
		r.Image(ctx, n)
	default:
		r.OtherInline(ctx, in)
	}
}

// Inlines renders each inline in order.
func Inlines[C any](r InlineRenderer[C], ctx C, inlines []mdast.Inline) {
	for _, in := range inlines {
		Inline(r, ctx, in)
	}
}

// Document renders every top-level block of doc.
func Document[C any](r BlockRenderer[C], ctx C, doc *mdast.Document) {
	for i := range doc.Len() {
		Block(r, ctx, doc.At(i))
	}
}
