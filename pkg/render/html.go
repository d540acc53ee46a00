package render

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// HTMLOptions configures the HTML renderer.
type HTMLOptions struct {
	// HeadingIDs adds slug id attributes to headings.
	HeadingIDs bool

	// Safe replaces javascript:, vbscript: and non-image data: URLs with "#".
	Safe bool
}

// HTML renders doc as an HTML fragment.
func HTML(doc *mdast.Document, opts HTMLOptions) string {
	ctx := NewHTMLContext(opts)
	Document[*HTMLContext](HTMLRenderer{}, ctx, doc)

	return ctx.buf.String()
}

// HTMLContext accumulates HTML output.
type HTMLContext struct {
	buf   strings.Builder
	opts  HTMLOptions
	slugs *Slugger
}

// NewHTMLContext returns an empty context.
func NewHTMLContext(opts HTMLOptions) *HTMLContext {
	return &HTMLContext{opts: opts, slugs: NewSlugger()}
}

// String returns the HTML written so far.
func (c *HTMLContext) String() string {
	return c.buf.String()
}

func (c *HTMLContext) raw(list ...string) {
	for _, s := range list {
		c.buf.WriteString(s)
	}
}

func (c *HTMLContext) text(s string) {
	c.buf.Write(util.EscapeHTML([]byte(s)))
}

func (c *HTMLContext) url(dest string, image bool) {
	if c.opts.Safe && unsafeURL(dest, image) {
		dest = "#"
	}

	c.buf.Write(util.EscapeHTML(util.URLEscape([]byte(dest), false)))
}

// HTMLRenderer writes HTML into an HTMLContext.
type HTMLRenderer struct{}

var _ Renderer[*HTMLContext] = HTMLRenderer{}

func (r HTMLRenderer) Paragraph(ctx *HTMLContext, b *mdast.Paragraph) {
	ctx.raw("<p>")
	Inlines(r, ctx, b.Inlines)
	ctx.raw("</p>\n")
}

func (r HTMLRenderer) Heading(ctx *HTMLContext, b *mdast.Heading) {
	tag := "h" + strconv.Itoa(b.Level)

	ctx.raw("<", tag)
	if ctx.opts.HeadingIDs {
		if id := ctx.slugs.Slug(mdast.PlainText(b.Inlines)); id != "" {
			ctx.raw(` id="`)
			ctx.text(id)
			ctx.raw(`"`)
		}
	}
	ctx.raw(">")
	Inlines(r, ctx, b.Inlines)
	ctx.raw("</", tag, ">\n")
}

func (r HTMLRenderer) List(ctx *HTMLContext, b *mdast.List) {
	tag := "ul"
	if b.Style == mdast.ListNumbered {
		tag = "ol"
	}

	ctx.raw("<", tag, ">\n")
	for _, item := range b.Items {
		r.ListItem(ctx, item)
	}
	ctx.raw("</", tag, ">\n")
}

// ListItem renders a single paragraph item without the <p> wrapper.
func (r HTMLRenderer) ListItem(ctx *HTMLContext, b *mdast.ListItem) {
	if len(b.Blocks) == 1 {
		if para, ok := b.Blocks[0].(*mdast.Paragraph); ok {
			ctx.raw("<li>")
			Inlines(r, ctx, para.Inlines)
			ctx.raw("</li>\n")

			return
		}
	}

	ctx.raw("<li>\n")
	Blocks(r, ctx, b.Blocks)
	ctx.raw("</li>\n")
}

func (r HTMLRenderer) Quote(ctx *HTMLContext, b *mdast.Quote) {
	ctx.raw("<blockquote>\n")
	Blocks(r, ctx, b.Blocks)
	ctx.raw("</blockquote>\n")
}

func (HTMLRenderer) Code(ctx *HTMLContext, b *mdast.Code) {
	ctx.raw("<pre><code")

	lang := b.Language
	if lang == "" {
		lang = strings.ToLower(b.DetectedLanguage)
	}

	if lang != "" {
		ctx.raw(` class="language-`)
		ctx.text(lang)
		ctx.raw(`"`)
	}

	ctx.raw(">")
	ctx.text(b.Text)
	if b.Text != "" {
		ctx.raw("\n")
	}
	ctx.raw("</code></pre>\n")
}

func (r HTMLRenderer) Table(ctx *HTMLContext, b *mdast.Table) {
	ctx.raw("<table>\n")

	for i, row := range b.Rows {
		cell := "td"
		switch i {
		case 0:
			cell = "th"
			ctx.raw("<thead>\n")
		case 1:
			ctx.raw("<tbody>\n")
		}

		ctx.raw("<tr>\n")
		for col, def := range b.Columns {
			ctx.raw("<", cell)
			if def.Alignment != mdast.AlignNone {
				ctx.raw(` style="text-align:`, def.Alignment.String(), `"`)
			}
			ctx.raw(">")

			if col < len(row.Cells) {
				Inlines(r, ctx, row.Cells[col].Inlines)
			}

			ctx.raw("</", cell, ">\n")
		}
		ctx.raw("</tr>\n")

		if i == 0 {
			ctx.raw("</thead>\n")
		}
	}

	if len(b.Rows) > 1 {
		ctx.raw("</tbody>\n")
	}

	ctx.raw("</table>\n")
}

func (HTMLRenderer) HorizontalRule(ctx *HTMLContext, _ *mdast.HorizontalRule) {
	ctx.raw("<hr />\n")
}

// YamlHeader writes nothing; front matter is metadata.
func (HTMLRenderer) YamlHeader(*HTMLContext, *mdast.YamlHeader) {}

func (HTMLRenderer) OtherBlock(ctx *HTMLContext, b mdast.Block) {
	ctx.raw(`<div data-kind="`, b.Kind().String(), `">`)
	ctx.text(b.String())
	ctx.raw("</div>\n")
}

func (HTMLRenderer) Text(ctx *HTMLContext, in *mdast.Text) {
	ctx.text(in.Text)
}

func (r HTMLRenderer) Bold(ctx *HTMLContext, in *mdast.Bold) {
	ctx.raw("<strong>")
	Inlines(r, ctx, in.Inlines)
	ctx.raw("</strong>")
}

func (r HTMLRenderer) Italic(ctx *HTMLContext, in *mdast.Italic) {
	ctx.raw("<em>")
	Inlines(r, ctx, in.Inlines)
	ctx.raw("</em>")
}

func (r HTMLRenderer) Strikethrough(ctx *HTMLContext, in *mdast.Strikethrough) {
	ctx.raw("<del>")
	Inlines(r, ctx, in.Inlines)
	ctx.raw("</del>")
}

func (r HTMLRenderer) Subscript(ctx *HTMLContext, in *mdast.Subscript) {
	ctx.raw("<sub>")
	Inlines(r, ctx, in.Inlines)
	ctx.raw("</sub>")
}

func (r HTMLRenderer) Superscript(ctx *HTMLContext, in *mdast.Superscript) {
	ctx.raw("<sup>")
	Inlines(r, ctx, in.Inlines)
	ctx.raw("</sup>")
}

func (HTMLRenderer) CodeSpan(ctx *HTMLContext, in *mdast.CodeSpan) {
	ctx.raw("<code>")
	ctx.text(in.Text)
	ctx.raw("</code>")
}

func (r HTMLRenderer) Link(ctx *HTMLContext, in *mdast.Link) {
	ctx.raw(`<a href="`)
	ctx.url(in.URL, false)
	ctx.raw(`"`)

	if in.Title != "" {
		ctx.raw(` title="`)
		ctx.text(in.Title)
		ctx.raw(`"`)
	}

	ctx.raw(">")
	Inlines(r, ctx, in.Inlines)
	ctx.raw("</a>")
}

func (HTMLRenderer) Image(ctx *HTMLContext, in *mdast.Image) {
	ctx.raw(`<img src="`)
	ctx.url(in.URL, true)
	ctx.raw(`" alt="`)
	ctx.text(in.Alt)
	ctx.raw(`"`)

	if in.Title != "" {
		ctx.raw(` title="`)
		ctx.text(in.Title)
		ctx.raw(`"`)
	}

	ctx.raw(" />")
}

func (HTMLRenderer) OtherInline(ctx *HTMLContext, in mdast.Inline) {
	ctx.text(in.String())
}

// unsafeURL reports whether dest uses a script-capable scheme.
func unsafeURL(dest string, image bool) bool {
	lower := strings.ToLower(strings.TrimSpace(dest))

	switch {
	case strings.HasPrefix(lower, "javascript:"), strings.HasPrefix(lower, "vbscript:"):
		return true
	case strings.HasPrefix(lower, "data:"):
		return !image || !strings.HasPrefix(lower, "data:image/")
	default:
		return false
	}
}
