package mdast

import "strings"

// Inline is a span of text within a block.
//
// String reproduces the delimiters that bounded the span.
type Inline interface {
	Kind() InlineKind
	String() string
}

// Text is a literal run of text.
type Text struct {
	Text string

	// Escaped marks a backslash escape; String restores the backslash.
	Escaped bool
}

// Kind implements Inline.
func (*Text) Kind() InlineKind { return InlineText }

func (t *Text) String() string {
	if t.Escaped {
		return `\` + t.Text
	}

	return t.Text
}

// Bold is strong emphasis delimited by "**" or "__".
type Bold struct {
	Delimiter string
	Inlines   []Inline
}

// Kind implements Inline.
func (*Bold) Kind() InlineKind { return InlineBold }

func (b *Bold) String() string {
	return surround(b.Delimiter, "**", b.Inlines)
}

// Italic is emphasis delimited by "*" or "_".
type Italic struct {
	Delimiter string
	Inlines   []Inline
}

// Kind implements Inline.
func (*Italic) Kind() InlineKind { return InlineItalic }

func (i *Italic) String() string {
	return surround(i.Delimiter, "*", i.Inlines)
}

// Strikethrough is delimited by "~~".
type Strikethrough struct {
	Inlines []Inline
}

// Kind implements Inline.
func (*Strikethrough) Kind() InlineKind { return InlineStrikethrough }

func (s *Strikethrough) String() string {
	return "~~" + InlinesString(s.Inlines) + "~~"
}

// Subscript is delimited by <sub> and </sub>.
type Subscript struct {
	Inlines []Inline
}

// Kind implements Inline.
func (*Subscript) Kind() InlineKind { return InlineSubscript }

func (s *Subscript) String() string {
	return "<sub>" + InlinesString(s.Inlines) + "</sub>"
}

// Superscript is delimited by <sup> and </sup>.
type Superscript struct {
	Inlines []Inline
}

// Kind implements Inline.
func (*Superscript) Kind() InlineKind { return InlineSuperscript }

func (s *Superscript) String() string {
	return "<sup>" + InlinesString(s.Inlines) + "</sup>"
}

// CodeSpan is inline code. Its text is not parsed further.
type CodeSpan struct {
	Text string
}

// Kind implements Inline.
func (*CodeSpan) Kind() InlineKind { return InlineCodeSpan }

func (c *CodeSpan) String() string {
	fence := strings.Repeat("`", longestRun(c.Text, '`')+1)

	if strings.HasPrefix(c.Text, "`") || strings.HasSuffix(c.Text, "`") {
		return fence + " " + c.Text + " " + fence
	}

	return fence + c.Text + fence
}

// Link is an inline link.
type Link struct {
	Inlines []Inline
	URL     string
	Title   string
}

// Kind implements Inline.
func (*Link) Kind() InlineKind { return InlineLink }

func (l *Link) String() string {
	return "[" + InlinesString(l.Inlines) + "](" + destination(l.URL, l.Title) + ")"
}

// Image is an inline image; Alt is its description text.
type Image struct {
	Alt   string
	URL   string
	Title string
}

// Kind implements Inline.
func (*Image) Kind() InlineKind { return InlineImage }

func (i *Image) String() string {
	return "![" + i.Alt + "](" + destination(i.URL, i.Title) + ")"
}

// InlinesString concatenates the Markdown form of inlines.
func InlinesString(inlines []Inline) string {
	var builder strings.Builder
	for _, in := range inlines {
		builder.WriteString(in.String())
	}

	return builder.String()
}

// PlainText concatenates the text content of inlines without delimiters.
func PlainText(inlines []Inline) string {
	var builder strings.Builder
	writePlain(&builder, inlines)

	return builder.String()
}

func writePlain(builder *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *Text:
			builder.WriteString(n.Text)
		case *CodeSpan:
			builder.WriteString(n.Text)
		case *Image:
			builder.WriteString(n.Alt)
		default:
			writePlain(builder, InlineChildren(in))
		}
	}
}

func surround(delimiter, fallback string, inlines []Inline) string {
	if delimiter == "" {
		delimiter = fallback
	}

	return delimiter + InlinesString(inlines) + delimiter
}

func destination(url, title string) string {
	if title == "" {
		return url
	}

	return url + ` "` + title + `"`
}
