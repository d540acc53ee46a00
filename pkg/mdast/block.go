package mdast

import (
	"strconv"
	"strings"
)

// Block is a structural unit of a document.
//
// String renders the block back to Markdown; reparsing that text yields an
// equivalent block.
type Block interface {
	Kind() BlockKind
	String() string
}

// Paragraph is a run of text lines.
type Paragraph struct {
	Inlines []Inline
}

// Kind implements Block.
func (*Paragraph) Kind() BlockKind { return BlockParagraph }

func (p *Paragraph) String() string {
	return InlinesString(p.Inlines)
}

// Heading is an ATX ("# Title") or setext (underlined) heading.
type Heading struct {
	// Level is 1 through 6.
	Level int

	// Setext is true for underlined headings.
	Setext bool

	Inlines []Inline
}

// Kind implements Block.
func (*Heading) Kind() BlockKind { return BlockHeading }

func (h *Heading) String() string {
	text := InlinesString(h.Inlines)

	if h.Setext && h.Level <= 2 {
		underline := "="
		if h.Level == 2 {
			underline = "-"
		}

		return text + "\n" + strings.Repeat(underline, max(len(text), 3))
	}

	return strings.Repeat("#", h.Level) + " " + text
}

// ListStyle distinguishes bulleted from numbered lists.
type ListStyle uint8

// List styles.
const (
	ListBulleted ListStyle = iota
	ListNumbered
)

func (s ListStyle) String() string {
	switch s {
	case ListBulleted:
		return "bulleted"
	case ListNumbered:
		return "numbered"
	default:
		return "unknown"
	}
}

// List is a sequence of items sharing one style.
type List struct {
	Style ListStyle

	// Bullet is the marker character of a bulleted list's first item.
	Bullet byte

	Items []*ListItem
}

// Kind implements Block.
func (*List) Kind() BlockKind { return BlockList }

func (l *List) String() string {
	var builder strings.Builder

	for i, item := range l.Items {
		if i > 0 {
			builder.WriteByte('\n')
		}

		marker := "- "
		if l.Bullet == '*' || l.Bullet == '+' {
			marker = string(l.Bullet) + " "
		}

		if l.Style == ListNumbered {
			marker = strconv.Itoa(i+1) + ". "
		}

		builder.WriteString(marker)
		builder.WriteString(indentLines(item.String(), strings.Repeat(" ", len(marker))))
	}

	return builder.String()
}

// ListItem holds the blocks of one list entry.
type ListItem struct {
	Blocks []Block
}

// Kind implements Block.
func (*ListItem) Kind() BlockKind { return BlockListItem }

func (li *ListItem) String() string {
	return BlocksString(li.Blocks)
}

// Quote is a block quote.
type Quote struct {
	Blocks []Block
}

// Kind implements Block.
func (*Quote) Kind() BlockKind { return BlockQuote }

func (q *Quote) String() string {
	lines := strings.Split(BlocksString(q.Blocks), "\n")

	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}

		lines[i] = "> " + line
	}

	return strings.Join(lines, "\n")
}

// Code is a fenced or indented code block.
type Code struct {
	// Text is the code without fences or indentation.
	Text string

	// Language is the fence info string's first word.
	Language string

	// DetectedLanguage is filled by language detection when Language is empty.
	DetectedLanguage string

	// Fenced is false for indented code.
	Fenced bool
}

// Kind implements Block.
func (*Code) Kind() BlockKind { return BlockCode }

func (c *Code) String() string {
	if !c.Fenced {
		return indentAll(c.Text, "    ")
	}

	fence := strings.Repeat("`", max(3, longestRun(c.Text, '`')+1))

	return fence + c.Language + "\n" + c.Text + "\n" + fence
}

// Alignment is a table column's alignment.
type Alignment uint8

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignNone:
		return "none"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "unknown"
	}
}

// ColumnDefinition describes one table column.
type ColumnDefinition struct {
	Alignment Alignment
}

// TableCell is one cell of a row.
type TableCell struct {
	Inlines []Inline
}

// TableRow is one row; the first row of a table is its header.
type TableRow struct {
	Cells []TableCell
}

// Table is a pipe table.
type Table struct {
	Columns []ColumnDefinition
	Rows    []TableRow
}

// Kind implements Block.
func (*Table) Kind() BlockKind { return BlockTable }

func (t *Table) String() string {
	var builder strings.Builder

	for i, row := range t.Rows {
		if i > 0 {
			builder.WriteByte('\n')
		}

		builder.WriteByte('|')
		for col := range t.Columns {
			builder.WriteByte(' ')
			if col < len(row.Cells) {
				builder.WriteString(InlinesString(row.Cells[col].Inlines))
			}
			builder.WriteString(" |")
		}

		if i == 0 {
			builder.WriteString("\n|")
			for _, col := range t.Columns {
				builder.WriteString(separatorCell(col.Alignment))
				builder.WriteByte('|')
			}
		}
	}

	return builder.String()
}

func separatorCell(align Alignment) string {
	switch align {
	case AlignLeft:
		return ":---"
	case AlignRight:
		return "---:"
	case AlignCenter:
		return ":---:"
	default:
		return "---"
	}
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// Kind implements Block.
func (*HorizontalRule) Kind() BlockKind { return BlockHorizontalRule }

func (*HorizontalRule) String() string { return "***" }

// YamlHeader is front matter at the start of a document.
type YamlHeader struct {
	// Raw is the text between the delimiters.
	Raw string

	// Data is the decoded mapping.
	Data map[string]any
}

// Kind implements Block.
func (*YamlHeader) Kind() BlockKind { return BlockYamlHeader }

func (y *YamlHeader) String() string {
	return "---\n" + y.Raw + "\n---"
}

// BlocksString renders blocks separated by blank lines. A list that the next
// block would otherwise be read into is closed with a second blank line.
func BlocksString(blocks []Block) string {
	var builder strings.Builder

	for i, b := range blocks {
		if i > 0 {
			builder.WriteString("\n\n")
			if absorbsNext(blocks[i-1], b) {
				builder.WriteByte('\n')
			}
		}
		builder.WriteString(b.String())
	}

	return builder.String()
}

// absorbsNext reports whether next, printed one blank line after prev, would
// parse as part of prev: a list of the same style and bullet continues it,
// and indented code becomes content of its last item.
func absorbsNext(prev, next Block) bool {
	list, ok := prev.(*List)
	if !ok {
		return false
	}

	switch n := next.(type) {
	case *List:
		return n.Style == list.Style && (n.Style == ListNumbered || n.Bullet == list.Bullet)
	case *Code:
		return !n.Fenced
	default:
		return false
	}
}

// indentLines prefixes every line after the first, leaving blank lines empty.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}

func indentAll(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}

	return strings.Join(lines, "\n")
}

func longestRun(text string, c byte) int {
	best, run := 0, 0
	for idx := range len(text) {
		if text[idx] != c {
			run = 0
			continue
		}

		run++
		best = max(best, run)
	}

	return best
}
