package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// mapper converts a goldmark AST into mdast blocks and inlines.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapBlocks maps the block children of a goldmark node.
func (m *mapper) mapBlocks(gmParent ast.Node) []mdast.Block {
	var blocks []mdast.Block

	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if block := m.mapBlock(child); block != nil {
			blocks = append(blocks, block)
		}
	}

	return blocks
}

// mapBlock converts a single goldmark block node.
//
//nolint:ireturn // mdast.Block is a sum type
func (m *mapper) mapBlock(gmNode ast.Node) mdast.Block {
	switch gmn := gmNode.(type) {
	case *ast.Heading:
		return &mdast.Heading{
			Level:   gmn.Level,
			Setext:  m.isSetext(gmn),
			Inlines: m.mapInlines(gmn),
		}

	case *ast.Paragraph, *ast.TextBlock:
		return &mdast.Paragraph{Inlines: m.mapInlines(gmNode)}

	case *ast.List:
		return m.mapList(gmn)

	case *ast.Blockquote:
		return &mdast.Quote{Blocks: m.mapBlocks(gmn)}

	case *ast.FencedCodeBlock:
		return &mdast.Code{
			Text:     m.linesText(gmn),
			Language: string(gmn.Language(m.content)),
			Fenced:   true,
		}

	case *ast.CodeBlock:
		return &mdast.Code{Text: m.linesText(gmn)}

	case *ast.ThematicBreak:
		return &mdast.HorizontalRule{}

	case *ast.HTMLBlock:
		// Raw HTML has no native block; keep its text as a paragraph.
		text := strings.TrimSpace(m.linesText(gmn))
		if gmn.HasClosure() {
			text += "\n" + strings.TrimSpace(string(gmn.ClosureLine.Value(m.content)))
		}

		return &mdast.Paragraph{Inlines: []mdast.Inline{&mdast.Text{Text: text}}}

	case *east.Table:
		return m.mapTable(gmn)

	default:
		// Unknown containers contribute their children in place.
		blocks := m.mapBlocks(gmNode)
		if len(blocks) == 1 {
			return blocks[0]
		}

		return nil
	}
}

// isSetext reports whether a heading was written with an underline.
func (m *mapper) isSetext(h *ast.Heading) bool {
	lines := h.Lines()
	if lines.Len() == 0 {
		return false
	}

	start := lines.At(0).Start
	lineStart := start
	for lineStart > 0 && m.content[lineStart-1] != '\n' {
		lineStart--
	}

	// ATX markers sit on the same line before the text.
	return bytes.IndexByte(m.content[lineStart:start], '#') < 0
}

// mapList converts a goldmark List.
func (m *mapper) mapList(list *ast.List) *mdast.List {
	out := &mdast.List{Style: mdast.ListBulleted}
	if list.IsOrdered() {
		out.Style = mdast.ListNumbered
	} else {
		out.Bullet = list.Marker
	}

	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}

		out.Items = append(out.Items, &mdast.ListItem{Blocks: m.mapBlocks(item)})
	}

	return out
}

// mapTable converts a GFM table; the header becomes the first row.
func (m *mapper) mapTable(table *east.Table) *mdast.Table {
	out := &mdast.Table{}

	for _, align := range table.Alignments {
		out.Columns = append(out.Columns, mdast.ColumnDefinition{Alignment: mapAlignment(align)})
	}

	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *east.TableHeader, *east.TableRow:
			out.Rows = append(out.Rows, m.mapTableRow(child))
		}
	}

	return out
}

func (m *mapper) mapTableRow(row ast.Node) mdast.TableRow {
	var out mdast.TableRow

	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*east.TableCell); ok {
			out.Cells = append(out.Cells, mdast.TableCell{Inlines: m.mapInlines(cell)})
		}
	}

	return out
}

func mapAlignment(align east.Alignment) mdast.Alignment {
	switch align {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignRight:
		return mdast.AlignRight
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignNone:
		return mdast.AlignNone
	default:
		return mdast.AlignNone
	}
}

// linesText joins a block's raw lines without the final line break.
func (m *mapper) linesText(gmNode ast.Node) string {
	var buf bytes.Buffer

	lines := gmNode.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}

	return strings.TrimRight(buf.String(), "\n")
}

// mapInlines maps inline children, merging adjacent text runs the way the
// native parser emits them.
func (m *mapper) mapInlines(gmParent ast.Node) []mdast.Inline {
	var out []mdast.Inline

	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		in := m.mapInline(child)
		if in == nil {
			continue
		}

		if text, ok := in.(*mdast.Text); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*mdast.Text); ok && !prev.Escaped {
				prev.Text += text.Text
				continue
			}
		}

		out = append(out, in)
	}

	// Soft breaks at the end of a block are not content.
	if n := len(out); n > 0 {
		if text, ok := out[n-1].(*mdast.Text); ok {
			text.Text = strings.TrimRight(text.Text, " ")
			if text.Text == "" {
				out = out[:n-1]
			}
		}
	}

	return out
}

// mapInline converts a single goldmark inline node.
//
//nolint:ireturn // mdast.Inline is a sum type
func (m *mapper) mapInline(gmNode ast.Node) mdast.Inline {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		value := string(util.UnescapePunctuations(gmn.Segment.Value(m.content)))
		if gmn.SoftLineBreak() || gmn.HardLineBreak() {
			value += " "
		}

		return &mdast.Text{Text: value}

	case *ast.String:
		return &mdast.Text{Text: string(gmn.Value)}

	case *ast.Emphasis:
		if gmn.Level == 2 {
			return &mdast.Bold{Delimiter: "**", Inlines: m.mapInlines(gmn)}
		}

		return &mdast.Italic{Delimiter: "*", Inlines: m.mapInlines(gmn)}

	case *ast.CodeSpan:
		var buf bytes.Buffer
		for child := gmn.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				buf.Write(t.Segment.Value(m.content))
			}
		}

		return &mdast.CodeSpan{Text: buf.String()}

	case *ast.Link:
		return &mdast.Link{
			Inlines: m.mapInlines(gmn),
			URL:     string(gmn.Destination),
			Title:   string(gmn.Title),
		}

	case *ast.Image:
		return &mdast.Image{
			Alt:   mdast.PlainText(m.mapInlines(gmn)),
			URL:   string(gmn.Destination),
			Title: string(gmn.Title),
		}

	case *ast.AutoLink:
		return &mdast.Link{
			Inlines: []mdast.Inline{&mdast.Text{Text: string(gmn.Label(m.content))}},
			URL:     string(gmn.URL(m.content)),
		}

	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			buf.Write(seg.Value(m.content))
		}

		return &mdast.Text{Text: buf.String()}

	case *east.Strikethrough:
		return &mdast.Strikethrough{Inlines: m.mapInlines(gmn)}

	case *east.TaskCheckBox:
		if gmn.IsChecked {
			return &mdast.Text{Text: "[x] "}
		}

		return &mdast.Text{Text: "[ ] "}

	default:
		inlines := m.mapInlines(gmNode)
		if len(inlines) == 0 {
			return nil
		}

		return &mdast.Text{Text: mdast.PlainText(inlines)}
	}
}
