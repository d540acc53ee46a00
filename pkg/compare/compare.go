// Package compare reports structural differences between two block trees,
// typically the native parse of a document and goldmark's reading of it.
package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// Options controls how strictly trees are compared.
type Options struct {
	// Inlines compares inline structure as well as plain text.
	Inlines bool

	// IgnoreSetext treats setext and ATX headings as equal.
	IgnoreSetext bool
}

// Mismatch is one difference between the trees.
type Mismatch struct {
	// Path locates the block, e.g. "2/item[0]/1".
	Path string `json:"path"`

	// Ours and Theirs describe the differing nodes; empty means missing.
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: ours=%s theirs=%s", m.Path, orMissing(m.Ours), orMissing(m.Theirs))
}

func orMissing(s string) string {
	if s == "" {
		return "<missing>"
	}

	return s
}

// Blocks compares two block lists and returns their mismatches in document
// order. A nil result means the trees agree.
func Blocks(ours, theirs []mdast.Block, opts Options) []Mismatch {
	c := &comparer{opts: opts}
	c.blocks("", ours, theirs)

	return c.out
}

// Documents compares two documents.
func Documents(ours, theirs *mdast.Document, opts Options) []Mismatch {
	return Blocks(ours.Blocks(), theirs.Blocks(), opts)
}

type comparer struct {
	opts Options
	out  []Mismatch
}

func (c *comparer) blocks(prefix string, ours, theirs []mdast.Block) {
	for i := range max(len(ours), len(theirs)) {
		path := join(prefix, strconv.Itoa(i))

		switch {
		case i >= len(ours):
			c.report(path, "", c.describe(theirs[i]))
		case i >= len(theirs):
			c.report(path, c.describe(ours[i]), "")
		default:
			c.block(path, ours[i], theirs[i])
		}
	}
}

func (c *comparer) block(path string, ours, theirs mdast.Block) {
	left, right := c.describe(ours), c.describe(theirs)
	if left != right {
		c.report(path, left, right)
		return
	}

	ourList, ok := ours.(*mdast.List)
	if ok {
		theirList, _ := theirs.(*mdast.List)
		c.items(path, ourList.Items, theirList.Items)

		return
	}

	c.blocks(path, mdast.Children(ours), mdast.Children(theirs))
}

func (c *comparer) items(prefix string, ours, theirs []*mdast.ListItem) {
	for i := range max(len(ours), len(theirs)) {
		path := join(prefix, "item["+strconv.Itoa(i)+"]")

		switch {
		case i >= len(ours):
			c.report(path, "", "ListItem")
		case i >= len(theirs):
			c.report(path, "ListItem", "")
		default:
			c.blocks(path, ours[i].Blocks, theirs[i].Blocks)
		}
	}
}

func (c *comparer) report(path, ours, theirs string) {
	c.out = append(c.out, Mismatch{Path: path, Ours: ours, Theirs: theirs})
}

// describe summarizes the parts of a block that must agree. Children of
// containers are compared separately.
func (c *comparer) describe(b mdast.Block) string {
	kind := b.Kind().String()

	switch n := b.(type) {
	case *mdast.Heading:
		desc := kind + "(" + strconv.Itoa(n.Level)
		if n.Setext && !c.opts.IgnoreSetext {
			desc += ",setext"
		}

		return desc + ")" + c.inlines(n.Inlines)

	case *mdast.Paragraph:
		return kind + c.inlines(n.Inlines)

	case *mdast.List:
		return kind + "(" + n.Style.String() + "," + strconv.Itoa(len(n.Items)) + ")"

	case *mdast.Code:
		return fmt.Sprintf("%s(%s,fenced=%t)%q", kind, n.Language, n.Fenced, n.Text)

	case *mdast.Table:
		desc := kind + "("
		for i, col := range n.Columns {
			if i > 0 {
				desc += ","
			}
			desc += col.Alignment.String()
		}
		desc += ")"

		for _, row := range n.Rows {
			cells := make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				cells[i] = c.inlines(cell.Inlines)
			}
			desc += "[" + strings.Join(cells, "|") + "]"
		}

		return desc

	case *mdast.YamlHeader:
		return kind + strconv.Quote(n.Raw)

	default:
		return kind
	}
}

func (c *comparer) inlines(inlines []mdast.Inline) string {
	if !c.opts.Inlines {
		return strconv.Quote(normalizeSpace(mdast.PlainText(inlines)))
	}

	var builder strings.Builder
	c.writeInlines(&builder, inlines)

	return builder.String()
}

func (c *comparer) writeInlines(builder *strings.Builder, inlines []mdast.Inline) {
	builder.WriteByte('[')

	for i := 0; i < len(inlines); i++ {
		if i > 0 {
			builder.WriteByte(' ')
		}

		switch n := inlines[i].(type) {
		case *mdast.Text:
			// Escapes and line joins split text runs differently per parser.
			text := n.Text
			for i+1 < len(inlines) {
				next, ok := inlines[i+1].(*mdast.Text)
				if !ok {
					break
				}
				text += next.Text
				i++
			}
			builder.WriteString(strconv.Quote(normalizeSpace(text)))
		case *mdast.CodeSpan:
			builder.WriteString("CodeSpan" + strconv.Quote(n.Text))
		case *mdast.Image:
			builder.WriteString("Image(" + n.URL + ")" + strconv.Quote(n.Alt))
		case *mdast.Link:
			builder.WriteString("Link(" + n.URL + ")")
			c.writeInlines(builder, n.Inlines)
		default:
			builder.WriteString(n.Kind().String())
			c.writeInlines(builder, mdast.InlineChildren(n))
		}
	}

	builder.WriteByte(']')
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func join(prefix, part string) string {
	if prefix == "" {
		return part
	}

	return prefix + "/" + part
}
