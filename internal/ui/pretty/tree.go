package pretty

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gomdparse/pkg/render"
)

// Tree guides.
const (
	guideBranch = "├── "
	guideLast   = "└── "
	guidePipe   = "│   "
	guideSpace  = "    "

	minLiteralWidth = 12
)

// TreeFormatter draws a parsed document as an indented tree.
type TreeFormatter struct {
	styles *Styles
	width  int
}

// NewTreeFormatter creates a tree formatter that keeps lines within width
// where it can.
func NewTreeFormatter(styles *Styles, width int) *TreeFormatter {
	if width <= 0 {
		width = defaultTermWidth
	}
	return &TreeFormatter{styles: styles, width: width}
}

// treeNode is a display node: a label and its children.
type treeNode struct {
	kind     string
	inline   bool
	attrs    []string
	literal  string
	children []treeNode
}

// Format renders doc, titled with name when it is not empty.
func (f *TreeFormatter) Format(name string, doc render.JSONDocument) string {
	var builder strings.Builder

	title := "Document"
	if name != "" {
		title = f.styles.FilePath.Render(name)
	}
	builder.WriteString(title + "\n")

	nodes := convertNodes(doc.Blocks, false)
	if len(nodes) == 0 {
		builder.WriteString(f.styles.Dim.Render(guideLast+"(empty)") + "\n")
	}

	f.writeNodes(&builder, nodes, "")

	return builder.String()
}

func (f *TreeFormatter) writeNodes(builder *strings.Builder, nodes []treeNode, prefix string) {
	for i, n := range nodes {
		guide, next := guideBranch, guidePipe
		if i == len(nodes)-1 {
			guide, next = guideLast, guideSpace
		}

		builder.WriteString(f.styles.Guide.Render(prefix + guide))
		builder.WriteString(f.label(n, utf8.RuneCountInString(prefix+guide)))
		builder.WriteByte('\n')

		f.writeNodes(builder, n.children, prefix+next)
	}
}

func (f *TreeFormatter) label(n treeNode, indent int) string {
	kindStyle := f.styles.BlockKind
	if n.inline {
		kindStyle = f.styles.InlineKind
	}

	parts := []string{kindStyle.Render(n.kind)}
	used := indent + len(n.kind)

	for _, attr := range n.attrs {
		parts = append(parts, f.styles.Attr.Render(attr))
		used += 1 + len(attr)
	}

	if n.literal != "" {
		parts = append(parts, f.styles.Literal.Render(truncateQuoted(n.literal, f.width-used-1)))
	}

	return strings.Join(parts, " ")
}

// truncateQuoted quotes s, shortening it so the result fits in width runes.
func truncateQuoted(s string, width int) string {
	width = max(width, minLiteralWidth)

	quoted := strconv.Quote(s)
	if utf8.RuneCountInString(quoted) <= width {
		return quoted
	}

	runes := []rune(s)
	for len(runes) > 0 && utf8.RuneCountInString(strconv.Quote(string(runes)))+1 > width {
		runes = runes[:len(runes)-1]
	}

	return strconv.Quote(string(runes)) + "…"
}

// convertNodes turns JSON nodes into display nodes.
func convertNodes(nodes []render.JSONNode, inline bool) []treeNode {
	out := make([]treeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, convertNode(n, inline))
	}
	return out
}

func convertNode(n render.JSONNode, inline bool) treeNode {
	node := treeNode{
		kind:    n.Type,
		inline:  inline,
		attrs:   nodeAttrs(n),
		literal: n.Text,
	}

	if n.Alt != "" {
		node.literal = n.Alt
	}

	node.children = append(node.children, convertNodes(n.Children, false)...)
	node.children = append(node.children, convertNodes(n.Inlines, true)...)

	for i, row := range n.Rows {
		rowNode := treeNode{kind: "Row", attrs: []string{"#" + strconv.Itoa(i)}}
		for _, cell := range row {
			rowNode.children = append(rowNode.children, treeNode{
				kind:     "Cell",
				children: convertNodes(cell, true),
			})
		}
		node.children = append(node.children, rowNode)
	}

	return node
}

// nodeAttrs lists the set attributes of n as key=value pairs.
func nodeAttrs(n render.JSONNode) []string {
	var attrs []string

	add := func(key, value string) {
		if value != "" {
			attrs = append(attrs, key+"="+value)
		}
	}
	flag := func(key string, set bool) {
		if set {
			attrs = append(attrs, key)
		}
	}

	if n.Level > 0 {
		add("level", strconv.Itoa(n.Level))
	}
	flag("setext", n.Setext)
	add("style", n.Style)
	add("bullet", n.Bullet)
	add("lang", n.Language)
	add("detected", n.DetectedLanguage)
	flag("fenced", n.Fenced)
	add("delim", n.Delimiter)
	flag("escaped", n.Escaped)
	add("url", n.URL)
	if n.Title != "" {
		add("title", strconv.Quote(n.Title))
	}
	add("align", strings.Join(n.Align, ","))
	if len(n.Data) > 0 {
		add("keys", strconv.Itoa(len(n.Data)))
	}

	return attrs
}
