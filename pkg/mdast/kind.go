// Package mdast defines the Markdown syntax tree produced by the parser.
//
// Blocks and inlines are tagged variants: every node reports its Kind and
// consumers switch on the concrete type. Nodes are built once by the parser
// and treated as read-only afterwards.
package mdast

//go:generate stringer -type=BlockKind -trimprefix=Block
//go:generate stringer -type=InlineKind -trimprefix=Inline

// BlockKind classifies a block node.
type BlockKind uint8

// Block kinds.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockListItem
	BlockQuote
	BlockCode
	BlockTable
	BlockHorizontalRule
	BlockYamlHeader

	// BlockCustom is reported by blocks from extension parsers.
	BlockCustom
)

// InlineKind classifies an inline node.
type InlineKind uint8

// Inline kinds.
const (
	InlineText InlineKind = iota
	InlineBold
	InlineItalic
	InlineStrikethrough
	InlineSubscript
	InlineSuperscript
	InlineCodeSpan
	InlineLink
	InlineImage

	// InlineCustom is reported by inlines from extension parsers.
	InlineCustom
)
