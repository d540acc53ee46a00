package mdast

// Document is the result of one parse. It is read-only.
type Document struct {
	blocks []Block
}

// NewDocument wraps the top-level blocks. The slice is owned by the document.
func NewDocument(blocks []Block) *Document {
	return &Document{blocks: blocks}
}

// Blocks returns a copy of the top-level blocks.
func (d *Document) Blocks() []Block {
	return append([]Block(nil), d.blocks...)
}

// Len returns the number of top-level blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// At returns the i-th top-level block.
func (d *Document) At(i int) Block {
	return d.blocks[i]
}

// String renders the document back to Markdown.
func (d *Document) String() string {
	if len(d.blocks) == 0 {
		return ""
	}

	return BlocksString(d.blocks) + "\n"
}
