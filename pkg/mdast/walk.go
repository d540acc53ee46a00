package mdast

// WalkFunc is the function signature for Walk callbacks. depth is 0 for
// top-level blocks. Return a non-nil error to stop the walk.
type WalkFunc func(b Block, depth int) error

// Children returns the child blocks of a container block, or nil.
func Children(b Block) []Block {
	switch n := b.(type) {
	case *List:
		children := make([]Block, len(n.Items))
		for i, item := range n.Items {
			children[i] = item
		}
		return children
	case *ListItem:
		return n.Blocks
	case *Quote:
		return n.Blocks
	default:
		return nil
	}
}

// Inlines returns the inline content of a leaf block. Tables return the
// inlines of every cell in row order.
func Inlines(b Block) []Inline {
	switch n := b.(type) {
	case *Paragraph:
		return n.Inlines
	case *Heading:
		return n.Inlines
	case *Table:
		var all []Inline
		for _, row := range n.Rows {
			for _, cell := range row.Cells {
				all = append(all, cell.Inlines...)
			}
		}
		return all
	default:
		return nil
	}
}

// InlineChildren returns the children of a container inline, or nil.
func InlineChildren(in Inline) []Inline {
	switch n := in.(type) {
	case *Bold:
		return n.Inlines
	case *Italic:
		return n.Inlines
	case *Strikethrough:
		return n.Inlines
	case *Subscript:
		return n.Inlines
	case *Superscript:
		return n.Inlines
	case *Link:
		return n.Inlines
	default:
		return nil
	}
}

// Walk performs a pre-order traversal of blocks.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(blocks []Block, walkFunc WalkFunc) error {
	return walk(blocks, 0, walkFunc)
}

func walk(blocks []Block, depth int, walkFunc WalkFunc) error {
	for _, b := range blocks {
		if err := walkFunc(b, depth); err != nil {
			return err
		}

		if err := walk(Children(b), depth+1, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkInlines performs a pre-order traversal of inlines.
func WalkInlines(inlines []Inline, fn func(in Inline) error) error {
	for _, in := range inlines {
		if err := fn(in); err != nil {
			return err
		}

		if err := WalkInlines(InlineChildren(in), fn); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all blocks matching the predicate in document order.
func FindAll(doc *Document, predicate func(b Block) bool) []Block {
	var result []Block

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(doc.blocks, func(b Block, _ int) error {
		if predicate(b) {
			result = append(result, b)
		}
		return nil
	})

	return result
}

// FindFirst returns the first block matching the predicate, or nil.
func FindFirst(doc *Document, predicate func(b Block) bool) Block {
	var found Block

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(doc.blocks, func(b Block, _ int) error {
		if predicate(b) {
			found = b
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all blocks of the specified kind.
func FindByKind(doc *Document, kind BlockKind) []Block {
	return FindAll(doc, func(b Block) bool {
		return b.Kind() == kind
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
