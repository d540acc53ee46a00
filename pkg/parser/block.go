package parser

import (
	"errors"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// ErrUnknownParser is returned when a disabled parser ID is not registered.
var ErrUnknownParser = errors.New("parser: unknown parser id")

// BlockFunc recognizes a block at the first line of w. It returns the block
// and the number of lines consumed, or nil and 0 when the line does not match.
type BlockFunc func(st *BlockState, w textwin.Window) (mdast.Block, int)

// BlockState is the engine state visible to block parsers.
type BlockState struct {
	parser *Parser

	// ParagraphPending reports whether unclaimed text lines precede the
	// current line. Constructs that cannot interrupt a paragraph check it.
	ParagraphPending bool

	// Depth is the container nesting depth; 0 at document level.
	Depth int

	// DocumentStart is true on the first line of the document.
	DocumentStart bool
}

// ParseBlocks parses w as the content of a container block.
func (st *BlockState) ParseBlocks(w textwin.Window) []mdast.Block {
	return st.parser.parseBlocks(w, st.Depth+1)
}

// ParseInlines parses w as inline text. Each line is trimmed and line breaks
// become spaces.
func (st *BlockState) ParseInlines(w textwin.Window) []mdast.Inline {
	return st.parser.parseText(w)
}

// DetectLanguage runs the configured language detector, if any.
func (st *BlockState) DetectLanguage(code string) string {
	if st.parser.detectLanguage == nil || strings.TrimSpace(code) == "" {
		return ""
	}

	return st.parser.detectLanguage([]byte(code))
}

// parseBlocks is the block engine loop.
func (p *Parser) parseBlocks(w textwin.Window, depth int) []mdast.Block {
	var blocks []mdast.Block

	st := &BlockState{parser: p, Depth: depth}

	// Pending paragraph lines are always contiguous.
	paraStart, paraLen := 0, 0

	flush := func() {
		if paraLen == 0 {
			return
		}

		if para := p.paragraph(w.Lines(paraStart, paraLen)); para != nil {
			blocks = append(blocks, para)
		}

		paraLen = 0
	}

	for line := 0; line < w.LineCount(); {
		st.ParagraphPending = paraLen > 0
		st.DocumentStart = depth == 0 && line == 0

		if block, consumed := p.matchBlock(st, w.From(line)); block != nil {
			flush()
			blocks = append(blocks, block)
			line += consumed

			continue
		}

		if w.IsBlank(line) {
			flush()
			line++

			continue
		}

		if paraLen == 0 {
			paraStart = line
		}

		paraLen++
		line++
	}

	flush()

	return blocks
}

// matchBlock tries every block parser in resolved order.
func (p *Parser) matchBlock(st *BlockState, w textwin.Window) (mdast.Block, int) {
	for i := range p.blocks.Len() {
		block, consumed := p.blocks.At(i).Parse(st, w)
		if block == nil || consumed <= 0 {
			continue
		}

		return block, min(consumed, w.LineCount())
	}

	return nil, 0
}

// paragraph builds a paragraph from text lines, or nil if nothing is left
// after trimming.
func (p *Parser) paragraph(w textwin.Window) mdast.Block {
	inlines := p.parseText(w)
	if len(inlines) == 0 {
		return nil
	}

	return &mdast.Paragraph{Inlines: inlines}
}

// parseText trims every line of w and runs the inline engine over it.
func (p *Parser) parseText(w textwin.Window) []mdast.Inline {
	trimmed := w.MustMap(func(line string, _ int) textwin.LineEdit {
		start := len(line) - len(strings.TrimLeft(line, " \t"))
		end := len(strings.TrimRight(line, " \t"))

		if end < start {
			return textwin.LineEdit{Skip: true}
		}

		return textwin.LineEdit{Start: start, Length: end - start}
	}).Trim()

	if trimmed.IsEmpty() {
		return nil
	}

	return p.parseInlines(trimmed, trimmed.String())
}
