package parser

import (
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// parseQuote recognizes "> " quotes. The '>' and one following space are
// stripped from each line. A single line without '>' continues the quote
// lazily unless it starts another block; a blank line or a second unmarked
// line ends it.
func parseQuote(st *BlockState, w textwin.Window) (mdast.Block, int) {
	first := w.Line(0)

	indent := leadingSpaces(first)
	if indent > maxMarkerIndent || indent >= len(first) || first[indent] != '>' {
		return nil, 0
	}

	lazy := false

	content := w.MustMap(func(line string, _ int) textwin.LineEdit {
		nonSpace := leadingSpaces(line)
		if nonSpace == len(line) {
			return textwin.LineEdit{Skip: true, Last: true}
		}

		start := nonSpace
		if line[nonSpace] == '>' {
			lazy = false
			start++
		} else {
			if lazy || interruptsParagraph(line) {
				return textwin.LineEdit{Skip: true, Last: true}
			}

			lazy = true
		}

		if start < len(line) && line[start] == ' ' {
			start++
		}

		return textwin.Keep(line, start)
	})

	quote := &mdast.Quote{}
	if !content.IsEmpty() {
		quote.Blocks = st.ParseBlocks(content)
	}

	return quote, content.LineCount()
}

// parseHorizontalRule recognizes "---", "***" and "___".
func parseHorizontalRule(_ *BlockState, w textwin.Window) (mdast.Block, int) {
	if !isHorizontalRule(w.Line(0)) {
		return nil, 0
	}

	return &mdast.HorizontalRule{}, 1
}
