package parser

import (
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// parseATXHeading recognizes "# Title". The space after the hashes is
// optional, so "#Title" is a heading too. A closing run of hashes preceded
// by a space is dropped.
func parseATXHeading(st *BlockState, w textwin.Window) (mdast.Block, int) {
	line := w.Line(0)

	level, start := atxLevel(line)
	if level == 0 {
		return nil, 0
	}

	end := len(strings.TrimRight(line, " \t"))

	// Strip the optional closing sequence.
	closing := strings.TrimRight(line[:end], "#")
	if len(closing) < end && len(closing) > start {
		if last := closing[len(closing)-1]; last == ' ' || last == '\t' {
			end = len(strings.TrimRight(closing, " \t"))
		}
	}

	heading := &mdast.Heading{Level: level}
	if end > start {
		heading.Inlines = st.ParseInlines(lineSlice(w, 0, start, end))
	}

	return heading, 1
}

// parseSetextHeading recognizes a text line underlined by '=' (level 1) or
// '-' (level 2). It only starts a new block; an underline after several
// paragraph lines is left to the other parsers.
func parseSetextHeading(st *BlockState, w textwin.Window) (mdast.Block, int) {
	if st.ParagraphPending || w.LineCount() < 2 || w.IsBlank(0) {
		return nil, 0
	}

	if leadingSpaces(w.Line(0)) >= codeIndent {
		return nil, 0
	}

	level := setextLevel(w.Line(1))
	if level == 0 {
		return nil, 0
	}

	return &mdast.Heading{
		Level:   level,
		Setext:  true,
		Inlines: st.ParseInlines(w.Lines(0, 1)),
	}, 2
}

// setextLevel returns 1 for a line of '=', 2 for a line of '-', otherwise 0.
func setextLevel(line string) int {
	indent := leadingSpaces(line)
	if indent > maxMarkerIndent {
		return 0
	}

	rest := strings.TrimRight(line[indent:], " \t")
	if rest == "" {
		return 0
	}

	switch {
	case strings.Trim(rest, "=") == "":
		return 1
	case strings.Trim(rest, "-") == "":
		return 2
	default:
		return 0
	}
}
