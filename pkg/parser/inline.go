package parser

import (
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// InlineFunc tries to parse an inline whose trigger byte is at pos. It
// returns the node and the offset just past it, or nil when the text at pos
// does not match.
type InlineFunc func(st *InlineState, pos textwin.Position) (mdast.Inline, int)

// InlineParser is the payload of an inline descriptor.
type InlineParser struct {
	// Triggers lists the bytes that can start this inline.
	Triggers string

	Parse InlineFunc
}

// InlineState is the engine state visible to inline parsers. Offsets index
// into Text, which is the String form of Window.
type InlineState struct {
	parser *Parser
	window textwin.Window
	text   string
}

// Text returns the text being parsed, lines joined by "\n".
func (st *InlineState) Text() string {
	return st.text
}

// Window returns the window being parsed.
func (st *InlineState) Window() textwin.Window {
	return st.window
}

// Parse runs the inline engine over Text()[start:end], typically the
// content between a pair of delimiters.
func (st *InlineState) Parse(start, end int) []mdast.Inline {
	sub, err := st.window.Slice(start, end-start)
	if err != nil {
		return textRun(nil, st.text[start:end])
	}

	return st.parser.parseInlines(sub, st.text[start:end])
}

// parseInlines is the inline engine loop. It jumps from trigger to trigger;
// text between recognized inlines is collected into text runs, and a trigger
// that no parser accepts stays part of the surrounding run.
func (p *Parser) parseInlines(w textwin.Window, text string) []mdast.Inline {
	st := &InlineState{parser: p, window: w, text: text}

	var out []mdast.Inline

	runStart := 0
	pos := w.IndexAny(p.triggers, w.Start())

	for pos.Found() {
		node, end := p.matchInline(st, pos)
		if node == nil {
			pos = w.IndexAny(p.triggers, textwin.Position{
				Line:   pos.Line,
				Column: pos.Column + 1,
				Offset: pos.Offset + 1,
			})

			continue
		}

		out = textRun(out, text[runStart:pos.Offset])
		out = append(out, node)
		runStart = end

		pos = w.IndexAny(p.triggers, w.PositionAt(end))
	}

	return textRun(out, text[runStart:])
}

// matchInline tries the parsers registered for the trigger byte at pos.
func (p *Parser) matchInline(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	for _, parse := range p.byTrigger[st.text[pos.Offset]] {
		node, end := parse(st, pos)
		if node != nil && end > pos.Offset && end <= len(st.text) {
			return node, end
		}
	}

	return nil, 0
}

// textRun appends s as a text node; line breaks become spaces.
func textRun(out []mdast.Inline, s string) []mdast.Inline {
	if s == "" {
		return out
	}

	return append(out, &mdast.Text{Text: strings.ReplaceAll(s, "\n", " ")})
}
