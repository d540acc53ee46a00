package parser

import (
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// span is the result of matching a delimited inline: content is
// text[start:end] and the inline ends at next.
type span struct {
	start int
	end   int
	next  int
}

func parseBoldAsterisk(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchRun(st.text, pos.Offset, '*', 2)
	if !ok {
		return nil, 0
	}

	return &mdast.Bold{Delimiter: "**", Inlines: st.Parse(s.start, s.end)}, s.next
}

func parseBoldUnderscore(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchRun(st.text, pos.Offset, '_', 2)
	if !ok {
		return nil, 0
	}

	return &mdast.Bold{Delimiter: "__", Inlines: st.Parse(s.start, s.end)}, s.next
}

func parseItalicAsterisk(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchRun(st.text, pos.Offset, '*', 1)
	if !ok {
		return nil, 0
	}

	return &mdast.Italic{Delimiter: "*", Inlines: st.Parse(s.start, s.end)}, s.next
}

func parseItalicUnderscore(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchRun(st.text, pos.Offset, '_', 1)
	if !ok {
		return nil, 0
	}

	return &mdast.Italic{Delimiter: "_", Inlines: st.Parse(s.start, s.end)}, s.next
}

func parseStrikethrough(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchRun(st.text, pos.Offset, '~', 2)
	if !ok {
		return nil, 0
	}

	return &mdast.Strikethrough{Inlines: st.Parse(s.start, s.end)}, s.next
}

func parseSubscript(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchTag(st.text, pos.Offset, "<sub>", "</sub>")
	if !ok {
		return nil, 0
	}

	return &mdast.Subscript{Inlines: st.Parse(s.start, s.end)}, s.next
}

func parseSuperscript(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	s, ok := matchTag(st.text, pos.Offset, "<sup>", "</sup>")
	if !ok {
		return nil, 0
	}

	return &mdast.Superscript{Inlines: st.Parse(s.start, s.end)}, s.next
}

// matchRun matches n copies of c, non-empty content, and a closing run.
//
// The opener may not be followed by whitespace and the closer may not be
// preceded by it. '_' delimiters may not open or close inside a word. When
// the closing run is longer than n, its last n bytes close the span. For
// single delimiters, even-length runs belong to double delimiters and are
// skipped. When the opening run is longer than n, the closer is searched for
// after the whole run, and a closer shorter than that run is accepted only
// once another run inside the span can close the leftover delimiters.
// Otherwise the match is left to a later byte of the run, so "***a*" reads
// as "**" and an italic "a".
func matchRun(text string, at int, c byte, n int) (span, bool) {
	open := runLength(text, at, c)
	if at+n > len(text) || open < n {
		return span{}, false
	}

	// A double delimiter parser owns the start of an even run.
	if n == 1 && open%2 == 0 {
		return span{}, false
	}

	start := at + n
	if start >= len(text) || isSpace(text[start]) {
		return span{}, false
	}

	if c == '_' && at > 0 && isAlnum(text[at-1]) {
		return span{}, false
	}

	inner := false

	for idx := max(start+1, at+open); idx < len(text); {
		found := strings.IndexByte(text[idx:], c)
		if found < 0 {
			break
		}

		runStart := idx + found
		run := runLength(text, runStart, c)
		idx = runStart + run

		closes := run >= n && (n != 1 || run%2 == 1) &&
			!isSpace(text[runStart-1]) &&
			(c != '_' || idx >= len(text) || !isAlnum(text[idx]))

		if closes && run < open && !inner {
			closes = false
		}

		if !closes {
			inner = true
			continue
		}

		return span{start: start, end: idx - n, next: idx}, true
	}

	return span{}, false
}

// matchTag matches an open tag, content, and the balancing close tag.
func matchTag(text string, at int, open, closeTag string) (span, bool) {
	if !strings.HasPrefix(text[at:], open) {
		return span{}, false
	}

	start := at + len(open)
	depth := 1

	for idx := start; ; {
		nextClose := strings.Index(text[idx:], closeTag)
		if nextClose < 0 {
			return span{}, false
		}

		if nextOpen := strings.Index(text[idx:], open); nextOpen >= 0 && nextOpen < nextClose {
			depth++
			idx += nextOpen + len(open)

			continue
		}

		depth--
		end := idx + nextClose

		if depth == 0 {
			if end == start {
				return span{}, false
			}

			return span{start: start, end: end, next: end + len(closeTag)}, true
		}

		idx = end + len(closeTag)
	}
}

// parseEscape turns a backslash before ASCII punctuation into a literal.
func parseEscape(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	text := st.text
	at := pos.Offset

	if at+1 >= len(text) || !isPunct(text[at+1]) {
		return nil, 0
	}

	return &mdast.Text{Text: text[at+1 : at+2], Escaped: true}, at + 2
}

// parseCodeSpan matches a backtick run and the next run of equal length.
func parseCodeSpan(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	text := st.text
	at := pos.Offset

	if at > 0 && text[at-1] == '`' {
		return nil, 0
	}

	n := runLength(text, at, '`')
	start := at + n

	for idx := start; idx < len(text); {
		found := strings.IndexByte(text[idx:], '`')
		if found < 0 {
			break
		}

		runStart := idx + found
		run := runLength(text, runStart, '`')
		idx = runStart + run

		if run != n {
			continue
		}

		content := strings.ReplaceAll(text[start:runStart], "\n", " ")
		if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.Trim(content, " ") != "" {
			content = content[1 : len(content)-1]
		}

		return &mdast.CodeSpan{Text: content}, idx
	}

	return nil, 0
}

// parseLink matches [text](url "title").
func parseLink(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	label, dest, ok := matchLink(st.text, pos.Offset)
	if !ok {
		return nil, 0
	}

	return &mdast.Link{
		Inlines: st.Parse(label.start, label.end),
		URL:     dest.url,
		Title:   dest.title,
	}, label.next
}

// parseImage matches ![alt](url "title").
func parseImage(st *InlineState, pos textwin.Position) (mdast.Inline, int) {
	at := pos.Offset
	if at+1 >= len(st.text) || st.text[at+1] != '[' {
		return nil, 0
	}

	label, dest, ok := matchLink(st.text, at+1)
	if !ok {
		return nil, 0
	}

	return &mdast.Image{
		Alt:   mdast.PlainText(st.Parse(label.start, label.end)),
		URL:   dest.url,
		Title: dest.title,
	}, label.next
}

type linkDestination struct {
	url   string
	title string
}

// matchLink parses a bracketed label at text[at] followed by a
// parenthesized destination. The returned span covers the label content and
// ends after the closing parenthesis.
func matchLink(text string, at int) (span, linkDestination, bool) {
	labelEnd := matchBracket(text, at)
	if labelEnd < 0 || labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
		return span{}, linkDestination{}, false
	}

	idx := skipSpaces(text, labelEnd+2)

	var dest linkDestination

	// Destination.
	if idx < len(text) && text[idx] == '<' {
		end := strings.IndexByte(text[idx:], '>')
		if end < 0 {
			return span{}, linkDestination{}, false
		}

		dest.url = text[idx+1 : idx+end]
		idx += end + 1
	} else {
		start, depth := idx, 0

	loop:
		for ; idx < len(text); idx++ {
			switch c := text[idx]; {
			case c == '\\':
				idx++
			case c == '(':
				depth++
			case c == ')':
				if depth == 0 {
					break loop
				}
				depth--
			case isSpace(c):
				break loop
			}
		}

		if idx > len(text) {
			idx = len(text)
		}

		dest.url = text[start:idx]
	}

	idx = skipSpaces(text, idx)

	// Optional title.
	if idx < len(text) && (text[idx] == '"' || text[idx] == '\'') {
		quote := text[idx]

		end := strings.IndexByte(text[idx+1:], quote)
		if end < 0 {
			return span{}, linkDestination{}, false
		}

		dest.title = text[idx+1 : idx+1+end]
		idx = skipSpaces(text, idx+end+2)
	}

	if idx >= len(text) || text[idx] != ')' {
		return span{}, linkDestination{}, false
	}

	return span{start: at + 1, end: labelEnd, next: idx + 1}, dest, true
}

// matchBracket returns the index of the ']' balancing the '[' at text[at],
// or -1.
func matchBracket(text string, at int) int {
	depth := 0

	for idx := at; idx < len(text); idx++ {
		switch text[idx] {
		case '\\':
			idx++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return idx
			}
		}
	}

	return -1
}

func runLength(text string, at int, c byte) int {
	n := 0
	for at+n < len(text) && text[at+n] == c {
		n++
	}

	return n
}

func skipSpaces(text string, idx int) int {
	for idx < len(text) && isSpace(text[idx]) {
		idx++
	}

	return idx
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}

func isPunct(c byte) bool {
	return c >= '!' && c <= '/' || c >= ':' && c <= '@' || c >= '[' && c <= '`' || c >= '{' && c <= '~'
}
