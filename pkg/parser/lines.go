package parser

import (
	"strings"

	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// Maximum indentation, in spaces, of a block marker.
const maxMarkerIndent = 3

// codeIndent is the indentation that starts an indented code block.
const codeIndent = 4

// leadingSpaces counts leading spaces and tabs; each counts as one column.
func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

// lineSlice returns the zero-copy window over line i of w, bytes [start, end).
func lineSlice(w textwin.Window, i, start, end int) textwin.Window {
	return w.Lines(i, 1).MustMap(func(string, int) textwin.LineEdit {
		return textwin.LineEdit{Start: start, Length: end - start}
	})
}

// atxLevel returns the heading level of an ATX heading line and the byte
// offset where its text begins, or 0.
func atxLevel(line string) (int, int) {
	indent := leadingSpaces(line)
	if indent > maxMarkerIndent {
		return 0, 0
	}

	level := 0
	for indent+level < len(line) && line[indent+level] == '#' {
		level++
	}

	if level == 0 || level > 6 {
		return 0, 0
	}

	return level, indent + level
}

// isHorizontalRule reports whether line is three or more of the same '-',
// '*' or '_', optionally separated by spaces.
func isHorizontalRule(line string) bool {
	indent := leadingSpaces(line)
	if indent > maxMarkerIndent {
		return false
	}

	var marker byte
	count := 0

	for idx := indent; idx < len(line); idx++ {
		c := line[idx]

		switch {
		case c == ' ' || c == '\t':
			continue
		case marker == 0 && (c == '-' || c == '*' || c == '_'):
			marker = c
			count++
		case c == marker:
			count++
		default:
			return false
		}
	}

	return count >= 3
}

// fenceOpen parses an opening code fence. It returns the fence character,
// the fence length, the indentation, and the info string.
func fenceOpen(line string) (byte, int, int, string, bool) {
	indent := leadingSpaces(line)
	if indent > maxMarkerIndent || indent >= len(line) {
		return 0, 0, 0, "", false
	}

	c := line[indent]
	if c != '`' && c != '~' {
		return 0, 0, 0, "", false
	}

	n := 0
	for indent+n < len(line) && line[indent+n] == c {
		n++
	}

	if n < 3 {
		return 0, 0, 0, "", false
	}

	info := strings.TrimSpace(line[indent+n:])
	if c == '`' && strings.IndexByte(info, '`') >= 0 {
		return 0, 0, 0, "", false
	}

	return c, n, indent, info, true
}

// isFenceClose reports whether line closes a fence of c repeated at least n
// times.
func isFenceClose(line string, c byte, n int) bool {
	indent := leadingSpaces(line)
	if indent > maxMarkerIndent {
		return false
	}

	rest := line[indent:]
	run := len(rest) - len(strings.TrimLeft(rest, string(c)))

	return run >= n && isBlank(rest[run:])
}

// listMarker describes a list item marker.
type listMarker struct {
	numbered bool

	// bullet is '-', '*' or '+' for bulleted markers.
	bullet byte

	// indent is the marker column.
	indent int

	// content is the column where item text begins.
	content int
}

// Maximum digits in a numbered list marker.
const maxListDigits = 9

// parseListMarker recognizes "- ", "* ", "+ " or "123. " after at most three
// columns of indentation. The space after the marker is required.
func parseListMarker(line string) (listMarker, bool) {
	indent := leadingSpaces(line)
	if indent > maxMarkerIndent || indent >= len(line) {
		return listMarker{}, false
	}

	pos := indent
	m := listMarker{indent: indent}

	switch c := line[pos]; {
	case c == '-' || c == '*' || c == '+':
		m.bullet = c
		pos++
	case c >= '0' && c <= '9':
		for pos < len(line) && line[pos] >= '0' && line[pos] <= '9' {
			pos++
		}

		if pos-indent > maxListDigits || pos >= len(line) || line[pos] != '.' {
			return listMarker{}, false
		}

		m.numbered = true
		pos++
	default:
		return listMarker{}, false
	}

	if pos >= len(line) || line[pos] != ' ' {
		return listMarker{}, false
	}

	m.content = pos + 1

	return m, true
}

// interruptsParagraph reports whether line starts a block that ends a
// paragraph, so it can never be a lazy continuation line.
func interruptsParagraph(line string) bool {
	if level, _ := atxLevel(line); level > 0 {
		return true
	}

	if isHorizontalRule(line) {
		return true
	}

	if _, _, _, _, ok := fenceOpen(line); ok {
		return true
	}

	if _, ok := parseListMarker(line); ok {
		return true
	}

	indent := leadingSpaces(line)

	return indent <= maxMarkerIndent && indent < len(line) && line[indent] == '>'
}

// continuesParagraph reports whether the innermost content of line is
// paragraph text. Indentation and container markers (list and quote markers)
// are peeled off first.
func continuesParagraph(line string) bool {
	for {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			return false
		}

		if m, ok := parseListMarker(line); ok {
			line = line[m.content:]
			continue
		}

		if line[0] == '>' {
			line = line[1:]
			continue
		}

		return !interruptsParagraph(line)
	}
}
