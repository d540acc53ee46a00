// Package textwin provides Window, an immutable line-indexed view over a
// string. Every slicing operation returns a new Window that shares the backing
// string, so parsers can peel off markers and indentation at any nesting depth
// without copying text.
package textwin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a slice or line edit exceeds the window.
var ErrOutOfRange = errors.New("textwin: out of range")

// span is a line's byte range in the backing string, terminator excluded.
type span struct {
	start  int
	length int
}

// Window is a read-only view over a contiguous run of lines.
//
// The first line may be masked by leadingTrim bytes at its start and the last
// line by trailingTrim bytes at its end. The zero value is an empty window.
type Window struct {
	text         string
	lines        []span
	leadingTrim  int
	trailingTrim int
}

// New splits text into lines. "\n", "\r" and "\r\n" all terminate a line,
// with "\r\n" counting as a single terminator. A trailing terminator yields a
// final empty line.
func New(text string) Window {
	if text == "" {
		return Window{}
	}

	lines := make([]span, 0, strings.Count(text, "\n")+1)
	start := 0

	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '\n':
			lines = append(lines, span{start: start, length: idx - start})
			start = idx + 1
		case '\r':
			lines = append(lines, span{start: start, length: idx - start})
			if idx+1 < len(text) && text[idx+1] == '\n' {
				idx++
			}
			start = idx + 1
		}
	}

	lines = append(lines, span{start: start, length: len(text) - start})

	return Window{text: text, lines: lines}
}

// LineCount returns the number of lines in the window.
func (w Window) LineCount() int {
	return len(w.lines)
}

// IsEmpty reports whether the window has no lines.
func (w Window) IsEmpty() bool {
	return len(w.lines) == 0
}

// Line returns the visible text of line i. It panics if i is out of range.
func (w Window) Line(i int) string {
	start, end := w.bounds(i)
	return w.text[start:end]
}

// bounds returns the visible byte range of line i in the backing string.
func (w Window) bounds(i int) (int, int) {
	s := w.lines[i]
	start, end := s.start, s.start+s.length

	if i == 0 {
		start += w.leadingTrim
	}

	if i == len(w.lines)-1 {
		end -= w.trailingTrim
	}

	return start, end
}

// TextLength returns the number of visible bytes, line terminators excluded.
func (w Window) TextLength() int {
	total := 0
	for _, s := range w.lines {
		total += s.length
	}

	if len(w.lines) > 0 {
		total -= w.leadingTrim + w.trailingTrim
	}

	return total
}

// Len returns the length of String(): the visible text plus one byte per
// line break.
func (w Window) Len() int {
	if len(w.lines) == 0 {
		return 0
	}

	return w.TextLength() + len(w.lines) - 1
}

// Lines returns the window over lines [start, start+length). Trims carry over
// only when the first or last line is kept. An empty range yields an empty
// window without trims.
func (w Window) Lines(start, length int) Window {
	if start < 0 || length < 0 || start+length > len(w.lines) {
		panic(fmt.Sprintf("textwin: lines [%d:%d] out of range for %d lines", start, start+length, len(w.lines)))
	}

	if length == 0 {
		return Window{text: w.text}
	}

	out := Window{text: w.text, lines: w.lines[start : start+length : start+length]}

	if start == 0 {
		out.leadingTrim = w.leadingTrim
	}

	if start+length == len(w.lines) {
		out.trailingTrim = w.trailingTrim
	}

	return out
}

// From returns the window from line start to the end.
func (w Window) From(start int) Window {
	return w.Lines(start, len(w.lines)-start)
}

// String joins the visible lines with "\n".
func (w Window) String() string {
	if len(w.lines) == 0 {
		return ""
	}

	if len(w.lines) == 1 {
		return w.Line(0)
	}

	var builder strings.Builder
	builder.Grow(w.Len())

	for i := range w.lines {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(w.Line(i))
	}

	return builder.String()
}

// IsBlank reports whether line i contains only spaces and tabs.
func (w Window) IsBlank(i int) bool {
	return strings.TrimLeft(w.Line(i), " \t") == ""
}

// Indent returns the number of leading spaces and tabs on line i.
func (w Window) Indent(i int) int {
	line := w.Line(i)
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
