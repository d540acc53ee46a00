package textwin

import (
	"fmt"
	"strings"
)

// LineEdit describes how Map keeps part of a line.
type LineEdit struct {
	// Start and Length select the kept bytes within the visible line.
	Start  int
	Length int

	// Skip drops the line from the result.
	Skip bool

	// Last stops mapping after this line.
	Last bool
}

// LineFunc computes the edit for one line. index is the line's position in
// the source window.
type LineFunc func(line string, index int) LineEdit

// Keep returns an edit that keeps line from byte start to its end.
func Keep(line string, start int) LineEdit {
	if start > len(line) {
		start = len(line)
	}

	return LineEdit{Start: start, Length: len(line) - start}
}

// Map applies fn to every line and returns the window of the kept ranges.
// An edit that reaches outside its line returns an error wrapping
// ErrOutOfRange.
func (w Window) Map(fn LineFunc) (Window, error) {
	out := make([]span, 0, len(w.lines))

	for i := range w.lines {
		start, end := w.bounds(i)
		edit := fn(w.text[start:end], i)

		if !edit.Skip {
			if edit.Start < 0 || edit.Length < 0 || edit.Start+edit.Length > end-start {
				return Window{}, fmt.Errorf("%w: line %d edit [%d:%d] exceeds length %d",
					ErrOutOfRange, i, edit.Start, edit.Start+edit.Length, end-start)
			}

			out = append(out, span{start: start + edit.Start, length: edit.Length})
		}

		if edit.Last {
			break
		}
	}

	if len(out) == 0 {
		return Window{text: w.text}, nil
	}

	return Window{text: w.text, lines: out}, nil
}

// MustMap is like Map but panics on an out of range edit.
func (w Window) MustMap(fn LineFunc) Window {
	out, err := w.Map(fn)
	if err != nil {
		panic(err)
	}

	return out
}

// RemoveFromLineStart drops up to n bytes from the start of every line.
func (w Window) RemoveFromLineStart(n int) Window {
	return w.MustMap(func(line string, _ int) LineEdit {
		return Keep(line, n)
	})
}

// RemoveFromLineEnd drops up to n bytes from the end of every line.
func (w Window) RemoveFromLineEnd(n int) Window {
	return w.MustMap(func(line string, _ int) LineEdit {
		return LineEdit{Length: max(len(line)-n, 0)}
	})
}

// Slice returns the window covering String()[start:start+length] without
// copying. Offsets count one byte per line break.
func (w Window) Slice(start, length int) (Window, error) {
	total := w.Len()
	if start < 0 || length < 0 || start+length > total {
		return Window{}, fmt.Errorf("%w: slice [%d:%d] of %d bytes", ErrOutOfRange, start, start+length, total)
	}

	if len(w.lines) == 0 {
		return Window{text: w.text}, nil
	}

	return w.between(w.PositionAt(start), w.PositionAt(start+length)), nil
}

// SliceFrom returns the window from offset start to the end.
func (w Window) SliceFrom(start int) (Window, error) {
	return w.Slice(start, w.Len()-start)
}

// SliceAt returns length bytes starting at pos.
func (w Window) SliceAt(pos Position, length int) (Window, error) {
	if !pos.Found() {
		return Window{}, fmt.Errorf("%w: position not found", ErrOutOfRange)
	}

	return w.Slice(pos.Offset, length)
}

// between returns the window from one position up to (excluding) another.
func (w Window) between(from, to Position) Window {
	out := Window{
		text:  w.text,
		lines: w.lines[from.Line : to.Line+1 : to.Line+1],
	}

	lead := 0
	if from.Line == 0 {
		lead = w.leadingTrim
	}

	out.leadingTrim = lead + from.Column

	lastLead := 0
	if to.Line == 0 {
		lastLead = w.leadingTrim
	}

	out.trailingTrim = w.lines[to.Line].length - lastLead - to.Column

	return out
}

// TrimStart drops leading blank lines and the leading whitespace of the first
// remaining line.
func (w Window) TrimStart() Window {
	for i := range w.lines {
		line := w.Line(i)
		trimmed := strings.TrimLeft(line, " \t")

		if trimmed == "" {
			continue
		}

		out := w.From(i)
		out.leadingTrim += len(line) - len(trimmed)

		return out
	}

	return Window{text: w.text}
}

// TrimEnd drops trailing blank lines and the trailing whitespace of the last
// remaining line.
func (w Window) TrimEnd() Window {
	for i := len(w.lines) - 1; i >= 0; i-- {
		line := w.Line(i)
		trimmed := strings.TrimRight(line, " \t")

		if trimmed == "" {
			continue
		}

		out := w.Lines(0, i+1)
		out.trailingTrim += len(line) - len(trimmed)

		return out
	}

	return Window{text: w.text}
}

// Trim applies TrimStart and TrimEnd.
func (w Window) Trim() Window {
	return w.TrimStart().TrimEnd()
}
