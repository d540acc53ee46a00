package textwin

import "strings"

// Position is a cursor into a Window.
type Position struct {
	// Line is the zero-based line index.
	Line int

	// Column is the zero-based byte offset within the visible line.
	Column int

	// Offset is the byte offset from the window start in String() form.
	Offset int
}

// NotFound is returned by searches that find nothing.
var NotFound = Position{Line: -1, Column: -1, Offset: -1}

// Found reports whether p is a real position.
func (p Position) Found() bool {
	return p.Line >= 0
}

// Start returns the position of the first visible byte.
func (w Window) Start() Position {
	return Position{}
}

// PositionAt converts a String() offset into a Position. An offset equal to
// Len() maps to the end of the last line. Offsets outside the window return
// NotFound.
func (w Window) PositionAt(offset int) Position {
	if offset < 0 || len(w.lines) == 0 {
		return NotFound
	}

	rest := offset
	for i := range w.lines {
		start, end := w.bounds(i)
		if rest <= end-start {
			return Position{Line: i, Column: rest, Offset: offset}
		}

		rest -= end - start + 1
	}

	return NotFound
}

// At returns the byte at pos.
func (w Window) At(pos Position) byte {
	return w.Line(pos.Line)[pos.Column]
}

// Index returns the position of the first occurrence of needle. Matches do
// not span line breaks.
func (w Window) Index(needle string) Position {
	offset := 0

	for i := range w.lines {
		line := w.Line(i)
		if col := strings.Index(line, needle); col >= 0 {
			return Position{Line: i, Column: col, Offset: offset + col}
		}

		offset += len(line) + 1
	}

	return NotFound
}

// IndexByte returns the position of the first occurrence of c.
func (w Window) IndexByte(c byte) Position {
	offset := 0

	for i := range w.lines {
		line := w.Line(i)
		if col := strings.IndexByte(line, c); col >= 0 {
			return Position{Line: i, Column: col, Offset: offset + col}
		}

		offset += len(line) + 1
	}

	return NotFound
}

// CharSet is a precomputed set of bytes for IndexAny.
type CharSet struct {
	chars              string
	member             [256]bool
	hasLettersOrDigits bool
	hasSpace           bool
}

// NewCharSet builds a set from the bytes of chars.
func NewCharSet(chars string) *CharSet {
	set := &CharSet{chars: chars}

	for idx := range len(chars) {
		c := chars[idx]
		set.member[c] = true

		if isLetterOrDigit(c) {
			set.hasLettersOrDigits = true
		}

		if c == ' ' || c == '\t' {
			set.hasSpace = true
		}
	}

	return set
}

// Contains reports whether c is in the set.
func (s *CharSet) Contains(c byte) bool {
	return s.member[c]
}

// String returns the bytes the set was built from.
func (s *CharSet) String() string {
	return s.chars
}

// IndexAny returns the first position at or after from whose byte is in set.
func (w Window) IndexAny(set *CharSet, from Position) Position {
	if !from.Found() || from.Line >= len(w.lines) {
		return NotFound
	}

	offset := from.Offset - from.Column

	for i := from.Line; i < len(w.lines); i++ {
		line := w.Line(i)

		col := 0
		if i == from.Line {
			col = from.Column
		}

		for col < len(line) {
			c := line[col]

			// Prose is mostly letters and spaces; skip them without a table
			// lookup when the set cannot contain them.
			if !set.hasLettersOrDigits && isLetterOrDigit(c) {
				col++
				continue
			}

			if !set.hasSpace && (c == ' ' || c == '\t') {
				col++
				continue
			}

			if set.member[c] {
				return Position{Line: i, Column: col, Offset: offset + col}
			}

			col++
		}

		offset += len(line) + 1
	}

	return NotFound
}

// isLetterOrDigit treats every non-ASCII byte as a letter.
func isLetterOrDigit(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c >= 0x80
}
