package render

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Slugger generates heading anchors. Repeated anchors get "-1", "-2"
// suffixes in document order.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns the anchor for text and records it.
func (s *Slugger) Slug(text string) string {
	base := Slug(text)

	count := s.seen[base]
	s.seen[base] = count + 1

	if count == 0 {
		return base
	}

	return base + "-" + strconv.Itoa(count)
}

// Slug converts heading text to a GitHub-style anchor: case folded,
// punctuation other than '-' and '_' dropped, spaces turned into single
// hyphens.
func Slug(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	prevHyphen := false

	for _, ch := range fold(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch):
			buf.WriteRune(ch)
			prevHyphen = false
		case ch == '-' || ch == '_':
			buf.WriteRune(ch)
			prevHyphen = ch == '-'
		case unicode.IsSpace(ch):
			if !prevHyphen && buf.Len() > 0 {
				buf.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	result := strings.Trim(buf.String(), "-")
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}

	return result
}

// fold lower-cases ASCII directly and case folds anything else.
func fold(text string) string {
	for idx := range len(text) {
		if text[idx] >= 0x80 {
			return cases.Fold().String(text)
		}
	}

	return strings.ToLower(text)
}
