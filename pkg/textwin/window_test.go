package textwin_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/textwin"
)

func lines(w textwin.Window) []string {
	out := make([]string, w.LineCount())
	for i := range out {
		out[i] = w.Line(i)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "single line", input: "hello", want: []string{"hello"}},
		{name: "lf", input: "a\nb", want: []string{"a", "b"}},
		{name: "cr", input: "a\rb", want: []string{"a", "b"}},
		{name: "crlf is one terminator", input: "a\r\nb", want: []string{"a", "b"}},
		{name: "mixed", input: "a\r\n\nb\rc", want: []string{"a", "", "b", "c"}},
		{name: "trailing terminator", input: "a\n", want: []string{"a", ""}},
		{name: "lf cr is two terminators", input: "a\n\rb", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := textwin.New(tt.input)
			assert.Equal(t, tt.want, lines(w))
		})
	}
}

func TestWindow_TextLengthAndString(t *testing.T) {
	t.Parallel()

	w := textwin.New("ab\r\ncde\nf")

	assert.Equal(t, 3, w.LineCount())
	assert.Equal(t, 6, w.TextLength())
	assert.Equal(t, 8, w.Len())
	assert.Equal(t, "ab\ncde\nf", w.String())
	assert.Len(t, w.String(), w.Len())
}

func TestWindow_Lines(t *testing.T) {
	t.Parallel()

	w := textwin.New("  one  \ntwo\n  three  ").Trim()
	require.Equal(t, []string{"one  ", "two", "  three"}, lines(w))

	t.Run("keeps leading trim on first line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"one  ", "two"}, lines(w.Lines(0, 2)))
	})

	t.Run("keeps trailing trim on last line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"two", "  three"}, lines(w.From(1)))
	})

	t.Run("empty range has no lines", func(t *testing.T) {
		t.Parallel()

		empty := w.Lines(1, 0)
		assert.True(t, empty.IsEmpty())
		assert.Equal(t, 0, empty.TextLength())
		assert.Empty(t, empty.String())
	})

	t.Run("out of range panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { w.Lines(2, 5) })
	})
}

func TestWindow_Trim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		start []string
		end   []string
	}{
		{
			name:  "blank lines and spaces",
			input: "\n  \n  a b \nc  \n \n",
			start: []string{"a b ", "c  ", " ", ""},
			end:   []string{"", "  ", "  a b ", "c"},
		},
		{
			name:  "all blank",
			input: " \n\t\n",
			start: []string{},
			end:   []string{},
		},
		{
			name:  "single line",
			input: "  x  ",
			start: []string{"x  "},
			end:   []string{"  x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := textwin.New(tt.input)
			assert.Equal(t, tt.start, lines(w.TrimStart()))
			assert.Equal(t, tt.end, lines(w.TrimEnd()))
			assert.LessOrEqual(t, w.Trim().TextLength(), w.TextLength())
		})
	}
}

func TestWindow_Map(t *testing.T) {
	t.Parallel()

	w := textwin.New("> a\n>b\nc\n\nd")

	t.Run("strips prefixes and stops", func(t *testing.T) {
		t.Parallel()

		out := w.MustMap(func(line string, _ int) textwin.LineEdit {
			if line == "" {
				return textwin.LineEdit{Skip: true, Last: true}
			}
			if strings.HasPrefix(line, "> ") {
				return textwin.Keep(line, 2)
			}
			if strings.HasPrefix(line, ">") {
				return textwin.Keep(line, 1)
			}
			return textwin.Keep(line, 0)
		})

		assert.Equal(t, []string{"a", "b", "c"}, lines(out))
		assert.LessOrEqual(t, out.TextLength(), w.TextLength())
	})

	t.Run("skip drops lines", func(t *testing.T) {
		t.Parallel()

		out := w.MustMap(func(line string, idx int) textwin.LineEdit {
			return textwin.LineEdit{Length: len(line), Skip: idx%2 == 1}
		})

		assert.Equal(t, []string{"> a", "c", "d"}, lines(out))
	})

	t.Run("out of range edit fails", func(t *testing.T) {
		t.Parallel()

		_, err := w.Map(func(line string, _ int) textwin.LineEdit {
			return textwin.LineEdit{Start: 1, Length: len(line)}
		})

		require.ErrorIs(t, err, textwin.ErrOutOfRange)
		assert.Panics(t, func() {
			w.MustMap(func(string, int) textwin.LineEdit { return textwin.LineEdit{Start: -1} })
		})
	})
}

func TestWindow_RemoveFromLine(t *testing.T) {
	t.Parallel()

	w := textwin.New("    code\n  x\n")

	assert.Equal(t, []string{"code", "", ""}, lines(w.RemoveFromLineStart(4)))
	assert.Equal(t, []string{"    co", " ", ""}, lines(w.RemoveFromLineEnd(2)))
}

func TestWindow_Slice(t *testing.T) {
	t.Parallel()

	w := textwin.New("abc\ndef\nghi")

	tests := []struct {
		name   string
		start  int
		length int
		want   string
	}{
		{name: "within line", start: 1, length: 1, want: "b"},
		{name: "across lines", start: 2, length: 5, want: "c\ndef"},
		{name: "from line break", start: 3, length: 3, want: "\nde"},
		{name: "whole", start: 0, length: 11, want: "abc\ndef\nghi"},
		{name: "empty", start: 5, length: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := w.Slice(tt.start, tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
			assert.LessOrEqual(t, out.TextLength(), w.TextLength())
		})
	}

	t.Run("nested slices", func(t *testing.T) {
		t.Parallel()

		outer, err := w.Slice(1, 9)
		require.NoError(t, err)
		assert.Equal(t, "bc\ndef\ngh", outer.String())

		inner, err := outer.Slice(1, 6)
		require.NoError(t, err)
		assert.Equal(t, "c\ndef\n", inner.String())
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		_, err := w.Slice(10, 5)
		require.ErrorIs(t, err, textwin.ErrOutOfRange)

		_, err = w.SliceFrom(-1)
		require.ErrorIs(t, err, textwin.ErrOutOfRange)
	})
}

func TestWindow_IsBlankAndIndent(t *testing.T) {
	t.Parallel()

	w := textwin.New("  \n   x\nx")

	assert.True(t, w.IsBlank(0))
	assert.False(t, w.IsBlank(1))
	assert.Equal(t, 3, w.Indent(1))
	assert.Equal(t, 0, w.Indent(2))
}
