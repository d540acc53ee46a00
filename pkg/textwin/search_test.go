package textwin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/textwin"
)

func TestWindow_Index(t *testing.T) {
	t.Parallel()

	w := textwin.New("one **two**\nthree ~~four~~")

	pos := w.Index("~~")
	require.True(t, pos.Found())
	assert.Equal(t, textwin.Position{Line: 1, Column: 6, Offset: 18}, pos)

	assert.False(t, w.Index("missing").Found())
	assert.Equal(t, textwin.NotFound, w.IndexByte('#'))
	assert.Equal(t, byte('~'), w.At(pos))
}

func TestWindow_IndexAny(t *testing.T) {
	t.Parallel()

	w := textwin.New("plain text\nwith *stars* and _under_")

	tests := []struct {
		name  string
		chars string
		from  textwin.Position
		want  textwin.Position
	}{
		{
			name:  "first delimiter",
			chars: "*_",
			from:  w.Start(),
			want:  textwin.Position{Line: 1, Column: 5, Offset: 16},
		},
		{
			name:  "resumes after position",
			chars: "*_",
			from:  textwin.Position{Line: 1, Column: 6, Offset: 17},
			want:  textwin.Position{Line: 1, Column: 11, Offset: 22},
		},
		{
			name:  "letters in set",
			chars: "x",
			from:  w.Start(),
			want:  textwin.Position{Line: 0, Column: 8, Offset: 8},
		},
		{
			name:  "space in set",
			chars: " ",
			from:  w.Start(),
			want:  textwin.Position{Line: 0, Column: 5, Offset: 5},
		},
		{
			name:  "not found",
			chars: "#",
			from:  w.Start(),
			want:  textwin.NotFound,
		},
		{
			name:  "not found start",
			chars: "*",
			from:  textwin.NotFound,
			want:  textwin.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := w.IndexAny(textwin.NewCharSet(tt.chars), tt.from)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindow_IndexAnyMatchesSliceOffsets(t *testing.T) {
	t.Parallel()

	w := textwin.New("ab\ncd*ef")

	pos := w.IndexAny(textwin.NewCharSet("*"), w.Start())
	require.True(t, pos.Found())

	rest, err := w.SliceAt(pos, w.Len()-pos.Offset)
	require.NoError(t, err)
	assert.Equal(t, "*ef", rest.String())
}

func TestWindow_PositionAt(t *testing.T) {
	t.Parallel()

	w := textwin.New("ab\ncd")

	assert.Equal(t, textwin.Position{Line: 0, Column: 2, Offset: 2}, w.PositionAt(2))
	assert.Equal(t, textwin.Position{Line: 1, Column: 0, Offset: 3}, w.PositionAt(3))
	assert.Equal(t, textwin.Position{Line: 1, Column: 2, Offset: 5}, w.PositionAt(5))
	assert.Equal(t, textwin.NotFound, w.PositionAt(6))
	assert.Equal(t, textwin.NotFound, w.PositionAt(-1))
}

func TestCharSet(t *testing.T) {
	t.Parallel()

	set := textwin.NewCharSet("*_~")

	assert.True(t, set.Contains('*'))
	assert.False(t, set.Contains('a'))
	assert.Equal(t, "*_~", set.String())
}
