package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/format"
)

func TestNewDiff_NoChanges(t *testing.T) {
	t.Parallel()

	assert.Nil(t, format.NewDiff("a.md", nil, nil))
	assert.Nil(t, format.NewDiff("a.md", []byte("x\ny\n"), []byte("x\ny\n")))
	assert.Nil(t, format.NewDiff("a.md", []byte("x"), []byte("x\n")))

	var diff *format.Diff
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
}

func TestNewDiff_Replace(t *testing.T) {
	t.Parallel()

	diff := format.NewDiff("/docs/a.md", []byte("one\ntwo\nthree\n"), []byte("one\n2\nthree\n"))
	require.NotNil(t, diff)

	want := "--- a/docs/a.md\n" +
		"+++ b/docs/a.md\n" +
		"@@ -1,3 +1,3 @@\n" +
		" one\n" +
		"-two\n" +
		"+2\n" +
		" three\n"

	assert.Equal(t, want, diff.String())
	assert.Equal(t, "diff --git a/docs/a.md b/docs/a.md", diff.Header())
	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
}

func TestNewDiff_NewFile(t *testing.T) {
	t.Parallel()

	diff := format.NewDiff("a.md", nil, []byte("a\nb\n"))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 1)

	hunk := diff.Hunks[0]
	assert.Equal(t, 0, hunk.OldStart)
	assert.Equal(t, 0, hunk.OldCount)
	assert.Equal(t, 1, hunk.NewStart)
	assert.Equal(t, 2, hunk.NewCount)
}

func TestNewDiff_SeparateHunks(t *testing.T) {
	t.Parallel()

	var before, after []string
	for i := range 20 {
		line := strings.Repeat("x", i+1)
		before = append(before, line)
		after = append(after, line)
	}
	after[1] = "changed"
	after[18] = "changed"

	diff := format.NewDiff("a.md",
		[]byte(strings.Join(before, "\n")+"\n"),
		[]byte(strings.Join(after, "\n")+"\n"))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 2)

	assert.Equal(t, 1, diff.Hunks[0].OldStart)
	assert.Equal(t, 5, diff.Hunks[0].OldCount)
	assert.Equal(t, 16, diff.Hunks[1].OldStart)
	assert.Equal(t, 5, diff.Hunks[1].OldCount)
}

func TestNewDiff_CloseChangesShareHunk(t *testing.T) {
	t.Parallel()

	before := "a\nb\nc\nd\ne\nf\ng\nh\n"
	after := "A\nb\nc\nd\ne\nf\ng\nH\n"

	diff := format.NewDiff("a.md", []byte(before), []byte(after))
	require.NotNil(t, diff)
	require.Len(t, diff.Hunks, 1)
	assert.Equal(t, 8, diff.Hunks[0].OldCount)
}
