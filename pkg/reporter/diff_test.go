package reporter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/format"
	"github.com/yaklabco/gomdparse/pkg/reporter"
)

func change(path, before, after string) *format.Change {
	return &format.Change{
		Path:      path,
		Original:  []byte(before),
		Formatted: []byte(after),
		Diff:      format.NewDiff(path, []byte(before), []byte(after)),
	}
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      &out,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	})

	changes := []*format.Change{
		change("/work/a.md", "#Title\n", "# Title\n"),
		change("/work/same.md", "x\n", "x\n"),
		change("/work/eol.md", "x", "x\n"),
	}

	files, err := rep.Report(context.Background(), changes)
	require.NoError(t, err)
	assert.Equal(t, 2, files)

	want := "diff --git a/a.md b/a.md\n" +
		"--- a/a.md\n" +
		"+++ b/a.md\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-#Title\n" +
		"+# Title\n" +
		"\n" +
		"eol.md: final line break added\n" +
		"2 files changed, 1 insertion(+), 1 deletion(-)\n"
	assert.Equal(t, want, out.String())
}

func TestDiffReporter_NoChanges(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	files, err := reporter.NewDiffReporter(reporter.Options{Writer: &out, ShowSummary: true}).
		Report(context.Background(), []*format.Change{change("a.md", "x\n", "x\n")})
	require.NoError(t, err)
	assert.Zero(t, files)
	assert.Empty(t, out.String())
}
