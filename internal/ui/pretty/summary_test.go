package pretty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "no files",
			want: "No Markdown files found\n",
		},
		{
			name: "single file",
			stats: runner.Stats{
				FilesDiscovered: 1, FilesParsed: 1, Blocks: 1, Bytes: 12, Duration: 1500 * time.Microsecond,
			},
			want: "Parsed 1 file: 1 block, 12 B in 2ms\n",
		},
		{
			name: "failures",
			stats: runner.Stats{
				FilesDiscovered: 3, FilesParsed: 2, FilesErrored: 1, Blocks: 40, Bytes: 2048, Duration: 2 * time.Second,
			},
			want: "Parsed 2 files (1 failed): 40 blocks, 2.0 KiB in 2s\n",
		},
	}

	styles := pretty.NewStyles(false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	ok := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesParsed: 2, Blocks: 9, Bytes: 3 << 20})
	assert.Contains(t, ok, "Files parsed:   2")
	assert.Contains(t, ok, "Bytes:          3.0 MiB")
	assert.Contains(t, ok, "All files parsed")
	assert.NotContains(t, ok, "Files failed")

	failed := styles.FormatSummary(runner.Stats{FilesDiscovered: 2, FilesParsed: 1, FilesErrored: 1})
	assert.Contains(t, failed, "Files failed:   1")
	assert.Contains(t, failed, "Some files could not be parsed")
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	got := styles.FormatTable(pretty.Table{
		Title: "Kinds",
		Columns: []pretty.Column{
			{Header: "Kind"},
			{Header: "Count", Right: true},
			{Header: "File", MaxWidth: 8, TruncateLeft: true},
		},
		Rows: []pretty.TableRow{
			{Cells: []string{"Paragraph", "12", "a.md"}},
			{Cells: []string{"Heading", "3", "docs/guide/b.md"}, Failed: true},
		},
	})

	want := "Kinds\n" +
		"──────────────────────────\n" +
		"Kind       Count  File\n" +
		"──────────────────────────\n" +
		"Paragraph     12  a.md\n" +
		"Heading        3  …de/b.md\n"
	assert.Equal(t, want, got)

	assert.Empty(t, styles.FormatTable(pretty.Table{Title: "none"}))
}
