package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/reporter"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

func sampleResult() *runner.Result {
	doc := parser.Default().Parse("# Title\n\nHello *world*\n")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/a.md", Content: []byte("# Title\n\nHello *world*\n"), Document: doc},
			{Path: "/work/b.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{FilesDiscovered: 2, FilesParsed: 1, FilesErrored: 1, Blocks: 2, Bytes: 23},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to tree", input: "", want: reporter.FormatTree},
		{name: "tree", input: "tree", want: reporter.FormatTree},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "html", input: "html", want: reporter.FormatHTML},
		{name: "md alias", input: "md", want: reporter.FormatMarkdown},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "tree", format: reporter.FormatTree},
		{name: "json", format: reporter.FormatJSON},
		{name: "html", format: reporter.FormatHTML},
		{name: "text", format: reporter.FormatText},
		{name: "markdown", format: reporter.FormatMarkdown},
		{name: "summary", format: reporter.FormatSummary},
		{name: "empty defaults to tree", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTreeReporter(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &out,
		ErrorWriter: &errOut,
		Format:      reporter.FormatTree,
		Color:       "never",
		ShowSummary: true,
		Width:       80,
		WorkingDir:  "/work",
	})
	require.NoError(t, err)

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	want := "a.md\n" +
		"├── Heading level=1\n" +
		"│   └── Text \"Title\"\n" +
		"└── Paragraph\n" +
		"    ├── Text \"Hello \"\n" +
		"    └── Italic delim=*\n" +
		"        └── Text \"world\"\n" +
		"\n" +
		"Parsed 1 file (1 failed): 2 blocks, 23 B in 0s\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, "b.md: error: permission denied\n", errOut.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:     &out,
		Format:     reporter.FormatJSON,
		Compact:    true,
		WorkingDir: "/work",
	})
	require.NoError(t, err)

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	raw := out.String()
	require.True(t, gjson.Valid(raw))
	assert.NotContains(t, raw, "\n  ")

	assert.Equal(t, "1.0.0", gjson.Get(raw, "version").String())
	assert.Equal(t, int64(2), gjson.Get(raw, "files.#").Int())
	assert.Equal(t, "a.md", gjson.Get(raw, "files.0.path").String())
	assert.Equal(t, "Heading", gjson.Get(raw, "files.0.document.blocks.0.type").String())
	assert.Equal(t, int64(1), gjson.Get(raw, "files.0.document.blocks.0.level").Int())
	assert.Equal(t, "Italic", gjson.Get(raw, "files.0.document.blocks.1.inlines.1.type").String())
	assert.Equal(t, "permission denied", gjson.Get(raw, "files.1.error").String())
	assert.False(t, gjson.Get(raw, "files.1.document").Exists())
	assert.Equal(t, int64(1), gjson.Get(raw, "summary.filesErrored").Int())
	assert.Equal(t, int64(2), gjson.Get(raw, "summary.blocks").Int())
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	failed, err := reporter.NewJSONReporter(reporter.Options{Writer: &out}).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, int64(0), gjson.Get(out.String(), "files.#").Int())
}

func TestRenderReporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format reporter.Format
		want   []string
	}{
		{
			name:   "html",
			format: reporter.FormatHTML,
			want:   []string{"<!-- a.md -->", "<h1>Title</h1>", "<em>world</em>"},
		},
		{
			name:   "text",
			format: reporter.FormatText,
			want:   []string{"==> a.md <==", "Title", "Hello world"},
		},
		{
			name:   "markdown",
			format: reporter.FormatMarkdown,
			want:   []string{"<!-- a.md -->", "# Title\n\nHello *world*\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer:      &out,
				ErrorWriter: &errOut,
				Format:      tt.format,
				Color:       "never",
				WorkingDir:  "/work",
			})
			require.NoError(t, err)

			failed, err := rep.Report(context.Background(), sampleResult())
			require.NoError(t, err)
			assert.Equal(t, 1, failed)

			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			assert.Contains(t, errOut.String(), "b.md: error: permission denied")
		})
	}
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:     &out,
		Format:     reporter.FormatSummary,
		Color:      "never",
		WorkingDir: "/work",
	})
	require.NoError(t, err)

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	got := out.String()
	assert.Contains(t, got, "Node Kinds")
	assert.Contains(t, got, "Heading")
	assert.Contains(t, got, "Italic")
	assert.Contains(t, got, "Files")
	assert.Contains(t, got, "a.md")
	assert.Contains(t, got, "failed")
	assert.Contains(t, got, "Total: 1 file, 2 blocks")
}

func TestSummaryReporter_Empty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &out, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Equal(t, "No Markdown files found\n", out.String())
}
