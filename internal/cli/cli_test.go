package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/yaklabco/gomdparse/internal/cli"
)

var testInfo = cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}

// execute runs the root command in dir with color and environment
// variables turned off.
func execute(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"-C", dir, "--no-env", "--color", "never"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	assert.Equal(t, "gomdparse", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"parse", "fmt", "compare", "stats", "parsers", "serve", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"debug", "config", "color", "chdir", "no-env"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	parseCmd, _, err := cli.NewRootCommand(testInfo).Find([]string{"parse"})
	require.NoError(t, err)

	for _, name := range []string{
		"format", "jobs", "ignore", "ext", "disable", "no-detect",
		"heading-ids", "unsafe-html", "compact", "no-summary", "watch",
	} {
		assert.NotNil(t, parseCmd.Flags().Lookup(name), name)
	}
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "doc.md", "# Title\n\nsome *text*\n")
	writeFile(t, dir, "skip/other.md", "ignored\n")

	stdout, _, err := execute(t, dir, "", "parse", "--format", "json", "--ignore", "skip/**")
	require.NoError(t, err)

	assert.Equal(t, int64(1), gjson.Get(stdout, "files.#").Int())
	assert.Equal(t, "doc.md", gjson.Get(stdout, "files.0.path").String())
	assert.Equal(t, "Heading", gjson.Get(stdout, "files.0.document.blocks.0.type").String())
	assert.Equal(t, "Paragraph", gjson.Get(stdout, "files.0.document.blocks.1.type").String())
	assert.Equal(t, int64(1), gjson.Get(stdout, "summary.filesParsed").Int())
}

func TestParse_Tree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "doc.md", "# Title\n")

	stdout, _, err := execute(t, dir, "", "parse", "--no-summary", "doc.md")
	require.NoError(t, err)

	assert.Equal(t, "doc.md\n└── Heading level=1\n    └── Text \"Title\"\n", stdout)
}

func TestParse_StdinMarkdown(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, t.TempDir(), "#Title\n\n* a\n* b\n", "parse", "--format", "markdown", "-")
	require.NoError(t, err)

	assert.Equal(t, "# Title\n\n* a\n* b\n", stdout)
}

func TestParse_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, t.TempDir(), "", "parse", "--format", "bogus")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestParse_DisabledParser(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, t.TempDir(), "# Title\n", "parse", "--format", "json", "--disable", "heading", "-")
	require.NoError(t, err)

	assert.Equal(t, "Paragraph", gjson.Get(stdout, "files.0.document.blocks.0.type").String())
}

func TestFmt(t *testing.T) {
	t.Parallel()

	t.Run("check lists unformatted files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "bad.md", "#Title\n")
		writeFile(t, dir, "good.md", "# Title\n")

		stdout, _, err := execute(t, dir, "", "fmt", "--check")
		require.ErrorIs(t, err, cli.ErrUnformatted)
		assert.Equal(t, cli.ExitFindings, cli.ExitCode(err))
		assert.Contains(t, stdout, "bad.md")
		assert.NotContains(t, stdout, "good.md")
	})

	t.Run("write rewrites with backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "doc.md", "#Title\n")

		_, _, err := execute(t, dir, "", "fmt", "--write")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))

		backup, err := os.ReadFile(path + ".gomdparse.bak")
		require.NoError(t, err)
		assert.Equal(t, "#Title\n", string(backup))
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, t.TempDir(), "#Title\n", "fmt", "-")
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", stdout)
	})

	t.Run("write rejects stdin", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, t.TempDir(), "", "fmt", "--write", "-")
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("matching", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "doc.md", "# Title\n\ntext\n")

		stdout, _, err := execute(t, dir, "", "compare")
		require.NoError(t, err)
		assert.Contains(t, stdout, "1 of 1 files match goldmark")
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "doc.md", "#Title\n")

		stdout, _, err := execute(t, dir, "", "compare", "--format", "json")
		require.ErrorIs(t, err, cli.ErrMismatch)
		assert.Equal(t, "doc.md", gjson.Get(stdout, "0.path").String())
		assert.Positive(t, gjson.Get(stdout, "0.mismatches.#").Int())
	})

	t.Run("invalid flavor", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, t.TempDir(), "", "compare", "--flavor", "pandoc")
		require.ErrorIs(t, err, cli.ErrInvalidUsage)
	})
}

func TestStats_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# A\n\ntext\n")
	writeFile(t, dir, "b.md", "## B\n")

	stdout, _, err := execute(t, dir, "", "stats", "--json", "--sort", "alpha")
	require.NoError(t, err)

	assert.Equal(t, int64(2), gjson.Get(stdout, "summary.files").Int())
	assert.Equal(t, int64(2), gjson.Get(stdout, `byKind.#(kind=="Heading").count`).Int())
	assert.Equal(t, "a.md", gjson.Get(stdout, "byFile.0.path").String())
}

func TestStats_InvalidSort(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, t.TempDir(), "", "stats", "--sort", "size")
	require.ErrorIs(t, err, cli.ErrInvalidUsage)
}

func TestParsers(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, t.TempDir(), "", "parsers", "--json")
	require.NoError(t, err)

	assert.Equal(t, "block", gjson.Get(stdout, `#(id=="heading").kind`).String())
	assert.Equal(t, "inline", gjson.Get(stdout, `#(id=="link").kind`).String())

	text, _, err := execute(t, t.TempDir(), "", "parsers")
	require.NoError(t, err)
	assert.Contains(t, text, "Block parsers")
	assert.Contains(t, text, "Inline parsers")
	assert.Contains(t, text, "setext-heading")
}

func TestInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, _, err := execute(t, dir, "", "init", "--full")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".gomdparse.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "disabled_parsers")

	_, _, err = execute(t, dir, "", "init")
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, _, err = execute(t, dir, "", "init", "--force")
	require.NoError(t, err)
}

func TestConfigFileApplies(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gomdparse.yml", "format: json\ndisabled_parsers: [heading]\n")
	writeFile(t, dir, "doc.md", "# Title\n")

	stdout, _, err := execute(t, dir, "", "parse")
	require.NoError(t, err)
	assert.Equal(t, "Paragraph", gjson.Get(stdout, "files.0.document.blocks.0.type").String())
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test-version")
	assert.Contains(t, stdout, "test-commit")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"failed files", cli.ErrFilesFailed, cli.ExitFindings},
		{"mismatch", cli.ErrMismatch, cli.ExitFindings},
		{"usage", cli.ErrInvalidUsage, cli.ExitInvalidUsage},
		{"config", cli.ErrConfig, cli.ExitConfigError},
		{"other", os.ErrPermission, cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	root, _, err := execute(t, t.TempDir(), "", "--help")
	require.NoError(t, err)

	for _, want := range []string{"Parsing:", "Inspection:", "Service and setup:", "Environment:", "GOMDPARSE_"} {
		assert.Contains(t, root, want)
	}
	assert.Less(t, strings.Index(root, "Parsing:"), strings.Index(root, "Inspection:"))
	assert.Regexp(t, `(?m)^  parse +Parse Markdown files`, root)

	parse, _, err := execute(t, t.TempDir(), "", "parse", "--help")
	require.NoError(t, err)

	assert.Regexp(t, `(?m)^  -f, --format string +output format: .* \(default tree\)$`, parse)
	assert.Contains(t, parse, "Global Flags:")
	assert.NotContains(t, parse, "Environment:")
	assert.NotContains(t, parse, "(default false)")
}
