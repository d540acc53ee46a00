package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/runner"
)

// makeTree creates files (with "# x" content) under a temp dir.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0o600))
	}

	return dir
}

func abs(dir string, files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Join(dir, f)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/notes.txt",
		"vendor/pkg/doc.md",
		"node_modules/lib/readme.md",
		".hidden/secret.md",
		".dotfile.md",
		"src/main.go",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "all markdown files",
			opts: runner.Options{},
			want: []string{
				"docs/api.markdown",
				"docs/guide.md",
				"node_modules/lib/readme.md",
				"readme.md",
				"vendor/pkg/doc.md",
			},
		},
		{
			name: "exclude directories",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "node_modules/**"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude by base name anywhere",
			opts: runner.Options{ExcludeGlobs: []string{"**/readme.md"}},
			want: []string{"docs/api.markdown", "docs/guide.md", "vendor/pkg/doc.md"},
		},
		{
			name: "include narrows",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".txt"}},
			want: []string{"docs/notes.txt"},
		},
		{
			name: "single file and directory deduplicated",
			opts: runner.Options{Paths: []string{"docs/guide.md", "docs"}},
			want: []string{"docs/api.markdown", "docs/guide.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := makeTree(t, tree...)
			tt.opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "a.md")

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"missing"},
	})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.ErrorIs(t, err, runner.ErrInvalidGlob)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, "docs/a.md")
	outside := makeTree(t, "b.md")

	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "docs/a.md"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
