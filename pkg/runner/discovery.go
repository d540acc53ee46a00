package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidGlob is returned for malformed include or exclude patterns.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// matcher holds compiled discovery criteria.
type matcher struct {
	workDir        string
	extensions     []string
	include        globSet
	exclude        globSet
	followSymlinks bool
}

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := &matcher{
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		followSymlinks: opts.FollowSymlinks,
	}

	if m.include, err = compileGlobs(opts.IncludeGlobs); err != nil {
		return nil, err
	}

	if m.exclude, err = compileGlobs(opts.ExcludeGlobs); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}

		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (m *matcher) rel(path string) string {
	relPath, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk recursively walks a directory and returns matching Markdown files.
// Hidden entries below root are skipped.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}

			if path != root && m.exclude.matchDir(m.rel(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				// Broken or inaccessible link.
				return nil //nolint:nilerr // skipped on purpose
			}

			if target.IsDir() {
				if !m.followSymlinks {
					return nil
				}

				// Walk the target: WalkDir does not follow a symlinked root.
				realPath, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // skipped on purpose
				}

				subFiles, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}

				files = append(files, subFiles...)

				return nil
			}
		}

		if m.matchesFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile checks extension, exclude and include criteria.
func (m *matcher) matchesFile(path string) bool {
	if !hasMatchingExtension(path, m.extensions) {
		return false
	}

	relPath := m.rel(path)

	if m.exclude.match(relPath) {
		return false
	}

	return len(m.include) == 0 || m.include.match(relPath)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// globSet matches slash-separated relative paths against glob patterns.
// A pattern matches a path or its base name; "**/" prefixed patterns also
// match at the top level.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		alternatives := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			alternatives = append(alternatives, rest)
		}

		for _, alt := range alternatives {
			g, err := glob.Compile(alt, '/')
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidGlob, pattern, err)
			}
			set = append(set, g)
		}
	}

	return set, nil
}

func (s globSet) match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)

	for _, g := range s {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}

	return false
}

// matchDir reports whether a directory is excluded; "dir/**" covers dir.
func (s globSet) matchDir(relPath string) bool {
	return s.match(relPath) || s.match(filepath.ToSlash(relPath)+"/")
}
