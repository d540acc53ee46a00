// Package watch reruns work when Markdown files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomdparse/internal/logging"
)

// DefaultDebounce is the quiet period before changes are reported.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc receives the sorted, deduplicated paths that changed.
type ChangeFunc func(ctx context.Context, changed []string) error

// Options configures Watch.
type Options struct {
	// Roots are files or directories to watch. Directories are watched
	// recursively, skipping hidden ones.
	Roots []string

	// Extensions limits which files count as changes, e.g. ".md".
	Extensions []string

	// Debounce groups bursts of events. 0 means DefaultDebounce.
	Debounce time.Duration
}

// Watch blocks until ctx is cancelled, calling onChange after each burst of
// changes to matching files. An error from onChange stops the watch.
func Watch(ctx context.Context, opts Options, onChange ChangeFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	logger := logging.FromContext(ctx)

	for _, root := range opts.Roots {
		if err := addRecursive(watcher, root); err != nil {
			return err
		}
	}

	logger.Debug("watching", logging.FieldPaths, opts.Roots)

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			slices.Sort(changed)

			if err := onChange(ctx, changed); err != nil {
				return err
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := addRecursive(watcher, event.Name); addErr != nil {
						logger.Warn("watch new directory", logging.FieldPath, event.Name, logging.FieldError, addErr)
					}
					continue
				}
			}

			if event.Op == fsnotify.Chmod || !matches(event.Name, opts.Extensions) {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, watchErr)
		}
	}
}

func matches(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(extensions, ext)
}

// addRecursive watches root, and every non-hidden directory below it when
// root is a directory. A file root is watched through its directory.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if !info.IsDir() {
		return watchDir(watcher, filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return fs.SkipDir
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}
		return watchDir(watcher, path)
	})
}

func watchDir(watcher *fsnotify.Watcher, dir string) error {
	if slices.Contains(watcher.WatchList(), dir) {
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	return nil
}
