package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used when a written file has no previous mode.
const DefaultFileMode os.FileMode = 0o644

// ErrChangedOnDisk is returned when a file changed after it was read.
var ErrChangedOnDisk = errors.New("file changed on disk since it was read")

// WriteAtomic writes content to a temp file in the target's directory,
// syncs it and renames it over path. On failure the original is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// Rewrite replaces the file described by snap with content, keeping its
// mode. It returns false without writing when content is unchanged, and
// ErrChangedOnDisk when the file was modified after the snapshot.
func Rewrite(ctx context.Context, snap *Snapshot, content []byte) (bool, error) {
	if snap == nil {
		return false, ErrNilSnapshot
	}

	changed, err := Changed(ctx, snap)
	if err != nil {
		return false, err
	}

	if changed {
		return false, fmt.Errorf("%w: %s", ErrChangedOnDisk, snap.Path)
	}

	current, err := os.ReadFile(snap.Path)
	if err != nil {
		return false, classify(snap.Path, err)
	}

	if bytes.Equal(current, content) {
		return false, nil
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode.Perm()); err != nil {
		return false, err
	}

	return true, nil
}
