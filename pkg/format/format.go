// Package format rewrites Markdown files into the canonical form produced by
// rendering their parsed tree back to Markdown.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/fsutil"
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// ErrUnparsed is returned by Plan for a file that failed to parse.
var ErrUnparsed = errors.New("file was not parsed")

// Source returns the canonical Markdown of doc: top-level blocks separated
// by one blank line and a final line break. An empty document is empty.
func Source(doc *mdast.Document) []byte {
	if doc == nil {
		return nil
	}
	return []byte(doc.String())
}

// Change is the canonical rewrite of one file.
type Change struct {
	Path string

	// Snapshot is the file state the change was planned against.
	Snapshot *fsutil.Snapshot

	Original  []byte
	Formatted []byte

	// Diff is nil when only the final line break differs.
	Diff *Diff
}

// Changed reports whether formatting alters the file.
func (c *Change) Changed() bool {
	return c != nil && !bytes.Equal(c.Original, c.Formatted)
}

// Plan computes the rewrite of a parsed file without touching the disk.
func Plan(outcome runner.FileOutcome) (*Change, error) {
	if outcome.Error != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnparsed, outcome.Path, outcome.Error)
	}
	if outcome.Document == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparsed, outcome.Path)
	}

	formatted := Source(outcome.Document)

	return &Change{
		Path:      outcome.Path,
		Snapshot:  outcome.Snapshot,
		Original:  outcome.Content,
		Formatted: formatted,
		Diff:      NewDiff(outcome.Path, outcome.Content, formatted),
	}, nil
}

// ApplyOptions controls how changes are written.
type ApplyOptions struct {
	// Backup saves a sidecar copy of the original before the first rewrite.
	Backup bool
}

// Apply writes c to disk. It reports whether the file was rewritten and
// fails with fsutil.ErrChangedOnDisk when the file moved on since Plan.
func Apply(ctx context.Context, c *Change, opts ApplyOptions) (bool, error) {
	if !c.Changed() {
		return false, nil
	}

	logger := logging.FromContext(ctx).With(logging.FieldPath, c.Path)

	if opts.Backup {
		created, err := fsutil.Backup(ctx, c.Path)
		if err != nil {
			return false, fmt.Errorf("backup %s: %w", c.Path, err)
		}
		if created {
			logger.Debug("backup written", "backup", fsutil.BackupPath(c.Path))
		}
	}

	written, err := fsutil.Rewrite(ctx, c.Snapshot, c.Formatted)
	if err != nil {
		return false, fmt.Errorf("rewrite %s: %w", c.Path, err)
	}

	logger.Debug("formatted", logging.FieldChanged, written)

	return written, nil
}
