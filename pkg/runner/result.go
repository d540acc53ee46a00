package runner

import (
	"time"

	"github.com/yaklabco/gomdparse/pkg/fsutil"
	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// FileOutcome is the parse of one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Content is the raw file content.
	Content []byte

	// Snapshot records the file state at read time.
	Snapshot *fsutil.Snapshot

	// Document is nil when Error is set.
	Document *mdast.Document

	// Duration is the time spent reading and parsing.
	Duration time.Duration

	// Error is set if the file could not be read.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed successfully.
	FilesParsed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// Blocks counts every block in every document, nested ones included.
	Blocks int

	// Bytes is the total size of the parsed files.
	Bytes int64

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, file := range r.Files {
		if file.Error != nil {
			errs = append(errs, file.Error)
		}
	}

	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Bytes += int64(len(outcome.Content))
	r.Stats.Blocks += CountBlocks(outcome.Document)
}

// CountBlocks counts all blocks of doc, including list items and blocks
// nested in containers.
func CountBlocks(doc *mdast.Document) int {
	if doc == nil {
		return 0
	}

	count := 0
	_ = mdast.Walk(doc.Blocks(), func(mdast.Block, int) error {
		count++
		return nil
	})

	return count
}
