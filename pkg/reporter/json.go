package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdparse/pkg/render"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// jsonVersion is the version of the JSON output layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's parse.
type JSONFileResult struct {
	Path     string               `json:"path"`
	Error    string               `json:"error,omitempty"`
	Document *render.JSONDocument `json:"document,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesParsed     int   `json:"filesParsed"`
	FilesErrored    int   `json:"filesErrored"`
	Blocks          int   `json:"blocks"`
	Bytes           int64 `json:"bytes"`
	DurationMs      int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		fileResult := JSONFileResult{Path: displayPath(file.Path, r.opts.WorkingDir)}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		} else {
			doc := render.NewJSONDocument(file.Document)
			fileResult.Document = &doc
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesParsed:     stats.FilesParsed,
		FilesErrored:    stats.FilesErrored,
		Blocks:          stats.Blocks,
		Bytes:           stats.Bytes,
		DurationMs:      stats.Duration.Milliseconds(),
	}

	return output
}
