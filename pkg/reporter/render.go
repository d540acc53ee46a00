package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/render"
	"github.com/yaklabco/gomdparse/pkg/runner"
)

// RenderReporter writes each document rendered as HTML, plain text or
// Markdown. Multiple files are separated by a comment or header line naming
// the file.
type RenderReporter struct {
	opts   Options
	format render.Format
	styles *pretty.Styles
	errOut io.Writer
}

// NewRenderReporter creates a reporter for one of the html, text and
// markdown formats.
func NewRenderReporter(opts Options, format Format) *RenderReporter {
	errOut := opts.ErrorWriter
	if errOut == nil {
		errOut = opts.Writer
	}

	return &RenderReporter{
		opts:   opts,
		format: render.Format(format),
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, errOut)),
		errOut: errOut,
	}
}

// Report implements Reporter.
func (r *RenderReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	multi := len(result.Files) > 1
	failed := 0
	first := true

	for _, file := range result.Files {
		if ctx.Err() != nil {
			return failed, ctx.Err()
		}

		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			failed++
			fmt.Fprintf(r.errOut, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if !first {
			fmt.Fprintln(bw)
		}
		first = false

		if multi {
			fmt.Fprintln(bw, r.separator(path))
		}

		if err := render.Write(bw, file.Document, r.format, render.Options{HTML: r.opts.HTML}); err != nil {
			return failed, fmt.Errorf("render %s: %w", path, err)
		}
	}

	return failed, nil
}

// separator introduces one file's output.
func (r *RenderReporter) separator(path string) string {
	switch r.format {
	case render.FormatHTML, render.FormatMarkdown:
		return "<!-- " + path + " -->"
	default:
		return "==> " + path + " <=="
	}
}
