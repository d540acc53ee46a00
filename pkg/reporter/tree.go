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

// TreeReporter draws each parsed document as a tree of nodes.
type TreeReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TreeFormatter
	errOut    io.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	errOut := opts.ErrorWriter
	if errOut == nil {
		errOut = opts.Writer
	}

	return &TreeReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTreeFormatter(styles, width),
		errOut:    errOut,
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

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

		fmt.Fprint(bw, r.formatter.Format(path, render.NewJSONDocument(file.Document)))
	}

	if r.opts.ShowSummary {
		if !first {
			fmt.Fprintln(bw)
		}
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}
