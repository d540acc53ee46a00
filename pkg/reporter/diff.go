package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/format"
)

// DiffReporter writes pending format changes as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report writes the diff of every changed file and returns how many files
// would change.
func (r *DiffReporter) Report(ctx context.Context, changes []*format.Change) (int, error) {
	var filesChanged, additions, deletions int

	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return filesChanged, err
		}

		if !change.Changed() {
			continue
		}

		filesChanged++

		if change.Diff == nil {
			fmt.Fprintln(r.out, r.styles.Dim.Render(
				displayPath(change.Path, r.opts.WorkingDir)+": final line break added"))
			continue
		}

		additions += change.Diff.Additions
		deletions += change.Diff.Deletions
		r.writeDiff(change.Diff)
	}

	if filesChanged > 0 && r.opts.ShowSummary {
		r.writeSummary(filesChanged, additions, deletions)
	}

	return filesChanged, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(diff *format.Diff) {
	display := *diff
	display.Path = displayPath(diff.Path, r.opts.WorkingDir)

	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(display.Header()))

	for line := range strings.SplitSeq(strings.TrimSuffix(display.String(), "\n"), "\n") {
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

// writeSummary writes a git-style stat line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralize(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralize(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
