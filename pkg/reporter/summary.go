package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdparse/internal/ui/pretty"
	"github.com/yaklabco/gomdparse/pkg/analysis"
)

// Column limits for summary tables.
const (
	maxFilePathLength = 58
	maxKindLength     = 24
)

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Files == 0 {
		_, err := fmt.Fprintln(r.out, r.styles.Dim.Render("No Markdown files found"))
		return err
	}

	var builder strings.Builder

	if table := r.kindTable(report.ByKind); table != "" {
		builder.WriteString(table + "\n")
	}
	if table := r.fileTable(report.ByFile); table != "" {
		builder.WriteString(table + "\n")
	}
	builder.WriteString(r.totals(report.Totals))

	_, err := io.WriteString(r.out, builder.String())
	return err
}

func (r *SummaryRenderer) kindTable(kinds []analysis.KindAnalysis) string {
	rows := make([]pretty.TableRow, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, pretty.TableRow{Cells: []string{
			kind.Kind,
			string(kind.Category),
			strconv.Itoa(kind.Count),
			strconv.Itoa(len(kind.Files)),
		}})
	}

	return r.styles.FormatTable(pretty.Table{
		Title: "Node Kinds",
		Columns: []pretty.Column{
			{Header: "Kind", MaxWidth: maxKindLength},
			{Header: "Category"},
			{Header: "Count", Right: true},
			{Header: "Files", Right: true},
		},
		Rows: rows,
	})
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) string {
	rows := make([]pretty.TableRow, 0, len(files))
	for _, file := range files {
		if file.Error != "" {
			rows = append(rows, pretty.TableRow{
				Cells:  []string{file.Path, "-", "-", "-", "-", "failed"},
				Failed: true,
			})
			continue
		}

		rows = append(rows, pretty.TableRow{Cells: []string{
			file.Path,
			strconv.Itoa(file.Blocks),
			strconv.Itoa(file.Inlines),
			strconv.Itoa(file.Headings),
			strconv.Itoa(file.MaxDepth),
			pretty.FormatBytes(file.Bytes),
		}})
	}

	return r.styles.FormatTable(pretty.Table{
		Title: "Files",
		Columns: []pretty.Column{
			{Header: "File", MaxWidth: maxFilePathLength, TruncateLeft: true},
			{Header: "Blocks", Right: true},
			{Header: "Inlines", Right: true},
			{Header: "Headings", Right: true},
			{Header: "Depth", Right: true},
			{Header: "Size", Right: true},
		},
		Rows: rows,
	})
}

func (r *SummaryRenderer) totals(totals analysis.Totals) string {
	parts := []string{
		fmt.Sprintf("%d %s", totals.FilesParsed, pluralize(totals.FilesParsed, "file", "files")),
		fmt.Sprintf("%d %s", totals.Blocks, pluralize(totals.Blocks, "block", "blocks")),
		fmt.Sprintf("%d %s", totals.Inlines, pluralize(totals.Inlines, "inline", "inlines")),
		pretty.FormatBytes(totals.Bytes),
	}

	line := r.styles.Bold.Render("Total: ") + strings.Join(parts, ", ")
	if totals.HasFailures() {
		line += " " + r.styles.Error.Render(fmt.Sprintf("(%d failed)", totals.FilesFailed))
	}

	return line + "\n"
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
