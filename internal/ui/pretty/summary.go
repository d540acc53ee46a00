package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomdparse/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Parsed 3 files: 42 blocks, 1.2 KiB in 3ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	head := s.Success.Render(fmt.Sprintf("Parsed %d %s", stats.FilesParsed,
		plural(stats.FilesParsed, wordFile, wordFiles)))
	if stats.FilesErrored > 0 {
		head += " " + s.Failure.Render(fmt.Sprintf("(%d failed)", stats.FilesErrored))
	}

	detail := fmt.Sprintf("%d %s, %s in %s", stats.Blocks, plural(stats.Blocks, "block", "blocks"),
		FormatBytes(stats.Bytes), FormatDuration(stats.Duration))

	return head + ": " + s.Dim.Render(detail) + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:    " + s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files parsed:   " + s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:   " + s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  Blocks:         " + s.SummaryValue.Render(strconv.Itoa(stats.Blocks)) + "\n")
	builder.WriteString("  Bytes:          " + s.SummaryValue.Render(FormatBytes(stats.Bytes)) + "\n")
	builder.WriteString("  Duration:       " + s.SummaryValue.Render(FormatDuration(stats.Duration)) + "\n")

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Some files could not be parsed"))
	} else {
		builder.WriteString(s.Success.Render("All files parsed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatBytes renders a byte count in B, KiB or MiB.
func FormatBytes(n int64) string {
	const unit = 1024

	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KiB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(unit*unit))
	}
}

// FormatDuration rounds d for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
