package pretty

import (
	"strings"
	"unicode/utf8"
)

// Table formatting constants.
const (
	columnGap      = 2
	lightSeparator = "─"
)

// Column describes one table column.
type Column struct {
	Header string

	// Right aligns the column, for numbers.
	Right bool

	// MaxWidth truncates longer cells; 0 means unlimited.
	MaxWidth int

	// TruncateLeft keeps the end of long cells, for file paths.
	TruncateLeft bool
}

// TableRow is one row of cells. Failed rows are highlighted.
type TableRow struct {
	Cells  []string
	Failed bool
}

// Table is a titled table of plain-text cells.
type Table struct {
	Title   string
	Columns []Column
	Rows    []TableRow
}

// FormatTable renders t with a header and separators. Cells are padded
// before styling so ANSI codes do not disturb alignment.
func (s *Styles) FormatTable(t Table) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if i >= len(row.Cells) {
				continue
			}
			cell := truncate(row.Cells[i], col.MaxWidth, col.TruncateLeft)
			rows[r][i] = cell
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	total += columnGap * (len(widths) - 1)
	separator := s.TableSeparator.Render(strings.Repeat(lightSeparator, total))

	var builder strings.Builder

	if t.Title != "" {
		builder.WriteString(s.Bold.Render(t.Title) + "\n")
	}
	builder.WriteString(separator + "\n")

	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = s.TableHeader.Render(pad(col.Header, widths[i], col.Right))
	}
	builder.WriteString(joinCells(headers) + "\n")
	builder.WriteString(separator + "\n")

	for r, cells := range rows {
		styled := make([]string, len(cells))
		for i, cell := range cells {
			styled[i] = pad(cell, widths[i], t.Columns[i].Right)
			if i == 0 && t.Rows[r].Failed {
				styled[i] = s.TableErrorRow.Render(styled[i])
			}
		}
		builder.WriteString(joinCells(styled) + "\n")
	}

	return builder.String()
}

func joinCells(cells []string) string {
	return strings.TrimRight(strings.Join(cells, strings.Repeat(" ", columnGap)), " ")
}

// pad pads s to width. This must be called before applying styles.
func pad(s string, width int, right bool) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	if right {
		return strings.Repeat(" ", width-n) + s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens s to maxWidth runes with an ellipsis.
func truncate(s string, maxWidth int, left bool) string {
	runes := []rune(s)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return s
	}
	if left {
		return "…" + string(runes[len(runes)-(maxWidth-1):])
	}
	return string(runes[:maxWidth-1]) + "…"
}
