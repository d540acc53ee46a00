package parser

import (
	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// cellRange is the byte range of a table cell within its line.
type cellRange struct {
	start int
	end   int
}

// parseTable recognizes pipe tables: a header row containing an unescaped
// '|', a separator row with at least as many cells whose every cell is
// '-' with optional ':' alignment markers, then data rows while lines
// contain '|'. Tables cannot interrupt a paragraph.
func parseTable(st *BlockState, w textwin.Window) (mdast.Block, int) {
	if st.ParagraphPending || w.LineCount() < 2 {
		return nil, 0
	}

	header := w.Line(0)
	if leadingSpaces(header) >= codeIndent || !hasUnescapedPipe(header) {
		return nil, 0
	}

	headerCells := tableCells(header)

	separator := w.Line(1)
	separatorCells := tableCells(separator)

	if len(separatorCells) < len(headerCells) {
		return nil, 0
	}

	columns := make([]mdast.ColumnDefinition, len(headerCells))
	for i, cell := range separatorCells {
		align, ok := parseAlignment(separator[cell.start:cell.end])
		if !ok {
			return nil, 0
		}

		if i < len(columns) {
			columns[i].Alignment = align
		}
	}

	table := &mdast.Table{Columns: columns}
	table.Rows = append(table.Rows, tableRow(st, w, 0, headerCells, len(columns)))

	consumed := 2
	for ; consumed < w.LineCount(); consumed++ {
		line := w.Line(consumed)
		if isBlank(line) || !hasUnescapedPipe(line) {
			break
		}

		table.Rows = append(table.Rows, tableRow(st, w, consumed, tableCells(line), len(columns)))
	}

	return table, consumed
}

func tableRow(st *BlockState, w textwin.Window, line int, cells []cellRange, columns int) mdast.TableRow {
	row := mdast.TableRow{Cells: make([]mdast.TableCell, 0, min(len(cells), columns))}

	for i, cell := range cells {
		if i == columns {
			break
		}

		row.Cells = append(row.Cells, mdast.TableCell{
			Inlines: st.ParseInlines(lineSlice(w, line, cell.start, cell.end)),
		})
	}

	return row
}

// parseAlignment validates a separator cell of the form :?-+:?.
func parseAlignment(cell string) (mdast.Alignment, bool) {
	cell = tableTrimSpace(cell)

	left := len(cell) > 0 && cell[0] == ':'
	if left {
		cell = cell[1:]
	}

	right := len(cell) > 0 && cell[len(cell)-1] == ':'
	if right {
		cell = cell[:len(cell)-1]
	}

	if cell == "" {
		return mdast.AlignNone, false
	}

	for idx := range len(cell) {
		if cell[idx] != '-' {
			return mdast.AlignNone, false
		}
	}

	switch {
	case left && right:
		return mdast.AlignCenter, true
	case left:
		return mdast.AlignLeft, true
	case right:
		return mdast.AlignRight, true
	default:
		return mdast.AlignNone, true
	}
}

// tableCells splits a row on unescaped pipes after dropping the outer ones.
func tableCells(line string) []cellRange {
	start, end := 0, len(line)

	for start < end && isTableSpace(line[start]) {
		start++
	}

	for end > start && isTableSpace(line[end-1]) {
		end--
	}

	if start < end && line[start] == '|' {
		start++
	}

	if end > start && line[end-1] == '|' && (end-2 < start || line[end-2] != '\\') {
		end--
	}

	var cells []cellRange

	cellStart := start
	for idx := start; idx < end; idx++ {
		switch line[idx] {
		case '\\':
			idx++
		case '|':
			cells = append(cells, cellRange{start: cellStart, end: idx})
			cellStart = idx + 1
		}
	}

	return append(cells, cellRange{start: cellStart, end: max(cellStart, end)})
}

func hasUnescapedPipe(line string) bool {
	for idx := 0; idx < len(line); idx++ {
		switch line[idx] {
		case '\\':
			idx++
		case '|':
			return true
		}
	}

	return false
}

func isTableSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func tableTrimSpace(s string) string {
	start, end := 0, len(s)

	for start < end && isTableSpace(s[start]) {
		start++
	}

	for end > start && isTableSpace(s[end-1]) {
		end--
	}

	return s[start:end]
}
