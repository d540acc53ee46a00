package format

import (
	"fmt"
	"slices"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// LineKind marks a diff line as unchanged, added or removed.
type LineKind uint8

// Diff line kinds.
const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// prefix is the unified diff marker of the kind.
func (k LineKind) prefix() byte {
	switch k {
	case LineAdd:
		return '+'
	case LineRemove:
		return '-'
	default:
		return ' '
	}
}

// Line is one line of a hunk, without its marker or line break.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based; a
// side with no lines starts at the line before the hunk, as in git.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is a line diff between a file and its formatted form.
type Diff struct {
	// Path names the file in headers.
	Path string

	Hunks []Hunk

	// Additions and Deletions count changed lines.
	Additions int
	Deletions int
}

// NewDiff compares before with after line by line. It returns nil when the
// two have the same lines.
func NewDiff(path string, before, after []byte) *Diff {
	oldLines := splitLines(before)
	newLines := splitLines(after)

	if slices.Equal(oldLines, newLines) {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunksOf(editScript(oldLines, newLines))}

	for _, hunk := range diff.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				diff.Additions++
			case LineRemove:
				diff.Deletions++
			case LineContext:
			}
		}
	}

	return diff
}

// HasChanges reports whether d has any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "diff --git" line.
func (d *Diff) Header() string {
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the unified diff, starting with the --- and +++ lines.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)

		for _, line := range hunk.Lines {
			builder.WriteByte(line.Kind.prefix())
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// splitLines splits content on line feeds. A final line break does not
// start another line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript turns oldLines into newLines with the fewest adds and removes.
// The shared prefix and suffix are matched directly so the quadratic table
// only covers the changed middle.
func editScript(oldLines, newLines []string) []Line {
	head := 0
	for head < len(oldLines) && head < len(newLines) && oldLines[head] == newLines[head] {
		head++
	}

	tail := 0
	for tail < len(oldLines)-head && tail < len(newLines)-head &&
		oldLines[len(oldLines)-1-tail] == newLines[len(newLines)-1-tail] {
		tail++
	}

	script := make([]Line, 0, len(oldLines)+len(newLines))
	for _, text := range oldLines[:head] {
		script = append(script, Line{Kind: LineContext, Text: text})
	}

	script = append(script, middleScript(oldLines[head:len(oldLines)-tail], newLines[head:len(newLines)-tail])...)

	for _, text := range oldLines[len(oldLines)-tail:] {
		script = append(script, Line{Kind: LineContext, Text: text})
	}

	return script
}

// middleScript walks a longest-common-subsequence table. On ties removals
// come before additions.
func middleScript(oldLines, newLines []string) []Line {
	rows, cols := len(oldLines), len(newLines)

	// common[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	common := make([][]int, rows+1)
	for i := range common {
		common[i] = make([]int, cols+1)
	}

	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				common[i][j] = common[i+1][j+1] + 1
			} else {
				common[i][j] = max(common[i+1][j], common[i][j+1])
			}
		}
	}

	script := make([]Line, 0, rows+cols)
	i, j := 0, 0

	for i < rows || j < cols {
		switch {
		case i < rows && j < cols && oldLines[i] == newLines[j]:
			script = append(script, Line{Kind: LineContext, Text: oldLines[i]})
			i++
			j++
		case i < rows && (j == cols || common[i+1][j] >= common[i][j+1]):
			script = append(script, Line{Kind: LineRemove, Text: oldLines[i]})
			i++
		default:
			script = append(script, Line{Kind: LineAdd, Text: newLines[j]})
			j++
		}
	}

	return script
}

// hunksOf groups the changes of script into hunks. Changes separated by at
// most twice the context share a hunk.
func hunksOf(script []Line) []Hunk {
	oldPos := make([]int, len(script))
	newPos := make([]int, len(script))

	oldLine, newLine := 0, 0
	for i, line := range script {
		oldPos[i], newPos[i] = oldLine, newLine
		if line.Kind != LineAdd {
			oldLine++
		}
		if line.Kind != LineRemove {
			newLine++
		}
	}

	var hunks []Hunk

	for i := 0; i < len(script); {
		if script[i].Kind == LineContext {
			i++
			continue
		}

		start := max(0, i-contextLines)

		end := i
		for end < len(script) {
			if script[end].Kind != LineContext {
				end++
				continue
			}

			run := end
			for run < len(script) && script[run].Kind == LineContext {
				run++
			}
			if run == len(script) || run-end > 2*contextLines {
				break
			}
			end = run
		}

		stop := min(len(script), end+contextLines)
		hunks = append(hunks, newHunk(script[start:stop], oldPos[start], newPos[start]))
		i = stop
	}

	return hunks
}

func newHunk(lines []Line, oldIndex, newIndex int) Hunk {
	hunk := Hunk{
		OldStart: oldIndex + 1,
		NewStart: newIndex + 1,
		Lines:    lines,
	}

	for _, line := range lines {
		if line.Kind != LineAdd {
			hunk.OldCount++
		}
		if line.Kind != LineRemove {
			hunk.NewCount++
		}
	}

	if hunk.OldCount == 0 {
		hunk.OldStart--
	}
	if hunk.NewCount == 0 {
		hunk.NewStart--
	}

	return hunk
}
