package parser

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdparse/pkg/mdast"
	"github.com/yaklabco/gomdparse/pkg/textwin"
)

// Front matter delimiters.
const (
	frontMatterDelimiter = "---"
	frontMatterEnd       = "..."
)

// parseYamlHeader recognizes front matter on the first line of a document:
// a "---" line, a YAML mapping, and a closing "---" or "..." line. Anything
// that does not decode to a mapping is left to the other parsers.
func parseYamlHeader(st *BlockState, w textwin.Window) (mdast.Block, int) {
	if !st.DocumentStart || strings.TrimRight(w.Line(0), " \t") != frontMatterDelimiter {
		return nil, 0
	}

	closing := -1
	for i := 1; i < w.LineCount(); i++ {
		line := strings.TrimRight(w.Line(i), " \t")
		if line == frontMatterDelimiter || line == frontMatterEnd {
			closing = i
			break
		}
	}

	if closing < 2 {
		return nil, 0
	}

	raw := w.Lines(1, closing-1).String()

	var data map[string]any
	if err := yaml.Unmarshal([]byte(raw), &data); err != nil || len(data) == 0 {
		return nil, 0
	}

	return &mdast.YamlHeader{Raw: raw, Data: data}, closing + 1
}
