package goldmark

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// splitFrontMatter detects a YAML mapping between "---" and "---" or "..."
// lines at the start of source. It returns the decoded header and the
// remaining body, or nil and source unchanged.
func splitFrontMatter(source []byte) (*mdast.YamlHeader, []byte) {
	lines := bytes.SplitAfter(source, []byte("\n"))
	if len(lines) < 3 || !isDelimiter(lines[0], "---") {
		return nil, source
	}

	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i], "---") || isDelimiter(lines[i], "...") {
			if i < 2 {
				return nil, source
			}

			raw := bytes.TrimSuffix(source[len(lines[0]):offset], []byte("\n"))

			var data map[string]any
			if err := yaml.Unmarshal(raw, &data); err != nil || len(data) == 0 {
				return nil, source
			}

			return &mdast.YamlHeader{Raw: string(raw), Data: data}, source[offset+len(lines[i]):]
		}

		offset += len(lines[i])
	}

	return nil, source
}

func isDelimiter(line []byte, delimiter string) bool {
	return string(bytes.TrimRight(line, " \t\n")) == delimiter
}
