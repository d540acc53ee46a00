package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every parser that can be disabled.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Parsers describes the registered parsers listed by full templates.
	Parsers []ParserInfo
}

// ParserInfo describes one registered parser for template generation.
type ParserInfo struct {
	ID     string
	Kind   string // "block" or "inline"
	Before []string
	After  []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.WriteString(minimalBody)

	if opts.Full {
		writeParserSection(&buf, opts.Parsers)
	}

	return buf.Bytes(), nil
}

const minimalBody = `# Default output of "gomdparse parse": tree, json, html, text, markdown, summary
format: tree

# Fill in the language of unlabeled code blocks
detect_languages: true

# Number of files parsed in parallel (0 = auto)
# jobs: 0

# Styled output: auto, always, never
# color: auto

# File extensions treated as Markdown
# extensions: [".md", ".markdown"]

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# HTML rendering
html:
  heading_ids: false
  safe: true

# HTTP service started by "gomdparse serve"
# serve:
#   addr: 127.0.0.1:8080
#   max_body_bytes: 4194304

# log:
#   level: info
#   format: text

# Backups made by "gomdparse fmt --write": sidecar or none
# backups:
#   enabled: true
#   mode: sidecar
`

// writeParserSection appends a commented list of parser IDs.
func writeParserSection(buf *bytes.Buffer, parsers []ParserInfo) {
	buf.WriteString("\n# Parsers that can be disabled by ID.\n")
	buf.WriteString("# disabled_parsers:\n")

	for _, p := range parsers {
		desc := p.Kind + " parser"
		if len(p.Before) > 0 {
			desc += ", runs before " + strings.Join(p.Before, ", ")
		}
		if len(p.After) > 0 {
			desc += ", runs after " + strings.Join(p.After, ", ")
		}

		fmt.Fprintf(buf, "#   - %s  # %s\n", p.ID, wrapComment(desc, commentWrapWidth))
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#     ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	yamlBytes, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdparse configuration
# See: https://github.com/yaklabco/gomdparse`
}
