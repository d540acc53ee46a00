package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gomdparse/pkg/mdast"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown render format")

// Format names an output format.
type Format string

// Output formats.
const (
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatHTML, FormatText, FormatMarkdown, FormatJSON}
}

// ParseFormat parses a format name, case-insensitively. "md" is accepted for
// markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "html":
		return FormatHTML, nil
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q; valid formats: html, text, markdown, json", ErrUnknownFormat, name)
	}
}

func (f Format) String() string {
	return string(f)
}

// ContentType returns the HTTP content type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options configures Write.
type Options struct {
	HTML HTMLOptions

	// Indent pretty-prints JSON output.
	Indent bool
}

// Write renders doc in format f to w.
func Write(w io.Writer, doc *mdast.Document, f Format, opts Options) error {
	var out string

	switch f {
	case FormatHTML:
		out = HTML(doc, opts.HTML)
	case FormatText:
		out = Text(doc)
	case FormatMarkdown:
		out = doc.String()
	case FormatJSON:
		return EncodeJSON(w, doc, opts.Indent)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write %s: %w", f, err)
	}

	return nil
}
