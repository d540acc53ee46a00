package analysis

import "time"

// Report contains pre-computed statistics over parsed documents.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// ByFile holds one entry per discovered file.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind counts nodes per block and inline kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Category separates block kinds from inline kinds.
type Category string

// Node categories.
const (
	CategoryBlock  Category = "block"
	CategoryInline Category = "inline"
)

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files       int   `json:"files"`
	FilesParsed int   `json:"filesParsed"`
	FilesFailed int   `json:"filesFailed"`
	Blocks      int   `json:"blocks"`
	Inlines     int   `json:"inlines"`
	Bytes       int64 `json:"bytes"`
}

// HasFailures returns true if any file could not be parsed.
func (t Totals) HasFailures() bool {
	return t.FilesFailed > 0
}

// FileAnalysis contains statistics for a single file.
type FileAnalysis struct {
	Path     string `json:"path"`
	Blocks   int    `json:"blocks"`
	Inlines  int    `json:"inlines"`
	Headings int    `json:"headings"`
	MaxDepth int    `json:"maxDepth"`
	Bytes    int64  `json:"bytes"`
	Error    string `json:"error,omitempty"`
}

// KindAnalysis counts one node kind across all files.
type KindAnalysis struct {
	Kind     string   `json:"kind"`
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Files    []string `json:"files,omitempty"`
}
