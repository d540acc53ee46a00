// Package config defines core configuration types for gomdparse.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies how parse results are printed.
type OutputFormat string

const (
	FormatTree     OutputFormat = "tree"
	FormatJSON     OutputFormat = "json"
	FormatHTML     OutputFormat = "html"
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatSummary  OutputFormat = "summary"
)

// OutputFormats lists every valid output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatTree, FormatJSON, FormatHTML, FormatText, FormatMarkdown, FormatSummary}
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// BackupMode selects where fmt --write keeps the previous content.
type BackupMode string

const (
	BackupSidecar BackupMode = "sidecar" // file.md.gomdparse.bak next to the file
	BackupNone    BackupMode = "none"
)

// HTMLConfig configures the HTML renderer.
type HTMLConfig struct {
	// HeadingIDs adds slug id attributes to headings.
	HeadingIDs *bool `yaml:"heading_ids,omitempty"`

	// Safe neutralizes script URLs in links and images.
	Safe *bool `yaml:"safe,omitempty"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string `yaml:"addr,omitempty"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled *bool      `yaml:"enabled,omitempty"`
	Mode    BackupMode `yaml:"mode,omitempty"`
}

// Config is the root configuration structure for gomdparse.
type Config struct {
	// DisabledParsers lists block or inline parser IDs to remove.
	DisabledParsers []string `yaml:"disabled_parsers,omitempty"`

	// DetectLanguages fills in the language of unlabeled code blocks.
	DetectLanguages *bool `yaml:"detect_languages,omitempty"`

	// Format is the default output format of the parse command.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs is the number of files parsed concurrently (0 means GOMAXPROCS).
	Jobs int `yaml:"jobs,omitempty"`

	// Color controls styled output.
	Color ColorMode `yaml:"color,omitempty"`

	// Extensions are the file extensions treated as Markdown.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	HTML    HTMLConfig    `yaml:"html,omitempty"`
	Serve   ServeConfig   `yaml:"serve,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	Backups BackupsConfig `yaml:"backups,omitempty"`
}

// Defaults.
const (
	DefaultServeAddr    = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 4 << 20
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		DetectLanguages: Bool(true),
		Format:          FormatTree,
		Color:           ColorAuto,
		HTML: HTMLConfig{
			HeadingIDs: Bool(false),
			Safe:       Bool(true),
		},
		Serve: ServeConfig{
			Addr:         DefaultServeAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    BackupSidecar,
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}

	return *p
}

// ShouldDetectLanguages reports whether language detection is on.
func (c *Config) ShouldDetectLanguages() bool {
	return BoolValue(c.DetectLanguages, true)
}

// ShouldBackup reports whether fmt --write keeps backups.
func (c *Config) ShouldBackup() bool {
	return BoolValue(c.Backups.Enabled, true) && c.Backups.Mode != BackupNone
}
