package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yaklabco/gomdparse/pkg/config"
)

// envVarPrefix is the prefix for all gomdparse environment variables.
const envVarPrefix = "GOMDPARSE_"

// DotEnvFile is the file read from the working directory before the
// process environment.
const DotEnvFile = ".env"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	typ         envFieldType
	description string
	setString   func(cfg *config.Config, v string)
	setBool     func(cfg *config.Config, v bool)
	setInt      func(cfg *config.Config, v int)
	setSlice    func(cfg *config.Config, v []string)
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DISABLED_PARSERS": {
		typ: envTypeSlice, description: "Comma-separated parser IDs to disable",
		setSlice: func(cfg *config.Config, v []string) { cfg.DisabledParsers = v },
	},
	"DETECT_LANGUAGES": {
		typ: envTypeBool, description: "Detect languages of unlabeled code: true or false",
		setBool: func(cfg *config.Config, v bool) { cfg.DetectLanguages = config.Bool(v) },
	},
	"FORMAT": {
		typ: envTypeString, description: "Output format: tree, json, html, text, markdown, summary",
		setString: func(cfg *config.Config, v string) { cfg.Format = config.OutputFormat(v) },
	},
	"JOBS": {
		typ: envTypeInt, description: "Number of parallel workers (0 = auto)",
		setInt: func(cfg *config.Config, v int) { cfg.Jobs = v },
	},
	"COLOR": {
		typ: envTypeString, description: "Styled output: auto, always, never",
		setString: func(cfg *config.Config, v string) { cfg.Color = config.ColorMode(v) },
	},
	"EXTENSIONS": {
		typ: envTypeSlice, description: "Comma-separated Markdown file extensions",
		setSlice: func(cfg *config.Config, v []string) { cfg.Extensions = v },
	},
	"IGNORE": {
		typ: envTypeSlice, description: "Comma-separated list of ignore patterns",
		setSlice: func(cfg *config.Config, v []string) { cfg.Ignore = v },
	},
	"HTML_HEADING_IDS": {
		typ: envTypeBool, description: "Add id attributes to HTML headings: true or false",
		setBool: func(cfg *config.Config, v bool) { cfg.HTML.HeadingIDs = config.Bool(v) },
	},
	"HTML_SAFE": {
		typ: envTypeBool, description: "Neutralize script URLs in HTML: true or false",
		setBool: func(cfg *config.Config, v bool) { cfg.HTML.Safe = config.Bool(v) },
	},
	"SERVE_ADDR": {
		typ: envTypeString, description: "Listen address of the HTTP service",
		setString: func(cfg *config.Config, v string) { cfg.Serve.Addr = v },
	},
	"SERVE_MAX_BODY_BYTES": {
		typ: envTypeInt, description: "Maximum request body size in bytes",
		setInt: func(cfg *config.Config, v int) { cfg.Serve.MaxBodyBytes = int64(v) },
	},
	"LOG_LEVEL": {
		typ: envTypeString, description: "Log level: debug, info, warn, error",
		setString: func(cfg *config.Config, v string) { cfg.Log.Level = v },
	},
	"LOG_FORMAT": {
		typ: envTypeString, description: "Log format: text, json, logfmt",
		setString: func(cfg *config.Config, v string) { cfg.Log.Format = v },
	},
	"BACKUPS_ENABLED": {
		typ: envTypeBool, description: "Keep backups when rewriting: true or false",
		setBool: func(cfg *config.Config, v bool) { cfg.Backups.Enabled = config.Bool(v) },
	},
	"BACKUPS_MODE": {
		typ: envTypeString, description: "Backup mode: sidecar or none",
		setString: func(cfg *config.Config, v string) { cfg.Backups.Mode = config.BackupMode(v) },
	},
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// Environ layers base (the process environment when nil) over a .env file.
// Variables already set in base win, as godotenv.Load does.
func Environ(dotEnvPath string, base LookupFunc) (LookupFunc, error) {
	if base == nil {
		base = os.LookupEnv
	}

	values := map[string]string{}

	if dotEnvPath != "" && fileExists(dotEnvPath) {
		read, err := godotenv.Read(dotEnvPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dotEnvPath, err)
		}
		values = read
	}

	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}

		v, ok := values[key]
		return v, ok
	}, nil
}

// LoadFromEnv applies GOMDPARSE_* overrides found through lookup.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, suffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + suffix

		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		mapping.setString(cfg, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		mapping.setBool(cfg, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		mapping.setInt(cfg, i)
	case envTypeSlice:
		mapping.setSlice(cfg, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)

	return suffixes
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
