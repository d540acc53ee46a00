package configloader

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/config"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "html.safe").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown parser IDs).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins every error, or returns nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i := range r.Errors {
		errs[i] = &r.Errors[i]
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only pattern.
var extensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9_-]+$`)

// fieldCheck runs ozzo rules against one config field.
type fieldCheck struct {
	field string
	value any
	rules []validation.Rule
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	checks := []fieldCheck{
		{"format", string(cfg.Format), []validation.Rule{oneOf(formatNames()...)}},
		{"color", string(cfg.Color), []validation.Rule{
			oneOf(string(config.ColorAuto), string(config.ColorAlways), string(config.ColorNever)),
		}},
		{"jobs", cfg.Jobs, []validation.Rule{validation.Min(0).Error("must be >= 0 (0 means auto)")}},
		{"serve.addr", cfg.Serve.Addr, []validation.Rule{validation.By(validAddr)}},
		{"serve.max_body_bytes", cfg.Serve.MaxBodyBytes, []validation.Rule{
			validation.Min(0).Error("must be >= 0"),
		}},
		{"log.level", cfg.Log.Level, []validation.Rule{validation.By(validLogLevel)}},
		{"log.format", cfg.Log.Format, []validation.Rule{validation.By(validLogFormat)}},
		{"backups.mode", string(cfg.Backups.Mode), []validation.Rule{
			oneOf(string(config.BackupSidecar), string(config.BackupNone)),
		}},
	}

	for i, ext := range cfg.Extensions {
		checks = append(checks, fieldCheck{
			fmt.Sprintf("extensions[%d]", i), ext,
			[]validation.Rule{validation.Match(extensionPattern).Error(`must look like ".md"`)},
		})
	}

	for i, pattern := range cfg.Ignore {
		checks = append(checks, fieldCheck{
			fmt.Sprintf("ignore[%d]", i), pattern,
			[]validation.Rule{validation.Required, validation.By(validGlob)},
		})
	}

	for _, check := range checks {
		if err := validation.Validate(check.value, check.rules...); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   check.field,
				Value:   check.value,
				Message: err.Error(),
			})
		}
	}

	validateParserIDs(cfg, result)

	return result
}

// validateParserIDs warns about disabled parser IDs that match nothing.
func validateParserIDs(cfg *config.Config, result *ValidationResult) {
	if len(cfg.DisabledParsers) == 0 {
		return
	}

	known := make(map[string]bool)
	for _, id := range parser.Default().BlockOrder() {
		known[id] = true
	}
	for _, id := range parser.Default().InlineOrder() {
		known[id] = true
	}

	for i, id := range cfg.DisabledParsers {
		if !known[id] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("disabled_parsers[%d]", i),
				Value:   id,
				Message: fmt.Sprintf("unknown parser %q; it will be ignored", id),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

func oneOf(values ...string) validation.Rule {
	elements := make([]any, len(values))
	for i, v := range values {
		elements[i] = v
	}

	return validation.In(elements...).Error("must be one of: " + strings.Join(values, ", "))
}

func formatNames() []string {
	formats := config.OutputFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

func validAddr(value any) error {
	addr, _ := value.(string)
	if addr == "" {
		return nil
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return nil
}

func validLogLevel(value any) error {
	level, _ := value.(string)
	if level == "" || logging.ValidLevel(level) {
		return nil
	}
	return fmt.Errorf("invalid level %q; must be one of: debug, info, warn, error", level)
}

func validLogFormat(value any) error {
	format, _ := value.(string)
	if format == "" || logging.ValidFormat(format) {
		return nil
	}
	return fmt.Errorf("invalid format %q; must be one of: text, json, logfmt", format)
}

func validGlob(value any) error {
	pattern, _ := value.(string)
	if _, err := glob.Compile(pattern, '/'); err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	return nil
}
