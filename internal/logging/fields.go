// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldFormat     = "format"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldJobs     = "jobs"
	FieldWatch    = "watch"
	FieldDuration = "duration"
	FieldChanged  = "changed"

	// Parse statistics.
	FieldFilesParsed = "files_parsed"
	FieldFilesFailed = "files_failed"
	FieldBlocks      = "blocks"
	FieldBytes       = "bytes"

	// Comparison fields.
	FieldMismatches = "mismatches"
	FieldReference  = "reference"

	// Server fields.
	FieldAddr      = "addr"
	FieldMethod    = "method"
	FieldRoute     = "route"
	FieldStatus    = "status"
	FieldRequestID = "request_id"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Parser registry fields.
	FieldParser = "parser"
	FieldBefore = "before"
	FieldAfter  = "after"
)
