package cli

import (
	"errors"

	"github.com/yaklabco/gomdparse/internal/configloader"
)

// Exit codes for gomdparse.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFindings indicates the command ran but found something to report:
	// unreadable files, unformatted files, or reference mismatches.
	ExitFindings = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// Sentinel errors that map to ExitFindings. They are signals for the exit
// code and are not logged.
var (
	ErrFilesFailed = errors.New("some files could not be parsed")
	ErrUnformatted = errors.New("some files are not formatted")
	ErrMismatch    = errors.New("parse differs from the reference parser")
)

// ErrInvalidUsage wraps flag and argument errors.
var ErrInvalidUsage = errors.New("invalid usage")

// ErrConfig wraps configuration loading errors.
var ErrConfig = errors.New("configuration error")

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsFinding(err):
		return ExitFindings
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.Is(err, configloader.ErrConfigExists):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsFinding reports whether err only signals findings already reported.
func IsFinding(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrUnformatted) || errors.Is(err, ErrMismatch)
}
