package usheader

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := processor.Process(ctx, raw, artifacts)
//	if errors.Is(err, usheader.ErrInvalidConfig) {
//	    // Report the offending field and abort the build
//	}
var (
	// ErrInvalidConfig indicates the userscript configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConfigNotFound indicates the project configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUsage indicates the command line was used incorrectly.
	ErrUsage = errors.New("usage error")

	// ErrNoEntries indicates that none of the scanned artifacts is an entry point.
	ErrNoEntries = errors.New("no entry artifacts found")
)

// usagePatterns are fragments of cobra/pflag error messages that describe
// command line misuse. Cobra does not expose typed errors for these.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConfigNotFound):
		return ExitConfigError
	case errors.Is(err, ErrNoEntries):
		return ExitNoEntryOutput
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	}

	msg := err.Error()
	for _, pattern := range usagePatterns {
		if strings.Contains(msg, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
