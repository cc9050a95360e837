package about

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := generator.Generate(ctx, opts)
//	if errors.Is(err, about.ErrInvalidInput) {
//	    // the inventory could not be read
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidInput indicates an input location is missing or has an unsupported format.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutputLocation indicates the output location does not exist or cannot be written.
	ErrOutputLocation = errors.New("invalid output location")

	// ErrValidationFailed indicates that problematic diagnostics were reported.
	ErrValidationFailed = errors.New("validation failed")

	// ErrTemplate indicates an attribution template could not be parsed or rendered.
	ErrTemplate = errors.New("template error")

	// ErrLicenseLibrary indicates the license library could not be used.
	ErrLicenseLibrary = errors.New("license library error")

	// ErrUnauthorized indicates the license library rejected the API key.
	ErrUnauthorized = errors.New("authorization denied")
)

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
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrOutputLocation):
		return ExitInputError
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	case errors.Is(err, ErrTemplate):
		return ExitTemplateError
	case errors.Is(err, ErrLicenseLibrary), errors.Is(err, ErrUnauthorized):
		return ExitLicenseLibrary
	}

	// cobra reports argument problems as plain errors
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "accepts ") ||
		strings.Contains(errStr, "missing required argument") ||
		strings.Contains(errStr, "requires at least") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
