package about

import "time"

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Command completed without problems
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration file or parameters
	ExitInputError       = 11 // Unreadable or malformed input location
	ExitValidationFailed = 12 // Problems were found while validating ABOUT data
	ExitTemplateError    = 13 // Attribution template failed to parse or render
	ExitLicenseLibrary   = 14 // License library unreachable or refused access
)

const (
	// SpecVersion is the ABOUT file specification version written by gen.
	SpecVersion = "3.3.2"

	// AboutFileExtension is the extension of ABOUT files, matched case-insensitively.
	AboutFileExtension = ".ABOUT"

	// ErrorLogName is the file written in output directories when problems exist.
	ErrorLogName = "error.log"

	// ConfigFileName is the project configuration file looked up in the working directory.
	ConfigFileName = "about.yaml"

	// DefaultLicenseDBURL is the public ScanCode LicenseDB base URL.
	DefaultLicenseDBURL = "https://scancode-licensedb.aboutcode.org/"

	// DefaultHTTPTimeout bounds a single license library request.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
