package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration. Callers use
// errors.Is() to react to a particular failure.
var (
	// ErrNoInput is returned when no input file or directory is specified.
	ErrNoInput = errors.New("no input specified: provide a presentation, PDF or directory path")

	// ErrEmptyOutputDir is returned when the output directory is blank.
	ErrEmptyOutputDir = errors.New("invalid output directory: must not be empty")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDPI is returned when the rasterization resolution is outside
	// the range accepted by pdftoppm.
	ErrInvalidDPI = errors.New("invalid dpi: must be between 36 and 1200")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidUploadSize is returned when the web upload limit is not positive.
	ErrInvalidUploadSize = errors.New("invalid max upload size: must be positive")
)
