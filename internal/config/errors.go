package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling (the CLI maps ErrThresholdOutOfRange to
// exit code 2) while still providing human-readable messages.
var (
	// ErrNoPaths is returned when no file or directory arguments were given.
	ErrNoPaths = errors.New("no paths specified: provide one or more image files or directories")

	// ErrThresholdOutOfRange is returned when the threshold leaves the 8-bit
	// scale. The CLI maps this error to exit code 2.
	ErrThresholdOutOfRange = errors.New("threshold must be in [0, 255]")

	// ErrNoExtensions is returned when the extension filter is empty, which
	// would make every directory argument expand to nothing.
	ErrNoExtensions = errors.New("extension filter is empty: provide at least one extension")

	// ErrInvalidJobs is returned when the worker count is not positive.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
