package scan

import "errors"

// Batch-level errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at the call sites. This allows the command layer to use
// errors.Is() to map errors onto process exit codes while still providing
// human-readable messages.
var (
	// ErrNoFiles is returned when discovery matches no files at all.
	// The CLI maps this error to exit code 1.
	ErrNoFiles = errors.New("no images found with given paths/extensions")
)
