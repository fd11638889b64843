// Package log provides the application's logging setup, built on top of the
// standard slog package.
//
// Batch runs log one record per image, and attribute values in this domain
// can be long: deeply nested absolute paths, lists of discovered files,
// decoder error chains. The AbbrevHandler keeps such records on one readable
// line by shortening oversized string attributes and replacing the home
// directory prefix in paths with "~".
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	slog.SetDefault(logger)
package log
