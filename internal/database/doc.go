// Package database provides SQLite-based persistence of counting runs.
//
// Every completed count run can be saved with its parameters, grand totals,
// and per-file rows, so the history command can list past runs and re-print
// their results without re-decoding the images.
//
// The driver is modernc.org/sqlite, a pure-Go SQLite build, so the binary
// stays cgo-free.
package database
