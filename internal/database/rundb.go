package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pixeltally/pixeltally/internal/model"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "pixeltally.db"

// RunDB stores completed counting runs in SQLite.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ReadOnlyOptions returns options for commands that only read history.
// An absent database is an error instead of being silently created.
func ReadOnlyOptions() Options {
	return Options{
		CreateIfNotExists: false,
		EnableWAL:         false,
	}
}

// Open opens or creates a RunDB inside dbDir.
// With CreateIfNotExists the directory and database file are created;
// otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("no run history found at %s (run 'pixeltally count' first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- One row per completed count run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		threshold INTEGER NOT NULL,
		file_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL,
		nonwhite INTEGER NOT NULL,
		total INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Per-file rows of a run
	CREATE TABLE IF NOT EXISTS run_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		nonwhite INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percent REAL NOT NULL,
		bit_depth INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
	CREATE INDEX IF NOT EXISTS idx_run_files_path ON run_files(path);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored run with its aggregate numbers.
type RunRecord struct {
	ID        int64
	Started   time.Time
	Threshold int
	Files     int
	Failed    int
	Nonwhite  int64
	Total     int64
}

// Percent returns the stored run's overall non-white percentage,
// 0.0 for an empty run.
func (r RunRecord) Percent() float64 {
	if r.Total == 0 {
		return 0.0
	}
	return float64(r.Nonwhite) / float64(r.Total) * 100.0
}

// SaveRun stores a completed run and its per-file rows in one transaction.
// It returns the new run's ID.
func (rdb *RunDB) SaveRun(ctx context.Context, s *model.RunSummary) (int64, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, threshold, file_count, failed_count, nonwhite, total)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.Started.UTC().Format("2006-01-02 15:04:05"),
		s.Threshold,
		s.FileCount(),
		s.Failed,
		s.Nonwhite,
		s.Total,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, path, nonwhite, total, percent, bit_depth)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range s.Results {
		if _, err := stmt.ExecContext(ctx, runID, r.Path, r.Nonwhite, r.Total, r.Percent, r.BitDepth); err != nil {
			return 0, fmt.Errorf("failed to insert file row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT id, started_at, threshold, file_count, failed_count, nonwhite, total
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0)
	for rows.Next() {
		var rec RunRecord
		var started string
		if err := rows.Scan(&rec.ID, &started, &rec.Threshold, &rec.Files, &rec.Failed, &rec.Nonwhite, &rec.Total); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Started = parseTimestamp(started)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRun returns a single stored run, or nil when the ID is unknown.
func (rdb *RunDB) GetRun(ctx context.Context, runID int64) (*RunRecord, error) {
	var rec RunRecord
	var started string
	err := rdb.db.QueryRowContext(ctx,
		`SELECT id, started_at, threshold, file_count, failed_count, nonwhite, total
		 FROM runs WHERE id = ?`, runID).
		Scan(&rec.ID, &started, &rec.Threshold, &rec.Files, &rec.Failed, &rec.Nonwhite, &rec.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	rec.Started = parseTimestamp(started)
	return &rec, nil
}

// GetRunFiles returns the stored per-file rows of a run in insertion order.
func (rdb *RunDB) GetRunFiles(ctx context.Context, runID int64) ([]model.FileResult, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT path, nonwhite, total, percent, bit_depth
		 FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run files: %w", err)
	}
	defer rows.Close()

	results := make([]model.FileResult, 0)
	for rows.Next() {
		var r model.FileResult
		if err := rows.Scan(&r.Path, &r.Nonwhite, &r.Total, &r.Percent, &r.BitDepth); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
