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

	"github.com/nao1215/golfcard/internal/config"
)

// FileName is the name of the database file inside the database directory.
const FileName = config.DBFileName

// ErrDatabaseNotFound is returned by Open when the database file is missing
// and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("database not found")

// Store provides SQLite-based storage for corrections and scorecards.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time; replaced in tests.
	now func() time.Time
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Store in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// wrapping ErrDatabaseNotFound is returned.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
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

	s := &Store{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the path of the database file.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Learned OCR corrections, one row per (ocr text, correction, type)
	CREATE TABLE IF NOT EXISTS ocr_corrections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ocr_text TEXT NOT NULL,
		corrected_text TEXT NOT NULL,
		pattern_type TEXT NOT NULL DEFAULT 'name',
		frequency INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		last_used_at TEXT NOT NULL,
		UNIQUE(ocr_text, corrected_text, pattern_type)
	);

	CREATE INDEX IF NOT EXISTS idx_corrections_ocr ON ocr_corrections(ocr_text);
	CREATE INDEX IF NOT EXISTS idx_corrections_type ON ocr_corrections(pattern_type);

	-- Processed scorecards stored as JSON
	CREATE TABLE IF NOT EXISTS scorecards (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		week INTEGER NOT NULL DEFAULT 0,
		num_holes INTEGER NOT NULL DEFAULT 9,
		processed_at TEXT NOT NULL,
		scorecard_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scorecards_week ON scorecards(week);
	CREATE INDEX IF NOT EXISTS idx_scorecards_processed ON scorecards(processed_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// timeLayout is how timestamps are written. The fixed fraction width keeps
// lexical order equal to chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp renders t in UTC using timeLayout.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timestampFormats contains the timestamp formats that may be read back.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
