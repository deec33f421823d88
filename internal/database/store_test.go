package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *Store {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("Path() = %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")
		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Fatalf("expected ErrDatabaseNotFound, got %v", err)
		}

		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "existing-db")
		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db1.LearnCorrection(t.Context(), "Beachv", "Beachy", "name"); err != nil {
			t.Fatalf("LearnCorrection() error = %v", err)
		}
		db1.Close()

		db2, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		defer db2.Close()

		entries, err := db2.Corrections(t.Context(), "")
		if err != nil {
			t.Fatalf("Corrections() error = %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected the stored correction to persist, got %d entries", len(entries))
		}
	})

	t.Run("without WAL", func(t *testing.T) {
		t.Parallel()

		db, err := Open(t.TempDir(), Options{CreateIfNotExists: true})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
	})
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if !opts.CreateIfNotExists {
		t.Error("CreateIfNotExists should default to true")
	}
	if !opts.EnableWAL {
		t.Error("EnableWAL should default to true")
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "store layout", input: formatTimestamp(want), want: want},
		{name: "sqlite default", input: "2025-06-07 08:09:10", want: want},
		{name: "iso with Z", input: "2025-06-07T08:09:10Z", want: want},
		{name: "garbage", input: "yesterday", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := parseTimestamp(tt.input); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTimestampSortsChronologically(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	earlier := formatTimestamp(base.Add(100 * time.Millisecond))
	later := formatTimestamp(base.Add(120*time.Millisecond + time.Nanosecond))
	if earlier >= later {
		t.Errorf("expected %q < %q", earlier, later)
	}
}
