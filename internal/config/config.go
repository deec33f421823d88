package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBatchSize is the number of OCR text files parsed concurrently.
	DefaultBatchSize = 4

	// DefaultScoringHoles is the hole count used for net scoring when neither
	// the flag nor the extracted hole table decides it.
	DefaultScoringHoles = 9

	// AppName is the application name used for XDG directory paths.
	AppName = "golfcard"

	// DBFileName is the SQLite database file name inside DBDir.
	DBFileName = "golfcard.db"
)

// Config holds all configuration options for golfcard.
// It is populated from CLI flags and the configuration file and passed
// through the application rather than kept in global state.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of input files parsed concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .golfcard in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// File holds extraction overrides and team rosters from the config file.
	File *File

	// Week is the league week the parsed scorecards belong to. 0 means unassigned.
	Week int

	// NumHoles is the hole count used for net scoring: 9 or 18, 0 to infer.
	NumHoles int

	// JSONReport, MarkdownReport and XLSXReport select the output format.
	// They are mutually exclusive; none selected means the simple text format.
	JSONReport     bool
	MarkdownReport bool
	XLSXReport     bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Inputs are OCR text file paths. "-" reads standard input.
	Inputs []string

	// DBDir is the directory holding the SQLite database with learned
	// corrections and scorecard history.
	// Defaults to XDG data directory (~/.local/share/golfcard on Linux).
	DBDir string

	// SaveToDB stores parsed scorecards in the history table.
	SaveToDB bool

	// UseCorrections applies learned OCR corrections during cleaning.
	UseCorrections bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		File:           NewFile(),
		DBDir:          XDGDataDir(),
		SaveToDB:       true,
		UseCorrections: true,
	}
}

// XDGDataDir returns the XDG data directory for golfcard.
// On Linux: ~/.local/share/golfcard
// On macOS: ~/Library/Application Support/golfcard
// On Windows: %LOCALAPPDATA%\golfcard
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for golfcard.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DBPath returns the database file path within dir.
func DBPath(dir string) string {
	return filepath.Join(dir, DBFileName)
}

// Validate checks if the configuration is valid.
// It returns the first error found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	formats := 0
	for _, on := range []bool{c.JSONReport, c.MarkdownReport, c.XLSXReport} {
		if on {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	if c.XLSXReport && c.ReportFile == "" {
		return ErrXLSXNeedsOutput
	}

	if c.Week < 0 {
		return ErrInvalidWeek
	}

	if !ValidHoleCount(c.NumHoles) {
		return ErrInvalidHoleCount
	}

	if c.File != nil {
		if err := c.File.Extraction.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Extraction returns the effective extraction settings.
// A hole count given on the command line overrides the configuration file.
func (c *Config) Extraction() Extraction {
	ext := DefaultExtraction()
	if c.File != nil {
		ext = c.File.Extraction
	}
	if c.NumHoles != 0 {
		ext.HoleCount = c.NumHoles
	}
	return ext
}
