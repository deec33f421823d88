package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and Extraction.Validate() so
// callers can use errors.Is() for programmatic handling.
var (
	// ErrNoInput is returned when no OCR text file is given to parse.
	ErrNoInput = errors.New("no input specified: provide one or more OCR text files or '-' for stdin")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --xlsx is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: choose only one of --json, --markdown, --xlsx")

	// ErrXLSXNeedsOutput is returned when --xlsx is used without --output.
	// A workbook is binary and is never written to a terminal.
	ErrXLSXNeedsOutput = errors.New("--xlsx requires --output")

	// ErrInvalidWeek is returned when the league week is negative.
	ErrInvalidWeek = errors.New("invalid week: must be zero (unassigned) or positive")

	// ErrInvalidHoleCount is returned when the hole count is not 0, 9 or 18.
	ErrInvalidHoleCount = errors.New("invalid hole count: must be 9 or 18 (0 infers it)")

	// ErrInvalidScoreRange is returned when the gross score range is empty.
	ErrInvalidScoreRange = errors.New("invalid score range: min must be positive and not above max")

	// ErrInvalidHandicapRange is returned when the handicap range is empty.
	ErrInvalidHandicapRange = errors.New("invalid handicap range: min must not be above max")

	// ErrInvalidHoleScoreRange is returned when the per-hole range is empty.
	ErrInvalidHoleScoreRange = errors.New("invalid hole score range: min must be positive and not above max")

	// ErrInvalidWindow is returned when a name search window is negative.
	ErrInvalidWindow = errors.New("invalid search window: must be non-negative")

	// ErrInvalidWeight is returned when a direction weight is not positive.
	ErrInvalidWeight = errors.New("invalid direction weight: must be positive")

	// ErrInvalidMinNameLength is returned when the minimum name length is below 1.
	ErrInvalidMinNameLength = errors.New("invalid minimum name length: must be at least 1")
)
