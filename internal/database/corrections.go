package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/golfcard/internal/model"
)

var (
	// ErrEmptyCorrection is returned when the OCR text or the corrected text is blank.
	ErrEmptyCorrection = errors.New("ocr text and corrected text must not be empty")

	// ErrCorrectionNotFound is returned when no correction has the given ID.
	ErrCorrectionNotFound = errors.New("correction not found")
)

// CorrectionStats counts stored corrections per pattern type.
type CorrectionStats struct {
	Total    int `json:"total"`
	Name     int `json:"name"`
	Score    int `json:"score"`
	Handicap int `json:"handicap"`
}

const correctionColumns = `id, ocr_text, corrected_text, pattern_type, frequency, created_at, last_used_at`

// LearnCorrection records that ocrText should read as corrected.
// A new pair is stored with frequency 1. Learning a known pair again
// increments its frequency and bumps last_used_at.
func (s *Store) LearnCorrection(ctx context.Context, ocrText, corrected string, patternType model.PatternType) (*model.CorrectionEntry, error) {
	if strings.TrimSpace(ocrText) == "" || strings.TrimSpace(corrected) == "" {
		return nil, ErrEmptyCorrection
	}
	if patternType == "" {
		patternType = model.PatternName
	}

	now := formatTimestamp(s.now())
	query := `
	INSERT INTO ocr_corrections (ocr_text, corrected_text, pattern_type, frequency, created_at, last_used_at)
	VALUES (?, ?, ?, 1, ?, ?)
	ON CONFLICT(ocr_text, corrected_text, pattern_type) DO UPDATE SET
		frequency = frequency + 1,
		last_used_at = excluded.last_used_at
	`
	if _, err := s.db.ExecContext(ctx, query, ocrText, corrected, string(patternType), now, now); err != nil {
		return nil, fmt.Errorf("failed to save correction: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+correctionColumns+` FROM ocr_corrections
		WHERE ocr_text = ? AND corrected_text = ? AND pattern_type = ?`,
		ocrText, corrected, string(patternType))
	entry, err := scanCorrection(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved correction: %w", err)
	}
	return entry, nil
}

// Corrections returns the stored corrections of the given type, most
// frequently confirmed first and oldest first among equals. An empty type
// returns every correction.
func (s *Store) Corrections(ctx context.Context, patternType model.PatternType) ([]model.CorrectionEntry, error) {
	query := `SELECT ` + correctionColumns + ` FROM ocr_corrections WHERE 1=1`
	args := make([]any, 0, 1)
	if patternType != "" {
		query += " AND pattern_type = ?"
		args = append(args, string(patternType))
	}
	query += " ORDER BY frequency DESC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer rows.Close()

	entries := make([]model.CorrectionEntry, 0)
	for rows.Next() {
		entry, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetCorrection retrieves a correction by ID. It returns nil when none exists.
func (s *Store) GetCorrection(ctx context.Context, id int64) (*model.CorrectionEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+correctionColumns+` FROM ocr_corrections WHERE id = ?`, id)
	entry, err := scanCorrection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get correction: %w", err)
	}
	return entry, nil
}

// FindCorrection returns the most frequent correction for exactly ocrText,
// or nil when there is none.
func (s *Store) FindCorrection(ctx context.Context, ocrText string, patternType model.PatternType) (*model.CorrectionEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+correctionColumns+` FROM ocr_corrections
		WHERE ocr_text = ? AND pattern_type = ?
		ORDER BY frequency DESC, id ASC
		LIMIT 1`,
		ocrText, string(patternType))
	entry, err := scanCorrection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find correction: %w", err)
	}
	return entry, nil
}

// DeleteCorrection removes a correction by ID.
func (s *Store) DeleteCorrection(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ocr_corrections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete correction: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete correction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrCorrectionNotFound, id)
	}
	return nil
}

// CorrectionStats counts the stored corrections.
func (s *Store) CorrectionStats(ctx context.Context) (CorrectionStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern_type, COUNT(*) FROM ocr_corrections GROUP BY pattern_type`)
	if err != nil {
		return CorrectionStats{}, fmt.Errorf("failed to count corrections: %w", err)
	}
	defer rows.Close()

	var stats CorrectionStats
	for rows.Next() {
		var patternType string
		var count int
		if err := rows.Scan(&patternType, &count); err != nil {
			return CorrectionStats{}, fmt.Errorf("failed to scan correction count: %w", err)
		}
		stats.Total += count
		switch model.PatternType(patternType) {
		case model.PatternName:
			stats.Name = count
		case model.PatternScore:
			stats.Score = count
		case model.PatternHandicap:
			stats.Handicap = count
		}
	}
	return stats, rows.Err()
}

// TouchCorrections sets last_used_at to now for the given correction IDs.
// Unknown IDs are ignored.
func (s *Store) TouchCorrections(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE ocr_corrections SET last_used_at = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare update: %w", err)
	}
	defer stmt.Close()

	now := formatTimestamp(s.now())
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, now, id); err != nil {
			return fmt.Errorf("failed to touch correction %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCorrection(row rowScanner) (*model.CorrectionEntry, error) {
	var entry model.CorrectionEntry
	var patternType, createdAt, lastUsedAt string
	if err := row.Scan(
		&entry.ID,
		&entry.OCRText,
		&entry.Corrected,
		&patternType,
		&entry.Frequency,
		&createdAt,
		&lastUsedAt,
	); err != nil {
		return nil, err
	}
	entry.PatternType = model.PatternType(patternType)
	entry.CreatedAt = parseTimestamp(createdAt)
	entry.LastUsedAt = parseTimestamp(lastUsedAt)
	return &entry, nil
}
