package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/golfcard/internal/model"
)

// ErrNilScorecard is returned when SaveScorecard is given nil.
var ErrNilScorecard = errors.New("scorecard is nil")

// ScorecardSummary describes a stored scorecard without decoding it.
type ScorecardSummary struct {
	ID          string
	Source      string
	Week        int
	NumHoles    int
	ProcessedAt time.Time
}

// SaveScorecard stores a processed scorecard as JSON. A scorecard without an
// ID is given one. Saving an ID again replaces the stored copy.
func (s *Store) SaveScorecard(ctx context.Context, card *model.Scorecard) error {
	if card == nil {
		return ErrNilScorecard
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.Error != nil && card.ErrorMessage == "" {
		card.ErrorMessage = card.Error.Error()
	}

	cardJSON, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to serialize scorecard: %w", err)
	}

	query := `
	INSERT INTO scorecards (id, source, week, num_holes, processed_at, scorecard_json)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		source = excluded.source,
		week = excluded.week,
		num_holes = excluded.num_holes,
		processed_at = excluded.processed_at,
		scorecard_json = excluded.scorecard_json
	`
	_, err = s.db.ExecContext(ctx, query,
		card.ID,
		card.Source,
		card.Week,
		card.NumHoles,
		formatTimestamp(card.ProcessedAt),
		string(cardJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save scorecard: %w", err)
	}
	return nil
}

// GetScorecard retrieves a scorecard by ID. It returns nil when none exists.
func (s *Store) GetScorecard(ctx context.Context, id string) (*model.Scorecard, error) {
	var cardJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT scorecard_json FROM scorecards WHERE id = ?`, id).Scan(&cardJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scorecard: %w", err)
	}

	var card model.Scorecard
	if err := json.Unmarshal([]byte(cardJSON), &card); err != nil {
		return nil, fmt.Errorf("failed to parse scorecard: %w", err)
	}
	return &card, nil
}

// ListScorecards returns the scorecards of one league week in processing
// order. Week 0 returns every stored scorecard.
func (s *Store) ListScorecards(ctx context.Context, week int) ([]*model.Scorecard, error) {
	query := `SELECT scorecard_json FROM scorecards`
	args := make([]any, 0, 1)
	if week > 0 {
		query += " WHERE week = ?"
		args = append(args, week)
	}
	query += " ORDER BY processed_at ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards: %w", err)
	}
	defer rows.Close()

	cards := make([]*model.Scorecard, 0)
	for rows.Next() {
		var cardJSON string
		if err := rows.Scan(&cardJSON); err != nil {
			return nil, fmt.Errorf("failed to scan scorecard: %w", err)
		}

		var card model.Scorecard
		if err := json.Unmarshal([]byte(cardJSON), &card); err != nil {
			continue // Skip malformed rows
		}
		cards = append(cards, &card)
	}
	return cards, rows.Err()
}

// ListScorecardSummaries returns metadata for every stored scorecard, newest first.
func (s *Store) ListScorecardSummaries(ctx context.Context) ([]ScorecardSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, source, week, num_holes, processed_at
	FROM scorecards
	ORDER BY processed_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scorecards: %w", err)
	}
	defer rows.Close()

	var summaries []ScorecardSummary
	for rows.Next() {
		var sum ScorecardSummary
		var processedAt string
		if err := rows.Scan(&sum.ID, &sum.Source, &sum.Week, &sum.NumHoles, &processedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scorecard summary: %w", err)
		}
		sum.ProcessedAt = parseTimestamp(processedAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Weeks returns the distinct league weeks that have saved scorecards, ascending.
// Unassigned scorecards (week 0) are not listed.
func (s *Store) Weeks(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT week FROM scorecards WHERE week > 0 ORDER BY week ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}
	defer rows.Close()

	weeks := make([]int, 0)
	for rows.Next() {
		var week int
		if err := rows.Scan(&week); err != nil {
			return nil, fmt.Errorf("failed to scan week: %w", err)
		}
		weeks = append(weeks, week)
	}
	return weeks, rows.Err()
}
