package model

import (
	"fmt"
	"sort"
	"time"
)

// PatternType tags what kind of field a learned correction applies to.
type PatternType string

const (
	// PatternName is a correction for a player name.
	PatternName PatternType = "name"

	// PatternScore is a correction for a gross score token.
	PatternScore PatternType = "score"

	// PatternHandicap is a correction for a handicap token.
	PatternHandicap PatternType = "handicap"
)

// ParsePatternType converts a string into a PatternType.
func ParsePatternType(s string) (PatternType, error) {
	switch PatternType(s) {
	case PatternName, PatternScore, PatternHandicap:
		return PatternType(s), nil
	default:
		return "", fmt.Errorf("unknown pattern type %q (want name, score or handicap)", s)
	}
}

// CorrectionEntry is one learned rewrite owned by the correction store.
// The extraction core only reads these.
type CorrectionEntry struct {
	ID          int64       `json:"id"`
	OCRText     string      `json:"ocr_text"`
	Corrected   string      `json:"corrected_text"`
	PatternType PatternType `json:"pattern_type"`
	Frequency   int         `json:"frequency"`
	CreatedAt   time.Time   `json:"created_at"`
	LastUsedAt  time.Time   `json:"last_used_at"`
}

// SortCorrections orders corrections by frequency, most used first.
// Equal frequencies keep their relative order.
func SortCorrections(entries []CorrectionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Frequency > entries[j].Frequency
	})
}
