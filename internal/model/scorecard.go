package model

import (
	"time"

	"github.com/google/uuid"
)

// Scorecard is everything produced for one OCR'd scorecard image.
// It flows through the pipeline steps, is saved to the database as JSON and
// is rendered by the report writers.
type Scorecard struct {
	// ID identifies the scorecard in the history database.
	ID string `json:"id"`

	// Source is where the OCR text came from (file path or "stdin").
	Source string `json:"source"`

	// Week is the league week the round belongs to; 0 when unassigned.
	Week int `json:"week,omitempty"`

	// NumHoles is 9 or 18. It drives strokes-given in net scoring.
	NumHoles int `json:"num_holes"`

	// ProcessedAt is when extraction ran.
	ProcessedAt time.Time `json:"processed_at"`

	// RawText is the OCR output exactly as received.
	RawText string `json:"raw_text,omitempty"`

	// CleanedText is the Text Cleaner output all offsets refer to.
	CleanedText string `json:"cleaned_text,omitempty"`

	// Corrections is the learned correction list handed to the cleaner.
	Corrections []CorrectionEntry `json:"-"`

	// AppliedCorrections lists the IDs of corrections that rewrote something.
	AppliedCorrections []int64 `json:"applied_corrections,omitempty"`

	// Records are the extracted players in top-to-bottom scorecard order.
	Records []PlayerRecord `json:"records"`

	// Diagnostics are non-fatal conditions for human review.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Results are net scores, lowest first.
	Results []NetResult `json:"results,omitempty"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the error of the first failed step, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text, for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewScorecard creates an empty scorecard for the given source and raw text.
func NewScorecard(source, rawText string) *Scorecard {
	return &Scorecard{
		ID:          uuid.NewString(),
		Source:      source,
		NumHoles:    9,
		ProcessedAt: time.Now(),
		RawText:     rawText,
		Records:     make([]PlayerRecord, 0),
	}
}

// AddDiagnostic appends a diagnostic.
func (s *Scorecard) AddDiagnostic(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// DiagnosticsOfKind returns the diagnostics with the given kind.
func (s *Scorecard) DiagnosticsOfKind(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range s.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// FlaggedCount returns the number of records that need manual attention.
func (s *Scorecard) FlaggedCount() int {
	n := 0
	for _, r := range s.Records {
		if r.IsPlaceholder() || !r.HasSummary() {
			n++
		}
	}
	return n
}

// Record returns the record with the given name.
func (s *Scorecard) Record(name string) (PlayerRecord, bool) {
	for _, r := range s.Records {
		if r.Name == name {
			return r, true
		}
	}
	return PlayerRecord{}, false
}
