package model

import "fmt"

// Severity ranks how much attention a diagnostic needs from a human reviewer.
type Severity int

const (
	// SeverityInfo needs no action.
	SeverityInfo Severity = iota

	// SeverityLow is worth a glance.
	SeverityLow

	// SeverityMedium means a record is incomplete and should be edited.
	SeverityMedium

	// SeverityHigh means extracted values contradict each other.
	SeverityHigh
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// DiagnosticKind identifies a non-fatal extraction condition.
type DiagnosticKind string

const (
	// DiagNoMatchFound: a score/handicap pair had no eligible name candidate.
	DiagNoMatchFound DiagnosticKind = "no_match_found"

	// DiagDuplicateName: two associations resolved to the same name; the first won.
	DiagDuplicateName DiagnosticKind = "duplicate_name"

	// DiagMalformedHoleTable: no hole header was detected.
	DiagMalformedHoleTable DiagnosticKind = "malformed_hole_table"

	// DiagUnmatchedHoleRow: a hole row matched no summary record.
	DiagUnmatchedHoleRow DiagnosticKind = "unmatched_hole_row"

	// DiagCorrectionStoreUnavailable: learned corrections could not be loaded.
	DiagCorrectionStoreUnavailable DiagnosticKind = "correction_store_unavailable"

	// DiagScoreMismatch: gross score disagrees with the sum of hole scores.
	DiagScoreMismatch DiagnosticKind = "score_mismatch"
)

// kindSeverity maps each diagnostic kind to its review severity.
var kindSeverity = map[DiagnosticKind]Severity{
	DiagNoMatchFound:               SeverityMedium,
	DiagDuplicateName:              SeverityLow,
	DiagMalformedHoleTable:         SeverityInfo,
	DiagUnmatchedHoleRow:           SeverityMedium,
	DiagCorrectionStoreUnavailable: SeverityLow,
	DiagScoreMismatch:              SeverityHigh,
}

// Severity returns the review severity for the kind.
func (k DiagnosticKind) Severity() Severity {
	if s, ok := kindSeverity[k]; ok {
		return s
	}
	return SeverityInfo
}

// Diagnostic is a non-fatal condition reported alongside extracted records.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`

	// Name is the player name involved, if any.
	Name string `json:"name,omitempty"`

	// Offset is the position in the cleaned text the diagnostic refers to, or -1.
	Offset int `json:"offset"`

	Message string `json:"message"`
}

// NewDiagnostic builds a Diagnostic with a formatted message.
func NewDiagnostic(kind DiagnosticKind, name string, offset int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Name:    name,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// String formats the diagnostic for terminal output.
func (d Diagnostic) String() string {
	if d.Name != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", d.Kind.Severity(), d.Kind, d.Message, d.Name)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Kind.Severity(), d.Kind, d.Message)
}
