// Package model defines the data structures shared by the extraction core,
// the calculator, storage and reporting.
//
// This package contains the following main types:
//   - Token: a classified span of cleaned OCR text, addressed by character offsets
//   - CorrectionEntry: one learned malformed-text to corrected-text rewrite
//   - Association: a transient link between a handicap anchor and a name token
//   - PlayerRecord: one extracted player row (name, gross, handicap, hole scores)
//   - Diagnostic: a non-fatal condition surfaced alongside the records
//   - Scorecard: everything produced for one OCR'd scorecard image
//   - NetResult and TeamStanding: calculator output
//
// The models are serializable to JSON for report output and database storage.
package model
