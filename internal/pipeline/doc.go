// Package pipeline runs OCR scorecard text through a sequence of steps.
//
// A scorecard moves through the default steps in order: loading learned
// corrections, extraction (cleaning, pairing names with scores, hole
// table), net scoring, marking the corrections that fired, and saving to
// the history database. Each step is a Step that receives the scorecard and
// may modify it.
//
// The extraction core is synchronous. BatchProcessor parses many inputs
// concurrently with errgroup, giving each input its own pipeline and its own
// scorecard so nothing mutable is shared between them.
package pipeline
