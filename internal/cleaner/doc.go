// Package cleaner normalizes raw OCR text from scorecard screenshots.
//
// Cleaning runs in a fixed order:
//  1. Unicode NFKC folding and line-ending normalization
//  2. Whitespace collapse inside each line (line breaks are kept)
//  3. Structural patterns, ordered by ascending priority
//  4. Learned corrections, ordered by descending frequency
//  5. Removal of lines that are mostly noise
//
// Steps 2-5 repeat until the text stops changing, so cleaning an already
// cleaned text returns it unchanged.
//
// The cleaner never fails. A pattern that does not match and an empty
// correction list are both no-ops.
package cleaner
