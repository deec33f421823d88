// Package log provides structured logging for golfcard, built on top of the
// standard slog package.
//
// OCR text is long and multi-line. Logging it verbatim breaks the one-record-
// per-line shape of text logs and floods the terminal, so the CompactHandler
// wrapper rewrites string attributes before they reach the underlying handler:
//   - Line breaks and tabs collapse to a visible separator
//   - Values longer than MaxValueRunes are cut and suffixed with the dropped count
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("cleaned text",
//	    "text", cleaned, // "43(+13) 12.4 Beachy ⏎ 40(+5) ... (+312 chars)"
//	)
//
//	slog.SetDefault(logger)
package log
