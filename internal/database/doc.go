// Package database provides SQLite-based storage for golfcard.
//
// The Store keeps two things:
//   - Learned OCR corrections (the correction store), ranked by how often
//     each one was confirmed by a human
//   - Processed scorecards as JSON, keyed by league week, for standings
//
// SQLite (via modernc.org/sqlite) keeps the whole history in one file with
// no CGO, so the binary cross-compiles and needs no server.
package database
