// Package extract turns cleaned scorecard OCR text into player records.
//
// The engine has four stages that share one coordinate system, the byte
// offset into the cleaned text:
//
//   - Pattern extraction finds "Score(+delta) Handicap" pairs. The start of
//     the handicap is the anchor for everything that follows.
//   - Association picks a name for each anchor. Names after the anchor are
//     preferred over names before it (see Bias), and each name token is
//     used at most once.
//   - Hole extraction finds a hole table by its header row and maps each row
//     to a known name with the inverted bias, since table rows put the name
//     first.
//   - Assembly merges both into one record per name in text order.
//
// Nothing in this package returns an error. Conditions a human should look at
// are reported as model.Diagnostic values next to the records.
package extract
