// Package calc derives net scores and team standings from extracted player records.
//
// Net score = gross - strokes given, where strokes given is half the handicap
// for a 9-hole round and the full handicap for 18 holes. Both values are
// rounded up to two decimals.
//
// A team's weekly score is the sum of its two best net scores. A team with a
// single score gets that score as a partial result.
package calc
