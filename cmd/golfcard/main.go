// Package main provides the entry point for the golfcard CLI.
//
// golfcard turns the OCR text of golf scorecard screenshots into structured
// player records (name, gross score, handicap, hole-by-hole scores), computes
// net scores and keeps league standings.
//
// Usage:
//
//	golfcard parse scorecard.txt
//	golfcard parse --week 3 week3/*.txt
//	golfcard correct add "Boiciak" "Bojciak"
//	golfcard standings
//
// See --help for all available options.
package main

// main is the entry point for golfcard.
func main() {
	Execute()
}
