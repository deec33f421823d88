package extract

import (
	"strconv"
	"strings"

	"github.com/nao1215/golfcard/internal/cleaner"
	"github.com/nao1215/golfcard/internal/model"
)

// Hole table detection thresholds.
const (
	// minHeaderMarkers is the number of sequential hole markers that makes a header.
	minHeaderMarkers = 5

	// maxSpacingSpread is the allowed difference between the widest and the
	// narrowest gap of header markers.
	maxSpacingSpread = 3

	// minRowCells is the number of numeric cells that makes a score row.
	minRowCells = 3

	// maxHoleMarker is the highest hole number.
	maxHoleMarker = 18
)

// HoleRow is one row of the hole table mapped to a player.
type HoleRow struct {
	// Name is the matched player, the row label, or model.UnnamedPlaceholder.
	Name string

	// Scores has one cell per hole. Missing or implausible cells are nil.
	Scores []*int

	// Offset is the position of the first score cell in the cleaned text.
	Offset int

	// Known reports whether Name is a name found by the summary extraction.
	Known bool
}

// HoleMap is the ordered result of hole extraction.
type HoleMap struct {
	// NumHoles is the row length, 9 or 18. Zero when no table was found.
	NumHoles int

	Rows []HoleRow
}

// Lookup returns the row for name, ignoring case. Placeholder rows are never
// returned.
func (m HoleMap) Lookup(name string) (HoleRow, bool) {
	if name == "" || name == model.UnnamedPlaceholder {
		return HoleRow{}, false
	}
	for _, r := range m.Rows {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return HoleRow{}, false
}

// holeHeader is a detected run of sequential hole markers.
type holeHeader struct {
	offset int
	first  int
	count  int
}

// last returns the highest hole number of the header.
func (h holeHeader) last() int {
	return h.first + h.count - 1
}

// tableRow is a score row below a header, before it is mapped to a name.
type tableRow struct {
	header    holeHeader
	label     model.Token
	hasLabel  bool
	cells     []*int
	offset    int
	lineStart int
	lineEnd   int
}

// holeTable is the located table structure of one text.
type holeTable struct {
	headers []holeHeader
	rows    []tableRow
}

// covers reports whether offset lies on a table row line.
func (t holeTable) covers(offset int) bool {
	for _, r := range t.rows {
		if offset >= r.lineStart && offset < r.lineEnd {
			return true
		}
	}
	return false
}

// ExtractHoles locates the hole table of text and maps each row to one of
// the known names. An absent header yields an empty map and a
// malformed_hole_table diagnostic.
func (e *Extractor) ExtractHoles(text string, known []string) (HoleMap, []model.Diagnostic) {
	return e.mapRows(e.locateTable(text), e.classifier.candidates(text), known)
}

// locateTable finds header rows and the score rows below each of them.
// A table ends at the first line below it that is not a header, a score row,
// an excluded row such as "Par" or a line of bare names. Blank lines do not
// end a table.
func (e *Extractor) locateTable(text string) holeTable {
	var table holeTable
	var current holeHeader
	inTable := false

	lineStart := 0
	for _, line := range strings.Split(text, "\n") {
		lineEnd := lineStart + len(line)
		toks := cleaner.Tokenize(line)
		for i := range toks {
			toks[i].Start += lineStart
			toks[i].End += lineStart
		}

		if h, ok := detectHeader(toks); ok {
			table.headers = append(table.headers, h)
			current, inTable = h, true
		} else if inTable && len(toks) > 0 {
			row, kind := e.parseRow(toks, current)
			switch kind {
			case rowScores:
				row.lineStart, row.lineEnd = lineStart, lineEnd
				table.rows = append(table.rows, row)
			case rowNone:
				inTable = false
			}
		}

		lineStart = lineEnd + 1
	}
	return table
}

// detectHeader finds a run of sequential hole markers starting at hole 1 or 10
// with consistent spacing.
func detectHeader(toks []model.Token) (holeHeader, bool) {
	for i := 0; i < len(toks); i++ {
		v, ok := parseMarker(toks[i].Text)
		if !ok || (v != 1 && v != 10) {
			continue
		}

		j := i + 1
		for j < len(toks) {
			next, ok := parseMarker(toks[j].Text)
			if !ok || next != v+(j-i) {
				break
			}
			j++
		}

		if j-i >= minHeaderMarkers && evenlySpaced(toks[i:j]) {
			return holeHeader{offset: toks[i].Start, first: v, count: j - i}, true
		}
	}
	return holeHeader{}, false
}

// parseMarker reads "H7", "h7" or "7" as hole 7.
func parseMarker(s string) (int, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "H"), "h")
	if s == "" || len(s) > 2 || !allDigits(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > maxHoleMarker {
		return 0, false
	}
	return v, true
}

func evenlySpaced(markers []model.Token) bool {
	minGap, maxGap := -1, -1
	for k := 1; k < len(markers); k++ {
		gap := markers[k].Start - markers[k-1].Start
		if minGap < 0 || gap < minGap {
			minGap = gap
		}
		if gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap-minGap <= maxSpacingSpread
}

// rowKind classifies a line below a hole header.
type rowKind int

const (
	// rowNone is a line that does not belong to the table.
	rowNone rowKind = iota
	// rowSkipped is a table line that holds no player, such as the par row.
	rowSkipped
	// rowScores is a player score row.
	rowScores
)

// parseRow reads a score row: an optional label followed by numeric cells.
// Cells past the header span (totals) are ignored. Rows labelled with an
// excluded word such as "Par" or "Score" are skipped. A labelled row needs
// minRowCells plausible hole scores, otherwise it is a summary line.
func (e *Extractor) parseRow(toks []model.Token, header holeHeader) (tableRow, rowKind) {
	first := -1
	for i, tok := range toks {
		if allDigits(tok.Text) {
			first = i
			break
		}
	}
	if first < 0 {
		if e.namesOnly(toks) {
			return tableRow{}, rowSkipped
		}
		return tableRow{}, rowNone
	}

	row := tableRow{header: header, offset: toks[first].Start}
	for _, tok := range toks[:first] {
		name, _ := CleanName(tok.Text)
		if e.classifier.isExcluded(name) {
			return tableRow{}, rowSkipped
		}
	}
	if first > 0 {
		row.label, row.hasLabel = e.classifier.classify(toks[first-1])
	}

	numeric := 0
cells:
	for _, tok := range toks[first:] {
		switch {
		case allDigits(tok.Text):
			numeric++
			row.cells = append(row.cells, e.holeScore(tok.Text))
		case isMissingCell(tok.Text):
			row.cells = append(row.cells, nil)
		case tok.Text == "|":
		default:
			break cells
		}
	}
	if numeric < minRowCells {
		return tableRow{}, rowNone
	}
	if len(row.cells) > header.count {
		row.cells = row.cells[:header.count]
	}
	if first > 0 && plausibleCells(row.cells) < minRowCells {
		return tableRow{}, rowSkipped
	}
	return row, rowScores
}

// namesOnly reports whether a line holds nothing but names, as when OCR
// puts the row labels on their own lines.
func (e *Extractor) namesOnly(toks []model.Token) bool {
	for _, tok := range toks {
		if _, ok := e.classifier.classify(tok); !ok {
			return false
		}
	}
	return true
}

func plausibleCells(cells []*int) int {
	n := 0
	for _, c := range cells {
		if c != nil {
			n++
		}
	}
	return n
}

// holeScore parses a cell; values outside the plausible range become nil.
func (e *Extractor) holeScore(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil || !e.cfg.HoleScoreRange.Contains(v) {
		return nil
	}
	return model.IntPtr(v)
}

// numHoles returns the configured hole count or infers it from the headers.
func (e *Extractor) numHoles(table holeTable) int {
	if e.cfg.HoleCount != 0 {
		return e.cfg.HoleCount
	}
	if len(table.headers) == 0 {
		return 0
	}
	for _, h := range table.headers {
		if h.last() >= 10 {
			return 18
		}
	}
	return 9
}

// mapRows names every row and lays its cells out by hole number.
// A row label that is a valid name is used directly; otherwise the nearest
// known name is chosen with the inverted bias. Rows resolving to the same
// name under different headers are merged, which joins front-nine and
// back-nine tables. A second row for a name under the same header is left
// unnamed.
func (e *Extractor) mapRows(table holeTable, candidates []model.Token, known []string) (HoleMap, []model.Diagnostic) {
	var diags []model.Diagnostic
	if len(table.headers) == 0 {
		diags = append(diags, model.NewDiagnostic(model.DiagMalformedHoleTable, "", -1, "no hole header found"))
		return HoleMap{NumHoles: e.numHoles(table)}, diags
	}
	if len(table.rows) == 0 {
		h := table.headers[0]
		diags = append(diags, model.NewDiagnostic(model.DiagMalformedHoleTable, "", h.offset,
			"hole header at offset %d has no score rows", h.offset))
		return HoleMap{NumHoles: e.numHoles(table)}, diags
	}

	knownSet := make(map[string]bool, len(known))
	for _, n := range known {
		knownSet[n] = true
	}
	var knownTokens []model.Token
	for _, tok := range candidates {
		if knownSet[tok.Text] {
			knownTokens = append(knownTokens, tok)
		}
	}
	pool := newCandidatePool(knownTokens)
	inverted := e.bias.Inverted()

	holes := HoleMap{NumHoles: e.numHoles(table)}
	index := make(map[string]int)
	seen := make(map[string]map[int]bool)
	for _, row := range table.rows {
		name := model.UnnamedPlaceholder
		switch {
		case row.hasLabel:
			name = row.label.Text
			pool.take(row.label.Start)
		default:
			if best, ok := pool.nearest(row.offset, inverted); ok {
				name = best.Token.Text
				pool.take(best.Token.Start)
			}
		}
		key := strings.ToLower(name)
		if name != model.UnnamedPlaceholder && seen[key][row.header.offset] {
			name = model.UnnamedPlaceholder
		}

		scores := make([]*int, holes.NumHoles)
		for i, cell := range row.cells {
			if pos := row.header.first - 1 + i; pos < len(scores) {
				scores[pos] = cell
			}
		}

		if name == model.UnnamedPlaceholder {
			holes.Rows = append(holes.Rows, HoleRow{Name: name, Scores: scores, Offset: row.offset})
			continue
		}
		if seen[key] == nil {
			seen[key] = make(map[int]bool)
		}
		seen[key][row.header.offset] = true

		if at, ok := index[key]; ok {
			mergeScores(holes.Rows[at].Scores, scores)
			continue
		}
		index[key] = len(holes.Rows)
		holes.Rows = append(holes.Rows, HoleRow{
			Name:   name,
			Scores: scores,
			Offset: row.offset,
			Known:  knownSet[name],
		})
	}

	e.logger.Debug("hole table extracted", "holes", holes.NumHoles, "rows", len(holes.Rows))
	return holes, diags
}

// mergeScores fills the empty cells of dst from src.
func mergeScores(dst, src []*int) {
	for i := range dst {
		if dst[i] == nil && i < len(src) {
			dst[i] = src[i]
		}
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// isMissingCell reports whether s is a placeholder for a dropped cell.
func isMissingCell(s string) bool {
	if s == "" || len([]rune(s)) > 3 {
		return false
	}
	return strings.Trim(s, "-–—_.*~") == ""
}
