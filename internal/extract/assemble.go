package extract

import (
	"sort"
	"strings"

	"github.com/nao1215/golfcard/internal/model"
)

// Assemble merges associations and hole rows into one record per name.
//
// A name seen twice, ignoring case, keeps its first gross/handicap pair and
// the collision is reported as duplicate_name. Unmatched associations become
// placeholder records flagged no_match_found. Hole rows join records by name
// ignoring case; rows that join nothing are kept as records of their own and
// flagged unmatched_hole_row. When holes.NumHoles is set, records without a
// hole row get that many empty cells. Records are ordered by their position
// in the text.
func Assemble(assocs []model.Association, holes HoleMap) ([]model.PlayerRecord, []model.Diagnostic) {
	records := make([]model.PlayerRecord, 0, len(assocs)+len(holes.Rows))
	var diags []model.Diagnostic

	seen := make(map[string]int)
	for _, a := range assocs {
		name := model.UnnamedPlaceholder
		if a.Matched() {
			name = a.Name.Text
		} else {
			diags = append(diags, model.NewDiagnostic(model.DiagNoMatchFound, name, a.ScoreOffset(),
				"no name found for score %d handicap %.1f", a.Pair.Gross, a.Pair.HandicapValue))
		}

		key := strings.ToLower(name)
		if first, dup := seen[key]; dup && name != model.UnnamedPlaceholder {
			kept := records[first]
			diags = append(diags, model.NewDiagnostic(model.DiagDuplicateName, name, a.ScoreOffset(),
				"%s already has score %d, ignoring score %d", name, *kept.GrossScore, a.Pair.Gross))
			continue
		}
		seen[key] = len(records)

		records = append(records, model.PlayerRecord{
			Name:       name,
			GrossScore: model.IntPtr(a.Pair.Gross),
			ToPar:      a.Pair.ToPar,
			Handicap:   model.FloatPtr(a.Pair.HandicapValue),
			Offset:     a.ScoreOffset(),
		})
	}

	joined := make(map[string]bool)
	for i := range records {
		row, ok := holes.Lookup(records[i].Name)
		if !ok {
			if holes.NumHoles > 0 {
				records[i].HoleScores = make([]*int, holes.NumHoles)
			}
			continue
		}
		records[i].HoleScores = row.Scores
		joined[row.Name] = true
	}

	for _, row := range holes.Rows {
		if joined[row.Name] {
			continue
		}
		records = append(records, model.PlayerRecord{
			Name:       row.Name,
			HoleScores: row.Scores,
			Offset:     row.Offset,
		})
		diags = append(diags, model.NewDiagnostic(model.DiagUnmatchedHoleRow, row.Name, row.Offset,
			"hole row has no matching score row"))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Offset < records[j].Offset
	})
	return records, diags
}
