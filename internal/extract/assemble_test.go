package extract

import (
	"testing"

	"github.com/nao1215/golfcard/internal/model"
)

func matched(name string, nameAt, gross int, anchor int) model.Association {
	return model.Association{
		Pair:      pairAt(gross, anchor),
		Name:      nameToken(name, nameAt),
		Direction: model.DirectionAfter,
	}
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("duplicate names keep the first pair", func(t *testing.T) {
		t.Parallel()
		assocs := []model.Association{
			matched("Beachy", 20, 43, 10),
			matched("Beachy", 60, 45, 50),
		}
		records, diags := Assemble(assocs, HoleMap{})

		if len(records) != 1 || *records[0].GrossScore != 43 {
			t.Fatalf("expected one Beachy record with 43, got %+v", records)
		}
		if len(diags) != 1 || diags[0].Kind != model.DiagDuplicateName || diags[0].Name != "Beachy" {
			t.Errorf("expected duplicate_name diagnostic, got %v", diags)
		}
	})

	t.Run("unmatched pair becomes placeholder", func(t *testing.T) {
		t.Parallel()
		assocs := []model.Association{
			{Pair: pairAt(43, 10)},
			{Pair: pairAt(44, 40)},
		}
		records, diags := Assemble(assocs, HoleMap{})

		if len(records) != 2 {
			t.Fatalf("placeholders must not be deduplicated, got %+v", records)
		}
		for _, r := range records {
			if !r.IsPlaceholder() || !r.HasSummary() {
				t.Errorf("expected placeholder with summary, got %+v", r)
			}
		}
		if len(diags) != 2 || diags[0].Kind != model.DiagNoMatchFound {
			t.Errorf("expected two no_match_found diagnostics, got %v", diags)
		}
	})

	t.Run("hole rows join by name ignoring case", func(t *testing.T) {
		t.Parallel()
		holes := HoleMap{NumHoles: 9, Rows: []HoleRow{
			{Name: "Beachy", Scores: scores(5, 4, 3, 6, 4, 5, 3, 4, 5), Offset: 100, Known: true},
			{Name: "Pinky", Scores: scores(4, 4, 4, 4, 4, 4, 4, 4, 4), Offset: 130},
		}}
		records, diags := Assemble([]model.Association{matched("beachy", 20, 39, 10)}, holes)

		if len(records) != 2 {
			t.Fatalf("expected joined record plus unmatched row, got %+v", records)
		}
		if records[0].Name != "beachy" || records[0].HoleTotal() != 39 || !records[0].HolesComplete() {
			t.Errorf("expected beachy with holes, got %+v", records[0])
		}
		if records[1].Name != "Pinky" || records[1].HasSummary() {
			t.Errorf("expected a hole-only record for the unmatched row, got %+v", records[1])
		}
		if len(diags) != 1 || diags[0].Kind != model.DiagUnmatchedHoleRow {
			t.Errorf("expected unmatched_hole_row diagnostic, got %v", diags)
		}
	})

	t.Run("duplicate names ignore case", func(t *testing.T) {
		t.Parallel()
		assocs := []model.Association{
			matched("Beachy", 20, 43, 10),
			matched("BEACHY", 60, 45, 50),
		}
		records, diags := Assemble(assocs, HoleMap{})

		if len(records) != 1 || records[0].Name != "Beachy" || *records[0].GrossScore != 43 {
			t.Fatalf("expected one Beachy record with 43, got %+v", records)
		}
		if len(diags) != 1 || diags[0].Kind != model.DiagDuplicateName || diags[0].Name != "BEACHY" {
			t.Errorf("expected duplicate_name diagnostic for BEACHY, got %v", diags)
		}
	})

	t.Run("configured hole count pads records without a table", func(t *testing.T) {
		t.Parallel()
		records, _ := Assemble([]model.Association{matched("Beachy", 20, 43, 10)}, HoleMap{NumHoles: 18})

		if len(records) != 1 || len(records[0].HoleScores) != 18 {
			t.Fatalf("expected 18 empty hole cells, got %+v", records)
		}
		for i, s := range records[0].HoleScores {
			if s != nil {
				t.Errorf("cell %d = %d, want empty", i+1, *s)
			}
		}
	})

	t.Run("records follow text order", func(t *testing.T) {
		t.Parallel()
		holes := HoleMap{NumHoles: 9, Rows: []HoleRow{
			{Name: model.UnnamedPlaceholder, Scores: scores(4, 4, 4, 4, 4, 4, 4, 4, 4), Offset: 5},
		}}
		assocs := []model.Association{
			matched("Pinky", 90, 41, 80),
			matched("Beachy", 40, 43, 30),
		}
		records, _ := Assemble(assocs, holes)

		want := []string{model.UnnamedPlaceholder, "Beachy", "Pinky"}
		if len(records) != len(want) {
			t.Fatalf("expected %d records, got %+v", len(want), records)
		}
		for i, name := range want {
			if records[i].Name != name {
				t.Errorf("record %d = %q, want %q", i, records[i].Name, name)
			}
		}
	})
}
