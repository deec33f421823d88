package extract

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

const rawGolfzonSample = "43(+13) 12.4 [el Beachy\n40(+5) 10.3 [el FirstOrLast\n44(+7) 18.2 Boiciak/Tcdubs21"

func TestExtractGolfzonScorecard(t *testing.T) {
	t.Parallel()

	res := New(config.DefaultExtraction()).Extract(rawGolfzonSample, nil)

	want := []struct {
		name     string
		gross    int
		handicap float64
	}{
		{"Beachy", 43, 12.4},
		{"FirstOrLast", 40, 10.3},
		{"Cdubs21", 44, 18.2},
	}
	if len(res.Records) != len(want) {
		t.Fatalf("expected %d records, got %+v", len(want), res.Records)
	}
	for i, w := range want {
		r := res.Records[i]
		if r.Name != w.name || r.GrossScore == nil || *r.GrossScore != w.gross || r.Handicap == nil || *r.Handicap != w.handicap {
			t.Errorf("record %d = %s %v %v, want %s %d %v", i, r.Name, r.GrossScore, r.Handicap, w.name, w.gross, w.handicap)
		}
		if r.IsPlaceholder() {
			t.Errorf("record %d must not be a placeholder", i)
		}
	}

	for _, d := range res.Diagnostics {
		if d.Kind != model.DiagMalformedHoleTable {
			t.Errorf("unexpected diagnostic %v", d)
		}
	}
	if res.NumHoles != 0 {
		t.Errorf("expected no hole table, got %d holes", res.NumHoles)
	}
}

func TestExtractSingleTriple(t *testing.T) {
	t.Parallel()

	res := New(config.DefaultExtraction()).Extract("41(+11) 9.8 Pinky", nil)
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %+v", res.Records)
	}
	r := res.Records[0]
	if r.Name != "Pinky" || *r.GrossScore != 41 || *r.Handicap != 9.8 || *r.ToPar != 11 {
		t.Errorf("unexpected record %+v", r)
	}

	kinds := map[model.TokenKind]int{}
	for _, tok := range res.Tokens {
		kinds[tok.Kind]++
	}
	if kinds[model.TokenNameCandidate] != 1 || kinds[model.TokenScore] != 1 || kinds[model.TokenHandicap] != 1 {
		t.Errorf("unexpected token kinds %v", kinds)
	}
}

func TestExtractSplitRows(t *testing.T) {
	t.Parallel()

	e := New(config.DefaultExtraction())
	for _, raw := range []string{
		"43(+13)\n12.4 Beachy",
		"43(+13) | 12.4 | Beachy",
		"43(+13)  |  12.4 Beachy",
	} {
		res := e.Extract(raw, nil)
		if len(res.Records) != 1 {
			t.Errorf("%q: expected 1 record, got %+v", raw, res.Records)
			continue
		}
		r := res.Records[0]
		if r.Name != "Beachy" || *r.GrossScore != 43 || *r.Handicap != 12.4 {
			t.Errorf("%q: unexpected record %+v", raw, r)
		}
	}
}

func TestExtractPadsConfiguredHoleCount(t *testing.T) {
	t.Parallel()

	for _, holeCount := range []int{9, 18} {
		cfg := config.DefaultExtraction()
		cfg.HoleCount = holeCount
		res := New(cfg).Extract("43(+13) 12.4 Beachy", nil)

		if res.NumHoles != holeCount {
			t.Errorf("hole count %d: NumHoles = %d", holeCount, res.NumHoles)
		}
		if len(res.Records) != 1 || len(res.Records[0].HoleScores) != holeCount {
			t.Errorf("hole count %d: expected padded hole cells, got %+v", holeCount, res.Records)
		}
	}
}

func TestExtractEmptyInput(t *testing.T) {
	t.Parallel()

	e := New(config.DefaultExtraction())
	for _, input := range []string{"", "   ", "\n\t\n"} {
		res := e.Extract(input, nil)
		if res.Records == nil || len(res.Records) != 0 {
			t.Errorf("expected empty non-nil records for %q, got %v", input, res.Records)
		}
		if len(res.Diagnostics) != 0 {
			t.Errorf("expected no diagnostics for %q, got %v", input, res.Diagnostics)
		}
	}
}

func TestExtractPlaceholderRecord(t *testing.T) {
	t.Parallel()

	res := New(config.DefaultExtraction()).Extract("43(+13) 12.4", nil)
	if len(res.Records) != 1 {
		t.Fatalf("expected one record, got %+v", res.Records)
	}
	if res.Records[0].Name != model.UnnamedPlaceholder {
		t.Errorf("expected placeholder, got %q", res.Records[0].Name)
	}

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == model.DiagNoMatchFound {
			found = true
		}
	}
	if !found {
		t.Errorf("expected no_match_found diagnostic, got %v", res.Diagnostics)
	}
}

func TestExtractRangeFiltering(t *testing.T) {
	t.Parallel()

	raw := "15(+1) 12.4 Beachy\n43(+13) 45.5 Pinky\n40(+5) 10.3 FirstOrLast"
	res := New(config.DefaultExtraction()).Extract(raw, nil)

	if len(res.Records) != 1 || res.Records[0].Name != "FirstOrLast" {
		t.Fatalf("expected only FirstOrLast, got %+v", res.Records)
	}
	for _, r := range res.Records {
		if r.GrossScore != nil && (*r.GrossScore < 20 || *r.GrossScore > 99) {
			t.Errorf("out-of-range score %d in output", *r.GrossScore)
		}
	}
}

func TestExtractWithHoleTable(t *testing.T) {
	t.Parallel()

	raw := "H1 H2 H3 H4 H5 H6 H7 H8 H9 Out\n" +
		"Par 4 4 3 5 4 4 3 4 5 36\n" +
		"[el Beachy 5 4 3 6 4 5 3 4 5 39 +3\n" +
		"Pinky 4 4 3 5 4 4 3 4 5 36\n" +
		"43(+13) 12.4 [el Beachy\n" +
		"40(+5) 10.3 FirstOrLast"

	res := New(config.DefaultExtraction()).Extract(raw, nil)

	if res.NumHoles != 9 {
		t.Errorf("expected 9 holes, got %d", res.NumHoles)
	}

	names := make([]string, 0, len(res.Records))
	for _, r := range res.Records {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "Pinky,Beachy,FirstOrLast" {
		t.Fatalf("unexpected record order %v", names)
	}

	pinky := res.Records[0]
	if pinky.HasSummary() || pinky.HoleTotal() != 36 {
		t.Errorf("expected hole-only Pinky record, got %+v", pinky)
	}
	beachy := res.Records[1]
	if *beachy.GrossScore != 43 || beachy.HoleTotal() != 39 || !beachy.HolesComplete() {
		t.Errorf("expected Beachy joined with holes, got %+v", beachy)
	}
	if len(res.Records[2].HoleScores) != 0 {
		t.Errorf("FirstOrLast has no hole row, got %v", res.Records[2].HoleScores)
	}

	var unmatched []model.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Kind == model.DiagUnmatchedHoleRow {
			unmatched = append(unmatched, d)
		}
	}
	if len(unmatched) != 1 || unmatched[0].Name != "Pinky" {
		t.Errorf("expected one unmatched_hole_row for Pinky, got %v", res.Diagnostics)
	}
}

func TestExtractAppliesCorrections(t *testing.T) {
	t.Parallel()

	corrections := []model.CorrectionEntry{
		{ID: 7, OCRText: "FirstOrLest", Corrected: "FirstOrLast", PatternType: model.PatternName, Frequency: 3},
	}
	res := New(config.DefaultExtraction()).Extract("40(+5) 10.3 FirstOrLest", corrections)

	if len(res.Records) != 1 || res.Records[0].Name != "FirstOrLast" {
		t.Fatalf("expected corrected name, got %+v", res.Records)
	}
	if len(res.AppliedCorrections) != 1 || res.AppliedCorrections[0] != 7 {
		t.Errorf("expected correction 7 applied, got %v", res.AppliedCorrections)
	}
}

func TestExtractLogsAtDebugOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	New(config.DefaultExtraction(), WithLogger(logger)).Extract("15(+1) 12.4\n43(+13) 12.4", nil)

	if buf.Len() != 0 {
		t.Errorf("expected OCR noise to stay below warn level, got %q", buf.String())
	}
}
