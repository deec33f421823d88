package calc

import (
	"fmt"
	"math"
	"sort"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// roundingSlack absorbs float error before rounding up, so 36.8 stays 36.8.
const roundingSlack = 1e-9

// StrokesGiven returns the handicap strokes for a round of numHoles.
func StrokesGiven(handicap float64, numHoles int) float64 {
	if numHoles == 18 {
		return handicap
	}
	return handicap / 2
}

// CeilHundredths rounds v up to two decimals.
func CeilHundredths(v float64) float64 {
	return math.Ceil(v*100-roundingSlack) / 100
}

// NetScores computes net results for every record that has both a gross
// score and a handicap, lowest net first. Records sharing a net score keep
// their scorecard order. Placeholder records are scored like any other so
// they stay visible for manual correction.
func NetScores(records []model.PlayerRecord, numHoles int) ([]model.NetResult, error) {
	if len(records) == 0 {
		return nil, ErrNoPlayers
	}
	if numHoles != 9 && numHoles != 18 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHoleCount, numHoles)
	}

	results := make([]model.NetResult, 0, len(records))
	for _, r := range records {
		if !r.HasSummary() {
			continue
		}
		strokes := StrokesGiven(*r.Handicap, numHoles)
		results = append(results, model.NetResult{
			Name:         r.Name,
			GrossScore:   *r.GrossScore,
			Handicap:     *r.Handicap,
			StrokesGiven: CeilHundredths(strokes),
			NetScore:     CeilHundredths(float64(*r.GrossScore) - strokes),
		})
	}

	if len(results) == 0 {
		return nil, ErrNoScorablePlayers
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NetScore < results[j].NetScore
	})
	return results, nil
}

// Reconcile checks a record's gross score against its hole scores.
// It reports a score_mismatch diagnostic when the gross score and a fully
// populated hole row disagree. Records lacking either are not checked.
func Reconcile(r model.PlayerRecord) (model.Diagnostic, bool) {
	if r.GrossScore == nil || !r.HolesComplete() {
		return model.Diagnostic{}, false
	}
	total := r.HoleTotal()
	if total == *r.GrossScore {
		return model.Diagnostic{}, false
	}
	return model.NewDiagnostic(model.DiagScoreMismatch, r.Name, r.Offset,
		"gross score %d does not match hole total %d", *r.GrossScore, total), true
}

// ReconcileAll reconciles every record and returns the mismatches in record order.
func ReconcileAll(records []model.PlayerRecord) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, r := range records {
		if d, ok := Reconcile(r); ok {
			diags = append(diags, d)
		}
	}
	return diags
}

// InferHoles picks the hole count for net scoring: the flag value when set,
// otherwise the length of the extracted hole rows, otherwise
// config.DefaultScoringHoles.
func InferHoles(flag int, records []model.PlayerRecord) int {
	if flag == 9 || flag == 18 {
		return flag
	}
	for _, r := range records {
		if n := len(r.HoleScores); n == 9 || n == 18 {
			return n
		}
	}
	return config.DefaultScoringHoles
}
