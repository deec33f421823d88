package extract

import "github.com/nao1215/golfcard/internal/model"

// Associate selects a name for every score pair, in pair order.
//
// For each handicap anchor the remaining candidate with the lowest
// direction-weighted distance is chosen and removed from the pool. A pair
// without any candidate inside either window gets an unmatched Association
// (Direction is model.DirectionNone).
func (e *Extractor) Associate(pairs []model.ScorePair, candidates []model.Token) []model.Association {
	pool := newCandidatePool(candidates)
	assocs := make([]model.Association, 0, len(pairs))

	for _, pair := range pairs {
		anchor := pair.Handicap.Start
		best, ok := pool.nearest(anchor, e.bias)
		if !ok {
			e.logger.Debug("no name candidate for score pair",
				"gross", pair.Gross,
				"anchor", anchor,
			)
			assocs = append(assocs, model.Association{Pair: pair, Direction: model.DirectionNone})
			continue
		}

		pool.take(best.Token.Start)
		e.logger.Debug("name associated",
			"name", best.Token.Text,
			"gross", pair.Gross,
			"direction", best.Direction.String(),
			"distance", best.Distance,
			"weighted", best.Weighted,
		)
		assocs = append(assocs, model.Association{
			Pair:      pair,
			Name:      best.Token,
			Distance:  best.Distance,
			Weighted:  best.Weighted,
			Direction: best.Direction,
		})
	}

	if left := pool.remaining(); left > 0 {
		e.logger.Debug("unused name candidates", "count", left)
	}
	return assocs
}
