package extract

import (
	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// Bias weighs the distance between an anchor and a name candidate
// depending on which side of the anchor the candidate lies.
type Bias struct {
	// ForwardWindow is how far after the anchor candidates are considered.
	ForwardWindow int

	// BackwardWindow is how far before the anchor candidates are considered.
	BackwardWindow int

	// ForwardWeight multiplies the distance of candidates after the anchor.
	ForwardWeight float64

	// BackwardWeight multiplies the distance of candidates before the anchor.
	BackwardWeight float64
}

// BiasFrom returns the summary-row bias configured in cfg.
func BiasFrom(cfg config.Extraction) Bias {
	return Bias{
		ForwardWindow:  cfg.ForwardWindow,
		BackwardWindow: cfg.BackwardWindow,
		ForwardWeight:  cfg.ForwardWeight,
		BackwardWeight: cfg.BackwardWeight,
	}
}

// Inverted swaps both sides of the bias. Hole table rows render the name
// before the scores, the opposite of summary rows.
func (b Bias) Inverted() Bias {
	return Bias{
		ForwardWindow:  b.BackwardWindow,
		BackwardWindow: b.ForwardWindow,
		ForwardWeight:  b.BackwardWeight,
		BackwardWeight: b.ForwardWeight,
	}
}

// Candidate is a name token measured against one anchor.
type Candidate struct {
	Token model.Token

	// Distance is the raw byte distance to the anchor.
	Distance int

	// Weighted is Distance multiplied by the weight of its side.
	Weighted float64

	Direction model.Direction
}

// Weigh measures tok against anchor. Forward distance runs from the anchor
// to the start of the token, backward distance from the end of the token to
// the anchor. ok is false when the token lies outside both windows or
// overlaps the anchor.
func (b Bias) Weigh(anchor int, tok model.Token) (c Candidate, ok bool) {
	switch {
	case tok.Start > anchor:
		d := tok.Start - anchor
		if d > b.ForwardWindow {
			return Candidate{}, false
		}
		return Candidate{Token: tok, Distance: d, Weighted: float64(d) * b.ForwardWeight, Direction: model.DirectionAfter}, true
	case tok.End <= anchor:
		d := anchor - tok.End
		if d > b.BackwardWindow {
			return Candidate{}, false
		}
		return Candidate{Token: tok, Distance: d, Weighted: float64(d) * b.BackwardWeight, Direction: model.DirectionBefore}, true
	default:
		return Candidate{}, false
	}
}

// better reports whether a should be selected over b.
// Lower weighted distance wins; ties go to the forward candidate, then the
// shorter raw distance, then the earlier token.
func better(a, b Candidate) bool {
	if a.Weighted != b.Weighted {
		return a.Weighted < b.Weighted
	}
	if a.Direction != b.Direction {
		return a.Direction == model.DirectionAfter
	}
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Token.Start < b.Token.Start
}
