package model

// Direction tells on which side of an anchor a name candidate was found.
type Direction int

const (
	// DirectionNone means no candidate was selected.
	DirectionNone Direction = iota

	// DirectionBefore means the candidate precedes the anchor in the text.
	DirectionBefore

	// DirectionAfter means the candidate follows the anchor in the text.
	DirectionAfter
)

// String returns "before", "after" or "none".
func (d Direction) String() string {
	switch d {
	case DirectionBefore:
		return "before"
	case DirectionAfter:
		return "after"
	default:
		return "none"
	}
}

// ScorePair is a detected gross score and handicap that passed range checks.
type ScorePair struct {
	// Score is the gross score token.
	Score Token

	// Handicap is the handicap token. Its Start is the anchor for name search.
	Handicap Token

	// Gross is the parsed gross score.
	Gross int

	// ToPar is the parsed (+delta) when the OCR text carried one.
	ToPar *int

	// HandicapValue is the parsed handicap.
	HandicapValue float64
}

// Association links a score/handicap pair to the name token selected for it.
// It only exists during one extraction call.
type Association struct {
	Pair ScorePair

	// Name is the selected name token. Zero value when Direction is DirectionNone.
	Name Token

	// Distance is the raw character distance between anchor and name.
	Distance int

	// Weighted is the direction-weighted distance that won the selection.
	Weighted float64

	Direction Direction
}

// ScoreOffset returns the offset of the score token.
func (a Association) ScoreOffset() int {
	return a.Pair.Score.Start
}

// HandicapOffset returns the anchor offset.
func (a Association) HandicapOffset() int {
	return a.Pair.Handicap.Start
}

// NameOffset returns the offset of the name token, or -1 if unmatched.
func (a Association) NameOffset() int {
	if a.Direction == DirectionNone {
		return -1
	}
	return a.Name.Start
}

// Matched reports whether a name candidate was found.
func (a Association) Matched() bool {
	return a.Direction != DirectionNone
}
