package model

// TokenKind classifies a token found in cleaned OCR text.
type TokenKind int

const (
	// TokenNoise is anything that is neither a name nor a number of interest.
	TokenNoise TokenKind = iota

	// TokenNameCandidate is a substring that plausibly is a player name.
	TokenNameCandidate

	// TokenScore is a gross score, optionally followed by a (+delta) to par.
	TokenScore

	// TokenHandicap is a signed or decimal handicap value.
	TokenHandicap
)

// String returns the lower-case name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenNoise:
		return "noise"
	case TokenNameCandidate:
		return "name"
	case TokenScore:
		return "score"
	case TokenHandicap:
		return "handicap"
	default:
		return "unknown"
	}
}

// Token is a contiguous substring of the cleaned text.
// Start and End are byte offsets into the cleaned text (End exclusive); they are
// the only coordinate system used for distance computations.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Text  string    `json:"text"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// Len returns the number of bytes the token spans.
func (t Token) Len() int {
	return t.End - t.Start
}
