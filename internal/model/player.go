package model

// UnnamedPlaceholder is the name given to a record whose name could not be
// recovered. Such records await manual correction.
const UnnamedPlaceholder = "(unnamed)"

// PlayerRecord is one extracted player row.
type PlayerRecord struct {
	// Name is the cleaned player name, or UnnamedPlaceholder.
	Name string `json:"name"`

	// GrossScore is the total strokes, nil when only hole data was found.
	GrossScore *int `json:"gross_score"`

	// ToPar is the (+delta) printed next to the gross score, when present.
	ToPar *int `json:"to_par,omitempty"`

	// Handicap is the handicap, nil when only hole data was found.
	Handicap *float64 `json:"handicap"`

	// HoleScores has length 9 or 18 when a hole table was found or the hole
	// count is configured, nil otherwise.
	// Missing or implausible cells are nil.
	HoleScores []*int `json:"hole_scores,omitempty"`

	// Offset is the position of the row in the cleaned text. Records are
	// ordered by it.
	Offset int `json:"-"`
}

// IsPlaceholder reports whether the record still needs a name.
func (p PlayerRecord) IsPlaceholder() bool {
	return p.Name == "" || p.Name == UnnamedPlaceholder
}

// HasSummary reports whether both gross score and handicap are present.
func (p PlayerRecord) HasSummary() bool {
	return p.GrossScore != nil && p.Handicap != nil
}

// HolesComplete reports whether every hole cell is populated.
func (p PlayerRecord) HolesComplete() bool {
	if len(p.HoleScores) == 0 {
		return false
	}
	for _, s := range p.HoleScores {
		if s == nil {
			return false
		}
	}
	return true
}

// HoleTotal sums the populated hole cells.
func (p PlayerRecord) HoleTotal() int {
	total := 0
	for _, s := range p.HoleScores {
		if s != nil {
			total += *s
		}
	}
	return total
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}
