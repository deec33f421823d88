package config

import "strings"

// Default extraction values.
// The bias constants were fitted to Golfzon scorecards, whose summary rows
// render as Score(+delta), Handicap, Name. Other layouts supply their own
// values through the configuration file.
const (
	DefaultMinScore = 20
	DefaultMaxScore = 99

	DefaultMinHandicap = -20.0
	DefaultMaxHandicap = 40.0

	DefaultMinHoleScore = 1
	DefaultMaxHoleScore = 15

	// DefaultForwardWindow is how far after a handicap anchor names are searched.
	DefaultForwardWindow = 100

	// DefaultBackwardWindow is how far before a handicap anchor names are searched.
	DefaultBackwardWindow = 50

	// DefaultForwardWeight multiplies the distance of names after the anchor.
	DefaultForwardWeight = 0.3

	// DefaultBackwardWeight multiplies the distance of names before the anchor.
	DefaultBackwardWeight = 3.0

	DefaultMinNameLength = 2

	// DefaultHoleCount of 0 infers 9 or 18 from the detected hole header.
	DefaultHoleCount = 0
)

// DefaultExcludedWords are tokens that look like names but never are:
// scorecard boilerplate and OCR artifacts seen on Golfzon screenshots.
var DefaultExcludedWords = []string{
	"golfzon", "hole", "holes", "total", "tot", "par", "rank", "in", "out", "round",
	"mountain", "west", "east", "north", "south", "pga", "hdcp", "handicap",
	"scorecard", "statistics", "rounding", "record", "shot", "analysis",
	"analy", "analysi", "std", "stat", "phoenix", "country", "club",
	"bay", "bag", "bi", "biais", "beach", "ocean", "course", "net", "gross",
	"gouzatf", "wests", "ggovad", "boiciak", "boici", "geet", "sano",
	"gio", "bio", "blo", "score", "scores", "week", "putts", "strokes",
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Contains reports whether v lies within the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FloatRange is an inclusive float range.
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within the range.
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Extraction holds every tunable of the text-to-record extraction engine.
type Extraction struct {
	// ScoreRange bounds plausible gross scores. Matches outside are discarded.
	ScoreRange IntRange `yaml:"scoreRange"`

	// HandicapRange bounds plausible handicaps. Matches outside are discarded.
	HandicapRange FloatRange `yaml:"handicapRange"`

	// HoleScoreRange bounds plausible per-hole scores. Cells outside become missing.
	HoleScoreRange IntRange `yaml:"holeScoreRange"`

	// ForwardWindow and BackwardWindow bound the name search around an anchor,
	// in characters of cleaned text.
	ForwardWindow  int `yaml:"forwardWindow"`
	BackwardWindow int `yaml:"backwardWindow"`

	// ForwardWeight and BackwardWeight multiply raw distances on each side of
	// the anchor. The lower weighted distance wins.
	ForwardWeight  float64 `yaml:"forwardWeight"`
	BackwardWeight float64 `yaml:"backwardWeight"`

	// MinNameLength is the shortest name candidate considered.
	MinNameLength int `yaml:"minNameLength"`

	// HoleCount forces hole rows to 9 or 18 cells; 0 infers it from the header.
	HoleCount int `yaml:"holeCount"`

	// ExcludedWords replaces the default list of never-a-name words.
	ExcludedWords []string `yaml:"excludedWords,omitempty"`

	// ExtraExcludedWords extends the excluded list without replacing it.
	ExtraExcludedWords []string `yaml:"extraExcludedWords,omitempty"`
}

// DefaultExtraction returns the extraction settings with all defaults.
func DefaultExtraction() Extraction {
	words := make([]string, len(DefaultExcludedWords))
	copy(words, DefaultExcludedWords)

	return Extraction{
		ScoreRange:     IntRange{Min: DefaultMinScore, Max: DefaultMaxScore},
		HandicapRange:  FloatRange{Min: DefaultMinHandicap, Max: DefaultMaxHandicap},
		HoleScoreRange: IntRange{Min: DefaultMinHoleScore, Max: DefaultMaxHoleScore},
		ForwardWindow:  DefaultForwardWindow,
		BackwardWindow: DefaultBackwardWindow,
		ForwardWeight:  DefaultForwardWeight,
		BackwardWeight: DefaultBackwardWeight,
		MinNameLength:  DefaultMinNameLength,
		HoleCount:      DefaultHoleCount,
		ExcludedWords:  words,
	}
}

// Validate checks the extraction settings and returns the first problem found.
func (e Extraction) Validate() error {
	if e.ScoreRange.Min <= 0 || e.ScoreRange.Min > e.ScoreRange.Max {
		return ErrInvalidScoreRange
	}
	if e.HandicapRange.Min > e.HandicapRange.Max {
		return ErrInvalidHandicapRange
	}
	if e.HoleScoreRange.Min <= 0 || e.HoleScoreRange.Min > e.HoleScoreRange.Max {
		return ErrInvalidHoleScoreRange
	}
	if e.ForwardWindow < 0 || e.BackwardWindow < 0 {
		return ErrInvalidWindow
	}
	if e.ForwardWeight <= 0 || e.BackwardWeight <= 0 {
		return ErrInvalidWeight
	}
	if e.MinNameLength < 1 {
		return ErrInvalidMinNameLength
	}
	if !ValidHoleCount(e.HoleCount) {
		return ErrInvalidHoleCount
	}
	return nil
}

// ExcludedSet returns the lower-cased excluded words as a set.
func (e Extraction) ExcludedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(e.ExcludedWords)+len(e.ExtraExcludedWords))
	for _, w := range e.ExcludedWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range e.ExtraExcludedWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// ValidHoleCount reports whether n is 0 (infer), 9 or 18.
func ValidHoleCount(n int) bool {
	return n == 0 || n == 9 || n == 18
}
