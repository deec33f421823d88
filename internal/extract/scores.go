package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/golfcard/internal/model"
)

// scorePairExpr matches "<score>(<sign><int>)? <handicap>" with OCR slack:
// an optional stray glyph before the parenthesis, repeated or missing
// parentheses, and a handicap that is either signed or has a decimal point.
// Score and handicap may be split by line breaks and table pipes, since OCR
// often renders the columns of one row on separate lines.
//
// Groups: 1 score, 2 delta inside parentheses, 3 delta missing its opening
// parenthesis, 4 handicap.
var scorePairExpr = regexp.MustCompile(
	`\b(\d{2,3})[ ]?[^\s\d()+\-.]?[ ]?(?:\(+([+-]?\d{1,2})\)*|([+-]\d{1,2})\)+)?[\s|]{0,8}([+-]?\d{1,2}\.\d*|[+-]\d{1,2})`,
)

// ExtractScores returns the score/handicap pairs of text in offset order.
// Pairs whose score or handicap falls outside the configured ranges are
// dropped without a diagnostic.
func (e *Extractor) ExtractScores(text string) []model.ScorePair {
	var pairs []model.ScorePair
	for _, m := range scorePairExpr.FindAllStringSubmatchIndex(text, -1) {
		hStart, hEnd := m[8], m[9]
		if hEnd < len(text) && isDigit(text[hEnd]) {
			continue
		}

		gross, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		handicap, err := ParseHandicap(text[hStart:hEnd])
		if err != nil {
			continue
		}

		if !e.cfg.ScoreRange.Contains(gross) || !e.cfg.HandicapRange.Contains(handicap) {
			e.logger.Debug("implausible score pair discarded",
				"gross", gross,
				"handicap", handicap,
				"offset", hStart,
			)
			continue
		}

		var toPar *int
		for _, g := range []int{2, 3} {
			if m[2*g] < 0 {
				continue
			}
			if v, err := strconv.Atoi(text[m[2*g]:m[2*g+1]]); err == nil {
				toPar = model.IntPtr(v)
			}
		}

		scoreEnd := hStart
		for scoreEnd > m[3] && isSeparator(text[scoreEnd-1]) {
			scoreEnd--
		}

		pairs = append(pairs, model.ScorePair{
			Score: model.Token{
				Kind:  model.TokenScore,
				Text:  text[m[2]:scoreEnd],
				Start: m[2],
				End:   scoreEnd,
			},
			Handicap: model.Token{
				Kind:  model.TokenHandicap,
				Text:  text[hStart:hEnd],
				Start: hStart,
				End:   hEnd,
			},
			Gross:         gross,
			ToPar:         toPar,
			HandicapValue: handicap,
		})
	}
	return pairs
}

// ParseHandicap parses a handicap token such as "12.4", "-2.2", "+16." or "+11".
func ParseHandicap(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(s, "."), 64)
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v', '|':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
