package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nao1215/golfcard/internal/cleaner"
	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// shortCapsLength is the length below which an all-caps token is treated
// as a label ("OUT", "H1", "NET") rather than a name.
const shortCapsLength = 4

// nameClassifier decides which tokens are name candidates.
type nameClassifier struct {
	minLength int
	excluded  map[string]struct{}
}

func newNameClassifier(cfg config.Extraction) nameClassifier {
	return nameClassifier{
		minLength: cfg.MinNameLength,
		excluded:  cfg.ExcludedSet(),
	}
}

// classify cleans tok and reports whether the result is a name candidate.
// The returned token is narrowed to the cleaned name so offsets stay exact.
func (c nameClassifier) classify(tok model.Token) (model.Token, bool) {
	name, skip := CleanName(tok.Text)
	if !c.eligible(name) {
		return model.Token{}, false
	}
	start := tok.Start + skip
	return model.Token{
		Kind:  model.TokenNameCandidate,
		Text:  name,
		Start: start,
		End:   start + len(name),
	}, true
}

// eligible applies the name rules to an already cleaned name.
func (c nameClassifier) eligible(name string) bool {
	if utf8.RuneCountInString(name) < c.minLength {
		return false
	}
	if c.isExcluded(name) {
		return false
	}

	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return false
	}

	hasLower := false
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasLower || utf8.RuneCountInString(name) >= shortCapsLength
}

func (c nameClassifier) isExcluded(word string) bool {
	_, ok := c.excluded[strings.ToLower(word)]
	return ok
}

// candidates returns the name candidates of text in offset order.
func (c nameClassifier) candidates(text string) []model.Token {
	var names []model.Token
	for _, tok := range cleaner.Tokenize(text) {
		if name, ok := c.classify(tok); ok {
			names = append(names, name)
		}
	}
	return names
}

// CleanName strips OCR debris around a name token.
// It returns the cleaned name and the number of bytes removed from the front,
// so that callers can keep offsets into the original text.
//
// Removed are trailing punctuation, leading brackets, pipes, underscores and
// digits, a single lower-case letter glued to a capitalised name ("eBeachy"),
// stray R/Q glyphs before a capitalised name ("RQFirstOrLast") and the "Tl"
// border artifact.
func CleanName(s string) (string, int) {
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	trimmed := strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsDigit(r) || strings.ContainsRune(`[]|\_(){}<>:;,.'"`, r)
	})
	skip := len(s) - len(trimmed)
	s = trimmed

	n := gluedPrefix(s)
	return s[n:], skip + n
}

// gluedPrefix returns the length of an OCR prefix glued to a capitalised word.
func gluedPrefix(s string) int {
	if strings.HasPrefix(s, "Tl") && capitalisedAt(s, 2) {
		return 2
	}
	if len(s) > 0 && s[0] >= 'a' && s[0] <= 'z' && capitalisedAt(s, 1) {
		return 1
	}

	rq := 0
	for rq < len(s) && rq < 2 && (s[rq] == 'R' || s[rq] == 'Q') {
		rq++
	}
	for k := rq; k >= 1; k-- {
		if capitalisedAt(s, k) {
			return k
		}
	}
	return 0
}

// capitalisedAt reports whether s has an upper-case ASCII letter followed by
// a lower-case one at byte i.
func capitalisedAt(s string, i int) bool {
	return i+1 < len(s) &&
		s[i] >= 'A' && s[i] <= 'Z' &&
		s[i+1] >= 'a' && s[i+1] <= 'z'
}
