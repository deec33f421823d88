package cleaner

import (
	"unicode"

	"github.com/nao1215/golfcard/internal/model"
)

// Tokenize splits cleaned text on whitespace.
// Every token is returned as model.TokenNoise with byte offsets into text;
// classification is left to the extractor.
func Tokenize(text string) []model.Token {
	var tokens []model.Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, model.Token{Kind: model.TokenNoise, Text: text[start:i], Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, model.Token{Kind: model.TokenNoise, Text: text[start:], Start: start, End: len(text)})
	}
	return tokens
}
