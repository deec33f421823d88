package extract

import (
	"sort"

	"github.com/nao1215/golfcard/internal/model"
)

// candidatePool holds the name candidates of one extraction call.
// A candidate leaves the pool once it is matched, so no token is attached
// to two anchors.
type candidatePool struct {
	byOffset map[int]model.Token
	offsets  []int
}

func newCandidatePool(tokens []model.Token) *candidatePool {
	p := &candidatePool{
		byOffset: make(map[int]model.Token, len(tokens)),
		offsets:  make([]int, 0, len(tokens)),
	}
	for _, tok := range tokens {
		if _, dup := p.byOffset[tok.Start]; dup {
			continue
		}
		p.byOffset[tok.Start] = tok
		p.offsets = append(p.offsets, tok.Start)
	}
	sort.Ints(p.offsets)
	return p
}

// nearest returns the best remaining candidate for anchor under bias.
func (p *candidatePool) nearest(anchor int, bias Bias) (Candidate, bool) {
	var best Candidate
	found := false
	for _, off := range p.offsets {
		tok, ok := p.byOffset[off]
		if !ok {
			continue
		}
		w, ok := bias.Weigh(anchor, tok)
		if !ok {
			continue
		}
		if !found || better(w, best) {
			best = w
			found = true
		}
	}
	return best, found
}

// take removes the candidate starting at offset.
func (p *candidatePool) take(offset int) {
	delete(p.byOffset, offset)
}

// remaining returns the number of unmatched candidates.
func (p *candidatePool) remaining() int {
	return len(p.byOffset)
}
