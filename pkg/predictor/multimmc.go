package predictor

import "github.com/larkspur-labs/minentropy/pkg/dictionary"

// multiMMCMaxContext is the longest context length tracked; the Markov
// model family votes across context lengths 1..multiMMCMaxContext and
// picks the longest context that has actually seen the current prefix.
const multiMMCMaxContext = 16

// MultiMMC predicts the next symbol via a family of finite-context Markov
// models of increasing order, backed by a dictionary tree per context
// length, preferring the longest context that has a recorded successor.
type MultiMMC struct {
	k        int
	trees    []*dictionary.Tree // trees[i] models context length i+1
	history  []int
}

// NewMultiMMC creates a MultiMMC predictor over alphabet size k.
func NewMultiMMC(k int) *MultiMMC {
	trees := make([]*dictionary.Tree, multiMMCMaxContext)
	for i := range trees {
		trees[i] = dictionary.New(k)
	}
	return &MultiMMC{k: k, trees: trees}
}

func (p *MultiMMC) Predict() (int, bool) {
	for order := multiMMCMaxContext; order >= 1; order-- {
		if len(p.history) < order {
			continue
		}
		prior := p.history[len(p.history)-order:]
		found, sym, _ := p.trees[order-1].Predict(prior, order)
		if found {
			return sym, true
		}
	}
	return 0, false
}

func (p *MultiMMC) Observe(symbol int) {
	for order := 1; order <= multiMMCMaxContext; order++ {
		if len(p.history) < order {
			continue
		}
		prior := p.history[len(p.history)-order:]
		p.trees[order-1].Increment(prior, order, symbol, true, true)
	}
	p.history = append(p.history, symbol)
}

// Close releases every dictionary tree's pooled pages.
func (p *MultiMMC) Close() {
	for _, tr := range p.trees {
		tr.Close()
	}
}
