package predictor

import "github.com/larkspur-labs/minentropy/pkg/dictionary"

// lz78yMaxContext bounds how far back LZ78Y's growing context can reach.
const lz78yMaxContext = 32

// LZ78Y predicts the next symbol using a single dictionary tree keyed by
// a context whose length grows incrementally, LZ78-style: starting from
// the longest previously-seen suffix of the history, successive symbols
// extend the active phrase as long as the extended phrase has been seen
// before, resetting to a length-1 context once a novel phrase is hit.
type LZ78Y struct {
	k           int
	tree        *dictionary.Tree
	history     []int
	activeLen   int // current context length in use for prediction
}

// NewLZ78Y creates an LZ78Y predictor over alphabet size k.
func NewLZ78Y(k int) *LZ78Y {
	return &LZ78Y{k: k, tree: dictionary.New(k), activeLen: 1}
}

func (p *LZ78Y) Predict() (int, bool) {
	n := len(p.history)
	if n == 0 {
		return 0, false
	}
	ctxLen := p.activeLen
	if ctxLen > n {
		ctxLen = n
	}
	if ctxLen > lz78yMaxContext {
		ctxLen = lz78yMaxContext
	}
	for l := ctxLen; l >= 1; l-- {
		prior := p.history[n-l:]
		found, sym, _ := p.tree.Predict(prior, l)
		if found {
			return sym, true
		}
	}
	return 0, false
}

func (p *LZ78Y) Observe(symbol int) {
	n := len(p.history)
	ctxLen := p.activeLen
	if ctxLen > n {
		ctxLen = n
	}
	if ctxLen > lz78yMaxContext {
		ctxLen = lz78yMaxContext
	}

	matched := false
	for l := ctxLen; l >= 1; l-- {
		prior := p.history[n-l:]
		branched := p.tree.Increment(prior, l, symbol, true, true)
		if l == ctxLen && !branched {
			matched = true
		}
	}

	if matched && ctxLen < lz78yMaxContext {
		p.activeLen = ctxLen + 1
	} else {
		p.activeLen = 1
	}

	p.history = append(p.history, symbol)
}

// Close releases the underlying dictionary tree's pooled pages.
func (p *LZ78Y) Close() {
	p.tree.Close()
}
