package predictor

// MultiMCW predicts the next symbol as the most common value observed
// within each of several trailing windows (the most-common-in-window
// family) and predicting the candidate of the window whose most common
// symbol has the largest count (ties broken toward the smallest window,
// which is the most recent). Which window predicted correctly most
// recently is not tracked and plays no part in the choice.
type MultiMCW struct {
	k           int
	windowSizes []int
	history     []int
	counts      [][]int // per window size, a running symbol histogram over its current window contents
}

// defaultMultiMCWWindows mirrors the standard window-size family used by
// the non-IID MultiMCW estimator: windows of 2^j-1 samples, up to 4095
// samples back.
var defaultMultiMCWWindows = []int{63, 255, 1023, 4095}

// NewMultiMCW creates a MultiMCW predictor over alphabet size k using the
// default window-size family.
func NewMultiMCW(k int) *MultiMCW {
	windows := make([]int, 0, len(defaultMultiMCWWindows))
	windows = append(windows, defaultMultiMCWWindows...)
	counts := make([][]int, len(windows))
	for i := range counts {
		counts[i] = make([]int, k)
	}
	return &MultiMCW{k: k, windowSizes: windows, counts: counts}
}

func (p *MultiMCW) Predict() (int, bool) {
	if len(p.history) == 0 {
		return 0, false
	}

	bestSym, bestCount, bestWindowRank := -1, -1, -1
	for wi := range p.windowSizes {
		sym, count := argmaxCount(p.counts[wi])
		if count <= 0 {
			continue
		}
		rank := -wi // prefer smaller window index (more recent) on ties
		if count > bestCount || (count == bestCount && rank > bestWindowRank) {
			bestSym, bestCount, bestWindowRank = sym, count, rank
		}
	}
	if bestSym < 0 {
		return 0, false
	}
	return bestSym, true
}

func (p *MultiMCW) Observe(symbol int) {
	p.history = append(p.history, symbol)
	for wi, w := range p.windowSizes {
		p.counts[wi][symbol]++
		if len(p.history) > w {
			evict := p.history[len(p.history)-w-1]
			p.counts[wi][evict]--
		}
	}
}

// argmaxCount returns the index of the largest value in counts, ties
// broken toward the largest index (matches the dictionary tree's tie
// convention for consistency across the battery).
func argmaxCount(counts []int) (sym, count int) {
	sym, count = -1, 0
	for i, c := range counts {
		if c > count || (c == count && c > 0 && i >= sym) {
			sym, count = i, c
		}
	}
	return
}
