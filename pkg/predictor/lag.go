package predictor

// Lag predicts the next symbol as the value seen exactly lag positions
// back, for each candidate lag in a small fixed set, scored against a
// running per-lag correctness tally, and votes for the most accurate lag
// so far (ties broken toward the smallest lag).
type Lag struct {
	lags      []int
	history   []int
	correct   []int
	predicted []int // scored count per lag, for a correctness ratio tiebreak
}

// defaultLags mirrors the standard small lag set used by the non-IID Lag
// predictor: the most recent few positions.
var defaultLags = []int{1, 2, 3, 4, 5, 6, 7, 8, 16, 32}

// NewLag creates a Lag predictor with the default lag set.
func NewLag() *Lag {
	lags := make([]int, len(defaultLags))
	copy(lags, defaultLags)
	return &Lag{
		lags:      lags,
		correct:   make([]int, len(lags)),
		predicted: make([]int, len(lags)),
	}
}

func (p *Lag) Predict() (int, bool) {
	bestLagIdx := -1
	bestRatio := -1.0
	for li, lag := range p.lags {
		if lag > len(p.history) {
			continue
		}
		ratio := 0.0
		if p.predicted[li] > 0 {
			ratio = float64(p.correct[li]) / float64(p.predicted[li])
		}
		if ratio > bestRatio {
			bestRatio, bestLagIdx = ratio, li
		}
	}
	if bestLagIdx < 0 {
		return 0, false
	}
	lag := p.lags[bestLagIdx]
	return p.history[len(p.history)-lag], true
}

func (p *Lag) Observe(symbol int) {
	for li, lag := range p.lags {
		if lag <= len(p.history) {
			p.predicted[li]++
			if p.history[len(p.history)-lag] == symbol {
				p.correct[li]++
			}
		}
	}
	p.history = append(p.history, symbol)
}
