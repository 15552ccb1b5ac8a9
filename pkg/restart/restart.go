// Package restart implements the restart-sanity test: the battery is run
// across many independent "restarts" of the noise source (rows) each
// producing the same number of samples (columns), and the largest
// per-row and per-column most-common-symbol count is compared against
// what a Monte-Carlo simulation of the claimed-entropy worst case
// distribution would produce, cross-checked by a binomial-CDF analytic
// bound when the simulation path is disabled.
package restart

import (
	"math"

	"github.com/JekaMas/workerpool"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
	"github.com/larkspur-labs/minentropy/pkg/rng"
)

// Config controls a restart-sanity run.
type Config struct {
	Rounds      int // Monte-Carlo simulation rounds
	ThreadCount int
	Alpha       float64 // false-positive bound for the comparison
	Seed        uint64
	Simulate    bool // if false, use only the binomial analytic fallback
}

// DefaultConfig matches the battery's default restart-sanity parameters.
func DefaultConfig() Config {
	return Config{Rounds: 10000, ThreadCount: 4, Alpha: 1e-3, Simulate: true}
}

// Result reports the outcome of the restart-sanity test.
type Result struct {
	ObservedRowMax int
	ObservedColMax int
	SimRowPValue   float64 // fraction of simulated rounds with rowMax >= observed, when Simulate
	SimColPValue   float64
	BinomialBound  int // analytic worst-case per-row count bound at Alpha (cols draws), from the binomial fallback
	Failed         bool
}

// Run executes the restart-sanity test over data, a rows x cols matrix of
// symbols (rows independent restarts, cols samples per restart), given
// the alphabet size k and the battery's claimed min-entropy in bits.
func Run(cfg Config, data [][]uint16, k int, minEntropyBits float64) Result {
	rows := len(data)
	if rows == 0 {
		return Result{}
	}
	cols := len(data[0])
	if cols == 0 {
		return Result{}
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultConfig().Rounds
	}
	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = DefaultConfig().ThreadCount
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = DefaultConfig().Alpha
	}

	observedRowMax := maxRowCount(data, k)
	observedColMax := maxColCount(data, k)

	dist := InvertedNearUniform(k, minEntropyBits)
	p := dist[0]
	// Each row holds cols draws and each column holds rows draws.
	rowBound := binomialCountBound(1, cols, p, cfg.Alpha)
	colBound := binomialCountBound(rows, 1, p, cfg.Alpha)

	result := Result{
		ObservedRowMax: observedRowMax,
		ObservedColMax: observedColMax,
		BinomialBound:  rowBound,
	}

	if cfg.Simulate {
		rowPValue, colPValue := simulate(cfg, dist, rows, cols, observedRowMax, observedColMax)
		result.SimRowPValue = rowPValue
		result.SimColPValue = colPValue
		result.Failed = rowPValue < cfg.Alpha || colPValue < cfg.Alpha
	} else {
		result.Failed = observedRowMax > rowBound || observedColMax > colBound
	}

	return result
}

// InvertedNearUniform builds the worst-case categorical distribution SP
// 800-90B's restart test compares against: one symbol holds probability
// p = 2^-minEntropyBits (the maximum consistent with the claimed
// min-entropy) and the remaining k-1 symbols evenly share the rest.
func InvertedNearUniform(k int, minEntropyBits float64) []float64 {
	dist := make([]float64, k)
	if k == 0 {
		return dist
	}
	p := math.Exp2(-minEntropyBits)
	if p > 1 {
		p = 1
	}
	dist[0] = p
	if k > 1 {
		rest := (1 - p) / float64(k-1)
		for i := 1; i < k; i++ {
			dist[i] = rest
		}
	}
	return dist
}

func maxRowCount(data [][]uint16, k int) int {
	best := 0
	counts := make([]int, k)
	for _, row := range data {
		for i := range counts {
			counts[i] = 0
		}
		for _, v := range row {
			counts[v]++
		}
		for _, c := range counts {
			if c > best {
				best = c
			}
		}
	}
	return best
}

func maxColCount(data [][]uint16, k int) int {
	rows := len(data)
	cols := len(data[0])
	best := 0
	counts := make([]int, k)
	for c := 0; c < cols; c++ {
		for i := range counts {
			counts[i] = 0
		}
		for r := 0; r < rows; r++ {
			counts[data[r][c]]++
		}
		for _, cnt := range counts {
			if cnt > best {
				best = cnt
			}
		}
	}
	return best
}

// binomialCountBound returns the smallest count c such that, under the
// worst-case dominant-symbol probability p over n draws, P(X >= c) <=
// alpha, using the regularized-incomplete-beta binomial survival
// function (the fast analytic fallback for when Monte Carlo simulation
// is disabled).
func binomialCountBound(rows, cols int, p, alpha float64) int {
	n := rows * cols
	if n == 0 {
		return 0
	}
	for c := 1; c <= n; c++ {
		if numkit.BinomialSF(c, n, p) <= alpha {
			return c
		}
	}
	return n
}

// simulate draws cfg.Rounds independent rows x cols matrices from dist in
// parallel and returns the fraction of rounds whose simulated row/column
// max count meets or exceeds the observed one.
func simulate(cfg Config, dist []float64, rows, cols, observedRowMax, observedColMax int) (rowPValue, colPValue float64) {
	root := rng.NewStream(cfg.Seed)
	streams := root.Split(cfg.Rounds)

	rowHits := make([]bool, cfg.Rounds)
	colHits := make([]bool, cfg.Rounds)

	wp := workerpool.New(cfg.ThreadCount)
	for i := 0; i < cfg.Rounds; i++ {
		i := i
		wp.Submit(func() {
			simRowMax, simColMax := simulateOneRound(streams[i], dist, rows, cols)
			rowHits[i] = simRowMax >= observedRowMax
			colHits[i] = simColMax >= observedColMax
		})
	}
	wp.StopWait()

	rowCount, colCount := 0, 0
	for i := range rowHits {
		if rowHits[i] {
			rowCount++
		}
		if colHits[i] {
			colCount++
		}
	}
	n := float64(cfg.Rounds)
	return float64(rowCount) / n, float64(colCount) / n
}

func simulateOneRound(s *rng.Stream, dist []float64, rows, cols int) (rowMax, colMax int) {
	k := len(dist)
	data := make([][]uint16, rows)
	for r := 0; r < rows; r++ {
		data[r] = make([]uint16, cols)
		for c := 0; c < cols; c++ {
			data[r][c] = uint16(drawCategorical(s, dist))
		}
	}
	return maxRowCount(data, k), maxColCount(data, k)
}

func drawCategorical(s *rng.Stream, dist []float64) int {
	u := s.Float64()
	var cum float64
	for i, p := range dist {
		cum += p
		if u < cum {
			return i
		}
	}
	return len(dist) - 1
}
