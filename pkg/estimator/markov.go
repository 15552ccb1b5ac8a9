package estimator

import (
	"math"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
)

// markovPathLength is the fixed path length over which the worst-case
// probability bound is computed.
const markovPathLength = 128

// Markov computes the simple Markov Estimate over a binary sequence bits
// (values 0/1): estimate the initial-state probabilities P0/P1 and the
// 2x2 transition matrix, then find the maximum probability achievable by
// any length-128 path through the chain via a log-domain dynamic program
// (the two-state analogue of a Viterbi max-path search), and report
// -log2 of that maximum as the entropy estimate.
func Markov(bits []uint8) MarkovResult {
	n := len(bits)
	if n < 2 {
		return MarkovResult{}
	}

	var c0, c1 int
	for _, b := range bits {
		if b == 0 {
			c0++
		} else {
			c1++
		}
	}
	p0 := float64(c0) / float64(n)
	p1 := float64(c1) / float64(n)

	var t00, t01, t10, t11 int
	for i := 0; i < n-1; i++ {
		switch {
		case bits[i] == 0 && bits[i+1] == 0:
			t00++
		case bits[i] == 0 && bits[i+1] == 1:
			t01++
		case bits[i] == 1 && bits[i+1] == 0:
			t10++
		default:
			t11++
		}
	}
	T := [2][2]float64{}
	if row := t00 + t01; row > 0 {
		T[0][0] = float64(t00) / float64(row)
		T[0][1] = float64(t01) / float64(row)
	} else {
		T[0][0], T[0][1] = 0.5, 0.5
	}
	if row := t10 + t11; row > 0 {
		T[1][0] = float64(t10) / float64(row)
		T[1][1] = float64(t11) / float64(row)
	} else {
		T[1][0], T[1][1] = 0.5, 0.5
	}

	logT := [2][2]float64{}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			logT[i][j] = safeLog2(T[i][j])
		}
	}

	m := [2]float64{safeLog2(p0), safeLog2(p1)}
	for step := 1; step < markovPathLength; step++ {
		var next [2]float64
		for j := 0; j < 2; j++ {
			a := m[0] + logT[0][j]
			b := m[1] + logT[1][j]
			if a > b {
				next[j] = a
			} else {
				next[j] = b
			}
		}
		m = next
	}

	logPMax := math.Max(m[0], m[1])
	pMax := math.Exp2(logPMax)
	if pMax > 1 {
		pMax = 1
	}

	return MarkovResult{
		Done:    true,
		P0:      p0,
		P1:      p1,
		T:       T,
		PHatMax: pMax,
		Entropy: -logPMax,
	}
}

func safeLog2(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return numkit.Log2(p)
}
