// Package predictor implements the four online prediction-based entropy
// estimators (MultiMCW, Lag, MultiMMC, LZ78Y) and the shared accounting
// framework they all run through: for every sample, ask the predictor to
// guess the next symbol before seeing it, score the guess, then let it
// observe the real value.
package predictor

import (
	"math"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
)

// Predictor is the common capability set every prediction strategy
// implements: guess the next symbol from everything seen so far, then
// observe the actual value.
type Predictor interface {
	// Predict returns the predicted next symbol and whether the predictor
	// had enough context to make one.
	Predict() (symbol int, ok bool)
	// Observe records the actual next symbol.
	Observe(symbol int)
}

// Result is the common output record for all four predictor-based
// estimators (spec.md's predictor sub-record shape).
type Result struct {
	Done      bool
	N         int // total predictions scored
	C         int // correct predictions
	RunMax    int // longest correct-prediction run observed
	PGlobal   float64
	PGlobalUB float64 // upper confidence bound on P_global
	PRun      float64
	PLocal    float64
	Entropy   float64
}

// Run drives pred over s (alphabet size k), scoring every prediction from
// the first position the predictor is able to produce one, and returns
// the accounting/entropy result.
func Run(pred Predictor, s []uint16, k int) Result {
	L := len(s)
	if L == 0 {
		return Result{}
	}

	var n, correct, runLen, runMax int
	for i := 0; i < L; i++ {
		sym, ok := pred.Predict()
		actual := int(s[i])
		if ok {
			n++
			if sym == actual {
				correct++
				runLen++
				if runLen > runMax {
					runMax = runLen
				}
			} else {
				runLen = 0
			}
		}
		pred.Observe(actual)
	}
	if n == 0 {
		return Result{}
	}

	return Accounting(n, correct, runMax, k)
}

// Accounting implements the shared global/local bound computation used by
// all four predictors, given the number of scored predictions n, the
// number correct, and the longest correct-guess run observed.
func Accounting(n, correct, runMax, k int) Result {
	if n == 0 {
		return Result{}
	}

	pGlobal := float64(correct) / float64(n)
	nF := float64(n)

	// One-sided 99% upper confidence bound on P_global via the normal
	// approximation, clamped to a sound probability.
	pGlobalUB := pGlobal + numkit.Z995*math.Sqrt(pGlobal*(1-pGlobal)/nF)
	if pGlobalUB > 1 {
		pGlobalUB = 1
	}
	if pGlobalUB < 1.0/float64(k) {
		pGlobalUB = 1.0 / float64(k)
	}

	// P_run: the probability bound implied by observing a run of runMax
	// consecutive correct guesses, solved from P(run length >= runMax) at
	// the 99% confidence level for a geometric process with success
	// probability p: 1 - p^runMax*(... ) approximated by requiring
	// p^(runMax+1) <= 0.01, i.e. p <= 0.01^(1/(runMax+1)).
	pRun := 1.0
	if runMax > 0 {
		pRun = math.Pow(0.01, 1.0/float64(runMax+1))
	}

	// P_local combines the global bound with the run-based bound, taking
	// the most conservative (largest) of the two as the final
	// per-predictor probability bound, matching
	// the non-IID predictors' "take the worse of global and local" rule.
	pLocal := pGlobalUB
	if pRun > pLocal {
		pLocal = pRun
	}
	if pLocal > 1 {
		pLocal = 1
	}

	return Result{
		Done:      true,
		N:         n,
		C:         correct,
		RunMax:    runMax,
		PGlobal:   pGlobal,
		PGlobalUB: pGlobalUB,
		PRun:      pRun,
		PLocal:    pLocal,
		Entropy:   -numkit.Log2(pLocal),
	}
}
