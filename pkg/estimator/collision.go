package estimator

import (
	"math"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
)

// Collision computes the Collision Test Estimate over a translated block s
// with alphabet size k: scan for runs ending the first time any symbol
// repeats since the start of the run, take the mean and standard
// deviation of the run lengths, form a one-sided 99% lower bound on the
// mean, then solve for the single dominant-symbol probability p whose
// theoretical collision-length mean matches that bound.
//
// The collision-length distribution for a skewed alphabet has no simple
// closed form; this models the source as a two-outcome reduction (the
// dominant symbol at probability p, every other symbol lumped at
// (1-p)/(k-1) each) and uses the standard birthday-paradox asymptotic
// E[T] ≈ sqrt(pi / (2 * sum(p_i^2))) for the expected collision length,
// which is monotonically decreasing in p as required for the search.
func Collision(s []uint16, k int) CollisionResult {
	L := len(s)
	if L < 2 || k < 2 {
		return CollisionResult{}
	}

	lengths := collisionRunLengths(s, k)
	if len(lengths) < 2 {
		return CollisionResult{}
	}

	xbar := numkit.Mean(lengths)
	sigma := numkit.SampleStdDev(lengths)
	n := float64(len(lengths))
	meanBound := xbar - numkit.Z995*sigma/math.Sqrt(n)
	if meanBound < 1 {
		meanBound = 1
	}

	meanOfP := func(p float64) float64 {
		return collisionMean(p, k)
	}
	// meanOfP is decreasing in p; search on -meanOfP so the helper's
	// monotonic-non-decreasing contract is satisfied.
	negTarget := -meanBound
	p, ok := numkit.MonotonicBinarySearch(1.0/float64(k), 1, negTarget, 1e-12, 200, func(p float64) float64 {
		return -meanOfP(p)
	})
	if p <= 0 {
		p = 1.0 / float64(k)
	}
	if p > 1 {
		p = 1
	}

	return CollisionResult{
		Done:      true,
		XBar:      xbar,
		Sigma:     sigma,
		P:         p,
		MeanBound: meanBound,
		Converged: ok,
		Entropy:   -numkit.Log2(p),
	}
}

// collisionRunLengths scans s for the index of the first repeated symbol
// within each successive run (a "collision"), recording the run length
// and restarting the scan just past the repeated symbol.
func collisionRunLengths(s []uint16, k int) []float64 {
	var lengths []float64
	seen := make([]bool, k)
	start := 0
	for start < len(s) {
		for i := range seen {
			seen[i] = false
		}
		i := start
		for i < len(s) {
			v := s[i]
			if seen[v] {
				lengths = append(lengths, float64(i-start+1))
				break
			}
			seen[v] = true
			i++
		}
		if i >= len(s) {
			break
		}
		start = i + 1
	}
	return lengths
}

// collisionMean returns the birthday-paradox asymptotic expected
// collision length for a source with one symbol at probability p and the
// remaining k-1 symbols sharing (1-p) uniformly.
func collisionMean(p float64, k int) float64 {
	if k < 2 {
		return 1
	}
	q := (1 - p) / float64(k-1)
	sumSq := p*p + float64(k-1)*q*q
	if sumSq <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(math.Pi / (2 * sumSq))
}
