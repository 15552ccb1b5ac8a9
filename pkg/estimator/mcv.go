package estimator

import (
	"math"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
)

// MCV computes the Most-Common-Value estimate over a translated block s
// with alphabet size k: count the most frequent symbol, form a one-sided
// 99% confidence upper bound on its true probability via the normal
// approximation to the binomial, and report -log2 of that bound as the
// entropy estimate.
func MCV(s []uint16, k int) MCVResult {
	L := len(s)
	if L == 0 || k == 0 {
		return MCVResult{}
	}

	counts := make([]int, k)
	for _, v := range s {
		counts[v]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	n := float64(L)
	pHat := float64(maxCount) / n
	pu := pHat + numkit.Z995*math.Sqrt(pHat*(1-pHat)/n)
	if pu > 1 {
		pu = 1
	}

	return MCVResult{
		Done:    true,
		PHat:    pHat,
		PU:      pu,
		Entropy: -numkit.Log2(pu),
	}
}
