package estimator

import (
	"math"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
	"github.com/larkspur-labs/minentropy/pkg/sarray"
)

// minTupleOccurrences is the minimum number of occurrences a length-t
// substring must have for t to remain a candidate tuple length.
const minTupleOccurrences = 35

// TTupleAndLRS computes the t-Tuple and LRS estimates together from a
// single suffix array / LCP array built over block s, since both walk
// the same run structure of the LCP array.
//
// t-Tuple: find the largest t such that some length-t substring occurs at
// least minTupleOccurrences times, via maximal runs of consecutive LCP
// entries >= t (a run of length m-1 means m suffixes share that prefix,
// i.e. m occurrences). p_max = (c_t / (L-t+1))^(1/t), adjusted by a
// one-sided 99% confidence bound on that proportion.
//
// LRS: for every tuple length u from t+1 up to the longest repeated
// substring length W, compute the same bound, and take the maximum over
// u (the most conservative, i.e. smallest entropy) as the LRS estimate.
func TTupleAndLRS(s []uint16) SuffixGroupResult {
	L := len(s)
	if L < 2 {
		return SuffixGroupResult{}
	}
	arr := sarray.Build(s)

	maxRunLen := 0
	for _, v := range arr.LCP {
		if v > maxRunLen {
			maxRunLen = v
		}
	}
	if maxRunLen == 0 {
		return SuffixGroupResult{}
	}

	occurrencesAtLeast := func(t int) int {
		best := 0
		run := 0
		for i := 1; i < len(arr.LCP); i++ {
			if arr.LCP[i] >= t {
				run++
				if run+1 > best {
					best = run + 1
				}
			} else {
				run = 0
			}
		}
		return best
	}

	bound := func(t, count int) float64 {
		n := float64(L - t + 1)
		if n <= 0 || count <= 0 {
			return 0
		}
		pHat := math.Pow(float64(count)/n, 1.0/float64(t))
		pu := pHat + numkit.Z995*math.Sqrt(pHat*(1-pHat)/n)
		if pu > 1 {
			pu = 1
		}
		if pu < 0 {
			pu = 0
		}
		return pu
	}

	tStar := 0
	cStar := 0
	for t := 1; t <= maxRunLen; t++ {
		c := occurrencesAtLeast(t)
		if c >= minTupleOccurrences {
			tStar = t
			cStar = c
		} else {
			break
		}
	}

	var result SuffixGroupResult
	if tStar > 0 {
		pu := bound(tStar, cStar)
		result.TTupleDone = true
		result.TTuplePMax = pu
		result.TTupleEntropy = -numkit.Log2(pu)

		worstPU := pu
		for u := tStar + 1; u <= maxRunLen; u++ {
			c := occurrencesAtLeast(u)
			if c < 2 {
				break
			}
			candidate := bound(u, c)
			if candidate > worstPU {
				worstPU = candidate
			}
		}
		result.LRSDone = true
		result.LRSPMax = worstPU
		result.LRSEntropy = -numkit.Log2(worstPU)
	}

	return result
}
