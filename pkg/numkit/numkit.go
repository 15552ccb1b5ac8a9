// Package numkit provides the small numerical toolbox shared by every
// estimator and health test in the battery: log2, z-values for the two
// confidence points the battery uses, a monotonic binary search,
// compensated summation, the regularized incomplete beta function, a
// binomial CDF, and the Hyndman-Fan R6 percentile used by the bootstrap.
package numkit

import "math"

// Z995 is the upper 99.5th percentile of the standard normal distribution,
// used throughout SP 800-90B's upper-bound constructions (z_0.995).
const Z995 = 2.5758293035489004

// Z9975 is the upper 99.75th percentile, used for two-sided 99.5% bounds.
const Z9975 = 2.8070337683438042

// Log2 returns log base 2 of x. x must be > 0; callers are expected to
// special-case x <= 0 (the estimators only ever call this on probabilities
// strictly inside (0, 1] after clamping).
func Log2(x float64) float64 {
	return math.Log2(x)
}

// Log2Choose returns log2(C(n, k)), the log-binomial-coefficient, computed
// via the log-gamma function to avoid overflow for large n.
func Log2Choose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	lg, _ := math.Lgamma(float64(n) + 1)
	lk, _ := math.Lgamma(float64(k) + 1)
	lnk, _ := math.Lgamma(float64(n-k) + 1)
	return (lg - lk - lnk) / math.Ln2
}

// MonotonicBinarySearch finds x in [lo, hi] such that f(x) == target, given
// that f is monotonically non-decreasing over [lo, hi]. It returns the
// smallest x for which f(x) >= target. maxIter bounds the number of
// bisections (the Collision and Compression estimators pass 200); the ok
// return reports false when the search
// exhausts maxIter without the interval collapsing to within eps.
func MonotonicBinarySearch(lo, hi, target, eps float64, maxIter int, f func(float64) float64) (x float64, ok bool) {
	if lo > hi {
		lo, hi = hi, lo
	}
	flo, fhi := f(lo), f(hi)
	if target <= flo {
		return lo, true
	}
	if target >= fhi {
		return hi, true
	}
	for i := 0; i < maxIter; i++ {
		mid := lo + (hi-lo)/2
		fm := f(mid)
		if math.Abs(hi-lo) <= eps {
			return mid, true
		}
		if fm < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + (hi-lo)/2, false
}

// BinomialCDF returns P(X <= k) for X ~ Binomial(n, p), computed via the
// regularized incomplete beta relation P(X <= k) = I_{1-p}(n-k, k+1).
func BinomialCDF(k, n int, p float64) float64 {
	if k < 0 {
		return 0
	}
	if k >= n {
		return 1
	}
	return RegularizedIncompleteBeta(float64(n-k), float64(k+1), 1-p)
}

// BinomialSF returns P(X >= k) for X ~ Binomial(n, p) (the survival
// function used by restart-sanity's binomial fallback p-value), computed
// as I_p(k, n-k+1).
func BinomialSF(k, n int, p float64) float64 {
	if k <= 0 {
		return 1
	}
	if k > n {
		return 0
	}
	return RegularizedIncompleteBeta(float64(k), float64(n-k+1), p)
}
