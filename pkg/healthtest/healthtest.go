// Package healthtest implements the continuous health tests SP 800-90B
// requires alongside the entropy estimate itself: the Repetition Count
// Test (RCT), the Adaptive Proportion Test (APT), and a cross-validating
// variant of RCT (CrossRCT) run against the claimed min-entropy.
package healthtest

import "math"

// RCTResult reports the outcome of a Repetition Count Test pass.
type RCTResult struct {
	Cutoff      int
	MaxRun      int
	Failed      bool
	FailedAtIdx int
}

// RCTCutoff computes the repetition cutoff C for a claimed per-symbol
// min-entropy H (in bits) and false-positive bound alpha, via
// C = ceil(1 + (-log2(alpha)) / H). H must be > 0.
func RCTCutoff(entropyBits, alpha float64) int {
	if entropyBits <= 0 {
		return math.MaxInt32
	}
	c := 1 + (-math.Log2(alpha))/entropyBits
	return int(math.Ceil(c))
}

// RCT scans s for any run of RCTCutoff(entropyBits, alpha) or more
// identical consecutive symbols, which is a hard failure under the
// continuous health test (not merely a statistical flag).
func RCT(s []uint16, entropyBits, alpha float64) RCTResult {
	cutoff := RCTCutoff(entropyBits, alpha)
	result := RCTResult{Cutoff: cutoff}
	if len(s) == 0 {
		return result
	}

	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
		} else {
			run = 1
		}
		if run > result.MaxRun {
			result.MaxRun = run
		}
		if run >= cutoff && !result.Failed {
			result.Failed = true
			result.FailedAtIdx = i
		}
	}
	return result
}

// APTResult reports the outcome of an Adaptive Proportion Test pass.
type APTResult struct {
	WindowSize  int
	Cutoff      int
	MaxCount    int
	Failed      bool
	FailedAtIdx int
}

// APTCutoff computes the proportion cutoff for a window size w and
// claimed per-symbol min-entropy H, using the inverse binomial CDF: the
// smallest c such that P(X >= c) <= alpha for X ~ Binomial(w-1, 2^-H).
func APTCutoff(windowSize int, entropyBits, alpha float64) int {
	if entropyBits <= 0 || windowSize <= 1 {
		return windowSize
	}
	p := math.Exp2(-entropyBits)
	n := windowSize - 1
	for c := 1; c <= n; c++ {
		if binomialSF(c, n, p) <= alpha {
			return c
		}
	}
	return n
}

// APT runs the Adaptive Proportion Test over s with the given window
// size: for every window start, count how many of the following
// windowSize-1 symbols equal the window's first symbol, and flag a
// failure if that count ever reaches the cutoff.
func APT(s []uint16, windowSize int, entropyBits, alpha float64) APTResult {
	result := APTResult{WindowSize: windowSize}
	if windowSize <= 1 || len(s) < windowSize {
		return result
	}
	cutoff := APTCutoff(windowSize, entropyBits, alpha)
	result.Cutoff = cutoff

	i := 0
	for i+windowSize <= len(s) {
		ref := s[i]
		count := 0
		for j := i + 1; j < i+windowSize; j++ {
			if s[j] == ref {
				count++
			}
		}
		if count > result.MaxCount {
			result.MaxCount = count
		}
		if count >= cutoff && !result.Failed {
			result.Failed = true
			result.FailedAtIdx = i
		}
		i += windowSize
	}
	return result
}

// CrossRCTResult reports the outcome of running RCT over whole symbols
// with the cutoff derived from the given claimed entropy, together with
// that entropy.
type CrossRCTResult struct {
	RCTResult
	ClaimedEntropyBits float64
}

// CrossRCT runs RCT over s against entropyBits and records entropyBits.
// The battery passes it the same assessed entropy it passes RCT, so the
// two results share a cutoff. Runs of XORed bit pairs within a symbol are
// not examined.
func CrossRCT(s []uint16, entropyBits, alpha float64) CrossRCTResult {
	return CrossRCTResult{
		RCTResult:          RCT(s, entropyBits, alpha),
		ClaimedEntropyBits: entropyBits,
	}
}

// binomialSF returns P(X >= k) for X ~ Binomial(n, p) via direct
// summation, adequate for the small window/cutoff sizes APT uses (the
// battery's numkit.BinomialSF is reserved for the restart-sanity test's
// much larger n where the incomplete-beta route is needed for speed).
func binomialSF(k, n int, p float64) float64 {
	if k <= 0 {
		return 1
	}
	if k > n {
		return 0
	}
	logP, log1mP := math.Log(p), math.Log(1-p)
	var sum float64
	for i := k; i <= n; i++ {
		sum += math.Exp(logBinomial(n, i) + float64(i)*logP + float64(n-i)*log1mP)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

func logBinomial(n, k int) float64 {
	lg1, _ := math.Lgamma(float64(n) + 1)
	lg2, _ := math.Lgamma(float64(k) + 1)
	lg3, _ := math.Lgamma(float64(n-k) + 1)
	return lg1 - lg2 - lg3
}
