package estimator

import (
	"math"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
)

// compressionWindow is the fixed sliding-window tuple length (b) used to
// key each position's "last seen" dictionary.
const compressionWindow = 6

// compressionInit is the number of leading positions (d) excluded from
// the statistic so the last-seen dictionary has time to warm up.
const compressionInit = 1000

// Compression computes the Maurer-style Compression Estimate over a
// translated block s: for every position i >= compressionInit, form the
// b-length tuple ending at i, look up the distance back to its most
// recent prior occurrence (capped at compressionInit), and take log2 of
// that distance as one sample. The sample mean and standard deviation
// give a one-sided 99% lower bound on the true mean, which is then
// matched against the delta-method approximation of a geometric waiting
// time's log2 moments to solve for the implied repeat probability p.
func Compression(s []uint16) CompressionResult {
	L := len(s)
	if L <= compressionInit+compressionWindow {
		return CompressionResult{}
	}

	lastSeen := make(map[uint64]int)
	var samples []float64
	for i := compressionWindow - 1; i < L; i++ {
		key := windowKey(s[i-compressionWindow+1 : i+1])
		prev, ok := lastSeen[key]
		lastSeen[key] = i
		if !ok || i < compressionInit {
			continue
		}
		d := i - prev
		if d > compressionInit {
			d = compressionInit
		}
		if d < 1 {
			d = 1
		}
		samples = append(samples, numkit.Log2(float64(d)))
	}
	if len(samples) < 2 {
		return CompressionResult{}
	}

	xbar := numkit.Mean(samples)
	sigma := numkit.SampleStdDev(samples)
	n := float64(len(samples))
	meanBound := xbar - numkit.Z995*sigma/math.Sqrt(n)

	// compressionMu is decreasing in p; negate both sides so the search
	// sees a non-decreasing function and finds the crossing p where
	// compressionMu(p) == meanBound.
	p, ok := numkit.MonotonicBinarySearch(1e-12, 1-1e-12, -meanBound, 1e-10, 200, func(p float64) float64 {
		return -compressionMu(p)
	})
	if p <= 0 {
		p = 1e-12
	}
	if p >= 1 {
		p = 1 - 1e-12
	}

	return CompressionResult{
		Done:      true,
		XBar:      xbar,
		Sigma:     sigma,
		L:         len(samples),
		P:         p,
		MeanBound: meanBound,
		Converged: ok,
		Entropy:   -numkit.Log2(p),
	}
}

// windowKey packs a b-length window of symbols (10 low bits of each,
// b*10 <= 64) into a single comparable key for the last-seen map.
func windowKey(window []uint16) uint64 {
	var key uint64
	for _, v := range window {
		key = key<<10 | uint64(v&0x3ff)
	}
	return key
}

// compressionMu is the delta-method approximation of E[log2(D)] for a
// geometric(p) waiting time D: E[D] = 1/p, Var[D] = (1-p)/p^2, and a
// first-order Taylor expansion of log2 around E[D] gives
// E[log2 D] ≈ log2(E[D]) - Var[D] / (2 * E[D]^2 * ln2).
func compressionMu(p float64) float64 {
	if p <= 0 {
		return math.Inf(1)
	}
	if p >= 1 {
		return 0
	}
	return -numkit.Log2(p) - (1-p)/(2*math.Ln2)
}
