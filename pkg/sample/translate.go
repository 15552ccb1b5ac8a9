// Package sample implements the symbol-translation layer: normalizing an
// arbitrary non-negative integer alphabet into a dense {0,...,k-1}
// relabeling in place, while reporting the translated median and
// alphabet size k.
package sample

import (
	"math"
	"sort"
)

// Result carries the outputs of Translate beyond the rewritten slice
// itself.
type Result struct {
	K           int     // alphabet size after relabeling
	Median      float64 // translated median (possibly a midpoint of two ranks)
	Translated  bool    // whether any relabeling actually occurred
	UsedHistogram bool  // which strategy was selected, for telemetry
}

// Translate rewrites s in place into a dense alphabet {0,...,k-1}
// preserving order, and returns the resulting k, the translated median,
// and whether a translation actually occurred. It never fails for
// len(s) >= 1.
func Translate(s []uint16) Result {
	L := len(s)
	if L == 0 {
		return Result{K: 0}
	}

	if L == 1 {
		changed := s[0] != 0
		s[0] = 0
		return Result{K: 1, Median: 0, Translated: changed}
	}

	maxVal := s[0]
	for _, v := range s[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	// Histogram relabelling is cheaper than a comparison sort when
	// 2(L+k) < L*(1.39*log2(L) + log2(min(k,L))) and log2(k) < 28. k here
	// is the *upper bound* maxVal+1 before we know how many distinct
	// values actually appear, which is all that's available at decision
	// time.
	kUpper := int(maxVal) + 1
	useHistogram := false
	if kUpper > 0 && math.Log2(float64(kUpper)) < 28 {
		lhs := 2.0 * (float64(L) + float64(kUpper))
		minKL := float64(kUpper)
		if L < kUpper {
			minKL = float64(L)
		}
		rhs := float64(L) * (1.39*math.Log2(float64(L)) + math.Log2(minKL))
		if lhs < rhs {
			useHistogram = true
		}
	}

	if useHistogram {
		return translateHistogram(s, kUpper)
	}
	return translateSort(s)
}

func translateHistogram(s []uint16, kUpper int) Result {
	count := make([]int32, kUpper)
	for _, v := range s {
		count[v]++
	}

	rewrite := make([]uint16, kUpper)
	var next uint16
	present := make([]bool, kUpper)
	for v := 0; v < kUpper; v++ {
		if count[v] > 0 {
			rewrite[v] = next
			present[v] = true
			next++
		}
	}
	k := int(next)

	changed := false
	for i, v := range s {
		nv := rewrite[v]
		if nv != v {
			changed = true
		}
		s[i] = nv
	}

	L := len(s)
	lowRank := (L - 1) / 2
	highRank := L / 2 // ceil((L-1)/2) == L/2 for integer L>=1 in this form
	median := histogramMedian(count, lowRank, highRank)

	return Result{K: k, Median: median, Translated: changed, UsedHistogram: true}
}

// histogramMedian walks the cumulative count array to find the translated
// labels at the lowRank and highRank order statistics (0-based) without
// sorting; the label of a present value is the number of present values
// below it.
func histogramMedian(count []int32, lowRank, highRank int) float64 {
	var cum int64
	var label, loVal, hiVal float64
	loFound, hiFound := false, false
	for _, c := range count {
		if c == 0 {
			continue
		}
		start := cum
		end := cum + int64(c) - 1
		if !loFound && int64(lowRank) >= start && int64(lowRank) <= end {
			loVal = label
			loFound = true
		}
		if !hiFound && int64(highRank) >= start && int64(highRank) <= end {
			hiVal = label
			hiFound = true
		}
		cum = end + 1
		label++
		if loFound && hiFound {
			break
		}
	}
	return (loVal + hiVal) / 2
}

func translateSort(s []uint16) Result {
	L := len(s)
	sorted := make([]uint16, L)
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	// Build a strictly increasing table of distinct values seen in sorted
	// order: the rank of each value in this table is its translated symbol.
	distinct := make([]uint16, 0, L)
	distinct = append(distinct, sorted[0])
	for i := 1; i < L; i++ {
		if sorted[i] != sorted[i-1] {
			distinct = append(distinct, sorted[i])
		}
	}
	k := len(distinct)

	changed := false
	for i, v := range s {
		idx := sort.Search(k, func(j int) bool { return distinct[j] >= v })
		nv := uint16(idx)
		if nv != v {
			changed = true
		}
		s[i] = nv
	}

	lowRank := (L - 1) / 2
	highRank := L / 2
	loVal := float64(sort.Search(k, func(j int) bool { return distinct[j] >= sorted[lowRank] }))
	hiVal := float64(sort.Search(k, func(j int) bool { return distinct[j] >= sorted[highRank] }))
	median := (loVal + hiVal) / 2

	return Result{K: k, Median: median, Translated: changed, UsedHistogram: false}
}
