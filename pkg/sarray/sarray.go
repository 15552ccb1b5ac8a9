// Package sarray builds a suffix array and LCP array over a block of
// samples. Industrial implementations delegate construction to a
// third-party 8-bit induced-sort library for the common case and fall
// back to a qsort-based construction otherwise; this package implements
// only the portable fallback contract — a suffix-index sort under a
// lexicographic comparator — using prefix doubling (O(n log^2 n)) rather
// than a single qsort call, giving the same SA/LCP contract without
// depending on an external library (see DESIGN.md, Open Questions).
package sarray

import "sort"

// Array holds a suffix array SA and its Kasai LCP array for a block of
// samples, under a "virtual terminator" convention: SA has length L+1,
// SA[0] = L (the terminator, lexicographically smaller than every real
// symbol), and LCP[0] = -1.
type Array struct {
	SA  []int
	LCP []int
	n   int // original sample length L (not L+1)
}

// Len returns L, the number of real samples (excluding the terminator).
func (a *Array) Len() int { return a.n }

// Build constructs the suffix array and LCP array for s (length L, values
// already translated into a dense alphabet). The virtual terminator is
// represented internally as a value one less than any real symbol; it is
// never materialized in s.
func Build(s []uint16) *Array {
	n := len(s)
	// augmented[i] for i in [0, n] where augmented[n] is the terminator.
	// Real symbols are shifted up by one and the terminator is 0, so it
	// compares "less than everything".
	rank := make([]int, n+1)
	for i := 0; i < n; i++ {
		rank[i] = int(s[i]) + 1 // shift so terminator (0) sorts first
	}
	rank[n] = 0

	sa := prefixDoublingSA(rank)
	lcp := kasaiLCP(rank, sa)

	return &Array{SA: sa, LCP: lcp, n: n}
}

// prefixDoublingSA builds a suffix array of the augmented sequence
// (length n+1, values already rank-shifted so the terminator is the
// unique minimum) using the classic doubling algorithm: sort by 1-symbol
// rank, then repeatedly sort by (rank[i], rank[i+k]) pairs doubling k,
// until all ranks are distinct or k >= n+1.
func prefixDoublingSA(seq []int) []int {
	m := len(seq)
	sa := make([]int, m)
	for i := range sa {
		sa[i] = i
	}

	rank := make([]int, m)
	copy(rank, seq)
	tmp := make([]int, m)

	for k := 1; k < m; k *= 2 {
		keyAt := func(i, shift int) int {
			j := i + shift
			if j >= m {
				return -1
			}
			return rank[j]
		}
		sort.Slice(sa, func(i, j int) bool {
			a, b := sa[i], sa[j]
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return keyAt(a, k) < keyAt(b, k)
		})

		tmp[sa[0]] = 0
		for i := 1; i < m; i++ {
			prev, cur := sa[i-1], sa[i]
			same := rank[prev] == rank[cur] && keyAt(prev, k) == keyAt(cur, k)
			if same {
				tmp[cur] = tmp[prev]
			} else {
				tmp[cur] = tmp[prev] + 1
			}
		}
		copy(rank, tmp)

		if rank[sa[m-1]] == m-1 {
			break // all ranks distinct, fully sorted
		}
	}
	return sa
}

// kasaiLCP computes the LCP array in O(n) from the suffix array and the
// per-position rank (inverse permutation of SA). LCP[0] = -1 by the
// virtual-terminator convention above.
func kasaiLCP(seq []int, sa []int) []int {
	m := len(seq)
	rankOf := make([]int, m)
	for i, p := range sa {
		rankOf[p] = i
	}

	lcp := make([]int, m)
	lcp[0] = -1

	h := 0
	for i := 0; i < m; i++ {
		if rankOf[i] == 0 {
			h = 0
			continue
		}
		j := sa[rankOf[i]-1]
		for i+h < m && j+h < m && seq[i+h] == seq[j+h] {
			h++
		}
		lcp[rankOf[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}
