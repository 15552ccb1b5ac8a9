package sarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForceSuffixLess compares suffixes of the augmented string
// (terminator appended) the slow, obviously-correct way, for cross
// checking Build's output on small inputs.
func bruteForceSuffixLess(s []uint16, i, j int) bool {
	n := len(s)
	for {
		var vi, vj int
		if i >= n {
			vi = -1
		} else {
			vi = int(s[i])
		}
		if j >= n {
			vj = -1
		} else {
			vj = int(s[j])
		}
		if vi != vj {
			return vi < vj
		}
		if i >= n && j >= n {
			return false
		}
		i++
		j++
	}
}

func TestBuildSuffixArrayIsSortedPermutation(t *testing.T) {
	s := []uint16{2, 1, 3, 1, 2, 1, 3}
	n := len(s)
	a := Build(s)

	require.Len(t, a.SA, n+1)
	assert.Equal(t, n, a.SA[0])

	seen := make([]bool, n+1)
	for _, idx := range a.SA {
		require.False(t, seen[idx], "SA must be a permutation (no duplicates)")
		seen[idx] = true
	}

	for i := 1; i < len(a.SA); i++ {
		assert.True(t, bruteForceSuffixLess(s, a.SA[i-1], a.SA[i]),
			"suffix at SA[%d] must be lexicographically less than SA[%d]", i-1, i)
	}
}

func TestLCPConventionAndCorrectness(t *testing.T) {
	s := []uint16{1, 2, 1, 2, 1, 2, 3}
	a := Build(s)
	assert.Equal(t, -1, a.LCP[0])

	for i := 1; i < len(a.SA); i++ {
		want := trueLCP(s, a.SA[i-1], a.SA[i])
		assert.Equal(t, want, a.LCP[i], "LCP mismatch at rank %d", i)
	}
}

func trueLCP(s []uint16, i, j int) int {
	n := len(s)
	h := 0
	for {
		var vi, vj int
		iValid, jValid := i+h < n, j+h < n
		if !iValid || !jValid {
			break
		}
		vi = int(s[i+h])
		vj = int(s[j+h])
		if vi != vj {
			break
		}
		h++
	}
	return h
}

func TestBuildSingleSymbol(t *testing.T) {
	s := []uint16{0, 0, 0, 0}
	a := Build(s)
	require.Len(t, a.SA, 5)
	assert.Equal(t, 4, a.SA[0])
	// all real suffixes are identical runs of 0s of decreasing length,
	// so after the terminator they must appear longest-last.
	assert.Equal(t, 3, a.SA[1])
	assert.Equal(t, 2, a.SA[2])
	assert.Equal(t, 1, a.SA[3])
	assert.Equal(t, 0, a.SA[4])
}

func TestBuildLenMatchesInput(t *testing.T) {
	s := []uint16{5, 4, 3, 2, 1}
	a := Build(s)
	assert.Equal(t, len(s), a.Len())
}
