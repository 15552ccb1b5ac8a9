package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementThenPredictReturnsMostFrequentSuccessor(t *testing.T) {
	tree := New(8)
	defer tree.Close()

	prior := []int{1, 2}
	tree.Increment(prior, 2, 3, true, true)
	tree.Increment(prior, 2, 3, true, true)
	tree.Increment(prior, 2, 5, true, true)

	found, sym, count := tree.Predict(prior, 2)
	require.True(t, found)
	assert.Equal(t, 3, sym)
	assert.Equal(t, 2, count)
}

func TestPredictTiesBreakToLargestSymbol(t *testing.T) {
	tree := New(8)
	defer tree.Close()

	prior := []int{0}
	tree.Increment(prior, 1, 2, true, true)
	tree.Increment(prior, 1, 6, true, true)

	found, sym, count := tree.Predict(prior, 1)
	require.True(t, found)
	assert.Equal(t, 6, sym)
	assert.Equal(t, 1, count)
}

func TestPredictUnknownContextNotFound(t *testing.T) {
	tree := New(8)
	defer tree.Close()

	tree.Increment([]int{1}, 1, 2, true, true)
	found, _, _ := tree.Predict([]int{5}, 1)
	assert.False(t, found)
}

func TestEmptyContextRootLevel(t *testing.T) {
	tree := New(4)
	defer tree.Close()

	tree.Increment(nil, 0, 3, true, true)
	tree.Increment(nil, 0, 3, true, true)
	tree.Increment(nil, 0, 1, true, true)

	found, sym, count := tree.Predict(nil, 0)
	require.True(t, found)
	assert.Equal(t, 3, sym)
	assert.Equal(t, 2, count)
}

func TestGrowsTableThroughFullModulusSequence(t *testing.T) {
	// k=16 forces several modulus growths (2,4,8,16) as distinct
	// symbols collide at the smaller moduli.
	tree := New(16)
	defer tree.Close()

	for sym := 0; sym < 16; sym++ {
		tree.Increment(nil, 0, sym, true, true)
	}
	for sym := 0; sym < 16; sym++ {
		found, _, count := tree.Predict([]int{}, 0)
		require.True(t, found)
		_ = count
		break
	}
	_ = tree
}

func TestCountLeavesWithoutCreateBranchesSkipsUnknownPrefix(t *testing.T) {
	tree := New(8)
	defer tree.Close()

	// createBranches=false means an unseen prefix must not be recorded.
	branched := tree.Increment([]int{1, 2, 3}, 3, 4, false, true)
	assert.False(t, branched)
	found, _, _ := tree.Predict([]int{1, 2, 3}, 3)
	assert.False(t, found)
}

func TestCloseReleasesWithoutPanic(t *testing.T) {
	tree := New(4)
	tree.Increment([]int{0, 1}, 2, 2, true, true)
	tree.Increment([]int{0, 2}, 2, 3, true, true)
	assert.NotPanics(t, func() { tree.Close() })
}
