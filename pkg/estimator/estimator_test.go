package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCVOnConstantSequenceGivesMinimalEntropy(t *testing.T) {
	s := make([]uint16, 1000)
	r := MCV(s, 1)
	require.True(t, r.Done)
	assert.InDelta(t, 1.0, r.PHat, 1e-9)
	assert.InDelta(t, 0, r.Entropy, 1e-9)
}

func TestMCVOnUniformSequenceGivesHighEntropy(t *testing.T) {
	s := make([]uint16, 4000)
	for i := range s {
		s[i] = uint16(i % 4)
	}
	r := MCV(s, 4)
	require.True(t, r.Done)
	assert.Less(t, r.Entropy, 2.0)
	assert.Greater(t, r.Entropy, 1.0)
}

func TestMCVEmptyInputNotDone(t *testing.T) {
	r := MCV(nil, 0)
	assert.False(t, r.Done)
}

func TestCollisionOnSkewedAlphabetBiasesTowardDominantSymbol(t *testing.T) {
	s := make([]uint16, 2000)
	for i := range s {
		if i%5 == 0 {
			s[i] = 1
		} else {
			s[i] = 0
		}
	}
	r := Collision(s, 2)
	require.True(t, r.Done)
	assert.Greater(t, r.P, 0.0)
	assert.Less(t, r.P, 1.0)
	assert.GreaterOrEqual(t, r.Entropy, 0.0)
}

func TestCollisionShortInputNotDone(t *testing.T) {
	r := Collision([]uint16{0}, 2)
	assert.False(t, r.Done)
}

func TestMarkovOnAlternatingBitsHasCertainCrossTransitions(t *testing.T) {
	bits := make([]uint8, 2000)
	for i := range bits {
		bits[i] = uint8(i % 2)
	}
	r := Markov(bits)
	require.True(t, r.Done)
	assert.InDelta(t, 1.0, r.T[0][1], 0.05)
	assert.InDelta(t, 1.0, r.T[1][0], 0.05)
}

func TestMarkovOnConstantBitsGivesZeroEntropy(t *testing.T) {
	bits := make([]uint8, 500)
	r := Markov(bits)
	require.True(t, r.Done)
	assert.InDelta(t, 0, r.Entropy, 1e-6)
}

func TestCompressionOnPeriodicPatternFindsShortRecurrence(t *testing.T) {
	s := make([]uint16, 5000)
	for i := range s {
		s[i] = uint16(i % 8)
	}
	r := Compression(s)
	require.True(t, r.Done)
	assert.Greater(t, r.Entropy, 0.0)
}

func TestCompressionTooShortNotDone(t *testing.T) {
	r := Compression(make([]uint16, 10))
	assert.False(t, r.Done)
}

func TestTTupleAndLRSOnHighlyRepetitiveBlockFindsLongTuple(t *testing.T) {
	block := make([]uint16, 0, 4000)
	pattern := []uint16{1, 2, 3, 4, 5}
	for i := 0; i < 800; i++ {
		block = append(block, pattern...)
	}
	r := TTupleAndLRS(block)
	require.True(t, r.TTupleDone)
	assert.Greater(t, r.TTuplePMax, 0.0)
	assert.GreaterOrEqual(t, r.LRSPMax, r.TTuplePMax)
}

func TestTTupleAndLRSOnShortBlockNotDone(t *testing.T) {
	r := TTupleAndLRS([]uint16{1})
	assert.False(t, r.TTupleDone)
	assert.False(t, r.LRSDone)
}
