package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiMCWPredictsConstantSequencePerfectly(t *testing.T) {
	s := make([]uint16, 2000)
	p := NewMultiMCW(2)
	r := Run(p, s, 2)
	require.True(t, r.Done)
	assert.Equal(t, r.N, r.C)
	assert.InDelta(t, 0, r.Entropy, 1e-6)
}

func TestLagPredictsPeriodicSequence(t *testing.T) {
	s := make([]uint16, 0, 2000)
	for i := 0; i < 2000; i++ {
		s = append(s, uint16(i%3))
	}
	p := NewLag()
	r := Run(p, s, 3)
	require.True(t, r.Done)
	assert.Greater(t, r.PGlobal, 0.9)
}

func TestMultiMMCPredictsRepeatedPattern(t *testing.T) {
	pattern := []uint16{1, 2, 3}
	s := make([]uint16, 0, 3000)
	for i := 0; i < 1000; i++ {
		s = append(s, pattern...)
	}
	p := NewMultiMMC(4)
	defer p.Close()
	r := Run(p, s, 4)
	require.True(t, r.Done)
	assert.Greater(t, r.PGlobal, 0.5)
}

func TestLZ78YPredictsRepeatedPattern(t *testing.T) {
	pattern := []uint16{5, 6, 7, 8}
	s := make([]uint16, 0, 4000)
	for i := 0; i < 500; i++ {
		s = append(s, pattern...)
	}
	p := NewLZ78Y(9)
	defer p.Close()
	r := Run(p, s, 9)
	require.True(t, r.Done)
	assert.Greater(t, r.PGlobal, 0.3)
}

func TestAccountingOnAllCorrectGivesZeroEntropy(t *testing.T) {
	r := Accounting(1000, 1000, 1000, 2)
	require.True(t, r.Done)
	assert.InDelta(t, 0, r.Entropy, 1e-6)
}

func TestAccountingNoPredictionsNotDone(t *testing.T) {
	r := Accounting(0, 0, 0, 2)
	assert.False(t, r.Done)
}
