package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateSingleSample(t *testing.T) {
	s := []uint16{77}
	r := Translate(s)
	assert.Equal(t, 1, r.K)
	assert.Equal(t, uint16(0), s[0])
}

func TestTranslateAllZero(t *testing.T) {
	s := make([]uint16, 1000)
	r := Translate(s)
	assert.Equal(t, 1, r.K)
	for _, v := range s {
		assert.Equal(t, uint16(0), v)
	}
}

func TestTranslateAlreadyDense(t *testing.T) {
	s := []uint16{0, 1, 2, 3, 0, 1, 2, 3}
	r := Translate(append([]uint16{}, s...))
	assert.Equal(t, 4, r.K)
}

func TestTranslateIsOrderPreservingRelabel(t *testing.T) {
	// sparse alphabet {5, 10, 250} must map to {0, 1, 2} in that order.
	s := []uint16{250, 5, 10, 5, 250, 10}
	r := Translate(s)
	assert.Equal(t, 3, r.K)
	assert.Equal(t, []uint16{2, 0, 1, 0, 2, 1}, s)
}

func TestTranslateIdempotent(t *testing.T) {
	s := []uint16{250, 5, 10, 5, 250, 10, 10, 10}
	Translate(s)
	before := append([]uint16{}, s...)
	r2 := Translate(s)
	assert.Equal(t, before, s)
	assert.False(t, r2.Translated)
}

func TestTranslateForSortedDistinctIsRankMap(t *testing.T) {
	s := []uint16{3, 7, 19, 40}
	Translate(s)
	assert.Equal(t, []uint16{0, 1, 2, 3}, s)
}

func TestTranslateMedianEvenLength(t *testing.T) {
	s := []uint16{1, 2, 3, 4}
	r := Translate(s)
	// ranks at floor((4-1)/2)=1 and ceil(3/2)=2 -> values at sorted
	// positions 1 and 2 (0-based) after relabeling -> (1+2)/2 = 1.5
	assert.InDelta(t, 1.5, r.Median, 1e-9)
}

func TestTranslateMedianOddLength(t *testing.T) {
	s := []uint16{10, 20, 30}
	r := Translate(s)
	assert.InDelta(t, 1.0, r.Median, 1e-9)
}

func TestTranslateLongInputUsesHistogramPath(t *testing.T) {
	s := make([]uint16, 2_000_000)
	for i := range s {
		s[i] = uint16(i % 4)
	}
	r := Translate(s)
	assert.True(t, r.UsedHistogram)
	assert.Equal(t, 4, r.K)
}

func TestTranslateSmallLengthPrefersSortPath(t *testing.T) {
	s := []uint16{9, 1, 1, 9, 5}
	r := Translate(s)
	assert.False(t, r.UsedHistogram)
	assert.Equal(t, 3, r.K)
}
