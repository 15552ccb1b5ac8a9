package restart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformMatrix(rows, cols, k int) [][]uint16 {
	data := make([][]uint16, rows)
	for r := 0; r < rows; r++ {
		data[r] = make([]uint16, cols)
		for c := 0; c < cols; c++ {
			data[r][c] = uint16((r*cols + c) % k)
		}
	}
	return data
}

func TestInvertedNearUniformSumsToOne(t *testing.T) {
	dist := InvertedNearUniform(4, 1.5)
	var sum float64
	for _, p := range dist {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRunOnUniformDataDoesNotFailWithBinomialFallback(t *testing.T) {
	data := uniformMatrix(50, 50, 4)
	cfg := Config{Rounds: 0, ThreadCount: 2, Alpha: 1e-6, Simulate: false}
	r := Run(cfg, data, 4, 2.0)
	require.Greater(t, r.BinomialBound, 0)
	assert.False(t, r.Failed)
}

func TestRunOnSkewedDataFlagsWithBinomialFallback(t *testing.T) {
	data := make([][]uint16, 20)
	for r := range data {
		data[r] = make([]uint16, 20)
	}
	cfg := Config{ThreadCount: 2, Alpha: 1e-3, Simulate: false}
	r := Run(cfg, data, 4, 2.0)
	assert.True(t, r.Failed)
}

func TestRunWithSimulationProducesPValuesInRange(t *testing.T) {
	data := uniformMatrix(20, 20, 4)
	cfg := Config{Rounds: 200, ThreadCount: 2, Alpha: 1e-3, Seed: 7, Simulate: true}
	r := Run(cfg, data, 4, 2.0)
	assert.GreaterOrEqual(t, r.SimRowPValue, 0.0)
	assert.LessOrEqual(t, r.SimRowPValue, 1.0)
	assert.GreaterOrEqual(t, r.SimColPValue, 0.0)
	assert.LessOrEqual(t, r.SimColPValue, 1.0)
}

func TestRunEmptyDataNotFailed(t *testing.T) {
	r := Run(DefaultConfig(), nil, 4, 2.0)
	assert.False(t, r.Failed)
}
