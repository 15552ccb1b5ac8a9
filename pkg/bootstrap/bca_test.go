package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestRunOnConstantDataReturnsThatConstant(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = 5.0
	}
	cfg := Config{Rounds: 100, Confidence: 0.99, ThreadCount: 2}
	r := Run(cfg, data, mean, 42)
	assert.InDelta(t, 5.0, r.PointEstimate, 1e-9)
	assert.InDelta(t, 5.0, r.LowerBound, 1e-6)
}

func TestRunLowerBoundBelowPointEstimateOnVariableData(t *testing.T) {
	data := make([]float64, 300)
	for i := range data {
		data[i] = float64(i % 10)
	}
	cfg := Config{Rounds: 500, Confidence: 0.99, ThreadCount: 4}
	r := Run(cfg, data, mean, 7)
	require.NotEmpty(t, r.Resamples)
	assert.LessOrEqual(t, r.LowerBound, r.PointEstimate+1e-6)
}

func TestRunIsReproducibleForFixedSeed(t *testing.T) {
	data := make([]float64, 150)
	for i := range data {
		data[i] = float64(i%7) * 1.5
	}
	cfg := Config{Rounds: 200, Confidence: 0.99, ThreadCount: 3}
	r1 := Run(cfg, data, mean, 123)
	r2 := Run(cfg, data, mean, 123)
	assert.Equal(t, r1.LowerBound, r2.LowerBound)
	assert.Equal(t, r1.Resamples, r2.Resamples)
}

func TestRunEmptyInput(t *testing.T) {
	r := Run(DefaultConfig(), nil, mean, 1)
	assert.Equal(t, Result{}, r)
}

func TestStandardNormalQuantileMatchesKnownPoints(t *testing.T) {
	assert.InDelta(t, 0, standardNormalQuantile(0.5), 1e-6)
	assert.InDelta(t, 1.959964, standardNormalQuantile(0.975), 1e-5)
	assert.InDelta(t, -1.959964, standardNormalQuantile(0.025), 1e-5)
}
