package battery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatingSamples(n, period int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = uint16(i % period)
	}
	return out
}

func constantSamples(n int) []uint16 {
	out := make([]uint16, n)
	return out
}

func TestRunRejectsEmptyInput(t *testing.T) {
	_, err := Run(DefaultConfig(), nil, 8, nil)
	assert.True(t, errors.Is(err, ErrInputMalformed))
}

func TestRunRejectsParameterBootstrapWithTooFewBlocks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootstrapParams = true
	cfg.BlockSize = 100
	cfg.BootstrapRounds = 10
	samples := repeatingSamples(1000, 4)
	_, err := Run(cfg, samples, 8, nil)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestRunOnConstantDataGivesMinimalEntropy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootstrapRounds = 50
	cfg.BlockSize = 0
	samples := constantSamples(2000)
	result, err := Run(cfg, samples, 8, nil)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
	assert.InDelta(t, 0, result.AssessedMinEntropy, 1e-6)
	assert.GreaterOrEqual(t, result.AssessedMinEntropy, 0.0)
	assert.LessOrEqual(t, result.AssessedMinEntropy, float64(8))
}

func TestRunMinEntropyIsClippedToBitWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootstrapRounds = 50
	cfg.BlockSize = 0
	samples := repeatingSamples(4000, 251)
	result, err := Run(cfg, samples, 8, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.AssessedMinEntropy, 8.0)
	assert.GreaterOrEqual(t, result.AssessedMinEntropy, 0.0)
}

func TestRunAssessedEntropyIsMinOfBlockMinima(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootstrapRounds = 50
	cfg.BlockSize = 500
	samples := append(repeatingSamples(500, 199), constantSamples(500)...)
	result, err := Run(cfg, samples, 8, nil)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 2)

	minBlock := result.Blocks[0].MinEntropy
	for _, br := range result.Blocks[1:] {
		if br.MinEntropy < minBlock {
			minBlock = br.MinEntropy
		}
	}
	assert.LessOrEqual(t, result.AssessedMinEntropy, minBlock+1e-9)
}

func TestRunPopulatesHealthTestResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootstrapRounds = 50
	cfg.BlockSize = 0
	cfg.APTWindow = 64
	samples := repeatingSamples(2000, 211)
	result, err := Run(cfg, samples, 8, nil)
	require.NoError(t, err)
	assert.Greater(t, result.RCT.Cutoff, 0)
	assert.Greater(t, result.APT.Cutoff, 0)
	assert.Greater(t, result.CrossRCT.Cutoff, 0)
}

func TestRunProducesNonZeroDurationAndRunID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootstrapRounds = 20
	cfg.BlockSize = 0
	samples := repeatingSamples(1000, 7)
	result, err := Run(cfg, samples, 8, nil)
	require.NoError(t, err)
	assert.NotEqual(t, result.RunID.String(), "")
	assert.GreaterOrEqual(t, result.Duration.Nanoseconds(), int64(0))
}
