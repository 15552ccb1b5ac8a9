package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.GreaterOrEqual(t, cfg.ThreadCount, 1)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Bootstrap.Rounds, cfg.Bootstrap.Rounds)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Bootstrap.Params = true
	cfg.Seed = 42

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Bootstrap.Params)
	assert.Equal(t, uint64(42), loaded.Seed)
}

func TestValidateRejectsBadThreadCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThreadCount = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadConfidence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bootstrap.Confidence = 1.5
	assert.Error(t, cfg.Validate())
}

func TestToBatteryConfigCarriesFieldsThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.BlockSize = 123
	bc := cfg.ToBatteryConfig()
	assert.Equal(t, uint64(7), bc.Seed)
	assert.Equal(t, 123, bc.BlockSize)
}

func TestSeedEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))
	os.Setenv("MINENTROPY_SEED", "99")
	defer os.Unsetenv("MINENTROPY_SEED")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.True(t, cfg.Deterministic)
}
