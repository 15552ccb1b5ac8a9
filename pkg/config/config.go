// Package config loads and validates the battery's ambient configuration:
// YAML on disk, with environment-variable expansion and the
// MINENTROPY_SEED override, producing the immutable pkg/battery.Config
// the orchestrator runs from. Command-line flags do not change its fields.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/larkspur-labs/minentropy/pkg/battery"
)

// Config is the on-disk/CLI-facing configuration record. It mirrors
// pkg/battery.Config field-for-field but keeps YAML tags and documents
// the defaults a fresh install ships with.
type Config struct {
	Verbose bool `yaml:"verbose"`

	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Health    HealthConfig    `yaml:"health"`
	Reporting ReportingConfig `yaml:"reporting"`

	ThreadCount   int    `yaml:"thread_count"`
	Deterministic bool   `yaml:"deterministic"`
	Seed          uint64 `yaml:"seed"`

	BlockSize int `yaml:"block_size"`
}

// BootstrapConfig holds the BCa bootstrap's tunables.
type BootstrapConfig struct {
	Params     bool    `yaml:"params"`
	Rounds     int     `yaml:"rounds"`
	Confidence float64 `yaml:"confidence"`
}

// HealthConfig holds the continuous health tests' tunables.
type HealthConfig struct {
	Alpha      float64 `yaml:"alpha"`
	APTWindow  int     `yaml:"apt_window"`
	ProbCutoff float64 `yaml:"prob_cutoff"`
}

// ReportingConfig controls where and how run results are persisted.
type ReportingConfig struct {
	OutputDir string   `yaml:"output_dir"`
	KeepLastN int      `yaml:"keep_last_n"`
	Formats   []string `yaml:"formats"`
}

// DefaultConfig returns the documented defaults, with ThreadCount set to
// ceil(1.3 * NumCPU) as a baseline for a fresh install.
func DefaultConfig() *Config {
	bc := battery.DefaultConfig()
	return &Config{
		Bootstrap: BootstrapConfig{
			Rounds:     bc.BootstrapRounds,
			Confidence: bc.BootstrapConfidence,
		},
		Health: HealthConfig{
			Alpha:      bc.HealthAlpha,
			APTWindow:  bc.APTWindow,
			ProbCutoff: bc.ProbCutoff,
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
			Formats:   []string{"json", "text"},
		},
		ThreadCount: bc.ThreadCount,
		BlockSize:   bc.BlockSize,
	}
}

// Load reads configuration from a YAML file, falling back to defaults
// when the file does not exist. Environment variables are expanded
// inside the YAML content before parsing, and MINENTROPY_SEED overrides
// the seed field when set (useful for reproducing a run from CI).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if seed := os.Getenv("MINENTROPY_SEED"); seed != "" {
		var parsed uint64
		if _, err := fmt.Sscanf(seed, "%d", &parsed); err == nil {
			cfg.Seed = parsed
			cfg.Deterministic = true
		}
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the battery cannot run
// with.
func (c *Config) Validate() error {
	if c.ThreadCount < 1 {
		return fmt.Errorf("thread_count must be at least 1")
	}
	if c.Bootstrap.Rounds < 1 {
		return fmt.Errorf("bootstrap.rounds must be at least 1")
	}
	if c.Bootstrap.Confidence <= 0 || c.Bootstrap.Confidence >= 1 {
		return fmt.Errorf("bootstrap.confidence must be in (0, 1)")
	}
	if c.Health.Alpha <= 0 || c.Health.Alpha >= 1 {
		return fmt.Errorf("health.alpha must be in (0, 1)")
	}
	if c.Health.APTWindow < 2 {
		return fmt.Errorf("health.apt_window must be at least 2")
	}
	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}
	return nil
}

// ToBatteryConfig converts the on-disk record into the orchestrator's
// immutable configuration.
func (c *Config) ToBatteryConfig() battery.Config {
	return battery.Config{
		Verbose:             c.Verbose,
		BootstrapParams:     c.Bootstrap.Params,
		BootstrapRounds:     c.Bootstrap.Rounds,
		BootstrapConfidence: c.Bootstrap.Confidence,
		ThreadCount:         c.ThreadCount,
		Deterministic:       c.Deterministic,
		Seed:                c.Seed,
		HealthAlpha:         c.Health.Alpha,
		APTWindow:           c.Health.APTWindow,
		ProbCutoff:          c.Health.ProbCutoff,
		BlockSize:           c.BlockSize,
	}
}
