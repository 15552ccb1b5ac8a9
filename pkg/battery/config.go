package battery

import (
	"math"
	"runtime"
)

// Config is the configuration record the orchestrator is constructed
// from once and passes by immutable reference into every operation, per
// the configuration table: verbosity, bootstrap parameters, health-test
// cutoffs, and the Markov probability-relevance cutoff.
type Config struct {
	Verbose bool

	BootstrapParams     bool // enable parameter-level bootstrap (requires >= 200 blocks)
	BootstrapRounds     int  // B, default 15000
	BootstrapConfidence float64

	ThreadCount   int // bootstrap worker count, defaults to ceil(1.3*cpus)
	Deterministic bool
	Seed          uint64

	HealthAlpha  float64 // false-positive rate for RCT/APT cutoff derivation
	APTWindow    int
	ProbCutoff   float64 // minimum per-symbol probability relevant to Markov

	BlockSize int // L, samples per block; 0 means "treat the whole input as one block"
}

// DefaultConfig returns the battery's documented defaults.
func DefaultConfig() Config {
	return Config{
		BootstrapRounds:     15000,
		BootstrapConfidence: 0.99,
		ThreadCount:         defaultThreadCount(),
		HealthAlpha:         1e-6,
		APTWindow:           512,
		ProbCutoff:          1.0 / math.Pow(2, 28),
		BlockSize:           1_000_000,
	}
}

// defaultThreadCount is ceil(1.3 * NumCPU), the documented concurrency
// default for the bootstrap workers.
func defaultThreadCount() int {
	n := int(math.Ceil(1.3 * float64(runtime.NumCPU())))
	if n < 1 {
		n = 1
	}
	return n
}
