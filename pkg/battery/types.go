package battery

import (
	"time"

	"github.com/google/uuid"

	"github.com/larkspur-labs/minentropy/pkg/estimator"
	"github.com/larkspur-labs/minentropy/pkg/healthtest"
	"github.com/larkspur-labs/minentropy/pkg/predictor"
)

// BlockResult is every estimator's output for a single translated block,
// per the data model's "Block result" record.
type BlockResult struct {
	K      int
	Length int

	MCV         estimator.MCVResult
	Collision   estimator.CollisionResult
	Markov      estimator.MarkovResult
	Compression estimator.CompressionResult
	SuffixGroup estimator.SuffixGroupResult

	MultiMCW predictor.Result
	Lag      predictor.Result
	MultiMMC predictor.Result
	LZ78Y    predictor.Result

	MinEntropy float64 // min-of-minima over this block's estimators
}

// Result is the battery's top-level result envelope: the per-block
// results, the bootstrap confidence bounds, health-test outcomes, a
// RunID for correlating a run across logs/reports, and timing metadata.
type Result struct {
	RunID     uuid.UUID
	StartedAt time.Time
	Duration  time.Duration

	Blocks []BlockResult

	EntropyLevelLowerBound   float64
	ParameterLevelLowerBound float64 // zero value means not run
	ParameterLevelRun        bool

	RCT      healthtest.RCTResult
	APT      healthtest.APTResult
	CrossRCT healthtest.CrossRCTResult

	AssessedMinEntropy float64 // final min-of-minima, clipped to [0, bitWidth]
	BitWidth           int
}

// NewResult allocates a Result with a fresh RunID and start timestamp.
func NewResult(startedAt time.Time) Result {
	return Result{RunID: uuid.New(), StartedAt: startedAt}
}
