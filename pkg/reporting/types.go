package reporting

import (
	"time"

	"github.com/larkspur-labs/minentropy/pkg/battery"
)

// RunSummary is the persisted, JSON-serializable form of a battery
// run: the full battery.Result plus enough metadata to locate and
// describe it later without re-running the battery.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	InputLabel string    `json:"input_label"`
	StartTime  time.Time `json:"start_time"`
	Duration   string    `json:"duration"`

	AssessedMinEntropy float64 `json:"assessed_min_entropy"`
	BitWidth           int     `json:"bit_width"`
	BlockCount         int     `json:"block_count"`

	HealthTestsPassed bool `json:"health_tests_passed"`

	Result battery.Result `json:"result"`
}

// NewRunSummary builds the persisted summary from a completed battery
// run.
func NewRunSummary(inputLabel string, result battery.Result) RunSummary {
	return RunSummary{
		RunID:              result.RunID.String(),
		InputLabel:         inputLabel,
		StartTime:          result.StartedAt,
		Duration:           result.Duration.String(),
		AssessedMinEntropy: result.AssessedMinEntropy,
		BitWidth:           result.BitWidth,
		BlockCount:         len(result.Blocks),
		HealthTestsPassed:  !result.RCT.Failed && !result.APT.Failed && !result.CrossRCT.Failed,
		Result:             result,
	}
}

// ListedRun is the lightweight record Storage.ListRuns returns, without
// loading every block's full estimator output.
type ListedRun struct {
	RunID              string    `json:"run_id"`
	InputLabel         string    `json:"input_label"`
	StartTime          time.Time `json:"start_time"`
	AssessedMinEntropy float64   `json:"assessed_min_entropy"`
	HealthTestsPassed  bool      `json:"health_tests_passed"`
	Filepath           string    `json:"filepath"`
}
