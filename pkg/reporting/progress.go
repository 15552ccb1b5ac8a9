package reporting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OutputFormat represents the progress output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// BlockProgress is one block's contribution to a running battery
// invocation, reported as each block finishes.
type BlockProgress struct {
	Index      int           `json:"index"`
	Length     int           `json:"length"`
	K          int           `json:"k"`
	MinEntropy float64       `json:"min_entropy"`
	Elapsed    time.Duration `json:"elapsed"`
}

// ProgressReporter reports battery run progress as blocks complete and
// prints the final summary.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
	start  time.Time
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{format: format, logger: logger, start: time.Now()}
}

// ReportBlock reports a single completed block.
func (pr *ProgressReporter) ReportBlock(bp BlockProgress) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "block_completed",
			"block":     bp,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("block %4d | k=%-4d len=%-10d min-entropy=%.6f | elapsed %s\n",
			bp.Index, bp.K, bp.Length, bp.MinEntropy, bp.Elapsed.Round(time.Millisecond))
	default:
		fmt.Printf("[BLOCK %d] k=%d len=%d min-entropy=%.6f\n", bp.Index, bp.K, bp.Length, bp.MinEntropy)
	}
}

// ReportHealthTestFailure reports a continuous health-test failure at
// the given sample index.
func (pr *ProgressReporter) ReportHealthTestFailure(test string, failedAtIdx int) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":         "health_test_failure",
			"test":          test,
			"failed_at_idx": failedAtIdx,
			"timestamp":     time.Now(),
		})
		fmt.Println(string(data))
	default:
		fmt.Printf("[HEALTH] %s failed at sample %d\n", test, failedAtIdx)
	}
}

// ReportRunSummary reports the final summary of a completed run.
func (pr *ProgressReporter) ReportRunSummary(run RunSummary) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "run_completed",
			"run":       run,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		pr.printTUISummary(run)
	default:
		pr.printTextSummary(run)
	}
}

func (pr *ProgressReporter) printTUISummary(run RunSummary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("   MIN-ENTROPY ASSESSMENT: %s\n", run.InputLabel)
	fmt.Println(strings.Repeat("=", 80))
	status := "HEALTH TESTS PASSED"
	if !run.HealthTestsPassed {
		status = "HEALTH TESTS FAILED"
	}
	fmt.Printf("Run ID:     %s\n", run.RunID)
	fmt.Printf("Blocks:     %d\n", run.BlockCount)
	fmt.Printf("Duration:   %s\n", run.Duration)
	fmt.Printf("Status:     %s\n", status)
	fmt.Printf("Assessed min entropy = %.17g bits (bit width %d)\n", run.AssessedMinEntropy, run.BitWidth)
	fmt.Println(strings.Repeat("=", 80))
}

func (pr *ProgressReporter) printTextSummary(run RunSummary) {
	status := "passed"
	if !run.HealthTestsPassed {
		status = "failed"
	}
	fmt.Printf("\n[SUMMARY] %s: %d blocks, health tests %s, assessed min entropy = %.17g\n",
		run.InputLabel, run.BlockCount, status, run.AssessedMinEntropy)
}

// clearLine clears the current terminal line (ANSI).
func (pr *ProgressReporter) clearLine() {
	fmt.Print("\033[K")
}
