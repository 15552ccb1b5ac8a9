package reporting_test

import (
	"fmt"
	"os"
	"time"

	"github.com/larkspur-labs/minentropy/pkg/battery"
	"github.com/larkspur-labs/minentropy/pkg/reporting"
)

// Example demonstrates the reporting package's logging, storage, and
// formatting surface against a synthetic battery result.
func Example() {
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelInfo,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	logger.Info("battery run starting", "input", "noise-u8.bin")

	storage, err := reporting.NewStorage("./test-reports", 10, logger)
	if err != nil {
		fmt.Printf("failed to create storage: %v\n", err)
		return
	}
	defer os.RemoveAll("./test-reports")

	result := battery.NewResult(time.Now().Add(-2 * time.Second))
	result.BitWidth = 8
	result.AssessedMinEntropy = 6.5
	result.EntropyLevelLowerBound = 6.5
	result.Duration = 2 * time.Second
	run := reporting.NewRunSummary("noise-u8.bin", result)

	path, err := storage.SaveRun(run)
	if err != nil {
		fmt.Printf("failed to save run: %v\n", err)
		return
	}

	listed, err := storage.ListRuns()
	if err != nil {
		fmt.Printf("failed to list runs: %v\n", err)
		return
	}
	fmt.Printf("found %d run(s)\n", len(listed))

	loaded, err := storage.LoadRun(path)
	if err != nil {
		fmt.Printf("failed to load run: %v\n", err)
		return
	}
	fmt.Printf("loaded run for input: %s\n", loaded.InputLabel)

	formatter := reporting.NewFormatter(logger)
	textPath := "./test-reports/report.txt"
	if err := formatter.GenerateReport(run, reporting.ReportFormatText, textPath); err != nil {
		fmt.Printf("failed to generate text report: %v\n", err)
		return
	}
	fmt.Println("text report generated")

	// Output will vary due to timestamps, so it is not checked here.
}
