package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/larkspur-labs/minentropy/pkg/reporting"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Args:  cobra.NoArgs,
	Short: "List or render previously persisted battery runs",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("run-id", "", "render the given run in the --format format instead of listing")
	reportCmd.Flags().String("format", "html", "render format when --run-id is given (html, text)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelInfo, Format: reporting.LogFormatText, Output: os.Stdout})
	storage, err := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	runID, _ := cmd.Flags().GetString("run-id")
	format, _ := cmd.Flags().GetString("format")

	if runID == "" {
		listed, err := storage.ListRuns()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		for _, l := range listed {
			status := "pass"
			if !l.HealthTestsPassed {
				status = "fail"
			}
			fmt.Printf("%s  %-30s  entropy=%.6f  health=%s  %s\n",
				l.RunID, l.InputLabel, l.AssessedMinEntropy, status, l.StartTime.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	run, err := storage.FindRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to find run: %w", err)
	}
	formatter := reporting.NewFormatter(logger)
	path := reporting.GetReportPath(run, reporting.ReportFormat(format), cfg.Reporting.OutputDir)
	if err := formatter.GenerateReport(run, reporting.ReportFormat(format), path); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	fmt.Printf("report written to %s\n", path)
	return nil
}
