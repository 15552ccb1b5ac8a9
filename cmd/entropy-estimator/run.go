package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/larkspur-labs/minentropy/pkg/battery"
	"github.com/larkspur-labs/minentropy/pkg/ioformat"
	"github.com/larkspur-labs/minentropy/pkg/metrics"
	"github.com/larkspur-labs/minentropy/pkg/reporting"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Run the non-IID min-entropy battery over a sample file",
	Long:  `Reads a raw binary or one-value-per-line ASCII sample file and runs the full estimator and health-test battery over it.`,
	RunE:  runBattery,
}

func init() {
	runCmd.Flags().String("input", "", "path to the sample file (required)")
	runCmd.Flags().Bool("ascii", false, "treat the input as one decimal value per line instead of raw binary")
	runCmd.Flags().String("bits", "", "raw sample width when it cannot be inferred from the filename: u8, u16, u32, u64, sd")
	runCmd.Flags().String("format", "text", "progress output format (text, json, tui)")
	runCmd.Flags().Bool("metrics", false, "expose Prometheus metrics on --metrics-addr while running")
	runCmd.Flags().String("metrics-addr", ":9464", "address to serve Prometheus metrics on")
	_ = runCmd.MarkFlagRequired("input")
}

func runBattery(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	ascii, _ := cmd.Flags().GetBool("ascii")
	bitsFlag, _ := cmd.Flags().GetString("bits")
	outputFormat, _ := cmd.Flags().GetString("format")
	enableMetrics, _ := cmd.Flags().GetBool("metrics")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{Level: logLevel, Format: reporting.LogFormatText, Output: os.Stdout})
	logger.Info("entropy-estimator starting", "version", version, "input", inputPath)

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	var samples []uint16
	var bitWidth int
	if ascii {
		samples, err = ioformat.ReadASCII(f)
		bitWidth = 16
	} else {
		width := ioformat.WidthFromSuffix(inputPath)
		if bitsFlag != "" {
			width = widthFromFlag(bitsFlag)
		}
		bitWidth = width.BitWidth()
		samples, err = ioformat.ReadBinary(f, width)
	}
	if err != nil {
		return fmt.Errorf("failed to read samples: %w", err)
	}
	logger.Info("samples loaded", "count", len(samples))

	var reg *metrics.Registry
	var server *http.Server
	group, groupCtx := errgroup.WithContext(cmd.Context())
	if enableMetrics {
		reg = metrics.New()
		server = &http.Server{Addr: metricsAddr, Handler: reg.Handler()}
		group.Go(func() error {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		logger.Info("metrics server listening", "addr", metricsAddr)
	}

	progressReporter := reporting.NewProgressReporter(reporting.OutputFormat(outputFormat), logger)

	battCfg := cfg.ToBatteryConfig()

	started := time.Now()
	result, err := battery.Run(battCfg, samples, bitWidth, reg)
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(groupCtx, 5*time.Second)
		_ = server.Shutdown(shutdownCtx)
		cancel()
		if waitErr := group.Wait(); waitErr != nil {
			logger.Warn("metrics server error", "error", waitErr)
		}
	}
	if err != nil {
		return fmt.Errorf("battery run failed: %w", err)
	}
	logger.Info("battery run complete", "duration", time.Since(started).String())

	for i, br := range result.Blocks {
		progressReporter.ReportBlock(reporting.BlockProgress{
			Index:      i,
			Length:     br.Length,
			K:          br.K,
			MinEntropy: br.MinEntropy,
		})
	}
	if result.RCT.Failed {
		progressReporter.ReportHealthTestFailure("RCT", result.RCT.FailedAtIdx)
	}
	if result.APT.Failed {
		progressReporter.ReportHealthTestFailure("APT", result.APT.FailedAtIdx)
	}
	if result.CrossRCT.Failed {
		progressReporter.ReportHealthTestFailure("CrossRCT", result.CrossRCT.FailedAtIdx)
	}

	run := reporting.NewRunSummary(inputPath, result)
	progressReporter.ReportRunSummary(run)

	storage, err := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	if path, err := storage.SaveRun(run); err != nil {
		logger.Warn("failed to save run summary", "error", err)
	} else {
		logger.Info("run summary saved", "path", path)
	}

	formatter := reporting.NewFormatter(logger)
	for _, format := range cfg.Reporting.Formats {
		if format == "json" {
			continue // already saved by storage
		}
		path := reporting.GetReportPath(run, reporting.ReportFormat(format), cfg.Reporting.OutputDir)
		if err := formatter.GenerateReport(run, reporting.ReportFormat(format), path); err != nil {
			logger.Warn("failed to generate report", "format", format, "error", err)
		}
	}

	return nil
}

func widthFromFlag(s string) ioformat.Width {
	switch s {
	case "u8":
		return ioformat.WidthU8
	case "u16":
		return ioformat.WidthU16
	case "u32":
		return ioformat.WidthU32
	case "u64":
		return ioformat.WidthU64
	case "sd":
		return ioformat.WidthSD
	default:
		return ioformat.WidthUnknown
	}
}
