package reporting

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/larkspur-labs/minentropy/pkg/battery"
)

// ReportFormat represents the report output format.
type ReportFormat string

const (
	ReportFormatHTML ReportFormat = "html"
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
)

// Formatter renders a completed battery run as the textual estimator
// report described by the external interface (§6) or as an HTML summary.
type Formatter struct {
	logger *Logger
}

// NewFormatter creates a new report formatter.
func NewFormatter(logger *Logger) *Formatter {
	return &Formatter{logger: logger}
}

// GenerateReport writes run in the given format to outputPath.
func (f *Formatter) GenerateReport(run RunSummary, format ReportFormat, outputPath string) error {
	switch format {
	case ReportFormatHTML:
		return f.generateHTMLReport(run, outputPath)
	case ReportFormatText:
		return f.generateTextReport(run, outputPath)
	case ReportFormatJSON:
		return fmt.Errorf("JSON format is automatically saved by storage")
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteText writes the literal per-estimator / assessed-min-entropy
// report directly to w, in the exact line shapes the external interface
// specifies: one "Literal <Estimator> Estimate: min entropy = <d17>" line per estimator
// that produced a result, for the last processed block (the
// representative block when the whole input was run as one block),
// followed by the bootstrap bounds and the final assessed value.
func (f *Formatter) WriteText(w *bytes.Buffer, result battery.Result) {
	if len(result.Blocks) == 0 {
		fmt.Fprintln(w, "Assessed min entropy = 0")
		return
	}
	br := result.Blocks[len(result.Blocks)-1]

	line := func(done bool, name string, entropy float64) {
		if !done {
			return
		}
		fmt.Fprintf(w, "Literal %s Estimate: min entropy = %.17g\n", name, entropy)
	}
	line(br.MCV.Done, "Most Common Value", br.MCV.Entropy)
	line(br.Collision.Done, "Collision", br.Collision.Entropy)
	line(br.Markov.Done, "Markov", br.Markov.Entropy)
	line(br.Compression.Done, "Compression", br.Compression.Entropy)
	line(br.SuffixGroup.TTupleDone, "t-Tuple", br.SuffixGroup.TTupleEntropy)
	line(br.SuffixGroup.LRSDone, "LRS", br.SuffixGroup.LRSEntropy)
	line(br.MultiMCW.Done, "MultiMCW Prediction", br.MultiMCW.Entropy)
	line(br.Lag.Done, "Lag Prediction", br.Lag.Entropy)
	line(br.MultiMMC.Done, "MultiMMC Prediction", br.MultiMMC.Entropy)
	line(br.LZ78Y.Done, "LZ78Y Prediction", br.LZ78Y.Entropy)

	fmt.Fprintf(w, "Entropy-level bootstrap bound = %.17g\n", result.EntropyLevelLowerBound)
	if result.ParameterLevelRun {
		fmt.Fprintf(w, "Parameter-level bootstrap bound = %.17g\n", result.ParameterLevelLowerBound)
	}
	fmt.Fprintf(w, "Assessed min entropy = %.17g\n", result.AssessedMinEntropy)
}

func (f *Formatter) generateTextReport(run RunSummary, outputPath string) error {
	var buf bytes.Buffer

	buf.WriteString(strings.Repeat("=", 80) + "\n")
	buf.WriteString("   MIN-ENTROPY ASSESSMENT REPORT\n")
	buf.WriteString(strings.Repeat("=", 80) + "\n\n")

	buf.WriteString("RUN SUMMARY\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&buf, "Run ID:       %s\n", run.RunID)
	fmt.Fprintf(&buf, "Input:        %s\n", run.InputLabel)
	fmt.Fprintf(&buf, "Start Time:   %s\n", run.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Duration:     %s\n", run.Duration)
	fmt.Fprintf(&buf, "Block Count:  %d\n", run.BlockCount)
	fmt.Fprintf(&buf, "Bit Width:    %d\n", run.BitWidth)
	healthStatus := "PASSED"
	if !run.HealthTestsPassed {
		healthStatus = "FAILED"
	}
	fmt.Fprintf(&buf, "Health Tests: %s\n\n", healthStatus)

	buf.WriteString("ESTIMATOR RESULTS (last block)\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	f.WriteText(&buf, run.Result)
	buf.WriteString("\n")

	buf.WriteString(strings.Repeat("=", 80) + "\n")

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	f.logger.Info("text report generated", "path", outputPath)
	return nil
}

func (f *Formatter) generateHTMLReport(run RunSummary, outputPath string) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"statusClass": func(passed bool) string {
			if passed {
				return "pass"
			}
			return "fail"
		},
		"statusIcon": func(passed bool) string {
			if passed {
				return "PASS"
			}
			return "FAIL"
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, run); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	f.logger.Info("HTML report generated", "path", outputPath)
	return nil
}

// GetReportPath builds a report file path for run under outputDir.
func GetReportPath(run RunSummary, format ReportFormat, outputDir string) string {
	timestamp := run.StartTime.Format("20060102-150405")
	return fmt.Sprintf("%s/report-%s-%s.%s", outputDir, timestamp, run.RunID, string(format))
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Min-Entropy Assessment - {{.RunID}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 960px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
        .container { background-color: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); padding: 30px; }
        h1, h2 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        .status { display: inline-block; padding: 5px 15px; border-radius: 4px; font-weight: bold; margin-left: 10px; }
        .status.pass { background-color: #27ae60; color: white; }
        .status.fail { background-color: #e74c3c; color: white; }
        .info-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 20px; margin: 20px 0; }
        .info-box { background-color: #ecf0f1; padding: 15px; border-radius: 4px; }
        .info-label { font-weight: bold; color: #7f8c8d; font-size: 0.9em; margin-bottom: 5px; }
        .info-value { font-size: 1.1em; color: #2c3e50; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Min-Entropy Assessment<span class="status {{statusClass .HealthTestsPassed}}">{{statusIcon .HealthTestsPassed}}</span></h1>
        <div class="info-grid">
            <div class="info-box"><div class="info-label">Input</div><div class="info-value">{{.InputLabel}}</div></div>
            <div class="info-box"><div class="info-label">Run ID</div><div class="info-value">{{.RunID}}</div></div>
            <div class="info-box"><div class="info-label">Start Time</div><div class="info-value">{{.StartTime}}</div></div>
            <div class="info-box"><div class="info-label">Duration</div><div class="info-value">{{.Duration}}</div></div>
            <div class="info-box"><div class="info-label">Block Count</div><div class="info-value">{{.BlockCount}}</div></div>
            <div class="info-box"><div class="info-label">Assessed Min-Entropy (bits)</div><div class="info-value">{{.AssessedMinEntropy}}</div></div>
        </div>
    </div>
</body>
</html>
`
