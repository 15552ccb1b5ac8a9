package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Storage persists battery run summaries as JSON files and prunes old
// ones once a run count threshold is exceeded.
type Storage struct {
	outputDir string
	keepLastN int
	logger    *Logger
}

// NewStorage creates a storage instance rooted at outputDir, creating
// the directory if necessary.
func NewStorage(outputDir string, keepLastN int, logger *Logger) (*Storage, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{outputDir: outputDir, keepLastN: keepLastN, logger: logger}, nil
}

// SaveRun writes a run summary to a JSON file named by its start time
// and RunID, and prunes old runs if keepLastN is positive.
func (s *Storage) SaveRun(run RunSummary) (string, error) {
	timestamp := run.StartTime.Format("20060102-150405")
	filename := fmt.Sprintf("run-%s-%s.json", timestamp, run.RunID)
	path := filepath.Join(s.outputDir, filename)

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run summary: %w", err)
	}
	s.logger.Info("run summary saved", "path", path)

	if s.keepLastN > 0 {
		if err := s.cleanupOldRuns(); err != nil {
			s.logger.Warn("failed to cleanup old runs", "error", err)
		}
	}

	return path, nil
}

// LoadRun loads a run summary from a JSON file.
func (s *Storage) LoadRun(path string) (RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to read run summary: %w", err)
	}
	var run RunSummary
	if err := json.Unmarshal(data, &run); err != nil {
		return RunSummary{}, fmt.Errorf("failed to unmarshal run summary: %w", err)
	}
	return run, nil
}

// ListRuns lists every persisted run, newest first.
func (s *Storage) ListRuns() ([]ListedRun, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	listed := make([]ListedRun, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.outputDir, entry.Name())
		run, err := s.LoadRun(path)
		if err != nil {
			s.logger.Warn("failed to load run summary", "path", path, "error", err)
			continue
		}
		listed = append(listed, ListedRun{
			RunID:              run.RunID,
			InputLabel:         run.InputLabel,
			StartTime:          run.StartTime,
			AssessedMinEntropy: run.AssessedMinEntropy,
			HealthTestsPassed:  run.HealthTestsPassed,
			Filepath:           path,
		})
	}

	sort.Slice(listed, func(i, j int) bool {
		return listed[i].StartTime.After(listed[j].StartTime)
	})
	return listed, nil
}

// FindRunByID finds a persisted run by its RunID.
func (s *Storage) FindRunByID(runID string) (RunSummary, error) {
	listed, err := s.ListRuns()
	if err != nil {
		return RunSummary{}, err
	}
	for _, l := range listed {
		if l.RunID == runID {
			return s.LoadRun(l.Filepath)
		}
	}
	return RunSummary{}, fmt.Errorf("no run found for RunID: %s", runID)
}

func (s *Storage) cleanupOldRuns() error {
	listed, err := s.ListRuns()
	if err != nil {
		return err
	}
	if len(listed) <= s.keepLastN {
		return nil
	}
	for _, stale := range listed[s.keepLastN:] {
		if err := os.Remove(stale.Filepath); err != nil {
			s.logger.Warn("failed to delete old run", "path", stale.Filepath, "error", err)
		} else {
			s.logger.Debug("deleted old run", "path", stale.Filepath)
		}
	}
	return nil
}

// GetOutputDir returns the configured output directory.
func (s *Storage) GetOutputDir() string {
	return s.outputDir
}
