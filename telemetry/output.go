package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/lark/config"
)

// OutputManager writes per-run experiment output: generations.csv,
// perf.csv and a config.yaml snapshot. A nil manager discards everything.
type OutputManager struct {
	dir         string
	generations *CSVLog
	perf        *CSVLog
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	generations, err := CreateCSVLog(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, err
	}
	perf, err := CreateCSVLog(filepath.Join(dir, "perf.csv"))
	if err != nil {
		generations.Close()
		return nil, err
	}

	return &OutputManager{dir: dir, generations: generations, perf: perf}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends one record to generations.csv.
func (om *OutputManager) WriteGeneration(record GenerationRecord) error {
	if om == nil {
		return nil
	}
	if err := om.generations.Append([]GenerationRecord{record}); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WritePerf appends a performance snapshot to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.Append([]PerfStatsCSV{stats.ToCSV(generation)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.generations.Close(), om.perf.Close())
}
