package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/lemilonkh/ecolia/config"
)

// OutputManager writes experiment output as CSV files under one directory.
type OutputManager struct {
	dir    string
	tables map[string]*csvTable
}

// csvTable is one CSV file whose header is written with the first record.
type csvTable struct {
	file          *os.File
	headerWritten bool
}

const (
	telemetryCSV = "telemetry.csv"
	perfCSV      = "perf.csv"
)

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, tables: make(map[string]*csvTable)}
	for _, name := range []string{telemetryCSV, perfCSV} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		om.tables[name] = &csvTable{file: f}
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.tables[telemetryCSV].write([]WindowStats{stats})
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.tables[perfCSV].write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

func (t *csvTable) write(records any) error {
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.file); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(t.file.Name()), err)
		}
		t.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, t.file); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(t.file.Name()), err)
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

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, t := range om.tables {
		if err := t.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
