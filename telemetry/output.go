package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/meadow/config"
)

// csvTable is an append-only CSV file that writes its header once.
type csvTable struct {
	file          *os.File
	headerWritten bool
}

func createTable(dir, name string) (*csvTable, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable{file: f}, nil
}

// append marshals records, which must be a slice of csv-tagged structs.
func (t *csvTable) append(records any) error {
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.file); err != nil {
			return err
		}
		t.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, t.file)
}

func (t *csvTable) close() error {
	if t == nil || t.file == nil {
		return nil
	}
	return t.file.Close()
}

// OutputManager handles structured run output with CSV logging.
// All methods are no-ops on a nil manager.
type OutputManager struct {
	dir       string
	telemetry *csvTable
	deaths    *csvTable
	perf      *csvTable
	bookmarks *csvTable
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, t := range []struct {
		name string
		dst  **csvTable
	}{
		{"telemetry.csv", &om.telemetry},
		{"deaths.csv", &om.deaths},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	} {
		table, err := createTable(dir, t.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*t.dst = table
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteDeaths appends death records to deaths.csv.
func (om *OutputManager) WriteDeaths(records []DeathRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := om.deaths.append(records); err != nil {
		return fmt.Errorf("writing deaths: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.append([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
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

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(
		om.telemetry.close(),
		om.deaths.close(),
		om.perf.close(),
		om.bookmarks.close(),
	)
}
