package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestNewOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\") error = %v", err)
	}
	if om != nil {
		t.Fatal("NewOutputManager(\"\") returned a manager, want nil")
	}

	// Every method is a no-op on a nil manager.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry() on nil = %v", err)
	}
	if err := om.WriteBookmark(Bookmark{}); err != nil {
		t.Errorf("WriteBookmark() on nil = %v", err)
	}
	if err := om.WriteDeaths([]DeathRecord{{ID: 1}}); err != nil {
		t.Errorf("WriteDeaths() on nil = %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() on nil = %q, want empty", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close() on nil = %v", err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 600), Population: 10 + i}); err != nil {
			t.Fatalf("WriteTelemetry() error = %v", err)
		}
	}
	if err := om.WriteDeaths([]DeathRecord{
		{ID: 4, Tick: 90, Cause: "starvation"},
		{ID: 5, Tick: 95, Cause: "old_age"},
	}); err != nil {
		t.Fatalf("WriteDeaths() error = %v", err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkExtinction, Tick: 1800, Description: "No living agents remain"}); err != nil {
		t.Fatalf("WriteBookmark() error = %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "telemetry.csv"))
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("telemetry header = %q, want window_end first", lines[0])
	}
	if strings.Contains(lines[0], "window_start") {
		t.Error("telemetry header includes the skipped window_start column")
	}
	if !strings.HasPrefix(lines[3], "1800,") {
		t.Errorf("last telemetry row = %q, want tick 1800", lines[3])
	}

	deaths := readLines(t, filepath.Join(dir, "deaths.csv"))
	if len(deaths) != 3 || !strings.Contains(deaths[1], "starvation") {
		t.Errorf("deaths.csv = %v", deaths)
	}

	bookmarks := readLines(t, filepath.Join(dir, "bookmarks.csv"))
	if len(bookmarks) != 2 || !strings.HasPrefix(bookmarks[1], "extinction,1800,") {
		t.Errorf("bookmarks.csv = %v", bookmarks)
	}

	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}
}
