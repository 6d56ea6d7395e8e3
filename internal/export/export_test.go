package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteGrid(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rendered := "\x1b[1mJune\x1b[0m\n\x1b[32m■\x1b[0m □ ■\n"

	path, err := WriteGrid(dir, rendered, day)
	if err != nil {
		t.Fatalf("WriteGrid() failed: %v", err)
	}
	if filepath.Base(path) != "tally-2025-06-01.txt" {
		t.Errorf("export filename = %s, want tally-2025-06-01.txt", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "\x1b") {
		t.Errorf("export still contains escape sequences: %q", got)
	}
	if got != "June\n■ □ ■\n" {
		t.Errorf("export content = %q, want plain grid text", got)
	}
}

func TestWriteGrid_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := WriteGrid(dir, "grid", day); err != nil {
		t.Fatalf("WriteGrid() failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("export directory was not created: %v", err)
	}
}

func TestWriteGrid_EmptyDir(t *testing.T) {
	if _, err := WriteGrid("", "grid", time.Now()); err == nil {
		t.Error("WriteGrid(\"\") should return an error")
	}
}
