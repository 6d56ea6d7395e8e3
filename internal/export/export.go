// Package export writes plain-text snapshots of the rendered habit grid.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/mwhitten/tally/internal/constants"
)

// FileName returns the export filename for the given day.
func FileName(day time.Time) string {
	return constants.ExportFilePrefix + day.Format(constants.DateFormat) + constants.ExportFileSuffix
}

// WriteGrid strips terminal styling from the rendered grid and writes it to
// a dated text file in dir. Returns the path of the written file.
func WriteGrid(dir, rendered string, day time.Time) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("export directory is not set")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	plain := ansi.Strip(rendered)
	if !strings.HasSuffix(plain, "\n") {
		plain += "\n"
	}

	path := filepath.Join(dir, FileName(day))
	if err := os.WriteFile(path, []byte(plain), 0600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
