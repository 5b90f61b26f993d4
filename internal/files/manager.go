package files

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"paneldata/internal/dates"
)

// EnsureDir creates path and any missing parents if it does not exist.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("creating directory", slog.String("path", path))
		return os.MkdirAll(path, 0755)
	}
	return nil
}

// ModifiedDate returns the file's modification time rebuilt through the
// date layer so it compares cleanly with parsed snapshot dates.
func ModifiedDate(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return dates.FromUnix(info.ModTime().Unix()), nil
}
