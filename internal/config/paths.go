package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"paneldata/internal/dates"
)

// Paths is the resolved directory layout used by the command-line
// tools. It is the single source of truth for where snapshot inputs are
// read and where exports land.
type Paths struct {
	DataDir string
	InDir   string
	OutDir  string
	LogsDir string

	// SnapshotsDir holds the per-date snapshot exports under OutDir.
	SnapshotsDir string

	// Well-known export files under OutDir.
	CombinedCSV string
	SummaryCSV  string
}

// NewPaths resolves the configured directory entries, filling the
// defaults under DataDir for entries left empty.
func NewPaths(pc PathsConfig) *Paths {
	data := pc.DataDir
	if data == "" {
		data = DefaultDataDir
	}
	in := pc.InDir
	if in == "" {
		in = filepath.Join(data, "in")
	}
	out := pc.OutDir
	if out == "" {
		out = filepath.Join(data, "out")
	}
	logs := pc.LogsDir
	if logs == "" {
		logs = DefaultLogsDir
	}

	return &Paths{
		DataDir:      data,
		InDir:        in,
		OutDir:       out,
		LogsDir:      logs,
		SnapshotsDir: filepath.Join(out, "snapshots"),
		CombinedCSV:  filepath.Join(out, "combined.csv"),
		SummaryCSV:   filepath.Join(out, "summary.csv"),
	}
}

// EnsureDirectories creates every directory in the layout that does not
// exist yet.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.InDir,
		p.OutDir,
		p.SnapshotsDir,
		p.LogsDir,
	}
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SnapshotCSV returns the per-date snapshot file path under
// SnapshotsDir.
func (p *Paths) SnapshotCSV(date time.Time) string {
	return filepath.Join(p.SnapshotsDir, "snapshot_"+dates.FormatCompact(date)+".csv")
}

// LogFile resolves a log file name under LogsDir.
func (p *Paths) LogFile(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// LogPathResolution records the resolved layout for debugging.
func (p *Paths) LogPathResolution() {
	slog.Debug("resolved path layout",
		slog.String("data_dir", p.DataDir),
		slog.String("in_dir", p.InDir),
		slog.String("out_dir", p.OutDir),
		slog.String("snapshots_dir", p.SnapshotsDir),
		slog.String("logs_dir", p.LogsDir))
}
