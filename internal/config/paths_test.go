package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathsDefaults(t *testing.T) {
	p := NewPaths(PathsConfig{DataDir: "data"})

	assert.Equal(t, "data", p.DataDir)
	assert.Equal(t, filepath.Join("data", "in"), p.InDir)
	assert.Equal(t, filepath.Join("data", "out"), p.OutDir)
	assert.Equal(t, "logs", p.LogsDir)
	assert.Equal(t, filepath.Join("data", "out", "snapshots"), p.SnapshotsDir)
	assert.Equal(t, filepath.Join("data", "out", "combined.csv"), p.CombinedCSV)
	assert.Equal(t, filepath.Join("data", "out", "summary.csv"), p.SummaryCSV)
}

func TestNewPathsExplicit(t *testing.T) {
	p := NewPaths(PathsConfig{
		DataDir: "/srv/panel",
		InDir:   "/mnt/feeds",
		OutDir:  "/srv/panel/exports",
		LogsDir: "/var/log/panel",
	})

	assert.Equal(t, "/mnt/feeds", p.InDir)
	assert.Equal(t, "/srv/panel/exports", p.OutDir)
	assert.Equal(t, "/var/log/panel", p.LogsDir)
	assert.Equal(t, filepath.Join("/srv/panel/exports", "snapshots"), p.SnapshotsDir)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := NewPaths(PathsConfig{DataDir: filepath.Join(base, "data"), LogsDir: filepath.Join(base, "logs")})

	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.InDir, p.OutDir, p.SnapshotsDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestSnapshotCSV(t *testing.T) {
	p := NewPaths(PathsConfig{DataDir: "data"})
	date := time.Date(2021, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, filepath.Join(p.SnapshotsDir, "snapshot_20210131.csv"), p.SnapshotCSV(date))
}

func TestLogFile(t *testing.T) {
	p := NewPaths(PathsConfig{DataDir: "data", LogsDir: "logs"})
	assert.Equal(t, filepath.Join("logs", "panelbuild.log"), p.LogFile("panelbuild.log"))
}
