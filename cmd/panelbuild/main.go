package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"paneldata/internal/config"
	"paneldata/internal/dates"
	"paneldata/internal/exporter"
	"paneldata/internal/files"
	"paneldata/internal/infrastructure"
	"paneldata/internal/loader"
	"paneldata/internal/panel"
	"paneldata/internal/report"
	"paneldata/internal/validation"
)

func main() {
	in := flag.String("in", "", "directory containing snapshot files (defaults to the configured in dir)")
	out := flag.String("out", "", "output directory for exports (defaults to the configured out dir)")
	configPath := flag.String("config", "", "config file path (defaults to the well-known locations)")
	pattern := flag.String("pattern", "", "date pattern override for snapshot file names")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *in != "" {
		cfg.Paths.InDir = *in
	}
	if *out != "" {
		cfg.Paths.OutDir = *out
	}
	if *pattern != "" {
		cfg.Loader.DatePattern = *pattern
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.LogFile("panelbuild.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting snapshot store build",
		slog.String("input_dir", paths.InDir),
		slog.String("output_dir", paths.OutDir),
		slog.String("date_pattern", cfg.Loader.DatePattern))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.InDir, "*"); err != nil {
		logger.Error("Input directory validation failed",
			slog.String("dir", paths.InDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.OutDir); err != nil {
		logger.Error("Output directory validation failed",
			slog.String("dir", paths.OutDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if newest, err := files.NewestFile(paths.InDir, cfg.Loader.DatePattern); err == nil {
		modified, _ := files.ModifiedDate(newest.Path)
		logger.Info("Newest input snapshot",
			slog.String("file", newest.Name),
			slog.String("modified", dates.Format(modified)))
	}

	ctx := infrastructure.EnsureRunID(context.Background())

	result, err := loader.LoadDirectory(ctx, paths.InDir, loader.Options{
		DatePattern: cfg.Loader.DatePattern,
		DateLayout:  cfg.Loader.DateLayout,
		Sheet:       cfg.Loader.Sheet,
		Workers:     cfg.Loader.Workers,
		Tag:         cfg.Store.Tag,
	})
	if err != nil {
		logger.Error("Failed to build snapshot store",
			slog.String("dir", paths.InDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	store := result.Panel
	fmt.Printf("Loaded %d snapshot files (%d skipped)\n", result.Loaded, result.Skipped)

	writer := exporter.NewCSVWriter(paths)
	daily := exporter.NewDailyExporter(writer)

	written, err := daily.ExportSnapshots(store, "")
	if err != nil {
		logger.Error("Failed to export per-date snapshots", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Per-date snapshots exported",
		slog.Int("files", written),
		slog.String("dir", paths.SnapshotsDir))

	if err := daily.ExportCombined(store, ""); err != nil {
		logger.Error("Failed to export combined history", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Combined history exported", slog.String("path", paths.CombinedCSV))

	summary, err := report.Summary(store, time.Time{})
	if err != nil {
		logger.Error("Failed to summarize store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	headers, records := summary.Records()
	if err := writer.WriteSimpleCSV(paths.SummaryCSV, headers, records); err != nil {
		logger.Error("Failed to write summary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Field summary exported",
		slog.String("path", paths.SummaryCSV),
		slog.Int("fields", len(summary.Fields)))

	logMovement(logger, store)

	stored := store.Dates()
	logger.Info("Snapshot store build completed",
		slog.Int("loaded", result.Loaded),
		slog.Int("skipped", result.Skipped),
		slog.Int("dates", len(stored)),
		slog.Int("exported_files", written),
		slog.String("run_id", result.RunID))
	fmt.Printf("Build complete: %d dates exported to %s\n", len(stored), paths.OutDir)
}

// logMovement reports the latest day-over-day movement per field. A
// store holding a single date has nothing to compare.
func logMovement(logger *slog.Logger, store *panel.SecurityPanel) {
	stored := store.Dates()
	if len(stored) < 2 {
		return
	}

	change, err := report.DailyChange(&store.Collection, stored[len(stored)-1])
	if err != nil {
		logger.Warn("Skipping day-over-day report", slog.String("error", err.Error()))
		return
	}

	means := change.MeanPercent()
	fields := make([]string, 0, len(means))
	for field := range means {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if math.IsNaN(means[field]) {
			continue
		}
		logger.Info("Day-over-day movement",
			slog.String("field", field),
			slog.String("date", dates.Format(change.Date)),
			slog.String("previous", dates.Format(change.Previous)),
			slog.Float64("mean_pct", means[field]))
	}
}
