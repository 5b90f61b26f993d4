package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"paneldata/internal/config"
	"paneldata/internal/exporter"
	"paneldata/internal/files"
	"paneldata/internal/infrastructure"
	"paneldata/internal/loader"
	"paneldata/internal/validation"
)

func main() {
	in := flag.String("in", "", "directory containing snapshot files (defaults to the configured in dir)")
	key := flag.String("key", "", "security identifier to extract (required)")
	fieldList := flag.String("fields", "", "comma-separated field names (defaults to every declared field)")
	out := flag.String("out", "", "output csv file path (defaults to history_<key>.csv in the configured out dir)")
	configPath := flag.String("config", "", "config file path (defaults to the well-known locations)")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "historycsv: -key is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *in != "" {
		cfg.Paths.InDir = *in
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(paths.OutDir, fmt.Sprintf("history_%s.csv", *key))
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.LogFile("historycsv.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	fields := splitFields(*fieldList)
	logger.Info("Starting history extraction",
		slog.String("input_dir", paths.InDir),
		slog.String("key", *key),
		slog.String("fields", strings.Join(fields, ",")),
		slog.String("output_file", *out))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.InDir, "*"); err != nil {
		logger.Error("Input directory validation failed",
			slog.String("dir", paths.InDir),
			slog.String("error", err.Error()))
		os.Exit(1)
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

	outDir := filepath.Dir(*out)
	if err := files.EnsureDir(outDir); err != nil {
		logger.Error("Cannot create output directory",
			slog.String("path", outDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	file, err := os.Create(*out)
	if err != nil {
		logger.Error("Cannot create output file",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := exporter.WriteHistoryCSV(file, result.Panel, *key, fields...); err != nil {
		file.Close()
		logger.Error("Failed to write history",
			slog.String("key", *key),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := file.Close(); err != nil {
		logger.Error("Failed to close output file",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("History extraction completed",
		slog.String("key", *key),
		slog.Int("dates", result.Panel.Len()),
		slog.String("output_path", *out))
	fmt.Printf("Wrote %d dates for %s to %s\n", result.Panel.Len(), *key, *out)
}

// splitFields parses the -fields flag into trimmed names.
func splitFields(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}
