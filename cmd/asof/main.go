package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"paneldata/internal/config"
	"paneldata/internal/dates"
	"paneldata/internal/infrastructure"
	"paneldata/internal/loader"
)

func main() {
	in := flag.String("in", "", "directory containing snapshot files (defaults to the configured in dir)")
	dateStr := flag.String("date", "", "query date, e.g. 2021-01-05 or 20210105 (defaults to today)")
	key := flag.String("key", "", "security identifier (required)")
	field := flag.String("field", "", "field name (required)")
	configPath := flag.String("config", "", "config file path (defaults to the well-known locations)")
	flag.Parse()

	if *key == "" || *field == "" {
		fmt.Fprintln(os.Stderr, "asof: -key and -field are required")
		flag.Usage()
		os.Exit(1)
	}

	var query time.Time
	if *dateStr != "" {
		parsed, err := dates.Parse(*dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "asof: cannot parse -date %q: %v\n", *dateStr, err)
			os.Exit(1)
		}
		query = parsed
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
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.LogFile("asof.log")
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting as-of lookup",
		slog.String("input_dir", paths.InDir),
		slog.String("key", *key),
		slog.String("field", *field),
		slog.String("date", *dateStr))

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

	dated, err := store.LatestDated(query)
	if err != nil {
		logger.Error("No snapshot resolves for the query date",
			slog.String("date", *dateStr),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	value, err := store.ValueAt(*key, *field, query)
	if err != nil {
		logger.Error("Lookup failed",
			slog.String("key", *key),
			slog.String("field", *field),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Lookup resolved",
		slog.String("key", *key),
		slog.String("field", *field),
		slog.String("resolved_date", dates.Format(dated.Date)),
		slog.Any("value", value))
	fmt.Printf("%s %s as of %s: %s\n", *key, *field, dates.Format(dated.Date), formatValue(value))
}

// formatValue renders a looked-up value for terminal output.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "N/A"
	case float64:
		if math.IsNaN(x) {
			return "N/A"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.IsZero() {
			return "N/A"
		}
		return dates.Format(x)
	default:
		return fmt.Sprint(x)
	}
}
