package loader

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"paneldata/internal/dates"
	"paneldata/internal/files"
	"paneldata/internal/infrastructure"
	"paneldata/internal/panel"
)

// DefaultWorkers bounds directory parsing when Options.Workers is unset.
const DefaultWorkers = 4

// BuildResult carries the outcome of a directory load: the assembled
// store plus ingest counters, correlated to log records by RunID.
type BuildResult struct {
	RunID   string
	Panel   *panel.SecurityPanel
	Loaded  int
	Skipped int
}

// LoadDirectory parses every snapshot file under dir and assembles a
// security store from the results. Files parse concurrently, bounded by
// Options.Workers; store assembly happens on the calling goroutine in
// date order once parsing finishes. Files that fail to parse are logged
// and skipped; a directory yielding no usable snapshots fails with
// ErrNoRecords.
func LoadDirectory(ctx context.Context, dir string, opts Options) (*BuildResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.RunIDFrom(ctx)

	list, err := files.ListDataFiles(dir, ".csv", ".csv.gz", ".xlsx")
	if err != nil {
		return nil, fmt.Errorf("discover snapshots: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no snapshot files in %s: %w", dir, ErrNoRecords)
	}

	slog.InfoContext(ctx, "Loading snapshot directory",
		slog.String("dir", dir),
		slog.Int("files", len(list)))

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	snaps := make([]*DatedSnapshot, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, fi := range list {
		i, fi := i, fi // pin per-iteration values for the goroutine (go <1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := ReadSnapshot(fi.Path, opts)
			if err != nil {
				slog.WarnContext(gctx, "Skipping snapshot file",
					slog.String("file", fi.Name),
					slog.String("error", err.Error()))
				return nil
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}

	parsed := snaps[:0]
	for _, snap := range snaps {
		if snap != nil {
			parsed = append(parsed, snap)
		}
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Date.Before(parsed[j].Date) })

	var p *panel.SecurityPanel
	loaded := 0
	for _, snap := range parsed {
		if p == nil {
			p, err = panel.NewSecurityPanel(snap.Date, snap.Frame, opts.Tag, nil, nil)
		} else {
			err = p.Insert(snap.Date, snap.Frame)
		}
		if err != nil {
			slog.WarnContext(ctx, "Skipping snapshot without security index",
				slog.String("file", snap.Source),
				slog.String("error", err.Error()))
			continue
		}
		loaded++
	}
	if p == nil {
		return nil, fmt.Errorf("no usable snapshots in %s: %w", dir, ErrNoRecords)
	}

	skipped := len(list) - loaded
	stored := p.Dates()
	slog.InfoContext(ctx, "Snapshot store built",
		slog.String("dir", dir),
		slog.Int("loaded", loaded),
		slog.Int("skipped", skipped),
		slog.String("first_date", dates.Format(stored[0])),
		slog.String("last_date", dates.Format(stored[len(stored)-1])))

	return &BuildResult{RunID: runID, Panel: p, Loaded: loaded, Skipped: skipped}, nil
}
