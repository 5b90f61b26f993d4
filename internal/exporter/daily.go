package exporter

import (
	"fmt"
	"path/filepath"

	"paneldata/internal/dates"
	"paneldata/internal/panel"
)

// DailyExporter writes the per-date artifacts of a snapshot store.
type DailyExporter struct {
	csvWriter *CSVWriter
}

// NewDailyExporter creates a daily exporter on top of a CSV writer.
func NewDailyExporter(csvWriter *CSVWriter) *DailyExporter {
	return &DailyExporter{csvWriter: csvWriter}
}

// ExportSnapshots writes one delimited file per stored date into dir
// (the configured snapshots directory when dir is empty), named
// snapshot_YYYYMMDD.csv. Returns the number of files written.
func (d *DailyExporter) ExportSnapshots(p *panel.SecurityPanel, dir string, fields ...string) (int, error) {
	if dir == "" && d.csvWriter.paths != nil {
		dir = d.csvWriter.paths.SnapshotsDir
	}

	written := 0
	for _, date := range p.Dates() {
		dated, err := p.LatestDated(date)
		if err != nil {
			return written, fmt.Errorf("resolve snapshot for %s: %w", dates.Format(date), err)
		}

		header, records, err := SnapshotRecords(dated, fields...)
		if err != nil {
			return written, fmt.Errorf("render snapshot for %s: %w", dates.Format(date), err)
		}

		filename := fmt.Sprintf("snapshot_%s.csv", dates.FormatCompact(date))
		if err := d.csvWriter.WriteSimpleCSV(filepath.Join(dir, filename), header, records); err != nil {
			return written, fmt.Errorf("failed to write snapshot for %s: %w", dates.Format(date), err)
		}
		written++
	}
	return written, nil
}

// ExportCombined writes every stored date into a single file with a
// leading DATE column, dates ascending, securities in snapshot order.
// Fields absent from a date's snapshot resolve to their configured
// default. The combined file carries no BOM so analysis tools can read
// it directly.
func (d *DailyExporter) ExportCombined(p *panel.SecurityPanel, outputPath string, fields ...string) error {
	if len(fields) == 0 {
		fields = p.FieldNames()
	}
	if outputPath == "" && d.csvWriter.paths != nil {
		outputPath = d.csvWriter.paths.CombinedCSV
	}

	headers := append([]string{DateHeader, panel.PrimaryKey}, fields...)

	var records [][]string
	for _, date := range p.Dates() {
		snap, err := p.Latest(date)
		if err != nil {
			return fmt.Errorf("resolve snapshot for %s: %w", dates.Format(date), err)
		}
		for _, key := range snap.Index() {
			row := make([]string, 2, len(fields)+2)
			row[0] = dates.Format(date)
			row[1] = key
			for _, field := range fields {
				v, err := p.ValueAt(key, field, date)
				if err != nil {
					return fmt.Errorf("resolve %s of %s on %s: %w", field, key, dates.Format(date), err)
				}
				row = append(row, formatValue(v))
			}
			records = append(records, row)
		}
	}

	return d.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   headers,
		Records:   records,
		Append:    false,
		BOMPrefix: false,
	})
}
