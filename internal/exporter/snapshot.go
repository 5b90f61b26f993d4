package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"paneldata/internal/panel"
)

// SnapshotRecords renders a dated snapshot to a header plus rows: the
// index label first, then the requested fields (all frame columns when
// none are named) in order.
func SnapshotRecords(dated panel.DatedFrame, fields ...string) ([]string, [][]string, error) {
	f := dated.Frame
	if len(fields) > 0 {
		sub, err := f.Select(fields...)
		if err != nil {
			return nil, nil, fmt.Errorf("select export fields: %w", err)
		}
		f = sub
	}

	header := append([]string{f.IndexName()}, f.Columns()...)

	index := f.Index()
	records := make([][]string, len(index))
	for i, label := range index {
		row := make([]string, 1, f.NumCols()+1)
		row[0] = label
		for j := 0; j < f.NumCols(); j++ {
			row = append(row, formatValue(f.At(i, j)))
		}
		records[i] = row
	}
	return header, records, nil
}

// WriteSnapshotCSV writes one dated snapshot as delimited text with one
// row per security. Unset values render as empty strings, floats carry
// no trailing zeros.
func WriteSnapshotCSV(w io.Writer, dated panel.DatedFrame, fields ...string) error {
	header, records, err := SnapshotRecords(dated, fields...)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
