package exporter

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"paneldata/internal/dates"
	"paneldata/internal/files"
	"paneldata/internal/panel"
)

// WriteSnapshotXLSX writes one dated snapshot as a workbook with a
// single sheet, streamed row by row. Numeric cells keep their native
// type; unset values leave the cell empty.
func WriteSnapshotXLSX(path string, dated panel.DatedFrame, fields ...string) error {
	fr := dated.Frame
	if len(fields) > 0 {
		sub, err := fr.Select(fields...)
		if err != nil {
			return fmt.Errorf("select export fields: %w", err)
		}
		fr = sub
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	header := make([]interface{}, 0, fr.NumCols()+1)
	header = append(header, fr.IndexName())
	for _, name := range fr.Columns() {
		header = append(header, name)
	}
	if err := setWorkbookRow(sw, 1, header); err != nil {
		return err
	}

	for i, label := range fr.Index() {
		row := make([]interface{}, 0, fr.NumCols()+1)
		row = append(row, label)
		for j := 0; j < fr.NumCols(); j++ {
			row = append(row, workbookValue(fr.At(i, j)))
		}
		if err := setWorkbookRow(sw, i+2, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush workbook: %w", err)
	}
	if err := files.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setWorkbookRow(sw *excelize.StreamWriter, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("locate row %d: %w", row, err)
	}
	if err := sw.SetRow(cell, values); err != nil {
		return fmt.Errorf("write workbook row %d: %w", row, err)
	}
	return nil
}

// workbookValue converts a cell value for the stream writer. Unset
// values become nil so the cell stays empty; dates render in ISO form
// so re-ingestion detects them.
func workbookValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return x
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return dates.Format(x)
	case time.Duration:
		return x.String()
	case float32, int, int32, int64, bool, string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
