package loader

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ReadSnapshotXLSX parses one workbook snapshot. The sheet named by
// Options.Sheet is read, or the workbook's first sheet when unset; the
// first row is the header and the first header cell names the security
// index. Cell text goes through the same kind detection as delimited
// files.
func ReadSnapshotXLSX(path string, opts Options) (*DatedSnapshot, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	date, err := snapshotDate(path, opts)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoRecords)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoRecords)
	}

	fr, err := frameFromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &DatedSnapshot{Date: date, Frame: fr, Source: path}, nil
}
