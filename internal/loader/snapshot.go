package loader

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"paneldata/internal/dates"
	"paneldata/internal/frame"
)

// DatedSnapshot pairs one parsed snapshot with its observation date and
// the file it came from.
type DatedSnapshot struct {
	Date   time.Time
	Frame  *frame.Frame
	Source string
}

// ReadSnapshot parses one snapshot file, routing on its extension.
// Unrecognized extensions fail with ErrUnsupportedFile.
func ReadSnapshot(path string, opts Options) (*DatedSnapshot, error) {
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".csv.gz"):
		return ReadSnapshotCSV(path, opts)
	case strings.HasSuffix(name, ".xlsx"):
		return ReadSnapshotXLSX(path, opts)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFile)
	}
}

// snapshotDate resolves the observation date for a snapshot file: the
// explicit override when set, otherwise the first capture group of
// DatePattern applied to the file name, parsed with DateLayout.
func snapshotDate(path string, opts Options) (time.Time, error) {
	if !opts.Date.IsZero() {
		return dates.Midnight(opts.Date), nil
	}

	re, err := regexp.Compile(opts.DatePattern)
	if err != nil {
		return time.Time{}, fmt.Errorf("date pattern %q: %w", opts.DatePattern, err)
	}

	name := filepath.Base(path)
	m := re.FindStringSubmatch(name)
	if len(m) < 2 || m[1] == "" {
		return time.Time{}, fmt.Errorf("file %q carries no date token matching %q", name, opts.DatePattern)
	}

	t, err := dates.ParseLayout(m[1], opts.DateLayout)
	if err != nil {
		return time.Time{}, fmt.Errorf("file %q: %w", name, err)
	}
	return dates.Midnight(t), nil
}

// frameFromRecords converts a header row plus data records into a frame.
// The first header cell names the row index; every other header cell
// becomes a column. Short records are padded, records with an empty
// index cell are dropped.
func frameFromRecords(header []string, records [][]string) (*frame.Frame, error) {
	if len(header) == 0 {
		return nil, ErrNoRecords
	}

	width := len(header)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		padded := make([]string, width)
		for j := 0; j < width && j < len(rec); j++ {
			padded[j] = strings.TrimSpace(rec[j])
		}
		if padded[0] == "" {
			continue
		}
		rows = append(rows, padded)
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}

	index := make([]string, len(rows))
	for i, rec := range rows {
		index[i] = rec[0]
	}

	cols := make([]*frame.Series, 0, width-1)
	for j := 1; j < width; j++ {
		cells := make([]string, len(rows))
		for i, rec := range rows {
			cells[i] = rec[j]
		}
		cols = append(cols, detectColumn(strings.TrimSpace(header[j]), cells))
	}

	return frame.New(strings.TrimSpace(header[0]), index, cols...)
}

// detectColumn infers a column's kind from its cell text. Numeric wins
// over temporal so digit-only date tokens stay numbers; cells that fit
// neither stay text.
func detectColumn(name string, cells []string) *frame.Series {
	if vals, ok := numericColumn(cells); ok {
		return frame.NewFloats(name, vals)
	}
	if vals, ok := temporalColumn(cells); ok {
		return frame.NewTimes(name, vals)
	}
	return frame.NewStrings(name, cells)
}

// numericColumn parses every cell as a float, tolerating thousands
// separators. Empty cells become NaN.
func numericColumn(cells []string) ([]float64, bool) {
	vals := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, false
		}
		vals[i] = f
	}
	return vals, true
}

// temporalColumn parses every cell as a date with layout inference.
// Empty cells become the zero time.
func temporalColumn(cells []string) ([]time.Time, bool) {
	vals := make([]time.Time, len(cells))
	found := false
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		t, err := dates.Parse(cell)
		if err != nil {
			return nil, false
		}
		vals[i] = t
		found = true
	}
	return vals, found
}
