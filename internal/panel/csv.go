package panel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"paneldata/internal/frame"
)

// writeCSV renders a snapshot as header plus rows: the index label
// first, then the columns in frame order.
func writeCSV(w io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(w)

	header := append([]string{f.IndexName()}, f.Columns()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	index := f.Index()
	for i, label := range index {
		row := make([]string, 1, f.NumCols()+1)
		row[0] = label
		for j := 0; j < f.NumCols(); j++ {
			row = append(row, renderCell(f.At(i, j)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func renderCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}
