package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"paneldata/internal/dates"
	"paneldata/internal/frame"
	"paneldata/internal/panel"
)

// FieldSummary aggregates one field of a resolved snapshot. Count is
// the number of set values (numeric cells that are not NaN, non-empty
// strings, non-zero instants; other kinds count every cell). Min, Max
// and Mean are NaN for fields that are not numeric or that hold no set
// values.
type FieldSummary struct {
	Field string
	Kind  frame.Kind
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// SnapshotSummary describes the snapshot a date resolved to, one entry
// per field in column order.
type SnapshotSummary struct {
	Date       time.Time
	Tag        string
	Securities int
	Fields     []FieldSummary
}

// Summary resolves the snapshot as of asOf and aggregates every field.
func Summary(p *panel.SecurityPanel, asOf time.Time) (*SnapshotSummary, error) {
	dated, err := p.LatestDated(asOf)
	if err != nil {
		return nil, fmt.Errorf("summarize store: %w", err)
	}

	f := dated.Frame
	s := &SnapshotSummary{
		Date:       dated.Date,
		Tag:        dated.Tag,
		Securities: f.NumRows(),
		Fields:     make([]FieldSummary, 0, f.NumCols()),
	}
	for j := 0; j < f.NumCols(); j++ {
		s.Fields = append(s.Fields, summarizeColumn(f.ColumnAt(j)))
	}
	return s, nil
}

func summarizeColumn(col *frame.Series) FieldSummary {
	fs := FieldSummary{
		Field: col.Name(),
		Kind:  col.Kind(),
		Min:   math.NaN(),
		Max:   math.NaN(),
		Mean:  math.NaN(),
	}

	if vals, err := col.Floats(); err == nil {
		sum := 0.0
		for _, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			if fs.Count == 0 {
				fs.Min, fs.Max = v, v
			} else {
				fs.Min = math.Min(fs.Min, v)
				fs.Max = math.Max(fs.Max, v)
			}
			sum += v
			fs.Count++
		}
		if fs.Count > 0 {
			fs.Mean = sum / float64(fs.Count)
		}
		return fs
	}

	fs.Count = countSet(col)
	return fs
}

// countSet counts the cells holding a set value for non-numeric kinds.
func countSet(col *frame.Series) int {
	switch col.Kind() {
	case frame.KindString, frame.KindCategorical:
		vals, err := col.Strings()
		if err != nil {
			return col.Len()
		}
		n := 0
		for _, v := range vals {
			if v != "" {
				n++
			}
		}
		return n
	case frame.KindTemporal:
		vals, err := col.Times()
		if err != nil {
			return col.Len()
		}
		n := 0
		for _, v := range vals {
			if !v.IsZero() {
				n++
			}
		}
		return n
	default:
		return col.Len()
	}
}

// Records renders the summary as a header plus one row per field for
// delimited export. NaN statistics render as empty cells.
func (s *SnapshotSummary) Records() ([]string, [][]string) {
	header := []string{"DATE", "FIELD", "KIND", "COUNT", "MIN", "MAX", "MEAN"}
	records := make([][]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		records = append(records, []string{
			dates.Format(s.Date),
			f.Field,
			f.Kind.String(),
			strconv.Itoa(f.Count),
			statCell(f.Min),
			statCell(f.Max),
			statCell(f.Mean),
		})
	}
	return header, records
}

func statCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
