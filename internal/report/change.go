package report

import (
	"fmt"
	"math"
	"time"

	"paneldata/internal/frame"
	"paneldata/internal/frameops"
	"paneldata/internal/panel"
)

// Change holds the day-over-day movement of a snapshot collection
// between a resolved date and the stored date immediately before it.
// Delta carries current minus previous per shared security and field,
// Percent the same movement relative to the previous value. Fields
// without a numeric comparison degrade to NaN columns.
type Change struct {
	Date     time.Time
	Previous time.Time
	Delta    *frame.Frame
	Percent  *frame.Frame
}

// DailyChange compares the snapshot resolved as of date against the
// snapshot stored immediately before it. Rows and columns pair by
// label, so securities or fields present on only one of the two dates
// drop out of the result. The earliest stored date has no predecessor
// and fails with ErrNoEarlierData.
func DailyChange(c *panel.Collection, date time.Time) (*Change, error) {
	curr, err := c.LatestDated(date)
	if err != nil {
		return nil, fmt.Errorf("daily change: %w", err)
	}
	prevDate, err := c.PreviousDate(curr.Date)
	if err != nil {
		return nil, fmt.Errorf("daily change: %w", err)
	}
	prev, err := c.Latest(prevDate)
	if err != nil {
		return nil, fmt.Errorf("daily change: %w", err)
	}

	delta := frameops.FuncSet{
		Numeric: frameops.MapNumeric(func(p, q float64) float64 { return q - p }),
	}
	percent := frameops.FuncSet{
		Numeric: frameops.MapNumeric(func(p, q float64) float64 { return (q - p) / p * 100 }),
	}

	deltaFrame, err := frameops.ApplyColumnwise(prev, curr.Frame, delta.Func(frameops.MismatchWarn), frameops.Options{})
	if err != nil {
		return nil, fmt.Errorf("daily change: delta: %w", err)
	}
	percentFrame, err := frameops.ApplyColumnwise(prev, curr.Frame, percent.Func(frameops.MismatchWarn), frameops.Options{})
	if err != nil {
		return nil, fmt.Errorf("daily change: percent: %w", err)
	}

	return &Change{
		Date:     curr.Date,
		Previous: prevDate,
		Delta:    deltaFrame,
		Percent:  percentFrame,
	}, nil
}

// MeanPercent returns the mean percent change per field, NaN cells
// excluded. Fields with no finite cells map to NaN.
func (c *Change) MeanPercent() map[string]float64 {
	out := make(map[string]float64, c.Percent.NumCols())
	for _, name := range c.Percent.Columns() {
		col, err := c.Percent.Column(name)
		if err != nil {
			continue
		}
		vals, err := col.Floats()
		if err != nil {
			out[name] = math.NaN()
			continue
		}
		sum, n := 0.0, 0
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			out[name] = math.NaN()
			continue
		}
		out[name] = sum / float64(n)
	}
	return out
}
