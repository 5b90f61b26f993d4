package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paneldata/internal/frame"
	"paneldata/internal/panel"
)

// Day builds a UTC midnight date, the form snapshot keys use.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Snapshot builds a SEC_ID-indexed frame from column series.
func Snapshot(t *testing.T, securities []string, cols ...*frame.Series) *frame.Frame {
	t.Helper()
	f, err := frame.New(panel.PrimaryKey, securities, cols...)
	require.NoError(t, err)
	return f
}

// PriceSnapshot builds a snapshot carrying PRICE and VOLUME columns.
func PriceSnapshot(t *testing.T, securities []string, prices, volumes []float64) *frame.Frame {
	t.Helper()
	return Snapshot(t, securities,
		frame.NewFloats("PRICE", prices),
		frame.NewFloats("VOLUME", volumes),
	)
}

// PricePanel builds a security store with three consecutive trading
// days of drifting prices for AAPL and MSFT, tagged PRICES.
func PricePanel(t *testing.T) *panel.SecurityPanel {
	t.Helper()
	p, err := panel.NewSecurityPanel(
		Day(2021, time.January, 4),
		PriceSnapshot(t, []string{"AAPL", "MSFT"}, []float64{9.5, 20.5}, []float64{100, 200}),
		"PRICES", nil, nil,
	)
	require.NoError(t, err)
	require.NoError(t, p.Insert(
		Day(2021, time.January, 5),
		PriceSnapshot(t, []string{"AAPL", "MSFT"}, []float64{10.5, 21.5}, []float64{110, 210}),
	))
	require.NoError(t, p.Insert(
		Day(2021, time.January, 6),
		PriceSnapshot(t, []string{"AAPL", "MSFT"}, []float64{11.5, 22.5}, []float64{120, 220}),
	))
	return p
}
