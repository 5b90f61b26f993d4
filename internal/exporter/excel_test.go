package exporter

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"paneldata/internal/frame"
	"paneldata/internal/loader"
	"paneldata/internal/panel"
	"paneldata/internal/shared/testutil"
)

func readWorkbookRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	return rows
}

func TestWriteSnapshotXLSX(t *testing.T) {
	p := testutil.PricePanel(t)
	dated, err := p.LatestDated(testutil.Day(2021, time.January, 6))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, WriteSnapshotXLSX(path, dated))

	rows := readWorkbookRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SEC_ID", "PRICE", "VOLUME"}, rows[0])
	assert.Equal(t, []string{"AAPL", "11.5", "120"}, rows[1])
	assert.Equal(t, []string{"MSFT", "22.5", "220"}, rows[2])
}

func TestWriteSnapshotXLSXFieldSubset(t *testing.T) {
	p := testutil.PricePanel(t)
	dated, err := p.LatestDated(testutil.Day(2021, time.January, 4))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, WriteSnapshotXLSX(path, dated, "VOLUME"))

	rows := readWorkbookRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SEC_ID", "VOLUME"}, rows[0])
	assert.Equal(t, []string{"AAPL", "100"}, rows[1])

	err = WriteSnapshotXLSX(path, dated, "SECTOR")
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestWriteSnapshotXLSXUnsetCells(t *testing.T) {
	f := testutil.Snapshot(t, []string{"AAPL", "MSFT"},
		frame.NewFloats("PRICE", []float64{math.NaN(), 21.5}),
		frame.NewStrings("SECTOR", []string{"Technology", "Software"}),
	)
	dated := panel.DatedFrame{Date: testutil.Day(2021, time.January, 4), Frame: f, Tag: "PRICES"}

	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	require.NoError(t, WriteSnapshotXLSX(path, dated))

	rows := readWorkbookRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"AAPL", "", "Technology"}, rows[1])
	assert.Equal(t, []string{"MSFT", "21.5", "Software"}, rows[2])
}

// A written workbook reloads into an equivalent snapshot.
func TestWriteSnapshotXLSXRoundTrip(t *testing.T) {
	p := testutil.PricePanel(t)
	day := testutil.Day(2021, time.January, 5)
	dated, err := p.LatestDated(day)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot_20210105.xlsx")
	require.NoError(t, WriteSnapshotXLSX(path, dated))

	snap, err := loader.ReadSnapshot(path, loader.Options{
		DatePattern: `(\d{8})`,
		DateLayout:  "20060102",
	})
	require.NoError(t, err)

	assert.True(t, snap.Date.Equal(day))
	assert.Equal(t, dated.Frame.IndexName(), snap.Frame.IndexName())
	assert.Equal(t, dated.Frame.Index(), snap.Frame.Index())
	assert.Equal(t, dated.Frame.Columns(), snap.Frame.Columns())

	price, err := snap.Frame.Value("AAPL", "PRICE")
	require.NoError(t, err)
	assert.Equal(t, 10.5, price)

	// Rebuild a store from the reloaded snapshot and check resolution.
	rebuilt, err := panel.NewSecurityPanel(snap.Date, snap.Frame, "PRICES", nil, nil)
	require.NoError(t, err)
	v, err := rebuilt.ValueAt("MSFT", "VOLUME", testutil.Day(2021, time.January, 8))
	require.NoError(t, err)
	assert.Equal(t, 210.0, v)
}
