package exporter

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneldata/internal/frame"
	"paneldata/internal/panel"
	"paneldata/internal/shared/testutil"
)

func TestWriteSnapshotCSV(t *testing.T) {
	p := testutil.PricePanel(t)
	dated, err := p.LatestDated(testutil.Day(2021, time.January, 5))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshotCSV(&buf, dated))

	want := "SEC_ID,PRICE,VOLUME\n" +
		"AAPL,10.5,110\n" +
		"MSFT,21.5,210\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSnapshotCSVFieldSubset(t *testing.T) {
	p := testutil.PricePanel(t)
	dated, err := p.LatestDated(testutil.Day(2021, time.January, 4))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshotCSV(&buf, dated, "PRICE"))

	want := "SEC_ID,PRICE\n" +
		"AAPL,9.5\n" +
		"MSFT,20.5\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSnapshotCSVUnknownField(t *testing.T) {
	p := testutil.PricePanel(t)
	dated, err := p.LatestDated(testutil.Day(2021, time.January, 4))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteSnapshotCSV(&buf, dated, "SECTOR")
	assert.ErrorIs(t, err, frame.ErrColumnNotFound)
}

func TestSnapshotRecordsRendersUnsetCells(t *testing.T) {
	f := testutil.Snapshot(t, []string{"AAPL", "MSFT"},
		frame.NewFloats("PRICE", []float64{10.5, math.NaN()}),
		frame.NewStrings("SECTOR", []string{"Technology", ""}),
	)
	dated := panel.DatedFrame{Date: testutil.Day(2021, time.January, 4), Frame: f, Tag: "PRICES"}

	header, records, err := SnapshotRecords(dated)
	require.NoError(t, err)

	assert.Equal(t, []string{"SEC_ID", "PRICE", "SECTOR"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"AAPL", "10.5", "Technology"}, records[0])
	assert.Equal(t, []string{"MSFT", "", ""}, records[1])
}
