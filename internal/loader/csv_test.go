package loader

import (
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneldata/internal/frame"
)

var testOpts = Options{DatePattern: `(\d{8})`, DateLayout: "20060102"}

func writeSnapshot(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeGzipSnapshot(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(file)
	_, err = zw.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())
	return path
}

func TestReadSnapshotCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "snapshot_20210104.csv",
		"SEC_ID,PRICE,SECTOR",
		"AAPL,9.5,TECH",
		"MSFT,,SOFTWARE",
		"IBM,12.25,HARDWARE",
	)

	snap, err := ReadSnapshotCSV(path, testOpts)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), snap.Date)
	assert.Equal(t, path, snap.Source)

	f := snap.Frame
	assert.Equal(t, "SEC_ID", f.IndexName())
	assert.Equal(t, []string{"AAPL", "MSFT", "IBM"}, f.Index())
	assert.Equal(t, []string{"PRICE", "SECTOR"}, f.Columns())

	price, err := f.Column("PRICE")
	require.NoError(t, err)
	assert.Equal(t, frame.KindNumeric, price.Kind())
	vals, err := price.Floats()
	require.NoError(t, err)
	assert.Equal(t, 9.5, vals[0])
	assert.True(t, math.IsNaN(vals[1]))
	assert.Equal(t, 12.25, vals[2])

	sector, err := f.Column("SECTOR")
	require.NoError(t, err)
	assert.Equal(t, frame.KindString, sector.Kind())
	strs, err := sector.Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"TECH", "SOFTWARE", "HARDWARE"}, strs)
}

func TestReadSnapshotCSVKindDetection(t *testing.T) {
	dir := t.TempDir()

	t.Run("date cells become temporal", func(t *testing.T) {
		path := writeSnapshot(t, dir, "listed_20210104.csv",
			"SEC_ID,LISTED",
			"AAPL,1980-12-12",
			"MSFT,1986-03-13",
		)
		snap, err := ReadSnapshotCSV(path, testOpts)
		require.NoError(t, err)

		listed, err := snap.Frame.Column("LISTED")
		require.NoError(t, err)
		assert.Equal(t, frame.KindTemporal, listed.Kind())
		times, err := listed.Times()
		require.NoError(t, err)
		assert.Equal(t, time.Date(1980, 12, 12, 0, 0, 0, 0, time.UTC), times[0])
	})

	t.Run("digit-only tokens stay numeric", func(t *testing.T) {
		path := writeSnapshot(t, dir, "codes_20210104.csv",
			"SEC_ID,CODE",
			"AAPL,20210104",
			"MSFT,19990101",
		)
		snap, err := ReadSnapshotCSV(path, testOpts)
		require.NoError(t, err)

		code, err := snap.Frame.Column("CODE")
		require.NoError(t, err)
		assert.Equal(t, frame.KindNumeric, code.Kind())
	})

	t.Run("thousands separators parse as numbers", func(t *testing.T) {
		path := writeSnapshot(t, dir, "volume_20210104.csv",
			"SEC_ID,VOLUME",
			`AAPL,"1,234.5"`,
			`MSFT,"10,000"`,
		)
		snap, err := ReadSnapshotCSV(path, testOpts)
		require.NoError(t, err)

		volume, err := snap.Frame.Column("VOLUME")
		require.NoError(t, err)
		vals, err := volume.Floats()
		require.NoError(t, err)
		assert.Equal(t, []float64{1234.5, 10000}, vals)
	})

	t.Run("mixed cells stay text", func(t *testing.T) {
		path := writeSnapshot(t, dir, "mixed_20210104.csv",
			"SEC_ID,NOTE",
			"AAPL,9.5",
			"MSFT,suspended",
		)
		snap, err := ReadSnapshotCSV(path, testOpts)
		require.NoError(t, err)

		note, err := snap.Frame.Column("NOTE")
		require.NoError(t, err)
		assert.Equal(t, frame.KindString, note.Kind())
	})
}

func TestReadSnapshotCSVGzip(t *testing.T) {
	dir := t.TempDir()
	path := writeGzipSnapshot(t, dir, "snapshot_20210105.csv.gz",
		"SEC_ID,PRICE",
		"AAPL,10.5",
		"MSFT,20.5",
	)

	snap, err := ReadSnapshotCSV(path, testOpts)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), snap.Date)
	assert.Equal(t, 2, snap.Frame.NumRows())

	price, err := snap.Frame.Column("PRICE")
	require.NoError(t, err)
	vals, err := price.Floats()
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 20.5}, vals)
}

func TestReadSnapshotCSVByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "snapshot_20210104.csv",
		"\ufeffSEC_ID,PRICE",
		"AAPL,9.5",
	)

	snap, err := ReadSnapshotCSV(path, testOpts)
	require.NoError(t, err)
	assert.Equal(t, "SEC_ID", snap.Frame.IndexName())
}

func TestReadSnapshotCSVDateResolution(t *testing.T) {
	dir := t.TempDir()

	t.Run("explicit date overrides the file name", func(t *testing.T) {
		path := writeSnapshot(t, dir, "snapshot_20210104.csv",
			"SEC_ID,PRICE",
			"AAPL,9.5",
		)
		pinned := time.Date(2022, 6, 30, 15, 4, 5, 0, time.UTC)
		snap, err := ReadSnapshotCSV(path, Options{Date: pinned})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC), snap.Date)
	})

	t.Run("file name without a date token", func(t *testing.T) {
		path := writeSnapshot(t, dir, "legacy.csv",
			"SEC_ID,PRICE",
			"AAPL,9.5",
		)
		_, err := ReadSnapshotCSV(path, testOpts)
		assert.ErrorContains(t, err, "no date token")
	})

	t.Run("pattern does not compile", func(t *testing.T) {
		path := writeSnapshot(t, dir, "snapshot_20210104.csv",
			"SEC_ID,PRICE",
			"AAPL,9.5",
		)
		_, err := ReadSnapshotCSV(path, Options{DatePattern: `(\d{8}`, DateLayout: "20060102"})
		assert.ErrorContains(t, err, "date pattern")
	})
}

func TestReadSnapshotCSVEmpty(t *testing.T) {
	dir := t.TempDir()

	t.Run("header only", func(t *testing.T) {
		path := writeSnapshot(t, dir, "snapshot_20210104.csv", "SEC_ID,PRICE")
		_, err := ReadSnapshotCSV(path, testOpts)
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("no content at all", func(t *testing.T) {
		path := filepath.Join(dir, "blank_20210104.csv")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		_, err := ReadSnapshotCSV(path, testOpts)
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("rows without identifiers are dropped", func(t *testing.T) {
		path := writeSnapshot(t, dir, "gaps_20210104.csv",
			"SEC_ID,PRICE",
			"AAPL,9.5",
			",99",
			"MSFT,20.5",
		)
		snap, err := ReadSnapshotCSV(path, testOpts)
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL", "MSFT"}, snap.Frame.Index())
	})
}

func TestReadSnapshotCSVInvalidOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, "snapshot_20210104.csv",
		"SEC_ID,PRICE",
		"AAPL,9.5",
	)

	_, err := ReadSnapshotCSV(path, Options{})
	assert.ErrorContains(t, err, "invalid loader options")
}
