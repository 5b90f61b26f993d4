package panel

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneldata/internal/frame"
)

func securityFrame(t *testing.T, secs []string, prices []float64) *frame.Frame {
	t.Helper()
	f, err := frame.New("SEC_ID", secs, frame.NewFloats("PRICE", prices))
	require.NoError(t, err)
	return f
}

func TestNewSecurityPanelIndexHandling(t *testing.T) {
	t.Run("already indexed by SEC_ID", func(t *testing.T) {
		p, err := NewSecurityPanel(day(2021, 1, 31), securityFrame(t, []string{"A"}, []float64{1}), "", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"PRICE"}, p.FieldNames())
	})

	t.Run("promotes a SEC_ID column", func(t *testing.T) {
		raw, err := frame.New("row", []string{"0", "1"},
			frame.NewStrings("SEC_ID", []string{"A", "B"}),
			frame.NewFloats("PRICE", []float64{10, 20}),
		)
		require.NoError(t, err)

		p, err := NewSecurityPanel(day(2021, 1, 31), raw, "", nil, nil)
		require.NoError(t, err)

		snap, err := p.Latest(day(2021, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, "SEC_ID", snap.IndexName())
		assert.Equal(t, []string{"A", "B"}, snap.Index())
		assert.Equal(t, []string{"PRICE"}, p.FieldNames())
	})

	t.Run("no SEC_ID anywhere fails", func(t *testing.T) {
		raw, err := frame.New("row", []string{"0"},
			frame.NewFloats("PRICE", []float64{10}),
		)
		require.NoError(t, err)

		_, err = NewSecurityPanel(day(2021, 1, 31), raw, "", nil, nil)
		assert.ErrorIs(t, err, ErrMissingPrimaryKey)
	})
}

func TestSecurityPanelMetadata(t *testing.T) {
	newFrame := func(t *testing.T) *frame.Frame {
		f, err := frame.New("SEC_ID", []string{"A"},
			frame.NewFloats("PRICE", []float64{10}),
			frame.NewFloats("VOLUME", []float64{100}),
		)
		require.NoError(t, err)
		return f
	}

	t.Run("scalar unit applies to every field", func(t *testing.T) {
		p, err := NewSecurityPanel(day(2021, 1, 31), newFrame(t), "", "USD", nil)
		require.NoError(t, err)

		for _, name := range p.FieldNames() {
			f, ok := p.Schema().Get(name)
			require.True(t, ok)
			assert.Equal(t, "USD", f.Unit)
		}
	})

	t.Run("partial unit map leaves rest unset", func(t *testing.T) {
		p, err := NewSecurityPanel(day(2021, 1, 31), newFrame(t), "", map[string]string{"PRICE": "USD"}, nil)
		require.NoError(t, err)

		price, _ := p.Schema().Get("PRICE")
		volume, _ := p.Schema().Get("VOLUME")
		assert.Equal(t, "USD", price.Unit)
		assert.Equal(t, "", volume.Unit)
	})

	t.Run("scalar default applies to every field", func(t *testing.T) {
		p, err := NewSecurityPanel(day(2021, 1, 31), newFrame(t), "", nil, 0)
		require.NoError(t, err)

		price, _ := p.Schema().Get("PRICE")
		require.NotNil(t, price.Default)
		assert.Equal(t, 0.0, *price.Default)
	})

	t.Run("decoded config maps are accepted", func(t *testing.T) {
		unit := map[any]any{"PRICE": "USD"}
		defVal := map[any]any{"PRICE": 0, "VOLUME": 1.5}

		p, err := NewSecurityPanel(day(2021, 1, 31), newFrame(t), "", unit, defVal)
		require.NoError(t, err)

		volume, _ := p.Schema().Get("VOLUME")
		require.NotNil(t, volume.Default)
		assert.Equal(t, 1.5, *volume.Default)
	})

	t.Run("invalid metadata", func(t *testing.T) {
		tests := []struct {
			name   string
			unit   any
			defVal any
		}{
			{name: "numeric unit", unit: 7},
			{name: "bool default", defVal: true},
			{name: "string default", defVal: "zero"},
			{name: "unit map with numeric value", unit: map[string]any{"PRICE": 1}},
			{name: "default map with string value", defVal: map[string]any{"PRICE": "x"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewSecurityPanel(day(2021, 1, 31), newFrame(t), "", tt.unit, tt.defVal)
				assert.ErrorIs(t, err, ErrInvalidMetadata)
			})
		}
	})
}

func TestValueAt(t *testing.T) {
	f, err := frame.New("SEC_ID", []string{"A", "B"},
		frame.NewFloats("PRICE", []float64{10, 20}),
		frame.NewFloats("VOLUME", []float64{100, 200}),
	)
	require.NoError(t, err)

	p, err := NewSecurityPanel(day(2021, 1, 31), f, "", nil, map[string]float64{"PRICE": 0})
	require.NoError(t, err)

	t.Run("stored cell", func(t *testing.T) {
		v, err := p.ValueAt("B", "PRICE", day(2021, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, 20.0, v)
	})

	t.Run("missing security falls back to default", func(t *testing.T) {
		v, err := p.ValueAt("Z", "PRICE", day(2021, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
	})

	t.Run("missing security with unset default yields nil", func(t *testing.T) {
		v, err := p.ValueAt("Z", "VOLUME", day(2021, 1, 31))
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("undeclared field fails", func(t *testing.T) {
		_, err := p.ValueAt("A", "YIELD", day(2021, 1, 31))
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("query before all data fails", func(t *testing.T) {
		_, err := p.ValueAt("A", "PRICE", day(2020, 1, 1))
		assert.ErrorIs(t, err, ErrNoEarlierData)
	})

	t.Run("declared column missing from resolved snapshot falls back", func(t *testing.T) {
		// A later snapshot that dropped the VOLUME column: reads of
		// VOLUME as of that date use the default, not an error.
		slim := securityFrame(t, []string{"A"}, []float64{11})
		require.NoError(t, p.Insert(day(2021, 2, 28), slim))

		v, err := p.ValueAt("A", "VOLUME", day(2021, 2, 28))
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestSecurityPanelInsertEnforcesPrimaryKey(t *testing.T) {
	p, err := NewSecurityPanel(day(2021, 1, 31), securityFrame(t, []string{"A"}, []float64{1}), "", nil, nil)
	require.NoError(t, err)

	bad, err := frame.New("row", []string{"0"}, frame.NewFloats("PRICE", []float64{1}))
	require.NoError(t, err)

	err = p.Insert(day(2021, 2, 28), bad)
	assert.ErrorIs(t, err, ErrMissingPrimaryKey)
	assert.Equal(t, 1, p.Len())
}

func TestSecurityPanelEndToEnd(t *testing.T) {
	// Two monthly snapshots where security B drops out of the second:
	// as-of reads resolve to the right month and missing rows fall back
	// to the configured default.
	jan, err := frame.New("SEC_ID", []string{"A", "B"},
		frame.NewFloats("PRICE", []float64{10.5, 20.5}),
	)
	require.NoError(t, err)

	p, err := NewSecurityPanel(day(2021, 1, 31), jan, "PRICES", nil, map[string]float64{"PRICE": 0})
	require.NoError(t, err)

	feb := securityFrame(t, []string{"A"}, []float64{11.25})
	require.NoError(t, p.Insert(day(2021, 2, 28), feb))

	v, err := p.ValueAt("B", "PRICE", day(2021, 2, 28))
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "B is absent from the February snapshot")

	v, err = p.ValueAt("A", "PRICE", day(2021, 2, 15))
	require.NoError(t, err)
	assert.Equal(t, 10.5, v, "mid-February reads resolve to January")

	v, err = p.ValueAt("A", "PRICE", day(2021, 2, 28))
	require.NoError(t, err)
	assert.Equal(t, 11.25, v)
}

func TestExportCSV(t *testing.T) {
	f, err := frame.New("SEC_ID", []string{"A", "B"},
		frame.NewFloats("PRICE", []float64{10.5, 20}),
		frame.NewStrings("SECTOR", []string{"TECH", ""}),
	)
	require.NoError(t, err)

	p, err := NewSecurityPanel(day(2021, 1, 31), f, "", nil, nil)
	require.NoError(t, err)

	t.Run("all fields in schema order", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, p.ExportCSV(&sb, day(2021, 1, 31)))

		want := "SEC_ID,PRICE,SECTOR\nA,10.5,TECH\nB,20,\n"
		assert.Equal(t, want, sb.String())
	})

	t.Run("column subset", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, p.ExportCSV(&sb, day(2021, 1, 31), "SECTOR"))

		want := "SEC_ID,SECTOR\nA,TECH\nB,\n"
		assert.Equal(t, want, sb.String())
	})

	t.Run("unresolvable date fails", func(t *testing.T) {
		var sb strings.Builder
		err := p.ExportCSV(&sb, day(2020, 1, 1))
		assert.ErrorIs(t, err, ErrNoEarlierData)
	})
}

func TestValueAtTimeOfDayQuery(t *testing.T) {
	p, err := NewSecurityPanel(day(2021, 1, 31), securityFrame(t, []string{"A"}, []float64{1}), "", nil, nil)
	require.NoError(t, err)

	v, err := p.ValueAt("A", "PRICE", time.Date(2021, 1, 31, 16, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}
