package frameops

import (
	"bytes"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paneldata/internal/frame"
)

func mark(got *string, label string) BinaryFunc {
	return func(a, b *frame.Series) (*frame.Series, error) {
		*got = label
		return frame.NewFloats(b.Name(), make([]float64, b.Len())), nil
	}
}

func TestDispatchRoutesByKind(t *testing.T) {
	now := time.Now()
	catA, err := frame.NewCategorical("a", []string{"TECH"}, nil)
	require.NoError(t, err)
	catB, err := frame.NewCategorical("b", []string{"BANK"}, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		left  *frame.Series
		right *frame.Series
		want  string
	}{
		{"numeric", frame.NewFloats("a", []float64{1}), frame.NewFloats("b", []float64{2}), "numeric"},
		{"instants", frame.NewTimes("a", []time.Time{now}), frame.NewTimes("b", []time.Time{now}), "temporal"},
		{"durations", frame.NewDurations("a", []time.Duration{time.Hour}), frame.NewDurations("b", []time.Duration{time.Minute}), "temporal"},
		{"instants against durations", frame.NewTimes("a", []time.Time{now}), frame.NewDurations("b", []time.Duration{time.Hour}), "temporal"},
		{"bool", frame.NewBools("a", []bool{true}), frame.NewBools("b", []bool{false}), "bool"},
		{"string", frame.NewStrings("a", []string{"x"}), frame.NewStrings("b", []string{"y"}), "string"},
		{"categorical", catA, catB, "categorical"},
		{"interval", frame.NewIntervals("a", []frame.Interval{{0, 1}}), frame.NewIntervals("b", []frame.Interval{{1, 2}}), "interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			fns := FuncSet{
				Numeric:     mark(&got, "numeric"),
				Temporal:    mark(&got, "temporal"),
				Bool:        mark(&got, "bool"),
				String:      mark(&got, "string"),
				Categorical: mark(&got, "categorical"),
				Interval:    mark(&got, "interval"),
			}

			_, err := Dispatch(tt.left, tt.right, fns, MismatchError)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDispatchMismatch(t *testing.T) {
	left := frame.NewFloats("PRICE", []float64{1, 2})
	right := frame.NewStrings("SECTOR", []string{"TECH", "BANK", "OIL"})
	fns := FuncSet{
		Numeric: sub,
		String: func(a, b *frame.Series) (*frame.Series, error) {
			return frame.NewFloats(b.Name(), make([]float64, b.Len())), nil
		},
	}

	t.Run("warn policy substitutes NaN sized to right", func(t *testing.T) {
		var buf bytes.Buffer
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
		t.Cleanup(func() { slog.SetDefault(prev) })

		out, err := Dispatch(left, right, fns, MismatchWarn)
		require.NoError(t, err)

		assert.Equal(t, "SECTOR", out.Name())
		assert.Equal(t, frame.KindNumeric, out.Kind())
		vals, err := out.Floats()
		require.NoError(t, err)
		require.Len(t, vals, 3)
		for _, v := range vals {
			assert.True(t, math.IsNaN(v))
		}
		assert.Contains(t, buf.String(), "do not have comparable kinds")
		assert.Contains(t, buf.String(), "left_kind=numeric")
		assert.Contains(t, buf.String(), "right_kind=string")
	})

	t.Run("error policy fails", func(t *testing.T) {
		_, err := Dispatch(left, right, fns, MismatchError)
		assert.ErrorIs(t, err, ErrKindMismatch)
	})
}

func TestDispatchWithoutMatchingFunction(t *testing.T) {
	left := frame.NewBools("a", []bool{true})
	right := frame.NewBools("b", []bool{false})

	out, err := Dispatch(left, right, FuncSet{}, MismatchWarn)
	require.NoError(t, err)
	vals, err := out.Floats()
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.True(t, math.IsNaN(vals[0]))

	_, err = Dispatch(left, right, FuncSet{}, MismatchError)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestDispatchNilColumns(t *testing.T) {
	_, err := Dispatch(nil, frame.NewFloats("b", nil), FuncSet{}, MismatchWarn)
	assert.Error(t, err)

	_, err = Dispatch(frame.NewFloats("a", nil), nil, FuncSet{}, MismatchWarn)
	assert.Error(t, err)
}

func TestFuncSetComposesWithApply(t *testing.T) {
	left := newFrame(t, []string{"A", "B"},
		frame.NewFloats("PRICE", []float64{10, 20}),
		frame.NewStrings("SECTOR", []string{"TECH", "BANK"}),
	)
	right := newFrame(t, []string{"A", "B"},
		frame.NewFloats("PRICE", []float64{11, 22}),
		frame.NewFloats("SECTOR", []float64{1, 2}),
	)

	fns := FuncSet{Numeric: sub}
	out, err := ApplyColumnwise(left, right, fns.Func(MismatchWarn), Options{})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, floats(t, out, "PRICE"))
	sector := floats(t, out, "SECTOR")
	require.Len(t, sector, 2)
	assert.True(t, math.IsNaN(sector[0]))
	assert.True(t, math.IsNaN(sector[1]))
}

func TestMapNumeric(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := sub(frame.NewFloats("a", []float64{1}), frame.NewFloats("b", []float64{1, 2}))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("non-numeric input", func(t *testing.T) {
		_, err := sub(frame.NewStrings("a", []string{"x"}), frame.NewFloats("b", []float64{1}))
		assert.ErrorIs(t, err, frame.ErrTypeMismatch)
	})
}

func TestMismatchPolicyString(t *testing.T) {
	assert.Equal(t, "warn", MismatchWarn.String())
	assert.Equal(t, "error", MismatchError.String())
}
