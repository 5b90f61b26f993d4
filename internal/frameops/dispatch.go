package frameops

import (
	"fmt"
	"log/slog"
	"math"

	"paneldata/internal/frame"
)

// MismatchPolicy controls what Dispatch does when two columns have no
// comparison function: either degrade to a NaN column with a warning or
// fail the call.
type MismatchPolicy uint8

const (
	// MismatchWarn logs the mismatch and substitutes a NaN column.
	MismatchWarn MismatchPolicy = iota
	// MismatchError fails the call with ErrKindMismatch.
	MismatchError
)

// String returns the policy name used in logs.
func (p MismatchPolicy) String() string {
	if p == MismatchError {
		return "error"
	}
	return "warn"
}

// FuncSet routes a column pair to the function matching the columns'
// shared value kind. Entries may be left nil; a pair landing on a nil
// entry is treated as a mismatch.
type FuncSet struct {
	Numeric     BinaryFunc
	Temporal    BinaryFunc
	Bool        BinaryFunc
	String      BinaryFunc
	Categorical BinaryFunc
	Interval    BinaryFunc
}

func (fs FuncSet) forKind(k frame.Kind) BinaryFunc {
	switch k {
	case frame.KindNumeric:
		return fs.Numeric
	case frame.KindTemporal:
		return fs.Temporal
	case frame.KindBool:
		return fs.Bool
	case frame.KindString:
		return fs.String
	case frame.KindCategorical:
		return fs.Categorical
	case frame.KindInterval:
		return fs.Interval
	default:
		return nil
	}
}

// Dispatch applies the FuncSet entry matching the shared value kind of
// left and right. When the kinds differ, or no entry covers them, the
// outcome follows policy: MismatchError fails with ErrKindMismatch and
// MismatchWarn logs a warning and returns a NaN column sized and named
// to right.
func Dispatch(left, right *frame.Series, fns FuncSet, policy MismatchPolicy) (*frame.Series, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("dispatch: nil column")
	}
	if left.Kind() == right.Kind() {
		if fn := fns.forKind(left.Kind()); fn != nil {
			return fn(left, right)
		}
	}
	if policy == MismatchError {
		return nil, fmt.Errorf("dispatch %q (%s) against %q (%s): %w",
			left.Name(), left.Kind(), right.Name(), right.Kind(), ErrKindMismatch)
	}
	slog.Warn("columns do not have comparable kinds, returning NaN",
		"left", left.Name(),
		"left_kind", left.Kind().String(),
		"right", right.Name(),
		"right_kind", right.Kind().String())
	return nanColumn(right.Name(), right.Len()), nil
}

// Func adapts the set to a BinaryFunc so it can be passed straight to
// ApplyColumnwise.
func (fs FuncSet) Func(policy MismatchPolicy) BinaryFunc {
	return func(a, b *frame.Series) (*frame.Series, error) {
		return Dispatch(a, b, fs, policy)
	}
}

// MapNumeric lifts a scalar function onto numeric columns, pairing
// values by position. The result carries the right column's name.
func MapNumeric(fn func(a, b float64) float64) BinaryFunc {
	return func(a, b *frame.Series) (*frame.Series, error) {
		av, err := a.Floats()
		if err != nil {
			return nil, err
		}
		bv, err := b.Floats()
		if err != nil {
			return nil, err
		}
		if len(av) != len(bv) {
			return nil, fmt.Errorf("numeric columns %q and %q hold %d and %d values: %w",
				a.Name(), b.Name(), len(av), len(bv), ErrShapeMismatch)
		}
		out := make([]float64, len(bv))
		for i := range out {
			out[i] = fn(av[i], bv[i])
		}
		return frame.NewFloats(b.Name(), out), nil
	}
}

func nanColumn(name string, n int) *frame.Series {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.NaN()
	}
	return frame.NewFloats(name, vals)
}
