package frameops

import (
	"fmt"

	"paneldata/internal/frame"
)

// BinaryFunc combines two equal-length columns into one column of the
// same length.
type BinaryFunc func(a, b *frame.Series) (*frame.Series, error)

// Options selects how rows and columns are paired between the two
// operands of ApplyColumnwise.
type Options struct {
	// IgnoreIndex pairs rows by position instead of by row label.
	// Positional pairing requires equal row counts.
	IgnoreIndex bool

	// IgnoreColumns pairs columns by position instead of by name.
	// Positional pairing allows a single-column operand to broadcast
	// across the other operand's columns.
	IgnoreColumns bool
}

// ApplyColumnwise applies fn to pairs of matching columns from left and
// right and assembles the results into a new frame carrying right's row
// labels. Column pairing follows opts:
//
//	IgnoreIndex IgnoreColumns  left column   rows
//	false       false          by name       by label
//	false       true           by position   by label
//	true        false          by name       by position
//	true        true           by position   by position
//
// Shapes reconcile before pairing. Unequal row counts survive only under
// label pairing when the label sets overlap; both sides then shrink to
// the shared labels in right's order. Unequal column counts survive under
// positional pairing when one side has a single column, which broadcasts
// across the other side's columns, and under name pairing when the name
// sets overlap, keeping shared names in left's order. Anything else fails
// with ErrShapeMismatch.
func ApplyColumnwise(left, right *frame.Frame, fn BinaryFunc, opts Options) (*frame.Frame, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("apply columnwise: nil operand")
	}
	if fn == nil {
		return nil, fmt.Errorf("apply columnwise: nil binary function")
	}

	left, right, err := reconcileRows(left, right, opts)
	if err != nil {
		return nil, fmt.Errorf("apply columnwise: %w", err)
	}
	left, right, err = reconcileColumns(left, right, opts)
	if err != nil {
		return nil, fmt.Errorf("apply columnwise: %w", err)
	}

	out := make([]*frame.Series, right.NumCols())
	for j := 0; j < right.NumCols(); j++ {
		rcol := right.ColumnAt(j)

		var lcol *frame.Series
		if opts.IgnoreColumns {
			lcol = left.ColumnAt(j)
		} else if lcol, err = left.Column(rcol.Name()); err != nil {
			return nil, fmt.Errorf("apply columnwise: matching columns: %w", err)
		}

		res, err := fn(lcol, rcol)
		if err != nil {
			return nil, fmt.Errorf("apply columnwise: column %q: %w", rcol.Name(), err)
		}
		n := 0
		if res != nil {
			n = res.Len()
		}
		if n != right.NumRows() {
			return nil, fmt.Errorf("apply columnwise: column %q: function returned %d values for %d rows: %w",
				rcol.Name(), n, right.NumRows(), ErrShapeMismatch)
		}
		out[j] = res.Rename(rcol.Name())
	}
	return frame.New(right.IndexName(), right.Index(), out...)
}

// reconcileRows aligns the row axes. Under label pairing the left frame
// is re-ordered to right's labels; unequal row counts shrink both sides
// to the shared labels in right's order.
func reconcileRows(left, right *frame.Frame, opts Options) (*frame.Frame, *frame.Frame, error) {
	if left.NumRows() != right.NumRows() {
		if opts.IgnoreIndex {
			return nil, nil, fmt.Errorf("%d rows against %d when pairing rows by position: %w",
				left.NumRows(), right.NumRows(), ErrShapeMismatch)
		}
		shared := right.SharedIndex(left)
		if len(shared) == 0 {
			return nil, nil, fmt.Errorf("no shared row labels: %w", ErrShapeMismatch)
		}
		r, err := right.SelectRows(shared)
		if err != nil {
			return nil, nil, err
		}
		l, err := left.SelectRows(shared)
		if err != nil {
			return nil, nil, err
		}
		return l, r, nil
	}
	if !opts.IgnoreIndex {
		l, err := left.SelectRows(right.Index())
		if err != nil {
			return nil, nil, fmt.Errorf("aligning rows: %w", err)
		}
		return l, right, nil
	}
	return left, right, nil
}

// reconcileColumns aligns the column axes. Under positional pairing a
// single-column side broadcasts across the other side's columns; under
// name pairing both sides shrink to the shared names in left's order.
func reconcileColumns(left, right *frame.Frame, opts Options) (*frame.Frame, *frame.Frame, error) {
	if left.NumCols() == right.NumCols() {
		return left, right, nil
	}
	if opts.IgnoreColumns {
		switch {
		case left.NumCols() == 1:
			l, err := broadcast(left, right.Columns())
			if err != nil {
				return nil, nil, err
			}
			return l, right, nil
		case right.NumCols() == 1:
			r, err := broadcast(right, left.Columns())
			if err != nil {
				return nil, nil, err
			}
			return left, r, nil
		default:
			return nil, nil, fmt.Errorf("%d columns against %d and neither side is a single column: %w",
				left.NumCols(), right.NumCols(), ErrShapeMismatch)
		}
	}
	shared := left.SharedColumns(right)
	if len(shared) == 0 {
		return nil, nil, fmt.Errorf("no shared column names: %w", ErrShapeMismatch)
	}
	l, err := left.Select(shared...)
	if err != nil {
		return nil, nil, err
	}
	r, err := right.Select(shared...)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// broadcast replicates the single column of f once per target name.
func broadcast(f *frame.Frame, names []string) (*frame.Frame, error) {
	col := f.ColumnAt(0)
	cols := make([]*frame.Series, len(names))
	for i, name := range names {
		cols[i] = col.Rename(name)
	}
	return frame.New(f.IndexName(), f.Index(), cols...)
}
