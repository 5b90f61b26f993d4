// Package frameops applies binary functions across pairs of frame
// columns.
//
// ApplyColumnwise walks matching columns of two frames, reconciling
// shapes first: rows align by label or by position, columns by name or
// by position, and a single-column operand can broadcast across the
// other side. Dispatch routes one column pair to the function matching
// the columns' value kind, degrading to a NaN column (or failing, under
// the strict policy) when the kinds are not comparable.
//
// The two compose through FuncSet.Func:
//
//	diff := frameops.FuncSet{Numeric: frameops.MapNumeric(func(a, b float64) float64 { return b - a })}
//	out, err := frameops.ApplyColumnwise(prev, curr, diff.Func(frameops.MismatchWarn), frameops.Options{})
package frameops
