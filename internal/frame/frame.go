package frame

import (
	"fmt"
	"strconv"
	"time"
)

// Frame is a labeled 2-D table: rows keyed by an index label, columns
// keyed by field names. Frames are immutable by convention; selection
// and promotion return new frames that share column data where possible.
type Frame struct {
	indexName string
	index     []string
	columns   []*Series
	colPos    map[string]int
	rowPos    map[string]int
}

// New builds a frame from an index and its columns. Every column must
// match the index length; duplicate column names are rejected. Duplicate
// row labels are allowed, label lookups resolve to the first occurrence.
func New(indexName string, index []string, cols ...*Series) (*Frame, error) {
	f := &Frame{
		indexName: indexName,
		index:     index,
		columns:   cols,
		colPos:    make(map[string]int, len(cols)),
		rowPos:    make(map[string]int, len(index)),
	}
	for i, c := range cols {
		if c.Len() != len(index) {
			return nil, fmt.Errorf("column %q has %d values for %d rows: %w", c.Name(), c.Len(), len(index), ErrLengthMismatch)
		}
		if _, dup := f.colPos[c.Name()]; dup {
			return nil, fmt.Errorf("column %q: %w", c.Name(), ErrDuplicateColumn)
		}
		f.colPos[c.Name()] = i
	}
	for i, label := range index {
		if _, seen := f.rowPos[label]; !seen {
			f.rowPos[label] = i
		}
	}
	return f, nil
}

// IndexName returns the row index label.
func (f *Frame) IndexName() string { return f.indexName }

// Index returns a copy of the row labels.
func (f *Frame) Index() []string {
	out := make([]string, len(f.index))
	copy(out, f.index)
	return out
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return len(f.index) }

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.columns) }

// Columns returns the column names in declaration order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	for i, c := range f.columns {
		out[i] = c.Name()
	}
	return out
}

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.colPos[name]
	return ok
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Series, error) {
	i, ok := f.colPos[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, ErrColumnNotFound)
	}
	return f.columns[i], nil
}

// ColumnAt returns the column at position i.
func (f *Frame) ColumnAt(i int) *Series { return f.columns[i] }

// RowPos returns the position of a row label.
func (f *Frame) RowPos(label string) (int, bool) {
	i, ok := f.rowPos[label]
	return i, ok
}

// At returns the cell at row i, column j.
func (f *Frame) At(i, j int) any {
	return f.columns[j].At(i)
}

// Value returns the cell at a row label and column name.
func (f *Frame) Value(rowLabel, col string) (any, error) {
	s, err := f.Column(col)
	if err != nil {
		return nil, err
	}
	i, ok := f.rowPos[rowLabel]
	if !ok {
		return nil, fmt.Errorf("row %q: %w", rowLabel, ErrRowNotFound)
	}
	return s.At(i), nil
}

// Select returns a new frame with the named columns in the given order
// and all rows retained.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Series, len(names))
	for i, name := range names {
		s, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = s
	}
	return New(f.indexName, f.index, cols...)
}

// SelectRows returns a new frame holding the given row labels in order.
// Every label must exist.
func (f *Frame) SelectRows(labels []string) (*Frame, error) {
	idx := make([]int, len(labels))
	for i, label := range labels {
		pos, ok := f.rowPos[label]
		if !ok {
			return nil, fmt.Errorf("row %q: %w", label, ErrRowNotFound)
		}
		idx[i] = pos
	}
	cols := make([]*Series, len(f.columns))
	for i, c := range f.columns {
		cols[i] = c.take(idx)
	}
	return New(f.indexName, labels, cols...)
}

// SetIndex promotes the named column to be the row index. The promoted
// column's values become the row labels (rendered to strings for
// non-string kinds) and the column is removed from the column set.
func (f *Frame) SetIndex(col string) (*Frame, error) {
	promoted, err := f.Column(col)
	if err != nil {
		return nil, err
	}

	labels := make([]string, promoted.Len())
	for i := range labels {
		labels[i] = renderLabel(promoted.At(i))
	}

	cols := make([]*Series, 0, len(f.columns)-1)
	for _, c := range f.columns {
		if c.Name() == col {
			continue
		}
		cols = append(cols, c)
	}
	return New(col, labels, cols...)
}

// SharedIndex returns the row labels present in both frames, in the
// receiver's order.
func (f *Frame) SharedIndex(other *Frame) []string {
	var shared []string
	for _, label := range f.index {
		if _, ok := other.rowPos[label]; ok {
			shared = append(shared, label)
		}
	}
	return shared
}

// SharedColumns returns the column names present in both frames, in the
// receiver's order.
func (f *Frame) SharedColumns(other *Frame) []string {
	var shared []string
	for _, c := range f.columns {
		if other.HasColumn(c.Name()) {
			shared = append(shared, c.Name())
		}
	}
	return shared
}

func renderLabel(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
