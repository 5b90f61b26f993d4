package frame

import (
	"fmt"
	"time"
)

// Kind is the value category of a column, used to route column-pair
// operations to a matching comparison function.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindNumeric holds float64 values
	KindNumeric
	// KindTemporal holds time.Time or time.Duration values
	KindTemporal
	// KindBool holds bool values
	KindBool
	// KindString holds free-form string values
	KindString
	// KindCategorical holds string values drawn from a fixed level set
	KindCategorical
	// KindInterval holds numeric interval values
	KindInterval
)

// String returns the category name used in logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindCategorical:
		return "categorical"
	case KindInterval:
		return "interval"
	default:
		return "invalid"
	}
}

// Interval is a numeric range value, closed on the right.
type Interval struct {
	Left  float64
	Right float64
}

// String renders the interval in the conventional "(left, right]" form.
func (iv Interval) String() string {
	return fmt.Sprintf("(%g, %g]", iv.Left, iv.Right)
}

// Series is one named column. The backing slice is typed per kind:
// []float64, []time.Time or []time.Duration, []bool, []string, or
// []Interval. Series are immutable by convention; operations return
// new values.
type Series struct {
	name       string
	kind       Kind
	data       any
	categories []string
}

// NewSeries builds a column after checking that the backing slice
// matches the declared kind.
func NewSeries(name string, kind Kind, data any) (*Series, error) {
	ok := false
	switch kind {
	case KindNumeric:
		_, ok = data.([]float64)
	case KindTemporal:
		if _, isTime := data.([]time.Time); isTime {
			ok = true
		} else {
			_, ok = data.([]time.Duration)
		}
	case KindBool:
		_, ok = data.([]bool)
	case KindString, KindCategorical:
		_, ok = data.([]string)
	case KindInterval:
		_, ok = data.([]Interval)
	}
	if !ok {
		return nil, fmt.Errorf("series %q: %T as %s: %w", name, data, kind, ErrTypeMismatch)
	}
	return &Series{name: name, kind: kind, data: data}, nil
}

// NewFloats builds a numeric column.
func NewFloats(name string, vals []float64) *Series {
	return &Series{name: name, kind: KindNumeric, data: vals}
}

// NewTimes builds a temporal column of instants.
func NewTimes(name string, vals []time.Time) *Series {
	return &Series{name: name, kind: KindTemporal, data: vals}
}

// NewDurations builds a temporal column of durations.
func NewDurations(name string, vals []time.Duration) *Series {
	return &Series{name: name, kind: KindTemporal, data: vals}
}

// NewBools builds a boolean column.
func NewBools(name string, vals []bool) *Series {
	return &Series{name: name, kind: KindBool, data: vals}
}

// NewStrings builds a free-form string column.
func NewStrings(name string, vals []string) *Series {
	return &Series{name: name, kind: KindString, data: vals}
}

// NewCategorical builds a string column restricted to a fixed level set.
// Nil levels are derived from the values in first-seen order; a value
// outside supplied levels fails with ErrBadCategory.
func NewCategorical(name string, vals []string, levels []string) (*Series, error) {
	if levels == nil {
		seen := make(map[string]bool, len(vals))
		for _, v := range vals {
			if !seen[v] {
				seen[v] = true
				levels = append(levels, v)
			}
		}
	} else {
		allowed := make(map[string]bool, len(levels))
		for _, l := range levels {
			allowed[l] = true
		}
		for _, v := range vals {
			if !allowed[v] {
				return nil, fmt.Errorf("series %q: value %q: %w", name, v, ErrBadCategory)
			}
		}
	}
	return &Series{name: name, kind: KindCategorical, data: vals, categories: levels}, nil
}

// NewIntervals builds an interval column.
func NewIntervals(name string, vals []Interval) *Series {
	return &Series{name: name, kind: KindInterval, data: vals}
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// Kind returns the column's value category.
func (s *Series) Kind() Kind { return s.kind }

// Categories returns the level set of a categorical column, nil otherwise.
func (s *Series) Categories() []string { return s.categories }

// Len returns the number of values.
func (s *Series) Len() int {
	switch d := s.data.(type) {
	case []float64:
		return len(d)
	case []time.Time:
		return len(d)
	case []time.Duration:
		return len(d)
	case []bool:
		return len(d)
	case []string:
		return len(d)
	case []Interval:
		return len(d)
	default:
		return 0
	}
}

// At returns the value at position i.
func (s *Series) At(i int) any {
	switch d := s.data.(type) {
	case []float64:
		return d[i]
	case []time.Time:
		return d[i]
	case []time.Duration:
		return d[i]
	case []bool:
		return d[i]
	case []string:
		return d[i]
	case []Interval:
		return d[i]
	default:
		return nil
	}
}

// Values returns the backing slice.
func (s *Series) Values() any { return s.data }

// Floats returns the backing slice of a numeric column.
func (s *Series) Floats() ([]float64, error) {
	d, ok := s.data.([]float64)
	if !ok {
		return nil, fmt.Errorf("series %q is %s, not numeric: %w", s.name, s.kind, ErrTypeMismatch)
	}
	return d, nil
}

// Times returns the backing slice of a temporal column of instants.
func (s *Series) Times() ([]time.Time, error) {
	d, ok := s.data.([]time.Time)
	if !ok {
		return nil, fmt.Errorf("series %q does not hold instants: %w", s.name, ErrTypeMismatch)
	}
	return d, nil
}

// Durations returns the backing slice of a temporal column of durations.
func (s *Series) Durations() ([]time.Duration, error) {
	d, ok := s.data.([]time.Duration)
	if !ok {
		return nil, fmt.Errorf("series %q does not hold durations: %w", s.name, ErrTypeMismatch)
	}
	return d, nil
}

// Bools returns the backing slice of a boolean column.
func (s *Series) Bools() ([]bool, error) {
	d, ok := s.data.([]bool)
	if !ok {
		return nil, fmt.Errorf("series %q is %s, not bool: %w", s.name, s.kind, ErrTypeMismatch)
	}
	return d, nil
}

// Strings returns the backing slice of a string or categorical column.
func (s *Series) Strings() ([]string, error) {
	d, ok := s.data.([]string)
	if !ok {
		return nil, fmt.Errorf("series %q is %s, not string-like: %w", s.name, s.kind, ErrTypeMismatch)
	}
	return d, nil
}

// Intervals returns the backing slice of an interval column.
func (s *Series) Intervals() ([]Interval, error) {
	d, ok := s.data.([]Interval)
	if !ok {
		return nil, fmt.Errorf("series %q is %s, not interval: %w", s.name, s.kind, ErrTypeMismatch)
	}
	return d, nil
}

// Rename returns a copy of the series under a new name, sharing the
// backing slice.
func (s *Series) Rename(name string) *Series {
	return &Series{name: name, kind: s.kind, data: s.data, categories: s.categories}
}

// take returns a new series holding the values at the given positions.
func (s *Series) take(idx []int) *Series {
	out := &Series{name: s.name, kind: s.kind, categories: s.categories}
	switch d := s.data.(type) {
	case []float64:
		vals := make([]float64, len(idx))
		for i, j := range idx {
			vals[i] = d[j]
		}
		out.data = vals
	case []time.Time:
		vals := make([]time.Time, len(idx))
		for i, j := range idx {
			vals[i] = d[j]
		}
		out.data = vals
	case []time.Duration:
		vals := make([]time.Duration, len(idx))
		for i, j := range idx {
			vals[i] = d[j]
		}
		out.data = vals
	case []bool:
		vals := make([]bool, len(idx))
		for i, j := range idx {
			vals[i] = d[j]
		}
		out.data = vals
	case []string:
		vals := make([]string, len(idx))
		for i, j := range idx {
			vals[i] = d[j]
		}
		out.data = vals
	case []Interval:
		vals := make([]Interval, len(idx))
		for i, j := range idx {
			vals[i] = d[j]
		}
		out.data = vals
	}
	return out
}
