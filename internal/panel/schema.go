package panel

import "fmt"

// Field is the per-column metadata record of a security store: the
// column name, its measurement unit (empty when unset), and the value
// returned when a security is absent from a resolved snapshot (nil when
// unset).
type Field struct {
	Name    string
	Unit    string
	Default *float64
}

// Schema holds one Field per column of the initial snapshot, in column
// order. Built once at store construction and never mutated.
type Schema struct {
	names  []string
	fields map[string]Field
}

func newSchema(cols []string, units map[string]string, defaults map[string]float64) *Schema {
	s := &Schema{
		names:  cols,
		fields: make(map[string]Field, len(cols)),
	}
	for _, name := range cols {
		f := Field{Name: name, Unit: units[name]}
		if v, ok := defaults[name]; ok {
			f.Default = &v
		}
		s.fields[name] = f
	}
	return s
}

// Names returns the declared field names in column order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get returns the descriptor for a field name and whether it is declared.
func (s *Schema) Get(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.names) }

// normalizeUnits accepts the loose unit argument forms: nil (unset), a
// single string applied to every column, or a per-column map. Maps may
// be partial; keys outside the column set are ignored when the schema is
// assembled. YAML-decoded map[any]any is accepted.
func normalizeUnits(unit any, cols []string) (map[string]string, error) {
	switch u := unit.(type) {
	case nil:
		return nil, nil
	case string:
		out := make(map[string]string, len(cols))
		for _, c := range cols {
			out[c] = u
		}
		return out, nil
	case map[string]string:
		return u, nil
	case map[string]any:
		out := make(map[string]string, len(u))
		for k, v := range u {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("unit for %q is %T, want string: %w", k, v, ErrInvalidMetadata)
			}
			out[k] = s
		}
		return out, nil
	case map[any]any:
		out := make(map[string]string, len(u))
		for k, v := range u {
			ks, kok := k.(string)
			vs, vok := v.(string)
			if !kok || !vok {
				return nil, fmt.Errorf("unit entry %v: %v: %w", k, v, ErrInvalidMetadata)
			}
			out[ks] = vs
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unit must be a string or a map, got %T: %w", unit, ErrInvalidMetadata)
	}
}

// normalizeDefaults accepts the loose default-value argument forms: nil
// (unset), a single numeric value applied to every column, or a
// per-column map of numeric values.
func normalizeDefaults(defVal any, cols []string) (map[string]float64, error) {
	switch d := defVal.(type) {
	case nil:
		return nil, nil
	case map[string]float64:
		return d, nil
	case map[string]int:
		out := make(map[string]float64, len(d))
		for k, v := range d {
			out[k] = float64(v)
		}
		return out, nil
	case map[string]any:
		out := make(map[string]float64, len(d))
		for k, v := range d {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("default for %q is %T, want numeric: %w", k, v, ErrInvalidMetadata)
			}
			out[k] = f
		}
		return out, nil
	case map[any]any:
		out := make(map[string]float64, len(d))
		for k, v := range d {
			ks, kok := k.(string)
			f, vok := toFloat(v)
			if !kok || !vok {
				return nil, fmt.Errorf("default entry %v: %v: %w", k, v, ErrInvalidMetadata)
			}
			out[ks] = f
		}
		return out, nil
	default:
		if f, ok := toFloat(defVal); ok {
			out := make(map[string]float64, len(cols))
			for _, c := range cols {
				out[c] = f
			}
			return out, nil
		}
		return nil, fmt.Errorf("default value must be numeric or a map, got %T: %w", defVal, ErrInvalidMetadata)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
