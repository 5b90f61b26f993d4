package panel

import (
	"errors"
	"fmt"
	"io"
	"time"

	"paneldata/internal/frame"
)

// PrimaryKey is the row index label every snapshot of a SecurityPanel
// must carry.
const PrimaryKey = "SEC_ID"

// SecurityPanel is a Collection whose snapshots are indexed by SEC_ID
// and whose columns carry unit and default-value metadata. Lookups for
// securities absent from a resolved snapshot fall back to the field's
// configured default instead of failing.
type SecurityPanel struct {
	Collection
	schema *Schema
}

// NewSecurityPanel creates a security store from an initial dated
// snapshot. unit may be nil, a single string, or a per-column map;
// defVal may be nil, a single numeric value, or a per-column numeric
// map. Any other shape fails with ErrInvalidMetadata. The snapshot must
// either be indexed by SEC_ID already or carry a SEC_ID column to
// promote; otherwise construction fails with ErrMissingPrimaryKey.
func NewSecurityPanel(date time.Time, f *frame.Frame, tag string, unit, defVal any) (*SecurityPanel, error) {
	cols := f.Columns()

	units, err := normalizeUnits(unit, cols)
	if err != nil {
		return nil, err
	}
	defaults, err := normalizeDefaults(defVal, cols)
	if err != nil {
		return nil, err
	}

	indexed, err := withPrimaryKey(f)
	if err != nil {
		return nil, err
	}

	p := &SecurityPanel{schema: newSchema(indexed.Columns(), units, defaults)}
	if tag == "" {
		tag = DefaultTag
	}
	p.Collection = *NewCollection(date, indexed, tag)
	return p, nil
}

// Insert stores a snapshot after normalizing its index to SEC_ID.
func (p *SecurityPanel) Insert(date time.Time, f *frame.Frame) error {
	indexed, err := withPrimaryKey(f)
	if err != nil {
		return err
	}
	p.Collection.Insert(date, indexed)
	return nil
}

// FieldNames returns the declared field names in schema order.
func (p *SecurityPanel) FieldNames() []string {
	return p.schema.Names()
}

// Schema returns the store's field descriptors.
func (p *SecurityPanel) Schema() *Schema { return p.schema }

// ValueAt returns the value of a field for one security as of a date.
// The snapshot resolves through the collection's as-of rules; an
// undeclared field fails with ErrUnknownField; a security or column
// absent from the resolved snapshot yields the field's configured
// default (nil when unset) rather than an error.
func (p *SecurityPanel) ValueAt(key, field string, asOf time.Time) (any, error) {
	snap, err := p.Latest(asOf)
	if err != nil {
		return nil, err
	}

	desc, ok := p.schema.Get(field)
	if !ok {
		return nil, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}

	v, err := snap.Value(key, field)
	if err != nil {
		if errors.Is(err, frame.ErrRowNotFound) || errors.Is(err, frame.ErrColumnNotFound) {
			if desc.Default != nil {
				return *desc.Default, nil
			}
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// ExportCSV writes the snapshot resolved as of asOf to w as delimited
// text: a header of SEC_ID plus the requested fields (all declared
// fields in schema order when none are given), then one row per
// security. Unset values render as empty strings.
func (p *SecurityPanel) ExportCSV(w io.Writer, asOf time.Time, fields ...string) error {
	if len(fields) == 0 {
		fields = p.schema.Names()
	}
	dated, err := p.SelectFields(fields, asOf, "")
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return writeCSV(w, dated.Frame)
}

// withPrimaryKey validates or establishes the SEC_ID index on a
// snapshot: accepted as-is when already indexed by SEC_ID, promoted when
// a SEC_ID column exists, rejected otherwise.
func withPrimaryKey(f *frame.Frame) (*frame.Frame, error) {
	if f.IndexName() == PrimaryKey {
		return f, nil
	}
	if f.HasColumn(PrimaryKey) {
		return f.SetIndex(PrimaryKey)
	}
	return nil, fmt.Errorf("snapshot needs a %s index or column: %w", PrimaryKey, ErrMissingPrimaryKey)
}
