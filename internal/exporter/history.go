package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"paneldata/internal/dates"
	"paneldata/internal/panel"
)

// DateHeader labels the leading date column of history and combined
// exports.
const DateHeader = "DATE"

// WriteHistoryCSV writes the stored history of one security: one row
// per stored date carrying the requested fields (all declared fields
// when none are given). Dates where the security or a field is absent
// resolve to the field's configured default, rendered empty when unset.
func WriteHistoryCSV(w io.Writer, p *panel.SecurityPanel, key string, fields ...string) error {
	if len(fields) == 0 {
		fields = p.FieldNames()
	}

	cw := csv.NewWriter(w)
	header := append([]string{DateHeader}, fields...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, d := range p.Dates() {
		row := make([]string, 1, len(fields)+1)
		row[0] = dates.Format(d)
		for _, field := range fields {
			v, err := p.ValueAt(key, field, d)
			if err != nil {
				return fmt.Errorf("resolve %s of %s on %s: %w", field, key, dates.Format(d), err)
			}
			row = append(row, formatValue(v))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", dates.Format(d), err)
		}
	}
	cw.Flush()
	return cw.Error()
}
