// Package panel provides the dated snapshot containers: Collection maps
// calendar dates to labeled tables and answers as-of queries against the
// sorted date keys, and SecurityPanel specializes it with a fixed SEC_ID
// row index and per-field unit and default-value metadata.
//
// The as-of rule is the same everywhere: an exact date match wins,
// otherwise the greatest stored date strictly before the query is used,
// and a query preceding all stored dates fails with ErrNoEarlierData. A
// zero query date means today at midnight.
//
// Example usage:
//
//	p, err := panel.NewSecurityPanel(jan, snapshot, "PRICES", nil,
//		map[string]float64{"PRICE": 0})
//
//	err = p.Insert(feb, nextSnapshot)
//
//	v, err := p.ValueAt("IBM", "PRICE", queryDate)
package panel
