package panel

import "errors"

// Store errors
var (
	// ErrNoEarlierData indicates an as-of query that precedes every
	// stored date, or a previous-date request at the earliest position
	ErrNoEarlierData = errors.New("no earlier data available")

	// ErrUnknownDate indicates a date that is not a stored key
	ErrUnknownDate = errors.New("date not present in collection")

	// ErrInvalidMetadata indicates malformed unit or default-value
	// arguments at store construction
	ErrInvalidMetadata = errors.New("invalid field metadata")

	// ErrMissingPrimaryKey indicates a snapshot without the required
	// primary key column or index
	ErrMissingPrimaryKey = errors.New("snapshot missing primary key")

	// ErrUnknownField indicates a lookup against an undeclared field
	ErrUnknownField = errors.New("field not declared in schema")

	// ErrNoFields indicates a field selection with no labels
	ErrNoFields = errors.New("no fields requested")
)
