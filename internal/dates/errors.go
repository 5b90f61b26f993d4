package dates

import "errors"

// Coercion and schedule errors
var (
	// ErrUnknownFormat indicates a date string whose format could not be inferred
	ErrUnknownFormat = errors.New("unrecognized date format")

	// ErrInvalidDate indicates input that failed to convert to a date
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidFrequency indicates an unsupported schedule frequency
	ErrInvalidFrequency = errors.New("invalid schedule frequency")
)
