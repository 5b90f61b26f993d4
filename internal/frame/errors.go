package frame

import "errors"

// Construction and selection errors
var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrRowNotFound     = errors.New("row label not found")
	ErrLengthMismatch  = errors.New("column length does not match index length")
	ErrTypeMismatch    = errors.New("series data does not match declared kind")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrBadCategory     = errors.New("value outside declared categories")
)
