package loader

import "errors"

var (
	// ErrUnsupportedFile reports a file whose extension none of the
	// snapshot readers understand.
	ErrUnsupportedFile = errors.New("file format is not supported")

	// ErrNoRecords reports a snapshot source with no usable data rows.
	ErrNoRecords = errors.New("no data records found")
)
