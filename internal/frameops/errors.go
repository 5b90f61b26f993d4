package frameops

import "errors"

// Sentinel errors reported by column-pair application and kind dispatch.
// Callers match them with errors.Is.
var (
	// ErrShapeMismatch indicates row or column shapes that cannot be
	// reconciled under the requested pairing options.
	ErrShapeMismatch = errors.New("row or column shapes cannot be reconciled")

	// ErrKindMismatch indicates two columns whose value kinds have no
	// comparison function under the strict mismatch policy.
	ErrKindMismatch = errors.New("value kinds are not comparable")
)
