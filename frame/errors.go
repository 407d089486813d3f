package frame

import "errors"

// Sentinel errors for frame operations.
var (
	// ErrColumnNotFound indicates a reference to a column the frame lacks.
	ErrColumnNotFound = errors.New("frame: column not found")

	// ErrLengthMismatch indicates columns of different lengths.
	ErrLengthMismatch = errors.New("frame: column length mismatch")

	// ErrDuplicateColumn indicates two columns share a name.
	ErrDuplicateColumn = errors.New("frame: duplicate column")

	// ErrTypeMismatch indicates an operation unsupported by a column's dtype.
	ErrTypeMismatch = errors.New("frame: type mismatch")

	// ErrUnknownAgg indicates an unsupported aggregation function.
	ErrUnknownAgg = errors.New("frame: unknown aggregation")

	// ErrUnknownOp indicates an unsupported comparison operator.
	ErrUnknownOp = errors.New("frame: unknown operator")
)
