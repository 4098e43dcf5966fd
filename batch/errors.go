package batch

import (
	"fmt"

	"github.com/katalvlaran/mtfield"
)

var (
	// ErrRowLength indicates a row whose length differs from Dims.
	// Class: mtfield.ErrInvalidInput.
	ErrRowLength = fmt.Errorf("batch: row length differs from table length: %w", mtfield.ErrInvalidInput)

	// ErrRowCount indicates a source that yields fewer or more rows than
	// Dims reported, or a negative row count. Class: mtfield.ErrInvalidInput.
	ErrRowCount = fmt.Errorf("batch: row count differs from table dims: %w", mtfield.ErrInvalidInput)
)

// RowError carries the index of the row that aborted a batch. Callers
// resuming a failed batch start from Row.
type RowError struct {
	Row int
	Err error
}

// Error implements error.
func (e *RowError) Error() string { return fmt.Sprintf("batch: row %d: %v", e.Row, e.Err) }

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *RowError) Unwrap() error { return e.Err }
