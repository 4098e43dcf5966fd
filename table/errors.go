package table

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mtfield"
)

var (
	// ErrParse indicates a cell that is neither numeric nor a missing token.
	// Class: mtfield.ErrInvalidInput.
	ErrParse = fmt.Errorf("table: unparseable cell: %w", mtfield.ErrInvalidInput)

	// ErrColumn indicates a requested column absent from the header.
	ErrColumn = errors.New("table: unknown column")

	// ErrEmpty indicates a CSV without a header or with no value columns.
	ErrEmpty = errors.New("table: no data columns")
)
