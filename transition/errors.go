package transition

import (
	"fmt"

	"github.com/katalvlaran/mtfield"
)

var (
	// ErrTooShort indicates fewer than two bins, so no transition is observable.
	// Class: mtfield.ErrInvalidInput.
	ErrTooShort = fmt.Errorf("transition: need at least 2 time steps: %w", mtfield.ErrInvalidInput)

	// ErrBinOutOfRange indicates a bin index outside [0, nBins).
	// Class: mtfield.ErrInvalidInput.
	ErrBinOutOfRange = fmt.Errorf("transition: bin index out of range: %w", mtfield.ErrInvalidInput)

	// ErrBinCount indicates nBins < 2. Class: mtfield.ErrConfig.
	ErrBinCount = fmt.Errorf("transition: bin count must be >= 2: %w", mtfield.ErrConfig)
)
