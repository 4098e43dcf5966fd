package mtf

import (
	"fmt"

	"github.com/katalvlaran/mtfield"
)

// ErrSeriesLength indicates a series whose length differs from the one the
// Transformer was built for, or a length too short to observe a transition.
// Class: mtfield.ErrInvalidInput.
var ErrSeriesLength = fmt.Errorf("mtf: series length mismatch: %w", mtfield.ErrInvalidInput)
