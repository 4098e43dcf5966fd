package quantize

import (
	"fmt"

	"github.com/katalvlaran/mtfield"
)

// Sentinel errors. Each wraps one class of the root package so callers
// may match either the precise cause or the class with errors.Is.
var (
	// ErrBinCount indicates nBins < MinBins. Class: mtfield.ErrConfig.
	ErrBinCount = fmt.Errorf("quantize: bin count must be >= %d: %w", MinBins, mtfield.ErrConfig)

	// ErrUnknownStrategy indicates an unsupported binning strategy. Class: mtfield.ErrConfig.
	ErrUnknownStrategy = fmt.Errorf("quantize: unknown strategy: %w", mtfield.ErrConfig)

	// ErrEmptySeries indicates a zero-length series. Class: mtfield.ErrInvalidInput.
	ErrEmptySeries = fmt.Errorf("quantize: series must be non-empty: %w", mtfield.ErrInvalidInput)

	// ErrMissingValue indicates a NaN or ±Inf value. Class: mtfield.ErrInvalidInput.
	ErrMissingValue = fmt.Errorf("quantize: missing or non-finite value: %w", mtfield.ErrInvalidInput)
)
