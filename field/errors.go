package field

import (
	"fmt"

	"github.com/katalvlaran/mtfield"
)

var (
	// ErrImageSize indicates a target size < 1 or larger than the series
	// length (upsampling is not supported). Class: mtfield.ErrConfig.
	ErrImageSize = fmt.Errorf("field: image size must be in [1, series length]: %w", mtfield.ErrConfig)

	// ErrShape indicates a non-square or mismatched transition matrix, or a
	// destination buffer of the wrong length. Class: mtfield.ErrInvalidInput.
	ErrShape = fmt.Errorf("field: shape mismatch: %w", mtfield.ErrInvalidInput)

	// ErrBinOutOfRange indicates a bin index outside the matrix alphabet.
	// Class: mtfield.ErrInvalidInput.
	ErrBinOutOfRange = fmt.Errorf("field: bin index out of range: %w", mtfield.ErrInvalidInput)

	// ErrEmpty indicates an empty bin sequence. Class: mtfield.ErrInvalidInput.
	ErrEmpty = fmt.Errorf("field: empty bin sequence: %w", mtfield.ErrInvalidInput)
)
