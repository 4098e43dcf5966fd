package quantize

import (
	"fmt"
	"strings"
)

// Strategy selects how bin edges are derived from the series values.
type Strategy string

const (
	// Quantile places edges at empirical quantiles (equal-frequency bins).
	Quantile Strategy = "quantile"

	// Uniform places edges evenly between min and max (equal-width bins).
	Uniform Strategy = "uniform"
)

// MinBins is the smallest alphabet that can express a transition.
const MinBins = 2

// Valid reports whether s names a supported strategy.
func (s Strategy) Valid() bool {
	return s == Quantile || s == Uniform
}

// String implements fmt.Stringer.
func (s Strategy) String() string { return string(s) }

// ParseStrategy maps a case-insensitive name onto a Strategy.
// Unknown names fail with ErrUnknownStrategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("quantize: %q: %w", name, ErrUnknownStrategy)
	}

	return s, nil
}
