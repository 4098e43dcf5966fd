package transition

import (
	"fmt"

	"github.com/katalvlaran/mtfield/matrix"
)

// Counts builds the B×B matrix of observed adjacent transitions.
//
// Implementation:
//   - Stage 1: validate nBins ≥ 2, len(bins) ≥ 2, every index in [0,nBins).
//   - Stage 2: count[bins[t]][bins[t+1]]++ for t = 0..N−2.
//
// The grand total of the result is always N−1.
func Counts(bins []int, nBins int) (*matrix.Dense, error) {
	if nBins < 2 {
		return nil, fmt.Errorf("transition: nBins=%d: %w", nBins, ErrBinCount)
	}
	if len(bins) < 2 {
		return nil, fmt.Errorf("transition: len=%d: %w", len(bins), ErrTooShort)
	}
	for t, b := range bins {
		if b < 0 || b >= nBins {
			return nil, fmt.Errorf("transition: bins[%d]=%d, nBins=%d: %w", t, b, nBins, ErrBinOutOfRange)
		}
	}

	counts, err := matrix.NewDense(nBins, nBins)
	if err != nil {
		return nil, err
	}
	data := counts.RawData()
	for t := 0; t+1 < len(bins); t++ {
		data[bins[t]*nBins+bins[t+1]]++
	}

	return counts, nil
}

// Estimate returns the row-stochastic transition matrix P where
// P[p][q] = count(p→q) / Σ_q count(p→q). Rows with no outgoing step stay
// all-zero.
//
// Errors: ErrBinCount, ErrTooShort, ErrBinOutOfRange.
// Deterministic: identical input always yields a bit-identical matrix.
func Estimate(bins []int, nBins int) (*matrix.Dense, error) {
	counts, err := Counts(bins, nBins)
	if err != nil {
		return nil, err
	}
	P, _, err := matrix.NormalizeRowsL1(counts)
	if err != nil {
		return nil, fmt.Errorf("transition: %w", err)
	}

	return P, nil
}

// Validate checks the transition-matrix invariant: square, entries ≥ 0,
// every row summing to 1 (within matrix.DefaultEpsilon) or all-zero.
func Validate(P matrix.Matrix, opts ...matrix.Option) error {
	if err := matrix.ValidateSquare(P); err != nil {
		return fmt.Errorf("transition: %w", err)
	}
	if err := matrix.ValidateRowStochastic(P, opts...); err != nil {
		return fmt.Errorf("transition: %w", err)
	}

	return nil
}
