// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/range checks here.
//  - Return sentinel errors wrapped with the validator tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Dense fast-paths scan the flat buffer; other Matrix values go through At.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrNonSquare.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateFinite rejects the first NaN or ±Inf entry found in row-major order.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	return scan(m, func(i, j int, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, i, j, ErrNaNInf))
		}
		return nil
	})
}

// ValidateRange checks lo-eps ≤ m[i,j] ≤ hi+eps for every entry.
// MAIN DESCRIPTION:
//   - Postcondition check for probability-valued matrices (fields, transition
//     matrices) where every value must lie in [0,1].
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf for non-finite entries; ErrValueRange otherwise.
//     Errors carry the offending coordinates.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func ValidateRange(m Matrix, lo, hi float64, opts ...Option) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	o := gatherOptions(opts...)
	return scan(m, func(i, j int, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateRange", denseErrorf(ctxAt, i, j, ErrNaNInf))
		}
		if v < lo-o.eps || v > hi+o.eps {
			return validatorErrorf("ValidateRange", denseErrorf(ctxAt, i, j, ErrValueRange))
		}
		return nil
	})
}

// ValidateRowStochastic checks that every row sums to 1 (within eps) or is
// entirely zero. An all-zero row is the documented state of a bin that was
// never the source of a transition; it is not an error.
// Errors: ErrNilMatrix, ErrValueRange for negative entries, ErrNotStochastic.
// Complexity: O(r*c).
func ValidateRowStochastic(m Matrix, opts ...Option) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	o := gatherOptions(opts...)
	sums, err := RowSums(m)
	if err != nil {
		return validatorErrorf("ValidateRowStochastic", err)
	}
	if err = scan(m, func(i, j int, v float64) error {
		if v < -o.eps {
			return validatorErrorf("ValidateRowStochastic", denseErrorf(ctxAt, i, j, ErrValueRange))
		}
		return nil
	}); err != nil {
		return err
	}
	for i, s := range sums {
		if s == 0 {
			continue // unvisited state
		}
		if math.Abs(s-1) > o.eps {
			return validatorErrorf("ValidateRowStochastic", fmt.Errorf("row %d sum=%g: %w", i, s, ErrNotStochastic))
		}
	}

	return nil
}

// scan visits every entry in row-major order and stops at the first error.
func scan(m Matrix, fn func(i, j int, v float64) error) error {
	r, c := m.Rows(), m.Cols()
	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				if err := fn(i, j, d.data[base+j]); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			if err = fn(i, j, v); err != nil {
				return err
			}
		}
	}

	return nil
}
