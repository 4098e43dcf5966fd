// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the row statistics needed to turn count matrices into
//     row-stochastic transition matrices.
//
// Exposed API:
//   - RowSums(X)         -> sums               // Σ_j X[i,j]
//   - NormalizeRowsL1(X) -> (Y, norms)          // L1 row normalization (degenerate rows unchanged)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opRowSums         = "RowSums"
	opNormalizeRowsL1 = "NormalizeRowsL1"
)

// matrixErrorf wraps err with an operation tag.
func matrixErrorf(tag string, err error) error {
	return validatorErrorf(tag, err)
}

// RowSums returns Σ_j X[i,j] for every row i.
// Complexity: Time O(r*c), Space O(r).
func RowSums(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	r, c := X.Rows(), X.Cols()
	sums := make([]float64, r)
	var i, j int
	var s float64

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			s = 0.0
			base := i * c
			for j = 0; j < c; j++ {
				s += d.data[base+j]
			}
			sums[i] = s
		}
		return sums, nil
	}
	for i = 0; i < r; i++ {
		s = 0.0
		for j = 0; j < c; j++ {
			v, err := X.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opRowSums, err)
			}
			s += v
		}
		sums[i] = s
	}

	return sums, nil
}

// NormalizeRowsL1 scales each row to have L1-norm == 1 when possible.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Compute per-row L1 norms deterministically (Dense fast-path; At fallback).
//   - Stage 3: Divide every row by its norm; for norm==0 keep the row unchanged.
//   - Stage 4: Return the scaled copy; X is never mutated.
//
// Behavior highlights:
//   - Degenerate rows (norm==0) are left unchanged: a zero count row stays a zero
//     probability row instead of becoming uniform or NaN.
//
// Returns:
//   - *Dense: normalized copy (r×c).
//   - []float64: the original L1 norms (len=r).
//
// Errors:
//   - ErrNilMatrix; wrapped At/NewDense errors from fallback paths.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NormalizeRowsL1(X Matrix) (*Dense, []float64, error) {
	// Stage 1 (Validate): ensure X is present.
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}
	r, c := X.Rows(), X.Cols()
	Y, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}

	// Stage 2 (Execute): copy values and accumulate |v| per row.
	norms := make([]float64, r)
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			if d, ok := X.(*Dense); ok {
				v = d.data[base+j]
			} else if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
			}
			Y.data[base+j] = v
			norms[i] += math.Abs(v)
		}
	}

	// Stage 3/4 (Apply): divide by the norm; degenerate rows untouched.
	// Entries become v/norm by division, not by a 1/norm product.
	for i = 0; i < r; i++ {
		if norms[i] == 0 {
			continue
		}
		base := i * c
		for j = 0; j < c; j++ {
			Y.data[base+j] /= norms[i]
		}
	}

	return Y, norms, nil
}
