// Package matrix provides the dense numeric storage used by the MTF pipeline.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set and a
//     per-instance NaN/Inf policy, used for transition matrices (B×B) and
//     fields (N×N or M×M).
//   - Validators: shape, finiteness, value range and row-stochastic checks
//     returning package sentinels (match them with errors.Is).
//   - Row statistics: RowSums and NormalizeRowsL1, the latter leaving
//     all-zero rows untouched so that unvisited states stay at zero.
//
// Dense is best for small state spaces and fields whose O(r·c) memory is
// acceptable; a 240×240 field is 460 KB, a 10⁴×10⁴ one is 800 MB.
//
// See example_test.go for usage patterns.
package matrix
