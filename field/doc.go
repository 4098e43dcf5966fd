// Package field expands a transition matrix into a Markov Transition Field.
//
// 🚀 What is the field?
//
//	For bins b_0 … b_{N−1} and a B×B transition matrix P, the raw field is
//
//		F[i][j] = P[b_i][b_j],   0 ≤ i, j < N
//
//	i.e. the probability of moving from the state occupied at time i to
//	the state occupied at time j in one step. Every entry lies in [0,1].
//
// ✨ Key features:
//   - Expand: the raw N×N field.
//   - Aggregate / AggregateInto: the size×size blockwise mean computed
//     straight from (bins, P) without materializing N×N.
//   - Downsample: blockwise mean of an already expanded field.
//   - Blocks: the contiguous partition used along both axes (first n mod m
//     blocks one element longer).
//
// Aggregate and Downsample accumulate every block pair in the same
// row-major order, so their outputs are bit-identical.
//
// Performance:
//
//   - Expand: O(N²) time and O(N²) memory. This is the dominant cost of the
//     pipeline and bounds the practical series length: N = 240 needs
//     460 KB per field, N = 10⁴ needs 800 MB.
//   - Aggregate: O(N²) time, O(size²) memory.
package field
