// Package quantize discretizes a real-valued time series into bin indices.
//
// 🚀 What does it do?
//
//	Each value x_t of a series is replaced by the index of the bin that
//	contains it, so a continuous signal becomes a sequence over the
//	alphabet {0, …, B−1}. The transition package then counts moves
//	between those symbols.
//
// ✨ Strategies:
//   - Quantile: equal-frequency bins; edges are empirical quantiles at
//     k/B (linear interpolation between order statistics).
//   - Uniform:  equal-width bins; edges evenly spaced between min and max.
//
// ⚙️ Usage:
//
//	bins, err := quantize.Quantize(series, 8, quantize.Quantile)
//
// Intervals are half-open [e_k, e_{k+1}); the last bin is closed on the
// right so the maximum is included. A value equal to an interior edge
// belongs to the bin that edge opens. A constant series is valid: every
// edge equals the value and all points land in the last bin.
//
// Performance:
//
//   - Time:   O(N log N) for Quantile (one sorted copy), O(N) for Uniform,
//     plus O(N log B) assignment.
//   - Memory: O(N) for the sorted copy; the input is never mutated.
package quantize
