// Package transition estimates a first-order Markov transition matrix from a
// sequence of bin indices.
//
// Given bins b_0 … b_{N−1} over an alphabet of size B, every adjacent pair
// (b_t, b_{t+1}) increments count[b_t][b_{t+1}]; each row is then divided by
// its total. A bin that never appears as the source of a step (never
// visited, or visited only at the final time step) keeps an all-zero row.
// The zero row propagates into the field as zeros; it is never replaced by
// a uniform or self-transition row.
//
// Complexity: O(N + B²) time, O(B²) memory.
package transition
