package quantize

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Quantize: series → bin indices
//
// Algorithm Outline:
//  1. Validate config (nBins ≥ 2, known strategy), then the series
//     (non-empty, every value finite).
//  2. Edges: nBins−1 interior edges by strategy.
//  3. Assign: bin(x) = #{k : edge_k ≤ x}, a right-sided binary search.
//
// Config errors are reported before input errors, so a bad bin count is
// found even when the first row happens to be malformed.
//
// Complexity:
//
//	Time   = O(N log N) (Quantile) / O(N) (Uniform) + O(N log B)
//	Memory = O(N)
func Quantize(series []float64, nBins int, strategy Strategy) ([]int, error) {
	edges, err := Edges(series, nBins, strategy)
	if err != nil {
		return nil, err
	}

	return Assign(series, edges), nil
}

// Edges returns the nBins−1 interior bin edges of series, ascending.
//
// Quantile: edge k (k = 1..B−1) is the empirical quantile at p = k/B with
// linear interpolation between order statistics:
//
//	h = (n−1)·p, v = x₍⌊h⌋₎ + (h−⌊h⌋)·(x₍⌊h⌋+1₎ − x₍⌊h⌋₎)
//
// Uniform: B+1 evenly spaced points from min to max; the interior B−1 kept.
//
// Errors: ErrBinCount, ErrUnknownStrategy, ErrEmptySeries, ErrMissingValue.
func Edges(series []float64, nBins int, strategy Strategy) ([]float64, error) {
	if nBins < MinBins {
		return nil, fmt.Errorf("quantize: nBins=%d: %w", nBins, ErrBinCount)
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("quantize: %q: %w", strategy, ErrUnknownStrategy)
	}
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	switch strategy {
	case Uniform:
		return uniformEdges(series, nBins), nil
	default:
		return quantileEdges(series, nBins), nil
	}
}

// Assign maps every value onto its bin given ascending interior edges.
// The result has len(series) entries in [0, len(edges)].
// Values must be finite; Assign itself does not validate.
func Assign(series []float64, edges []float64) []int {
	out := make([]int, len(series))
	for t, x := range series {
		// First edge strictly greater than x: equal values fall to the upper bin.
		out[t] = sort.Search(len(edges), func(k int) bool { return edges[k] > x })
	}

	return out
}

// validateSeries rejects empty input and the first non-finite value.
func validateSeries(series []float64) error {
	if len(series) == 0 {
		return ErrEmptySeries
	}
	for t, x := range series {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("quantize: t=%d: %w", t, ErrMissingValue)
		}
	}

	return nil
}

// quantileEdges computes interpolated empirical quantiles on a sorted copy.
func quantileEdges(series []float64, nBins int) []float64 {
	sorted := slices.Clone(series)
	slices.Sort(sorted)

	n := len(sorted)
	edges := make([]float64, nBins-1)
	var (
		h, frac float64
		lo      int
	)
	for k := 1; k < nBins; k++ {
		h = float64(n-1) * float64(k) / float64(nBins)
		lo = int(math.Floor(h))
		frac = h - float64(lo)
		if lo+1 < n && frac > 0 {
			edges[k-1] = sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
		} else {
			edges[k-1] = sorted[lo]
		}
	}

	return edges
}

// uniformEdges spans [min, max] with nBins+1 points and keeps the interior.
func uniformEdges(series []float64, nBins int) []float64 {
	lo, hi := floats.Min(series), floats.Max(series)
	span := floats.Span(make([]float64, nBins+1), lo, hi)

	return span[1:nBins]
}
