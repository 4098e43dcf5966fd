package field

import (
	"fmt"

	"github.com/katalvlaran/mtfield/matrix"
)

// Expand: (bins, P) → raw N×N field
//
// Implementation:
//   - Stage 1: validate P (square, non-nil) and bins (non-empty, in range).
//   - Stage 2: row i of F is row b_i of P gathered by the bin sequence.
//
// Errors: ErrShape, ErrEmpty, ErrBinOutOfRange.
//
// Complexity:
//
//	Time = O(N²), Memory = O(N²)
func Expand(bins []int, P *matrix.Dense) (*matrix.Dense, error) {
	if err := validate(bins, P); err != nil {
		return nil, err
	}
	n := len(bins)
	F, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	expandInto(F.RawData(), bins, P)

	return F, nil
}

// Blocks partitions [0, n) into m contiguous blocks. The first n mod m
// blocks have length ⌈n/m⌉, the rest ⌊n/m⌋; m = n yields unit blocks.
// Errors: ErrImageSize when m < 1 or m > n.
func Blocks(n, m int) ([]Block, error) {
	if m < 1 || m > n {
		return nil, fmt.Errorf("field: size=%d for length %d: %w", m, n, ErrImageSize)
	}
	q, r := n/m, n%m
	out := make([]Block, m)
	start := 0
	for k := range out {
		l := q
		if k < r {
			l++
		}
		out[k] = Block{Start: start, Len: l}
		start += l
	}

	return out, nil
}

// Aggregate returns the size×size field: entry (a, b) is the arithmetic
// mean of F over block a × block b. size == len(bins) is the raw field.
// The N×N field is never materialized.
// Errors: ErrImageSize, ErrShape, ErrEmpty, ErrBinOutOfRange.
func Aggregate(bins []int, P *matrix.Dense, size int) (*matrix.Dense, error) {
	if err := validate(bins, P); err != nil {
		return nil, err
	}
	if _, err := Blocks(len(bins), size); err != nil {
		return nil, err
	}
	out, err := matrix.NewDense(size, size)
	if err != nil {
		return nil, err
	}
	if err = AggregateInto(out.RawData(), bins, P, size); err != nil {
		return nil, err
	}

	return out, nil
}

// AggregateInto writes the size×size field row-major into dst, which must
// have exactly size*size entries. Used by batch drivers to fill one slot of
// a preallocated tensor.
// Errors: ErrImageSize, ErrShape, ErrEmpty, ErrBinOutOfRange.
func AggregateInto(dst []float64, bins []int, P *matrix.Dense, size int) error {
	if err := validate(bins, P); err != nil {
		return err
	}
	n := len(bins)
	blocks, err := Blocks(n, size)
	if err != nil {
		return err
	}
	if len(dst) != size*size {
		return fmt.Errorf("field: dst len=%d want %d: %w", len(dst), size*size, ErrShape)
	}
	if size == n {
		expandInto(dst, bins, P)
		return nil
	}

	p, nb := P.RawData(), P.Cols()
	reduce(dst, blocks, func(i, j int) float64 { return p[bins[i]*nb+bins[j]] })

	return nil
}

// Downsample reduces an N×N field to size×size by blockwise means.
// size == N returns a copy.
// Errors: ErrShape (nil or non-square F), ErrImageSize.
func Downsample(F *matrix.Dense, size int) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(F); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	n := F.Rows()
	blocks, err := Blocks(n, size)
	if err != nil {
		return nil, err
	}
	out, err := matrix.NewDense(size, size)
	if err != nil {
		return nil, err
	}
	f := F.RawData()
	if size == n {
		copy(out.RawData(), f)
		return out, nil
	}
	reduce(out.RawData(), blocks, func(i, j int) float64 { return f[i*n+j] })

	return out, nil
}

// reduce fills dst[a*m+b] with the mean of at(i, j) over block a × block b.
// Sums run i-major then j so every caller accumulates in the same order.
func reduce(dst []float64, blocks []Block, at func(i, j int) float64) {
	m := len(blocks)
	var (
		sum  float64
		i, j int
	)
	for a, ba := range blocks {
		for b, bb := range blocks {
			sum = 0
			for i = ba.Start; i < ba.End(); i++ {
				for j = bb.Start; j < bb.End(); j++ {
					sum += at(i, j)
				}
			}
			dst[a*m+b] = sum / float64(ba.Len*bb.Len)
		}
	}
}

// expandInto writes F[i][j] = P[b_i][b_j] into dst (len N*N).
func expandInto(dst []float64, bins []int, P *matrix.Dense) {
	n, nb := len(bins), P.Cols()
	p := P.RawData()
	var i, j, row int
	for i = 0; i < n; i++ {
		row = bins[i] * nb
		for j = 0; j < n; j++ {
			dst[i*n+j] = p[row+bins[j]]
		}
	}
}

// validate checks P is square and every bin indexes one of its states.
func validate(bins []int, P *matrix.Dense) error {
	if err := matrix.ValidateSquare(P); err != nil {
		return fmt.Errorf("%w: %w", ErrShape, err)
	}
	if len(bins) == 0 {
		return ErrEmpty
	}
	nb := P.Rows()
	for t, b := range bins {
		if b < 0 || b >= nb {
			return fmt.Errorf("field: t=%d bin=%d alphabet=%d: %w", t, b, nb, ErrBinOutOfRange)
		}
	}

	return nil
}
