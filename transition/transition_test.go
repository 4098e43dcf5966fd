package transition_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/mtfield"
	"github.com/katalvlaran/mtfield/matrix"
	"github.com/katalvlaran/mtfield/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCounts_AdjacentPairs verifies every adjacent pair is counted once.
func TestCounts_AdjacentPairs(t *testing.T) {
	// pairs: (0,0) (0,1) (1,1) (1,0) (0,0)
	counts, err := transition.Counts([]int{0, 0, 1, 1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 1, 1}, counts.RawData())
}

// TestEstimate_RowsNormalized checks the probabilities of the 6-step trace.
func TestEstimate_RowsNormalized(t *testing.T) {
	P, err := transition.Estimate([]int{0, 0, 1, 1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0 / 3, 1.0 / 3, 0.5, 0.5}, P.RawData())
	assert.NoError(t, transition.Validate(P))
}

// TestEstimate_BalancedTrace yields the all-0.5 matrix.
func TestEstimate_BalancedTrace(t *testing.T) {
	P, err := transition.Estimate([]int{0, 0, 1, 1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, P.RawData())
}

// TestEstimate_ZeroRows covers unvisited and terminal-only bins.
func TestEstimate_ZeroRows(t *testing.T) {
	// Bin 1 is never visited; bin 2 appears only at the last step.
	P, err := transition.Estimate([]int{0, 0, 0, 2}, 3)
	require.NoError(t, err)

	row1, _ := P.Row(1)
	row2, _ := P.Row(2)
	assert.Equal(t, []float64{0, 0, 0}, row1)
	assert.Equal(t, []float64{0, 0, 0}, row2)
	row0, _ := P.Row(0)
	assert.InDeltaSlice(t, []float64{2.0 / 3, 0, 1.0 / 3}, row0, 1e-15)
	assert.NoError(t, transition.Validate(P))
}

// TestEstimate_Errors covers the error taxonomy.
func TestEstimate_Errors(t *testing.T) {
	_, err := transition.Estimate([]int{0}, 2)
	assert.ErrorIs(t, err, transition.ErrTooShort)
	assert.ErrorIs(t, err, mtfield.ErrInvalidInput)

	_, err = transition.Estimate([]int{0, 2}, 2)
	assert.ErrorIs(t, err, transition.ErrBinOutOfRange)
	assert.ErrorIs(t, err, mtfield.ErrInvalidInput)

	_, err = transition.Estimate([]int{0, -1}, 2)
	assert.ErrorIs(t, err, transition.ErrBinOutOfRange)

	_, err = transition.Estimate([]int{0, 0}, 1)
	assert.ErrorIs(t, err, transition.ErrBinCount)
	assert.ErrorIs(t, err, mtfield.ErrConfig)
}

// TestEstimate_StochasticOrZeroProperty: every row sums to 1 or is all-zero,
// and the output is deterministic.
func TestEstimate_StochasticOrZeroProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 300; trial++ {
		b := 2 + rng.Intn(12)
		bins := make([]int, 2+rng.Intn(200))
		for i := range bins {
			bins[i] = rng.Intn(b)
		}
		P, err := transition.Estimate(bins, b)
		require.NoError(t, err)

		sums, err := matrix.RowSums(P)
		require.NoError(t, err)
		for i, s := range sums {
			if s != 0 {
				require.InDelta(t, 1.0, s, 1e-12, "row %d", i)
			}
		}
		again, _ := transition.Estimate(bins, b)
		require.Equal(t, P.RawData(), again.RawData())
	}
}

func TestValidate_NonSquare(t *testing.T) {
	m, _ := matrix.NewDense(2, 3)
	assert.ErrorIs(t, transition.Validate(m), matrix.ErrNonSquare)
}
