package batch_test

import (
	"context"
	"errors"
	"io"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mtfield/batch"
	"github.com/katalvlaran/mtfield/synth"
)

// fixture returns rows distinct chirps of length n.
func fixture(t testing.TB, rows, n int) [][]float64 {
	t.Helper()
	tbl, err := synth.BuildTable(synth.KindChirp, rows, n, 1, synth.WithNoise(0.4))
	require.NoError(t, err)

	return tbl
}

// withNaN returns a copy of tbl with a missing value in row k.
func withNaN(tbl [][]float64, k int) [][]float64 {
	out := make([][]float64, len(tbl))
	for i := range tbl {
		out[i] = slices.Clone(tbl[i])
	}
	out[k][len(out[k])/2] = math.NaN()

	return out
}

// countingSource wraps rows and counts Next calls; dims overrides Dims.
type countingSource struct {
	rows   [][]float64
	dims   [2]int
	calls  int
	failAt int   // Next call index returning failErr; -1 disables
	failEr error // error returned at failAt
}

func newCountingSource(rows [][]float64) *countingSource {
	n := 0
	if len(rows) > 0 {
		n = len(rows[0])
	}
	return &countingSource{rows: rows, dims: [2]int{len(rows), n}, failAt: -1}
}

func (s *countingSource) Dims() (int, int) { return s.dims[0], s.dims[1] }

func (s *countingSource) Next() ([]float64, error) {
	i := s.calls
	s.calls++
	if i == s.failAt {
		return nil, s.failEr
	}
	if i >= len(s.rows) {
		return nil, io.EOF
	}

	return s.rows[i], nil
}

// recordSink is an ArraySink keeping every batch it receives.
type recordSink struct {
	dests   []string
	batches []*batch.ImageBatch
	err     error
}

func (s *recordSink) WriteBatch(_ context.Context, dest string, b *batch.ImageBatch) error {
	if s.err != nil {
		return s.err
	}
	s.dests = append(s.dests, dest)
	s.batches = append(s.batches, b)
	return nil
}

// recordStream is a StreamSink whose writer buffers rows until Commit.
type recordStream struct {
	opened    int
	rows      int
	size      int
	committed [][]float64
	aborted   int
	failWrite int // WriteRow index that fails; -1 disables
}

var errDisk = errors.New("disk full")

func newRecordStream() *recordStream { return &recordStream{failWrite: -1} }

func (s *recordStream) OpenStream(_ context.Context, _ string, rows, size int) (batch.RowWriter, error) {
	s.opened++
	s.rows, s.size = rows, size
	return &recordWriter{s: s}, nil
}

type recordWriter struct {
	s    *recordStream
	rows [][]float64
}

func (w *recordWriter) WriteRow(img []float64) error {
	if len(w.rows) == w.s.failWrite {
		return errDisk
	}
	w.rows = append(w.rows, slices.Clone(img))
	return nil
}

func (w *recordWriter) Commit(context.Context) error {
	w.s.committed = w.rows
	return nil
}

func (w *recordWriter) Abort() error {
	w.s.aborted++
	return nil
}
