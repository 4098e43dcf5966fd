package sink_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mtfield/batch"
	"github.com/katalvlaran/mtfield/mtf"
	"github.com/katalvlaran/mtfield/npy"
	"github.com/katalvlaran/mtfield/quantize"
	"github.com/katalvlaran/mtfield/sink"
	"github.com/katalvlaran/mtfield/storage"
	"github.com/katalvlaran/mtfield/synth"
	"github.com/katalvlaran/mtfield/table"
)

var cfg = mtf.Config{Bins: 4, Strategy: quantize.Quantile, ImageSize: 6}

func rows(t *testing.T, n int) [][]float64 {
	t.Helper()
	tbl, err := synth.BuildTable(synth.KindActivity, n, 30, 7, synth.WithNoise(5))
	require.NoError(t, err)
	return tbl
}

func broken(t *testing.T, n, bad int) [][]float64 {
	tbl := rows(t, n)
	tbl[bad][0] = math.NaN()
	return tbl
}

func fileBackend(t *testing.T) (*storage.FileBackend, string) {
	t.Helper()
	dir := t.TempDir()
	fb, err := storage.NewFileBackend(dir)
	require.NoError(t, err)
	return fb, dir
}

// TestNPYSink_RunTo writes a tensor numpy can load back.
func TestNPYSink_RunTo(t *testing.T) {
	ctx := context.Background()
	fb, dir := fileBackend(t)
	s := sink.NewNPYSink(fb)
	tbl := rows(t, 9)

	want, _, err := batch.NewDriver(cfg).Run(ctx, table.NewMemorySource(tbl))
	require.NoError(t, err)
	_, err = batch.NewDriver(cfg).RunTo(ctx, table.NewMemorySource(tbl), s, "mtf_images_D.npy")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "mtf_images_D.npy"))
	require.NoError(t, err)
	defer f.Close()
	shape, data, err := npy.Read(f)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 6, 6}, shape)
	assert.Equal(t, want.Data, data)
}

// TestNPYSink_StreamEqualsBatch produces byte-identical files.
func TestNPYSink_StreamEqualsBatch(t *testing.T) {
	ctx := context.Background()
	fb, dir := fileBackend(t)
	s := sink.NewNPYSink(fb)
	tbl := rows(t, 11)

	_, err := batch.NewDriver(cfg).RunTo(ctx, table.NewMemorySource(tbl), s, "whole.npy")
	require.NoError(t, err)
	_, err = batch.NewDriver(cfg, batch.WithStreamWindow(3)).RunStream(ctx, table.NewMemorySource(tbl), s, "stream.npy")
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "whole.npy"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(dir, "stream.npy"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestNPYSink_Snappy appends .sz and round-trips through ReadNPY.
func TestNPYSink_Snappy(t *testing.T) {
	ctx := context.Background()
	fb, _ := fileBackend(t)
	s := sink.NewNPYSink(fb, sink.WithSnappy(true))
	assert.Equal(t, "x.npy.sz", s.Key("x.npy"))
	assert.Equal(t, "x.npy.sz", s.Key("x.npy.sz"))

	tbl := rows(t, 5)
	want, _, err := batch.NewDriver(cfg).Run(ctx, table.NewMemorySource(tbl))
	require.NoError(t, err)
	_, err = batch.NewDriver(cfg).RunStream(ctx, table.NewMemorySource(tbl), s, "x.npy")
	require.NoError(t, err)

	got, err := sink.ReadNPY(ctx, fb, "x.npy.sz")
	require.NoError(t, err)
	assert.Equal(t, want.Shape(), got.Shape())
	assert.Equal(t, want.Data, got.Data)
}

// TestNPYSink_NothingOnFailure leaves no artifact and no temp file.
func TestNPYSink_NothingOnFailure(t *testing.T) {
	ctx := context.Background()
	fb, dir := fileBackend(t)
	s := sink.NewNPYSink(fb)

	_, err := batch.NewDriver(cfg).RunTo(ctx, table.NewMemorySource(broken(t, 6, 2)), s, "a.npy")
	require.Error(t, err)
	_, err = batch.NewDriver(cfg, batch.WithStreamWindow(2)).RunStream(ctx, table.NewMemorySource(broken(t, 6, 4)), s, "b.npy")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestSQLiteSink_RoundTrip stores and reloads batches by destination.
func TestSQLiteSink_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := sink.OpenSQLite(filepath.Join(t.TempDir(), "mtf.db"))
	require.NoError(t, err)
	defer db.Close()

	tbl := rows(t, 7)
	want, _, err := batch.NewDriver(cfg).Run(ctx, table.NewMemorySource(tbl))
	require.NoError(t, err)

	_, err = batch.NewDriver(cfg).RunTo(ctx, table.NewMemorySource(tbl), db, "D")
	require.NoError(t, err)
	_, err = batch.NewDriver(cfg, batch.WithStreamWindow(2), batch.WithWorkers(2)).RunStream(ctx, table.NewMemorySource(tbl), db, "D-stream")
	require.NoError(t, err)

	for _, dest := range []string{"D", "D-stream"} {
		got, err := db.ReadBatch(ctx, dest)
		require.NoError(t, err)
		assert.Equal(t, want.Shape(), got.Shape(), dest)
		assert.Equal(t, want.Data, got.Data, dest)
	}
	dests, err := db.Dests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "D-stream"}, dests)
}

// TestSQLiteSink_RollbackAndReplace keeps old data on failure and
// replaces it on success.
func TestSQLiteSink_RollbackAndReplace(t *testing.T) {
	ctx := context.Background()
	db, err := sink.OpenSQLite(filepath.Join(t.TempDir(), "mtf.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = batch.NewDriver(cfg, batch.WithStreamWindow(2)).RunStream(ctx, table.NewMemorySource(broken(t, 5, 3)), db, "D")
	require.Error(t, err)
	_, err = db.ReadBatch(ctx, "D")
	assert.ErrorIs(t, err, sink.ErrNoBatch)

	_, err = batch.NewDriver(cfg).RunTo(ctx, table.NewMemorySource(rows(t, 3)), db, "D")
	require.NoError(t, err)
	_, err = batch.NewDriver(cfg).RunTo(ctx, table.NewMemorySource(rows(t, 4)), db, "D")
	require.NoError(t, err)

	got, err := db.ReadBatch(ctx, "D")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rows)
	dests, _ := db.Dests(ctx)
	assert.Equal(t, []string{"D"}, dests)
}
