package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"

	"github.com/katalvlaran/mtfield/batch"
	"github.com/katalvlaran/mtfield/npy"
	"github.com/katalvlaran/mtfield/storage"
)

// SnappySuffix marks snappy-framed artifacts.
const SnappySuffix = ".sz"

// NPYSink writes [R, M, M] tensors as .npy objects.
type NPYSink struct {
	backend  storage.Backend
	compress bool
}

var (
	_ batch.ArraySink  = (*NPYSink)(nil)
	_ batch.StreamSink = (*NPYSink)(nil)
)

// NPYOption configures an NPYSink.
type NPYOption func(*NPYSink)

// WithSnappy frames the .npy bytes with snappy. Keys without the ".sz"
// suffix get it appended.
func WithSnappy(on bool) NPYOption {
	return func(s *NPYSink) { s.compress = on }
}

// NewNPYSink writes into backend.
func NewNPYSink(backend storage.Backend, opts ...NPYOption) *NPYSink {
	s := &NPYSink{backend: backend}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Key returns the object key dest maps to.
func (s *NPYSink) Key(dest string) string {
	if s.compress && !strings.HasSuffix(dest, SnappySuffix) {
		return dest + SnappySuffix
	}
	return dest
}

// WriteBatch encodes b in one pass and commits it under dest.
func (s *NPYSink) WriteBatch(ctx context.Context, dest string, b *batch.ImageBatch) error {
	w, err := s.open(ctx, dest, b.Rows, b.Size)
	if err != nil {
		return err
	}
	if err = w.enc.Write(b.Data); err != nil {
		_ = w.Abort()
		return err
	}
	if err = w.Commit(ctx); err != nil {
		_ = w.Abort()
		return err
	}

	return nil
}

// OpenStream writes the header for [rows, size, size] and returns a
// writer accepting one image per WriteRow.
func (s *NPYSink) OpenStream(ctx context.Context, dest string, rows, size int) (batch.RowWriter, error) {
	return s.open(ctx, dest, rows, size)
}

func (s *NPYSink) open(ctx context.Context, dest string, rows, size int) (*npyWriter, error) {
	p, err := s.backend.Create(ctx, s.Key(dest))
	if err != nil {
		return nil, err
	}
	w := &npyWriter{pending: p, out: p}
	if s.compress {
		w.sz = snappy.NewBufferedWriter(p)
		w.out = w.sz
	}
	if w.enc, err = npy.NewEncoder(w.out, []int{rows, size, size}); err != nil {
		_ = p.Abort()
		return nil, err
	}

	return w, nil
}

type npyWriter struct {
	pending storage.Pending
	sz      *snappy.Writer
	out     io.Writer
	enc     *npy.Encoder
}

func (w *npyWriter) WriteRow(img []float64) error { return w.enc.Write(img) }

func (w *npyWriter) Commit(ctx context.Context) error {
	if err := w.enc.Close(); err != nil {
		return err
	}
	if w.sz != nil {
		if err := w.sz.Close(); err != nil {
			return err
		}
	}

	return w.pending.Commit(ctx)
}

func (w *npyWriter) Abort() error { return w.pending.Abort() }

// ReadNPY loads a tensor written by NPYSink, undoing snappy framing when
// key ends in ".sz".
func ReadNPY(ctx context.Context, backend storage.Backend, key string) (*batch.ImageBatch, error) {
	raw, err := backend.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	var r io.Reader = bytes.NewReader(raw)
	if strings.HasSuffix(key, SnappySuffix) {
		r = snappy.NewReader(r)
	}
	shape, data, err := npy.Read(r)
	if err != nil {
		return nil, err
	}
	if len(shape) != 3 || shape[1] != shape[2] {
		return nil, fmt.Errorf("sink: shape %v is not [R, M, M]: %w", shape, npy.ErrShape)
	}

	return &batch.ImageBatch{Rows: shape[0], Size: shape[1], Data: data}, nil
}
