package batch

import (
	"context"
	"fmt"
	"time"
)

// TableSource yields the rows of a rectangular numeric table in a stable
// order. Dims must be answerable before the first Next. Next returns
// io.EOF after the last row; ownership of each returned slice passes to
// the caller.
type TableSource interface {
	Dims() (rows, length int)
	Next() ([]float64, error)
}

// ArraySink persists one finished [R, M, M] tensor at dest.
type ArraySink interface {
	WriteBatch(ctx context.Context, dest string, b *ImageBatch) error
}

// StreamSink persists a tensor row by row. Nothing is visible at dest
// until the returned writer is committed.
type StreamSink interface {
	OpenStream(ctx context.Context, dest string, rows, size int) (RowWriter, error)
}

// RowWriter receives images (size*size values, row-major) in order.
// Exactly one of Commit or Abort must be called; Abort after a failed
// Commit is allowed and releases what Commit left behind.
type RowWriter interface {
	WriteRow(img []float64) error
	Commit(ctx context.Context) error
	Abort() error
}

// ProgressFunc receives the index of the row just processed.
type ProgressFunc func(row int)

// ImageBatch is a zero-initialized [Rows, Size, Size] tensor in C order.
type ImageBatch struct {
	Rows int       // R
	Size int       // M
	Data []float64 // len R*M*M; image k occupies Data[k*M*M:(k+1)*M*M]
}

// NewImageBatch allocates a zero-filled [rows, size, size] tensor.
func NewImageBatch(rows, size int) *ImageBatch {
	return &ImageBatch{Rows: rows, Size: size, Data: make([]float64, rows*size*size)}
}

// ImageLen returns M*M.
func (b *ImageBatch) ImageLen() int { return b.Size * b.Size }

// Image returns the slot of image k without copying.
func (b *ImageBatch) Image(k int) []float64 {
	l := b.ImageLen()
	return b.Data[k*l : (k+1)*l : (k+1)*l]
}

// At returns entry (i, j) of image k.
func (b *ImageBatch) At(k, i, j int) float64 {
	return b.Data[(k*b.Size+i)*b.Size+j]
}

// Shape returns the tensor shape.
func (b *ImageBatch) Shape() []int { return []int{b.Rows, b.Size, b.Size} }

// Report summarizes a finished batch.
type Report struct {
	RunID     string        // unique per Run/RunTo/RunStream call
	Rows      int           // R
	SeriesLen int           // N
	ImageSize int           // M
	Elapsed   time.Duration // row loop only
}

// String renders the report for logs and the CLI.
func (r Report) String() string {
	return fmt.Sprintf("run=%s rows=%d length=%d image=%dx%d elapsed=%s",
		r.RunID, r.Rows, r.SeriesLen, r.ImageSize, r.ImageSize, r.Elapsed)
}
