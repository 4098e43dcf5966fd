package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mtfield/matrix"
	"github.com/katalvlaran/mtfield/mtf"
)

// Metric label values for the processing mode.
const (
	modeMemory = "memory"
	modeStream = "stream"
)

// Driver runs one transform configuration over whole tables.
// A Driver holds no per-batch state and may run batches concurrently.
type Driver struct {
	cfg        mtf.Config
	progress   ProgressFunc
	every      int
	workers    int
	window     int
	rangeCheck bool
	log        *slog.Logger
	metrics    *Metrics
}

// NewDriver returns a Driver for cfg. cfg is resolved per batch against
// the source's series length.
func NewDriver(cfg mtf.Config, opts ...Option) *Driver {
	d := &Driver{cfg: cfg}
	defaults(d)
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Config returns the unresolved transform configuration.
func (d *Driver) Config() mtf.Config { return d.cfg }

// plan is one resolved batch.
type plan struct {
	id   string
	mode string
	rows int
	n    int
	tr   *mtf.Transformer
}

func (p *plan) size() int { return p.tr.Config().ImageSize }

// Run transforms every row of src into a preallocated [R, M, M] tensor.
// On failure no tensor is returned.
func (d *Driver) Run(ctx context.Context, src TableSource) (*ImageBatch, Report, error) {
	p, err := d.prepare(src, modeMemory)
	if err != nil {
		return nil, Report{}, err
	}
	out := NewImageBatch(p.rows, p.size())
	slots := make([][]float64, p.rows)
	for k := range slots {
		slots[k] = out.Image(k)
	}

	rep, err := d.loop(p, func(elapsed *time.Duration) error {
		start := time.Now()
		defer func() { *elapsed = time.Since(start) }()
		if err := d.fill(ctx, p, src, 0, slots); err != nil {
			return err
		}
		return d.drain(src, p)
	})
	if err != nil {
		return nil, rep, err
	}

	return out, rep, nil
}

// RunTo runs src and hands the finished tensor to sink exactly once.
// Nothing is written when any row fails.
func (d *Driver) RunTo(ctx context.Context, src TableSource, sink ArraySink, dest string) (Report, error) {
	b, rep, err := d.Run(ctx, src)
	if err != nil {
		return rep, err
	}
	if err = sink.WriteBatch(ctx, dest, b); err != nil {
		d.metrics.fail(err)
		d.log.Error("batch write failed", "run", rep.RunID, "dest", dest, "error", err)
		return rep, err
	}
	d.log.Info("batch written", "run", rep.RunID, "dest", dest, "shape", b.Shape())

	return rep, nil
}

// RunStream computes rows in windows of at most WithStreamWindow images
// and writes them to one RowWriter in source order. Peak memory is one
// window instead of the whole tensor. On any failure the writer is
// aborted and dest is never committed.
// Report.Elapsed covers the row computations only, not the writes.
func (d *Driver) RunStream(ctx context.Context, src TableSource, sink StreamSink, dest string) (Report, error) {
	p, err := d.prepare(src, modeStream)
	if err != nil {
		return Report{}, err
	}
	m := p.size()

	return d.loop(p, func(elapsed *time.Duration) (err error) {
		w, err := sink.OpenStream(ctx, dest, p.rows, m)
		if err != nil {
			return err
		}
		defer func() {
			if err == nil {
				return
			}
			if aerr := w.Abort(); aerr != nil {
				d.log.Warn("stream abort failed", "run", p.id, "dest", dest, "error", aerr)
			}
		}()

		win := min(d.window, max(p.rows, 1))
		buf := make([]float64, win*m*m)
		slots := make([][]float64, win)
		for i := range slots {
			slots[i] = buf[i*m*m : (i+1)*m*m : (i+1)*m*m]
		}

		var start time.Time
		for first := 0; first < p.rows; first += win {
			cnt := min(win, p.rows-first)
			start = time.Now()
			err = d.fill(ctx, p, src, first, slots[:cnt])
			*elapsed += time.Since(start)
			if err != nil {
				return err
			}
			for i := 0; i < cnt; i++ {
				if err = w.WriteRow(slots[i]); err != nil {
					return err
				}
			}
		}
		if err = d.drain(src, p); err != nil {
			return err
		}

		return w.Commit(ctx)
	})
}

// prepare reads Dims and resolves the configuration before any row.
func (d *Driver) prepare(src TableSource, mode string) (*plan, error) {
	rows, n := src.Dims()
	if rows < 0 {
		err := fmt.Errorf("batch: rows=%d: %w", rows, ErrRowCount)
		d.metrics.fail(err)
		return nil, err
	}
	tr, err := mtf.New(d.cfg, n)
	if err != nil {
		d.metrics.fail(err)
		d.log.Error("batch rejected", "rows", rows, "length", n, "error", err)
		return nil, err
	}

	return &plan{id: uuid.NewString(), mode: mode, rows: rows, n: n, tr: tr}, nil
}

// loop wraps body with logging, metrics and the report.
func (d *Driver) loop(p *plan, body func(elapsed *time.Duration) error) (Report, error) {
	rep := Report{RunID: p.id, Rows: p.rows, SeriesLen: p.n, ImageSize: p.size()}
	d.log.Info("batch started",
		"run", p.id, "mode", p.mode, "rows", p.rows, "length", p.n,
		"config", p.tr.Config().String(), "workers", max(d.workers, 1))
	d.metrics.begin()

	err := body(&rep.Elapsed)
	d.metrics.end(rep.Elapsed, err)
	if err != nil {
		d.log.Error("batch aborted", "run", p.id, "error", err)
		return rep, err
	}
	d.log.Info("conversion completed", "run", p.id, "rows", p.rows, "elapsed", rep.Elapsed)

	return rep, nil
}

// fill reads len(slots) rows and writes row first+i into slots[i].
// With more than one worker, rows are read in order on the calling
// goroutine and transformed concurrently; the lowest failing row wins.
func (d *Driver) fill(ctx context.Context, p *plan, src TableSource, first int, slots [][]float64) error {
	if d.workers <= 1 {
		for i, dst := range slots {
			if err := ctx.Err(); err != nil {
				return err
			}
			k := first + i
			row, err := d.next(src, p, k)
			if err != nil {
				return err
			}
			if err = d.transform(p, k, row, dst); err != nil {
				return err
			}
			d.tick(p, k)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	errs := make([]error, len(slots))
	var readErr error
	for i, dst := range slots {
		if gctx.Err() != nil {
			break
		}
		k := first + i
		row, err := d.next(src, p, k)
		if err != nil {
			readErr = err
			break
		}
		g.Go(func() error {
			errs[i] = d.transform(p, k, row, dst)
			return errs[i]
		})
		d.tick(p, k)
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if readErr != nil {
		return readErr
	}

	return ctx.Err()
}

// transform validates one row and writes its image into dst.
func (d *Driver) transform(p *plan, k int, row, dst []float64) error {
	start := time.Now()
	if len(row) != p.n {
		return &RowError{Row: k, Err: fmt.Errorf("len=%d want %d: %w", len(row), p.n, ErrRowLength)}
	}
	if err := p.tr.TransformInto(dst, row); err != nil {
		return &RowError{Row: k, Err: err}
	}
	if d.rangeCheck {
		m := p.size()
		view, err := matrix.NewDenseView(m, m, dst)
		if err == nil {
			err = matrix.ValidateRange(view, 0, 1)
		}
		if err != nil {
			return &RowError{Row: k, Err: err}
		}
	}
	d.metrics.row(p.mode, time.Since(start))

	return nil
}

// next pulls row k; an early io.EOF becomes ErrRowCount, other source
// errors pass through unchanged.
func (d *Driver) next(src TableSource, p *plan, k int) ([]float64, error) {
	row, err := src.Next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("batch: source ended at row %d of %d: %w", k, p.rows, ErrRowCount)
	}

	return row, err
}

// drain requires the source to be exhausted after Dims rows.
func (d *Driver) drain(src TableSource, p *plan) error {
	_, err := src.Next()
	switch {
	case err == nil:
		return fmt.Errorf("batch: source has more than %d rows: %w", p.rows, ErrRowCount)
	case errors.Is(err, io.EOF):
		return nil
	default:
		return err
	}
}

// tick fires the progress signal for row k.
func (d *Driver) tick(p *plan, k int) {
	if d.every == 0 || k%d.every != 0 {
		return
	}
	d.log.Info("processing at index", "run", p.id, "row", k)
	if d.progress != nil {
		d.progress(k)
	}
}
