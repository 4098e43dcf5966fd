package mtf

import (
	"fmt"

	"github.com/katalvlaran/mtfield/field"
	"github.com/katalvlaran/mtfield/matrix"
	"github.com/katalvlaran/mtfield/quantize"
	"github.com/katalvlaran/mtfield/transition"
)

// Transformer turns series of one fixed length into MTF images.
type Transformer struct {
	cfg Config
	n   int
}

// Decomposition exposes the intermediate stages of one transform.
type Decomposition struct {
	Edges      []float64     // B−1 interior edges
	Bins       []int         // N bin indices
	Transition *matrix.Dense // B×B row-stochastic (or zero-row) matrix
}

// New resolves cfg for series of length seriesLen.
// Errors: see Config.Resolve.
func New(cfg Config, seriesLen int) (*Transformer, error) {
	rc, err := cfg.Resolve(seriesLen)
	if err != nil {
		return nil, err
	}

	return &Transformer{cfg: rc, n: seriesLen}, nil
}

// Config returns the resolved configuration.
func (t *Transformer) Config() Config { return t.cfg }

// SeriesLen returns the series length the Transformer accepts.
func (t *Transformer) SeriesLen() int { return t.n }

// ImageLen returns the number of values in one image (M*M).
func (t *Transformer) ImageLen() int { return t.cfg.ImageSize * t.cfg.ImageSize }

// Transform returns the M×M field of series.
// Errors: ErrSeriesLength, quantize.ErrMissingValue (mtfield.ErrInvalidInput class).
func (t *Transformer) Transform(series []float64) (*matrix.Dense, error) {
	out, err := matrix.NewDense(t.cfg.ImageSize, t.cfg.ImageSize)
	if err != nil {
		return nil, err
	}
	if err = t.TransformInto(out.RawData(), series); err != nil {
		return nil, err
	}

	return out, nil
}

// TransformInto writes the M×M field of series row-major into dst
// (len M*M). dst is only written on success.
func (t *Transformer) TransformInto(dst []float64, series []float64) error {
	if len(dst) != t.ImageLen() {
		return fmt.Errorf("mtf: dst len=%d want %d: %w", len(dst), t.ImageLen(), field.ErrShape)
	}
	d, err := t.Decompose(series)
	if err != nil {
		return err
	}

	return field.AggregateInto(dst, d.Bins, d.Transition, t.cfg.ImageSize)
}

// Decompose runs quantize and transition and returns both stages.
func (t *Transformer) Decompose(series []float64) (*Decomposition, error) {
	if len(series) != t.n {
		return nil, fmt.Errorf("mtf: len=%d want %d: %w", len(series), t.n, ErrSeriesLength)
	}
	edges, err := quantize.Edges(series, t.cfg.Bins, t.cfg.Strategy)
	if err != nil {
		return nil, err
	}
	bins := quantize.Assign(series, edges)
	P, err := transition.Estimate(bins, t.cfg.Bins)
	if err != nil {
		return nil, err
	}

	return &Decomposition{Edges: edges, Bins: bins, Transition: P}, nil
}

// Transform is the one-shot form of New + Transformer.Transform.
func Transform(series []float64, cfg Config) (*matrix.Dense, error) {
	t, err := New(cfg, len(series))
	if err != nil {
		return nil, err
	}

	return t.Transform(series)
}
