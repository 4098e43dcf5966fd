package mtf

import (
	"fmt"

	"github.com/katalvlaran/mtfield/field"
	"github.com/katalvlaran/mtfield/quantize"
)

const (
	// DefaultBins is the bin count used when none is configured.
	DefaultBins = 8

	// DefaultStrategy is equal-frequency binning.
	DefaultStrategy = quantize.Quantile
)

// Config is the transform configuration surface.
type Config struct {
	// Bins is the alphabet size B (≥ 2).
	Bins int `yaml:"bins"`

	// Strategy selects quantile or uniform edges.
	Strategy quantize.Strategy `yaml:"strategy"`

	// ImageSize is the output side M (1 ≤ M ≤ N). Zero means M = N.
	ImageSize int `yaml:"image_size"`
}

// DefaultConfig returns 8 quantile bins at full resolution.
func DefaultConfig() Config {
	return Config{Bins: DefaultBins, Strategy: DefaultStrategy}
}

// Resolve validates c against a series length and fills a zero ImageSize
// with seriesLen. An empty Strategy resolves to DefaultStrategy.
//
// Errors: quantize.ErrBinCount, quantize.ErrUnknownStrategy and
// field.ErrImageSize (mtfield.ErrConfig class); ErrSeriesLength when
// seriesLen < 2.
func (c Config) Resolve(seriesLen int) (Config, error) {
	if c.Bins < quantize.MinBins {
		return c, fmt.Errorf("mtf: bins=%d: %w", c.Bins, quantize.ErrBinCount)
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
	if !c.Strategy.Valid() {
		return c, fmt.Errorf("mtf: strategy %q: %w", c.Strategy, quantize.ErrUnknownStrategy)
	}
	if c.ImageSize < 0 {
		return c, fmt.Errorf("mtf: image_size=%d: %w", c.ImageSize, field.ErrImageSize)
	}
	if seriesLen < 2 {
		return c, fmt.Errorf("mtf: length=%d: %w", seriesLen, ErrSeriesLength)
	}
	if c.ImageSize == 0 {
		c.ImageSize = seriesLen
	}
	if c.ImageSize > seriesLen {
		return c, fmt.Errorf("mtf: image_size=%d > length=%d: %w", c.ImageSize, seriesLen, field.ErrImageSize)
	}

	return c, nil
}

// String renders the resolved knobs for logs.
func (c Config) String() string {
	return fmt.Sprintf("bins=%d strategy=%s image_size=%d", c.Bins, c.Strategy, c.ImageSize)
}
