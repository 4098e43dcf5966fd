package batch

import (
	"log/slog"

	"github.com/katalvlaran/mtfield/internal/logging"
)

const (
	// DefaultProgressEvery is the progress interval in rows.
	DefaultProgressEvery = 200

	// DefaultStreamWindow is the number of images RunStream buffers.
	DefaultStreamWindow = 64
)

// Option configures a Driver.
type Option func(*Driver)

// WithProgress installs fn, fired for every row k with k % every == 0.
// every == 0 disables both the callback and the progress log line.
// Panics on a nil fn or a negative interval.
func WithProgress(fn ProgressFunc, every int) Option {
	if fn == nil {
		panic("batch: WithProgress(nil)")
	}
	if every < 0 {
		panic("batch: WithProgress(every<0)")
	}
	return func(d *Driver) { d.progress, d.every = fn, every }
}

// WithProgressEvery changes the interval without installing a callback.
// Panics if every < 0.
func WithProgressEvery(every int) Option {
	if every < 0 {
		panic("batch: WithProgressEvery(every<0)")
	}
	return func(d *Driver) { d.every = every }
}

// WithWorkers sets the number of rows computed concurrently.
// 0 and 1 mean sequential. Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("batch: WithWorkers(n<0)")
	}
	return func(d *Driver) { d.workers = n }
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("batch: WithLogger(nil)")
	}
	return func(d *Driver) { d.log = l }
}

// WithMetrics records into m. A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithStreamWindow sets how many images RunStream holds at once.
// Panics if n < 1.
func WithStreamWindow(n int) Option {
	if n < 1 {
		panic("batch: WithStreamWindow(n<1)")
	}
	return func(d *Driver) { d.window = n }
}

// WithRangeCheck validates every image against [0, 1] before it is
// stored. Off by default.
func WithRangeCheck(on bool) Option {
	return func(d *Driver) { d.rangeCheck = on }
}

func defaults(d *Driver) {
	d.every = DefaultProgressEvery
	d.window = DefaultStreamWindow
	d.log = logging.NewNop()
}
