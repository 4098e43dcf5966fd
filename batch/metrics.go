package batch

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/mtfield"
)

// Failure class label values.
const (
	classInvalidInput = "invalid_input"
	classConfig       = "config"
	classIO           = "io"
)

// Metrics holds the driver's Prometheus collectors. All methods are safe
// on a nil *Metrics.
type Metrics struct {
	Rows         *prometheus.CounterVec // rows processed, by mode
	Failures     *prometheus.CounterVec // aborted batches, by class
	RowSeconds   prometheus.Histogram   // per-row transform latency
	BatchSeconds prometheus.Histogram   // row-loop duration per batch
	InFlight     prometheus.Gauge       // batches currently running
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration (useful in tests with private registries).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mtf",
				Name:      "rows_total",
				Help:      "Total number of series transformed into images.",
			},
			[]string{"mode"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mtf",
				Name:      "batch_failures_total",
				Help:      "Total number of aborted batches by error class.",
			},
			[]string{"class"},
		),
		RowSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mtf",
			Name:      "row_duration_seconds",
			Help:      "Time to transform one series.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		BatchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mtf",
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock duration of the row loop of one batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mtf",
			Name:      "batches_in_flight",
			Help:      "Number of batches currently running.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Rows, m.Failures, m.RowSeconds, m.BatchSeconds, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) row(mode string, d time.Duration) {
	if m == nil {
		return
	}
	m.Rows.WithLabelValues(mode).Inc()
	m.RowSeconds.Observe(d.Seconds())
}

func (m *Metrics) begin() {
	if m != nil {
		m.InFlight.Inc()
	}
}

func (m *Metrics) end(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	if err != nil {
		m.fail(err)
		return
	}
	m.BatchSeconds.Observe(d.Seconds())
}

func (m *Metrics) fail(err error) {
	if m != nil {
		m.Failures.WithLabelValues(classify(err)).Inc()
	}
}

// classify maps an error onto its failure class label.
func classify(err error) string {
	switch {
	case errors.Is(err, mtfield.ErrConfig):
		return classConfig
	case errors.Is(err, mtfield.ErrInvalidInput):
		return classInvalidInput
	default:
		return classIO
	}
}
