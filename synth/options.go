// SPDX-License-Identifier: MIT
// Package: mtfield/synth
//
// options.go - functional options for sequence generators.
//
// Contract:
//   - Options are applied in order; last wins.
//   - Constructors validate eagerly and panic on invalid arguments.

package synth

import "math/rand"

// Option customizes a generator call.
type Option func(*config)

// config is the resolved option set of one call. Zero values mean "use the
// generator's default".
type config struct {
	rng       *rand.Rand // shared stream; nil ⇒ per-call seed
	amplitude float64    // > 0 when set
	frequency float64    // > 0 when set
	trendK    float64    // any real
	noise     float64    // ≥ 0
	hasTrend  bool
	hasNoise  bool
}

// newConfig applies opts over the zero config.
func newConfig(opts ...Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithRand installs a caller-owned stream. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed creates a new stream with the given seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithAmplitude sets the signal amplitude A (>0). Panics if A <= 0.
func WithAmplitude(A float64) Option {
	if A <= 0 {
		panic("synth: WithAmplitude(A<=0)")
	}
	return func(c *config) { c.amplitude = A }
}

// WithFrequency sets the base frequency f0 (>0, cycles/sample).
// Panics if f0 <= 0.
func WithFrequency(f0 float64) Option {
	if f0 <= 0 {
		panic("synth: WithFrequency(f0<=0)")
	}
	return func(c *config) { c.frequency = f0 }
}

// WithTrend adds k*i to sample i. Any real value is accepted.
func WithTrend(k float64) Option {
	return func(c *config) { c.trendK, c.hasTrend = k, true }
}

// WithNoise sets the Gaussian noise sigma (>=0). Panics if sigma < 0.
func WithNoise(sigma float64) Option {
	if sigma < 0 {
		panic("synth: WithNoise(sigma<0)")
	}
	return func(c *config) { c.noise, c.hasNoise = sigma, true }
}

// rngFrom returns the shared stream if present, else a local one seeded
// by seed.
func rngFrom(c config, seed int64) *rand.Rand {
	if c.rng != nil {
		return c.rng
	}

	return rand.New(rand.NewSource(seed))
}

// orDefault returns v when set (> 0), else def.
func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
