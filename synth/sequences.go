// SPDX-License-Identifier: MIT
// Package: mtfield/synth
//
// sequences.go - deterministic 1-D generators.
//
// Contract:
//   - BuildX(n, seed, opts...) returns a slice of length n, or nil when
//     n < 1 or a resolved parameter is invalid.
//   - O(n) time, O(n) memory. No global state.

package synth

import "math"

const (
	defAmp       = 1.0   // amplitude A
	defPulseFreq = 0.125 // pulse period ≈ 8 samples
	defDuty      = 0.5   // rectangular duty cycle
	defChirpF0   = 0.02  // chirp start frequency (cycles/sample)
	defChirpF1   = 0.25  // chirp end frequency (cycles/sample)

	defPriceStart = 100.0  // S0
	defPriceMu    = 0.0005 // per-step drift μ
	defPriceVol   = 0.02   // per-step volatility σ

	defActivityMean = 300.0 // mean count while active
	defIdleProb     = 0.02  // P(active → idle) per step
	defWakeProb     = 0.1   // P(idle → active) per step
)

const tau = 2.0 * math.Pi

// BuildPulse returns a length-n pulse train.
//   - Rectangular (triangular=false): y ∈ {0, A}, on while (i·f0 mod 1) < duty.
//   - Triangular: y = A·(1 − |2·frac − 1|).
//
// Trend and noise are added after the base waveform.
func BuildPulse(n int, seed int64, triangular bool, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	amp, f0 := orDefault(c.amplitude, defAmp), orDefault(c.frequency, defPulseFreq)
	rng := rngFrom(c, seed)

	out := make([]float64, n)
	var frac, base float64
	for i := range out {
		frac = math.Mod(float64(i)*f0, 1)
		switch {
		case triangular:
			base = amp * (1 - math.Abs(2*frac-1))
		case frac < defDuty:
			base = amp
		default:
			base = 0
		}
		base += c.trendK * float64(i)
		if c.noise > 0 {
			base += c.noise * rng.NormFloat64()
		}
		out[i] = base
	}

	return out
}

// BuildChirp returns a length-n linear chirp sweeping f0 → 0.25 cycles/sample.
// Model:
//   - fᵢ  = f0 + (f1 − f0)·i/(n−1)
//   - θᵢ₊₁ = θᵢ + 2π·fᵢ
//   - yᵢ  = A·sin(θᵢ) + trend·i + noise
func BuildChirp(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	amp, f0 := orDefault(c.amplitude, defAmp), orDefault(c.frequency, defChirpF0)
	f1 := defChirpF1
	rng := rngFrom(c, seed)

	out := make([]float64, n)
	var t, theta, val float64
	for i := range out {
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		theta += tau * (f0 + (f1-f0)*t)
		val = amp*math.Sin(theta) + c.trendK*float64(i)
		if c.noise > 0 {
			val += c.noise * rng.NormFloat64()
		}
		out[i] = val
	}

	return out
}

// BuildPrice returns n close prices of a geometric Brownian motion:
//
//	S₀ = 100·A,  Sᵢ₊₁ = Sᵢ·exp((μ − σ²/2) + σ·Z)
//
// WithNoise overrides σ; WithTrend overrides μ.
func BuildPrice(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	mu, vol := defPriceMu, defPriceVol
	if c.hasTrend {
		mu = c.trendK
	}
	if c.hasNoise {
		vol = c.noise
	}
	rng := rngFrom(c, seed)

	drift := mu - 0.5*vol*vol
	out := make([]float64, n)
	S := defPriceStart * orDefault(c.amplitude, defAmp)
	for i := range out {
		out[i] = S
		S *= math.Exp(drift + vol*rng.NormFloat64())
	}

	return out
}

// BuildActivity returns n non-negative activity counts. A two-state chain
// alternates active stretches (counts ≈ Exp(300·A)) with idle stretches of
// exact zeros, so the result has the heavy ties that real wear-time data
// shows. WithFrequency overrides the wake probability (≤ 1).
func BuildActivity(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	mean := defActivityMean * orDefault(c.amplitude, defAmp)
	wake := orDefault(c.frequency, defWakeProb)
	if wake > 1 {
		return nil
	}
	rng := rngFrom(c, seed)

	out := make([]float64, n)
	active := true
	var v float64
	for i := range out {
		if active && rng.Float64() < defIdleProb {
			active = false
		} else if !active && rng.Float64() < wake {
			active = true
		}
		if !active {
			continue
		}
		v = math.Round(mean*rng.ExpFloat64()) + c.trendK*float64(i)
		if c.noise > 0 {
			v += c.noise * rng.NormFloat64()
		}
		out[i] = math.Max(v, 0)
	}

	return out
}
