// SPDX-License-Identifier: MIT
// Package synth generates deterministic synthetic time series and tables
// for tests, benchmarks, demos and the `mtf synth` command.
//
// 🚀 Generators:
//   - BuildPulse:    rectangular / triangular pulse train.
//   - BuildChirp:    linear frequency sweep f0 → f1.
//   - BuildPrice:    geometric Brownian motion close prices.
//   - BuildActivity: non-negative activity counts with idle stretches,
//     shaped like minute-level accelerometer traces.
//   - BuildTable:    R rows of one Kind, each row seeded from (seed, row).
//
// ⚙️ Determinism:
//   - Same (n, seed, options) → same output, bit for bit.
//   - WithSeed / WithRand install a shared stream that overrides the
//     per-call seed, so composed calls draw from one sequence.
//
// Invalid sizes or parameters return nil; generators never panic on data.
// Option constructors panic on nonsensical values (programmer error).
package synth
