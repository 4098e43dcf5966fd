// SPDX-License-Identifier: MIT
// Package: mtfield/synth
//
// table.go - multi-row fixtures.

package synth

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a sequence generator.
type Kind string

const (
	KindPulse    Kind = "pulse"
	KindTriangle Kind = "triangle"
	KindChirp    Kind = "chirp"
	KindPrice    Kind = "price"
	KindActivity Kind = "activity"
)

// ErrUnknownKind indicates a Kind without a generator.
var ErrUnknownKind = errors.New("synth: unknown kind")

// Kinds lists every supported Kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindPulse, KindTriangle, KindChirp, KindPrice, KindActivity}
}

// ParseKind maps a case-insensitive name onto a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("synth: %q: %w", s, ErrUnknownKind)
}

// Build dispatches to the generator for kind.
func Build(kind Kind, n int, seed int64, opts ...Option) ([]float64, error) {
	switch kind {
	case KindPulse:
		return BuildPulse(n, seed, false, opts...), nil
	case KindTriangle:
		return BuildPulse(n, seed, true, opts...), nil
	case KindChirp:
		return BuildChirp(n, seed, opts...), nil
	case KindPrice:
		return BuildPrice(n, seed, opts...), nil
	case KindActivity:
		return BuildActivity(n, seed, opts...), nil
	default:
		return nil, fmt.Errorf("synth: %q: %w", kind, ErrUnknownKind)
	}
}

// BuildTable returns rows series of length n. Row k is generated with seed
// seed+k, so any row can be regenerated on its own.
// Shared streams (WithSeed/WithRand) are ignored per row to keep that
// property; pass them to Build directly instead.
func BuildTable(kind Kind, rows, n int, seed int64, opts ...Option) ([][]float64, error) {
	if rows < 1 || n < 1 {
		return nil, fmt.Errorf("synth: rows=%d n=%d: invalid table size", rows, n)
	}
	opts = append(opts[:len(opts):len(opts)], func(c *config) { c.rng = nil })

	out := make([][]float64, rows)
	var err error
	for k := range out {
		if out[k], err = Build(kind, n, seed+int64(k), opts...); err != nil {
			return nil, err
		}
		if out[k] == nil {
			return nil, fmt.Errorf("synth: %s row %d: invalid parameters", kind, k)
		}
	}

	return out, nil
}
