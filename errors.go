// SPDX-License-Identifier: MIT

package mtfield

import "errors"

// Error classes shared by every package of the module.
//
// Package-level sentinels (quantize.ErrBinCount, field.ErrImageSize, ...)
// wrap exactly one of these, so both checks hold:
//
//	errors.Is(err, quantize.ErrBinCount) // precise cause
//	errors.Is(err, mtfield.ErrConfig)    // class
//
// Source and sink failures carry no class and are returned unchanged.
var (
	// ErrInvalidInput marks malformed or insufficient per-row data: empty
	// series, missing values, series too short to observe a transition.
	// A row failing with this class aborts the whole batch.
	ErrInvalidInput = errors.New("mtfield: invalid input")

	// ErrConfig marks invalid static configuration: bin count < 2, image
	// size outside [1, series length], unknown strategy. Detected before
	// any row is processed.
	ErrConfig = errors.New("mtfield: invalid configuration")
)
