package npy

import "errors"

var (
	// ErrShape indicates a negative dimension or a value count that does
	// not match the shape.
	ErrShape = errors.New("npy: data does not match shape")

	// ErrFormat indicates an input that is not a v1.0 '<f8' C-order file.
	ErrFormat = errors.New("npy: unsupported or malformed file")
)
