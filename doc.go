// Package mtfield turns tabular time series into Markov Transition Field
// (MTF) images and persists them as a 3-D batch for image-based models.
//
// 🚀 What is an MTF?
//
//	A series of N values is discretized into B bins, a first-order
//	transition matrix P (B×B) is estimated from adjacent bin pairs, and
//	P is spread over every pair of time steps:
//
//		F[i][j] = P[bin(x_i)][bin(x_j)]
//
//	The N×N field F keeps the temporal dynamics of the sequence in a form
//	that convolutional models consume as an image.
//
// ✨ Pipeline:
//
//	quantize/     quantile or uniform binning (series → bin indices)
//	transition/   transition counts and row-stochastic matrix
//	field/        N×N expansion and blockwise-mean downsampling
//	mtf/          single-series facade with eager config validation
//	batch/        row-by-row driver into a preallocated [R,M,M] tensor
//
// Under the hood the adapters live beside the core:
//
//	table/     CSV sources (identifier columns dropped, missing tokens → NaN)
//	npy/       NumPy .npy v1.0 encoder (streaming capable)
//	storage/   file and S3 backends
//	sink/      ArraySink / StreamSink implementations (npy, snappy, sqlite)
//	matrix/    row-major Dense storage and row statistics
//	synth/     deterministic synthetic series for tests and demos
//	config/    YAML + MTF_* environment configuration
//	cmd/mtf/   command line: convert, field, synth, inspect
//
// Errors are classified by two root sentinels: ErrInvalidInput for bad
// per-row data and ErrConfig for bad static configuration. Every package
// sentinel wraps exactly one of them, so callers branch with errors.Is.
//
//	go get github.com/katalvlaran/mtfield
package mtfield
