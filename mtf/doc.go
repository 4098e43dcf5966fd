// Package mtf is the single-series facade of the Markov Transition Field
// pipeline: quantize → transition → field.
//
// A Transformer is bound to one resolved Config and one series length, so
// every configuration error surfaces from New, before any data is seen:
//
//	tr, err := mtf.New(mtf.Config{Bins: 8, Strategy: quantize.Quantile, ImageSize: 24}, 240)
//	if err != nil {
//		return err // mtfield.ErrConfig class
//	}
//	img, err := tr.Transform(series) // 24×24, entries in [0,1]
//
// Transformer is immutable after New and safe for concurrent use.
package mtf
