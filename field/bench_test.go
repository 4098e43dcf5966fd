package field_test

import (
	"testing"

	"github.com/katalvlaran/mtfield/field"
	"github.com/katalvlaran/mtfield/quantize"
	"github.com/katalvlaran/mtfield/synth"
	"github.com/katalvlaran/mtfield/transition"
)

// benchmarkAggregate times the field stage alone for an n-step chirp.
func benchmarkAggregate(b *testing.B, n, size int) {
	series := synth.BuildChirp(n, 1, synth.WithNoise(0.1))
	bins, err := quantize.Quantize(series, 8, quantize.Quantile)
	if err != nil {
		b.Fatal(err)
	}
	P, err := transition.Estimate(bins, 8)
	if err != nil {
		b.Fatal(err)
	}
	dst := make([]float64, size*size)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = field.AggregateInto(dst, bins, P, size); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAggregate_Raw240 is the full-resolution 240×240 field.
func BenchmarkAggregate_Raw240(b *testing.B) { benchmarkAggregate(b, 240, 240) }

// BenchmarkAggregate_240to24 downsamples by 10 along each axis.
func BenchmarkAggregate_240to24(b *testing.B) { benchmarkAggregate(b, 240, 24) }

// BenchmarkAggregate_2000to64 avoids the 2000×2000 intermediate.
func BenchmarkAggregate_2000to64(b *testing.B) { benchmarkAggregate(b, 2000, 64) }
