package quantize_test

import (
	"testing"

	"github.com/katalvlaran/mtfield/quantize"
	"github.com/katalvlaran/mtfield/synth"
)

// benchmarkQuantize runs Quantize on a noisy chirp of length n.
func benchmarkQuantize(b *testing.B, n int, s quantize.Strategy) {
	series := synth.BuildChirp(n, 1, synth.WithNoise(0.1))

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err := quantize.Quantize(series, 8, s); err != nil {
			b.Fatalf("Quantize failed: %v", err)
		}
	}
}

// BenchmarkQuantize_Quantile240 mirrors one NHANES-style 240-step row.
func BenchmarkQuantize_Quantile240(b *testing.B) { benchmarkQuantize(b, 240, quantize.Quantile) }

// BenchmarkQuantize_Uniform240 is the equal-width counterpart.
func BenchmarkQuantize_Uniform240(b *testing.B) { benchmarkQuantize(b, 240, quantize.Uniform) }

// BenchmarkQuantize_Quantile10k stresses the sort on a long series.
func BenchmarkQuantize_Quantile10k(b *testing.B) { benchmarkQuantize(b, 10000, quantize.Quantile) }
