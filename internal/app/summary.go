package app

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/mtfield/batch"
)

// Summary describes a stored batch.
type Summary struct {
	Rows, Size     int
	Min, Max, Mean float64
}

// Summarize scans every value of b. An empty batch has zero statistics.
func Summarize(b *batch.ImageBatch) Summary {
	s := Summary{Rows: b.Rows, Size: b.Size}
	if len(b.Data) == 0 {
		return s
	}
	s.Min = floats.Min(b.Data)
	s.Max = floats.Max(b.Data)
	s.Mean = floats.Sum(b.Data) / float64(len(b.Data))

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("shape=[%d %d %d] min=%.4f max=%.4f mean=%.4f", s.Rows, s.Size, s.Size, s.Min, s.Max, s.Mean)
}
