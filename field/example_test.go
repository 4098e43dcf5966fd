package field_test

import (
	"fmt"

	"github.com/katalvlaran/mtfield/field"
	"github.com/katalvlaran/mtfield/matrix"
)

// ExampleAggregate averages a 4×4 field into 2×2 blocks.
func ExampleAggregate() {
	P, _ := matrix.NewDenseFrom(2, 2, []float64{0.25, 0.75, 1, 0})
	bins := []int{0, 0, 1, 1}

	F, _ := field.Expand(bins, P)
	fmt.Print(F)

	A, _ := field.Aggregate(bins, P, 2)
	fmt.Print(A)
	// Output:
	// [0.25, 0.25, 0.75, 0.75]
	// [0.25, 0.25, 0.75, 0.75]
	// [1, 1, 0, 0]
	// [1, 1, 0, 0]
	// [0.25, 0.75]
	// [1, 0]
}
