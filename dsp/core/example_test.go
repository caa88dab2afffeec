package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

func ExampleRescale() {
	// A +5 V audio voltage normalized to the +-0.8 processing range.
	fmt.Printf("%.2f\n", core.Rescale(5, -5, 5, -0.8, 0.8))

	// Output:
	// 0.80
}

func ExampleShiftLeft() {
	buf := []float64{1, 2, 3, 4}
	core.ShiftLeft(buf, 2)
	fmt.Println(buf)

	// Output:
	// [3 4 0 0]
}
