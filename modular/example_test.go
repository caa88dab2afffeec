package modular_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/modular"
)

func ExampleHopSize() {
	for _, v := range []float64{0, 3, 5, 7} {
		fmt.Println(modular.HopSize(v, 2048))
	}
	// Output:
	// 16
	// 128
	// 512
	// 1024
}

func ExampleSchmittTrigger() {
	var trig modular.SchmittTrigger
	for _, v := range []float64{0, 2, 2, 0, 2} {
		fmt.Print(trig.Process(v), " ")
	}
	fmt.Println()
	// Output: false true false false true
}
