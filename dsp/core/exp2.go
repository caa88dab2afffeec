//go:build !fastmath

package core

import "math"

// Exp2 returns 2^x using the standard library.
func Exp2(x float64) float64 {
	return math.Exp2(x)
}
