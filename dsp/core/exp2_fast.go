//go:build fastmath

package core

import "github.com/cwbudde/algo-approx"

// ln2 is the natural logarithm of 2.
const ln2 = 0.693147180559945309417232121458

// Exp2 returns 2^x using a fast exponential approximation.
// Uses the identity: 2^x = e^(x * ln(2))
func Exp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
