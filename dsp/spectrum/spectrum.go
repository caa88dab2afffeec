package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// All three slices must have the same length. It does not allocate.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// PowerFromParts computes |X[k]|^2 into dst.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// PhaseFromParts computes arg(X[k]) in radians into dst.
func PhaseFromParts(dst, re, im []float64) {
	for k := range dst {
		dst[k] = math.Atan2(im[k], re[k])
	}
}

// PositiveFlux returns the half-wave rectified spectral difference
// sum(max(0, cur[k]-prev[k])) over the common length of both slices.
//
// Only rising energy counts, so decaying partials do not register as onsets.
func PositiveFlux(cur, prev []float64) float64 {
	n := min(len(cur), len(prev))

	flux := 0.0
	for k := range n {
		if d := cur[k] - prev[k]; d > 0 {
			flux += d
		}
	}

	return flux
}

// PeakBin returns the index of the largest absolute value in mag within
// [from, to). It returns -1 for an empty range.
func PeakBin(mag []float64, from, to int) int {
	from = max(from, 0)
	to = min(to, len(mag))

	best := -1
	bestVal := -1.0

	for k := from; k < to; k++ {
		if v := math.Abs(mag[k]); v > bestVal {
			best = k
			bestVal = v
		}
	}

	return best
}

// BinFrequency returns the center frequency in Hz of bin k for an FFT of
// size n at sampleRate.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}

	return float64(k) * sampleRate / float64(n)
}
