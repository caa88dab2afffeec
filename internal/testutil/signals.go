package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// SineMix sums equal-amplitude sines at each of freqsHz.
func SineMix(sampleRate, amplitude float64, length int, freqsHz ...float64) []float64 {
	out := make([]float64, length)
	for _, f := range freqsHz {
		step := 2 * math.Pi * f / sampleRate
		for i := range out {
			out[i] += amplitude * math.Sin(step*float64(i))
		}
	}
	return out
}

// BinCentered returns the frequency of bin k for an FFT of size n, so tones
// built with it complete an integer number of cycles per frame.
func BinCentered(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(n)
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Gate returns a 0/high voltage pulse that is high on [from, to).
func Gate(length, from, to int, high float64) []float64 {
	out := make([]float64, length)
	for i := max(from, 0); i < min(to, length); i++ {
		out[i] = high
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
