package modular

import (
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// FreqC4 is the frequency of middle C in Hz.
const FreqC4 = 261.6256

// Control ranges.
const (
	MinCutoffOffset = -42.0
	MaxCutoffOffset = 78.0
	MinCutoffAtten  = 0.0
	MaxCutoffAtten  = 2.0
	MinPitchShift   = -3.0
	MaxPitchShift   = 3.0
	MinHopParam     = 0.0
	MaxHopParam     = 7.0
	minHopSize      = 16
)

// Cutoff maps a semitone offset from C4 plus an attenuated CV (1 V per
// octave at full attenuation 5) to Hz:
//
//	C4 · 2^(offset/12 + cv·atten/5)
//
// offset is clamped to [-42, 78] and atten to [0, 2].
func Cutoff(offset, atten float64, cv Input) float64 {
	offset = core.Clamp(offset, MinCutoffOffset, MaxCutoffOffset)
	atten = core.Clamp(atten, MinCutoffAtten, MaxCutoffAtten)

	return FreqC4 * core.Exp2(offset/12+cv.Value(0)*atten/5)
}

// PitchRatio maps an octave knob in [-3, 3] plus a 1 V/oct CV to a
// frequency ratio.
func PitchRatio(shift float64, cv Input) float64 {
	return core.Exp2(core.Clamp(shift, MinPitchShift, MaxPitchShift) + cv.Value(0))
}

// HopSize maps a hop knob in [0, 7] to 16·2^round(v) samples, capped at half
// the window so consecutive frames always overlap.
func HopSize(v float64, windowSize int) int {
	v = core.Clamp(v, MinHopParam, MaxHopParam)
	hop := minHopSize << int(math.Round(v))

	return min(hop, windowSize/2)
}

// RateTaper maps a normalized rate x in [0, 1] to Hz. With taper the
// response is 1-sqrt(1-x), which spends more of the knob's travel on high
// rates.
func RateTaper(x, sampleRate float64, taper bool) float64 {
	x = core.Clamp(x, 0, 1)
	if taper {
		return sampleRate * (1 - math.Sqrt(1-x))
	}
	return sampleRate * x
}

// StepTaper maps a normalized resolution x in [0, 1] to a quantization step,
// 1-x or 1-sqrt(x) with taper. x=1 disables quantization.
func StepTaper(x float64, taper bool) float64 {
	x = core.Clamp(x, 0, 1)
	if taper {
		return 1 - math.Sqrt(x)
	}
	return 1 - x
}

// QuadraticBipolar returns x·|x|.
func QuadraticBipolar(x float64) float64 {
	return x * math.Abs(x)
}

func toInternal(v, volts, internal float64) float64 {
	return core.Rescale(v, -volts, volts, -internal, internal)
}

func toVolts(x, internal, volts float64) float64 {
	return core.Rescale(x, -internal, internal, -volts, volts)
}
