package stft

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

// Transform converts windowed frames to Bins and back.
type Transform struct {
	size   int
	hop    int
	half   int
	format Format

	plan *algofft.Plan[complex128]
	spec []complex128
	time []complex128

	scale    []float64
	invScale []float64

	re    []float64
	im    []float64
	mag   []float64
	phase []float64

	pv *PhaseVocoder
}

// NewTransform creates a transform for frames of size samples spaced hop
// apart. windowSum is the sum of the analysis window coefficients and sets
// the magnitude normalization.
func NewTransform(size, hop int, windowSum float64, format Format, sampleRate float64) (*Transform, error) {
	cfg := Config{WindowSize: size, HopSize: hop, Format: format, SampleRate: sampleRate}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !core.IsFinitePositive(windowSum) {
		return nil, fmt.Errorf("stft: window sum must be > 0: %f", windowSum)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	half := size / 2
	n := half + 1

	t := &Transform{
		size:     size,
		hop:      hop,
		half:     half,
		format:   format,
		plan:     plan,
		spec:     make([]complex128, size),
		time:     make([]complex128, size),
		scale:    make([]float64, n),
		invScale: make([]float64, n),
		re:       make([]float64, n),
		im:       make([]float64, n),
		mag:      make([]float64, n),
		phase:    make([]float64, n),
		pv:       NewPhaseVocoder(size, hop, sampleRate),
	}

	for k := range t.scale {
		s := 2 / windowSum
		if k == 0 || k == half {
			s = 1 / windowSum
		}

		t.scale[k] = s
		t.invScale[k] = 1 / s
	}

	return t, nil
}

// Vocoder returns the phase vocoder state used by FormatMagFreq.
func (t *Transform) Vocoder() *PhaseVocoder { return t.pv }

// Format returns the bin format.
func (t *Transform) Format() Format { return t.format }

// SetSampleRate changes the frequency scaling without reallocating.
func (t *Transform) SetSampleRate(sr float64) error {
	if !core.IsFinitePositive(sr) {
		return fmt.Errorf("%w: must be > 0 and finite: %f", ErrSampleRate, sr)
	}

	t.pv.SetSampleRate(sr)

	return nil
}

// Analyze transforms a windowed frame into bins.
func (t *Transform) Analyze(frame []float64, bins *Bins) error {
	for i := range t.spec {
		t.spec[i] = complex(frame[i], 0)
	}

	if err := t.plan.Forward(t.spec, t.spec); err != nil {
		return fmt.Errorf("stft: forward FFT failed: %w", err)
	}

	for k := range t.re {
		t.re[k] = real(t.spec[k]) * t.scale[k]
		t.im[k] = imag(t.spec[k]) * t.scale[k]
	}

	t.im[0] = 0
	t.im[t.half] = 0

	if t.format == FormatComplex {
		copy(bins.Re(), t.re)
		copy(bins.Im(), t.im)

		return nil
	}

	spectrum.MagnitudeFromParts(t.mag, t.re, t.im)
	spectrum.PhaseFromParts(t.phase, t.re, t.im)

	mag, freq := bins.Mag(), bins.Freq()
	for k := 1; k < t.half; k++ {
		mag[k] = t.mag[k]
		freq[k] = t.pv.frequency(k, t.phase[k])
	}

	mag[0] = t.re[0]
	freq[0] = 0
	mag[t.half] = t.re[t.half]
	freq[t.half] = t.pv.sampleRate / 2

	return nil
}

// Synthesize inverts bins into a time-domain frame of WindowSize samples.
// bins is not modified.
func (t *Transform) Synthesize(bins *Bins, frame []float64) error {
	if t.format == FormatComplex {
		re, im := bins.Re(), bins.Im()
		for k := 0; k <= t.half; k++ {
			t.spec[k] = complex(re[k]*t.invScale[k], im[k]*t.invScale[k])
		}
	} else {
		mag, freq := bins.Mag(), bins.Freq()
		reset := t.pv.consumeReset()

		for k := 1; k < t.half; k++ {
			phase := t.pv.advance(k, freq[k], reset)
			m := mag[k] * t.invScale[k]
			sin, cos := math.Sincos(phase)
			t.spec[k] = complex(m*cos, m*sin)
		}

		t.spec[0] = complex(mag[0]*t.invScale[0], 0)
		t.spec[t.half] = complex(mag[t.half]*t.invScale[t.half], 0)
	}

	t.spec[0] = complex(real(t.spec[0]), 0)
	t.spec[t.half] = complex(real(t.spec[t.half]), 0)

	for k := 1; k < t.half; k++ {
		v := t.spec[k]
		t.spec[t.size-k] = complex(real(v), -imag(v))
	}

	if err := t.plan.Inverse(t.time, t.spec); err != nil {
		return fmt.Errorf("stft: inverse FFT failed: %w", err)
	}

	for i := range t.time {
		frame[i] = real(t.time[i])
	}

	return nil
}

// Reset clears phase history.
func (t *Transform) Reset() { t.pv.Reset() }
