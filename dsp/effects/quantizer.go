package effects

import (
	"fmt"
	"math"
)

const (
	defaultQuantizerRate = 48000.0
	defaultQuantizerStep = 0.0
)

// QuantizerOption mutates quantizer construction parameters.
type QuantizerOption func(*quantizerConfig) error

type quantizerConfig struct {
	rate float64
	step float64
}

func defaultQuantizerConfig() quantizerConfig {
	return quantizerConfig{
		rate: defaultQuantizerRate,
		step: defaultQuantizerStep,
	}
}

// WithQuantizerRate sets the sample-and-hold rate in Hz. A rate of 0 holds
// the first captured sample forever; rates at or above the sample rate
// capture every input sample.
func WithQuantizerRate(rate float64) QuantizerOption {
	return func(cfg *quantizerConfig) error {
		if err := validateQuantizerRate(rate); err != nil {
			return err
		}
		cfg.rate = rate
		return nil
	}
}

// WithQuantizerStep sets the amplitude quantization step. A step of 0
// disables amplitude quantization.
func WithQuantizerStep(step float64) QuantizerOption {
	return func(cfg *quantizerConfig) error {
		if err := validateQuantizerStep(step); err != nil {
			return err
		}
		cfg.step = step
		return nil
	}
}

// Quantizer degrades a signal in time and amplitude. It combines two
// independent mechanisms:
//
//   - Rate reduction: a phase accumulator running at [Quantizer.Rate] Hz
//     decides when a new input sample is captured. Between captures the
//     previous value is held.
//
//   - Step quantization: each captured sample is snapped to the nearest
//     multiple of [Quantizer.Step].
//
// With Rate >= sample rate and Step=0 the quantizer is transparent.
type Quantizer struct {
	sampleRate float64
	rate       float64
	step       float64

	inc   float64
	phase float64
	held  float64
}

// NewQuantizer creates a quantizer with the given sample rate and optional
// configuration overrides.
func NewQuantizer(sampleRate float64, opts ...QuantizerOption) (*Quantizer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("quantizer sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultQuantizerConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		sampleRate: sampleRate,
		rate:       cfg.rate,
		step:       cfg.step,
	}
	q.updateIncrement()
	q.Reset()
	return q, nil
}

// SetSampleRate updates the sample rate.
func (q *Quantizer) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("quantizer sample rate must be > 0 and finite: %f", sampleRate)
	}
	q.sampleRate = sampleRate
	q.updateIncrement()
	return nil
}

// SetRate sets the sample-and-hold rate in Hz.
func (q *Quantizer) SetRate(rate float64) error {
	if err := validateQuantizerRate(rate); err != nil {
		return err
	}
	q.rate = rate
	q.updateIncrement()
	return nil
}

// SetStep sets the amplitude quantization step.
func (q *Quantizer) SetStep(step float64) error {
	if err := validateQuantizerStep(step); err != nil {
		return err
	}
	q.step = step
	return nil
}

// Reset clears the hold state. The next processed sample is captured.
func (q *Quantizer) Reset() {
	q.phase = 1
	q.held = 0
}

// ProcessSample processes one sample through the quantizer.
func (q *Quantizer) ProcessSample(input float64) float64 {
	if q.phase >= 1 {
		q.phase -= math.Floor(q.phase)
		q.held = q.quantize(input)
	}
	q.phase += q.inc

	return q.held
}

// ProcessInPlace applies the quantizer to buf in place.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = q.ProcessSample(buf[i])
	}
}

// SampleRate returns the sample rate in Hz.
func (q *Quantizer) SampleRate() float64 { return q.sampleRate }

// Rate returns the sample-and-hold rate in Hz.
func (q *Quantizer) Rate() float64 { return q.rate }

// Step returns the amplitude quantization step.
func (q *Quantizer) Step() float64 { return q.step }

func (q *Quantizer) updateIncrement() {
	q.inc = q.rate / q.sampleRate
}

func (q *Quantizer) quantize(sample float64) float64 {
	if q.step <= 0 {
		return sample
	}

	return math.Round(sample/q.step) * q.step
}

func validateQuantizerRate(rate float64) error {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("quantizer rate must be >= 0 and finite: %f", rate)
	}
	return nil
}

func validateQuantizerStep(step float64) error {
	if step < 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return fmt.Errorf("quantizer step must be >= 0 and finite: %f", step)
	}
	return nil
}
