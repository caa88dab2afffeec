package effects

import (
	"fmt"
	"math"
)

// Sine is a phase-accumulating sine oscillator.
type Sine struct {
	sampleRate float64
	freq       float64
	inc        float64
	phase      float64
}

// NewSine creates an oscillator at freq Hz starting at phase 0.
func NewSine(sampleRate, freq float64) (*Sine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("sine sample rate must be > 0 and finite: %f", sampleRate)
	}

	s := &Sine{sampleRate: sampleRate}
	if err := s.SetFrequency(freq); err != nil {
		return nil, err
	}
	return s, nil
}

// SetFrequency sets the oscillator frequency in Hz. Negative frequencies
// run the phase backwards.
func (s *Sine) SetFrequency(freq float64) error {
	if math.IsNaN(freq) || math.IsInf(freq, 0) {
		return fmt.Errorf("sine frequency must be finite: %f", freq)
	}
	s.freq = freq
	s.inc = freq / s.sampleRate
	return nil
}

// SetSampleRate updates the sample rate, keeping the frequency in Hz.
func (s *Sine) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sine sample rate must be > 0 and finite: %f", sampleRate)
	}
	s.sampleRate = sampleRate
	s.inc = s.freq / sampleRate
	return nil
}

// Frequency returns the oscillator frequency in Hz.
func (s *Sine) Frequency() float64 { return s.freq }

// Next returns the current sample and advances the phase.
func (s *Sine) Next() float64 {
	out := math.Sin(2 * math.Pi * s.phase)

	s.phase += s.inc
	s.phase -= math.Floor(s.phase)

	return out
}

// Reset returns the phase to 0.
func (s *Sine) Reset() { s.phase = 0 }
