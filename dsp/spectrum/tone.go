package spectrum

import (
	"fmt"
	"math"
)

// Tone measures the level of a single frequency in a sample stream using the
// Goertzel recurrence.
//
// It is stateful: Power and Amplitude describe every sample processed since
// the last Reset. For a sinusoid that completes an integer number of cycles
// in the measured block, Amplitude reads its peak amplitude. Off-grid tones
// leak, so callers should measure over blocks long enough to make leakage
// negligible or compare relative levels only.
type Tone struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	count      int
}

// NewTone creates a tone meter for frequency at sampleRate.
//
// frequency must be between 0 and sampleRate/2.
func NewTone(frequency, sampleRate float64) (*Tone, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("tone: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("tone: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	w := 2 * math.Pi * frequency / sampleRate

	return &Tone{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(w),
	}, nil
}

// Reset clears the accumulated state.
func (t *Tone) Reset() {
	t.s0, t.s1 = 0, 0
	t.count = 0
}

// ProcessSample feeds one sample.
func (t *Tone) ProcessSample(x float64) {
	s := x + t.coeff*t.s0 - t.s1
	t.s1 = t.s0
	t.s0 = s
	t.count++
}

// ProcessBlock feeds a block of samples.
func (t *Tone) ProcessBlock(input []float64) {
	s0, s1 := t.s0, t.s1
	coeff := t.coeff

	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	t.s0, t.s1 = s0, s1
	t.count += len(input)
}

// Power returns |X|^2 of the DFT term at the target frequency over the
// processed block.
func (t *Tone) Power() float64 {
	return t.s0*t.s0 + t.s1*t.s1 - t.coeff*t.s0*t.s1
}

// Amplitude returns the peak amplitude of the measured tone, 2|X|/N.
func (t *Tone) Amplitude() float64 {
	if t.count == 0 {
		return 0
	}

	p := t.Power()
	if p <= 0 {
		return 0
	}

	return 2 * math.Sqrt(p) / float64(t.count)
}

// Frequency returns the target frequency in Hz.
func (t *Tone) Frequency() float64 { return t.frequency }

// ToneAmplitude measures the peak amplitude of frequency in input in one shot.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	t, err := NewTone(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	t.ProcessBlock(input)

	return t.Amplitude(), nil
}
