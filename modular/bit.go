package modular

import (
	"github.com/cwbudde/algo-spectral/dsp/effects"
)

const (
	bitVolts    = 10.0
	bitInternal = 1.0
	cvFullScale = 10.0
)

// BitInputs are the audio and control inputs of a BitModule.
type BitInputs struct {
	In     Input
	RateCV Input
	StepCV Input
}

// BitModule reduces the sample rate and amplitude resolution of its input.
//
// Rate and Step are normalized knobs in [0, 1]. A connected CV scales its
// knob by V/10. Rate 1 runs the sample-and-hold at the host sample rate;
// Step 1 disables amplitude quantization.
type BitModule struct {
	Rate      float64
	RateTaper bool
	Step      float64
	StepTaper bool

	sampleRate float64
	q          *effects.Quantizer
}

// NewBitModule creates a transparent bit module: Rate and Step at 1.
func NewBitModule(sampleRate float64) (*BitModule, error) {
	q, err := effects.NewQuantizer(sampleRate)
	if err != nil {
		return nil, err
	}
	return &BitModule{Rate: 1, Step: 1, sampleRate: sampleRate, q: q}, nil
}

// Process consumes one input sample and returns the crushed output in volts.
// The output is muted while a knob holds a value the quantizer rejects.
func (m *BitModule) Process(in BitInputs) float64 {
	rate := RateTaper(Attenuated(m.Rate, in.RateCV, cvFullScale), m.sampleRate, m.RateTaper)
	step := StepTaper(Attenuated(m.Step, in.StepCV, cvFullScale), m.StepTaper)

	if err := m.q.SetRate(rate); err != nil {
		return 0
	}
	if err := m.q.SetStep(step); err != nil {
		return 0
	}

	x := toInternal(in.In.Value(0), bitVolts, bitInternal)

	return toVolts(m.q.ProcessSample(x), bitInternal, bitVolts)
}

// ProcessSample processes v with both CVs unconnected.
func (m *BitModule) ProcessSample(v float64) float64 {
	return m.Process(BitInputs{In: Connect(v)})
}

// SetSampleRate changes the host sample rate the rate knob is scaled to.
func (m *BitModule) SetSampleRate(sr float64) error {
	if err := m.q.SetSampleRate(sr); err != nil {
		return err
	}
	m.sampleRate = sr
	return nil
}

// Latency returns 0; the quantizer has no delay.
func (m *BitModule) Latency() int { return 0 }

// Quantizer returns the underlying quantizer.
func (m *BitModule) Quantizer() *effects.Quantizer { return m.q }

// Reset clears the hold state.
func (m *BitModule) Reset() { m.q.Reset() }
