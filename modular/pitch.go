package modular

import (
	"github.com/cwbudde/algo-spectral/dsp/effects/spectral"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

const (
	spectralVolts    = 5.0
	spectralInternal = 1.0
)

// PitchModule shifts the pitch of its input by Shift octaves plus a 1 V/oct
// CV. The output is silent while the input is unconnected.
type PitchModule struct {
	// Shift is the pitch knob in octaves, [-3, 3].
	Shift float64

	fx *spectral.PitchShift
}

// NewPitchModule creates a pitch module. opts configure the engine.
func NewPitchModule(opts ...stft.Option) (*PitchModule, error) {
	fx, err := spectral.NewPitchShift(opts...)
	if err != nil {
		return nil, err
	}
	return &PitchModule{fx: fx}, nil
}

// Process consumes one input sample and returns the shifted output in volts.
func (m *PitchModule) Process(in, shift Input) float64 {
	if !in.Connected {
		return 0
	}

	if m.fx.Write(toInternal(in.volts(), spectralVolts, spectralInternal)) {
		m.fx.SetRatio(PitchRatio(m.Shift, shift))
		m.fx.Apply()
	}

	return toVolts(m.fx.Read(), spectralInternal, spectralVolts)
}

// ProcessSample processes v with the shift CV unconnected.
func (m *PitchModule) ProcessSample(v float64) float64 {
	return m.Process(Connect(v), Input{})
}

// SetSampleRate changes the engine sample rate.
func (m *PitchModule) SetSampleRate(sr float64) error { return m.fx.SetSampleRate(sr) }

// Latency returns the input-to-output delay in samples.
func (m *PitchModule) Latency() int { return m.fx.Latency() }

// Err returns the first streaming FFT error, if any.
func (m *PitchModule) Err() error { return m.fx.Err() }

// Effect returns the underlying effect.
func (m *PitchModule) Effect() *spectral.PitchShift { return m.fx }

// Reset clears the engine state.
func (m *PitchModule) Reset() { m.fx.Reset() }
