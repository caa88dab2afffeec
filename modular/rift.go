package modular

import (
	"github.com/cwbudde/algo-spectral/dsp/effects/spectral"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

// Band holds the knobs of a CV-controlled frequency band. Offsets are
// semitones from C4 in [-42, 78]; attenuations scale the CV in [0, 2].
type Band struct {
	LowOffset  float64
	LowAtten   float64
	HighOffset float64
	HighAtten  float64
}

// DefaultBand returns the power-on knob positions: both edges at C4 with
// unit CV attenuation.
func DefaultBand() Band {
	return Band{LowAtten: 1, HighAtten: 1}
}

// Edges resolves the band edges in Hz.
func (b Band) Edges(lowCV, highCV Input) (lo, hi float64) {
	return Cutoff(b.LowOffset, b.LowAtten, lowCV), Cutoff(b.HighOffset, b.HighAtten, highCV)
}

// RiftModule is a brickwall spectral band-pass. Bins outside the band are
// zeroed. The output is silent while the input is unconnected.
type RiftModule struct {
	Band

	fx *spectral.BandGate
}

// NewRiftModule creates a rift module with DefaultBand knobs. opts configure
// the engine.
func NewRiftModule(opts ...stft.Option) (*RiftModule, error) {
	fx, err := spectral.NewBandGate(opts...)
	if err != nil {
		return nil, err
	}
	return &RiftModule{Band: DefaultBand(), fx: fx}, nil
}

// Process consumes one input sample and returns the gated output in volts.
func (m *RiftModule) Process(in, lowCV, highCV Input) float64 {
	if !in.Connected {
		return 0
	}

	if m.fx.Write(toInternal(in.volts(), spectralVolts, spectralInternal)) {
		m.fx.SetBand(m.Edges(lowCV, highCV))
		m.fx.Apply()
	}

	return toVolts(m.fx.Read(), spectralInternal, spectralVolts)
}

// ProcessSample processes v with both cutoff CVs unconnected.
func (m *RiftModule) ProcessSample(v float64) float64 {
	return m.Process(Connect(v), Input{}, Input{})
}

// SetSampleRate changes the engine sample rate.
func (m *RiftModule) SetSampleRate(sr float64) error { return m.fx.SetSampleRate(sr) }

// Latency returns the input-to-output delay in samples.
func (m *RiftModule) Latency() int { return m.fx.Latency() }

// Err returns the first streaming FFT error, if any.
func (m *RiftModule) Err() error { return m.fx.Err() }

// Effect returns the underlying effect.
func (m *RiftModule) Effect() *spectral.BandGate { return m.fx }

// Reset clears the engine state.
func (m *RiftModule) Reset() { m.fx.Reset() }

// RiftGateInputs are the audio and control inputs of a RiftGateModule.
type RiftGateInputs struct {
	In     Input
	Outer  Input
	Inner  Input
	LowCV  Input
	HighCV Input
}

// RiftGateOutputs are the outputs of a RiftGateModule in volts.
type RiftGateOutputs struct {
	// Inner is In restricted to the band.
	Inner float64
	// Outer is In with the band removed.
	Outer float64
	// Out is the Outer input with its band replaced by the Inner input's.
	Out float64
}

// RiftGateModule splits its input at a band and crossfades two auxiliary
// inputs at the same band.
type RiftGateModule struct {
	Band

	fx *spectral.DualBandGate
}

// NewRiftGateModule creates a rift gate module with DefaultBand knobs. opts
// configure the engines.
func NewRiftGateModule(opts ...stft.Option) (*RiftGateModule, error) {
	fx, err := spectral.NewDualBandGate(opts...)
	if err != nil {
		return nil, err
	}
	return &RiftGateModule{Band: DefaultBand(), fx: fx}, nil
}

// Process consumes one sample of every input. Unconnected audio inputs read
// 0 V but still advance their transforms.
func (m *RiftGateModule) Process(in RiftGateInputs) RiftGateOutputs {
	due := m.fx.Write(
		toInternal(in.In.Value(0), spectralVolts, spectralInternal),
		toInternal(in.Outer.Value(0), spectralVolts, spectralInternal),
		toInternal(in.Inner.Value(0), spectralVolts, spectralInternal),
	)
	if due {
		m.fx.SetBand(m.Edges(in.LowCV, in.HighCV))
		m.fx.Apply()
	}

	inner, outer, out := m.fx.Read()

	return RiftGateOutputs{
		Inner: toVolts(inner, spectralInternal, spectralVolts),
		Outer: toVolts(outer, spectralInternal, spectralVolts),
		Out:   toVolts(out, spectralInternal, spectralVolts),
	}
}

// ProcessSample patches v into both In and Outer and returns Out, which
// notches the band out of v.
func (m *RiftGateModule) ProcessSample(v float64) float64 {
	return m.Process(RiftGateInputs{In: Connect(v), Outer: Connect(v)}).Out
}

// SetSampleRate changes the sample rate of all engines.
func (m *RiftGateModule) SetSampleRate(sr float64) error { return m.fx.SetSampleRate(sr) }

// Latency returns the input-to-output delay in samples.
func (m *RiftGateModule) Latency() int { return m.fx.Latency() }

// Err returns the first streaming FFT error, if any.
func (m *RiftGateModule) Err() error { return m.fx.Err() }

// Effect returns the underlying effect.
func (m *RiftGateModule) Effect() *spectral.DualBandGate { return m.fx }

// Reset clears the engine state.
func (m *RiftGateModule) Reset() { m.fx.Reset() }
