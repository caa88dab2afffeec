package modular

import (
	"slices"

	"github.com/cwbudde/algo-spectral/dsp/effects/spectral"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

const (
	freezeVolts    = 5.0
	freezeInternal = 0.8

	// DefaultFreezeHop selects a hop of a quarter window at the default
	// window size.
	DefaultFreezeHop = 5.0
)

// FreezeModule holds a captured spectrum, recapturing on every rising edge
// of its trigger input.
type FreezeModule struct {
	fx   *spectral.Freeze
	trig SchmittTrigger
	opts []stft.Option
	hop  float64
	sr   float64 // host rate set after construction, 0 if none
}

// NewFreezeModule creates a freeze module with hop knob DefaultFreezeHop.
// opts configure the engine; any hop option is replaced by the knob.
func NewFreezeModule(opts ...stft.Option) (*FreezeModule, error) {
	m := &FreezeModule{opts: opts}
	if err := m.rebuild(DefaultFreezeHop); err != nil {
		return nil, err
	}
	return m, nil
}

// SetHop sets the hop knob in [0, 7]. When the resulting hop size differs
// from the current one the engine is rebuilt and starts a new capture.
// Call between blocks only.
func (m *FreezeModule) SetHop(v float64) error {
	cfg := m.fx.Config()
	if HopSize(v, cfg.WindowSize) == cfg.HopSize {
		m.hop = v
		return nil
	}
	return m.rebuild(v)
}

// Hop returns the hop knob value.
func (m *FreezeModule) Hop() float64 { return m.hop }

// HopSize returns the engine hop size in samples.
func (m *FreezeModule) HopSize() int { return m.fx.Config().HopSize }

func (m *FreezeModule) rebuild(v float64) error {
	base, err := stft.ApplyOptions(spectral.FreezeConfig, m.opts...)
	if err != nil {
		return err
	}

	opts := append(slices.Clone(m.opts), stft.WithHopSize(HopSize(v, base.WindowSize)))
	if m.sr > 0 {
		opts = append(opts, stft.WithSampleRate(m.sr))
	}

	fx, err := spectral.NewFreeze(opts...)
	if err != nil {
		return err
	}

	m.fx, m.hop = fx, v
	return nil
}

// Process consumes one source sample and the trigger gate and returns the
// resynthesized output in volts.
func (m *FreezeModule) Process(src, trig Input) float64 {
	if m.trig.Process(trig.Value(0)) {
		m.fx.Trigger()
	}

	if m.fx.Write(toInternal(src.Value(0), freezeVolts, freezeInternal)) {
		m.fx.Apply()
	}

	return toVolts(m.fx.Read(), freezeInternal, freezeVolts)
}

// Trigger restarts capture as a rising trigger edge would.
func (m *FreezeModule) Trigger() { m.fx.Trigger() }

// ProcessSample processes src with the trigger unconnected.
func (m *FreezeModule) ProcessSample(v float64) float64 {
	return m.Process(Connect(v), Input{})
}

// Capturing reports whether the module is still absorbing input.
func (m *FreezeModule) Capturing() bool { return m.fx.Capturing() }

// SetSampleRate changes the engine sample rate. Later hop rebuilds keep it.
func (m *FreezeModule) SetSampleRate(sr float64) error {
	if err := m.fx.SetSampleRate(sr); err != nil {
		return err
	}
	m.sr = sr
	return nil
}

// Latency returns the input-to-output delay in samples.
func (m *FreezeModule) Latency() int { return m.fx.Latency() }

// Err returns the first streaming FFT error, if any.
func (m *FreezeModule) Err() error { return m.fx.Err() }

// Effect returns the underlying effect.
func (m *FreezeModule) Effect() *spectral.Freeze { return m.fx }

// Reset clears the engine and trigger state and starts a new capture.
func (m *FreezeModule) Reset() {
	m.fx.Reset()
	m.trig.Reset()
}
