package modular

import (
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/effects"
)

const (
	chebyVolts      = 5.0
	chebyInternal   = 1.0
	rotationVolts   = 0.833
	detuneFullScale = 5.0
)

// ChebyInputs are the control inputs of a ChebyModule.
type ChebyInputs struct {
	Harmonics [effects.ChebyshevHarmonics]Input
	VOct      Input
	Rotation  Input
	Detune    Input
}

// ChebyModule is a sine oscillator driving a 12-harmonic Chebyshev
// waveshaper.
//
// The oscillator runs at C4·2^pitch with
//
//	pitch = Freq/12 + Octave + 3/12·Fine·|Fine| + Voice·detune + V/oct
//
// where detune = 3/12·d·|d| and d is the Detune knob, scaled by a connected
// CV as V/5. Voice also multiplies the rotation, so voices of a stack can
// spread their harmonic mix.
type ChebyModule struct {
	// Harmonics are the harmonic weights in [0, 1]. A connected CV scales
	// its weight by V/10.
	Harmonics [effects.ChebyshevHarmonics]float64
	// Freq is the coarse tuning in semitones from C4, [-54, 54].
	Freq float64
	// Fine is the fine tuning in [-1, 1], ±3 semitones with a quadratic
	// response.
	Fine float64
	// Octave is the octave offset in [-3, 3].
	Octave float64
	// Rotation rotates the harmonic weights per voice, [-12, 12]. A
	// connected CV replaces it at one step per 0.833 V.
	Rotation int
	// Detune is the per-voice detune knob in [-1, 1].
	Detune float64
	// Voice is the index of this voice within a stack.
	Voice int

	osc    *effects.Sine
	shaper *effects.Chebyshev
	pitch  float64
}

// NewChebyModule creates a module with every harmonic at full weight,
// tuned to C4.
func NewChebyModule(sampleRate float64) (*ChebyModule, error) {
	osc, err := effects.NewSine(sampleRate, FreqC4)
	if err != nil {
		return nil, err
	}

	m := &ChebyModule{osc: osc, shaper: effects.NewChebyshev()}
	for k := range m.Harmonics {
		m.Harmonics[k] = 1
	}
	return m, nil
}

// Pitch resolves the oscillator pitch in octaves above C4.
func (m *ChebyModule) Pitch(in ChebyInputs) float64 {
	detune := QuadraticBipolar(Attenuated(m.Detune, in.Detune, detuneFullScale)) * 3 / 12

	return m.Freq/12 + m.Octave + QuadraticBipolar(m.Fine)*3/12 +
		detune*float64(m.Voice) + in.VOct.Value(0)
}

// Process renders one output sample in volts. The output is muted while a
// knob holds a non-finite value.
func (m *ChebyModule) Process(in ChebyInputs) float64 {
	var weights [effects.ChebyshevHarmonics]float64
	for k := range weights {
		weights[k] = Attenuated(m.Harmonics[k], in.Harmonics[k], cvFullScale)
	}
	if err := m.shaper.SetWeights(weights[:]); err != nil {
		return 0
	}
	m.shaper.SetRotation(m.Voice * Stepped(m.Rotation, in.Rotation, rotationVolts))

	if pitch := m.Pitch(in); pitch != m.pitch {
		if err := m.osc.SetFrequency(FreqC4 * core.Exp2(pitch)); err != nil {
			return 0
		}
		m.pitch = pitch
	}

	return toVolts(m.shaper.Shape(m.osc.Next()), chebyInternal, chebyVolts)
}

// ProcessSample treats v as the V/oct input.
func (m *ChebyModule) ProcessSample(v float64) float64 {
	return m.Process(ChebyInputs{VOct: Connect(v)})
}

// Shaper returns the underlying waveshaper.
func (m *ChebyModule) Shaper() *effects.Chebyshev { return m.shaper }

// SetSampleRate changes the oscillator sample rate, keeping its pitch.
func (m *ChebyModule) SetSampleRate(sr float64) error { return m.osc.SetSampleRate(sr) }

// Latency returns 0.
func (m *ChebyModule) Latency() int { return 0 }

// Reset restarts the oscillator phase.
func (m *ChebyModule) Reset() { m.osc.Reset() }
