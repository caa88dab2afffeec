package stft

import (
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

// PhaseVocoder tracks per-bin phase across frames. On analysis it turns the
// phase advance between frames into an instantaneous frequency; on synthesis
// it integrates frequencies back into a running phase.
//
// It also keeps the previous frame's magnitudes so effects can measure
// spectral flux for onset detection.
type PhaseVocoder struct {
	size       int
	hop        int
	sampleRate float64

	expected []float64
	analysis []float64
	phase    []float64
	prevMag  []float64

	resetPending bool
}

// NewPhaseVocoder creates a phase vocoder for an FFT of size with frames
// hop samples apart.
func NewPhaseVocoder(size, hop int, sampleRate float64) *PhaseVocoder {
	n := size/2 + 1

	p := &PhaseVocoder{
		size:       size,
		hop:        hop,
		sampleRate: sampleRate,
		expected:   make([]float64, n),
		analysis:   make([]float64, n),
		phase:      make([]float64, n),
		prevMag:    make([]float64, n),
	}

	for k := range p.expected {
		p.expected[k] = 2 * math.Pi * float64(k) * float64(hop) / float64(size)
	}

	return p
}

// ResetPhases makes the next synthesis adopt the most recent analysis phases
// instead of integrating frequencies. Calling it more than once before a
// synthesis has the same effect as calling it once.
func (p *PhaseVocoder) ResetPhases() { p.resetPending = true }

// ResetPending reports whether a phase reset awaits the next synthesis.
func (p *PhaseVocoder) ResetPending() bool { return p.resetPending }

// Flux returns the positive spectral flux of cur against the stored
// magnitudes.
func (p *PhaseVocoder) Flux(cur []float64) float64 {
	return spectrum.PositiveFlux(cur, p.prevMag)
}

// StoreMagnitudes keeps cur as the reference for the next Flux call.
func (p *PhaseVocoder) StoreMagnitudes(cur []float64) {
	copy(p.prevMag, cur)
}

// SetSampleRate changes the Hz scaling of frequencies.
func (p *PhaseVocoder) SetSampleRate(sr float64) { p.sampleRate = sr }

// Reset clears all phase and magnitude history.
func (p *PhaseVocoder) Reset() {
	core.Zero(p.analysis)
	core.Zero(p.phase)
	core.Zero(p.prevMag)
	p.resetPending = false
}

// frequency records the measured phase of bin k and returns its
// instantaneous frequency in Hz.
func (p *PhaseVocoder) frequency(k int, phase float64) float64 {
	dev := core.WrapPhase(phase - p.analysis[k] - p.expected[k])
	p.analysis[k] = phase

	binFreq := p.sampleRate / float64(p.size)

	return float64(k)*binFreq + dev*p.sampleRate/(2*math.Pi*float64(p.hop))
}

// advance integrates freq (Hz) over one hop for bin k, or adopts the last
// analysis phase when reset is true, and returns the synthesis phase.
func (p *PhaseVocoder) advance(k int, freq float64, reset bool) float64 {
	if reset {
		p.phase[k] = p.analysis[k]
		return p.phase[k]
	}

	p.phase[k] = core.WrapPhase(p.phase[k] + 2*math.Pi*freq*float64(p.hop)/p.sampleRate)

	return p.phase[k]
}

// consumeReset returns and clears the pending reset flag.
func (p *PhaseVocoder) consumeReset() bool {
	r := p.resetPending
	p.resetPending = false

	return r
}
