package spectral

import (
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

// FluxThreshold is the positive spectral flux, in normalized magnitude
// units, above which PitchShift treats a frame as an onset and resets
// synthesis phases.
const FluxThreshold = 0.2

// PitchConfig is the default engine configuration for PitchShift.
var PitchConfig = stft.Config{
	WindowSize: 4096,
	HopSize:    1024,
	Window:     window.TypeHamming,
	Format:     stft.FormatMagFreq,
	SampleRate: 48000,
}

// PitchShift scales every partial's frequency by a ratio by remapping bins,
// keeping the frame timing fixed.
//
// Source bin k moves to round(k*ratio) and its frequency is multiplied by the
// ratio. When several source bins land on one destination (ratio < 1) their
// magnitudes add. Destinations are clamped below the Nyquist bin, and the DC
// bin is never remapped. Frames whose positive flux exceeds FluxThreshold
// reset synthesis phases to the analysis phases so transients stay sharp.
type PitchShift struct {
	s     *stft.STFT
	ratio float64

	stagedMag  []float64
	stagedFreq []float64
}

// NewPitchShift creates a pitch shifter with ratio 1. opts override
// PitchConfig; the bin format must be FormatMagFreq.
func NewPitchShift(opts ...stft.Option) (*PitchShift, error) {
	s, err := newEngine(PitchConfig, opts)
	if err != nil {
		return nil, err
	}

	if err := requireFormat(s, stft.FormatMagFreq, "pitch shift"); err != nil {
		return nil, err
	}

	n := s.Config().Bins()

	return &PitchShift{
		s:          s,
		ratio:      1,
		stagedMag:  make([]float64, n),
		stagedFreq: make([]float64, n),
	}, nil
}

// SetRatio sets the frequency ratio applied by the next Apply. A ratio that
// is not positive and finite silences every bin except DC.
func (p *PitchShift) SetRatio(r float64) { p.ratio = r }

// Ratio returns the frequency ratio.
func (p *PitchShift) Ratio() float64 { return p.ratio }

// Write consumes one input sample and reports whether a frame was analyzed.
func (p *PitchShift) Write(x float64) bool { return p.s.Push(x) }

// Apply detects onsets and remaps the analyzed frame.
func (p *PitchShift) Apply() {
	bins := p.s.Bins()
	mag, freq := bins.Mag(), bins.Freq()
	pv := p.s.Vocoder()

	flux := pv.Flux(mag)
	pv.StoreMagnitudes(mag)

	if flux > FluxThreshold {
		p.s.ResetPhases()
	}

	binFreq := p.s.BinFrequency(1)
	for k := range p.stagedMag {
		p.stagedMag[k] = 0
		p.stagedFreq[k] = float64(k) * binFreq
	}

	n := len(mag)
	half := n - 1
	r := p.ratio

	if core.IsFinitePositive(r) {
		kmax := half
		if lim := float64(n) / r; lim < float64(half) {
			kmax = int(lim)
		}

		for k := 1; k < kmax; k++ {
			j := int(math.Round(float64(k) * r))
			if j < 1 {
				continue
			}

			if j > half-1 {
				j = half - 1
			}

			p.stagedMag[j] += mag[k]
			p.stagedFreq[j] = freq[k] * r
		}
	}

	copy(mag[1:], p.stagedMag[1:])
	copy(freq[1:], p.stagedFreq[1:])
}

// Read returns the next output sample.
func (p *PitchShift) Read() float64 { return p.s.Next() }

// ProcessSample shifts one sample at the current ratio.
func (p *PitchShift) ProcessSample(x float64) float64 {
	if p.Write(x) {
		p.Apply()
	}

	return p.Read()
}

// ProcessInPlace processes buf sample by sample.
func (p *PitchShift) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = p.ProcessSample(x)
	}
}

// Bins returns the live spectrum.
func (p *PitchShift) Bins() *stft.Bins { return p.s.Bins() }

// Config returns the engine configuration.
func (p *PitchShift) Config() stft.Config { return p.s.Config() }

// SetSampleRate changes the sample rate used for bin frequencies.
func (p *PitchShift) SetSampleRate(sr float64) error { return p.s.SetSampleRate(sr) }

// Latency returns the input-to-output delay in samples.
func (p *PitchShift) Latency() int { return p.s.Latency() }

// Err returns the first streaming FFT error, if any.
func (p *PitchShift) Err() error { return p.s.Err() }

// Reset clears all state. The ratio is kept.
func (p *PitchShift) Reset() { p.s.Reset() }
