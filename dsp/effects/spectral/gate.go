package spectral

import (
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

// GateConfig is the default engine configuration for BandGate and
// DualBandGate.
var GateConfig = stft.Config{
	WindowSize: 2048,
	HopSize:    512,
	Window:     window.TypeHann,
	Format:     stft.FormatComplex,
	SampleRate: 48000,
}

// inBand reports whether bin k of s lies in [lo, hi] Hz.
func inBand(s *stft.STFT, k int, lo, hi float64) bool {
	f := s.BinFrequency(k)
	return f >= lo && f <= hi
}

// BandGate passes only the bins whose center frequency lies in [lo, hi] Hz.
//
// The cut is a brickwall on the bin grid; its transition width is the
// window's main lobe. If lo > hi every bin is removed.
type BandGate struct {
	s      *stft.STFT
	lo, hi float64
}

// NewBandGate creates a band gate that initially passes [0, sampleRate/2].
// opts override GateConfig.
func NewBandGate(opts ...stft.Option) (*BandGate, error) {
	s, err := newEngine(GateConfig, opts)
	if err != nil {
		return nil, err
	}

	return &BandGate{s: s, lo: 0, hi: s.Config().SampleRate / 2}, nil
}

// SetBand sets the passband edges in Hz used by the next Apply.
func (g *BandGate) SetBand(lo, hi float64) {
	g.lo, g.hi = lo, hi
}

// Band returns the passband edges in Hz.
func (g *BandGate) Band() (lo, hi float64) { return g.lo, g.hi }

// Write consumes one input sample and reports whether a frame was analyzed.
func (g *BandGate) Write(x float64) bool { return g.s.Push(x) }

// Apply zeroes every bin outside the band.
func (g *BandGate) Apply() {
	bins := g.s.Bins()
	for k := range bins.Len() {
		if !inBand(g.s, k, g.lo, g.hi) {
			bins.Zero(k)
		}
	}
}

// Read returns the next output sample.
func (g *BandGate) Read() float64 { return g.s.Next() }

// ProcessSample gates one sample with the current band.
func (g *BandGate) ProcessSample(x float64) float64 {
	if g.Write(x) {
		g.Apply()
	}

	return g.Read()
}

// ProcessInPlace processes buf sample by sample.
func (g *BandGate) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = g.ProcessSample(x)
	}
}

// Config returns the engine configuration.
func (g *BandGate) Config() stft.Config { return g.s.Config() }

// SetSampleRate changes the sample rate used to place the band on the bin
// grid.
func (g *BandGate) SetSampleRate(sr float64) error { return g.s.SetSampleRate(sr) }

// Latency returns the input-to-output delay in samples.
func (g *BandGate) Latency() int { return g.s.Latency() }

// Err returns the first streaming FFT error, if any.
func (g *BandGate) Err() error { return g.s.Err() }

// Reset clears all state. The band is kept.
func (g *BandGate) Reset() { g.s.Reset() }

// DualBandGate splits a primary signal at a band and crossfades two
// auxiliary signals at the same band.
//
// Three outputs are produced per sample:
//   - inner: the primary signal restricted to [lo, hi]
//   - outer: the primary signal with [lo, hi] removed
//   - out: the source signal with its [lo, hi] content replaced by the
//     replacement signal's
//
// All four internal transforms consume a sample on every call, so their
// frames stay aligned regardless of which inputs are silent.
type DualBandGate struct {
	inner   *stft.STFT
	outer   *stft.STFT
	source  *stft.STFT
	replace *stft.STFT
	lo, hi  float64
}

// NewDualBandGate creates a dual band gate that initially treats the whole
// spectrum as in-band. opts override GateConfig.
func NewDualBandGate(opts ...stft.Option) (*DualBandGate, error) {
	cfg, err := stft.ApplyOptions(GateConfig, opts...)
	if err != nil {
		return nil, err
	}

	engines := make([]*stft.STFT, 4)
	for i := range engines {
		if engines[i], err = stft.NewFromConfig(cfg); err != nil {
			return nil, err
		}
	}

	return &DualBandGate{
		inner:   engines[0],
		outer:   engines[1],
		source:  engines[2],
		replace: engines[3],
		hi:      cfg.SampleRate / 2,
	}, nil
}

// SetBand sets the band edges in Hz used by the next Apply.
func (g *DualBandGate) SetBand(lo, hi float64) {
	g.lo, g.hi = lo, hi
}

// Band returns the band edges in Hz.
func (g *DualBandGate) Band() (lo, hi float64) { return g.lo, g.hi }

// Write consumes one sample of each input and reports whether a frame was
// analyzed.
func (g *DualBandGate) Write(in, source, replace float64) bool {
	due := g.inner.Push(in)
	g.outer.Feed(0)
	g.source.Push(source)
	g.replace.Push(replace)

	return due
}

// Apply routes bins between the transforms.
func (g *DualBandGate) Apply() {
	inner, outer := g.inner.Bins(), g.outer.Bins()
	source, replace := g.source.Bins(), g.replace.Bins()

	for k := range inner.Len() {
		if inBand(g.inner, k, g.lo, g.hi) {
			outer.Zero(k)
			source.Set(k, replace)

			continue
		}

		outer.Set(k, inner)
		inner.Zero(k)
	}
}

// Read returns the next inner, outer and out samples.
func (g *DualBandGate) Read() (inner, outer, out float64) {
	return g.inner.Next(), g.outer.Next(), g.source.Next()
}

// Process runs one sample of each input through the gate with the current
// band.
func (g *DualBandGate) Process(in, source, replace float64) (inner, outer, out float64) {
	if g.Write(in, source, replace) {
		g.Apply()
	}

	return g.Read()
}

// Config returns the engine configuration shared by all transforms.
func (g *DualBandGate) Config() stft.Config { return g.inner.Config() }

// SetSampleRate changes the sample rate of all four transforms.
func (g *DualBandGate) SetSampleRate(sr float64) error {
	for _, s := range g.engines() {
		if err := s.SetSampleRate(sr); err != nil {
			return err
		}
	}

	return nil
}

// Latency returns the input-to-output delay in samples.
func (g *DualBandGate) Latency() int { return g.inner.Latency() }

// Err returns the first streaming FFT error from any transform.
func (g *DualBandGate) Err() error {
	for _, s := range g.engines() {
		if err := s.Err(); err != nil {
			return err
		}
	}

	return nil
}

// Reset clears all state. The band is kept.
func (g *DualBandGate) Reset() {
	for _, s := range g.engines() {
		s.Reset()
	}
}

func (g *DualBandGate) engines() [4]*stft.STFT {
	return [4]*stft.STFT{g.inner, g.outer, g.source, g.replace}
}
