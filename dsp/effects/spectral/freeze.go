package spectral

import (
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

// FreezeConfig is the default engine configuration for Freeze.
var FreezeConfig = stft.Config{
	WindowSize: 2048,
	HopSize:    512,
	Window:     window.TypeHann,
	Format:     stft.FormatMagFreq,
	SampleRate: 48000,
}

// Freeze captures one window's worth of spectrum after a trigger and then
// resynthesizes it indefinitely.
//
// After Trigger the effect analyzes ceil(WindowSize/HopSize) frames. Phases
// are reset on each of them except the last, so the held spectrum starts
// phase-aligned with the captured audio. Once capture completes the input is
// still consumed to keep the frame schedule, but no further frames are
// analyzed and the held magnitudes and frequencies stay bit-identical until
// the next Trigger. A new instance starts capturing immediately.
type Freeze struct {
	s      *stft.STFT
	frames int
	count  int
}

// NewFreeze creates a freeze effect. opts override FreezeConfig; the bin
// format must be FormatMagFreq.
func NewFreeze(opts ...stft.Option) (*Freeze, error) {
	s, err := newEngine(FreezeConfig, opts)
	if err != nil {
		return nil, err
	}

	if err := requireFormat(s, stft.FormatMagFreq, "freeze"); err != nil {
		return nil, err
	}

	cfg := s.Config()

	return &Freeze{
		s:      s,
		frames: (cfg.WindowSize + cfg.HopSize - 1) / cfg.HopSize,
	}, nil
}

// Trigger restarts capture from the next analyzed frame.
func (f *Freeze) Trigger() { f.count = 0 }

// Capturing reports whether capture frames remain.
func (f *Freeze) Capturing() bool { return f.count < f.frames }

// CaptureFrames returns the number of frames analyzed per capture.
func (f *Freeze) CaptureFrames() int { return f.frames }

// Write consumes one input sample. It reports whether a captured frame was
// analyzed.
func (f *Freeze) Write(x float64) bool {
	if f.count >= f.frames {
		f.s.Feed(x)
		return false
	}

	if !f.s.Push(x) {
		return false
	}

	f.count++
	if f.count < f.frames {
		f.s.ResetPhases()
	}

	return true
}

// Apply is a no-op; Freeze has no per-frame controls.
func (f *Freeze) Apply() {}

// Read returns the next output sample.
func (f *Freeze) Read() float64 { return f.s.Next() }

// ProcessSample writes x and returns the next output sample.
func (f *Freeze) ProcessSample(x float64) float64 {
	f.Write(x)
	return f.Read()
}

// ProcessInPlace processes buf sample by sample.
func (f *Freeze) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Bins returns the current (captured or held) spectrum.
func (f *Freeze) Bins() *stft.Bins { return f.s.Bins() }

// Config returns the engine configuration.
func (f *Freeze) Config() stft.Config { return f.s.Config() }

// SetSampleRate changes the sample rate of the engine. The held spectrum is
// kept.
func (f *Freeze) SetSampleRate(sr float64) error { return f.s.SetSampleRate(sr) }

// Latency returns the input-to-output delay in samples.
func (f *Freeze) Latency() int { return f.s.Latency() }

// Err returns the first streaming FFT error, if any.
func (f *Freeze) Err() error { return f.s.Err() }

// Reset clears all state and starts a new capture.
func (f *Freeze) Reset() {
	f.s.Reset()
	f.count = 0
}
