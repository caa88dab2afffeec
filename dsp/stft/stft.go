package stft

import "github.com/cwbudde/algo-spectral/dsp/core"

// STFT composes a FrameBuffer, a Transform and the current Bins into a
// streaming analysis/resynthesis engine.
//
// Per input sample call Feed (or Push) once, optionally edit Bins when a
// frame was analyzed, then call Next once to obtain the output sample:
//
//	if s.Push(x) {
//		// edit s.Bins()
//	}
//	y := s.Next()
//
// Feed without Analyze keeps the hop schedule running while leaving Bins
// untouched, so a caller can keep resynthesizing a held or externally
// written spectrum.
type STFT struct {
	cfg    Config
	frames *FrameBuffer
	xf     *Transform
	bins   *Bins
	synth  []float64
	due    bool
	err    error
}

// New creates an STFT from DefaultConfig with opts applied.
func New(opts ...Option) (*STFT, error) {
	cfg, err := ApplyOptions(DefaultConfig(), opts...)
	if err != nil {
		return nil, err
	}

	return NewFromConfig(cfg)
}

// NewFromConfig creates an STFT from a complete configuration.
func NewFromConfig(cfg Config) (*STFT, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	frames, err := NewFrameBuffer(cfg.WindowSize, cfg.HopSize, cfg.Window)
	if err != nil {
		return nil, err
	}

	xf, err := NewTransform(cfg.WindowSize, cfg.HopSize, frames.WindowSum(), cfg.Format, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	return &STFT{
		cfg:    cfg,
		frames: frames,
		xf:     xf,
		bins:   NewBins(cfg.Bins(), cfg.Format),
		synth:  make([]float64, cfg.WindowSize),
	}, nil
}

// Feed writes one input sample and reports whether a hop boundary was
// reached. On a boundary the next call to Next resynthesizes Bins.
func (s *STFT) Feed(x float64) bool {
	if !s.frames.Write(x) {
		return false
	}

	s.due = true

	return true
}

// Analyze transforms the current analysis frame into Bins. It is meaningful
// right after Feed returned true.
func (s *STFT) Analyze() {
	if err := s.xf.Analyze(s.frames.Frame(), s.bins); err != nil && s.err == nil {
		s.err = err
	}
}

// Push feeds x and analyzes the frame on a hop boundary. It reports whether
// Bins now hold a fresh frame.
func (s *STFT) Push(x float64) bool {
	if !s.Feed(x) {
		return false
	}

	s.Analyze()

	return true
}

// Next returns one output sample, resynthesizing Bins first if a boundary
// was reached since the previous call.
func (s *STFT) Next() float64 {
	if s.due {
		s.due = false

		if err := s.xf.Synthesize(s.bins, s.synth); err != nil {
			if s.err == nil {
				s.err = err
			}
		} else {
			s.frames.OverlapAdd(s.synth)
		}
	}

	return s.frames.Pop()
}

// ProcessSample pushes x and returns the next output without editing Bins.
func (s *STFT) ProcessSample(x float64) float64 {
	s.Push(x)
	return s.Next()
}

// Bins returns the live bins. Edits between Push and Next are resynthesized.
func (s *STFT) Bins() *Bins { return s.bins }

// ResetPhases schedules a phase reset for the next synthesis (FormatMagFreq).
func (s *STFT) ResetPhases() { s.xf.Vocoder().ResetPhases() }

// Vocoder returns the phase vocoder state.
func (s *STFT) Vocoder() *PhaseVocoder { return s.xf.Vocoder() }

// Config returns the construction configuration.
func (s *STFT) Config() Config { return s.cfg }

// Latency returns the input-to-output delay in samples.
func (s *STFT) Latency() int { return s.frames.Latency() }

// BinFrequency returns the center frequency of bin k in Hz.
func (s *STFT) BinFrequency(k int) float64 {
	return float64(k) * s.cfg.SampleRate / float64(s.cfg.WindowSize)
}

// SetSampleRate changes the sample rate used to scale frequencies.
func (s *STFT) SetSampleRate(sr float64) error {
	if err := s.xf.SetSampleRate(sr); err != nil {
		return err
	}

	s.cfg.SampleRate = sr

	return nil
}

// Err returns the first FFT error encountered while streaming. Frames that
// fail are dropped.
func (s *STFT) Err() error { return s.err }

// Reset clears all audio, bins and phase state.
func (s *STFT) Reset() {
	s.frames.Reset()
	s.xf.Reset()
	s.bins.Clear()
	core.Zero(s.bins.Freq())
	s.due = false
	s.err = nil
}
