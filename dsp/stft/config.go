package stft

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

const (
	// MinWindowSize is the smallest accepted analysis window.
	MinWindowSize = 16

	defaultWindowSize = 2048
	defaultHopSize    = 512
	defaultSampleRate = 48000.0
)

// Format selects how Bins store spectral content.
type Format int

const (
	// FormatComplex stores real and imaginary parts per bin.
	FormatComplex Format = iota
	// FormatMagFreq stores magnitude and instantaneous frequency in Hz per bin.
	FormatMagFreq
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatComplex:
		return "complex"
	case FormatMagFreq:
		return "magfreq"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat resolves "complex" or "magfreq" (case-insensitive).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "complex":
		return FormatComplex, nil
	case "magfreq", "mag_freq", "mag-freq":
		return FormatMagFreq, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrFormat, name)
	}
}

// Config describes an STFT instance. It is fixed for the lifetime of the
// instance; changing any field requires constructing a new one.
type Config struct {
	WindowSize int
	HopSize    int
	Window     window.Type
	Format     Format
	SampleRate float64
}

// DefaultConfig returns a 2048-sample Hann window with 4x overlap, complex
// bins, at 48 kHz.
func DefaultConfig() Config {
	return Config{
		WindowSize: defaultWindowSize,
		HopSize:    defaultHopSize,
		Window:     window.TypeHann,
		Format:     FormatComplex,
		SampleRate: defaultSampleRate,
	}
}

// Validate checks the configuration. Errors wrap ErrWindowSize, ErrHopSize,
// ErrSampleRate or ErrFormat.
func (c Config) Validate() error {
	if c.WindowSize < MinWindowSize || !core.IsPowerOfTwo(c.WindowSize) {
		return fmt.Errorf("%w: must be a power of two >= %d: %d", ErrWindowSize, MinWindowSize, c.WindowSize)
	}

	if c.HopSize <= 0 || c.HopSize > c.WindowSize ||
		c.WindowSize%c.HopSize != 0 || !core.IsPowerOfTwo(c.WindowSize/c.HopSize) {
		return fmt.Errorf("%w: window/hop must be a power of two: %d/%d", ErrHopSize, c.WindowSize, c.HopSize)
	}

	if !core.IsFinitePositive(c.SampleRate) {
		return fmt.Errorf("%w: must be > 0 and finite: %f", ErrSampleRate, c.SampleRate)
	}

	if c.Format != FormatComplex && c.Format != FormatMagFreq {
		return fmt.Errorf("%w: %d", ErrFormat, c.Format)
	}

	return nil
}

// Bins returns the number of bins per frame, WindowSize/2+1.
func (c Config) Bins() int { return c.WindowSize/2 + 1 }

// Latency returns the delay in samples between an input sample and the
// output sample that reconstructs it.
func (c Config) Latency() int { return c.WindowSize - 1 }

// Option mutates a Config during construction.
type Option func(*Config) error

// WithWindowSize sets the analysis window length.
func WithWindowSize(n int) Option {
	return func(c *Config) error {
		c.WindowSize = n
		return nil
	}
}

// WithHopSize sets the distance in samples between frames.
func WithHopSize(n int) Option {
	return func(c *Config) error {
		c.HopSize = n
		return nil
	}
}

// WithWindow sets the analysis and synthesis window.
func WithWindow(t window.Type) Option {
	return func(c *Config) error {
		c.Window = t
		return nil
	}
}

// WithFormat sets the bin format.
func WithFormat(f Format) Option {
	return func(c *Config) error {
		c.Format = f
		return nil
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sr float64) Option {
	return func(c *Config) error {
		if !core.IsFinitePositive(sr) {
			return fmt.Errorf("%w: must be > 0 and finite: %f", ErrSampleRate, sr)
		}

		c.SampleRate = sr

		return nil
	}
}

// ApplyOptions applies opts over base and validates the result.
func ApplyOptions(base Config, opts ...Option) (Config, error) {
	cfg := base

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
