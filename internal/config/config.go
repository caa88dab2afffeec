// Package config loads the YAML configuration of the spectral command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/effects"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

// Defaults and limits.
const (
	DefaultFile            = "spectral.yaml"
	DefaultLogLevel        = "info"
	DefaultEffect          = EffectPitch
	DefaultVolts           = 5.0
	DefaultDeviceID        = -1
	DefaultSampleRate      = 48000
	DefaultFramesPerBuffer = 512

	MinSampleRate   = 8000
	MaxSampleRate   = 192000
	MaxBufferFrames = 8192
)

// Effect names.
const (
	EffectFreeze   = "freeze"
	EffectPitch    = "pitch"
	EffectRift     = "rift"
	EffectRiftGate = "riftgate"
	EffectBit      = "bit"
	EffectCheby    = "cheby"
)

var (
	errUnknownEffect = errors.New("unknown effect")
	errUnknownLevel  = errors.New("unknown log level")
	errOutOfRange    = errors.New("value out of range")
)

// Config is the root of the YAML configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"` // debug, info, warn or error.
	Volts    float64      `yaml:"volts"`     // Voltage of a full-scale sample at the module boundary.
	Engine   EngineConfig `yaml:"engine"`
	Effect   EffectConfig `yaml:"effect"`
	Live     LiveConfig   `yaml:"live"`
}

// EngineConfig overrides the STFT engine of spectral effects. Zero values
// keep the effect's default.
type EngineConfig struct {
	WindowSize int    `yaml:"window_size"`
	HopSize    int    `yaml:"hop_size"`
	Window     string `yaml:"window"` // rectangular, hann, hamming or blackman.
}

// EffectConfig selects the effect and holds the knob positions of each one.
type EffectConfig struct {
	Type     string       `yaml:"type"`
	Freeze   FreezeConfig `yaml:"freeze"`
	Pitch    PitchConfig  `yaml:"pitch"`
	Rift     BandConfig   `yaml:"rift"`
	RiftGate BandConfig   `yaml:"riftgate"`
	Bit      BitConfig    `yaml:"bit"`
	Cheby    ChebyConfig  `yaml:"cheby"`
}

// FreezeConfig holds the Freeze knobs.
type FreezeConfig struct {
	Hop      float64   `yaml:"hop"`      // Hop knob in [0, 7].
	Triggers []float64 `yaml:"triggers"` // Recapture times in seconds.
}

// PitchConfig holds the Pitch knobs.
type PitchConfig struct {
	Shift float64 `yaml:"shift"` // Octaves in [-3, 3].
}

// BandConfig holds the knobs of Rift and RiftGate.
type BandConfig struct {
	LowOffset  float64 `yaml:"low_offset"`  // Semitones from C4 in [-42, 78].
	LowAtten   float64 `yaml:"low_atten"`   // CV attenuation in [0, 2].
	HighOffset float64 `yaml:"high_offset"` // Semitones from C4 in [-42, 78].
	HighAtten  float64 `yaml:"high_atten"`  // CV attenuation in [0, 2].
}

// BitConfig holds the Bit knobs.
type BitConfig struct {
	Rate      float64 `yaml:"rate"` // Normalized in [0, 1].
	RateTaper bool    `yaml:"rate_taper"`
	Step      float64 `yaml:"step"` // Normalized in [0, 1].
	StepTaper bool    `yaml:"step_taper"`
}

// ChebyConfig holds the Cheby knobs.
type ChebyConfig struct {
	Harmonics []float64 `yaml:"harmonics"` // Up to 12 weights in [0, 1]; missing weights are 0.
	Freq      float64   `yaml:"freq"`      // Semitones from C4 in [-54, 54].
	Fine      float64   `yaml:"fine"`
	Octave    float64   `yaml:"octave"`
	Rotation  int       `yaml:"rotation"`
	Detune    float64   `yaml:"detune"`
	Voice     int       `yaml:"voice"`
}

// LiveConfig holds the PortAudio settings of the live command.
type LiveConfig struct {
	InputDevice     int     `yaml:"input_device"`  // PortAudio device index, -1 for default.
	OutputDevice    int     `yaml:"output_device"` // PortAudio device index, -1 for default.
	SampleRate      float64 `yaml:"sample_rate"`
	FramesPerBuffer int     `yaml:"frames_per_buffer"`
	LowLatency      bool    `yaml:"low_latency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Volts:    DefaultVolts,
		Effect: EffectConfig{
			Type:     DefaultEffect,
			Freeze:   FreezeConfig{Hop: 5},
			Rift:     BandConfig{LowAtten: 1, HighAtten: 1},
			RiftGate: BandConfig{LowAtten: 1, HighAtten: 1},
			Bit:      BitConfig{Rate: 1, Step: 1},
			Cheby:    ChebyConfig{Harmonics: []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		},
		Live: LiveConfig{
			InputDevice:     DefaultDeviceID,
			OutputDevice:    DefaultDeviceID,
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
		},
	}
}

// Load reads configuration from a YAML file on top of Default. An empty
// path tries DefaultFile and falls back to the defaults when it does not
// exist. Environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return &cfg, nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Parse decodes YAML data into cfg. Unknown keys are rejected; an empty
// document leaves cfg unchanged.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks the configuration. Knob values are clamped by the modules
// and are not checked here.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errUnknownLevel, c.LogLevel)
	}

	if c.Volts <= 0 {
		return fmt.Errorf("%w: volts must be > 0: %g", errOutOfRange, c.Volts)
	}

	switch c.Effect.Type {
	case EffectFreeze, EffectPitch, EffectRift, EffectRiftGate, EffectBit, EffectCheby:
	default:
		return fmt.Errorf("%w: %q", errUnknownEffect, c.Effect.Type)
	}

	if n := len(c.Effect.Cheby.Harmonics); n > effects.ChebyshevHarmonics {
		return fmt.Errorf("%w: cheby.harmonics has %d entries, max %d", errOutOfRange, n, effects.ChebyshevHarmonics)
	}

	for _, ts := range c.Effect.Freeze.Triggers {
		if ts < 0 {
			return fmt.Errorf("%w: freeze trigger time must be >= 0: %g", errOutOfRange, ts)
		}
	}

	if _, err := c.Engine.Options(DefaultSampleRate); err != nil {
		return err
	}

	if c.Live.SampleRate < MinSampleRate || c.Live.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: live.sample_rate must be in [%d, %d]: %g",
			errOutOfRange, MinSampleRate, MaxSampleRate, c.Live.SampleRate)
	}

	if c.Live.FramesPerBuffer <= 0 || c.Live.FramesPerBuffer > MaxBufferFrames {
		return fmt.Errorf("%w: live.frames_per_buffer must be in [1, %d]: %d",
			errOutOfRange, MaxBufferFrames, c.Live.FramesPerBuffer)
	}

	if c.Live.InputDevice < DefaultDeviceID || c.Live.OutputDevice < DefaultDeviceID {
		return fmt.Errorf("%w: device ids must be >= -1", errOutOfRange)
	}

	return nil
}

// Options converts the engine overrides into STFT options for the given
// sample rate. Window and hop sizes are checked for being powers of two
// here; their ratio is checked when the effect is built.
func (e EngineConfig) Options(sampleRate float64) ([]stft.Option, error) {
	opts := []stft.Option{stft.WithSampleRate(sampleRate)}

	if e.WindowSize != 0 {
		if e.WindowSize < stft.MinWindowSize || !core.IsPowerOfTwo(e.WindowSize) {
			return nil, fmt.Errorf("%w: engine.window_size: %d", stft.ErrWindowSize, e.WindowSize)
		}
		opts = append(opts, stft.WithWindowSize(e.WindowSize))
	}

	if e.HopSize != 0 {
		if !core.IsPowerOfTwo(e.HopSize) {
			return nil, fmt.Errorf("%w: engine.hop_size: %d", stft.ErrHopSize, e.HopSize)
		}
		opts = append(opts, stft.WithHopSize(e.HopSize))
	}

	if e.Window != "" {
		t, err := window.ParseType(e.Window)
		if err != nil {
			return nil, fmt.Errorf("engine.window: %w", err)
		}
		opts = append(opts, stft.WithWindow(t))
	}

	return opts, nil
}

func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("SPECTRAL_LOG_LEVEL"); ok {
		c.LogLevel = val
	}

	if val, ok := os.LookupEnv("SPECTRAL_EFFECT"); ok {
		c.Effect.Type = val
	}

	if val, ok := os.LookupEnv("SPECTRAL_SAMPLE_RATE"); ok {
		if sr, err := strconv.ParseFloat(val, 64); err == nil {
			c.Live.SampleRate = sr
		}
	}
}
