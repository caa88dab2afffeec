package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/stft"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "spectral.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Effect.Type != EffectPitch || cfg.Volts != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if cfg != nil {
		t.Fatalf("expected nil config on error, got %+v", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeTempConfig(t, ":\n:bad")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeTempConfig(t, "effect:\n  type: rift\n  wobble: 3\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
log_level: debug
engine:
  window_size: 1024
  hop_size: 256
  window: hamming
effect:
  type: rift
  rift:
    low_offset: 12
    high_offset: 36
live:
  frames_per_buffer: 256
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.Effect.Type != EffectRift {
		t.Fatalf("log level %q effect %q", cfg.LogLevel, cfg.Effect.Type)
	}
	if cfg.Effect.Rift.LowOffset != 12 || cfg.Effect.Rift.HighOffset != 36 {
		t.Fatalf("rift offsets = %+v", cfg.Effect.Rift)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Effect.Rift.LowAtten != 1 || cfg.Live.SampleRate != DefaultSampleRate || cfg.Volts != DefaultVolts {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.Live.FramesPerBuffer != 256 {
		t.Fatalf("frames per buffer = %d, want 256", cfg.Live.FramesPerBuffer)
	}

	opts, err := cfg.Engine.Options(44100)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	engine, err := stft.ApplyOptions(stft.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("ApplyOptions() error = %v", err)
	}
	if engine.WindowSize != 1024 || engine.HopSize != 256 || engine.SampleRate != 44100 || engine.Window.String() != "hamming" {
		t.Fatalf("engine = %+v", engine)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SPECTRAL_EFFECT", "freeze")
	t.Setenv("SPECTRAL_SAMPLE_RATE", "96000")

	path := writeTempConfig(t, "effect:\n  type: bit\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Effect.Type != EffectFreeze || cfg.Live.SampleRate != 96000 {
		t.Fatalf("env overrides not applied: effect %q rate %g", cfg.Effect.Type, cfg.Live.SampleRate)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg := Default()
	if err := Parse(nil, &cfg); err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Effect.Type != DefaultEffect {
		t.Fatalf("empty document changed config: %+v", cfg)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Effect.Type = EffectCheby
	cfg.Effect.Cheby.Rotation = 3

	data, err := Marshal(&cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := Default()
	if err := Parse(data, &got); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Effect.Type != EffectCheby || got.Effect.Cheby.Rotation != 3 || len(got.Effect.Cheby.Harmonics) != 12 {
		t.Fatalf("round trip mismatch: %+v", got.Effect)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }, target: errUnknownLevel},
		{name: "effect", mutate: func(c *Config) { c.Effect.Type = "reverb" }, target: errUnknownEffect},
		{name: "volts", mutate: func(c *Config) { c.Volts = 0 }, target: errOutOfRange},
		{name: "harmonics", mutate: func(c *Config) { c.Effect.Cheby.Harmonics = make([]float64, 13) }, target: errOutOfRange},
		{name: "trigger", mutate: func(c *Config) { c.Effect.Freeze.Triggers = []float64{1, -1} }, target: errOutOfRange},
		{name: "window size", mutate: func(c *Config) { c.Engine.WindowSize = 1000 }, target: stft.ErrWindowSize},
		{name: "hop size", mutate: func(c *Config) { c.Engine.HopSize = 300 }, target: stft.ErrHopSize},
		{name: "sample rate", mutate: func(c *Config) { c.Live.SampleRate = 1000 }, target: errOutOfRange},
		{name: "buffer", mutate: func(c *Config) { c.Live.FramesPerBuffer = 0 }, target: errOutOfRange},
		{name: "device", mutate: func(c *Config) { c.Live.InputDevice = -2 }, target: errOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.target) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.target)
			}
		})
	}

	cfg := Default()
	cfg.Engine.Window = "triangle"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown window")
	}
}
