package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

func TestChebyshevSingleHarmonic(t *testing.T) {
	const (
		sampleRate = 48000.0
		f0         = 375.0 // 128 samples per period
		length     = 4096  // 32 periods
	)

	for _, harmonic := range []int{1, 2, 3, 5, 12} {
		c := NewChebyshev()
		weights := make([]float64, ChebyshevHarmonics)
		weights[harmonic-1] = 1
		if err := c.SetWeights(weights); err != nil {
			t.Fatalf("SetWeights() error = %v", err)
		}

		osc, err := NewSine(sampleRate, f0)
		if err != nil {
			t.Fatalf("NewSine() error = %v", err)
		}

		out := make([]float64, length)
		for i := range out {
			out[i] = c.Shape(osc.Next())
		}

		amp, err := spectrum.ToneAmplitude(out, f0*float64(harmonic), sampleRate)
		if err != nil {
			t.Fatalf("ToneAmplitude() error = %v", err)
		}
		if math.Abs(amp-1) > 1e-3 {
			t.Fatalf("harmonic %d amplitude = %g, want 1", harmonic, amp)
		}

		if harmonic > 1 {
			fund, err := spectrum.ToneAmplitude(out, f0, sampleRate)
			if err != nil {
				t.Fatalf("ToneAmplitude() error = %v", err)
			}
			if fund > 1e-3 {
				t.Fatalf("harmonic %d leaks fundamental: %g", harmonic, fund)
			}
		}
	}
}

func TestChebyshevNormalization(t *testing.T) {
	c := NewChebyshev()
	if got := c.Volume(); got != ChebyshevHarmonics {
		t.Fatalf("Volume() = %g, want %d", got, ChebyshevHarmonics)
	}

	// Every T_n(1) = 1, so the normalized output at x=1 is 1.
	if got := c.Shape(1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Shape(1) = %g, want 1", got)
	}
	// Input is clamped.
	if got := c.Shape(3); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Shape(3) = %g, want 1", got)
	}
}

func TestChebyshevSilentWhenWeightsZero(t *testing.T) {
	c := NewChebyshev()
	if err := c.SetWeights(make([]float64, ChebyshevHarmonics)); err != nil {
		t.Fatalf("SetWeights() error = %v", err)
	}

	for _, x := range []float64{-1, -0.3, 0, 0.7, 1} {
		if got := c.Shape(x); got != 0 {
			t.Fatalf("Shape(%g) = %g, want 0", x, got)
		}
	}
}

func TestChebyshevRotation(t *testing.T) {
	tests := []struct {
		rotation int
		want     int
	}{
		{rotation: 0, want: 0},
		{rotation: 1, want: 1},
		{rotation: 11, want: 11},
		{rotation: 12, want: 0},
		{rotation: -1, want: 11},
		{rotation: -25, want: 11},
	}

	for _, tt := range tests {
		c := NewChebyshev()
		weights := make([]float64, ChebyshevHarmonics)
		weights[0] = 1
		if err := c.SetWeights(weights); err != nil {
			t.Fatalf("SetWeights() error = %v", err)
		}
		c.SetRotation(tt.rotation)

		for k := range ChebyshevHarmonics {
			want := 0.0
			if k == tt.want {
				want = 1
			}
			if got := c.Coefficient(k); got != want {
				t.Fatalf("rotation %d: coefficient %d = %g, want %g", tt.rotation, k, got, want)
			}
		}
	}
}

func TestChebyshevValidation(t *testing.T) {
	c := NewChebyshev()
	if err := c.SetWeight(12, 1); err == nil {
		t.Fatal("expected error for out-of-range harmonic")
	}
	if err := c.SetWeight(0, math.NaN()); err == nil {
		t.Fatal("expected error for NaN weight")
	}
	if err := c.SetWeights([]float64{1, 2}); err == nil {
		t.Fatal("expected error for short weight slice")
	}
	if err := c.SetWeight(3, 0.5); err != nil {
		t.Fatalf("SetWeight() error = %v", err)
	}
	if got := c.Weights()[3]; got != 0.5 {
		t.Fatalf("Weights()[3] = %g, want 0.5", got)
	}
}

func TestSineFrequency(t *testing.T) {
	osc, err := NewSine(48000, 1000)
	if err != nil {
		t.Fatalf("NewSine() error = %v", err)
	}

	out := make([]float64, 4800)
	for i := range out {
		out[i] = osc.Next()
	}

	if out[0] != 0 {
		t.Fatalf("first sample = %g, want 0", out[0])
	}
	amp, err := spectrum.ToneAmplitude(out, 1000, 48000)
	if err != nil {
		t.Fatalf("ToneAmplitude() error = %v", err)
	}
	if math.Abs(amp-1) > 1e-6 {
		t.Fatalf("amplitude = %g, want 1", amp)
	}

	osc.Reset()
	if got := osc.Next(); got != 0 {
		t.Fatalf("after reset = %g, want 0", got)
	}

	if _, err := NewSine(0, 100); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if err := osc.SetFrequency(math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite frequency")
	}
}
