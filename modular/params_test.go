package modular

import (
	"math"
	"testing"
)

// relEps covers the fastmath build of Exp2.
const relEps = 1e-3

func nearRel(got, want float64) bool {
	return math.Abs(got-want) <= relEps*math.Abs(want)
}

func TestCutoff(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		atten  float64
		cv     Input
		want   float64
	}{
		{name: "C4", offset: 0, atten: 1, want: FreqC4},
		{name: "octave up", offset: 12, atten: 1, want: 2 * FreqC4},
		{name: "cv ignored when unconnected", offset: 0, atten: 1, cv: Input{Voltage: 5}, want: FreqC4},
		{name: "cv one octave", offset: 0, atten: 1, cv: Connect(5), want: 2 * FreqC4},
		{name: "cv attenuated", offset: 0, atten: 0.5, cv: Connect(5), want: math.Sqrt2 * FreqC4},
		{name: "atten clamped", offset: 0, atten: 3, cv: Connect(5), want: 4 * FreqC4},
		{name: "offset clamped high", offset: 100, atten: 1, want: FreqC4 * math.Exp2(6.5)},
		{name: "offset clamped low", offset: -100, atten: 1, want: FreqC4 * math.Exp2(-3.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cutoff(tt.offset, tt.atten, tt.cv); !nearRel(got, tt.want) {
				t.Fatalf("Cutoff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPitchRatio(t *testing.T) {
	tests := []struct {
		shift float64
		cv    Input
		want  float64
	}{
		{shift: 0, want: 1},
		{shift: 1, want: 2},
		{shift: -2, want: 0.25},
		{shift: 5, want: 8},
		{shift: 0, cv: Connect(-1), want: 0.5},
		{shift: 1, cv: Connect(1), want: 4},
	}

	for _, tt := range tests {
		if got := PitchRatio(tt.shift, tt.cv); !nearRel(got, tt.want) {
			t.Fatalf("PitchRatio(%v, %+v) = %v, want %v", tt.shift, tt.cv, got, tt.want)
		}
	}
}

func TestHopSize(t *testing.T) {
	tests := []struct {
		v      float64
		window int
		want   int
	}{
		{v: 0, window: 2048, want: 16},
		{v: 4.4, window: 2048, want: 256},
		{v: 4.5, window: 2048, want: 512},
		{v: 5, window: 2048, want: 512},
		{v: 6, window: 2048, want: 1024},
		{v: 7, window: 2048, want: 1024},
		{v: 7, window: 1024, want: 512},
		{v: 3, window: 128, want: 64},
		{v: -1, window: 2048, want: 16},
		{v: 12, window: 4096, want: 2048},
	}

	for _, tt := range tests {
		if got := HopSize(tt.v, tt.window); got != tt.want {
			t.Fatalf("HopSize(%v, %d) = %d, want %d", tt.v, tt.window, got, tt.want)
		}
	}
}

func TestTapers(t *testing.T) {
	const sr = 48000.0

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "rate linear", got: RateTaper(0.25, sr, false), want: 12000},
		{name: "rate taper", got: RateTaper(0.75, sr, true), want: 24000},
		{name: "rate clamped", got: RateTaper(1.5, sr, false), want: sr},
		{name: "rate negative", got: RateTaper(-0.5, sr, true), want: 0},
		{name: "step linear", got: StepTaper(0.75, false), want: 0.25},
		{name: "step taper", got: StepTaper(0.25, true), want: 0.5},
		{name: "step full resolution", got: StepTaper(1, true), want: 0},
		{name: "step clamped", got: StepTaper(-1, false), want: 1},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Fatalf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestQuadraticBipolar(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{0.5, 0.25}, {-0.5, -0.25}, {1, 1}, {-1, -1}, {0, 0}} {
		if got := QuadraticBipolar(tt.in); got != tt.want {
			t.Fatalf("QuadraticBipolar(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVoltageScaling(t *testing.T) {
	if got := toInternal(5, freezeVolts, freezeInternal); math.Abs(got-0.8) > 1e-12 {
		t.Fatalf("toInternal(5 V) = %v, want 0.8", got)
	}
	if got := toVolts(-1, bitInternal, bitVolts); math.Abs(got+10) > 1e-12 {
		t.Fatalf("toVolts(-1) = %v, want -10 V", got)
	}
	if got := toVolts(toInternal(2.5, spectralVolts, spectralInternal), spectralInternal, spectralVolts); math.Abs(got-2.5) > 1e-12 {
		t.Fatalf("round trip = %v, want 2.5", got)
	}
}
