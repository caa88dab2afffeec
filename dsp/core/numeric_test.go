package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(7, 0, 5); got != 5 {
		t.Fatalf("ClampInt(7, 0, 5) = %d, want 5", got)
	}
	if got := ClampInt(-2, 5, 0); got != 0 {
		t.Fatalf("ClampInt(-2, 5, 0) = %d, want 0", got)
	}
}

func TestRescale(t *testing.T) {
	tests := []struct {
		name                      string
		x, xMin, xMax, yMin, yMax float64
		want                      float64
	}{
		{name: "volts to unit", x: 5, xMin: -5, xMax: 5, yMin: -0.8, yMax: 0.8, want: 0.8},
		{name: "center", x: 0, xMin: -5, xMax: 5, yMin: -0.8, yMax: 0.8, want: 0},
		{name: "unclamped", x: 10, xMin: -5, xMax: 5, yMin: -1, yMax: 1, want: 2},
		{name: "degenerate", x: 3, xMin: 1, xMax: 1, yMin: 4, yMax: 8, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(tt.x, tt.xMin, tt.xMax, tt.yMin, tt.yMax)
			if !NearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("Rescale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestWrapPhase(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 3 * math.Pi, -3 * math.Pi, 100.5, -77.25} {
		got := WrapPhase(x)
		if got < -math.Pi || got >= math.Pi {
			t.Fatalf("WrapPhase(%v) = %v outside [-pi, pi)", x, got)
		}

		if d := math.Remainder(got-x, 2*math.Pi); math.Abs(d) > 1e-9 {
			t.Fatalf("WrapPhase(%v) = %v not congruent mod 2pi", x, got)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 16, 4096} {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{0, -4, 3, 12, 1000} {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n)
		}
	}
}

func TestIsFinitePositive(t *testing.T) {
	if !IsFinitePositive(48000) {
		t.Fatal("48000 should be finite positive")
	}
	for _, x := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if IsFinitePositive(x) {
			t.Fatalf("IsFinitePositive(%v) = true", x)
		}
	}
}

func TestExp2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0, want: 1},
		{in: 1, want: 2},
		{in: -3, want: 0.125},
		{in: 0.5, want: math.Sqrt2},
	}

	for _, tt := range tests {
		if got := Exp2(tt.in); math.Abs(got-tt.want) > 1e-3*tt.want {
			t.Fatalf("Exp2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
