package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/spectrum"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/internal/testutil"
	"github.com/cwbudde/algo-spectral/measure/band"
)

// measureLen holds an integer number of cycles of every test tone at 48 kHz.
const measureLen = 16320

func toneLevels(t *testing.T, x []float64, freqs ...float64) []float64 {
	t.Helper()

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		amp, err := spectrum.ToneAmplitude(x, f, 48000)
		if err != nil {
			t.Fatalf("ToneAmplitude(%v) error = %v", f, err)
		}

		out[i] = amp
	}

	return out
}

func TestBandGateFullBandIsIdentity(t *testing.T) {
	g, err := NewBandGate(stft.WithWindowSize(256), stft.WithHopSize(64))
	if err != nil {
		t.Fatalf("NewBandGate() error = %v", err)
	}

	g.SetBand(0, g.Config().SampleRate/2)

	in := testutil.DeterministicNoise(11, 1, 2048)
	out := append([]float64(nil), in...)
	g.ProcessInPlace(out)

	testutil.RequireDelayed(t, out, in, g.Latency(), 0, 1e-9)
}

func TestBandGateZeroesOutsideBand(t *testing.T) {
	g, err := NewBandGate()
	if err != nil {
		t.Fatalf("NewBandGate() error = %v", err)
	}

	g.SetBand(500, 2000)

	size := g.Config().WindowSize
	in := testutil.SineMix(48000, 0.3, 2*size+measureLen, 100, 1000, 4000)
	g.ProcessInPlace(in)

	tail := in[2*size:]
	levels := toneLevels(t, tail, 100, 1000, 4000)

	if levels[0] > 1e-4 || levels[2] > 1e-4 {
		t.Fatalf("out-of-band levels 100 Hz = %v, 4000 Hz = %v; want negligible", levels[0], levels[2])
	}

	if math.Abs(levels[1]-0.3) > 0.006 {
		t.Fatalf("in-band level 1000 Hz = %v, want 0.3", levels[1])
	}

	res, err := band.Analyze(tail, band.Config{SampleRate: 48000, LowerFreq: 500, UpperFreq: 2000})
	if err != nil {
		t.Fatalf("band.Analyze() error = %v", err)
	}

	if res.BandRatio < 0.99 {
		t.Fatalf("in-band share of power = %v, want > 0.99", res.BandRatio)
	}
}

func TestBandGateInvertedBandSilences(t *testing.T) {
	g, err := NewBandGate(stft.WithWindowSize(256), stft.WithHopSize(64))
	if err != nil {
		t.Fatalf("NewBandGate() error = %v", err)
	}

	g.SetBand(3000, 1000)

	in := testutil.DeterministicNoise(2, 1, 1024)
	g.ProcessInPlace(in)

	for i, v := range in {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func newTestDualGate(t *testing.T, opts ...stft.Option) *DualBandGate {
	t.Helper()

	g, err := NewDualBandGate(opts...)
	if err != nil {
		t.Fatalf("NewDualBandGate() error = %v", err)
	}

	return g
}

func TestDualBandGateSplitsPrimary(t *testing.T) {
	g := newTestDualGate(t, stft.WithWindowSize(256), stft.WithHopSize(64))
	g.SetBand(2000, 9000)

	in := testutil.DeterministicNoise(21, 1, 2048)
	sum := make([]float64, len(in))

	for i, x := range in {
		inner, outer, _ := g.Process(x, 0, 0)
		sum[i] = inner + outer
	}

	testutil.RequireDelayed(t, sum, in, g.Latency(), 0, 1e-9)
}

func TestDualBandGateSameSourceAndReplaceIsIdentity(t *testing.T) {
	g := newTestDualGate(t, stft.WithWindowSize(256), stft.WithHopSize(64))
	g.SetBand(1000, 5000)

	src := testutil.DeterministicNoise(8, 1, 2048)
	out := make([]float64, len(src))

	for i, x := range src {
		_, _, out[i] = g.Process(0, x, x)
	}

	testutil.RequireDelayed(t, out, src, g.Latency(), 0, 1e-9)
}

func TestDualBandGateReplacesBand(t *testing.T) {
	g := newTestDualGate(t)
	g.SetBand(500, 2000)

	size := g.Config().WindowSize
	n := 2*size + measureLen

	primary := testutil.SineMix(48000, 0.3, n, 100, 1000)
	source := testutil.SineMix(48000, 0.3, n, 100, 1000)
	replace := testutil.SineMix(48000, 0.3, n, 1500, 4000)

	inner := make([]float64, n)
	outer := make([]float64, n)
	out := make([]float64, n)

	for i := range n {
		inner[i], outer[i], out[i] = g.Process(primary[i], source[i], replace[i])
	}

	levels := toneLevels(t, out[2*size:], 100, 1000, 1500, 4000)
	if math.Abs(levels[0]-0.3) > 0.006 || math.Abs(levels[2]-0.3) > 0.006 {
		t.Fatalf("kept levels 100 Hz = %v, 1500 Hz = %v; want 0.3", levels[0], levels[2])
	}

	if levels[1] > 1e-3 || levels[3] > 1e-3 {
		t.Fatalf("removed levels 1000 Hz = %v, 4000 Hz = %v; want negligible", levels[1], levels[3])
	}

	in := toneLevels(t, inner[2*size:], 100, 1000)
	if in[0] > 1e-3 || math.Abs(in[1]-0.3) > 0.006 {
		t.Fatalf("inner levels 100 Hz = %v, 1000 Hz = %v", in[0], in[1])
	}

	ou := toneLevels(t, outer[2*size:], 100, 1000)
	if math.Abs(ou[0]-0.3) > 0.006 || ou[1] > 1e-3 {
		t.Fatalf("outer levels 100 Hz = %v, 1000 Hz = %v", ou[0], ou[1])
	}

	if err := g.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestDualBandGateFramesStayAligned(t *testing.T) {
	g := newTestDualGate(t, stft.WithWindowSize(64), stft.WithHopSize(16))

	for i := range 200 {
		src := 0.0
		if i%3 == 0 {
			src = 1
		}

		due := g.Write(0, src, 0)
		if want := (i+1)%16 == 0; due != want {
			t.Fatalf("sample %d: Write() = %v, want %v", i, due, want)
		}

		if due {
			g.Apply()
		}

		g.Read()
	}
}

// analyzeFrame writes noise until the next frame is analyzed.
func analyzeFrame(t *testing.T, write func(x float64) bool) {
	t.Helper()

	for _, x := range testutil.DeterministicNoise(17, 1, 1024) {
		if write(x) {
			return
		}
	}

	t.Fatal("no frame analyzed")
}

// wantBandBins checks that bins k in [from, to] are nonzero exactly when
// want is true and zero otherwise.
func wantBandBins(t *testing.T, b *stft.Bins, from, to int, want bool) {
	t.Helper()

	re, im := b.Re(), b.Im()
	for k := range b.Len() {
		inside := k >= from && k <= to
		nonzero := re[k] != 0 || im[k] != 0
		if inside == want && !nonzero || inside != want && nonzero {
			t.Fatalf("bin %d (inside %v) = %v%+vi", k, inside, re[k], im[k])
		}
	}
}

func TestBandGateFollowsSampleRate(t *testing.T) {
	g, err := NewBandGate(stft.WithWindowSize(64), stft.WithHopSize(16))
	if err != nil {
		t.Fatalf("NewBandGate() error = %v", err)
	}

	if err := g.SetSampleRate(24000); err != nil {
		t.Fatalf("SetSampleRate() error = %v", err)
	}

	// 375 Hz bins: 3000..6000 Hz covers bins 8..16 (4..8 at 48 kHz).
	g.SetBand(3000, 6000)

	analyzeFrame(t, g.Write)
	g.Apply()

	wantBandBins(t, g.s.Bins(), 8, 16, true)
}

func TestDualBandGateFollowsSampleRate(t *testing.T) {
	g := newTestDualGate(t, stft.WithWindowSize(64), stft.WithHopSize(16))

	if err := g.SetSampleRate(24000); err != nil {
		t.Fatalf("SetSampleRate() error = %v", err)
	}
	for _, s := range g.engines() {
		if sr := s.Config().SampleRate; sr != 24000 {
			t.Fatalf("engine sample rate = %v, want 24000", sr)
		}
	}

	g.SetBand(3000, 6000)

	analyzeFrame(t, func(x float64) bool { return g.Write(x, 0, 0) })
	g.Apply()

	wantBandBins(t, g.inner.Bins(), 8, 16, true)
	wantBandBins(t, g.outer.Bins(), 8, 16, false)

	if err := g.SetSampleRate(-1); !errors.Is(err, stft.ErrSampleRate) {
		t.Fatalf("SetSampleRate(-1) error = %v, want ErrSampleRate", err)
	}
}
