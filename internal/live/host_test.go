package live

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/config"
	"github.com/cwbudde/algo-spectral/modular"
)

type gain struct {
	g        float64
	triggers int
}

func (p *gain) ProcessSample(v float64) float64 { return v * p.g }
func (p *gain) SetSampleRate(float64) error     { return nil }
func (p *gain) Latency() int                    { return 0 }
func (p *gain) Reset()                          {}
func (p *gain) Trigger()                        { p.triggers++ }

func TestHostProcessScalesAndClips(t *testing.T) {
	p := &gain{g: 2}
	h := NewHost(config.Default().Live, 5, p)

	in := []float32{0.1, -0.25, 0.75, -0.6}
	out := make([]float32, 6)
	for i := range out {
		out[i] = 9
	}

	h.Process(in, out)

	want := []float32{0.2, -0.5, 1, -1, 0, 0}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}

	st := h.Stats()
	if st.Frames != 4 || st.Clipped != 2 {
		t.Fatalf("Stats() = %+v, want 4 frames, 2 clipped", st)
	}
}

func TestHostTrigger(t *testing.T) {
	p := &gain{g: 1}
	h := NewHost(config.Default().Live, 5, p)

	buf := make([]float32, 8)
	h.Process(buf, buf)
	if p.triggers != 0 {
		t.Fatalf("triggers = %d before Trigger()", p.triggers)
	}

	h.Trigger()
	h.Process(buf, buf)
	h.Process(buf, buf)
	if p.triggers != 1 {
		t.Fatalf("triggers = %d, want 1", p.triggers)
	}
}

func TestHostRunsFreezeModule(t *testing.T) {
	m, err := modular.NewFreezeModule()
	if err != nil {
		t.Fatalf("NewFreezeModule() error = %v", err)
	}

	h := NewHost(config.Default().Live, 5, m)

	in := make([]float32, 512)
	out := make([]float32, 512)
	for i := range in {
		in[i] = float32(0.5 * math.Sin(2*math.Pi*float64(i)/64))
	}

	for range 8 {
		h.Process(in, out)
	}
	if m.Capturing() {
		t.Fatal("capture should have completed")
	}

	h.Trigger()
	h.Process(in, out)
	if !m.Capturing() {
		t.Fatal("host trigger should restart capture")
	}
}

func TestDeviceKind(t *testing.T) {
	tests := []struct {
		d    Device
		want string
	}{
		{d: Device{MaxInputChannels: 2, MaxOutputChannels: 2}, want: "Input/Output"},
		{d: Device{MaxInputChannels: 1}, want: "Input"},
		{d: Device{MaxOutputChannels: 8}, want: "Output"},
		{d: Device{}, want: ""},
	}

	for _, tt := range tests {
		if got := tt.d.Kind(); got != tt.want {
			t.Fatalf("Kind() = %q, want %q", got, tt.want)
		}
	}
}
