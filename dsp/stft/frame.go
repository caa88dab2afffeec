package stft

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// minOverlapRatio is the smallest accepted ratio of the weakest to the
// strongest overlap gain. Normalization then amplifies a frame edge by at
// most 1/minOverlapRatio relative to the frame center.
const minOverlapRatio = 0.1

// FrameBuffer turns a sample stream into windowed analysis frames and
// reassembles synthesized frames into a sample stream by overlap-add.
type FrameBuffer struct {
	size int
	hop  int

	coeffs  []float64
	invGain []float64
	sum     float64

	counter HopCounter

	history []float64
	head    int
	frame   []float64

	acc     []float64
	scratch []float64
	read    int
}

// NewFrameBuffer creates a frame buffer for the given window size, hop and
// window type. The window is generated in periodic form. Pairs whose summed
// squared window dips below minOverlapRatio of its peak, such as Hann with
// hop equal to the window size, fail with ErrHopSize.
func NewFrameBuffer(size, hop int, t window.Type) (*FrameBuffer, error) {
	cfg := Config{WindowSize: size, HopSize: hop, Window: t, Format: FormatComplex, SampleRate: defaultSampleRate}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	coeffs := window.Generate(t, size, window.WithPeriodic())

	gain, err := window.OverlapGain(coeffs, hop)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	if lo, hi := slices.Min(gain), slices.Max(gain); lo < minOverlapRatio*hi {
		return nil, fmt.Errorf("%w: %s window does not overlap-add at %d/%d (gain %g..%g)",
			ErrHopSize, t, size, hop, lo, hi)
	}

	invGain := make([]float64, hop)
	for j, g := range gain {
		invGain[j] = 1 / g
	}

	sum := 0.0
	for _, w := range coeffs {
		sum += w
	}

	return &FrameBuffer{
		size:    size,
		hop:     hop,
		coeffs:  coeffs,
		invGain: invGain,
		sum:     sum,
		counter: NewHopCounter(hop),
		history: make([]float64, size),
		frame:   make([]float64, size),
		acc:     make([]float64, size),
		scratch: make([]float64, size),
		read:    hop,
	}, nil
}

// Write appends one input sample and reports whether a frame is due.
func (b *FrameBuffer) Write(x float64) bool {
	b.history[b.head] = x

	b.head++
	if b.head == b.size {
		b.head = 0
	}

	return b.counter.Tick()
}

// Frame returns the trailing WindowSize samples multiplied by the window,
// oldest first. The slice is reused by the next call.
func (b *FrameBuffer) Frame() []float64 {
	n := copy(b.frame, b.history[b.head:])
	copy(b.frame[n:], b.history[:b.head])
	vecmath.MulBlockInPlace(b.frame, b.coeffs)

	return b.frame
}

// Push writes x and, on a hop boundary, returns the completed analysis frame.
func (b *FrameBuffer) Push(x float64) ([]float64, bool) {
	if !b.Write(x) {
		return nil, false
	}

	return b.Frame(), true
}

// OverlapAdd advances the accumulator by one hop and adds frame multiplied
// by the synthesis window. The next hop Pop calls drain the completed
// samples.
func (b *FrameBuffer) OverlapAdd(frame []float64) {
	core.ShiftLeft(b.acc, b.hop)
	vecmath.MulBlock(b.scratch, frame[:b.size], b.coeffs)
	vecmath.AddBlockInPlace(b.acc, b.scratch)
	b.read = 0
}

// Pop returns the next output sample normalized by the summed squared
// window weight at its position. It returns 0 until the first OverlapAdd
// and after hop samples have been drained without a new frame.
func (b *FrameBuffer) Pop() float64 {
	if b.read >= b.hop {
		return 0
	}

	v := b.acc[b.read] * b.invGain[b.read]
	b.read++

	return v
}

// Reset clears all buffered audio and restarts the hop schedule.
func (b *FrameBuffer) Reset() {
	core.Zero(b.history)
	core.Zero(b.acc)
	b.head = 0
	b.read = b.hop
	b.counter.Reset()
}

// WindowSize returns the frame length.
func (b *FrameBuffer) WindowSize() int { return b.size }

// HopSize returns the frame advance.
func (b *FrameBuffer) HopSize() int { return b.hop }

// Latency returns the input-to-output delay in samples.
func (b *FrameBuffer) Latency() int { return b.size - 1 }

// Window returns the window coefficients. Callers must not modify them.
func (b *FrameBuffer) Window() []float64 { return b.coeffs }

// WindowSum returns the sum of the window coefficients.
func (b *FrameBuffer) WindowSum() float64 { return b.sum }
