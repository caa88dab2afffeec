// Package live runs a modular processor on a PortAudio duplex stream.
//
// The stream callback runs on a locked OS thread, converts samples to volts,
// calls the processor once per sample and converts back. All buffers are
// allocated before the stream starts.
package live

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-spectral/internal/config"
	"github.com/cwbudde/algo-spectral/modular"
)

var errRunning = errors.New("stream already running")

// Trigger is implemented by processors with a manual trigger, such as
// modular.FreezeModule.
type Trigger interface {
	Trigger()
}

// Host drives a processor from audio input to audio output.
type Host struct {
	cfg   config.LiveConfig
	proc  modular.Processor
	volts float64

	stream *portaudio.Stream

	trigger   atomic.Bool
	processed atomic.Uint64
	clipped   atomic.Uint64
}

// Stats are counters updated by the audio callback.
type Stats struct {
	Frames  uint64
	Clipped uint64
}

// NewHost creates a host for proc. volts is the voltage of a full-scale
// sample.
func NewHost(cfg config.LiveConfig, volts float64, proc modular.Processor) *Host {
	return &Host{cfg: cfg, proc: proc, volts: volts}
}

// Start opens a mono duplex stream on the configured devices and starts it.
// PortAudio must be initialized.
func (h *Host) Start() error {
	if h.stream != nil {
		return errRunning
	}

	in, err := inputDevice(h.cfg.InputDevice)
	if err != nil {
		return err
	}
	out, err := outputDevice(h.cfg.OutputDevice)
	if err != nil {
		return err
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   in,
			Channels: 1,
			Latency:  in.DefaultHighInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   out,
			Channels: 1,
			Latency:  out.DefaultHighOutputLatency,
		},
		SampleRate:      h.cfg.SampleRate,
		FramesPerBuffer: h.cfg.FramesPerBuffer,
	}
	if h.cfg.LowLatency {
		params.Input.Latency = in.DefaultLowInputLatency
		params.Output.Latency = out.DefaultLowOutputLatency
	}

	stream, err := portaudio.OpenStream(params, h.callback)
	if err != nil {
		return err
	}

	// The device may run at a different rate than requested.
	if info := stream.Info(); info != nil && info.SampleRate > 0 {
		if err := h.proc.SetSampleRate(info.SampleRate); err != nil {
			stream.Close()
			return err
		}
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return err
	}

	h.stream = stream
	return nil
}

// Stop stops and closes the stream.
func (h *Host) Stop() error {
	if h.stream == nil {
		return nil
	}

	if err := h.stream.Stop(); err != nil {
		return err
	}
	if err := h.stream.Close(); err != nil {
		return err
	}

	h.stream = nil
	return nil
}

// Trigger requests a manual trigger at the start of the next buffer. It is
// ignored when the processor has no trigger.
func (h *Host) Trigger() { h.trigger.Store(true) }

// Stats returns the callback counters.
func (h *Host) Stats() Stats {
	return Stats{Frames: h.processed.Load(), Clipped: h.clipped.Load()}
}

func (h *Host) callback(in, out []float32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	h.Process(in, out)
}

// Process runs one buffer through the processor. Output samples are clipped
// to [-1, 1].
func (h *Host) Process(in, out []float32) {
	if h.trigger.Swap(false) {
		if t, ok := h.proc.(Trigger); ok {
			t.Trigger()
		}
	}

	n := min(len(in), len(out))

	var clipped uint64
	for i := range n {
		y := h.proc.ProcessSample(float64(in[i])*h.volts) / h.volts

		switch {
		case math.IsNaN(y):
			y = 0
			clipped++
		case y > 1:
			y = 1
			clipped++
		case y < -1:
			y = -1
			clipped++
		}

		out[i] = float32(y)
	}

	for i := n; i < len(out); i++ {
		out[i] = 0
	}

	h.processed.Add(uint64(n))
	if clipped > 0 {
		h.clipped.Add(clipped)
	}
}
