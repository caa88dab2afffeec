package modular

// Processor is a module driven by a single audio input with every control
// input unconnected. Values are volts.
//
// SetSampleRate may be called between blocks whenever the host rate
// changes; it never reallocates.
type Processor interface {
	ProcessSample(v float64) float64
	SetSampleRate(sr float64) error
	Latency() int
	Reset()
}

var (
	_ Processor = (*FreezeModule)(nil)
	_ Processor = (*PitchModule)(nil)
	_ Processor = (*RiftModule)(nil)
	_ Processor = (*RiftGateModule)(nil)
	_ Processor = (*BitModule)(nil)
	_ Processor = (*ChebyModule)(nil)
)
