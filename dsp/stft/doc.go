// Package stft implements a streaming short-time Fourier transform for
// per-sample audio processing.
//
// Samples enter one at a time. Every hop samples a windowed analysis frame is
// transformed into Bins, which callers may edit before the next output sample
// is requested. Synthesis inverts the bins, overlap-adds the frame, and
// normalizes by the summed squared window weight at each output position so
// an unedited spectrum reconstructs the input exactly after a fixed latency of
// WindowSize-1 samples.
//
// Two bin formats are supported. FormatComplex stores real and imaginary
// parts. FormatMagFreq stores magnitude and instantaneous frequency in Hz,
// estimated by a phase vocoder from the phase advance between frames; at
// synthesis the frequencies are integrated back into phase. In both formats
// the DC and Nyquist bins are purely real.
//
// The per-sample path (Feed, Analyze, Push, Next) never allocates and never
// blocks. A value is not safe for concurrent use.
package stft
