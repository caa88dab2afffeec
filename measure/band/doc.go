// Package band measures where a signal's energy sits in frequency.
//
// It is deliberately independent of the STFT engine under test: power
// spectra come from Welch's method in go-dsp, peak picking uses the go-dsp
// FFT, and summary statistics use gonum. Tone levels reuse the Goertzel
// meter from dsp/spectrum, which shares no code with the transform.
package band
