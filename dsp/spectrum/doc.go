// Package spectrum provides spectrum-domain helpers shared by the STFT engine
// and its effects.
//
// Nothing here performs an FFT. Bins arrive as split real/imaginary or
// magnitude slices produced elsewhere; the helpers extract magnitude, power
// and phase, measure positive spectral flux for onset detection, and evaluate
// single tones in the time domain for measurement.
package spectrum
