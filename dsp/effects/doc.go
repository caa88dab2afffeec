// Package effects provides small time-domain kernels used by the modular
// voices next to the STFT effects.
//
// Subpackages:
//   - github.com/cwbudde/algo-spectral/dsp/effects/spectral
//
// Kernels in this package:
//   - Quantizer: Sample-and-hold rate reduction with amplitude step quantization.
//   - Chebyshev: Weighted sum of the first 12 Chebyshev polynomials with rotation.
//   - Sine: Phase-accumulator sine oscillator driving the Chebyshev shaper.
//
// Kernels are allocation-free per sample and support both single-sample and
// in-place buffer processing where it applies.
package effects
