package stft

// Bins holds one frame of spectral content for bins 0..N/2.
//
// In FormatComplex the two planes are real and imaginary parts. In
// FormatMagFreq they are magnitude and frequency in Hz; the DC and Nyquist
// magnitudes are signed and their frequencies are fixed at 0 and
// sampleRate/2. Magnitudes are normalized so that a sinusoid centered on a
// bin reads its peak amplitude.
type Bins struct {
	format Format
	a      []float64
	b      []float64
}

// NewBins allocates n zeroed bins in format f.
func NewBins(n int, f Format) *Bins {
	return &Bins{format: f, a: make([]float64, n), b: make([]float64, n)}
}

// Len returns the number of bins.
func (s *Bins) Len() int { return len(s.a) }

// Format returns the bin format.
func (s *Bins) Format() Format { return s.format }

// Re returns the real parts (FormatComplex).
func (s *Bins) Re() []float64 { return s.a }

// Im returns the imaginary parts (FormatComplex).
func (s *Bins) Im() []float64 { return s.b }

// Mag returns the magnitudes (FormatMagFreq).
func (s *Bins) Mag() []float64 { return s.a }

// Freq returns the frequencies in Hz (FormatMagFreq).
func (s *Bins) Freq() []float64 { return s.b }

// Zero clears bin k in both planes. In FormatMagFreq only the magnitude is
// cleared so the frequency track survives.
func (s *Bins) Zero(k int) {
	s.a[k] = 0
	if s.format == FormatComplex {
		s.b[k] = 0
	}
}

// Set copies bin k from src. Formats must match.
func (s *Bins) Set(k int, src *Bins) {
	s.a[k] = src.a[k]
	s.b[k] = src.b[k]
}

// CopyFrom copies every bin from src. Lengths and formats must match.
func (s *Bins) CopyFrom(src *Bins) {
	copy(s.a, src.a)
	copy(s.b, src.b)
}

// Clear zeroes every bin.
func (s *Bins) Clear() {
	for k := range s.a {
		s.Zero(k)
	}
}
