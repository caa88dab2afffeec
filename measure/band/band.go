package band

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
	"github.com/mjibson/go-dsp/fft"
	dspspectral "github.com/mjibson/go-dsp/spectral"
	dspwindow "github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultSegmentSize = 4096
	minSegmentSize     = 16
	energyFloor        = 1e-30
)

var errShortSignal = errors.New("band: signal too short")

// Config holds band measurement parameters.
type Config struct {
	SampleRate  float64
	SegmentSize int
	LowerFreq   float64
	UpperFreq   float64
}

// Result holds the measurement of one signal.
type Result struct {
	RMS         float64
	Peak        float64
	Mean        float64
	StdDev      float64
	PeakFreq    float64
	BandEnergy  float64
	TotalEnergy float64
	BandRatio   float64
	BandRatioDB float64
}

func normalizeConfig(cfg Config) (Config, error) {
	if !core.IsFinitePositive(cfg.SampleRate) {
		return cfg, fmt.Errorf("band: sample rate must be > 0: %f", cfg.SampleRate)
	}

	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = defaultSegmentSize
	}

	if cfg.UpperFreq <= 0 || cfg.UpperFreq > cfg.SampleRate/2 {
		cfg.UpperFreq = cfg.SampleRate / 2
	}

	if cfg.LowerFreq < 0 {
		cfg.LowerFreq = 0
	}

	return cfg, nil
}

// Analyze measures level statistics, the dominant frequency, and the share
// of power between cfg.LowerFreq and cfg.UpperFreq.
func Analyze(signal []float64, cfg Config) (Result, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return Result{}, err
	}

	if len(signal) < minSegmentSize {
		return Result{}, fmt.Errorf("%w: %d samples", errShortSignal, len(signal))
	}

	pxx, freqs, err := PSD(signal, cfg.SampleRate, cfg.SegmentSize)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		RMS:         floats.Norm(signal, 2) / math.Sqrt(float64(len(signal))),
		Peak:        math.Max(math.Abs(floats.Max(signal)), math.Abs(floats.Min(signal))),
		Mean:        stat.Mean(signal, nil),
		StdDev:      stat.StdDev(signal, nil),
		PeakFreq:    PeakFrequency(signal, cfg.SampleRate),
		BandEnergy:  sumBand(pxx, freqs, cfg.LowerFreq, cfg.UpperFreq),
		TotalEnergy: floats.Sum(pxx),
	}

	if res.TotalEnergy > energyFloor {
		res.BandRatio = res.BandEnergy / res.TotalEnergy
	}

	res.BandRatioDB = -300
	if res.BandRatio > 0 {
		res.BandRatioDB = 10 * math.Log10(res.BandRatio)
	}

	return res, nil
}

// PSD returns the one-sided Welch power spectral density of signal using
// Hann-windowed segments of segmentSize samples with 50% overlap. Signals
// shorter than one segment are measured with the largest power-of-two
// segment that fits.
func PSD(signal []float64, sampleRate float64, segmentSize int) (pxx, freqs []float64, err error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, nil, fmt.Errorf("band: sample rate must be > 0: %f", sampleRate)
	}

	n := segmentSize
	for n > len(signal) {
		n /= 2
	}

	if n < minSegmentSize {
		return nil, nil, fmt.Errorf("%w: %d samples", errShortSignal, len(signal))
	}

	pxx, freqs = dspspectral.Pwelch(signal, sampleRate, &dspspectral.PwelchOptions{
		NFFT:     n,
		Noverlap: n / 2,
		Window:   dspwindow.Hann,
	})

	return pxx, freqs, nil
}

// Energy returns the summed PSD of signal between lo and hi Hz.
func Energy(signal []float64, sampleRate, lo, hi float64) (float64, error) {
	pxx, freqs, err := PSD(signal, sampleRate, defaultSegmentSize)
	if err != nil {
		return 0, err
	}

	return sumBand(pxx, freqs, lo, hi), nil
}

// PeakFrequency returns the center frequency of the strongest non-DC bin of
// a Hann-windowed FFT over the whole signal.
func PeakFrequency(signal []float64, sampleRate float64) float64 {
	if len(signal) < 2 {
		return 0
	}

	win := dspwindow.Hann(len(signal))
	buf := make([]float64, len(signal))
	floats.MulTo(buf, signal, win)

	bins := fft.FFTReal(buf)
	half := len(bins) / 2

	mag := make([]float64, half)
	for k := range mag {
		mag[k] = cmplx.Abs(bins[k+1])
	}

	return float64(floats.MaxIdx(mag)+1) * sampleRate / float64(len(signal))
}

// Harmonics returns the peak amplitude of each of count harmonics of f0
// (index 0 is the fundamental). Harmonics above Nyquist read 0.
func Harmonics(signal []float64, sampleRate, f0 float64, count int) ([]float64, error) {
	out := make([]float64, count)

	for h := range out {
		f := f0 * float64(h+1)
		if f > sampleRate/2 {
			break
		}

		amp, err := spectrum.ToneAmplitude(signal, f, sampleRate)
		if err != nil {
			return nil, err
		}

		out[h] = amp
	}

	return out, nil
}

func sumBand(pxx, freqs []float64, lo, hi float64) float64 {
	sum := 0.0
	for i, f := range freqs {
		if f >= lo && f <= hi {
			sum += pxx[i]
		}
	}

	return sum
}
