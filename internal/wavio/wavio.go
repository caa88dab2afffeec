// Package wavio reads and writes mono PCM WAV files as float64 samples in
// [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Supported bit depths for writing.
const (
	BitDepth16 = 16
	BitDepth24 = 24
)

const wavFormatPCM = 1

var (
	errInvalidFile = errors.New("invalid WAV file")
	errBitDepth    = errors.New("unsupported bit depth")
)

// Clip is the audio loaded from a WAV file.
type Clip struct {
	Samples    []float64
	SampleRate int
	Channels   int // channel count of the source file before mixdown
	BitDepth   int
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// ReadFile decodes a WAV file, averaging all channels to mono.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// Decode reads PCM WAV data from r, averaging all channels to mono.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		return nil, fmt.Errorf("%w: 0", errBitDepth)
	}

	channels := max(buf.Format.NumChannels, 1)
	frames := len(buf.Data) / channels
	scale := math.Exp2(float64(bitDepth - 1))

	out := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch])
		}
		out[i] = sum / float64(channels) / scale
	}

	return &Clip{
		Samples:    out,
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// WriteFile encodes samples as a mono PCM WAV file. Samples outside
// [-1, 1] are clipped.
func WriteFile(path string, samples []float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, samples, sampleRate, bitDepth)
}

// Encode writes samples as mono PCM WAV data to w.
func Encode(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if bitDepth != BitDepth16 && bitDepth != BitDepth24 {
		return fmt.Errorf("%w: %d", errBitDepth, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, wavFormatPCM)

	full := math.Exp2(float64(bitDepth-1)) - 1
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}

	for i, s := range samples {
		buf.Data[i] = int(math.Round(clip(s) * full))
	}

	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func clip(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
