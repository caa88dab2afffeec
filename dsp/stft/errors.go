package stft

import "errors"

var (
	// ErrWindowSize reports a window size that is not a power of two >= MinWindowSize.
	ErrWindowSize = errors.New("stft: invalid window size")
	// ErrHopSize reports a hop size that does not divide the window by a power of two.
	ErrHopSize = errors.New("stft: invalid hop size")
	// ErrSampleRate reports a non-positive or non-finite sample rate.
	ErrSampleRate = errors.New("stft: invalid sample rate")
	// ErrFormat reports an unknown bin format.
	ErrFormat = errors.New("stft: invalid bin format")
)
