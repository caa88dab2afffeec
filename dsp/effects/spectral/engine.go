package spectral

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/stft"
)

func newEngine(base stft.Config, opts []stft.Option) (*stft.STFT, error) {
	cfg, err := stft.ApplyOptions(base, opts...)
	if err != nil {
		return nil, err
	}

	return stft.NewFromConfig(cfg)
}

func requireFormat(s *stft.STFT, want stft.Format, name string) error {
	if got := s.Config().Format; got != want {
		return fmt.Errorf("%s requires %s bins, got %s: %w", name, want, got, stft.ErrFormat)
	}

	return nil
}
