package main

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/internal/config"
	"github.com/cwbudde/algo-spectral/modular"
)

// buildProcessor creates the configured module for the given sample rate.
func buildProcessor(cfg *config.Config, sampleRate float64) (modular.Processor, error) {
	opts, err := cfg.Engine.Options(sampleRate)
	if err != nil {
		return nil, err
	}

	fx := cfg.Effect

	switch fx.Type {
	case config.EffectFreeze:
		m, err := modular.NewFreezeModule(opts...)
		if err != nil {
			return nil, err
		}
		if err := m.SetHop(fx.Freeze.Hop); err != nil {
			return nil, err
		}
		return m, nil

	case config.EffectPitch:
		m, err := modular.NewPitchModule(opts...)
		if err != nil {
			return nil, err
		}
		m.Shift = fx.Pitch.Shift
		return m, nil

	case config.EffectRift:
		m, err := modular.NewRiftModule(opts...)
		if err != nil {
			return nil, err
		}
		m.Band = modular.Band(fx.Rift)
		return m, nil

	case config.EffectRiftGate:
		m, err := modular.NewRiftGateModule(opts...)
		if err != nil {
			return nil, err
		}
		m.Band = modular.Band(fx.RiftGate)
		return m, nil

	case config.EffectBit:
		m, err := modular.NewBitModule(sampleRate)
		if err != nil {
			return nil, err
		}
		m.Rate, m.RateTaper = fx.Bit.Rate, fx.Bit.RateTaper
		m.Step, m.StepTaper = fx.Bit.Step, fx.Bit.StepTaper
		return m, nil

	case config.EffectCheby:
		m, err := modular.NewChebyModule(sampleRate)
		if err != nil {
			return nil, err
		}
		for k := range m.Harmonics {
			m.Harmonics[k] = 0
			if k < len(fx.Cheby.Harmonics) {
				m.Harmonics[k] = fx.Cheby.Harmonics[k]
			}
		}
		m.Freq, m.Fine, m.Octave = fx.Cheby.Freq, fx.Cheby.Fine, fx.Cheby.Octave
		m.Rotation, m.Detune, m.Voice = fx.Cheby.Rotation, fx.Cheby.Detune, fx.Cheby.Voice
		return m, nil
	}

	return nil, fmt.Errorf("unknown effect %q", fx.Type)
}
