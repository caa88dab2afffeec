// Package modular adapts the spectral effects and time-domain kernels to a
// modular-synthesizer voltage boundary.
//
// Every module processes one sample per call. Audio ports carry volts and
// are rescaled to a fixed internal range before processing:
//
//   - FreezeModule: ±5 V ↔ ±0.8
//   - PitchModule, RiftModule, RiftGateModule: ±5 V ↔ ±1
//   - BitModule: ±10 V ↔ ±1
//   - ChebyModule: output ±1 → ±5 V
//
// Control inputs are [Input] values. An unconnected input falls back to its
// knob through pure resolution functions such as [Attenuated] and [Cutoff].
// The spectral modules resolve their controls once per analysis frame,
// between the effect's Write and Apply steps.
//
// Modules are not safe for concurrent use. Changing the Freeze hop size
// rebuilds its engine and must happen between blocks.
package modular
