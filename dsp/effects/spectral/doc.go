// Package spectral provides streaming STFT effects: spectral freeze, pitch
// shifting by bin remapping, and single- and dual-band brickwall gates.
//
// Every effect follows the same per-sample protocol:
//
//	if fx.Write(x) {
//		// a frame was analyzed; update controls here
//		fx.Apply()
//	}
//	y := fx.Read()
//
// Controls such as the pitch ratio or band edges are read by Apply, so a
// host resolves them once per frame rather than once per sample.
// ProcessSample bundles the three calls for hosts with fixed controls.
//
// Effects are single-threaded, allocate only at construction, and delay
// their input by Latency samples.
package spectral
