package stft

// HopCounter signals every hop-th sample. Its count stays in [0, hop).
type HopCounter struct {
	hop   int
	count int
}

// NewHopCounter returns a counter that fires every hop ticks. hop < 1 is
// treated as 1.
func NewHopCounter(hop int) HopCounter {
	return HopCounter{hop: max(hop, 1)}
}

// Tick advances the counter by one sample and reports whether a hop
// boundary was reached.
func (h *HopCounter) Tick() bool {
	h.count++
	if h.count >= h.hop {
		h.count = 0
		return true
	}

	return false
}

// Count returns the number of samples since the last boundary.
func (h *HopCounter) Count() int { return h.count }

// Hop returns the boundary period.
func (h *HopCounter) Hop() int { return h.hop }

// Reset restarts the counter.
func (h *HopCounter) Reset() { h.count = 0 }
