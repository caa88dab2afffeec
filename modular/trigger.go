package modular

const (
	triggerLow  = 0.0
	triggerHigh = 1.0
)

// SchmittTrigger detects rising edges of a gate with hysteresis. The
// trigger arms at or above 1 V and disarms at or below 0 V.
type SchmittTrigger struct {
	high bool
}

// Process returns true on the sample the gate crosses into the high state.
func (t *SchmittTrigger) Process(v float64) bool {
	if t.high {
		if v <= triggerLow {
			t.high = false
		}
		return false
	}

	if v >= triggerHigh {
		t.high = true
		return true
	}

	return false
}

// High reports whether the trigger is in the high state.
func (t *SchmittTrigger) High() bool { return t.high }

// Reset returns the trigger to the low state.
func (t *SchmittTrigger) Reset() { t.high = false }
