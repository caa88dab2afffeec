package modular

import "math"

// Input is a control or audio port. An unconnected port reads 0 V, and so
// does a connected port carrying a NaN or infinite voltage.
type Input struct {
	Voltage   float64
	Connected bool
}

// Connect returns a connected port carrying v volts.
func Connect(v float64) Input {
	return Input{Voltage: v, Connected: true}
}

// Value returns the port voltage, or fallback when unconnected.
func (in Input) Value(fallback float64) float64 {
	if !in.Connected {
		return fallback
	}
	return in.volts()
}

func (in Input) volts() float64 {
	if math.IsNaN(in.Voltage) || math.IsInf(in.Voltage, 0) {
		return 0
	}
	return in.Voltage
}

// Attenuated resolves a knob that a connected CV scales: the CV spans
// [-fullScale, fullScale] volts and multiplies param by cv/fullScale.
// Unconnected, the knob value is returned unchanged.
func Attenuated(param float64, cv Input, fullScale float64) float64 {
	if !cv.Connected || fullScale == 0 {
		return param
	}
	return cv.volts() * param / fullScale
}

// Stepped resolves an integer knob that a connected CV replaces, one step
// per stepVolts.
func Stepped(param int, cv Input, stepVolts float64) int {
	if !cv.Connected || stepVolts == 0 {
		return param
	}
	return int(math.Floor(cv.volts() / stepVolts))
}
