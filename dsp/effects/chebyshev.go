package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// ChebyshevHarmonics is the number of harmonic weights of a [Chebyshev]
// shaper. Weight k scales the Chebyshev polynomial T_{k+1}.
const ChebyshevHarmonics = 12

// minChebyshevVolume is the weight sum below which the shaper outputs
// silence instead of dividing by a near-zero total.
const minChebyshevVolume = 1e-6

// Chebyshev is a 12-harmonic Chebyshev waveshaper. Driven with a full-scale
// sine, T_{k+1}(x) produces the (k+1)-th harmonic, so the weights act as a
// harmonic mixer. The output is normalized by the sum of the weights.
//
// A rotation shifts which weight feeds which harmonic:
// coefficient k uses weight (k - rotation) mod 12.
type Chebyshev struct {
	weights  [ChebyshevHarmonics]float64
	coefs    [ChebyshevHarmonics]float64
	rotation int
	volume   float64
}

// NewChebyshev creates a shaper with every harmonic weight set to 1.
func NewChebyshev() *Chebyshev {
	c := &Chebyshev{}
	for k := range c.weights {
		c.weights[k] = 1
	}
	c.update()
	return c
}

// SetWeight sets the weight of harmonic k in [0, 12).
func (c *Chebyshev) SetWeight(k int, weight float64) error {
	if k < 0 || k >= ChebyshevHarmonics {
		return fmt.Errorf("chebyshev harmonic index must be in [0, %d): %d", ChebyshevHarmonics, k)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("chebyshev weight must be finite: %f", weight)
	}
	c.weights[k] = weight
	c.update()
	return nil
}

// SetWeights replaces all harmonic weights.
func (c *Chebyshev) SetWeights(weights []float64) error {
	if len(weights) != ChebyshevHarmonics {
		return fmt.Errorf("chebyshev expects %d weights: got %d", ChebyshevHarmonics, len(weights))
	}
	for k, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("chebyshev weight %d must be finite: %f", k, w)
		}
	}
	copy(c.weights[:], weights)
	c.update()
	return nil
}

// SetRotation sets the harmonic rotation. Any integer is accepted.
func (c *Chebyshev) SetRotation(rotation int) {
	c.rotation = rotation
	c.update()
}

// Weights returns a copy of the unrotated weights.
func (c *Chebyshev) Weights() []float64 {
	out := make([]float64, ChebyshevHarmonics)
	copy(out, c.weights[:])
	return out
}

// Coefficient returns the rotated weight applied to T_{k+1}.
func (c *Chebyshev) Coefficient(k int) float64 {
	if k < 0 || k >= ChebyshevHarmonics {
		return 0
	}
	return c.coefs[k]
}

// Rotation returns the harmonic rotation.
func (c *Chebyshev) Rotation() int { return c.rotation }

// Volume returns the sum of the coefficients used for normalization.
func (c *Chebyshev) Volume() float64 { return c.volume }

// Shape maps x (clamped to [-1, 1]) through the weighted polynomial sum.
func (c *Chebyshev) Shape(x float64) float64 {
	if math.Abs(c.volume) < minChebyshevVolume {
		return 0
	}

	x = core.Clamp(x, -1, 1)

	// T_0=1, T_1=x; recurrence T_n = 2x·T_{n-1} − T_{n-2}
	t0 := 1.0
	t1 := x
	sum := c.coefs[0] * t1

	for n := 2; n <= ChebyshevHarmonics; n++ {
		tn := 2*x*t1 - t0
		sum += c.coefs[n-1] * tn
		t0, t1 = t1, tn
	}

	return sum / c.volume
}

func (c *Chebyshev) update() {
	c.volume = 0
	for k := range c.coefs {
		idx := (k - c.rotation) % ChebyshevHarmonics
		if idx < 0 {
			idx += ChebyshevHarmonics
		}
		c.coefs[k] = c.weights[idx]
		c.volume += c.coefs[k]
	}
}
