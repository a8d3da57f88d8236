package effects

import (
	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Gain scales every channel by a constant linear factor.
type Gain struct {
	factor float64
}

// NewGain returns a gain stage. Non-finite factors fall back to unity.
func NewGain(factor float64) *Gain {
	return &Gain{factor: core.FiniteOr(factor, 1)}
}

// Factor returns the linear gain factor.
func (g *Gain) Factor() float64 { return g.factor }

// ProcessBlock scales a planar block in place.
func (g *Gain) ProcessBlock(block [][]float64) {
	if g.factor == 1 {
		return
	}

	for _, ch := range block {
		vecmath.ScaleBlock(ch, ch, g.factor)
	}
}
