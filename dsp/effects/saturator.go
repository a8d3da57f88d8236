package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

const saturatorDriveSpan = 4.0

// Saturator is a normalized tanh waveshaper:
//
//	y = tanh(d*x) / tanh(d),  d = 1 + 4*amount
//
// The normalization keeps full scale at full scale. An amount of 0 or less
// is an exact bypass.
type Saturator struct {
	amount float64
	drive  float64
	norm   float64
}

// NewSaturator returns a saturator for the given amount.
func NewSaturator(amount float64) (*Saturator, error) {
	if !core.IsFinite(amount) {
		return nil, fmt.Errorf("saturator amount must be finite: %f: %w", amount, core.ErrInvalidParameter)
	}

	s := &Saturator{amount: amount}
	if amount > 0 {
		s.drive = 1 + saturatorDriveSpan*amount
		s.norm = 1 / math.Tanh(s.drive)
	}

	return s, nil
}

// Amount returns the configured amount.
func (s *Saturator) Amount() float64 { return s.amount }

// Drive returns the effective tanh drive, or 0 when bypassed.
func (s *Saturator) Drive() float64 { return s.drive }

// Bypassed reports whether the saturator leaves signals untouched.
func (s *Saturator) Bypassed() bool { return s.amount <= 0 }

// ProcessSample shapes one sample.
func (s *Saturator) ProcessSample(x float64) float64 {
	if s.amount <= 0 {
		return x
	}

	return math.Tanh(s.drive*x) * s.norm
}

// ProcessBlock shapes every channel of a planar block in place.
func (s *Saturator) ProcessBlock(block [][]float64) {
	if s.amount <= 0 {
		return
	}

	for _, ch := range block {
		for i, x := range ch {
			ch[i] = math.Tanh(s.drive*x) * s.norm
		}
	}
}
