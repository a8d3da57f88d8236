package effectchain

import (
	"fmt"
	"maps"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

// Params holds the parsed parameters for a single chain node.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Arity    Arity
	Num      map[string]float64
}

// Arity declares the channel counts a node is defined for. A zero In
// accepts any count and a zero Out keeps the input count.
type Arity struct {
	In  int `json:"in,omitempty"`
	Out int `json:"out,omitempty"`
}

// StereoOnly is the arity of stages defined for exactly two channels.
var StereoOnly = Arity{In: 2, Out: 2}

// Accepts reports whether the node processes a signal with n channels.
// Nodes that do not accept a signal pass it through.
func (a Arity) Accepts(n int) bool {
	return a.In == 0 || a.In == n
}

// Outputs returns the channel count the node produces from n channels.
func (a Arity) Outputs(n int) int {
	if !a.Accepts(n) || a.Out == 0 {
		return n
	}

	return a.Out
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Require returns a numeric parameter that must be present and finite.
func (p Params) Require(key string) (float64, error) {
	v, ok := p.Num[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing parameter %q: %w", p.Type, key, core.ErrInvalidParameter)
	}

	if !core.IsFinite(v) {
		return 0, fmt.Errorf("%s: parameter %q must be finite: %f: %w", p.Type, key, v, core.ErrInvalidParameter)
	}

	return v, nil
}

// RequirePositive is like Require but also rejects values <= 0.
func (p Params) RequirePositive(key string) (float64, error) {
	v, err := p.Require(key)
	if err != nil {
		return 0, err
	}

	if v <= 0 {
		return 0, fmt.Errorf("%s: parameter %q must be > 0: %f: %w", p.Type, key, v, core.ErrInvalidParameter)
	}

	return v, nil
}

// Clone returns a copy whose Num map is not shared with p.
func (p Params) Clone() Params {
	out := p
	out.Num = maps.Clone(p.Num)

	return out
}
