package mastering

import (
	"encoding/json"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

// Parameters are the user controls of one mastering request.
//
// The zero value is the default: unity gain with every optional stage
// bypassed. Gain and StereoWidth are pointers so that unset is distinct from
// 0. A nil Gain means 1, a nil StereoWidth means no widener and 0 folds to
// mono.
type Parameters struct {
	Gain           *float64 `json:"gain"`           // linear, >= 0, nil is 1
	Saturation     float64  `json:"saturation"`     // 0..1, 0 bypasses
	ExciterAmount  float64  `json:"exciterAmount"`  // 0..1, 0 bypasses
	StereoWidth    *float64 `json:"stereoWidth"`    // 0..2, nil bypasses
	NoiseReduction float64  `json:"noiseReduction"` // 0..1, 0 bypasses
	Reverb         float64  `json:"reverb"`         // 0..1, 0 bypasses
}

// DefaultParameters returns unity gain with every optional stage bypassed.
func DefaultParameters() Parameters {
	return Parameters{}
}

// Gain returns a pointer to g for [Parameters.Gain].
func Gain(g float64) *float64 {
	return &g
}

// Width returns a pointer to w for [Parameters.StereoWidth].
func Width(w float64) *float64 {
	return &w
}

// LinearGain returns the gain p applies, 1 when unset or not finite.
func (p Parameters) LinearGain() float64 {
	if p.Gain == nil {
		return 1
	}

	return max(core.FiniteOr(*p.Gain, 1), 0)
}

// Normalize returns p with every field in range. Gain is always set on the
// result. Non-finite values fall back to their defaults and out-of-range
// values are clamped.
func (p Parameters) Normalize() Parameters {
	out := Parameters{
		Gain:           Gain(p.LinearGain()),
		Saturation:     unit(p.Saturation),
		ExciterAmount:  unit(p.ExciterAmount),
		NoiseReduction: unit(p.NoiseReduction),
		Reverb:         unit(p.Reverb),
	}

	if p.StereoWidth != nil && core.IsFinite(*p.StereoWidth) {
		out.StereoWidth = Width(core.Clamp(*p.StereoWidth, 0, 2))
	}

	return out
}

func unit(v float64) float64 {
	return core.Clamp(core.FiniteOr(v, 0), 0, 1)
}

// UnmarshalJSON decodes p starting from [DefaultParameters], so absent
// fields keep their defaults.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	type plain Parameters

	v := plain(DefaultParameters())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*p = Parameters(v)

	return nil
}
