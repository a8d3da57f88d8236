package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

// log2Of10Div20 converts decibels to the log2 domain: log2(10) / 20.
const log2Of10Div20 = 0.166096404744

// peakFollower is a one-pole peak detector with separate attack and
// release time constants.
type peakFollower struct {
	level        float64
	attackCoeff  float64
	releaseCoeff float64
}

// configure derives the smoothing coefficients from times in milliseconds.
func (f *peakFollower) configure(attackMs, releaseMs, sampleRate float64) {
	f.attackCoeff = 1.0 - math.Exp(-math.Ln2/(attackMs*0.001*sampleRate))
	f.releaseCoeff = math.Exp(-math.Ln2 / (releaseMs * 0.001 * sampleRate))
}

func (f *peakFollower) next(input float64) float64 {
	if input > f.level {
		f.level += (input - f.level) * f.attackCoeff
	} else {
		f.level = input + (f.level-input)*f.releaseCoeff
	}

	f.level = core.FlushDenormals(f.level)

	return f.level
}

func (f *peakFollower) reset() { f.level = 0 }

// linkedLevel returns the largest absolute sample of frame i across channels.
func linkedLevel(block [][]float64, i int) float64 {
	var level float64
	for _, ch := range block {
		if a := math.Abs(ch[i]); a > level {
			level = a
		}
	}

	return level
}

// softKnee maps a positive distance past the threshold (log2 domain) onto
// the effective distance after quadratic knee smoothing.
func softKnee(distance, kneeWidthLog2 float64) (float64, bool) {
	if kneeWidthLog2 <= 0 {
		return distance, distance > 0
	}

	halfWidth := kneeWidthLog2 * 0.5
	if distance < -halfWidth {
		return 0, false
	}

	if distance > halfWidth {
		return distance, true
	}

	scratch := distance + halfWidth

	return scratch * scratch * 0.5 / kneeWidthLog2, true
}

func validateSampleRate(kind string, sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%s sample rate must be positive and finite: %f: %w",
			kind, sampleRate, core.ErrInvalidParameter)
	}

	return nil
}

func validateRange(name string, value, lo, hi float64) error {
	if value < lo || value > hi || !core.IsFinite(value) {
		return fmt.Errorf("%s must be in [%g, %g]: %f: %w", name, lo, hi, value, core.ErrInvalidParameter)
	}

	return nil
}
