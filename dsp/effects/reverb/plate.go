package reverb

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

const (
	// DefaultPlateDecay is the plate impulse response length in seconds.
	DefaultPlateDecay = 2.5
	// DefaultPlateSeed seeds the plate noise generator.
	DefaultPlateSeed int64 = 0x5eed

	maxPlateDecay = 20.0
)

// PlateIR returns one impulse response per channel. Each response is
// noise shaped by a (1 - t/T)^2 envelope over decay seconds and scaled to
// unit energy. Channel c draws from a generator seeded with seed+c, so the
// result is fully determined by the arguments.
func PlateIR(sampleRate float64, channels int, decay float64, seed int64) ([][]float64, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("reverb: sample rate must be positive and finite: %f: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	if decay <= 0 || decay > maxPlateDecay || !core.IsFinite(decay) {
		return nil, fmt.Errorf("reverb: plate decay must be in (0, %g] s: %f: %w",
			maxPlateDecay, decay, core.ErrInvalidParameter)
	}

	if channels < 1 {
		return nil, fmt.Errorf("reverb: channel count must be positive: %d: %w",
			channels, core.ErrInvalidParameter)
	}

	n := max(int(decay*sampleRate), 1)
	irs := make([][]float64, channels)

	for ch := range irs {
		rng := rand.New(rand.NewSource(seed + int64(ch)))
		ir := make([]float64, n)

		var energy float64
		for i := range ir {
			env := 1 - float64(i)/float64(n)
			ir[i] = (rng.Float64()*2 - 1) * env * env
			energy += ir[i] * ir[i]
		}

		if energy > 0 {
			scale := 1 / math.Sqrt(energy)
			for i := range ir {
				ir[i] *= scale
			}
		}

		irs[ch] = ir
	}

	return irs, nil
}
