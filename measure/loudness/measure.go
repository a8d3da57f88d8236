package loudness

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

// Report summarizes the loudness of a complete program.
type Report struct {
	Integrated   float64 // gated integrated loudness, LUFS (-Inf if fully gated)
	MaxMomentary float64 // LUFS (-Inf if shorter than 400 ms)
	MaxShortTerm float64 // LUFS (-Inf if shorter than 3 s)
	SamplePeak   float64 // largest absolute sample over all channels
}

// Measure meters a planar program from start to end.
func Measure(channels [][]float64, sampleRate float64) (Report, error) {
	if _, err := core.FrameCount(channels); err != nil {
		return Report{}, fmt.Errorf("loudness: %w", err)
	}

	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Report{}, fmt.Errorf("loudness: sample rate must be positive: %f: %w",
			sampleRate, core.ErrInvalidParameter)
	}

	m := NewMeter(WithSampleRate(sampleRate), WithChannels(len(channels)))
	m.StartIntegration()
	m.ProcessBlock(channels)

	var peak float64
	for _, p := range m.Peaks() {
		peak = math.Max(peak, p)
	}

	return Report{
		Integrated:   m.Integrated(),
		MaxMomentary: m.MaxMomentary(),
		MaxShortTerm: m.MaxShortTerm(),
		SamplePeak:   peak,
	}, nil
}
