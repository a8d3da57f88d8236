package features

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/spectrum"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/measure/loudness"
	"github.com/cwbudde/algo-mastering/stats/frequency"
	timestats "github.com/cwbudde/algo-mastering/stats/time"
)

const (
	// LowMidEdge and MidHighEdge split the spectrum into three bands (Hz).
	LowMidEdge  = 250.0
	MidHighEdge = 4000.0

	// DefaultBandFraction is reported for every band when the spectrum
	// carries no energy.
	DefaultBandFraction = 0.333

	// MinAnalysisLength is the shortest signal with defined level and
	// spectral features; shorter signals report zeros and default bands.
	MinAnalysisLength = 2

	// LoudnessFloor is reported as IntegratedLoudness when the program is
	// gated out entirely or shorter than one 400 ms block.
	LoudnessFloor = -120.0
)

// FeatureSet describes one waveform. Level and spectral fields describe
// channel 0; IntegratedLoudness covers all channels.
type FeatureSet struct {
	RMS              float64 `json:"rms"`
	Peak             float64 `json:"peak"`
	Std              float64 `json:"std"`
	SpectralCentroid float64 `json:"spectralCentroid"`
	LowEnergy        float64 `json:"lowEnergy"`
	MidEnergy        float64 `json:"midEnergy"`
	HighEnergy       float64 `json:"highEnergy"`

	SpectralFlatness   float64 `json:"spectralFlatness"`
	SpectralRolloff    float64 `json:"spectralRolloff"`
	CrestFactor        float64 `json:"crestFactor"`
	IntegratedLoudness float64 `json:"integratedLoudness"` // LUFS
}

// BandSum returns LowEnergy + MidEnergy + HighEnergy.
func (f FeatureSet) BandSum() float64 {
	return f.LowEnergy + f.MidEnergy + f.HighEnergy
}

// RMS returns the level Extract reports for sig: its root-mean-square, or 0
// when sig is shorter than MinAnalysisLength.
func RMS(sig []float64) float64 {
	if len(sig) < MinAnalysisLength {
		return 0
	}

	return timestats.RMS(sig)
}

var analyzerPool = sync.Pool{
	New: func() any {
		a, err := spectrum.NewAnalyzer(spectrum.DefaultFFTSize)
		if err != nil {
			// DefaultFFTSize is a power of two.
			panic(err)
		}

		return a
	},
}

// Extract computes the FeatureSet of w. A nil waveform or one without
// channels or frames yields core.ErrInvalidInput.
func Extract(w *waveform.Waveform) (FeatureSet, error) {
	if err := w.Validate(); err != nil {
		return FeatureSet{}, fmt.Errorf("features: %w", err)
	}

	fs := FeatureSet{
		LowEnergy:          DefaultBandFraction,
		MidEnergy:          DefaultBandFraction,
		HighEnergy:         DefaultBandFraction,
		IntegratedLoudness: LoudnessFloor,
	}

	sig := w.View(0)
	if len(sig) < MinAnalysisLength {
		return fs, nil
	}

	sr := float64(w.SampleRate())

	level := timestats.Calculate(sig)
	fs.RMS = level.RMS
	fs.Peak = level.Peak
	fs.Std = level.StdDev
	fs.CrestFactor = level.CrestFactor

	if err := fs.addSpectral(sig, sr); err != nil {
		return FeatureSet{}, err
	}

	report, err := loudness.Measure(w.Channels(), sr)
	if err != nil {
		return FeatureSet{}, fmt.Errorf("features: loudness: %w", err)
	}

	fs.IntegratedLoudness = math.Max(core.FiniteOr(report.Integrated, LoudnessFloor), LoudnessFloor)

	return fs, nil
}

func (f *FeatureSet) addSpectral(sig []float64, sampleRate float64) error {
	a := analyzerPool.Get().(*spectrum.Analyzer)
	defer analyzerPool.Put(a)

	power, err := a.AveragePower(sig)
	if err != nil {
		return fmt.Errorf("features: spectrum: %w", err)
	}

	desc := frequency.Calculate(power, sampleRate)

	bands, err := frequency.BandFractions(power, sampleRate, DefaultBandFraction, LowMidEdge, MidHighEdge)
	if err != nil {
		return fmt.Errorf("features: bands: %w", err)
	}

	f.SpectralCentroid = desc.Centroid
	f.SpectralFlatness = desc.Flatness
	f.SpectralRolloff = desc.Rolloff
	f.LowEnergy, f.MidEnergy, f.HighEnergy = bands[0], bands[1], bands[2]

	return nil
}
