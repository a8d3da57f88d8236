package mastering

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/measure/features"
)

const (
	// DefaultEpsilon floors the target RMS in the gain ratio.
	DefaultEpsilon = 1e-3

	// MaxGainFactor caps the reference/target RMS ratio.
	MaxGainFactor = 2.0

	// NeutralBandFraction is the band share that leaves the EQ flat.
	NeutralBandFraction = features.DefaultBandFraction
)

// EQ band centre frequencies (Hz) and quality factors.
const (
	LowShelfFreq     = 150.0
	LowShelfQ        = 0.7
	MidPeakFreq      = 1000.0
	MidPeakQ         = 1.2
	HighShelfFreq    = 6000.0
	HighShelfQ       = 0.7
	PresenceFreq     = 3000.0
	PresenceQ        = 1.5
	PresenceGainDB   = 2.0
	ExciterHighpass  = 2000.0
	ExciterHighpassQ = 0.707
)

// EQSettings holds the derived band gains in dB.
type EQSettings struct {
	LowGainDB      float64 `json:"lowGainDB"`
	MidGainDB      float64 `json:"midGainDB"`
	HighGainDB     float64 `json:"highGainDB"`
	PresenceGainDB float64 `json:"presenceGainDB"`
}

// CompressorSettings configures the bus compressor.
type CompressorSettings struct {
	ThresholdDB float64 `json:"thresholdDB"`
	Ratio       float64 `json:"ratio"`
	AttackSec   float64 `json:"attackSec"`
	ReleaseSec  float64 `json:"releaseSec"`
	KneeDB      float64 `json:"kneeDB"`
}

// GateSettings configures the noise gate.
type GateSettings struct {
	ThresholdDB float64 `json:"thresholdDB"`
	Ratio       float64 `json:"ratio"`
	KneeDB      float64 `json:"kneeDB"`
	AttackSec   float64 `json:"attackSec"`
	HoldSec     float64 `json:"holdSec"`
	ReleaseSec  float64 `json:"releaseSec"`
}

// Settings are the numbers the processing graph is built from.
type Settings struct {
	Channels   int     `json:"channels"`
	TargetRMS  float64 `json:"targetRMS"`
	GainFactor float64 `json:"gainFactor"`

	EQ         EQSettings         `json:"eq"`
	Compressor CompressorSettings `json:"compressor"`
	Gate       *GateSettings      `json:"gate,omitempty"` // nil without noise reduction

	Saturation    float64  `json:"saturation,omitempty"`
	ExciterAmount float64  `json:"exciterAmount,omitempty"`
	Reverb        float64  `json:"reverb,omitempty"`
	StereoWidth   *float64 `json:"stereoWidth,omitempty"` // nil unless stereo and requested
}

// Derive computes the processing settings for target from the reference
// features and user parameters. A nil target or one without channels yields
// core.ErrUnsupportedChannelLayout.
func Derive(target *waveform.Waveform, ref features.FeatureSet, params Parameters) (Settings, error) {
	return derive(target, ref, params, DefaultEpsilon)
}

func derive(target *waveform.Waveform, ref features.FeatureSet, params Parameters, epsilon float64) (Settings, error) {
	if target == nil || target.NumChannels() == 0 {
		return Settings{}, fmt.Errorf("mastering: target has no channels: %w", core.ErrUnsupportedChannelLayout)
	}

	p := params.Normalize()
	targetRMS := features.RMS(target.View(0))

	s := Settings{
		Channels:      target.NumChannels(),
		TargetRMS:     targetRMS,
		GainFactor:    GainFactor(ref.RMS, targetRMS, epsilon) * p.LinearGain(),
		EQ:            DeriveEQ(ref),
		Compressor:    DeriveCompressor(ref.Std),
		Saturation:    p.Saturation,
		ExciterAmount: p.ExciterAmount,
		Reverb:        p.Reverb,
	}

	if p.NoiseReduction > 0 {
		s.Gate = DeriveGate(p.NoiseReduction)
	}

	if p.StereoWidth != nil && s.Channels == 2 {
		s.StereoWidth = Width(*p.StereoWidth)
	}

	return s, nil
}

// GainFactor returns clamp(refRMS / max(targetRMS, epsilon), 0, 2).
// Non-finite inputs give unity.
func GainFactor(refRMS, targetRMS, epsilon float64) float64 {
	if !(epsilon > 0) || !core.IsFinite(epsilon) {
		epsilon = DefaultEpsilon
	}

	ratio := core.SafeDiv(refRMS, max(targetRMS, 0), epsilon)

	return core.Clamp(core.FiniteOr(ratio, 1), 0, MaxGainFactor)
}

// DeriveEQ maps the reference band fractions to shelf and peak gains.
func DeriveEQ(ref features.FeatureSet) EQSettings {
	band := func(fraction, scale, lo, hi float64) float64 {
		d := core.FiniteOr(fraction, NeutralBandFraction) - NeutralBandFraction

		return core.Clamp(d*scale, lo, hi)
	}

	return EQSettings{
		LowGainDB:      band(ref.LowEnergy, 12, -6, 6),
		MidGainDB:      band(ref.MidEnergy, 8, -4, 4),
		HighGainDB:     band(ref.HighEnergy, 16, -2, 8),
		PresenceGainDB: PresenceGainDB,
	}
}

// DeriveCompressor maps the reference standard deviation to compressor
// threshold and ratio. Attack, release and knee are fixed.
func DeriveCompressor(std float64) CompressorSettings {
	std = core.FiniteOr(std, 0)

	return CompressorSettings{
		ThresholdDB: core.Clamp(-20+std*8, -30, -6),
		Ratio:       core.Clamp(2+std*2, 1, 4),
		AttackSec:   0.003,
		ReleaseSec:  0.1,
		KneeDB:      5,
	}
}

// DeriveGate returns the gate for a noise reduction amount in (0, 1].
func DeriveGate(noiseReduction float64) *GateSettings {
	return &GateSettings{
		ThresholdDB: -60 + noiseReduction*30,
		Ratio:       8,
		KneeDB:      6,
		AttackSec:   0.005,
		HoldSec:     0.05,
		ReleaseSec:  0.1,
	}
}
