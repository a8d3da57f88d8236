package mastering

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/internal/testutil"
	"github.com/cwbudde/algo-mastering/measure/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralFeatures() features.FeatureSet {
	return features.FeatureSet{
		RMS:        0.2,
		LowEnergy:  NeutralBandFraction,
		MidEnergy:  NeutralBandFraction,
		HighEnergy: NeutralBandFraction,
	}
}

func TestGainFactor(t *testing.T) {
	tests := []struct {
		name              string
		ref, target, want float64
	}{
		{"clamped at two", 0.3, 0.1, 2},
		{"ratio below cap", 0.15, 0.1, 1.5},
		{"silent target uses epsilon", 0.001, 0, 1},
		{"silent reference", 0, 0.2, 0},
		{"nan reference", math.NaN(), 0.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GainFactor(tt.ref, tt.target, DefaultEpsilon), 1e-12)
		})
	}

	assert.InDelta(t, 2.0, GainFactor(0.3, 0, math.NaN()), 0, "invalid epsilon falls back")
}

func TestDeriveEQ(t *testing.T) {
	flat := DeriveEQ(neutralFeatures())
	assert.InDelta(t, 0, flat.LowGainDB, 1e-12)
	assert.InDelta(t, 0, flat.MidGainDB, 1e-12)
	assert.InDelta(t, 0, flat.HighGainDB, 1e-12)
	assert.InDelta(t, PresenceGainDB, flat.PresenceGainDB, 0)

	bassy := DeriveEQ(features.FeatureSet{LowEnergy: 1, MidEnergy: 0, HighEnergy: 0})
	assert.InDelta(t, 6, bassy.LowGainDB, 1e-12)
	assert.InDelta(t, -2.664, bassy.MidGainDB, 1e-12)
	assert.InDelta(t, -2, bassy.HighGainDB, 1e-12)

	bright := DeriveEQ(features.FeatureSet{LowEnergy: 0, MidEnergy: 0.2, HighEnergy: 0.8})
	assert.InDelta(t, -3.996, bright.LowGainDB, 1e-12)
	assert.InDelta(t, 7.472, bright.HighGainDB, 1e-12)
}

func TestDeriveCompressor(t *testing.T) {
	tests := []struct {
		std, threshold, ratio float64
	}{
		{0, -20, 2},
		{0.5, -16, 3},
		{1, -12, 4},
		{10, -6, 4},
		{-5, -30, 1},
		{math.NaN(), -20, 2},
	}

	for _, tt := range tests {
		c := DeriveCompressor(tt.std)
		assert.InDelta(t, tt.threshold, c.ThresholdDB, 1e-12, "std %v", tt.std)
		assert.InDelta(t, tt.ratio, c.Ratio, 1e-12, "std %v", tt.std)
		assert.InDelta(t, 0.003, c.AttackSec, 0)
		assert.InDelta(t, 0.1, c.ReleaseSec, 0)
		assert.InDelta(t, 5, c.KneeDB, 0)
	}
}

func TestDeriveGate(t *testing.T) {
	g := DeriveGate(1)
	assert.InDelta(t, -30, g.ThresholdDB, 1e-12)
	assert.InDelta(t, 8, g.Ratio, 0)
	assert.InDelta(t, 6, g.KneeDB, 0)
	assert.InDelta(t, 0.005, g.AttackSec, 0)
	assert.InDelta(t, 0.05, g.HoldSec, 0)
	assert.InDelta(t, 0.1, g.ReleaseSec, 0)

	assert.InDelta(t, -45, DeriveGate(0.5).ThresholdDB, 1e-12)
}

func TestDerive(t *testing.T) {
	mono, err := waveform.New(44100, [][]float64{testutil.DC(0.1, 1000)})
	require.NoError(t, err)

	stereo, err := waveform.New(44100, [][]float64{testutil.DC(0.1, 1000), testutil.DC(0.1, 1000)})
	require.NoError(t, err)

	ref := neutralFeatures()
	ref.RMS = 0.3

	t.Run("gain clamp boundary", func(t *testing.T) {
		s, err := Derive(mono, ref, DefaultParameters())
		require.NoError(t, err)
		assert.InDelta(t, 0.1, s.TargetRMS, 1e-12)
		assert.InDelta(t, 2.0, s.GainFactor, 1e-12)
	})

	t.Run("user gain multiplies", func(t *testing.T) {
		s, err := Derive(mono, ref, Parameters{Gain: Gain(0.5)})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, s.GainFactor, 1e-12)
	})

	t.Run("optional stages", func(t *testing.T) {
		s, err := Derive(stereo, ref, DefaultParameters())
		require.NoError(t, err)
		assert.Nil(t, s.Gate)
		assert.Nil(t, s.StereoWidth)

		s, err = Derive(stereo, ref, Parameters{NoiseReduction: 0.5, StereoWidth: Width(1.3)})
		require.NoError(t, err)
		require.NotNil(t, s.Gate)
		assert.InDelta(t, -45, s.Gate.ThresholdDB, 1e-12)
		require.NotNil(t, s.StereoWidth)
		assert.InDelta(t, 1.3, *s.StereoWidth, 0)
	})

	t.Run("single sample target matches extracted level", func(t *testing.T) {
		one, err := waveform.New(44100, [][]float64{{0.8}})
		require.NoError(t, err)

		fs, err := features.Extract(one)
		require.NoError(t, err)

		s, err := Derive(one, ref, DefaultParameters())
		require.NoError(t, err)
		assert.InDelta(t, fs.RMS, s.TargetRMS, 0)
		assert.Zero(t, s.TargetRMS)
		assert.InDelta(t, MaxGainFactor, s.GainFactor, 0)
	})

	t.Run("widener only for stereo", func(t *testing.T) {
		s, err := Derive(mono, ref, Parameters{StereoWidth: Width(1.3)})
		require.NoError(t, err)
		assert.Nil(t, s.StereoWidth)
	})

	t.Run("nil target", func(t *testing.T) {
		_, err := Derive(nil, ref, DefaultParameters())
		require.ErrorIs(t, err, core.ErrUnsupportedChannelLayout)
	})
}
