package loudness

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/internal/testutil"
)

func TestLoudness_Sine(t *testing.T) {
	sampleRate := 48000.0
	meter := NewMeter(WithSampleRate(sampleRate), WithChannels(1))

	// Unit sine: mean square 0.5 plus ~0.67 dB K-weighting gain at 1 kHz.
	// -0.691 + 10*log10(0.5834) = -3.031 LUFS.
	sig := testutil.DeterministicSine(1000, sampleRate, 1.0, int(sampleRate*4))

	meter.StartIntegration()

	for _, s := range sig {
		meter.ProcessFrame([]float64{s})
	}

	expected := -3.031
	tolerance := 0.2

	for name, got := range map[string]float64{
		"momentary":  meter.Momentary(),
		"short-term": meter.ShortTerm(),
		"integrated": meter.Integrated(),
	} {
		if math.Abs(got-expected) > tolerance {
			t.Errorf("%s loudness = %v, want %v", name, got, expected)
		}
	}
}

func TestLoudness_StereoSine(t *testing.T) {
	fs := 48000.0
	meter := NewMeter(WithSampleRate(fs), WithChannels(2))

	sig := testutil.DeterministicSine(1000, fs, 1.0, int(fs*4))

	meter.StartIntegration()
	meter.ProcessBlock([][]float64{sig, sig})

	// Channel powers add: mono -3.031 + 3.01 dB.
	integrated := meter.Integrated()
	if math.Abs(integrated-(-0.021)) > 0.2 {
		t.Errorf("stereo integrated = %v, want %v", integrated, -0.021)
	}
}

func TestLoudness_Silence(t *testing.T) {
	m := NewMeter(WithChannels(1))
	m.StartIntegration()
	m.ProcessBlock([][]float64{make([]float64, 48000)})

	if mom := m.Momentary(); mom > -100 {
		t.Errorf("silent momentary = %v, want <= -100", mom)
	}

	if got := m.Integrated(); !math.IsInf(got, -1) {
		t.Errorf("silent integrated = %v, want -Inf", got)
	}
}

func TestLoudness_Gating(t *testing.T) {
	sampleRate := 48000.0
	meter := NewMeter(WithSampleRate(sampleRate), WithChannels(1))

	highSig := testutil.DeterministicSine(1000, sampleRate, 1.0, int(sampleRate*10))
	lowSig := testutil.DeterministicSine(1000, sampleRate, 0.0001, int(sampleRate*10)) // -80 dB

	meter.StartIntegration()
	meter.ProcessBlock([][]float64{highSig})

	highLoudness := meter.Integrated()

	meter.ProcessBlock([][]float64{lowSig})

	totalLoudness := meter.Integrated()

	if math.Abs(highLoudness-totalLoudness) > 0.1 {
		t.Errorf("gating failed: high %v, total %v", highLoudness, totalLoudness)
	}
}

func TestLoudness_ShortBlockIgnored(t *testing.T) {
	m := NewMeter(WithChannels(2))
	m.ProcessBlock([][]float64{{1, 1, 1}})

	if got := m.Peaks(); got[0] != 0 || got[1] != 0 {
		t.Fatalf("Peaks = %v, want zeros", got)
	}
}

func TestMeasure(t *testing.T) {
	fs := 48000.0
	sig := testutil.DeterministicSine(1000, fs, 0.5, int(fs*4))

	r, err := Measure([][]float64{sig, sig}, fs)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if math.Abs(r.SamplePeak-0.5) > 1e-3 {
		t.Fatalf("SamplePeak = %v, want 0.5", r.SamplePeak)
	}

	if r.MaxMomentary < r.Integrated-0.5 {
		t.Fatalf("MaxMomentary = %v below Integrated %v", r.MaxMomentary, r.Integrated)
	}

	if math.IsInf(r.MaxShortTerm, -1) {
		t.Fatal("MaxShortTerm not set for a 4 s program")
	}
}

func TestMeasure_ShortProgram(t *testing.T) {
	r, err := Measure([][]float64{testutil.DC(0.1, 100)}, 48000)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if !math.IsInf(r.MaxMomentary, -1) || !math.IsInf(r.Integrated, -1) {
		t.Fatalf("short program report = %+v, want -Inf loudness", r)
	}
}

func TestMeasure_InvalidInput(t *testing.T) {
	if _, err := Measure(nil, 48000); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	if _, err := Measure([][]float64{{0, 0}}, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}
