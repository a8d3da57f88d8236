package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mastering/internal/testutil"
)

const tolerance = 1e-10

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || s.RMS != 0 || s.Peak != 0 || s.StdDev != 0 {
		t.Fatalf("Calculate(nil) = %+v, want zero values", s)
	}

	if !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
		t.Fatalf("dB fields = %v/%v, want -Inf", s.RMS_dB, s.Peak_dB)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		dc     float64
		rms    float64
		peak   float64
		std    float64
	}{
		{"silence", make([]float64, 64), 0, 0, 0, 0},
		{"single", []float64{-0.25}, -0.25, 0.25, 0.25, 0},
		{"constant", testutil.DC(0.5, 100), 0.5, 0.5, 0.5, 0},
		{"square", []float64{1, -1, 1, -1}, 0, 1, 1, 1},
		{"offset", []float64{1, 2, 3, 4}, 2.5, math.Sqrt(7.5), 4, math.Sqrt(1.25)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Calculate(tc.signal)
			if s.Length != len(tc.signal) {
				t.Fatalf("Length = %d, want %d", s.Length, len(tc.signal))
			}

			if math.Abs(s.DC-tc.dc) > tolerance {
				t.Fatalf("DC = %v, want %v", s.DC, tc.dc)
			}

			if math.Abs(s.RMS-tc.rms) > tolerance {
				t.Fatalf("RMS = %v, want %v", s.RMS, tc.rms)
			}

			if math.Abs(s.Peak-tc.peak) > tolerance {
				t.Fatalf("Peak = %v, want %v", s.Peak, tc.peak)
			}

			if math.Abs(s.StdDev-tc.std) > tolerance {
				t.Fatalf("StdDev = %v, want %v", s.StdDev, tc.std)
			}
		})
	}
}

func TestCalculateSine(t *testing.T) {
	// 100 full cycles of a 441 Hz sine at 44.1 kHz.
	sig := testutil.DeterministicSine(441, 44100, 0.8, 10000)
	s := Calculate(sig)

	want := 0.8 / math.Sqrt2
	if math.Abs(s.RMS-want) > 1e-9 {
		t.Fatalf("RMS = %v, want %v", s.RMS, want)
	}

	if math.Abs(s.StdDev-want) > 1e-9 {
		t.Fatalf("StdDev = %v, want %v", s.StdDev, want)
	}

	if math.Abs(s.CrestFactor-math.Sqrt2) > 1e-6 {
		t.Fatalf("CrestFactor = %v, want sqrt(2)", s.CrestFactor)
	}

	if math.Abs(s.Peak_dB-20*math.Log10(s.Peak)) > tolerance {
		t.Fatalf("Peak_dB = %v inconsistent with Peak %v", s.Peak_dB, s.Peak)
	}
}

func TestCalculateLargeOffsetVariance(t *testing.T) {
	sig := []float64{1e8 + 1, 1e8 - 1, 1e8 + 1, 1e8 - 1}
	if got := Calculate(sig).Variance; math.Abs(got-1) > 1e-6 {
		t.Fatalf("Variance = %v, want 1", got)
	}
}

func TestHelpersMatchCalculate(t *testing.T) {
	sig := testutil.DeterministicNoise(7, 0.9, 1023)
	s := Calculate(sig)

	if got := RMS(sig); math.Abs(got-s.RMS) > tolerance {
		t.Fatalf("RMS = %v, want %v", got, s.RMS)
	}

	if got := DC(sig); math.Abs(got-s.DC) > 1e-12 {
		t.Fatalf("DC = %v, want %v", got, s.DC)
	}

	if got := Peak(sig); got != s.Peak {
		t.Fatalf("Peak = %v, want %v", got, s.Peak)
	}

	if got := StdDev(sig); got != s.StdDev {
		t.Fatalf("StdDev = %v, want %v", got, s.StdDev)
	}
}

func TestHelpersEmpty(t *testing.T) {
	if RMS(nil) != 0 || DC(nil) != 0 || Peak(nil) != 0 || StdDev(nil) != 0 {
		t.Fatal("helpers on empty input must return 0")
	}
}
