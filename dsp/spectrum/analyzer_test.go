package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mastering/dsp/window"
)

func TestPower(t *testing.T) {
	got := Power([]complex128{complex(3, 4), complex(0, -2), 0})
	want := []float64{25, 4, 0}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Power()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestAnalyzerRejectsBadSize(t *testing.T) {
	for _, n := range []int{0, 1, 1000} {
		if _, err := NewAnalyzer(n); err == nil {
			t.Fatalf("NewAnalyzer(%d) expected error", n)
		}
	}
}

func TestAnalyzerSinePeakBin(t *testing.T) {
	const sr = 8192.0
	a, err := NewAnalyzer(1024)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	// 1000 Hz sits exactly on bin 125 at this resolution.
	x := make([]float64, 4096)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / sr)
	}

	p, err := a.AveragePower(x)
	if err != nil {
		t.Fatalf("AveragePower() error = %v", err)
	}
	if len(p) != 512 {
		t.Fatalf("len = %d, want 512", len(p))
	}

	peak := 0
	for i := range p {
		if p[i] > p[peak] {
			peak = i
		}
	}
	if peak != 125 {
		t.Fatalf("peak bin = %d, want 125", peak)
	}
	if f := a.BinFrequency(peak, sr); f != 1000 {
		t.Fatalf("BinFrequency(125) = %v, want 1000", f)
	}
}

func TestAnalyzerShortAndEmptyInput(t *testing.T) {
	a, _ := NewAnalyzer(256, WithWindow(window.TypeHann), WithHop(64))

	p, err := a.AveragePower(nil)
	if err != nil {
		t.Fatalf("AveragePower(nil) error = %v", err)
	}
	for i, v := range p {
		if v != 0 {
			t.Fatalf("bin %d = %v, want 0", i, v)
		}
	}

	p, err = a.AveragePower([]float64{0, 0, 1, 0})
	if err != nil {
		t.Fatalf("AveragePower(short) error = %v", err)
	}

	var total float64
	for _, v := range p {
		total += v
	}
	if !(total > 0) {
		t.Fatal("zero-padded impulse produced no energy")
	}
}

func TestAnalyzerDeterministic(t *testing.T) {
	x := make([]float64, 3000)
	for i := range x {
		x[i] = math.Sin(float64(i)*0.1) + 0.3*math.Cos(float64(i)*0.77)
	}

	a, _ := NewAnalyzer(512)
	p1, _ := a.AveragePower(x)
	p2, _ := a.AveragePower(x)

	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("bin %d differs between runs", i)
		}
	}
}
