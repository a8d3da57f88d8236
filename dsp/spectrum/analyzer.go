package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-mastering/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultFFTSize matches the resolution used for reference feature analysis.
const DefaultFFTSize = 8192

var errInvalidFFTSize = errors.New("spectrum: fft size must be a power of two >= 2")

// AnalyzerOption configures an [Analyzer].
type AnalyzerOption func(*analyzerConfig)

type analyzerConfig struct {
	window window.Type
	hop    int
}

// WithWindow selects the analysis window. The default is Blackman.
func WithWindow(t window.Type) AnalyzerOption {
	return func(cfg *analyzerConfig) { cfg.window = t }
}

// WithHop sets the frame advance in samples. The default is half a frame.
func WithHop(hop int) AnalyzerOption {
	return func(cfg *analyzerConfig) {
		if hop > 0 {
			cfg.hop = hop
		}
	}
}

// Analyzer estimates averaged power spectra of real signals.
//
// Analyzer is not safe for concurrent use; create one per goroutine.
type Analyzer struct {
	fftSize int
	hop     int
	win     []float64

	plan  *algofft.Plan[complex128]
	frame []float64
	bins  []complex128
	power []float64
}

// NewAnalyzer returns an analyzer with fftSize-point frames.
func NewAnalyzer(fftSize int, opts ...AnalyzerOption) (*Analyzer, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidFFTSize, fftSize)
	}

	cfg := analyzerConfig{window: window.TypeBlackman, hop: fftSize / 2}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	return &Analyzer{
		fftSize: fftSize,
		hop:     cfg.hop,
		win:     window.Generate(cfg.window, fftSize, window.WithPeriodic()),
		plan:    plan,
		frame:   make([]float64, fftSize),
		bins:    make([]complex128, fftSize),
		power:   make([]float64, fftSize/2),
	}, nil
}

// FFTSize returns the frame length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// BinCount returns the number of one-sided bins, fftSize/2.
func (a *Analyzer) BinCount() int { return a.fftSize / 2 }

// BinFrequency returns the centre frequency of bin i in Hz.
func (a *Analyzer) BinFrequency(i int, sampleRate float64) float64 {
	return float64(i) / float64(a.BinCount()) * sampleRate / 2
}

// AveragePower returns the mean one-sided power spectrum over all frames
// of samples. Signals shorter than one frame are zero-padded into a single
// frame. An empty signal yields an all-zero spectrum.
func (a *Analyzer) AveragePower(samples []float64) ([]float64, error) {
	out := make([]float64, a.BinCount())
	if len(samples) == 0 {
		return out, nil
	}

	frames := 0
	for start := 0; ; start += a.hop {
		clear(a.frame)
		copy(a.frame, samples[start:min(start+a.fftSize, len(samples))])

		if err := window.ApplyCoefficientsInPlace(a.frame, a.win); err != nil {
			return nil, fmt.Errorf("spectrum: window: %w", err)
		}

		for i, v := range a.frame {
			a.bins[i] = complex(v, 0)
		}

		if err := a.plan.Forward(a.bins, a.bins); err != nil {
			return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
		}

		PowerInto(a.power, a.bins)
		vecmath.AddBlockInPlace(out, a.power)
		frames++

		if start+a.fftSize >= len(samples) {
			break
		}
	}

	vecmath.ScaleBlock(out, out, 1/float64(frames))

	return out, nil
}
