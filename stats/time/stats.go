package time

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// Stats holds level statistics of one channel.
//
//nolint:revive
type Stats struct {
	Length      int
	DC          float64 // mean
	RMS         float64
	RMS_dB      float64
	Max         float64
	Min         float64
	Peak        float64 // max(|max|, |min|)
	Peak_dB     float64
	CrestFactor float64 // peak / RMS (linear)
	Energy      float64 // sum of squares
	Variance    float64 // population variance
	StdDev      float64
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes the level statistics of signal. Mean and variance use
// Welford's update so that large DC offsets do not cancel the variance.
// An empty signal yields zero values and -Inf for the dB fields.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		mean   float64
		m2     float64
		maxVal = signal[0]
		minVal = signal[0]
	)

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		if x > maxVal {
			maxVal = x
		}

		if x < minVal {
			minVal = x
		}
	}

	nf := float64(n)
	energy := f64.DotProduct(signal, signal)
	rms := math.Sqrt(energy / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	variance := m2 / nf
	if variance < 0 {
		variance = 0
	}

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:      n,
		DC:          mean,
		RMS:         rms,
		RMS_dB:      ampTodB(rms),
		Max:         maxVal,
		Min:         minVal,
		Peak:        peak,
		Peak_dB:     ampTodB(peak),
		CrestFactor: crest,
		Energy:      energy,
		Variance:    variance,
		StdDev:      math.Sqrt(variance),
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(f64.DotProduct(signal, signal) / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return f64.Sum(signal) / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// StdDev returns the population standard deviation of the signal.
func StdDev(signal []float64) float64 {
	return Calculate(signal).StdDev
}
