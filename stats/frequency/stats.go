package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats holds descriptors of a one-sided power spectrum.
//
// Bin i of a spectrum with n bins is centred at i/n * sampleRate/2, so the
// Nyquist bin is not part of the slice.
type Stats struct {
	BinCount int
	Energy   float64 // sum of bin powers
	// Spectral shape descriptors
	Centroid float64 // power-weighted mean frequency (Hz)
	Spread   float64 // power-weighted standard deviation around the centroid (Hz)
	Flatness float64 // geometric / arithmetic mean of bins 1..n-1, 0..1
	Rolloff  float64 // frequency below which 85% of the energy lies (Hz)
}

// DefaultRolloffFraction is the energy fraction used by [Calculate] for Rolloff.
const DefaultRolloffFraction = 0.85

// BinFrequency returns the centre frequency in Hz of bin i in a spectrum of
// binCount bins.
func BinFrequency(i, binCount int, sampleRate float64) float64 {
	if binCount <= 0 {
		return 0
	}

	return float64(i) / float64(binCount) * sampleRate / 2
}

// Frequencies returns the centre frequency of every bin.
func Frequencies(binCount int, sampleRate float64) []float64 {
	freqs := make([]float64, binCount)
	for i := range freqs {
		freqs[i] = BinFrequency(i, binCount, sampleRate)
	}

	return freqs
}

// Calculate computes all descriptors from a linear power spectrum.
func Calculate(power []float64, sampleRate float64) Stats {
	n := len(power)
	if n == 0 {
		return Stats{}
	}

	freqs := Frequencies(n, sampleRate)
	energy := floats.Sum(power)
	cent := centroid(power, freqs, energy)

	return Stats{
		BinCount: n,
		Energy:   energy,
		Centroid: cent,
		Spread:   spread(power, freqs, cent, energy),
		Flatness: Flatness(power),
		Rolloff:  rolloff(power, freqs, DefaultRolloffFraction, energy),
	}
}

// Centroid returns the power-weighted mean frequency in Hz, or 0 when the
// spectrum carries no energy.
//
//	centroid = sum(f_i * P_i) / sum(P_i)
func Centroid(power []float64, sampleRate float64) float64 {
	if len(power) == 0 {
		return 0
	}

	return centroid(power, Frequencies(len(power), sampleRate), floats.Sum(power))
}

func centroid(power, freqs []float64, energy float64) float64 {
	if energy <= 0 {
		return 0
	}

	return floats.Dot(freqs, power) / energy
}

func spread(power, freqs []float64, cent, energy float64) float64 {
	if energy <= 0 {
		return 0
	}

	var weighted float64
	for i, p := range power {
		d := freqs[i] - cent
		weighted += d * d * p
	}

	return math.Sqrt(weighted / energy)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
// The DC bin is excluded. A zero bin makes the geometric mean, and therefore
// the flatness, zero.
func Flatness(power []float64) float64 {
	if len(power) < 2 {
		return 0
	}

	bins := power[1:]

	meanLin := floats.Sum(bins) / float64(len(bins))
	if meanLin <= 0 {
		return 0
	}

	var sumLog float64
	for _, v := range bins {
		if v <= 0 {
			return 0
		}

		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(len(bins))) / meanLin
}

// Rolloff returns the frequency below which fraction (0..1) of the spectral
// energy lies.
func Rolloff(power []float64, sampleRate, fraction float64) float64 {
	if len(power) == 0 {
		return 0
	}

	return rolloff(power, Frequencies(len(power), sampleRate), fraction, floats.Sum(power))
}

func rolloff(power, freqs []float64, fraction, energy float64) float64 {
	if energy <= 0 {
		return 0
	}

	threshold := fraction * energy
	cum := 0.0

	for i, p := range power {
		cum += p
		if cum >= threshold {
			return freqs[i]
		}
	}

	return freqs[len(freqs)-1]
}
