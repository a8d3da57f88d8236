package frequency

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// BandEnergies sums bin powers into len(edges)+1 bands split at the given
// ascending edge frequencies (Hz). Bin i belongs to band k when
// edges[k-1] <= f_i < edges[k].
func BandEnergies(power []float64, sampleRate float64, edges ...float64) ([]float64, error) {
	if !sort.Float64sAreSorted(edges) {
		return nil, fmt.Errorf("frequency: band edges must be ascending: %v", edges)
	}

	bands := make([]float64, len(edges)+1)
	n := len(power)

	start := 0
	for k, edge := range edges {
		end := start
		for end < n && BinFrequency(end, n, sampleRate) < edge {
			end++
		}

		bands[k] = floats.Sum(power[start:end])
		start = end
	}

	bands[len(edges)] = floats.Sum(power[start:])

	return bands, nil
}

// BandFractions returns the band energies normalised by the total energy.
// When the total is zero every band is set to fallback.
func BandFractions(power []float64, sampleRate, fallback float64, edges ...float64) ([]float64, error) {
	bands, err := BandEnergies(power, sampleRate, edges...)
	if err != nil {
		return nil, err
	}

	total := floats.Sum(bands)
	if total <= 0 {
		for i := range bands {
			bands[i] = fallback
		}

		return bands, nil
	}

	floats.Scale(1/total, bands)

	return bands, nil
}
