package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-mastering/stats/frequency"
)

func ExampleCalculate() {
	power := []float64{0, 1, 2, 1}
	s := frequencystats.Calculate(power, 8000)
	fmt.Printf("centroid=%.0f rolloff=%.0f\n", s.Centroid, s.Rolloff)

	// Output:
	// centroid=2000 rolloff=3000
}

func ExampleBandFractions() {
	power := []float64{1, 1, 1, 1, 2, 2, 1, 1}
	bands, _ := frequencystats.BandFractions(power, 16000, 0.333, 2000, 5000)
	fmt.Printf("%.1f %.1f %.1f\n", bands[0], bands[1], bands[2])

	// Output:
	// 0.2 0.4 0.4
}
