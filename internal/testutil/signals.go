package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Stereo returns a decorrelated two-channel test program: a sine on the left
// and seeded noise on the right.
func Stereo(sampleRate float64, length int) [][]float64 {
	return [][]float64{
		DeterministicSine(440, sampleRate, 0.5, length),
		DeterministicNoise(1, 0.3, length),
	}
}

// Program returns a channels x length buffer of seeded noise mixed with a
// 220 Hz tone, with a different seed per channel.
func Program(sampleRate float64, channels, length int) [][]float64 {
	out := make([][]float64, channels)
	tone := DeterministicSine(220, sampleRate, 0.4, length)
	for ch := range out {
		noise := DeterministicNoise(int64(ch+1), 0.2, length)
		for i := range noise {
			noise[i] += tone[i]
		}
		out[ch] = noise
	}
	return out
}
