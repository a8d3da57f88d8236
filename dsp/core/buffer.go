package core

import "fmt"

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])
	return n
}

// AllocChannels allocates channels zeroed buffers of n samples each.
func AllocChannels(channels, n int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, n)
	}
	return out
}

// CloneChannels returns a deep copy of a planar multichannel buffer.
func CloneChannels(src [][]float64) [][]float64 {
	out := make([][]float64, len(src))
	for ch, s := range src {
		out[ch] = append([]float64(nil), s...)
	}
	return out
}

// ZeroChannels clears every channel of a planar buffer.
func ZeroChannels(buf [][]float64) {
	for _, ch := range buf {
		Zero(ch)
	}
}

// FrameCount validates that all channels share a length and returns it.
func FrameCount(channels [][]float64) (int, error) {
	if len(channels) == 0 {
		return 0, fmt.Errorf("no channels: %w", ErrInvalidInput)
	}

	n := len(channels[0])
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != n {
			return 0, fmt.Errorf("channel %d has %d frames, channel 0 has %d: %w",
				ch, len(channels[ch]), n, ErrInvalidInput)
		}
	}

	return n, nil
}

// AllFinite reports whether every sample of every channel is finite.
func AllFinite(channels [][]float64) bool {
	for _, ch := range channels {
		for _, v := range ch {
			if !IsFinite(v) {
				return false
			}
		}
	}
	return true
}
