package waveform

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

// Waveform is an immutable planar buffer of normalized samples.
type Waveform struct {
	sampleRate int
	channels   [][]float64
}

// New returns a Waveform holding a copy of channels. All channels must have
// the same length; at least one channel is required.
func New(sampleRate int, channels [][]float64) (*Waveform, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("waveform: sample rate must be > 0: %d: %w", sampleRate, core.ErrInvalidInput)
	}

	if _, err := core.FrameCount(channels); err != nil {
		return nil, fmt.Errorf("waveform: %w", err)
	}

	return &Waveform{
		sampleRate: sampleRate,
		channels:   core.CloneChannels(channels),
	}, nil
}

// FromInterleaved de-interleaves frames of numChannels samples. A trailing
// partial frame is an error.
func FromInterleaved(sampleRate, numChannels int, interleaved []float64) (*Waveform, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("waveform: sample rate must be > 0: %d: %w", sampleRate, core.ErrInvalidInput)
	}

	if numChannels <= 0 {
		return nil, fmt.Errorf("waveform: channel count must be > 0: %d: %w", numChannels, core.ErrInvalidInput)
	}

	if len(interleaved)%numChannels != 0 {
		return nil, fmt.Errorf("waveform: %d samples do not fill %d-channel frames: %w",
			len(interleaved), numChannels, core.ErrInvalidInput)
	}

	frames := len(interleaved) / numChannels
	channels := core.AllocChannels(numChannels, frames)

	for i := range frames {
		for ch := range numChannels {
			channels[ch][i] = interleaved[i*numChannels+ch]
		}
	}

	return &Waveform{sampleRate: sampleRate, channels: channels}, nil
}

// Silence returns a zero-filled Waveform.
func Silence(sampleRate, numChannels, length int) (*Waveform, error) {
	if numChannels <= 0 {
		return nil, fmt.Errorf("waveform: channel count must be > 0: %d: %w", numChannels, core.ErrInvalidInput)
	}

	if length < 0 {
		return nil, fmt.Errorf("waveform: length must be >= 0: %d: %w", length, core.ErrInvalidInput)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("waveform: sample rate must be > 0: %d: %w", sampleRate, core.ErrInvalidInput)
	}

	return &Waveform{sampleRate: sampleRate, channels: core.AllocChannels(numChannels, length)}, nil
}

// SampleRate returns the sample rate in Hz.
func (w *Waveform) SampleRate() int { return w.sampleRate }

// NumChannels returns the channel count.
func (w *Waveform) NumChannels() int { return len(w.channels) }

// Len returns the number of frames.
func (w *Waveform) Len() int {
	if len(w.channels) == 0 {
		return 0
	}

	return len(w.channels[0])
}

// Duration returns the playback length.
func (w *Waveform) Duration() time.Duration {
	return time.Duration(float64(w.Len()) / float64(w.sampleRate) * float64(time.Second))
}

// Channel returns a copy of channel ch, or nil when ch is out of range.
func (w *Waveform) Channel(ch int) []float64 {
	if ch < 0 || ch >= len(w.channels) {
		return nil
	}

	out := make([]float64, len(w.channels[ch]))
	copy(out, w.channels[ch])

	return out
}

// Channels returns a deep copy of all channels.
func (w *Waveform) Channels() [][]float64 {
	return core.CloneChannels(w.channels)
}

// View returns channel ch without copying, or nil when ch is out of range.
// The returned slice must not be modified.
func (w *Waveform) View(ch int) []float64 {
	if ch < 0 || ch >= len(w.channels) {
		return nil
	}

	return w.channels[ch]
}

// Interleaved returns the samples frame by frame.
func (w *Waveform) Interleaved() []float64 {
	n := w.Len()
	numChannels := len(w.channels)
	out := make([]float64, n*numChannels)

	for ch, samples := range w.channels {
		for i, v := range samples {
			out[i*numChannels+ch] = v
		}
	}

	return out
}

// Validate reports whether w is usable as analysis or render input: at
// least one channel and one frame.
func (w *Waveform) Validate() error {
	if w == nil {
		return fmt.Errorf("waveform: nil waveform: %w", core.ErrInvalidInput)
	}

	if len(w.channels) == 0 {
		return fmt.Errorf("waveform: no channels: %w", core.ErrInvalidInput)
	}

	if w.Len() == 0 {
		return fmt.Errorf("waveform: zero length: %w", core.ErrInvalidInput)
	}

	return nil
}
