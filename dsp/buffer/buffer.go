package buffer

import (
	"github.com/cwbudde/algo-mastering/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Block is a planar multichannel buffer with reuse-friendly semantics.
// Processors accept raw [][]float64; use Channels() to bridge.
type Block struct {
	channels [][]float64
}

// New returns a zero-filled Block of numChannels x frames samples.
func New(numChannels, frames int) *Block {
	b := &Block{}
	b.Resize(numChannels, frames)

	return b
}

// FromChannels wraps existing channel slices without copying.
// Mutations to the slices are visible through the Block and vice versa.
func FromChannels(channels [][]float64) *Block {
	return &Block{channels: channels}
}

// Channels returns the underlying channel slices.
func (b *Block) Channels() [][]float64 {
	return b.channels
}

// NumChannels returns the channel count.
func (b *Block) NumChannels() int {
	return len(b.channels)
}

// Frames returns the number of samples per channel.
func (b *Block) Frames() int {
	if len(b.channels) == 0 {
		return 0
	}

	return len(b.channels[0])
}

// Resize sets the shape to numChannels x frames, reusing existing capacity
// when possible. Newly exposed samples are zeroed.
func (b *Block) Resize(numChannels, frames int) {
	if numChannels < 0 {
		numChannels = 0
	}

	if frames < 0 {
		frames = 0
	}

	if cap(b.channels) < numChannels {
		grown := make([][]float64, numChannels)
		copy(grown, b.channels)
		b.channels = grown
	}

	b.channels = b.channels[:numChannels]

	for ch, s := range b.channels {
		oldLen := len(s)
		if frames <= cap(s) {
			s = s[:frames]
		} else {
			grown := make([]float64, frames)
			copy(grown, s)
			s = grown
		}

		// Newly exposed elements may hold stale data from earlier use.
		if oldLen < frames {
			core.Zero(s[oldLen:])
		}

		b.channels[ch] = s
	}
}

// Zero sets all samples to 0.
func (b *Block) Zero() {
	core.ZeroChannels(b.channels)
}

// CopyFrom overwrites b with src. Channels and frames beyond the shorter
// of the two shapes are left untouched.
func (b *Block) CopyFrom(src [][]float64) {
	for ch := range min(len(b.channels), len(src)) {
		core.CopyInto(b.channels[ch], src[ch])
	}
}

// CopyTo copies b into dst, limited to the shorter of the two shapes.
func (b *Block) CopyTo(dst [][]float64) {
	for ch := range min(len(b.channels), len(dst)) {
		core.CopyInto(dst[ch], b.channels[ch])
	}
}

// AddFrom accumulates src into b sample by sample.
func (b *Block) AddFrom(src [][]float64) {
	for ch := range min(len(b.channels), len(src)) {
		dst := b.channels[ch]
		n := min(len(dst), len(src[ch]))
		vecmath.AddBlockInPlace(dst[:n], src[ch][:n])
	}
}

// Scale multiplies every sample by s.
func (b *Block) Scale(s float64) {
	for _, ch := range b.channels {
		vecmath.ScaleBlock(ch, ch, s)
	}
}

// Copy returns a deep copy of the block.
func (b *Block) Copy() *Block {
	out := New(b.NumChannels(), b.Frames())
	out.CopyFrom(b.channels)

	return out
}
