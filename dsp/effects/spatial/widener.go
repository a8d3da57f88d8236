package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

const (
	minWidenerWidth = 0.0
	maxWidenerWidth = 2.0
)

// MidSideWidener adjusts the width of a stereo image.
//
// Left and right are encoded into mid (L+R)/2 and side (L-R)/2, the side
// component is scaled by the width factor and the result is decoded back:
// L' = mid + side*width, R' = mid - side*width. A width of 0 collapses to
// mono, 1 leaves the signal bit-identical and 2 doubles the side level.
//
// Blocks with a channel count other than two pass through unchanged.
type MidSideWidener struct {
	width float64
}

// NewMidSideWidener returns a widener for width in [0, 2].
func NewMidSideWidener(width float64) (*MidSideWidener, error) {
	if width < minWidenerWidth || width > maxWidenerWidth || !core.IsFinite(width) {
		return nil, fmt.Errorf("stereo widener width must be in [%g, %g]: %f: %w",
			minWidenerWidth, maxWidenerWidth, width, core.ErrInvalidParameter)
	}

	return &MidSideWidener{width: width}, nil
}

// Width returns the stereo width factor.
func (w *MidSideWidener) Width() float64 { return w.width }

// ProcessStereo widens a single left/right sample pair.
func (w *MidSideWidener) ProcessStereo(left, right float64) (float64, float64) {
	if w.width == 1 {
		return left, right
	}

	mid := (left + right) * 0.5
	side := (left - right) * 0.5 * w.width

	return mid + side, mid - side
}

// ProcessBlock widens a planar stereo block in place.
func (w *MidSideWidener) ProcessBlock(block [][]float64) {
	if len(block) != 2 || w.width == 1 {
		return
	}

	left, right := block[0], block[1]
	for i := range left {
		left[i], right[i] = w.ProcessStereo(left[i], right[i])
	}
}
