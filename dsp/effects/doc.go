// Package effects provides the memoryless mastering effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-mastering/dsp/effects/dynamics
//   - github.com/cwbudde/algo-mastering/dsp/effects/reverb
//   - github.com/cwbudde/algo-mastering/dsp/effects/spatial
//
// Effects remaining in this package:
//   - Saturator: normalized tanh waveshaper with amount-controlled drive.
//   - Gain: linear gain on planar blocks.
//
// All kernels process planar multichannel blocks in place and allocate
// nothing on the hot path.
package effects
