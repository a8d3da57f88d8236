package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/conv"
)

// DefaultPartitionSize is the convolution partition length in samples.
const DefaultPartitionSize = 1024

// ConvolutionReverb convolves each channel with its own impulse response.
//
// The output is dry*x + wet*(x*h). Defaults are wet=1, dry=0, which suits
// use as a parallel send. The wet path lags by [ConvolutionReverb.Latency]
// samples.
type ConvolutionReverb struct {
	engines []*conv.Partitioned
	wet     float64
	dry     float64
	buf     []float64
}

// NewConvolutionReverb creates a reverb with one engine per impulse
// response. partitionSize must be a power of two.
func NewConvolutionReverb(irs [][]float64, partitionSize int) (*ConvolutionReverb, error) {
	if len(irs) == 0 {
		return nil, errors.New("reverb: no impulse responses")
	}

	engines := make([]*conv.Partitioned, len(irs))
	for ch, ir := range irs {
		engine, err := conv.NewPartitioned(ir, partitionSize)
		if err != nil {
			return nil, fmt.Errorf("reverb: channel %d convolution engine: %w", ch, err)
		}

		engines[ch] = engine
	}

	return &ConvolutionReverb{
		engines: engines,
		wet:     1,
		dry:     0,
	}, nil
}

// SetWetDry sets the wet and dry mix levels.
func (r *ConvolutionReverb) SetWetDry(wet, dry float64) {
	r.wet = wet
	r.dry = dry
}

// Channels returns the number of channels the reverb was built for.
func (r *ConvolutionReverb) Channels() int { return len(r.engines) }

// ProcessBlock applies the reverb to a planar block in place. Channels
// beyond the configured count are left untouched.
func (r *ConvolutionReverb) ProcessBlock(block [][]float64) error {
	for ch := range min(len(block), len(r.engines)) {
		x := block[ch]
		if len(r.buf) < len(x) {
			r.buf = make([]float64, len(x))
		}

		out := r.buf[:len(x)]
		if err := r.engines[ch].ProcessBlock(x, out); err != nil {
			return fmt.Errorf("reverb: convolution engine: %w", err)
		}

		for i := range x {
			x[i] = r.dry*x[i] + r.wet*out[i]
		}
	}

	return nil
}

// Reset clears convolution state.
func (r *ConvolutionReverb) Reset() {
	for _, e := range r.engines {
		e.Reset()
	}
}

// Latency returns the wet path latency in samples.
func (r *ConvolutionReverb) Latency() int {
	if len(r.engines) == 0 {
		return 0
	}

	return r.engines[0].Latency()
}
