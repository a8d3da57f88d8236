package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/filter/biquad"
	"github.com/cwbudde/algo-mastering/dsp/filter/design"
)

// filterRuntime runs one RBJ biquad section per channel.
type filterRuntime struct {
	typ string
	mc  *biquad.MultiChannel
}

func (r *filterRuntime) Configure(ctx Context, p Params) error {
	freq, err := p.RequirePositive("freqHz")
	if err != nil {
		return fmt.Errorf("effectchain: configure %s: %w", r.typ, err)
	}

	q, err := p.RequirePositive("q")
	if err != nil {
		return fmt.Errorf("effectchain: configure %s: %w", r.typ, err)
	}

	var coeffs biquad.Coefficients

	if r.typ == TypeHighpass {
		coeffs = design.Highpass(freq, q, ctx.SampleRate)
	} else {
		gainDB, err := p.Require("gainDB")
		if err != nil {
			return fmt.Errorf("effectchain: configure %s: %w", r.typ, err)
		}

		switch r.typ {
		case TypeLowShelf:
			coeffs = design.LowShelf(freq, gainDB, q, ctx.SampleRate)
		case TypeHighShelf:
			coeffs = design.HighShelf(freq, gainDB, q, ctx.SampleRate)
		default:
			coeffs = design.Peak(freq, gainDB, q, ctx.SampleRate)
		}
	}

	r.mc = biquad.NewMultiChannel(coeffs, ctx.Channels)

	return nil
}

func (r *filterRuntime) Process(block [][]float64) error {
	r.mc.ProcessBlock(block)
	return nil
}

// Coefficients returns the designed section coefficients.
func (r *filterRuntime) Coefficients() biquad.Coefficients {
	return r.mc.Coefficients()
}
