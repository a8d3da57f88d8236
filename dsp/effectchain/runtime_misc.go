package effectchain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/effects"
	"github.com/cwbudde/algo-mastering/dsp/effects/reverb"
	"github.com/cwbudde/algo-mastering/dsp/effects/spatial"
)

type gainRuntime struct {
	fx *effects.Gain
}

func (r *gainRuntime) Configure(_ Context, p Params) error {
	r.fx = effects.NewGain(p.GetNum("factor", 1))
	return nil
}

func (r *gainRuntime) Process(block [][]float64) error {
	r.fx.ProcessBlock(block)
	return nil
}

type saturatorRuntime struct {
	fx *effects.Saturator
}

func (r *saturatorRuntime) Configure(_ Context, p Params) error {
	amount, err := p.Require("amount")
	if err != nil {
		return fmt.Errorf("effectchain: configure saturator: %w", err)
	}

	fx, err := effects.NewSaturator(amount)
	if err != nil {
		return fmt.Errorf("effectchain: configure saturator: %w", err)
	}

	r.fx = fx

	return nil
}

func (r *saturatorRuntime) Process(block [][]float64) error {
	r.fx.ProcessBlock(block)
	return nil
}

type widenerRuntime struct {
	fx *spatial.MidSideWidener
}

func (r *widenerRuntime) Configure(_ Context, p Params) error {
	width, err := p.Require("width")
	if err != nil {
		return fmt.Errorf("effectchain: configure widener: %w", err)
	}

	fx, err := spatial.NewMidSideWidener(width)
	if err != nil {
		return fmt.Errorf("effectchain: configure widener: %w", err)
	}

	r.fx = fx

	return nil
}

func (r *widenerRuntime) Process(block [][]float64) error {
	r.fx.ProcessBlock(block)
	return nil
}

type plateReverbRuntime struct {
	fx *reverb.ConvolutionReverb
}

func (r *plateReverbRuntime) Configure(ctx Context, p Params) error {
	decay := p.GetNum("decaySec", reverb.DefaultPlateDecay)
	seed, err := plateSeed(p)
	if err != nil {
		return fmt.Errorf("effectchain: configure plate reverb: %w", err)
	}

	irs, err := reverb.PlateIR(ctx.SampleRate, ctx.Channels, decay, seed)
	if err != nil {
		return fmt.Errorf("effectchain: configure plate reverb: %w", err)
	}

	fx, err := reverb.NewConvolutionReverb(irs, reverb.DefaultPartitionSize)
	if err != nil {
		return fmt.Errorf("effectchain: configure plate reverb: %w", err)
	}

	r.fx = fx

	return nil
}

func (r *plateReverbRuntime) Process(block [][]float64) error {
	return r.fx.ProcessBlock(block)
}

func (r *plateReverbRuntime) Latency() int {
	return r.fx.Latency()
}

// plateSeed reads the seed parameter, which must be an integer float64 can
// hold exactly.
func plateSeed(p Params) (int64, error) {
	if _, ok := p.Num["seed"]; !ok {
		return reverb.DefaultPlateSeed, nil
	}

	v, err := p.Require("seed")
	if err != nil {
		return 0, err
	}

	if v != math.Trunc(v) || math.Abs(v) > MaxPlateSeed {
		return 0, fmt.Errorf("%s: seed must be an integer in [-2^53, 2^53]: %g: %w",
			p.Type, v, core.ErrInvalidParameter)
	}

	return int64(v), nil
}
