package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/effects/dynamics"
)

const msPerSecond = 1000.0

type compressorRuntime struct {
	fx *dynamics.Compressor
}

func newCompressorRuntime(ctx Context) (Runtime, error) {
	fx, err := dynamics.NewCompressor(ctx.SampleRate, ctx.Channels)
	if err != nil {
		return nil, err
	}

	return &compressorRuntime{fx: fx}, nil
}

func (r *compressorRuntime) Configure(_ Context, p Params) error {
	threshold, err := p.Require("thresholdDB")
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor threshold: %w", err)
	}

	err = r.fx.SetThreshold(threshold)
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor threshold: %w", err)
	}

	err = r.fx.SetRatio(p.GetNum("ratio", r.fx.Ratio()))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor ratio: %w", err)
	}

	err = r.fx.SetKnee(p.GetNum("kneeDB", r.fx.Knee()))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor knee: %w", err)
	}

	err = r.fx.SetAttack(p.GetNum("attackSec", r.fx.Attack()/msPerSecond) * msPerSecond)
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor attack: %w", err)
	}

	err = r.fx.SetRelease(p.GetNum("releaseSec", r.fx.Release()/msPerSecond) * msPerSecond)
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor release: %w", err)
	}

	return nil
}

func (r *compressorRuntime) Process(block [][]float64) error {
	r.fx.ProcessBlock(block)
	return nil
}

type gateRuntime struct {
	fx *dynamics.Gate
}

func newGateRuntime(ctx Context) (Runtime, error) {
	fx, err := dynamics.NewGate(ctx.SampleRate, ctx.Channels)
	if err != nil {
		return nil, err
	}

	return &gateRuntime{fx: fx}, nil
}

func (r *gateRuntime) Configure(_ Context, p Params) error {
	threshold, err := p.Require("thresholdDB")
	if err != nil {
		return fmt.Errorf("effectchain: configure gate threshold: %w", err)
	}

	err = r.fx.SetThreshold(threshold)
	if err != nil {
		return fmt.Errorf("effectchain: configure gate threshold: %w", err)
	}

	err = r.fx.SetRatio(p.GetNum("ratio", r.fx.Ratio()))
	if err != nil {
		return fmt.Errorf("effectchain: configure gate ratio: %w", err)
	}

	err = r.fx.SetAttack(p.GetNum("attackSec", 0.005) * msPerSecond)
	if err != nil {
		return fmt.Errorf("effectchain: configure gate attack: %w", err)
	}

	err = r.fx.SetRelease(p.GetNum("releaseSec", 0.1) * msPerSecond)
	if err != nil {
		return fmt.Errorf("effectchain: configure gate release: %w", err)
	}

	err = r.fx.SetRange(p.GetNum("rangeDB", r.fx.Range()))
	if err != nil {
		return fmt.Errorf("effectchain: configure gate range: %w", err)
	}

	err = r.fx.SetKnee(p.GetNum("kneeDB", 0))
	if err != nil {
		return fmt.Errorf("effectchain: configure gate knee: %w", err)
	}

	err = r.fx.SetHold(p.GetNum("holdSec", 0) * msPerSecond)
	if err != nil {
		return fmt.Errorf("effectchain: configure gate hold: %w", err)
	}

	return nil
}

func (r *gateRuntime) Process(block [][]float64) error {
	r.fx.ProcessBlock(block)
	return nil
}
