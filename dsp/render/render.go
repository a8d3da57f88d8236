package render

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/effectchain"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
)

// Offline renders target through g and returns a new waveform with the
// same sample rate, length and channel count.
//
// An invalid target yields core.ErrInvalidInput. A graph whose declared
// output arity differs from the target's channel count yields
// core.ErrUnsupportedChannelLayout. Failure to instantiate or run a node, or
// non-finite output, yields core.ErrRenderFailure wrapping the cause.
func Offline(g *effectchain.Graph, target *waveform.Waveform, opts ...Option) (*waveform.Waveform, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	cfg := applyOptions(opts...)
	core.WithSampleRate(float64(target.SampleRate()))(&cfg.ProcessorConfig)

	ctx := effectchain.Context{
		SampleRate: cfg.SampleRate,
		Channels:   target.NumChannels(),
	}

	chain := effectchain.New(ctx, cfg.registry)
	if err := chain.Load(g); err != nil {
		return nil, fmt.Errorf("render: %w: %w", core.ErrRenderFailure, err)
	}

	outChannels, err := g.OutputChannels(ctx.Channels)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	if outChannels != ctx.Channels {
		return nil, fmt.Errorf("render: graph maps %d channels to %d: %w",
			ctx.Channels, outChannels, core.ErrUnsupportedChannelLayout)
	}

	out := target.Channels()
	frames := target.Len()
	block := make([][]float64, len(out))

	for start := 0; start < frames; start += cfg.BlockSize {
		end := min(start+cfg.BlockSize, frames)
		for ch := range out {
			block[ch] = out[ch][start:end]
		}

		if err := chain.Process(block); err != nil {
			return nil, fmt.Errorf("render: frames %d..%d: %w: %w", start, end, core.ErrRenderFailure, err)
		}
	}

	if !core.AllFinite(out) {
		return nil, fmt.Errorf("render: non-finite output: %w", core.ErrRenderFailure)
	}

	rendered, err := waveform.New(target.SampleRate(), out)
	if err != nil {
		return nil, fmt.Errorf("render: %w: %w", core.ErrRenderFailure, err)
	}

	return rendered, nil
}
