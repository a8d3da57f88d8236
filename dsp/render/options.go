package render

import (
	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/effectchain"
)

type config struct {
	core.ProcessorConfig
	registry *effectchain.Registry
}

// Option configures [Offline].
type Option func(*config)

// WithBlockSize sets the render quantum in frames. Non-positive values are
// ignored.
func WithBlockSize(frames int) Option {
	return func(cfg *config) {
		core.WithBlockSize(frames)(&cfg.ProcessorConfig)
	}
}

// WithRegistry selects the registry used to instantiate graph nodes.
// The default is [effectchain.DefaultRegistry].
func WithRegistry(r *effectchain.Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.registry = r
		}
	}
}

func applyOptions(opts ...Option) config {
	cfg := config{ProcessorConfig: core.DefaultProcessorConfig()}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
