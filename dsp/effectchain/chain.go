package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/buffer"
	"github.com/cwbudde/algo-mastering/dsp/core"
)

// Chain owns the processing state of one graph: node runtimes and
// per-node block buffers. A Chain is not safe for concurrent use; build
// one per render.
type Chain struct {
	ctx      Context
	registry *Registry

	graph *compiledGraph
	nodes map[string]Runtime

	pool   *buffer.Pool
	outBuf map[string]*buffer.Block
	mixBuf *buffer.Block
}

// New creates a Chain with the given context and registry. A nil registry
// selects [DefaultRegistry].
func New(ctx Context, registry *Registry) *Chain {
	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Chain{
		ctx:      ctx,
		registry: registry,
		nodes:    make(map[string]Runtime),
		pool:     buffer.NewPool(),
	}
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// HasGraph returns true if the chain has a loaded graph.
func (c *Chain) HasGraph() bool {
	return c.graph != nil
}

// Load compiles the graph topology and instantiates a fresh runtime for
// every stage node. On error the previously loaded graph is kept.
func (c *Chain) Load(g *Graph) error {
	if c.ctx.Channels < 1 {
		return fmt.Errorf("effectchain: %d channels: %w", c.ctx.Channels, core.ErrUnsupportedChannelLayout)
	}

	if !(c.ctx.SampleRate > 0) || !core.IsFinite(c.ctx.SampleRate) {
		return fmt.Errorf("effectchain: sample rate must be positive: %f: %w", c.ctx.SampleRate, core.ErrInvalidParameter)
	}

	if g == nil {
		return fmt.Errorf("effectchain: %w", ErrNoGraph)
	}

	graph, err := g.compile()
	if err != nil {
		return err
	}

	nodes := make(map[string]Runtime, len(graph.Nodes))

	for _, id := range graph.Order {
		node := graph.Nodes[id]
		if isStructuralNodeType(node.Type) {
			continue
		}

		rt, err := c.registry.Instantiate(c.ctx, node)
		if err != nil {
			return err
		}

		nodes[id] = rt
	}

	c.Reset()
	c.graph = graph
	c.nodes = nodes

	return nil
}

// NodeRuntime returns the Runtime for the given node ID, or nil.
func (c *Chain) NodeRuntime(nodeID string) Runtime {
	return c.nodes[nodeID]
}

// Latency returns the largest runtime latency on any path, in samples.
func (c *Chain) Latency() int {
	if c.graph == nil {
		return 0
	}

	delay := make(map[string]int, len(c.graph.Order))
	for _, id := range c.graph.Order {
		d := 0
		for _, edge := range c.graph.Incoming[id] {
			d = max(d, delay[edge.From])
		}

		if l, ok := c.nodes[id].(Latency); ok {
			d += l.Latency()
		}

		delay[id] = d
	}

	return delay[OutputNodeID]
}

// Reset drops the loaded graph, its runtimes and processing buffers.
func (c *Chain) Reset() {
	for id, b := range c.outBuf {
		if id != InputNodeID {
			c.pool.Put(b)
		}
	}

	c.pool.Put(c.mixBuf)

	c.graph = nil
	c.nodes = make(map[string]Runtime)
	c.outBuf = nil
	c.mixBuf = nil
}
