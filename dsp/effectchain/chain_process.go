package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/buffer"
	"github.com/cwbudde/algo-mastering/dsp/core"
)

// Process applies the effect chain to the planar block in place. The block
// must have exactly Context.Channels channels of equal length.
func (c *Chain) Process(block [][]float64) error {
	g := c.graph
	if g == nil {
		return fmt.Errorf("effectchain: %w", ErrNoGraph)
	}

	if len(block) != c.ctx.Channels {
		return fmt.Errorf("effectchain: block has %d channels, chain has %d: %w",
			len(block), c.ctx.Channels, core.ErrUnsupportedChannelLayout)
	}

	frames, err := core.FrameCount(block)
	if err != nil {
		return fmt.Errorf("effectchain: %w", err)
	}

	if frames == 0 {
		return nil
	}

	buffers := c.prepareBuffers(block, frames, g)

	for _, id := range g.Order {
		if id == InputNodeID {
			continue
		}

		err := c.processNode(id, g, buffers)
		if err != nil {
			return err
		}
	}

	buffers[OutputNodeID].CopyTo(block)

	return nil
}

func (c *Chain) prepareBuffers(block [][]float64, frames int, g *compiledGraph) map[string]*buffer.Block {
	if c.outBuf == nil {
		c.outBuf = make(map[string]*buffer.Block, len(g.Nodes))
	}

	for _, id := range g.Order {
		if id == InputNodeID {
			c.outBuf[id] = buffer.FromChannels(block)
			continue
		}

		buf := c.outBuf[id]
		if buf == nil {
			buf = c.pool.Get(c.ctx.Channels, frames)
			c.outBuf[id] = buf
		}

		buf.Resize(c.ctx.Channels, frames)
	}

	if c.mixBuf == nil {
		c.mixBuf = c.pool.Get(c.ctx.Channels, frames)
	}

	c.mixBuf.Resize(c.ctx.Channels, frames)

	return c.outBuf
}

func (c *Chain) processNode(id string, g *compiledGraph, buffers map[string]*buffer.Block) error {
	node := g.Nodes[id]
	dst := buffers[id]

	c.mixParentEdgesInto(node, g.Incoming[id], dst, buffers)

	if id == OutputNodeID || node.Bypassed || isStructuralNodeType(node.Type) {
		return nil
	}

	if !node.Arity.Accepts(c.ctx.Channels) {
		return nil
	}

	rt := c.nodes[id]
	if rt == nil {
		return nil
	}

	err := rt.Process(dst.Channels())
	if err != nil {
		return fmt.Errorf("effectchain: process node %q (%s): %w", id, node.Type, err)
	}

	return nil
}

// mixParentEdgesInto gathers the parents of a node into dst. A node
// without parents reads silence. Sum nodes add their inputs; any other
// node with several parents receives their average.
func (c *Chain) mixParentEdgesInto(node Params, parents []Edge, dst *buffer.Block, buffers map[string]*buffer.Block) {
	if len(parents) == 0 {
		dst.Zero()
		return
	}

	if len(parents) == 1 {
		dst.CopyFrom(buffers[parents[0].From].Channels())
		return
	}

	mix := c.mixBuf
	mix.Zero()

	for _, edge := range parents {
		mix.AddFrom(buffers[edge.From].Channels())
	}

	if node.Type != NodeTypeSum {
		mix.Scale(1.0 / float64(len(parents)))
	}

	dst.CopyFrom(mix.Channels())
}
