package effectchain

// Runtime is the per-node processing and configuration contract.
//
// Process transforms a planar block in place. The block always has
// Context.Channels channels of equal length.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block [][]float64) error
}

// Latency is an optional interface for runtimes that delay their output.
type Latency interface {
	Latency() int
}
