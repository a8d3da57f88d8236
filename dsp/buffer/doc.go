// Package buffer provides a reusable planar multichannel block type and
// pool for allocation-friendly block processing. Processors accept raw
// [][]float64 slices; Block helps callers manage allocation and reuse in
// render loops.
package buffer
