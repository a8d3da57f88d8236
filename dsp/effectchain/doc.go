// Package effectchain composes processing stages into an acyclic graph and
// runs it block by block.
//
// A [Stage] is an immutable descriptor (type and numeric parameters). A
// [Graph] wires stages between a reserved input and output node, with
// explicit split (fan-out) and sum (fan-in) nodes for parallel paths. A
// [Chain] compiles a graph in topological order and owns the per-render
// state: one runtime per stage built from a [Registry], plus block buffers.
package effectchain
