// Package render runs an effect graph over a complete waveform offline.
//
// Rendering is block based and deterministic: every call instantiates its
// own processors, so concurrent renders of the same graph and input are
// safe and produce identical output.
package render
