// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. [MultiChannel] applies one
// coefficient set to every channel of a planar block with per-channel state,
// which is how the equalizer and side-chain stages of a mastering graph run.
//
// This package provides the processing runtime only. Coefficient design
// (shelving, peaking and highpass responses) lives in dsp/filter/design.
package biquad
