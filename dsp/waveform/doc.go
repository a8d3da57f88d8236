// Package waveform provides the immutable multi-channel sample container
// that flows between analysis, rendering and encoding.
//
// A Waveform owns its samples. Constructors copy their input and accessors
// return copies, so a Waveform can be shared between concurrent renders.
package waveform
