// Package reverb provides convolution reverberation built on dsp/conv.
//
// [PlateIR] synthesizes a deterministic plate-like impulse response of
// squared-decay noise, one decorrelated response per channel.
// [ConvolutionReverb] applies such responses through partitioned
// convolution, one engine per channel.
package reverb
