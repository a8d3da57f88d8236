// Package design provides RBJ cookbook biquad coefficient designers.
//
// The functions produce coefficients consumable by dsp/filter/biquad:
// shelving and peaking responses for tonal balance and a highpass for
// side-chain band splitting. Corner frequencies at or above Nyquist, or a
// gain of exactly 0 dB, yield [Passthrough].
package design
