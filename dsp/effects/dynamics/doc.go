// Package dynamics provides stereo-linked dynamics processors for
// offline mastering.
//
// Included processors:
//   - Compressor: feed-forward soft-knee compressor with a peak envelope
//     detector and log2-domain gain computation.
//   - Gate: downward expander used for noise reduction, with a range floor
//     and optional hold.
//
// Both processors detect the level as the maximum absolute sample across all
// channels of a frame and apply one common gain to every channel, which keeps
// the stereo image stable under gain reduction.
package dynamics
