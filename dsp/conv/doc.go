// Package conv provides convolution primitives for long impulse responses.
//
// [Direct] computes a plain time-domain linear convolution and serves as the
// reference for short kernels. [Partitioned] implements uniformly
// partitioned overlap-save convolution on top of algo-fft: the kernel is
// split into equal partitions whose spectra are multiplied against a
// frequency-domain delay line of past input blocks. The output is delayed by
// exactly one partition.
//
//	p, err := conv.NewPartitioned(ir, 1024)
//	err = p.ProcessBlock(in, out)
package conv
