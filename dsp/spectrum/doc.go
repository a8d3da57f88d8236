// Package spectrum provides FFT-based power spectrum estimation.
//
// [Analyzer] computes a Welch-averaged one-sided power spectrum with a
// fixed frame size, window and hop, using algo-fft for the transform and
// algo-vecmath for the squared-magnitude kernel. Bin i of a spectrum with
// B bins represents frequency i/B times Nyquist.
package spectrum
