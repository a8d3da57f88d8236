// Package frequency provides descriptors of one-sided power spectra:
// centroid, spread, flatness, rolloff and band energy fractions.
package frequency
