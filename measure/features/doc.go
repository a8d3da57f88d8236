// Package features extracts the level and spectral descriptors that drive
// reference-matched mastering: RMS, peak and standard deviation of the
// first channel, its spectral centroid, and the share of spectral energy in
// the low (<250 Hz), mid (250 Hz to 4 kHz) and high (>4 kHz) bands.
//
// Extraction is pure and deterministic; the same waveform always yields
// the same [FeatureSet].
package features
