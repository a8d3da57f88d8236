// Package loudness implements ITU-R BS.1770 / EBU R128 loudness metering:
// K-weighting, momentary and short-term windows and gated integrated
// loudness, plus a one-call offline [Measure].
package loudness
