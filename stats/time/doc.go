// Package time provides time-domain level statistics (RMS, peak, mean,
// standard deviation) of single-channel sample buffers.
package time
