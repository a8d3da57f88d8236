// Package wav encodes waveforms as 16-bit PCM RIFF/WAVE and decodes
// integer PCM WAVE files into waveforms.
//
// The encoder writes the canonical 44-byte header followed by interleaved
// little-endian int16 samples. Its output depends only on the input
// samples, so it is bit-exact across platforms.
package wav
