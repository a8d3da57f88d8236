package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
)

const (
	// HeaderSize is the length of the canonical PCM header.
	HeaderSize = 44

	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8
	pcmFormat      = 1
	fmtChunkSize   = 16

	negScale = 32768.0
	posScale = 32767.0
)

// Encode returns the 16-bit PCM WAVE encoding of the planar channels.
// Samples are clamped to [-1, 1]; negative values scale by 32768 and
// non-negative values by 32767, rounded to nearest.
//
// No channels, channels of unequal length, or a non-positive sample rate
// yield core.ErrInvalidInput.
func Encode(sampleRate int, channels [][]float64) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: sample rate must be positive: %d: %w", sampleRate, core.ErrInvalidInput)
	}

	frames, err := core.FrameCount(channels)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	numCh := len(channels)
	blockAlign := numCh * bytesPerSample

	dataSize := uint64(frames) * uint64(blockAlign)
	if dataSize > math.MaxUint32-(HeaderSize-8) {
		return nil, fmt.Errorf("wav: %d data bytes exceed the RIFF size limit: %w", dataSize, core.ErrInvalidInput)
	}

	out := make([]byte, HeaderSize+int(dataSize))
	putHeader(out[:HeaderSize], sampleRate, numCh, uint32(dataSize))

	pos := HeaderSize
	for i := range frames {
		for ch := range numCh {
			binary.LittleEndian.PutUint16(out[pos:], uint16(Quantize(channels[ch][i])))
			pos += bytesPerSample
		}
	}

	return out, nil
}

// EncodeWaveform encodes w with [Encode].
func EncodeWaveform(w *waveform.Waveform) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("wav: nil waveform: %w", core.ErrInvalidInput)
	}

	return Encode(w.SampleRate(), w.Channels())
}

// Write encodes w and writes it to dst.
func Write(dst io.Writer, w *waveform.Waveform) error {
	data, err := EncodeWaveform(w)
	if err != nil {
		return err
	}

	if _, err := dst.Write(data); err != nil {
		return fmt.Errorf("wav: write: %w", err)
	}

	return nil
}

// Quantize maps a sample to int16. Non-finite samples map to 0.
func Quantize(x float64) int16 {
	if !core.IsFinite(x) {
		return 0
	}

	x = core.Clamp(x, -1, 1)
	if x < 0 {
		return int16(math.Round(x * negScale))
	}

	return int16(math.Round(x * posScale))
}

func putHeader(h []byte, sampleRate, numCh int, dataSize uint32) {
	byteRate := sampleRate * numCh * bytesPerSample
	blockAlign := numCh * bytesPerSample

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], dataSize+HeaderSize-8)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(h[22:24], uint16(numCh))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)
}
