package wav

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	gowav "github.com/go-audio/wav"
)

// Decode reads an integer PCM WAVE stream (16, 24 or 32 bits) into a
// waveform. Samples are normalised by 2^(bitDepth-1).
func Decode(r io.ReadSeeker) (*waveform.Waveform, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("wav: not a valid WAVE stream: %w", core.ErrInvalidInput)
	}

	if d.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("wav: unsupported audio format %d: %w", d.WavAudioFormat, core.ErrInvalidInput)
	}

	bitDepth := int(d.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("wav: unsupported bit depth %d: %w", bitDepth, core.ErrInvalidInput)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: read PCM data: %w", err)
	}

	numCh := int(d.NumChans)
	if numCh < 1 {
		return nil, fmt.Errorf("wav: %d channels: %w", numCh, core.ErrInvalidInput)
	}

	frames := len(buf.Data) / numCh
	scale := 1 / float64(int64(1)<<(bitDepth-1))

	channels := core.AllocChannels(numCh, frames)
	for i := range frames {
		base := i * numCh
		for ch := range numCh {
			channels[ch][i] = float64(buf.Data[base+ch]) * scale
		}
	}

	w, err := waveform.New(int(d.SampleRate), channels)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return w, nil
}
