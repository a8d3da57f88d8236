package waveform

import (
	"errors"
	"testing"
	"time"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

func TestNewCopiesInput(t *testing.T) {
	src := [][]float64{{0.1, 0.2}, {0.3, 0.4}}

	w, err := New(44100, src)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	src[0][0] = 9
	if got := w.View(0)[0]; got != 0.1 {
		t.Fatalf("View(0)[0] = %v, want 0.1 after mutating the source", got)
	}

	ch := w.Channel(1)
	ch[0] = 9
	if got := w.View(1)[0]; got != 0.3 {
		t.Fatalf("View(1)[0] = %v, want 0.3 after mutating a Channel copy", got)
	}

	all := w.Channels()
	all[1][1] = 9
	if got := w.View(1)[1]; got != 0.4 {
		t.Fatalf("View(1)[1] = %v, want 0.4 after mutating Channels copy", got)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		channels [][]float64
	}{
		{"zero rate", 0, [][]float64{{0}}},
		{"negative rate", -44100, [][]float64{{0}}},
		{"no channels", 44100, nil},
		{"ragged", 44100, [][]float64{{0, 0}, {0}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.rate, tc.channels)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Fatalf("New error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	w, err := Silence(48000, 2, 24000)
	if err != nil {
		t.Fatalf("Silence error: %v", err)
	}

	if w.SampleRate() != 48000 || w.NumChannels() != 2 || w.Len() != 24000 {
		t.Fatalf("got rate=%d channels=%d len=%d", w.SampleRate(), w.NumChannels(), w.Len())
	}

	if w.Duration() != 500*time.Millisecond {
		t.Fatalf("Duration = %v, want 500ms", w.Duration())
	}

	if w.Channel(2) != nil || w.View(-1) != nil {
		t.Fatal("out-of-range channel access must return nil")
	}

	for _, v := range w.View(1) {
		if v != 0 {
			t.Fatalf("Silence sample = %v, want 0", v)
		}
	}
}

func TestInterleavedRoundTrip(t *testing.T) {
	in := []float64{1, -1, 0.5, -0.5, 0.25, -0.25}

	w, err := FromInterleaved(8000, 2, in)
	if err != nil {
		t.Fatalf("FromInterleaved error: %v", err)
	}

	if w.Len() != 3 {
		t.Fatalf("Len = %d, want 3", w.Len())
	}

	if got := w.View(1)[2]; got != -0.25 {
		t.Fatalf("View(1)[2] = %v, want -0.25", got)
	}

	out := w.Interleaved()
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("Interleaved[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestFromInterleavedPartialFrame(t *testing.T) {
	if _, err := FromInterleaved(8000, 2, []float64{1, 2, 3}); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}

	if _, err := FromInterleaved(8000, 0, nil); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestValidate(t *testing.T) {
	var nilWave *Waveform
	if err := nilWave.Validate(); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("nil Validate = %v, want ErrInvalidInput", err)
	}

	empty, err := Silence(44100, 1, 0)
	if err != nil {
		t.Fatalf("Silence error: %v", err)
	}

	if err := empty.Validate(); !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("empty Validate = %v, want ErrInvalidInput", err)
	}

	one, err := New(44100, [][]float64{{0.5}})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := one.Validate(); err != nil {
		t.Fatalf("Validate = %v, want nil", err)
	}
}
