package mastering

import (
	"io"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/sirupsen/logrus"
)

// Option configures a [Master].
type Option func(*Master)

// WithLogger sets the logger for pipeline progress. The default discards
// all output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Master) {
		if l != nil {
			m.log = l
		}
	}
}

// WithBlockSize sets the render quantum in frames.
func WithBlockSize(frames int) Option {
	return func(m *Master) {
		if frames > 0 {
			m.blockSize = frames
		}
	}
}

// WithEpsilon sets the floor applied to the target RMS in the gain ratio.
func WithEpsilon(eps float64) Option {
	return func(m *Master) {
		if eps > 0 && core.IsFinite(eps) {
			m.epsilon = eps
		}
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
