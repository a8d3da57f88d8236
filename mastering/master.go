package mastering

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-mastering/codec/wav"
	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/effectchain"
	"github.com/cwbudde/algo-mastering/dsp/render"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/measure/features"
	"github.com/sirupsen/logrus"
)

// Master runs the mastering pipeline. It holds only configuration and is
// safe for concurrent use.
type Master struct {
	log       logrus.FieldLogger
	blockSize int
	epsilon   float64
}

// Result is the outcome of one [Master.Process] call.
type Result struct {
	Reference features.FeatureSet `json:"reference"`
	Target    features.FeatureSet `json:"target"`
	Mastered  features.FeatureSet `json:"mastered"`
	Settings  Settings            `json:"settings"`

	Graph  *effectchain.Graph `json:"graph"`
	Output *waveform.Waveform `json:"-"`
	WAV    []byte             `json:"-"`
}

// New returns a Master with the given options.
func New(opts ...Option) *Master {
	m := &Master{
		log:       discardLogger(),
		blockSize: core.DefaultBlockSize,
		epsilon:   DefaultEpsilon,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Analyze extracts the features of w.
func (m *Master) Analyze(w *waveform.Waveform) (features.FeatureSet, error) {
	fs, err := features.Extract(w)
	if err != nil {
		return features.FeatureSet{}, fmt.Errorf("mastering: %w", err)
	}

	return fs, nil
}

// Plan derives the settings and graph for target without rendering.
func (m *Master) Plan(ref, target *waveform.Waveform, params Parameters) (Settings, *effectchain.Graph, error) {
	refFeatures, err := m.Analyze(ref)
	if err != nil {
		return Settings{}, nil, err
	}

	return m.plan(refFeatures, target, params)
}

func (m *Master) plan(ref features.FeatureSet, target *waveform.Waveform, params Parameters) (Settings, *effectchain.Graph, error) {
	s, err := derive(target, ref, params, m.epsilon)
	if err != nil {
		return Settings{}, nil, err
	}

	m.log.WithFields(logrus.Fields{
		"gain_factor":  s.GainFactor,
		"target_rms":   s.TargetRMS,
		"low_db":       s.EQ.LowGainDB,
		"mid_db":       s.EQ.MidGainDB,
		"high_db":      s.EQ.HighGainDB,
		"threshold_db": s.Compressor.ThresholdDB,
		"ratio":        s.Compressor.Ratio,
		"gate":         s.Gate != nil,
	}).Debug("derived settings")

	g, err := s.Graph()
	if err != nil {
		return Settings{}, nil, err
	}

	order, err := g.Order()
	if err != nil {
		return Settings{}, nil, fmt.Errorf("mastering: %w", err)
	}

	m.log.WithField("order", order).Debug("built graph")

	return s, g, nil
}

// Process masters target against ref and encodes the result.
func (m *Master) Process(ref, target *waveform.Waveform, params Parameters) (*Result, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("mastering: target: %w", err)
	}

	refFeatures, err := m.Analyze(ref)
	if err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"rms":      refFeatures.RMS,
		"std":      refFeatures.Std,
		"centroid": refFeatures.SpectralCentroid,
		"low":      refFeatures.LowEnergy,
		"mid":      refFeatures.MidEnergy,
		"high":     refFeatures.HighEnergy,
	}).Debug("reference features")

	targetFeatures, err := m.Analyze(target)
	if err != nil {
		return nil, err
	}

	s, g, err := m.plan(refFeatures, target, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	out, err := render.Offline(g, target, render.WithBlockSize(m.blockSize))
	if err != nil {
		return nil, fmt.Errorf("mastering: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"frames":   out.Len(),
		"channels": out.NumChannels(),
		"elapsed":  time.Since(start),
	}).Debug("rendered")

	data, err := wav.EncodeWaveform(out)
	if err != nil {
		return nil, fmt.Errorf("mastering: encode: %w", err)
	}

	mastered, err := m.Analyze(out)
	if err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"target_lufs":   targetFeatures.IntegratedLoudness,
		"mastered_lufs": mastered.IntegratedLoudness,
		"bytes":         len(data),
	}).Info("mastering complete")

	return &Result{
		Reference: refFeatures,
		Target:    targetFeatures,
		Mastered:  mastered,
		Settings:  s,
		Graph:     g,
		Output:    out,
		WAV:       data,
	}, nil
}
