package mastering

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/effectchain"
	"github.com/cwbudde/algo-mastering/dsp/effects/reverb"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/measure/features"
)

// Node IDs of the mastering graph.
const (
	NodeGain         = "gain"
	NodeGate         = "gate"
	NodeLowShelf     = "eq-low"
	NodeMidPeak      = "eq-mid"
	NodeHighShelf    = "eq-high"
	NodePresence     = "eq-presence"
	NodeSaturator    = "saturator"
	NodeExciterSplit = "exciter-split"
	NodeExciterHP    = "exciter-highpass"
	NodeExciterDrive = "exciter-drive"
	NodeExciterLevel = "exciter-level"
	NodeExciterSum   = "exciter-sum"
	NodeCompressor   = "compressor"
	NodeReverbSplit  = "reverb-split"
	NodeReverb       = "reverb"
	NodeReverbLevel  = "reverb-level"
	NodeReverbSum    = "reverb-sum"
	NodeWidener      = "widener"
)

// BuildGraph derives the settings for target and assembles the graph.
func BuildGraph(target *waveform.Waveform, ref features.FeatureSet, params Parameters) (*effectchain.Graph, error) {
	s, err := Derive(target, ref, params)
	if err != nil {
		return nil, err
	}

	return s.Graph()
}

// Graph assembles the processing graph for s. Optional stages with a zero
// amount are left out.
func (s Settings) Graph() (*effectchain.Graph, error) {
	b := graphBuilder{g: effectchain.NewGraph(), last: effectchain.InputNodeID}

	b.stage(effectchain.Gain(s.GainFactor).Named(NodeGain))

	if s.Gate != nil {
		b.stage(effectchain.NoiseGate(s.Gate.ThresholdDB, s.Gate.Ratio, s.Gate.AttackSec, s.Gate.ReleaseSec).
			With("kneeDB", s.Gate.KneeDB).
			With("holdSec", s.Gate.HoldSec).
			Named(NodeGate))
	}

	b.stage(effectchain.ShelfFilter(effectchain.ShelfLow, LowShelfFreq, s.EQ.LowGainDB, LowShelfQ).Named(NodeLowShelf))
	b.stage(effectchain.PeakingFilter(MidPeakFreq, s.EQ.MidGainDB, MidPeakQ).Named(NodeMidPeak))
	b.stage(effectchain.ShelfFilter(effectchain.ShelfHigh, HighShelfFreq, s.EQ.HighGainDB, HighShelfQ).Named(NodeHighShelf))
	b.stage(effectchain.PeakingFilter(PresenceFreq, s.EQ.PresenceGainDB, PresenceQ).Named(NodePresence))

	if s.Saturation > 0 {
		b.stage(effectchain.Saturator(s.Saturation).Named(NodeSaturator))
	}

	if s.ExciterAmount > 0 {
		b.parallel(NodeExciterSplit, NodeExciterSum,
			effectchain.HighpassFilter(ExciterHighpass, ExciterHighpassQ).Named(NodeExciterHP),
			effectchain.Saturator(s.ExciterAmount).Named(NodeExciterDrive),
			effectchain.Gain(s.ExciterAmount).Named(NodeExciterLevel),
		)
	}

	c := s.Compressor
	b.stage(effectchain.DynamicsCompressor(c.ThresholdDB, c.Ratio, c.AttackSec, c.ReleaseSec, c.KneeDB).Named(NodeCompressor))

	if s.Reverb > 0 {
		b.parallel(NodeReverbSplit, NodeReverbSum,
			effectchain.PlateReverb(reverb.DefaultPlateDecay, reverb.DefaultPlateSeed).Named(NodeReverb),
			effectchain.Gain(s.Reverb).Named(NodeReverbLevel),
		)
	}

	if s.StereoWidth != nil {
		b.stage(effectchain.MidSideWidener(*s.StereoWidth).Named(NodeWidener))
	}

	b.connect(b.last, effectchain.OutputNodeID)

	if b.err != nil {
		return nil, fmt.Errorf("mastering: build graph: %w", b.err)
	}

	return b.g, nil
}

// graphBuilder appends nodes to a running series and keeps the first error.
type graphBuilder struct {
	g    *effectchain.Graph
	last string
	err  error
}

func (b *graphBuilder) connect(from, to string) {
	if b.err == nil {
		b.err = b.g.Connect(from, to)
	}
}

func (b *graphBuilder) add(s effectchain.Stage) {
	if b.err == nil {
		b.err = b.g.AddStage(s)
	}
}

func (b *graphBuilder) stage(s effectchain.Stage) {
	b.add(s)
	b.connect(b.last, s.Name())
	b.last = s.Name()
}

// parallel taps the series into a split node, runs the stages as a side
// path and sums it back with the dry signal.
func (b *graphBuilder) parallel(splitID, sumID string, stages ...effectchain.Stage) {
	if b.err == nil {
		b.err = b.g.AddSplit(splitID)
	}

	if b.err == nil {
		b.err = b.g.AddSum(sumID)
	}

	b.connect(b.last, splitID)
	b.connect(splitID, sumID)

	prev := splitID
	for _, s := range stages {
		b.add(s)
		b.connect(prev, s.Name())
		prev = s.Name()
	}

	b.connect(prev, sumID)
	b.last = sumID
}
