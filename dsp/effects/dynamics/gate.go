package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

const (
	defaultGateThresholdDB = -60.0
	defaultGateRatio       = 8.0
	defaultGateAttackMs    = 5.0
	defaultGateReleaseMs   = 100.0
	defaultGateRangeDB     = -80.0

	minGateRatio     = 1.0
	maxGateRatio     = 100.0
	minGateAttackMs  = 0.1
	maxGateAttackMs  = 1000.0
	minGateHoldMs    = 0.0
	maxGateHoldMs    = 5000.0
	minGateReleaseMs = 1.0
	maxGateReleaseMs = 5000.0
	minGateKneeDB    = 0.0
	maxGateKneeDB    = 24.0
	minGateRangeDB   = -120.0
	maxGateRangeDB   = 0.0
)

// Gate is a stereo-linked downward expander.
//
// Frames whose detected level falls below the threshold are attenuated by
// (ratio-1) dB per dB of undershoot, never below the range floor. Attack is
// the opening speed and release the closing speed. Silence stays silent.
type Gate struct {
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attackMs    float64
	holdMs      float64
	releaseMs   float64
	rangeDB     float64

	sampleRate float64
	channels   int

	env         peakFollower
	holdCounter int
	holdSamples int

	thresholdLog2 float64
	kneeWidthLog2 float64
	rangeLin      float64
}

// NewGate creates a gate for the given sample rate and channel count.
//
// Default parameters:
//   - Threshold: -60 dB
//   - Ratio: 8:1
//   - Knee: 0 dB (hard)
//   - Attack: 5 ms
//   - Hold: 0 ms
//   - Release: 100 ms
//   - Range: -80 dB
func NewGate(sampleRate float64, channels int) (*Gate, error) {
	if err := validateSampleRate("gate", sampleRate); err != nil {
		return nil, err
	}

	if channels < 1 {
		return nil, fmt.Errorf("gate channel count must be positive: %d: %w",
			channels, core.ErrInvalidParameter)
	}

	g := &Gate{
		thresholdDB: defaultGateThresholdDB,
		ratio:       defaultGateRatio,
		attackMs:    defaultGateAttackMs,
		releaseMs:   defaultGateReleaseMs,
		rangeDB:     defaultGateRangeDB,
		sampleRate:  sampleRate,
		channels:    channels,
	}

	g.updateCoefficients()

	return g, nil
}

// SetThreshold sets the gate threshold in dB.
func (g *Gate) SetThreshold(dB float64) error {
	if !core.IsFinite(dB) {
		return fmt.Errorf("gate threshold must be finite: %f: %w", dB, core.ErrInvalidParameter)
	}

	g.thresholdDB = dB
	g.updateCoefficients()

	return nil
}

// SetRatio sets the expansion ratio in [1, 100].
func (g *Gate) SetRatio(ratio float64) error {
	if err := validateRange("gate ratio", ratio, minGateRatio, maxGateRatio); err != nil {
		return err
	}

	g.ratio = ratio

	return nil
}

// SetKnee sets the soft-knee width in dB.
func (g *Gate) SetKnee(kneeDB float64) error {
	if err := validateRange("gate knee", kneeDB, minGateKneeDB, maxGateKneeDB); err != nil {
		return err
	}

	g.kneeDB = kneeDB
	g.updateCoefficients()

	return nil
}

// SetAttack sets the opening time in milliseconds.
func (g *Gate) SetAttack(ms float64) error {
	if err := validateRange("gate attack", ms, minGateAttackMs, maxGateAttackMs); err != nil {
		return err
	}

	g.attackMs = ms
	g.updateCoefficients()

	return nil
}

// SetHold sets how long the gate stays open after the level drops, in
// milliseconds.
func (g *Gate) SetHold(ms float64) error {
	if err := validateRange("gate hold", ms, minGateHoldMs, maxGateHoldMs); err != nil {
		return err
	}

	g.holdMs = ms
	g.updateCoefficients()

	return nil
}

// SetRelease sets the closing time in milliseconds.
func (g *Gate) SetRelease(ms float64) error {
	if err := validateRange("gate release", ms, minGateReleaseMs, maxGateReleaseMs); err != nil {
		return err
	}

	g.releaseMs = ms
	g.updateCoefficients()

	return nil
}

// SetRange sets the maximum attenuation in dB.
func (g *Gate) SetRange(dB float64) error {
	if err := validateRange("gate range", dB, minGateRangeDB, maxGateRangeDB); err != nil {
		return err
	}

	g.rangeDB = dB
	g.updateCoefficients()

	return nil
}

// Threshold returns the current threshold in dB.
func (g *Gate) Threshold() float64 { return g.thresholdDB }

// Ratio returns the current expansion ratio.
func (g *Gate) Ratio() float64 { return g.ratio }

// Range returns the current maximum attenuation in dB.
func (g *Gate) Range() float64 { return g.rangeDB }

// ProcessBlock gates a planar block in place with a common gain per frame.
func (g *Gate) ProcessBlock(block [][]float64) {
	if len(block) == 0 {
		return
	}

	n := len(block[0])
	for i := range n {
		gain := g.nextGain(linkedLevel(block, i))
		for _, ch := range block {
			ch[i] *= gain
		}
	}
}

// ProcessSample gates a single mono sample.
func (g *Gate) ProcessSample(input float64) float64 {
	return input * g.nextGain(math.Abs(input))
}

// GainForLevel returns the static curve gain for a detector level.
func (g *Gate) GainForLevel(level float64) float64 {
	if level <= 0 {
		return g.rangeLin
	}

	undershoot := g.thresholdLog2 - math.Log2(level)

	effective, active := softKnee(undershoot, g.kneeWidthLog2)
	if !active {
		return 1.0
	}

	return math.Max(math.Exp2(-effective*(g.ratio-1.0)), g.rangeLin)
}

// Reset clears the envelope follower and hold counter.
func (g *Gate) Reset() {
	g.env.reset()
	g.holdCounter = 0
}

func (g *Gate) nextGain(level float64) float64 {
	gain := g.GainForLevel(g.env.next(level))

	if gain >= 1.0 {
		g.holdCounter = g.holdSamples
	} else if g.holdCounter > 0 {
		g.holdCounter--
		gain = 1.0
	}

	return gain
}

func (g *Gate) updateCoefficients() {
	g.thresholdLog2 = g.thresholdDB * log2Of10Div20
	g.kneeWidthLog2 = g.kneeDB * log2Of10Div20
	g.rangeLin = core.DBToLinear(g.rangeDB)
	g.holdSamples = int(g.holdMs * 0.001 * g.sampleRate)
	g.env.configure(g.attackMs, g.releaseMs, g.sampleRate)
}
