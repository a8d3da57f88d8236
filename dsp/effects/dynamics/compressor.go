package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

const (
	defaultCompressorThresholdDB = -20.0
	defaultCompressorRatio       = 4.0
	defaultCompressorKneeDB      = 5.0
	defaultCompressorAttackMs    = 3.0
	defaultCompressorReleaseMs   = 100.0

	minCompressorRatio     = 1.0
	maxCompressorRatio     = 100.0
	minCompressorAttackMs  = 0.1
	maxCompressorAttackMs  = 1000.0
	minCompressorReleaseMs = 1.0
	maxCompressorReleaseMs = 5000.0
	minCompressorKneeDB    = 0.0
	maxCompressorKneeDB    = 40.0
)

// Compressor is a feed-forward soft-knee compressor with a stereo-linked
// peak detector.
//
// The gain curve is computed in the log2 domain with a quadratic knee
// centred on the threshold. No makeup gain is applied.
//
// A Compressor holds detector state and is not safe for concurrent use.
type Compressor struct {
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attackMs    float64
	releaseMs   float64

	sampleRate float64
	channels   int

	env peakFollower

	thresholdLog2 float64
	kneeWidthLog2 float64

	minGain float64
}

// NewCompressor creates a compressor for the given sample rate and channel
// count.
//
// Default parameters:
//   - Threshold: -20 dB
//   - Ratio: 4:1
//   - Knee: 5 dB
//   - Attack: 3 ms
//   - Release: 100 ms
func NewCompressor(sampleRate float64, channels int) (*Compressor, error) {
	if err := validateSampleRate("compressor", sampleRate); err != nil {
		return nil, err
	}

	if channels < 1 {
		return nil, fmt.Errorf("compressor channel count must be positive: %d: %w",
			channels, core.ErrInvalidParameter)
	}

	c := &Compressor{
		thresholdDB: defaultCompressorThresholdDB,
		ratio:       defaultCompressorRatio,
		kneeDB:      defaultCompressorKneeDB,
		attackMs:    defaultCompressorAttackMs,
		releaseMs:   defaultCompressorReleaseMs,
		sampleRate:  sampleRate,
		channels:    channels,
		minGain:     1,
	}

	c.updateCoefficients()

	return c, nil
}

// SetThreshold sets the compression threshold in dB.
func (c *Compressor) SetThreshold(dB float64) error {
	if !core.IsFinite(dB) {
		return fmt.Errorf("compressor threshold must be finite: %f: %w", dB, core.ErrInvalidParameter)
	}

	c.thresholdDB = dB
	c.updateCoefficients()

	return nil
}

// SetRatio sets the compression ratio in [1, 100]. 1 disables compression.
func (c *Compressor) SetRatio(ratio float64) error {
	if err := validateRange("compressor ratio", ratio, minCompressorRatio, maxCompressorRatio); err != nil {
		return err
	}

	c.ratio = ratio
	c.updateCoefficients()

	return nil
}

// SetKnee sets the soft-knee width in dB. 0 selects a hard knee.
func (c *Compressor) SetKnee(kneeDB float64) error {
	if err := validateRange("compressor knee", kneeDB, minCompressorKneeDB, maxCompressorKneeDB); err != nil {
		return err
	}

	c.kneeDB = kneeDB
	c.updateCoefficients()

	return nil
}

// SetAttack sets the attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) error {
	if err := validateRange("compressor attack", ms, minCompressorAttackMs, maxCompressorAttackMs); err != nil {
		return err
	}

	c.attackMs = ms
	c.env.configure(c.attackMs, c.releaseMs, c.sampleRate)

	return nil
}

// SetRelease sets the release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) error {
	if err := validateRange("compressor release", ms, minCompressorReleaseMs, maxCompressorReleaseMs); err != nil {
		return err
	}

	c.releaseMs = ms
	c.env.configure(c.attackMs, c.releaseMs, c.sampleRate)

	return nil
}

// Threshold returns the current threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the current compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Knee returns the current knee width in dB.
func (c *Compressor) Knee() float64 { return c.kneeDB }

// Attack returns the attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.attackMs }

// Release returns the release time in milliseconds.
func (c *Compressor) Release() float64 { return c.releaseMs }

// Channels returns the configured channel count.
func (c *Compressor) Channels() int { return c.channels }

// MaxGainReduction returns the smallest gain applied since the last reset.
func (c *Compressor) MaxGainReduction() float64 { return c.minGain }

// ProcessBlock compresses a planar block in place. All channels receive
// the gain derived from the loudest channel of each frame.
func (c *Compressor) ProcessBlock(block [][]float64) {
	if len(block) == 0 {
		return
	}

	n := len(block[0])
	for i := range n {
		level := c.env.next(linkedLevel(block, i))
		gain := c.GainForLevel(level)
		if gain < c.minGain {
			c.minGain = gain
		}

		for _, ch := range block {
			ch[i] *= gain
		}
	}
}

// ProcessSample compresses a single mono sample.
func (c *Compressor) ProcessSample(input float64) float64 {
	level := c.env.next(math.Abs(input))
	return input * c.GainForLevel(level)
}

// GainForLevel returns the static curve gain for a detector level.
func (c *Compressor) GainForLevel(level float64) float64 {
	if level <= 0 {
		return 1.0
	}

	overshoot := math.Log2(level) - c.thresholdLog2

	effective, active := softKnee(overshoot, c.kneeWidthLog2)
	if !active {
		return 1.0
	}

	return math.Exp2(-effective * (1.0 - 1.0/c.ratio))
}

// CalculateOutputLevel computes the steady-state output level for a given
// input magnitude.
func (c *Compressor) CalculateOutputLevel(inputMagnitude float64) float64 {
	inputMagnitude = math.Abs(inputMagnitude)
	return inputMagnitude * c.GainForLevel(inputMagnitude)
}

// Reset clears the envelope follower and gain reduction meter.
func (c *Compressor) Reset() {
	c.env.reset()
	c.minGain = 1
}

func (c *Compressor) updateCoefficients() {
	c.thresholdLog2 = c.thresholdDB * log2Of10Div20
	c.kneeWidthLog2 = c.kneeDB * log2Of10Div20

	c.env.configure(c.attackMs, c.releaseMs, c.sampleRate)
}
