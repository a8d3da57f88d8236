package loudness

import (
	"math"

	"github.com/cwbudde/algo-mastering/dsp/filter/biquad"
	"github.com/cwbudde/algo-mastering/dsp/filter/design"
)

const (
	// K-weighting filter parameters from BS.1770.
	kWeightingShelfFreq = 1500.0
	kWeightingShelfGain = 4.0

	kWeightingHpfFreq = 38.0

	// Integration window durations in seconds.
	momentaryDuration = 0.4
	shortTermDuration = 3.0

	// Gating parameters.
	absThreshold    = -70.0
	relThreshold    = -10.0
	blockOverlap    = 0.75 // 75% overlap for integrated loudness gating
	blockStepFactor = 1.0 - blockOverlap

	// Floor reported for zero power.
	silenceLUFS = -120.0
)

// Meter implements EBU R128 / ITU-R BS.1770 loudness metering.
type Meter struct {
	sampleRate float64
	channels   int

	// K-weighting filters per channel
	shelfFilters []*biquad.Section
	hpfFilters   []*biquad.Section

	// Sliding windows of squared K-weighted samples
	momWindowSamples   int
	shortWindowSamples int
	momHistory         [][]float64
	shortHistory       [][]float64
	momWriteIdx        int
	shortWriteIdx      int

	momRunningSums   []float64
	shortRunningSums []float64

	// Integrated loudness state
	integrationRunning bool
	totalSamples       int64
	blockSamplesStep   int
	samplesSinceStep   int

	// Gating blocks (sum of channel mean squares per 400 ms block)
	blocks []float64

	maxMomentary float64
	maxShortTerm float64
	samplePeak   []float64
}

// NewMeter creates a new loudness meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	meter := &Meter{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
	}

	meter.reconfigure()

	return meter
}

// Channels returns the number of metered channels.
func (m *Meter) Channels() int { return m.channels }

func (m *Meter) reconfigure() {
	m.shelfFilters = make([]*biquad.Section, m.channels)
	m.hpfFilters = make([]*biquad.Section, m.channels)

	q := 1.0 / math.Sqrt(2)
	shelfCoeffs := design.HighShelf(kWeightingShelfFreq, kWeightingShelfGain, q, m.sampleRate)
	hpfCoeffs := design.Highpass(kWeightingHpfFreq, q, m.sampleRate)

	for i := range m.channels {
		m.shelfFilters[i] = biquad.NewSection(shelfCoeffs)
		m.hpfFilters[i] = biquad.NewSection(hpfCoeffs)
	}

	m.momWindowSamples = max(int(math.Round(momentaryDuration*m.sampleRate)), 1)
	m.shortWindowSamples = max(int(math.Round(shortTermDuration*m.sampleRate)), 1)

	m.momHistory = make([][]float64, m.channels)
	m.shortHistory = make([][]float64, m.channels)

	for i := range m.channels {
		m.momHistory[i] = make([]float64, m.momWindowSamples)
		m.shortHistory[i] = make([]float64, m.shortWindowSamples)
	}

	m.momRunningSums = make([]float64, m.channels)
	m.shortRunningSums = make([]float64, m.channels)
	m.samplePeak = make([]float64, m.channels)

	m.blockSamplesStep = max(int(math.Round(momentaryDuration*blockStepFactor*m.sampleRate)), 1)

	m.Reset()
}

// Reset clears all integration state and peak values.
func (m *Meter) Reset() {
	for i := range m.channels {
		m.shelfFilters[i].Reset()
		m.hpfFilters[i].Reset()

		clear(m.momHistory[i])
		clear(m.shortHistory[i])

		m.momRunningSums[i] = 0
		m.shortRunningSums[i] = 0
		m.samplePeak[i] = 0
	}

	m.momWriteIdx = 0
	m.shortWriteIdx = 0
	m.samplesSinceStep = 0
	m.totalSamples = 0
	m.blocks = nil
	m.maxMomentary = math.Inf(-1)
	m.maxShortTerm = math.Inf(-1)
}

// StartIntegration starts accumulating blocks for integrated loudness.
func (m *Meter) StartIntegration() {
	m.integrationRunning = true
}

// StopIntegration stops accumulating blocks for integrated loudness.
func (m *Meter) StopIntegration() {
	m.integrationRunning = false
}

// ProcessFrame meters one frame holding one sample per channel.
func (m *Meter) ProcessFrame(frame []float64) {
	if len(frame) < m.channels {
		return
	}

	for i := range m.channels {
		val := m.shelfFilters[i].ProcessSample(frame[i])
		val = m.hpfFilters[i].ProcessSample(val)

		if a := math.Abs(frame[i]); a > m.samplePeak[i] {
			m.samplePeak[i] = a
		}

		sq := val * val

		oldMom := m.momHistory[i][m.momWriteIdx]
		m.momHistory[i][m.momWriteIdx] = sq
		m.momRunningSums[i] = math.Max(m.momRunningSums[i]+sq-oldMom, 0)

		oldShort := m.shortHistory[i][m.shortWriteIdx]
		m.shortHistory[i][m.shortWriteIdx] = sq
		m.shortRunningSums[i] = math.Max(m.shortRunningSums[i]+sq-oldShort, 0)
	}

	m.momWriteIdx = (m.momWriteIdx + 1) % m.momWindowSamples
	m.shortWriteIdx = (m.shortWriteIdx + 1) % m.shortWindowSamples

	m.totalSamples++
	if m.totalSamples >= int64(m.momWindowSamples) {
		m.maxMomentary = math.Max(m.maxMomentary, m.Momentary())
	}

	if m.totalSamples >= int64(m.shortWindowSamples) {
		m.maxShortTerm = math.Max(m.maxShortTerm, m.ShortTerm())
	}

	if !m.integrationRunning {
		return
	}

	m.samplesSinceStep++
	if m.samplesSinceStep >= m.blockSamplesStep {
		m.samplesSinceStep = 0
		m.blocks = append(m.blocks, m.windowPower(m.momRunningSums, m.momWindowSamples))
	}
}

// ProcessBlock meters a planar block. Channels beyond the meter's channel
// count are ignored; a block with fewer channels is ignored.
func (m *Meter) ProcessBlock(block [][]float64) {
	if len(block) < m.channels {
		return
	}

	frame := make([]float64, m.channels)

	n := len(block[0])
	for i := range n {
		for ch := range m.channels {
			frame[ch] = block[ch][i]
		}

		m.ProcessFrame(frame)
	}
}

// Momentary returns the current momentary (400 ms) loudness in LUFS.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.windowPower(m.momRunningSums, m.momWindowSamples))
}

// ShortTerm returns the current short-term (3 s) loudness in LUFS.
func (m *Meter) ShortTerm() float64 {
	return toLUFS(m.windowPower(m.shortRunningSums, m.shortWindowSamples))
}

// MaxMomentary returns the largest momentary loudness seen since Reset,
// or -Inf before the first full window.
func (m *Meter) MaxMomentary() float64 { return m.maxMomentary }

// MaxShortTerm returns the largest short-term loudness seen since Reset,
// or -Inf before the first full window.
func (m *Meter) MaxShortTerm() float64 { return m.maxShortTerm }

func (m *Meter) windowPower(sums []float64, window int) float64 {
	var p float64
	for _, s := range sums {
		p += s / float64(window)
	}

	return p
}

// Integrated returns the gated integrated loudness in LUFS since
// StartIntegration, or -Inf when every block is gated out.
func (m *Meter) Integrated() float64 {
	var (
		absGated    []float64
		absGatedSum float64
	)

	for _, b := range m.blocks {
		if toLUFS(b) > absThreshold {
			absGated = append(absGated, b)
			absGatedSum += b
		}
	}

	if len(absGated) == 0 {
		return math.Inf(-1)
	}

	gammaRel := toLUFS(absGatedSum/float64(len(absGated))) + relThreshold

	var (
		relGatedSum   float64
		relGatedCount int
	)

	for _, b := range absGated {
		if toLUFS(b) > gammaRel {
			relGatedSum += b
			relGatedCount++
		}
	}

	if relGatedCount == 0 {
		return math.Inf(-1)
	}

	return toLUFS(relGatedSum / float64(relGatedCount))
}

// Peaks returns the maximum absolute sample value per channel since Reset.
func (m *Meter) Peaks() []float64 {
	return append([]float64(nil), m.samplePeak...)
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return silenceLUFS
	}

	return -0.691 + 10.0*math.Log10(meanSquare)
}
