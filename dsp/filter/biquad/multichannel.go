package biquad

// MultiChannel runs one shared coefficient set over several independent
// channels, each with its own delay line.
type MultiChannel struct {
	coeffs   Coefficients
	sections []Section
}

// NewMultiChannel returns a filter for the given number of channels.
// Non-positive channel counts yield an empty filter that ignores input.
func NewMultiChannel(c Coefficients, channels int) *MultiChannel {
	if channels < 0 {
		channels = 0
	}

	m := &MultiChannel{
		coeffs:   c,
		sections: make([]Section, channels),
	}
	for i := range m.sections {
		m.sections[i].Coefficients = c
	}

	return m
}

// Channels returns the number of channels the filter was built for.
func (m *MultiChannel) Channels() int { return len(m.sections) }

// Coefficients returns the shared coefficient set.
func (m *MultiChannel) Coefficients() Coefficients { return m.coeffs }

// ProcessBlock filters each channel of a planar block in place.
// Channels beyond the configured count are left untouched.
func (m *MultiChannel) ProcessBlock(block [][]float64) {
	n := min(len(block), len(m.sections))
	for ch := range n {
		m.sections[ch].ProcessBlock(block[ch])
	}
}

// Reset clears every channel's delay line.
func (m *MultiChannel) Reset() {
	for i := range m.sections {
		m.sections[i].Reset()
	}
}
