package design

import (
	"math"

	"github.com/cwbudde/algo-mastering/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// Passthrough is the identity section returned for invalid input and for
// corners whose limit response is flat at unity.
var Passthrough = biquad.Coefficients{B0: 1}

// corner places a frequency relative to the representable band (0, nyquist).
type corner int

const (
	cornerInBand corner = iota
	cornerBelow         // freq <= 0
	cornerAbove         // freq >= nyquist
	cornerInvalid
)

// flatGain returns a section with constant gain in dB.
func flatGain(gainDB float64) biquad.Coefficients {
	return biquad.Coefficients{B0: math.Pow(10, gainDB/20)}
}

// Highpass designs a second-order RBJ highpass at freq (Hz) with quality factor q.
// A corner at or above Nyquist removes the whole band.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, where := normalizedW0(freq, sampleRate)
	switch where {
	case cornerAbove:
		return biquad.Coefficients{}
	case cornerBelow, cornerInvalid:
		return Passthrough
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Peak designs a peaking-EQ biquad with gain in dB. A centre outside the
// band leaves the signal unchanged.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, where := normalizedW0(freq, sampleRate)
	if where != cornerInBand || gainDB == 0 {
		return Passthrough
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs a low-shelf biquad with gain in dB. A corner at or above
// Nyquist applies the shelf gain to the whole band.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, where := normalizedW0(freq, sampleRate)
	switch {
	case where == cornerAbove && !math.IsNaN(gainDB) && !math.IsInf(gainDB, 0):
		return flatGain(gainDB)
	case where != cornerInBand || gainDB == 0:
		return Passthrough
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a high-shelf biquad with gain in dB. A corner at or
// above Nyquist has no band to act on and leaves the signal unchanged.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, where := normalizedW0(freq, sampleRate)
	if where != cornerInBand || gainDB == 0 {
		return Passthrough
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, corner) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || math.IsNaN(freq) {
		return 0, cornerInvalid
	}

	switch {
	case freq <= 0:
		return 0, cornerBelow
	case freq >= sampleRate/2:
		return 0, cornerAbove
	}

	return 2 * math.Pi * freq / sampleRate, cornerInBand
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Passthrough
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
