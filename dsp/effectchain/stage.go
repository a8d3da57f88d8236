package effectchain

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Stage effect types.
const (
	TypeGain        = "gain"
	TypeLowShelf    = "lowshelf"
	TypeHighShelf   = "highshelf"
	TypePeaking     = "peaking"
	TypeHighpass    = "highpass"
	TypeCompressor  = "compressor"
	TypeGate        = "gate"
	TypeSaturator   = "saturator"
	TypeWidener     = "widener"
	TypePlateReverb = "plate-reverb"
)

// ShelfKind selects the side of a shelving filter.
type ShelfKind int

const (
	// ShelfLow boosts or cuts below the corner frequency.
	ShelfLow ShelfKind = iota
	// ShelfHigh boosts or cuts above the corner frequency.
	ShelfHigh
)

// Stage is an immutable, named descriptor of one processing unit. It holds
// no processing state; every call to NewProcessor returns a fresh runtime,
// so one Stage may back any number of concurrent renders.
type Stage struct {
	name  string
	typ   string
	arity Arity
	num   map[string]float64
}

func newStage(typ string, num map[string]float64) Stage {
	return Stage{name: typ, typ: typ, num: num}
}

// Name returns the node ID the stage takes in a graph.
func (s Stage) Name() string { return s.name }

// Type returns the effect type.
func (s Stage) Type() string { return s.typ }

// Arity returns the declared channel arity.
func (s Stage) Arity() Arity { return s.arity }

// Param returns a numeric parameter.
func (s Stage) Param(key string) (float64, bool) {
	v, ok := s.num[key]
	return v, ok
}

// Named returns a copy of s with a different node ID.
func (s Stage) Named(name string) Stage {
	s.name = name
	s.num = maps.Clone(s.num)

	return s
}

// With returns a copy of s with the numeric parameter key set to v. It
// reaches optional runtime parameters such as a gate's holdSec and kneeDB.
func (s Stage) With(key string, v float64) Stage {
	s.num = maps.Clone(s.num)
	if s.num == nil {
		s.num = make(map[string]float64, 1)
	}

	s.num[key] = v

	return s
}

// Params returns the node parameters of the stage.
func (s Stage) Params() Params {
	return Params{ID: s.name, Type: s.typ, Arity: s.arity, Num: maps.Clone(s.num)}
}

// NewProcessor instantiates a configured runtime from the default registry.
func (s Stage) NewProcessor(ctx Context) (Runtime, error) {
	return DefaultRegistry().Instantiate(ctx, s.Params())
}

// String formats the stage as type(key=value, ...) with sorted keys.
func (s Stage) String() string {
	keys := slices.Sorted(maps.Keys(s.num))
	parts := make([]string, len(keys))

	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(s.num[k], 'g', 6, 64)
	}

	return fmt.Sprintf("%s(%s)", s.typ, strings.Join(parts, ", "))
}

// Gain returns a linear gain stage. Non-finite factors act as unity.
func Gain(factor float64) Stage {
	return newStage(TypeGain, map[string]float64{"factor": factor})
}

// ShelfFilter returns a second-order RBJ shelving filter stage.
func ShelfFilter(kind ShelfKind, freqHz, gainDB, q float64) Stage {
	typ := TypeLowShelf
	if kind == ShelfHigh {
		typ = TypeHighShelf
	}

	return newStage(typ, map[string]float64{"freqHz": freqHz, "gainDB": gainDB, "q": q})
}

// PeakingFilter returns a second-order RBJ peaking (bell) filter stage.
func PeakingFilter(freqHz, gainDB, q float64) Stage {
	return newStage(TypePeaking, map[string]float64{"freqHz": freqHz, "gainDB": gainDB, "q": q})
}

// HighpassFilter returns a second-order RBJ highpass filter stage.
func HighpassFilter(freqHz, q float64) Stage {
	return newStage(TypeHighpass, map[string]float64{"freqHz": freqHz, "q": q})
}

// DynamicsCompressor returns a feed-forward soft-knee compressor stage.
// Attack and release are in seconds.
func DynamicsCompressor(thresholdDB, ratio, attackSec, releaseSec, kneeDB float64) Stage {
	return newStage(TypeCompressor, map[string]float64{
		"thresholdDB": thresholdDB,
		"ratio":       ratio,
		"attackSec":   attackSec,
		"releaseSec":  releaseSec,
		"kneeDB":      kneeDB,
	})
}

// NoiseGate returns a downward expander stage that attenuates signals
// below the threshold. Attack and release are in seconds. The optional
// holdSec and kneeDB parameters default to 0; set them with [Stage.With].
func NoiseGate(thresholdDB, ratio, attackSec, releaseSec float64) Stage {
	return newStage(TypeGate, map[string]float64{
		"thresholdDB": thresholdDB,
		"ratio":       ratio,
		"attackSec":   attackSec,
		"releaseSec":  releaseSec,
	})
}

// Saturator returns a tanh waveshaper stage. An amount of 0 is a bypass.
func Saturator(amount float64) Stage {
	return newStage(TypeSaturator, map[string]float64{"amount": amount})
}

// MidSideWidener returns a stereo width stage for width in [0, 2]. Blocks
// with a channel count other than two pass through.
func MidSideWidener(width float64) Stage {
	st := newStage(TypeWidener, map[string]float64{"width": width})
	st.arity = StereoOnly

	return st
}

// MaxPlateSeed bounds the magnitude of a plate reverb seed. Parameters are
// float64, which holds every integer up to 2^53 exactly.
const MaxPlateSeed = 1 << 53

// PlateReverb returns a fully wet convolution reverb stage driven by a
// seeded decaying-noise impulse response of decaySec seconds. Seeds beyond
// ±MaxPlateSeed fail with core.ErrInvalidParameter when instantiated.
func PlateReverb(decaySec float64, seed int64) Stage {
	// Out-of-range seeds would round; NaN makes instantiation fail instead.
	s := math.NaN()
	if seed >= -MaxPlateSeed && seed <= MaxPlateSeed {
		s = float64(seed)
	}

	return newStage(TypePlateReverb, map[string]float64{"decaySec": decaySec, "seed": s})
}
