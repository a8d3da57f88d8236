package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/algo-mastering/mastering"
)

// optionalFloat is a flag value that records whether it was given.
type optionalFloat struct {
	set bool
	v   float64
}

func (o *optionalFloat) UnmarshalText(text []byte) error {
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}

	o.set, o.v = true, v

	return nil
}

func (o optionalFloat) apply(dst *float64) {
	if o.set {
		*dst = o.v
	}
}

// paramFlags maps the mastering parameters onto flags.
type paramFlags struct {
	Preset         string        `type:"existingfile" help:"JSON parameter preset; flags override its values."`
	Gain           optionalFloat `help:"Linear output gain (default 1)."`
	Saturation     optionalFloat `help:"Saturation drive 0..1 (0 bypasses)."`
	Exciter        optionalFloat `help:"Exciter amount 0..1 (0 bypasses)."`
	StereoWidth    optionalFloat `help:"Stereo width 0..2; unset leaves the image untouched."`
	NoiseReduction optionalFloat `help:"Noise gate amount 0..1 (0 bypasses)."`
	Reverb         optionalFloat `help:"Plate reverb send 0..1 (0 bypasses)."`
}

func (f paramFlags) resolve() (mastering.Parameters, error) {
	p := mastering.DefaultParameters()

	if f.Preset != "" {
		raw, err := os.ReadFile(f.Preset)
		if err != nil {
			return p, fmt.Errorf("read preset: %w", err)
		}

		if err := json.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("parse preset %s: %w", f.Preset, err)
		}
	}

	f.Saturation.apply(&p.Saturation)
	f.Exciter.apply(&p.ExciterAmount)
	f.NoiseReduction.apply(&p.NoiseReduction)
	f.Reverb.apply(&p.Reverb)

	if f.Gain.set {
		p.Gain = mastering.Gain(f.Gain.v)
	}

	if f.StereoWidth.set {
		p.StereoWidth = mastering.Width(f.StereoWidth.v)
	}

	return p, nil
}
