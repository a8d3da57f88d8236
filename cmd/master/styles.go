package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/mastering"
	"github.com/cwbudde/algo-mastering/measure/features"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D4A017")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintError prints an error message.
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

func printKV(w io.Writer, key, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key), ValueStyle.Render(fmt.Sprintf(format, args...)))
}

func printFeatures(w io.Writer, name string, wf *waveform.Waveform, fs features.FeatureSet) {
	fmt.Fprintln(w, TitleStyle.Render(name))
	printKV(w, "Format", "%d Hz, %d ch, %s", wf.SampleRate(), wf.NumChannels(), wf.Duration())
	printKV(w, "RMS", "%.4f", fs.RMS)
	printKV(w, "Peak", "%.4f", fs.Peak)
	printKV(w, "Std", "%.4f", fs.Std)
	printKV(w, "Loudness", "%.1f LUFS", fs.IntegratedLoudness)
	printKV(w, "Centroid", "%.0f Hz", fs.SpectralCentroid)
	printKV(w, "Bands", "low %.3f  mid %.3f  high %.3f", fs.LowEnergy, fs.MidEnergy, fs.HighEnergy)
}

func printRenderSummary(w io.Writer, out string, res *mastering.Result) {
	s := res.Settings

	fmt.Fprintln(w, TitleStyle.Render("Mastered "+out))
	printKV(w, "Gain", "x%.3f", s.GainFactor)
	printKV(w, "EQ", "low %+.1f  mid %+.1f  high %+.1f dB", s.EQ.LowGainDB, s.EQ.MidGainDB, s.EQ.HighGainDB)
	printKV(w, "Compressor", "%.1f dB, %.2f:1", s.Compressor.ThresholdDB, s.Compressor.Ratio)
	printKV(w, "Loudness", "%.1f -> %.1f LUFS (ref %.1f)",
		res.Target.IntegratedLoudness, res.Mastered.IntegratedLoudness, res.Reference.IntegratedLoudness)
	printKV(w, "Peak", "%.4f -> %.4f", res.Target.Peak, res.Mastered.Peak)
	printKV(w, "Size", "%d bytes", len(res.WAV))
}
