package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-mastering/codec/wav"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/mastering"
)

// RenderCmd masters a target file.
type RenderCmd struct {
	Reference string     `short:"r" required:"" type:"existingfile" help:"Reference WAV file."`
	Out       string     `short:"o" required:"" type:"path" help:"Output WAV file."`
	BlockSize int        `default:"1024" help:"Render block size in frames."`
	Params    paramFlags `embed:""`

	Target string `arg:"" type:"existingfile" help:"Target WAV file."`
}

// Run renders and writes the mastered file.
func (c *RenderCmd) Run(e *env) error {
	params, err := c.Params.resolve()
	if err != nil {
		return err
	}

	ref, target, err := loadPair(c.Reference, c.Target)
	if err != nil {
		return err
	}

	m := mastering.New(mastering.WithLogger(e.log), mastering.WithBlockSize(c.BlockSize))

	res, err := m.Process(ref, target, params)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Out, res.WAV, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.Out, err)
	}

	printRenderSummary(e.out, c.Out, res)

	return nil
}

// AnalyzeCmd prints the features of one file.
type AnalyzeCmd struct {
	JSON bool   `help:"Print features as JSON."`
	File string `arg:"" type:"existingfile" help:"WAV file to analyse."`
}

// Run extracts and prints the features.
func (c *AnalyzeCmd) Run(e *env) error {
	w, err := loadWAV(c.File)
	if err != nil {
		return err
	}

	fs, err := mastering.New(mastering.WithLogger(e.log)).Analyze(w)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(e, fs)
	}

	printFeatures(e.out, c.File, w, fs)

	return nil
}

// GraphCmd prints the graph that render would run.
type GraphCmd struct {
	Reference string     `short:"r" required:"" type:"existingfile" help:"Reference WAV file."`
	Params    paramFlags `embed:""`

	Target string `arg:"" type:"existingfile" help:"Target WAV file."`
}

// Run derives and prints the graph.
func (c *GraphCmd) Run(e *env) error {
	params, err := c.Params.resolve()
	if err != nil {
		return err
	}

	ref, target, err := loadPair(c.Reference, c.Target)
	if err != nil {
		return err
	}

	_, g, err := mastering.New(mastering.WithLogger(e.log)).Plan(ref, target, params)
	if err != nil {
		return err
	}

	return writeJSON(e, g)
}

func writeJSON(e *env, v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func loadWAV(path string) (*waveform.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return w, nil
}

func loadPair(refPath, targetPath string) (ref, target *waveform.Waveform, err error) {
	if ref, err = loadWAV(refPath); err != nil {
		return nil, nil, err
	}

	if target, err = loadWAV(targetPath); err != nil {
		return nil, nil, err
	}

	return ref, target, nil
}
