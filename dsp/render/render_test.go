package render

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mastering/dsp/core"
	"github.com/cwbudde/algo-mastering/dsp/effectchain"
	"github.com/cwbudde/algo-mastering/dsp/waveform"
	"github.com/cwbudde/algo-mastering/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRate = 44100

func stereoTarget(t *testing.T, frames int) *waveform.Waveform {
	t.Helper()

	w, err := waveform.New(sampleRate, testutil.Program(sampleRate, 2, frames))
	require.NoError(t, err)

	return w
}

// seriesGraph wires input -> stages... -> output.
func seriesGraph(t *testing.T, stages ...effectchain.Stage) *effectchain.Graph {
	t.Helper()

	g := effectchain.NewGraph()
	ids := []string{effectchain.InputNodeID}

	for _, s := range stages {
		require.NoError(t, g.AddStage(s))
		ids = append(ids, s.Name())
	}

	ids = append(ids, effectchain.OutputNodeID)
	require.NoError(t, g.Series(ids...))

	return g
}

func causalGraph(t *testing.T) *effectchain.Graph {
	t.Helper()

	return seriesGraph(t,
		effectchain.Gain(1.5),
		effectchain.ShelfFilter(effectchain.ShelfLow, 150, 3, 0.7),
		effectchain.PeakingFilter(1000, -2, 1.2),
		effectchain.Saturator(0.3),
		effectchain.DynamicsCompressor(-20, 3, 0.003, 0.1, 5),
		effectchain.MidSideWidener(1.4),
	)
}

func TestOffline_EmptyGraphIsIdentity(t *testing.T) {
	target := stereoTarget(t, 3000)

	g := effectchain.NewGraph()
	require.NoError(t, g.Connect(effectchain.InputNodeID, effectchain.OutputNodeID))

	out, err := Offline(g, target)
	require.NoError(t, err)

	testutil.RequireBitIdentical(t, out.Channels(), target.Channels())
}

func TestOffline_PreservesShape(t *testing.T) {
	target := stereoTarget(t, 5000)

	out, err := Offline(causalGraph(t), target)
	require.NoError(t, err)

	assert.Equal(t, target.SampleRate(), out.SampleRate())
	assert.Equal(t, target.NumChannels(), out.NumChannels())
	assert.Equal(t, target.Len(), out.Len())
	assert.True(t, core.AllFinite(out.Channels()))
}

func TestOffline_DoesNotMutateTarget(t *testing.T) {
	target := stereoTarget(t, 2048)
	before := target.Channels()

	_, err := Offline(seriesGraph(t, effectchain.Gain(0.5)), target)
	require.NoError(t, err)

	testutil.RequireBitIdentical(t, target.Channels(), before)
}

func TestOffline_Deterministic(t *testing.T) {
	target := stereoTarget(t, 9000)

	g := causalGraph(t)

	a, err := Offline(g, target)
	require.NoError(t, err)

	b, err := Offline(g, target)
	require.NoError(t, err)

	testutil.RequireBitIdentical(t, a.Channels(), b.Channels())
}

func TestOffline_BlockSizeIndependent(t *testing.T) {
	target := stereoTarget(t, 7000)
	g := causalGraph(t)

	ref, err := Offline(g, target)
	require.NoError(t, err)

	for _, bs := range []int{1, 64, 333, 4096, 100000} {
		out, err := Offline(g, target, WithBlockSize(bs))
		require.NoError(t, err, "block size %d", bs)
		testutil.RequireChannelsNearlyEqual(t, out.Channels(), ref.Channels(), 1e-12)
	}
}

func TestOffline_ReverbBlockSizeIndependent(t *testing.T) {
	target := stereoTarget(t, 6000)
	g := seriesGraph(t, effectchain.PlateReverb(0.05, 1))

	ref, err := Offline(g, target)
	require.NoError(t, err)

	out, err := Offline(g, target, WithBlockSize(100))
	require.NoError(t, err)

	testutil.RequireChannelsNearlyEqual(t, out.Channels(), ref.Channels(), 1e-9)
}

func TestOffline_ConcurrentRenders(t *testing.T) {
	target := stereoTarget(t, 4096)
	g := causalGraph(t)

	ref, err := Offline(g, target)
	require.NoError(t, err)

	results := make(chan *waveform.Waveform, 4)
	errs := make(chan error, 4)

	for range 4 {
		go func() {
			out, err := Offline(g, target)
			errs <- err
			results <- out
		}()
	}

	for range 4 {
		require.NoError(t, <-errs)
		testutil.RequireBitIdentical(t, (<-results).Channels(), ref.Channels())
	}
}

func TestOffline_Errors(t *testing.T) {
	target := stereoTarget(t, 256)

	t.Run("nil target", func(t *testing.T) {
		_, err := Offline(causalGraph(t), nil)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("nil graph", func(t *testing.T) {
		_, err := Offline(nil, target)
		require.ErrorIs(t, err, core.ErrRenderFailure)
		require.ErrorIs(t, err, effectchain.ErrNoGraph)
	})

	t.Run("invalid stage parameter", func(t *testing.T) {
		_, err := Offline(seriesGraph(t, effectchain.PeakingFilter(-5, 3, 1)), target)
		require.ErrorIs(t, err, core.ErrRenderFailure)
		require.ErrorIs(t, err, core.ErrInvalidParameter)
	})

	t.Run("channel count change", func(t *testing.T) {
		g := effectchain.NewGraph()
		require.NoError(t, g.AddNode(effectchain.Params{
			ID: "down", Type: effectchain.TypeGain,
			Arity: effectchain.Arity{In: 2, Out: 1},
			Num:   map[string]float64{"factor": 1},
		}))
		require.NoError(t, g.Series(effectchain.InputNodeID, "down", effectchain.OutputNodeID))

		_, err := Offline(g, target)
		require.ErrorIs(t, err, core.ErrUnsupportedChannelLayout)

		mono, err := waveform.New(sampleRate, [][]float64{testutil.DC(0.25, 64)})
		require.NoError(t, err)

		out, err := Offline(g, mono)
		require.NoError(t, err, "stereo-only node passes mono through")
		assert.Equal(t, 1, out.NumChannels())
	})

	t.Run("non-finite output", func(t *testing.T) {
		reg := effectchain.NewRegistry()
		reg.MustRegister("nan", func(effectchain.Context) (effectchain.Runtime, error) {
			return nanRuntime{}, nil
		})

		g := effectchain.NewGraph()
		require.NoError(t, g.AddNode(effectchain.Params{ID: "bad", Type: "nan"}))
		require.NoError(t, g.Series(effectchain.InputNodeID, "bad", effectchain.OutputNodeID))

		_, err := Offline(g, target, WithRegistry(reg))
		require.ErrorIs(t, err, core.ErrRenderFailure)
	})
}

type nanRuntime struct{}

func (nanRuntime) Configure(effectchain.Context, effectchain.Params) error { return nil }

func (nanRuntime) Process(block [][]float64) error {
	block[0][0] = math.NaN()

	return nil
}
