package effectchain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

func TestNewGraphHasIONodes(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}

	for _, id := range []string{InputNodeID, OutputNodeID} {
		if _, ok := g.Node(id); !ok {
			t.Fatalf("missing node %q", id)
		}
	}
}

func TestGraphAddNode(t *testing.T) {
	t.Parallel()

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()

		g := NewGraph()
		if err := g.AddNode(scaleNode("a", 1)); err != nil {
			t.Fatalf("AddNode error: %v", err)
		}

		if err := g.AddNode(scaleNode("a", 2)); !errors.Is(err, ErrDuplicateNode) {
			t.Fatalf("error = %v, want ErrDuplicateNode", err)
		}
	})

	t.Run("reserved type", func(t *testing.T) {
		t.Parallel()

		if err := NewGraph().AddNode(Params{ID: "x", Type: OutputNodeID}); err == nil {
			t.Fatal("expected error for reserved type")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		if err := NewGraph().AddNode(Params{Type: "scale"}); err == nil {
			t.Fatal("expected error for empty id")
		}
	})

	t.Run("params are copied", func(t *testing.T) {
		t.Parallel()

		g := NewGraph()
		p := scaleNode("a", 1)
		_ = g.AddNode(p)
		p.Num["gain"] = 5

		n, _ := g.Node("a")
		if n.Num["gain"] != 1 {
			t.Fatalf("stored gain = %v, want 1", n.Num["gain"])
		}
	})
}

func TestGraphConnect(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	_ = g.AddNode(scaleNode("a", 1))

	tests := []struct {
		name     string
		from, to string
		unknown  bool
	}{
		{"unknown source", "nope", "a", true},
		{"unknown target", "a", "nope", true},
		{"self loop", "a", "a", false},
		{"into input", "a", InputNodeID, false},
		{"out of output", OutputNodeID, "a", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := g.Connect(tc.from, tc.to)
			if err == nil {
				t.Fatal("expected error")
			}

			if tc.unknown != errors.Is(err, ErrUnknownNode) {
				t.Fatalf("error = %v, unknown = %v", err, tc.unknown)
			}
		})
	}
}

func TestGraphOrder(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	_ = g.AddSplit("split")
	_ = g.AddNode(scaleNode("wet", 0.5))
	_ = g.AddSum("sum")
	_ = g.AddNode(scaleNode("post", 2))

	if err := g.Series(InputNodeID, "split", "sum", "post", OutputNodeID); err != nil {
		t.Fatalf("Series error: %v", err)
	}

	if err := g.Series("split", "wet", "sum"); err != nil {
		t.Fatalf("Series error: %v", err)
	}

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order error: %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Fatalf("edge %s -> %s violates order %v", e.From, e.To, order)
		}
	}

	stages, err := g.Stages()
	if err != nil {
		t.Fatalf("Stages error: %v", err)
	}

	if len(stages) != 2 || stages[0].ID != "wet" || stages[1].ID != "post" {
		t.Fatalf("Stages = %+v, want [wet post]", stages)
	}
}

func TestGraphCycle(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	_ = g.AddNode(scaleNode("a", 1))
	_ = g.AddNode(scaleNode("b", 1))
	_ = g.Series(InputNodeID, "a", "b", OutputNodeID)
	_ = g.Connect("b", "a")

	if _, err := g.Order(); !errors.Is(err, ErrCycle) {
		t.Fatalf("Order error = %v, want ErrCycle", err)
	}
}

func TestGraphJSONRoundTrip(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	_ = g.AddStage(Gain(1.5).Named("gain"))
	_ = g.AddStage(PeakingFilter(3000, 2, 1.5).Named("presence"))
	_ = g.Series(InputNodeID, "gain", "presence", OutputNodeID)

	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	if !strings.Contains(string(raw), `"type":"peaking"`) {
		t.Fatalf("json %s lacks peaking node", raw)
	}

	parsed, err := ParseGraph(raw)
	if err != nil {
		t.Fatalf("ParseGraph error: %v", err)
	}

	if parsed.Len() != g.Len() || len(parsed.Edges()) != len(g.Edges()) {
		t.Fatalf("parsed %d nodes/%d edges, want %d/%d",
			parsed.Len(), len(parsed.Edges()), g.Len(), len(g.Edges()))
	}

	n, ok := parsed.Node("presence")
	if !ok || n.Num["freqHz"] != 3000 || n.Num["gainDB"] != 2 || n.Num["q"] != 1.5 {
		t.Fatalf("presence node = %+v", n)
	}
}

func TestGraphJSONKeepsArity(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	_ = g.AddStage(MidSideWidener(1.2))
	_ = g.Series(InputNodeID, TypeWidener, OutputNodeID)

	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	parsed, err := ParseGraph(raw)
	if err != nil {
		t.Fatalf("ParseGraph error: %v", err)
	}

	n, _ := parsed.Node(TypeWidener)
	if n.Arity != StereoOnly {
		t.Fatalf("widener arity = %+v, want %+v", n.Arity, StereoOnly)
	}

	in, _ := parsed.Node(InputNodeID)
	if in.Arity != (Arity{}) {
		t.Fatalf("input arity = %+v, want zero", in.Arity)
	}
}

func TestArity(t *testing.T) {
	t.Parallel()

	downmix := Arity{In: 2, Out: 1}

	tests := []struct {
		name    string
		arity   Arity
		in      int
		accepts bool
		out     int
	}{
		{"any mono", Arity{}, 1, true, 1},
		{"any surround", Arity{}, 6, true, 6},
		{"stereo only on stereo", StereoOnly, 2, true, 2},
		{"stereo only on mono", StereoOnly, 1, false, 1},
		{"downmix on stereo", downmix, 2, true, 1},
		{"downmix on mono", downmix, 1, false, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.arity.Accepts(tc.in); got != tc.accepts {
				t.Fatalf("Accepts(%d) = %v, want %v", tc.in, got, tc.accepts)
			}

			if got := tc.arity.Outputs(tc.in); got != tc.out {
				t.Fatalf("Outputs(%d) = %d, want %d", tc.in, got, tc.out)
			}
		})
	}
}

func TestGraphOutputChannels(t *testing.T) {
	t.Parallel()

	widened := NewGraph()
	_ = widened.AddStage(Gain(2))
	_ = widened.AddStage(MidSideWidener(1.5))
	_ = widened.Series(InputNodeID, TypeGain, TypeWidener, OutputNodeID)

	for _, n := range []int{1, 2, 6} {
		got, err := widened.OutputChannels(n)
		if err != nil || got != n {
			t.Fatalf("OutputChannels(%d) = %d, %v; want %d", n, got, err, n)
		}
	}

	downmix := NewGraph()
	_ = downmix.AddNode(Params{ID: "down", Type: TypeGain, Arity: Arity{In: 2, Out: 1}, Num: map[string]float64{"factor": 1}})
	_ = downmix.Series(InputNodeID, "down", OutputNodeID)

	if got, err := downmix.OutputChannels(2); err != nil || got != 1 {
		t.Fatalf("downmix OutputChannels(2) = %d, %v; want 1", got, err)
	}

	if got, err := downmix.OutputChannels(1); err != nil || got != 1 {
		t.Fatalf("downmix OutputChannels(1) = %d, %v; want 1 (passthrough)", got, err)
	}

	mixed := NewGraph()
	_ = mixed.AddSplit("split")
	_ = mixed.AddNode(Params{ID: "down", Type: TypeGain, Arity: Arity{In: 2, Out: 1}, Num: map[string]float64{"factor": 1}})
	_ = mixed.AddStage(Gain(1))
	_ = mixed.AddSum("sum")
	_ = mixed.Series(InputNodeID, "split", "down", "sum", OutputNodeID)
	_ = mixed.Series("split", TypeGain, "sum")

	if _, err := mixed.OutputChannels(2); !errors.Is(err, core.ErrUnsupportedChannelLayout) {
		t.Fatalf("mixed arity error = %v, want ErrUnsupportedChannelLayout", err)
	}

	if _, err := widened.OutputChannels(0); !errors.Is(err, core.ErrUnsupportedChannelLayout) {
		t.Fatalf("zero channels error = %v, want ErrUnsupportedChannelLayout", err)
	}

	var nilGraph *Graph
	if _, err := nilGraph.OutputChannels(2); !errors.Is(err, ErrNoGraph) {
		t.Fatalf("nil graph error = %v, want ErrNoGraph", err)
	}
}

func TestParseGraphErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", "{not-json"},
		{"unknown node", `{"nodes":[],"connections":[{"from":"_input","to":"x"}]}`},
		{"cycle", `{"nodes":[{"id":"a","type":"gain"},{"id":"b","type":"gain"}],
			"connections":[{"from":"a","to":"b"},{"from":"b","to":"a"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseGraph([]byte(tc.raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
