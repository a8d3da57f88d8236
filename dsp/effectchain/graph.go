package effectchain

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

const (
	// InputNodeID is the reserved node ID for the chain input.
	InputNodeID = "_input"
	// OutputNodeID is the reserved node ID for the chain output.
	OutputNodeID = "_output"

	// NodeTypeSplit fans one signal out to several consumers unchanged.
	NodeTypeSplit = "split"
	// NodeTypeSum adds all of its inputs sample by sample.
	NodeTypeSum = "sum"
)

// Edge is a directed connection between two graph nodes.
type Edge struct {
	From string
	To   string
}

// Graph is an acyclic composition of stages with explicit fan-out (split)
// and fan-in (sum) nodes between a reserved input and output node.
//
// A Graph only describes topology and parameters. Processing state lives in
// a [Chain] built from it, so a Graph can be rendered any number of times.
type Graph struct {
	nodes []Params
	index map[string]int
	edges []Edge
}

// NewGraph returns a graph holding only the input and output nodes.
func NewGraph() *Graph {
	g := &Graph{index: make(map[string]int)}
	g.addNode(Params{ID: InputNodeID, Type: InputNodeID})
	g.addNode(Params{ID: OutputNodeID, Type: OutputNodeID})

	return g
}

func (g *Graph) addNode(p Params) {
	g.index[p.ID] = len(g.nodes)
	g.nodes = append(g.nodes, p)
}

// AddStage adds a stage node using the stage name as node ID.
func (g *Graph) AddStage(s Stage) error {
	return g.AddNode(s.Params())
}

// AddNode adds a node. Structural types (split, sum) need no parameters.
func (g *Graph) AddNode(p Params) error {
	if p.ID == "" || p.Type == "" {
		return fmt.Errorf("effectchain: node needs id and type: %q/%q", p.ID, p.Type)
	}

	if p.Type == InputNodeID || p.Type == OutputNodeID {
		return fmt.Errorf("effectchain: reserved node type %q", p.Type)
	}

	if _, exists := g.index[p.ID]; exists {
		return fmt.Errorf("effectchain: %w: %s", ErrDuplicateNode, p.ID)
	}

	g.addNode(p.Clone())

	return nil
}

// AddSplit adds a fan-out node.
func (g *Graph) AddSplit(id string) error {
	return g.AddNode(Params{ID: id, Type: NodeTypeSplit})
}

// AddSum adds a fan-in node.
func (g *Graph) AddSum(id string) error {
	return g.AddNode(Params{ID: id, Type: NodeTypeSum})
}

// Connect adds an edge from one node to another.
func (g *Graph) Connect(from, to string) error {
	if _, ok := g.index[from]; !ok {
		return fmt.Errorf("effectchain: connect %s -> %s: %w: %s", from, to, ErrUnknownNode, from)
	}

	if _, ok := g.index[to]; !ok {
		return fmt.Errorf("effectchain: connect %s -> %s: %w: %s", from, to, ErrUnknownNode, to)
	}

	if from == to || to == InputNodeID || from == OutputNodeID {
		return fmt.Errorf("effectchain: invalid connection %s -> %s", from, to)
	}

	g.edges = append(g.edges, Edge{From: from, To: to})

	return nil
}

// Series connects the given nodes one after another.
func (g *Graph) Series(ids ...string) error {
	for i := 1; i < len(ids); i++ {
		if err := g.Connect(ids[i-1], ids[i]); err != nil {
			return err
		}
	}

	return nil
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Params, bool) {
	i, ok := g.index[id]
	if !ok {
		return Params{}, false
	}

	return g.nodes[i].Clone(), true
}

// Len returns the number of nodes including input and output.
func (g *Graph) Len() int { return len(g.nodes) }

// Edges returns a copy of the connections in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Order returns the node IDs in processing order.
func (g *Graph) Order() ([]string, error) {
	cg, err := g.compile()
	if err != nil {
		return nil, err
	}

	return cg.Order, nil
}

// Stages returns the stage nodes in processing order, skipping the input,
// output and routing nodes.
func (g *Graph) Stages() ([]Params, error) {
	cg, err := g.compile()
	if err != nil {
		return nil, err
	}

	out := make([]Params, 0, len(cg.Order))
	for _, id := range cg.Order {
		if p := cg.Nodes[id]; !isStructuralNodeType(p.Type) {
			out = append(out, p.Clone())
		}
	}

	return out, nil
}

// OutputChannels propagates inputChannels through the declared node arities
// and returns the channel count reaching the output node. Nodes without
// parents carry inputChannels. A node whose parents disagree yields
// core.ErrUnsupportedChannelLayout.
func (g *Graph) OutputChannels(inputChannels int) (int, error) {
	if g == nil {
		return 0, fmt.Errorf("effectchain: %w", ErrNoGraph)
	}

	if inputChannels < 1 {
		return 0, fmt.Errorf("effectchain: %d input channels: %w", inputChannels, core.ErrUnsupportedChannelLayout)
	}

	cg, err := g.compile()
	if err != nil {
		return 0, err
	}

	counts := make(map[string]int, len(cg.Order))

	for _, id := range cg.Order {
		n := inputChannels

		for i, edge := range cg.Incoming[id] {
			c := counts[edge.From]
			if i > 0 && c != n {
				return 0, fmt.Errorf("effectchain: node %q mixes %d and %d channels: %w",
					id, n, c, core.ErrUnsupportedChannelLayout)
			}

			n = c
		}

		counts[id] = cg.Nodes[id].Arity.Outputs(n)
	}

	return counts[OutputNodeID], nil
}

// compiledGraph holds the compiled effect chain graph with adjacency info
// and a topologically sorted traversal order.
type compiledGraph struct {
	Nodes    map[string]Params
	Incoming map[string][]Edge
	Outgoing map[string][]Edge
	Order    []string
}

// compile performs a topological sort (Kahn's algorithm). Ties are broken
// by insertion order so the traversal is deterministic.
func (g *Graph) compile() (*compiledGraph, error) {
	nodes := make(map[string]Params, len(g.nodes))
	incoming := make(map[string][]Edge, len(g.nodes))
	outgoing := make(map[string][]Edge, len(g.nodes))
	indegree := make(map[string]int, len(g.nodes))

	for _, n := range g.nodes {
		nodes[n.ID] = n
	}

	for _, e := range g.edges {
		outgoing[e.From] = append(outgoing[e.From], e)
		incoming[e.To] = append(incoming[e.To], e)
		indegree[e.To]++
	}

	queue := make([]string, 0, len(g.nodes))

	for _, n := range g.nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, edge := range outgoing[id] {
			indegree[edge.To]--
			if indegree[edge.To] == 0 {
				queue = append(queue, edge.To)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("effectchain: invalid chain graph: %w", ErrCycle)
	}

	return &compiledGraph{
		Nodes:    nodes,
		Incoming: incoming,
		Outgoing: outgoing,
		Order:    order,
	}, nil
}

// graphNode is a JSON-serializable node in the effect chain graph.
type graphNode struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Bypassed bool               `json:"bypassed,omitempty"`
	Arity    *Arity             `json:"arity,omitempty"`
	Params   map[string]float64 `json:"params,omitempty"`
}

// graphConnection is a JSON-serializable connection between two graph nodes.
type graphConnection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// graphState is the root JSON structure for the effect chain graph.
type graphState struct {
	Nodes       []graphNode       `json:"nodes"`
	Connections []graphConnection `json:"connections"`
}

// MarshalJSON encodes the graph as nodes and connections.
func (g *Graph) MarshalJSON() ([]byte, error) {
	state := graphState{
		Nodes:       make([]graphNode, len(g.nodes)),
		Connections: make([]graphConnection, len(g.edges)),
	}

	for i, n := range g.nodes {
		state.Nodes[i] = graphNode{ID: n.ID, Type: n.Type, Bypassed: n.Bypassed, Params: maps.Clone(n.Num)}
		if n.Arity != (Arity{}) {
			arity := n.Arity
			state.Nodes[i].Arity = &arity
		}
	}

	for i, e := range g.edges {
		state.Connections[i] = graphConnection{From: e.From, To: e.To}
	}

	return json.Marshal(state)
}

// ParseGraph decodes a graph produced by MarshalJSON. The input and output
// nodes are implicit and may be omitted.
func ParseGraph(raw []byte) (*Graph, error) {
	var state graphState

	err := json.Unmarshal(raw, &state)
	if err != nil {
		return nil, fmt.Errorf("invalid chain graph json: %w", err)
	}

	g := NewGraph()

	for _, n := range state.Nodes {
		if n.ID == InputNodeID || n.ID == OutputNodeID {
			continue
		}

		p := Params{ID: n.ID, Type: n.Type, Bypassed: n.Bypassed, Num: n.Params}
		if n.Arity != nil {
			p.Arity = *n.Arity
		}

		err = g.AddNode(p)
		if err != nil {
			return nil, err
		}
	}

	for _, c := range state.Connections {
		err = g.Connect(c.From, c.To)
		if err != nil {
			return nil, err
		}
	}

	if _, err = g.compile(); err != nil {
		return nil, err
	}

	return g, nil
}

// isStructuralNodeType returns true for I/O and routing nodes that don't need a runtime.
func isStructuralNodeType(nodeType string) bool {
	return nodeType == InputNodeID ||
		nodeType == OutputNodeID ||
		nodeType == NodeTypeSplit ||
		nodeType == NodeTypeSum
}
