package transition

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

var (
	// ErrBadWeight indicates a negative edge weight.
	ErrBadWeight = errors.New("transition: edge weight must be non-negative")

	// ErrSentinelEdge indicates an edge into START or out of END.
	ErrSentinelEdge = errors.New("transition: START has no incoming and END no outgoing edges")

	// ErrInvalidNode indicates the zero Node or a node with an unknown label.
	ErrInvalidNode = errors.New("transition: invalid node")
)

// Edge is one directed, weighted arc. Weight is the check count.
type Edge struct {
	From   Node
	To     Node
	Weight int
}

// String renders "from -w-> to".
func (e Edge) String() string {
	return fmt.Sprintf("%s -%d-> %s", e.From, e.Weight, e.To)
}

func compareEdges(a, b Edge) int {
	if c := a.From.Compare(b.From); c != 0 {
		return c
	}
	if c := a.To.Compare(b.To); c != 0 {
		return c
	}
	return a.Weight - b.Weight
}

// Stats is a read-only summary of a Graph.
type Stats struct {
	Nodes     int
	Edges     int
	EndEdges  int // edges whose destination is END
	MaxWeight int
}

// Graph is a directed, weighted multigraph over Nodes. Parallel edges are kept.
// All methods are safe for concurrent use.
type Graph struct {
	mu        sync.RWMutex
	nodes     map[Node]struct{}
	out       map[Node][]Edge
	edges     int
	endEdges  int
	maxWeight int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Node]struct{}),
		out:   make(map[Node][]Edge),
	}
}

// AddNode registers n; adding an existing node is a no-op.
func (g *Graph) AddNode(n Node) error {
	if !n.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidNode, n)
	}
	g.mu.Lock()
	g.nodes[n] = struct{}{}
	g.mu.Unlock()
	return nil
}

// AddEdge appends from→to with weight w, creating both endpoints lazily.
func (g *Graph) AddEdge(from, to Node, w int) error {
	if err := checkEdge(from, to, w); err != nil {
		return err
	}
	g.mu.Lock()
	g.addLocked(Edge{From: from, To: to, Weight: w})
	g.mu.Unlock()
	return nil
}

// AddEdges appends a batch under a single lock acquisition. The batch is
// validated up front; on error nothing is added.
func (g *Graph) AddEdges(es []Edge) error {
	for _, e := range es {
		if err := checkEdge(e.From, e.To, e.Weight); err != nil {
			return err
		}
	}
	g.mu.Lock()
	for _, e := range es {
		g.addLocked(e)
	}
	g.mu.Unlock()
	return nil
}

func checkEdge(from, to Node, w int) error {
	if !from.Valid() {
		return fmt.Errorf("%w: from %v", ErrInvalidNode, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: to %v", ErrInvalidNode, to)
	}
	if w < 0 {
		return fmt.Errorf("%w: %d", ErrBadWeight, w)
	}
	if to == Start || from == End {
		return fmt.Errorf("%w: %v -> %v", ErrSentinelEdge, from, to)
	}
	return nil
}

func (g *Graph) addLocked(e Edge) {
	g.nodes[e.From] = struct{}{}
	g.nodes[e.To] = struct{}{}
	g.out[e.From] = append(g.out[e.From], e)
	g.edges++
	if e.To == End {
		g.endEdges++
	}
	if e.Weight > g.maxWeight {
		g.maxWeight = e.Weight
	}
}

// HasNode reports whether n is present.
func (g *Graph) HasNode(n Node) bool {
	g.mu.RLock()
	_, ok := g.nodes[n]
	g.mu.RUnlock()
	return ok
}

// Nodes returns all nodes in Node.Compare order.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	ns := make([]Node, 0, len(g.nodes))
	for n := range g.nodes {
		ns = append(ns, n)
	}
	g.mu.RUnlock()
	slices.SortFunc(ns, Node.Compare)
	return ns
}

// Out returns the edges leaving n ordered by destination then weight.
func (g *Graph) Out(n Node) []Edge {
	g.mu.RLock()
	es := append([]Edge(nil), g.out[n]...)
	g.mu.RUnlock()
	slices.SortFunc(es, compareEdges)
	return es
}

// Edges returns every edge ordered by origin, destination, weight. The order
// does not depend on how many workers built the graph.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	es := make([]Edge, 0, g.edges)
	for _, list := range g.out {
		es = append(es, list...)
	}
	g.mu.RUnlock()
	slices.SortFunc(es, compareEdges)
	return es
}

// EdgeCount returns the number of edges, parallel ones included.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// MaxWeight returns the largest edge weight, 0 for an empty graph.
func (g *Graph) MaxWeight() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.maxWeight
}

// Stats returns a snapshot summary.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Stats{
		Nodes:     len(g.nodes),
		Edges:     g.edges,
		EndEdges:  g.endEdges,
		MaxWeight: g.maxWeight,
	}
}

// EdgeSubgraph returns a new graph holding only the edges for which keep
// returns true, plus their endpoints. g is not modified.
func (g *Graph) EdgeSubgraph(keep func(Edge) bool) *Graph {
	sub := NewGraph()
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, list := range g.out {
		for _, e := range list {
			if keep(e) {
				sub.addLocked(e)
			}
		}
	}
	return sub
}
