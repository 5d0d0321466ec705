package minimax

import (
	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

// hop is a queued node together with the edge that discovered it.
type hop struct {
	node   transition.Node
	parent transition.Node
	weight int
}

// walker holds breadth-first state for one threshold query.
type walker struct {
	g       *transition.Graph
	limit   int
	queue   []transition.Node
	visited map[transition.Node]hop
}

// PathUnder reports whether END is reachable from START over edges of weight
// ≤ w, and if so returns the path with the fewest edges. Ties are broken by
// transition.Graph.Out order, so the path is deterministic.
func PathUnder(g *transition.Graph, w int) ([]transition.Node, bool) {
	path, _, ok := pathUnder(g, w)
	return path, ok
}

func pathUnder(g *transition.Graph, w int) ([]transition.Node, []int, bool) {
	if g == nil || !g.HasNode(transition.Start) {
		return nil, nil, false
	}
	wk := &walker{
		g:       g,
		limit:   w,
		visited: make(map[transition.Node]hop, g.NodeCount()),
	}
	wk.enqueue(hop{node: transition.Start})
	if !wk.loop() {
		return nil, nil, false
	}
	path, weights := wk.trace()
	return path, weights, true
}

func (wk *walker) enqueue(h hop) {
	wk.visited[h.node] = h
	wk.queue = append(wk.queue, h.node)
}

// loop drains the queue and returns true as soon as END is discovered.
func (wk *walker) loop() bool {
	for len(wk.queue) > 0 {
		cur := wk.queue[0]
		wk.queue = wk.queue[1:]
		for _, e := range wk.g.Out(cur) {
			if e.Weight > wk.limit {
				continue
			}
			if _, seen := wk.visited[e.To]; seen {
				continue
			}
			wk.enqueue(hop{node: e.To, parent: cur, weight: e.Weight})
			if e.To == transition.End {
				return true
			}
		}
	}
	return false
}

// trace walks parent links back from END.
func (wk *walker) trace() ([]transition.Node, []int) {
	var path []transition.Node
	var weights []int
	for n := transition.End; n != transition.Start; {
		h := wk.visited[n]
		path = append(path, n)
		weights = append(weights, h.weight)
		n = h.parent
	}
	path = append(path, transition.Start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	for i, j := 0, len(weights)-1; i < j; i, j = i+1, j-1 {
		weights[i], weights[j] = weights[j], weights[i]
	}
	return path, weights
}
