package minimax

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

// Solve returns the least W for which START reaches END over edges of weight
// ≤ W, with a witnessing path.
//
// Returns ErrGraphNil, ErrEmptyGraph when START is missing, ErrOptionViolation
// for bad options, ErrNoSolution when no edge enters END or even the largest
// weight leaves END unreachable, or ctx.Err() on cancellation.
func Solve(ctx context.Context, g *transition.Graph, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasNode(transition.Start) {
		return nil, ErrEmptyGraph
	}
	if !g.HasNode(transition.End) {
		return nil, fmt.Errorf("%w: no edge reaches END", ErrNoSolution)
	}

	var (
		w   int
		err error
	)
	switch o.Strategy {
	case StrategyBinary:
		w, err = bisect(ctx, g)
	case StrategyBottleneck:
		w, err = bottleneck(ctx, g)
	default:
		w, err = linear(ctx, g)
	}
	if err != nil {
		return nil, err
	}

	path, weights, ok := pathUnder(g, w)
	if !ok {
		// every strategy only returns a w that connects START to END
		return nil, fmt.Errorf("%w: threshold %d lost its path", ErrNoSolution, w)
	}
	return &Result{Checks: w, Path: path, Weights: weights}, nil
}

func noSolution(g *transition.Graph) error {
	return fmt.Errorf("%w: largest edge weight %d", ErrNoSolution, g.MaxWeight())
}

// linear tries W = 0, 1, … on the edge-induced subgraph of edges ≤ W.
func linear(ctx context.Context, g *transition.Graph) (int, error) {
	for w := 0; w <= g.MaxWeight(); w++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		limit := w
		sub := g.EdgeSubgraph(func(e transition.Edge) bool { return e.Weight <= limit })
		if _, ok := PathUnder(sub, limit); ok {
			return w, nil
		}
	}
	return 0, noSolution(g)
}

// bisect finds the least connecting W in [0, MaxWeight].
func bisect(ctx context.Context, g *transition.Graph) (int, error) {
	lo, hi := 0, g.MaxWeight()
	if _, ok := PathUnder(g, hi); !ok {
		return 0, noSolution(g)
	}
	for lo < hi {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		mid := lo + (hi-lo)/2
		if _, ok := PathUnder(g, mid); ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}

// bottleneck runs Dijkstra with path cost max(edge weights) instead of the sum.
// The first time END is popped its cost is W.
func bottleneck(ctx context.Context, g *transition.Graph) (int, error) {
	best := map[transition.Node]int{transition.Start: 0}
	done := make(map[transition.Node]bool, g.NodeCount())
	pq := nodePQ{{node: transition.Start, cost: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		item := heap.Pop(&pq).(*nodeItem)
		if done[item.node] {
			continue
		}
		done[item.node] = true
		if item.node == transition.End {
			return item.cost, nil
		}
		for _, e := range g.Out(item.node) {
			c := max(item.cost, e.Weight)
			if cur, ok := best[e.To]; ok && cur <= c {
				continue
			}
			best[e.To] = c
			heap.Push(&pq, &nodeItem{node: e.To, cost: c})
		}
	}
	return 0, noSolution(g)
}

// nodeItem is a heap entry; stale entries are skipped when popped.
type nodeItem struct {
	node transition.Node
	cost int
}

// nodePQ is a min-heap of *nodeItem by cost, ties by node order.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].node.Compare(pq[j].node) < 0
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
