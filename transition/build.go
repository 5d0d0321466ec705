package transition

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/search"
)

// Build enumerates every non-empty index set of both partitions of gc, runs
// the reducing-set search on each, and returns the resulting graph.
//
// Top-origin sets carry LabelTop and their destinations LabelBottom, and vice
// versa. When symmetry is enabled and gc.Mirror reports an index-preserving
// reflection, the Bottom-origin edges are the Top-origin edges with both
// labels swapped, END edges included; otherwise the search runs again on
// gc.Flip().
//
// Any search error aborts the build and is returned as is.
func Build(ctx context.Context, gc *grid.Context, opts ...Option) (*Graph, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers < 1 {
		return nil, fmt.Errorf("%w: workers %d < 1", ErrOptionViolation, o.Workers)
	}
	rule := search.DefaultRule(gc.Cells())
	if o.RuleSet {
		rule = o.Rule
	}
	log := o.Logger.WithFields(logrus.Fields{
		"cells":   gc.Cells(),
		"rule":    rule.String(),
		"workers": o.Workers,
	})
	sopts := []search.Option{search.WithRule(rule), search.WithBinarySearch(o.BinarySearch)}

	g := NewGraph()
	if err := g.AddEdges([]Edge{
		{From: Start, To: Reachable(LabelTop, search.Full(gc.Top().Len()))},
		{From: Start, To: Reachable(LabelBottom, search.Full(gc.Bottom().Len()))},
	}); err != nil {
		return nil, err
	}

	started := time.Now()
	if err := enumerate(ctx, g, gc, LabelTop, sopts, o.Workers, log); err != nil {
		return nil, err
	}

	axis, mirrored := 0, false
	if o.Symmetry {
		axis, mirrored = gc.Mirror()
	}
	if mirrored {
		t := time.Now()
		n, err := mirror(g)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"direction": "1->0",
			"axis":      axis,
			"edges":     n,
			"elapsed":   time.Since(t),
		}).Debug("mirrored edges")
	} else if err := enumerate(ctx, g, gc.Flip(), LabelBottom, sopts, o.Workers, log); err != nil {
		return nil, err
	}

	st := g.Stats()
	log.WithFields(logrus.Fields{
		"nodes":    st.Nodes,
		"edges":    st.Edges,
		"endEdges": st.EndEdges,
		"mirrored": mirrored,
		"elapsed":  time.Since(started),
	}).Info("transition graph built")
	return g, nil
}

// enumerate adds the edges of every non-empty subset of gc.Top(), labeled
// from, to g. At most workers searches run at once; each goroutine borrows a
// Searcher from a pool because Searchers are not shareable.
func enumerate(ctx context.Context, g *Graph, gc *grid.Context, from Label,
	sopts []search.Option, workers int, log logrus.FieldLogger) error {
	t := time.Now()
	before := g.EdgeCount()

	pool := sync.Pool{New: func() any { return search.New(gc, sopts...) }}
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	origins := 0
	genErr := eachSubset(gc.Top().Len(), func(r search.ReachableSet) error {
		if err := ectx.Err(); err != nil {
			return err
		}
		origins++
		eg.Go(func() error {
			s := pool.Get().(*search.Searcher)
			defer pool.Put(s)
			outs, err := s.FindReducingSet(ectx, r)
			if err != nil {
				return err
			}
			return g.AddEdges(outcomeEdges(from, r, outs))
		})
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	if genErr != nil {
		return genErr
	}

	log.WithFields(logrus.Fields{
		"direction": fmt.Sprintf("%d->%d", from, from.Other()),
		"origins":   origins,
		"edges":     g.EdgeCount() - before,
		"elapsed":   time.Since(t),
	}).Debug("enumerated origins")
	return nil
}

// outcomeEdges turns the outcomes of searching r into edges; empty
// destinations become END.
func outcomeEdges(from Label, r search.ReachableSet, outs []search.CheckOutcome) []Edge {
	origin := Reachable(from, r)
	es := make([]Edge, 0, len(outs))
	for _, out := range outs {
		to := End
		if len(out.Reachable) > 0 {
			to = Reachable(from.Other(), out.Reachable)
		}
		es = append(es, Edge{From: origin, To: to, Weight: out.Checks})
	}
	return es
}

// mirror adds, for each Top-origin edge, the edge with both labels swapped.
func mirror(g *Graph) (int, error) {
	var es []Edge
	for _, e := range g.Edges() {
		if e.From.Kind() != KindReachable || e.From.Label() != LabelTop {
			continue
		}
		es = append(es, Edge{
			From:   e.From.Relabel(LabelBottom),
			To:     e.To.Relabel(LabelTop),
			Weight: e.Weight,
		})
	}
	return len(es), g.AddEdges(es)
}

// eachSubset calls fn with every non-empty subset of [0,n), by size and then
// lexicographically. Each set passed to fn is freshly allocated. It stops at
// the first error from fn.
func eachSubset(n int, fn func(search.ReachableSet) error) error {
	for k := 1; k <= n; k++ {
		pos := make([]int, k)
		for i := range pos {
			pos[i] = i
		}
		for {
			if err := fn(search.NewReachableSet(pos...)); err != nil {
				return err
			}
			if !search.NextCombination(pos, n) {
				break
			}
		}
	}
	return nil
}
