package minimax_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/search"
	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

var strategies = []minimax.Strategy{
	minimax.StrategyLinear,
	minimax.StrategyBinary,
	minimax.StrategyBottleneck,
}

var nodeEqual = cmp.Comparer(func(a, b transition.Node) bool { return a == b })

func n(i int) transition.Node {
	return transition.Reachable(transition.LabelTop, search.ReachableSet{i})
}

func graphOf(t *testing.T, es ...transition.Edge) *transition.Graph {
	t.Helper()
	g := transition.NewGraph()
	require.NoError(t, g.AddEdges(es))
	return g
}

// diamond: the detour through n(2) has a smaller bottleneck than n(1).
func diamond(t *testing.T) *transition.Graph {
	return graphOf(t,
		transition.Edge{From: transition.Start, To: n(0), Weight: 0},
		transition.Edge{From: n(0), To: n(1), Weight: 3},
		transition.Edge{From: n(1), To: transition.End, Weight: 0},
		transition.Edge{From: n(0), To: n(2), Weight: 1},
		transition.Edge{From: n(2), To: n(3), Weight: 2},
		transition.Edge{From: n(3), To: transition.End, Weight: 1},
	)
}

func TestPathUnder(t *testing.T) {
	g := diamond(t)

	_, ok := minimax.PathUnder(g, 1)
	assert.False(t, ok)

	path, ok := minimax.PathUnder(g, 2)
	require.True(t, ok)
	assert.Equal(t, []transition.Node{transition.Start, n(0), n(2), n(3), transition.End}, path)

	// with W = 3 the shorter route wins
	path, ok = minimax.PathUnder(g, 3)
	require.True(t, ok)
	assert.Equal(t, []transition.Node{transition.Start, n(0), n(1), transition.End}, path)

	_, ok = minimax.PathUnder(nil, 10)
	assert.False(t, ok)
	_, ok = minimax.PathUnder(transition.NewGraph(), 10)
	assert.False(t, ok)
}

func TestSolveDiamond(t *testing.T) {
	want := &minimax.Result{
		Checks:  2,
		Path:    []transition.Node{transition.Start, n(0), n(2), n(3), transition.End},
		Weights: []int{0, 1, 2, 1},
	}
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			got, err := minimax.Solve(context.Background(), diamond(t), minimax.WithStrategy(s))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, nodeEqual); diff != "" {
				t.Fatalf("Solve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParallelEdgeUsesLighterWeight(t *testing.T) {
	g := graphOf(t,
		transition.Edge{From: transition.Start, To: n(0), Weight: 0},
		transition.Edge{From: n(0), To: transition.End, Weight: 5},
		transition.Edge{From: n(0), To: transition.End, Weight: 2},
	)
	for _, s := range strategies {
		res, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Checks, s.String())
		assert.Equal(t, []int{0, 2}, res.Weights, s.String())
	}
}

func TestNoSolution(t *testing.T) {
	// a cycle that never leaves, and an END nobody can reach
	g := graphOf(t,
		transition.Edge{From: transition.Start, To: n(0), Weight: 0},
		transition.Edge{From: n(0), To: n(1), Weight: 1},
		transition.Edge{From: n(1), To: n(0), Weight: 1},
		transition.Edge{From: n(5), To: transition.End, Weight: 4},
	)
	for _, s := range strategies {
		_, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
		require.ErrorIs(t, err, minimax.ErrNoSolution, s.String())
	}
}

func TestEmptyGraph(t *testing.T) {
	_, err := minimax.Solve(context.Background(), transition.NewGraph())
	require.ErrorIs(t, err, minimax.ErrEmptyGraph)

	noStart := graphOf(t, transition.Edge{From: n(0), To: transition.End, Weight: 1})
	_, err = minimax.Solve(context.Background(), noStart)
	require.ErrorIs(t, err, minimax.ErrEmptyGraph)

	_, err = minimax.Solve(context.Background(), nil)
	require.ErrorIs(t, err, minimax.ErrGraphNil)
}

// TestNoEdgeIntoEnd: a graph that never reaches END is unsolvable, not empty.
func TestNoEdgeIntoEnd(t *testing.T) {
	bot0 := transition.Reachable(transition.LabelBottom, search.ReachableSet{0})
	g := graphOf(t,
		transition.Edge{From: transition.Start, To: n(0), Weight: 0},
		transition.Edge{From: n(0), To: bot0, Weight: 1},
	)
	for _, s := range strategies {
		_, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
		require.ErrorIs(t, err, minimax.ErrNoSolution, s.String())
		require.NotErrorIs(t, err, minimax.ErrEmptyGraph, s.String())
	}
}

func TestZeroThreshold(t *testing.T) {
	g := graphOf(t, transition.Edge{From: transition.Start, To: transition.End, Weight: 0})
	res, err := minimax.Solve(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Checks)
	assert.Equal(t, []transition.Node{transition.Start, transition.End}, res.Path)
}

func TestOptions(t *testing.T) {
	_, err := minimax.Solve(context.Background(), diamond(t), minimax.WithStrategy(minimax.Strategy(7)))
	require.ErrorIs(t, err, minimax.ErrOptionViolation)

	for _, s := range strategies {
		got, err := minimax.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err = minimax.ParseStrategy("greedy")
	require.ErrorIs(t, err, minimax.ErrOptionViolation)
	assert.Equal(t, "Strategy(9)", minimax.Strategy(9).String())
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, s := range strategies {
		_, err := minimax.Solve(ctx, diamond(t), minimax.WithStrategy(s))
		require.ErrorIs(t, err, context.Canceled, s.String())
	}
}

// TestStrategiesAgreeOnRandomGraphs: connectivity under a threshold is
// monotone, so all strategies land on the same W and the same path.
func TestStrategiesAgreeOnRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		g := transition.NewGraph()
		const size = 12
		require.NoError(t, g.AddEdge(transition.Start, n(0), 0))
		for e := 0; e < 30; e++ {
			require.NoError(t, g.AddEdge(n(rng.Intn(size)), n(rng.Intn(size)), rng.Intn(6)))
		}
		require.NoError(t, g.AddEdge(n(rng.Intn(size)), transition.End, rng.Intn(6)))
		require.NoError(t, g.AddEdge(n(rng.Intn(size)), transition.End, rng.Intn(6)))

		var first *minimax.Result
		var firstErr error
		for i, s := range strategies {
			res, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
			if i == 0 {
				first, firstErr = res, err
				continue
			}
			if firstErr != nil {
				require.ErrorIs(t, err, minimax.ErrNoSolution, "round %d %s", round, s)
				continue
			}
			require.NoError(t, err, "round %d %s", round, s)
			if diff := cmp.Diff(first, res, nodeEqual); diff != "" {
				t.Fatalf("round %d %s (-linear +%s):\n%s", round, s, s, diff)
			}
		}
		if firstErr == nil {
			for _, w := range first.Weights {
				require.LessOrEqual(t, w, first.Checks)
			}
		}
	}
}

func buildGraph(t *testing.T, dims []int, opts ...transition.Option) *transition.Graph {
	t.Helper()
	gc, err := grid.NewContext(dims)
	require.NoError(t, err)
	g, err := transition.Build(context.Background(), gc, opts...)
	require.NoError(t, err)
	return g
}

func TestSquare(t *testing.T) {
	g := buildGraph(t, []int{2, 2})
	want := &minimax.Result{
		Checks: 2,
		Path: []transition.Node{
			transition.Start,
			transition.Reachable(transition.LabelTop, search.Full(2)),
			transition.End,
		},
		Weights: []int{0, 2},
	}
	for _, s := range strategies {
		got, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, nodeEqual); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", s, diff)
		}
	}
}

func TestSquareNonIncreaseHasNoSolution(t *testing.T) {
	g := buildGraph(t, []int{2, 2}, transition.WithRule(search.RuleNonIncrease))
	for _, s := range strategies {
		_, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
		require.ErrorIs(t, err, minimax.ErrNoSolution, s.String())
	}
}

func TestHypercubeStrategiesAgree(t *testing.T) {
	g := buildGraph(t, []int{2, 2, 2, 2})
	var ws []int
	for _, s := range strategies {
		res, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s))
		require.NoError(t, err)
		require.Equal(t, transition.Start, res.Path[0])
		require.Equal(t, transition.End, res.Path[len(res.Path)-1])
		require.Len(t, res.Weights, len(res.Path)-1)
		ws = append(ws, res.Checks)
	}
	require.Equal(t, []int{ws[0], ws[0], ws[0]}, ws)
	require.Positive(t, ws[0])
}

func BenchmarkSolveHypercube(b *testing.B) {
	gc, err := grid.NewContext([]int{2, 2, 2, 2})
	require.NoError(b, err)
	g, err := transition.Build(context.Background(), gc)
	require.NoError(b, err)
	for _, s := range strategies {
		b.Run(s.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(s)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
