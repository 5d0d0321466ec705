package minimax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

var (
	// ErrNoSolution means no threshold up to the largest edge weight connects
	// START to END.
	ErrNoSolution = errors.New("minimax: no checking path found")

	// ErrEmptyGraph means the graph lacks START.
	ErrEmptyGraph = errors.New("minimax: graph has no START node")

	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("minimax: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("minimax: invalid option supplied")
)

// Strategy selects how W is located.
type Strategy int

const (
	// StrategyLinear tries W = 0, 1, 2, … in turn.
	StrategyLinear Strategy = iota
	// StrategyBinary bisects W over [0, MaxWeight].
	StrategyBinary
	// StrategyBottleneck runs one minimax Dijkstra pass.
	StrategyBottleneck
)

var strategyNames = [...]string{"linear", "binary", "bottleneck"}

// String implements fmt.Stringer: "linear", "binary" or "bottleneck".
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
}

// Options configures Solve.
type Options struct {
	Strategy Strategy

	// internal error recorded during option parsing
	err error
}

// Option configures Solve via functional arguments. An invalid Option is
// recorded and surfaced by Solve as ErrOptionViolation.
type Option func(*Options)

// DefaultOptions selects StrategyLinear.
func DefaultOptions() Options {
	return Options{Strategy: StrategyLinear}
}

// WithStrategy selects the search strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s < StrategyLinear || s > StrategyBottleneck {
			o.err = fmt.Errorf("%w: strategy %d", ErrOptionViolation, int(s))
			return
		}
		o.Strategy = s
	}
}

// Result is the solution of one graph.
type Result struct {
	// Checks is the minimal W.
	Checks int
	// Path runs from START to END.
	Path []transition.Node
	// Weights[i] is the weight of the edge Path[i] → Path[i+1].
	Weights []int
}
