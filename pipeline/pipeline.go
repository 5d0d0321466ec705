package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/search"
	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

// Run builds the grid for cfg.Dims, materializes its transition graph and
// solves it. Errors keep their sentinels: grid.ErrInvalidInput,
// search.ErrStructural and minimax.ErrNoSolution can be told apart with
// errors.Is. A nil log discards telemetry.
func Run(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	gc, err := grid.NewContext(cfg.Dims)
	if err != nil {
		return nil, err
	}
	rule, fixed, _ := cfg.rule()
	if !fixed {
		rule = search.DefaultRule(gc.Cells())
	}
	strategy, _ := minimax.ParseStrategy(cfg.Strategy)

	log.WithFields(cfg.Fields()).Debug("config")

	t := time.Now()
	g, err := transition.Build(ctx, gc,
		transition.WithRule(rule),
		transition.WithBinarySearch(cfg.BinarySearch),
		transition.WithSymmetry(cfg.Symmetry),
		transition.WithWorkers(cfg.workers()),
		transition.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	buildTime := time.Since(t)

	t = time.Now()
	res, err := minimax.Solve(ctx, g, minimax.WithStrategy(strategy))
	if err != nil {
		return nil, err
	}
	solveTime := time.Since(t)

	rep := &Report{
		Dims:      append([]int(nil), cfg.Dims...),
		Rule:      rule,
		Strategy:  strategy,
		Top:       gc.Top().Len(),
		Bottom:    gc.Bottom().Len(),
		Graph:     g.Stats(),
		Checks:    res.Checks,
		Path:      res.Path,
		Weights:   res.Weights,
		ShowPath:  cfg.ShowPath,
		BuildTime: buildTime,
		SolveTime: solveTime,
	}
	log.WithFields(rep.Fields()).Info("solved")
	return rep, nil
}
