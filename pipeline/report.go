package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/search"
	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

// Report is the outcome of one Run.
type Report struct {
	Dims     []int
	Rule     search.Rule
	Strategy minimax.Strategy
	Top      int // cells in the partition holding the origin
	Bottom   int
	Graph    transition.Stats

	Checks  int
	Path    []transition.Node
	Weights []int

	ShowPath  bool
	BuildTime time.Duration
	SolveTime time.Duration
}

// Fields summarizes r as log fields.
func (r *Report) Fields() logrus.Fields {
	return map[string]any{
		"dims":       fmt.Sprint(r.Dims),
		"rule":       r.Rule.String(),
		"strategy":   r.Strategy.String(),
		"nodes":      r.Graph.Nodes,
		"edges":      r.Graph.Edges,
		"checks":     r.Checks,
		"path_len":   len(r.Path),
		"build_time": r.BuildTime.String(),
		"solve_time": r.SolveTime.String(),
	}
}

// Write renders the console report:
//
//	Fox hole graph dimensions [2 2]
//	Result: 2 check(s) per day
//
// followed, when ShowPath is set, by one line per step of the path.
func (r *Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Fox hole graph dimensions", r.Dims); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Result: %d check(s) per day\n", r.Checks); err != nil {
		return err
	}
	if !r.ShowPath || len(r.Path) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Path: %s\n", r.Path[0]); err != nil {
		return err
	}
	for i, n := range r.Path[1:] {
		if _, err := fmt.Fprintf(w, "  -%d-> %s\n", r.Weights[i], n); err != nil {
			return err
		}
	}
	return nil
}
