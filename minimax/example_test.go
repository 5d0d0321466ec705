package minimax_test

import (
	"context"
	"fmt"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
	"github.com/adpolican/dynamic-foxhole-solver/minimax"
	"github.com/adpolican/dynamic-foxhole-solver/transition"
)

// ExampleSolve solves the 2×2 grid: whichever partition the adversary starts
// on, both of its cells must be checked on the first day.
func ExampleSolve() {
	gc, _ := grid.NewContext([]int{2, 2})
	g, _ := transition.Build(context.Background(), gc)

	res, err := minimax.Solve(context.Background(), g, minimax.WithStrategy(minimax.StrategyBottleneck))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("checks:", res.Checks)
	fmt.Println("path:  ", res.Path)
	fmt.Println("costs: ", res.Weights)
	// Output:
	// checks: 2
	// path:   [START 0:{0,1} END]
	// costs:  [0 2]
}
