// Package minimax finds the smallest number of checks per day that always
// contains the adversary.
//
// Given a transition.Graph, the answer is the least W ≥ 0 such that END is
// reachable from START using only edges of weight ≤ W: a bottleneck
// shortest-path problem. Reachability under a threshold is monotone in W, so
// any of three strategies finds the same value:
//
//	StrategyLinear      W = 0, 1, 2, … over edge-induced subgraphs (default)
//	StrategyBinary      bisection over [0, MaxWeight]
//	StrategyBottleneck  one Dijkstra-style pass minimizing the largest weight
//
// Whichever strategy picks W, the reported path is the breadth-first path of
// PathUnder(g, W), so results do not depend on the strategy.
package minimax
