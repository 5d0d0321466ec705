// Package foxhole solves the search-for-the-fox game on rectangular grids of
// any dimension.
//
// Every night the fox moves to a cell adjacent to the one it occupied. Every
// day the hunter inspects W cells. The module computes the smallest W that
// guarantees the fox is eventually found, no matter where it starts.
//
// The grid is bipartite, so the fox alternates between two partitions and
// what the hunter knows is a set of cells the fox may still occupy on one of
// them. The work is split into layers:
//
//	grid/       grid vertices, the parity bipartition, neighbor tables
//	search/     the reducing-set search: the fewest checks that shrink a
//	            reachable set under the acceptance rule
//	transition/ the decision graph over (partition, reachable set) nodes
//	            with START and END sentinels, built in parallel
//	minimax/    the least threshold W connecting START to END
//	pipeline/   configuration, end-to-end run, console report
//	cmd/foxhole the command-line entry point
//
// Quick example, the 2×2 grid:
//
//	(0,0)───(0,1)
//	  │       │
//	(1,0)───(1,1)
//
// Top = {(0,0),(1,1)}, Bottom = {(0,1),(1,0)}. Each Top cell sees both
// Bottom cells, so checking one cell changes nothing and the answer is 2.
//
//	go run ./cmd/foxhole -dims 2,2 -path
package foxhole
