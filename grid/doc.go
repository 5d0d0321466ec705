// Package grid models the search space of the foxhole problem: an
// n-dimensional grid graph whose cells are adjacent iff their Manhattan
// distance is exactly 1, split into its two color classes.
//
// What:
//
//   - Grid enumerates every cell of a shape such as [2,2,2,2] in
//     lexicographic order and answers adjacency queries.
//   - Bipartition two-colors the grid by BFS from the origin cell, so the
//     origin's class (even coordinate sum) becomes Top.
//   - Context freezes a grid, its two partitions and the precomputed
//     Top↔Bottom neighbor lists into one immutable value that the search
//     and builder packages share by pointer.
//
// Complexity:
//
//   - New:          O(N·D) time and memory, N = Π dims, D = len(dims).
//   - Bipartition:  O(N·D) time, O(N) memory.
//   - NewContext:   O(N·D·log N).
//
// Errors:
//
//   - ErrInvalidInput: empty dimension vector, non-positive axis length,
//     or a shape whose partitions would be empty (a single cell).
//   - ErrNotBipartite: the two-coloring found a same-colored edge.
package grid
