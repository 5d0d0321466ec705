// Package search finds reducing sets: the fewest checks, taken from the
// currently reachable cells of one partition, after which the opposite
// partition's reachable fraction obeys the configured Rule.
//
// Given a ReachableSet R over Top, a check of k cells removes them from R;
// a Bottom cell stays reachable iff it neighbors at least one remaining Top
// cell. With ε = 0.1,
//
//	before = (|R| − ε) / |Top|
//	after  = (|reachable Bottom| − ε) / |Bottom|
//
// RuleStrictDecrease accepts after < before, RuleNonIncrease accepts
// after ≤ before. For a fixed k, every k-subset of R is tried in lexicographic
// order and only the accepted subsets with the smallest after survive.
// The minimal accepting k is located by binary search over
// [min(D−1, |R|), |R|], or by a linear scan when binary search is disabled.
//
// Binary search relies on acceptance being monotone in k. Removing one more
// cell can only shrink the reachable Bottom set, so an accepted subset stays
// accepted when extended; AcceptingCounts brute-forces every k so tests can
// confirm there is no gap.
//
// Errors:
//
//   - ErrInvalidReachable: empty set, unsorted or duplicate indices, or
//     indices outside Top.
//   - ErrBadCheckCount:    k outside [0, |R|].
//   - ErrStructural / *StructuralError: a retained Top cell has no neighbor
//     in Bottom, which can only mean the partitions were modeled wrongly.
package search
