// Package transition materializes the decision graph of the foxhole problem.
//
// Vertices are Nodes: the START and END sentinels, or a pair (Label, set)
// meaning "the adversary may be on exactly these cells of partition Label".
// For every non-empty index set of each partition the builder runs the
// reducing-set search and adds one edge per tied-minimal outcome,
// weighted by its check count; outcomes that leave nothing reachable go to
// END. START feeds both full partitions with weight 0.
//
// Graph is a directed, weighted multigraph. Its maps are guarded by a
// sync.RWMutex so builder workers may add edges concurrently; Nodes, Edges and
// Out are returned in a deterministic order.
//
// Build options:
//
//	– WithRule(r)          fixes the acceptance rule (default: by cell parity).
//	– WithBinarySearch(b)  bisect check counts (default true).
//	– WithSymmetry(b)      derive Bottom→Top edges by relabeling Top→Bottom
//	                       ones when the grid has an index-preserving
//	                       reflection (default true).
//	– WithWorkers(n)       parallel searches (default runtime.NumCPU()).
//	– WithLogger(l)        logrus logger for enumeration telemetry.
//
// Errors:
//
//	ErrBadWeight        – negative edge weight.
//	ErrSentinelEdge     – an edge into START or out of END.
//	ErrInvalidNode      – the zero Node or a malformed one.
//	ErrOptionViolation  – WithWorkers(n) with n < 1.
//
// Search errors (search.ErrStructural, context cancellation) are returned
// unchanged.
package transition
