package search

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
)

// ctxCheckEvery is how many subsets are evaluated between cancellation checks.
const ctxCheckEvery = 1 << 10

// Searcher runs reducing-set searches from Top to Bottom of one grid.Context.
// A Searcher holds scratch buffers and is not safe for concurrent use; create
// one per goroutine. The Context itself is shared read-only.
type Searcher struct {
	gc   *grid.Context
	opts Options

	// scratch
	removed []bool // indexed by Top index
	stamp   []int  // stamp[j] == gen marks Bottom[j] reachable this round
	gen     int
	live    []int // reachable Bottom indices of the current subset
}

// New returns a Searcher over gc. Without options it uses DefaultOptions(gc.Cells()).
func New(gc *grid.Context, opts ...Option) *Searcher {
	o := DefaultOptions(gc.Cells())
	for _, opt := range opts {
		opt(&o)
	}
	return &Searcher{
		gc:      gc,
		opts:    o,
		removed: make([]bool, gc.Top().Len()),
		stamp:   make([]int, gc.Bottom().Len()),
		live:    make([]int, 0, gc.Bottom().Len()),
	}
}

// Options returns the resolved options.
func (s *Searcher) Options() Options { return s.opts }

// CheckRange returns the inclusive range of check counts searched for r.
func (s *Searcher) CheckRange(r ReachableSet) (lo, hi int) {
	hi = len(r)
	lo = s.opts.MinChecks
	if lo < 0 {
		lo = s.gc.Dimensionality() - 1
	}
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// ReduceByCheckCount tries every k-subset of r as the checked cells and returns
// the accepted outcomes that leave the fewest Bottom cells reachable. Outcomes
// with identical resulting sets are reported once; the result is sorted by
// resulting set. An empty result means no k-subset is accepted.
//
// Complexity: O(C(|R|,k) · (|R|·D + |Bottom|)).
func (s *Searcher) ReduceByCheckCount(ctx context.Context, k int, r ReachableSet) ([]CheckOutcome, error) {
	if err := r.Validate(s.gc.Top().Len()); err != nil {
		return nil, err
	}
	return s.reduce(ctx, k, r)
}

func (s *Searcher) reduce(ctx context.Context, k int, r ReachableSet) ([]CheckOutcome, error) {
	n := len(r)
	if k < 0 || k > n {
		return nil, fmt.Errorf("%w: k=%d, |R|=%d", ErrBadCheckCount, k, n)
	}

	before := fraction{count: n, size: s.gc.Top().Len()}
	bottomSize := s.gc.Bottom().Len()

	var (
		result []CheckOutcome
		lowest = bottomSize + 1
		seen   = map[string]bool{}
	)

	// pos holds positions into r of the current k-subset, lexicographic.
	pos := make([]int, k)
	for i := range pos {
		pos[i] = i
	}
	for iter := 0; ; iter++ {
		if iter%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		count, err := s.evaluate(r, pos)
		if err != nil {
			return nil, err
		}
		after := fraction{count: count, size: bottomSize}
		if s.opts.Rule.accepts(after, before) && count <= lowest {
			if count < lowest {
				lowest = count
				result = result[:0]
				seen = map[string]bool{}
			}
			reach := NewReachableSet(s.live...)
			if key := reach.Key(); !seen[key] {
				seen[key] = true
				result = append(result, CheckOutcome{Checks: k, Reachable: reach})
			}
		}

		if !NextCombination(pos, n) {
			break
		}
	}

	sortOutcomes(result)
	return result, nil
}

// evaluate removes r[pos...] and collects the Bottom cells still adjacent to a
// retained Top cell into s.live. Returns the number of such cells.
func (s *Searcher) evaluate(r ReachableSet, pos []int) (int, error) {
	for _, p := range pos {
		s.removed[r[p]] = true
	}
	defer func() {
		for _, p := range pos {
			s.removed[r[p]] = false
		}
	}()

	s.gen++
	s.live = s.live[:0]
	for _, i := range r {
		if s.removed[i] {
			continue
		}
		nbrs := s.gc.Neighbors(i)
		if len(nbrs) == 0 {
			return 0, &StructuralError{Index: i, Vertex: s.gc.Top().At(i)}
		}
		for _, j := range nbrs {
			if s.stamp[j] != s.gen {
				s.stamp[j] = s.gen
				s.live = append(s.live, j)
			}
		}
	}
	return len(s.live), nil
}

// NextCombination advances pos, a strictly increasing k-combination of
// [0,n), to its lexicographic successor. Returns false after the last one,
// leaving pos unchanged.
func NextCombination(pos []int, n int) bool {
	k := len(pos)
	i := k - 1
	for i >= 0 && pos[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	pos[i]++
	for j := i + 1; j < k; j++ {
		pos[j] = pos[j-1] + 1
	}
	return true
}

// sortOutcomes orders outcomes by resulting set.
func sortOutcomes(out []CheckOutcome) {
	slices.SortFunc(out, func(a, b CheckOutcome) int {
		return a.Reachable.Compare(b.Reachable)
	})
}

// FindReducingSet returns every tied-minimal outcome at the smallest accepting
// check count for r. All returned outcomes share the same Checks value.
func (s *Searcher) FindReducingSet(ctx context.Context, r ReachableSet) ([]CheckOutcome, error) {
	if err := r.Validate(s.gc.Top().Len()); err != nil {
		return nil, err
	}
	lo, hi := s.CheckRange(r)
	if s.opts.BinarySearch {
		return s.bisect(ctx, r, lo, hi)
	}
	return s.scan(ctx, r, lo, hi)
}

func (s *Searcher) scan(ctx context.Context, r ReachableSet, lo, hi int) ([]CheckOutcome, error) {
	for k := lo; k <= hi; k++ {
		res, err := s.reduce(ctx, k, r)
		if err != nil {
			return nil, err
		}
		if len(res) > 0 {
			return res, nil
		}
	}
	return nil, s.exhausted(r, lo, hi)
}

func (s *Searcher) bisect(ctx context.Context, r ReachableSet, lo, hi int) ([]CheckOutcome, error) {
	var best []CheckOutcome
	for lo <= hi {
		mid := lo + (hi-lo)/2
		res, err := s.reduce(ctx, mid, r)
		if err != nil {
			return nil, err
		}
		if len(res) > 0 {
			best = res
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	if best == nil {
		return nil, s.exhausted(r, lo, hi)
	}
	return best, nil
}

// exhausted reports a range in which even checking every cell was rejected.
// Checking all of R leaves nothing reachable, which every Rule accepts, so this
// only fires on a broken model.
func (s *Searcher) exhausted(r ReachableSet, lo, hi int) error {
	return fmt.Errorf("%w: no accepting check count in [%d,%d] for %v", ErrStructural, lo, hi, r)
}

// AcceptingCounts evaluates every k in [0, |R|] and returns those for which
// some k-subset is accepted, ascending. Intended for verifying that acceptance
// is monotone in k before trusting the binary search.
func (s *Searcher) AcceptingCounts(ctx context.Context, r ReachableSet) ([]int, error) {
	if err := r.Validate(s.gc.Top().Len()); err != nil {
		return nil, err
	}
	var ks []int
	for k := 0; k <= len(r); k++ {
		res, err := s.reduce(ctx, k, r)
		if err != nil {
			return nil, err
		}
		if len(res) > 0 {
			ks = append(ks, k)
		}
	}
	return ks, nil
}

// Monotone reports whether ks, as returned by AcceptingCounts for a set of
// size n, is a contiguous run ending at n.
func Monotone(ks []int, n int) bool {
	if len(ks) == 0 {
		return false
	}
	for i, k := range ks {
		if k != n-len(ks)+1+i {
			return false
		}
	}
	return true
}
