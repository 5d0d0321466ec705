package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/adpolican/dynamic-foxhole-solver/grid"
)

// Sentinel errors for reducing-set searches.
var (
	// ErrInvalidReachable indicates a malformed ReachableSet.
	ErrInvalidReachable = errors.New("search: invalid reachable set")

	// ErrBadCheckCount indicates a check count outside [0, |R|].
	ErrBadCheckCount = errors.New("search: check count out of range")

	// ErrUnknownRule indicates a rule name ParseRule does not recognize.
	ErrUnknownRule = errors.New("search: unknown rule")

	// ErrStructural indicates an impossible grid state, such as an isolated
	// retained vertex. Match with errors.Is; inspect with errors.As(*StructuralError).
	ErrStructural = errors.New("search: structural error")
)

// StructuralError reports a retained Top vertex without any Bottom neighbor.
type StructuralError struct {
	Index  int         // index of the vertex in Top
	Vertex grid.Vertex // the isolated vertex
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("search: structural error: retained vertex %s (top index %d) has no neighbor in the opposite partition", e.Vertex, e.Index)
}

// Is lets errors.Is(err, ErrStructural) match a *StructuralError.
func (e *StructuralError) Is(target error) bool { return target == ErrStructural }

// Rule selects the acceptance criterion comparing the fractions after and before a check.
type Rule int

const (
	// RuleStrictDecrease accepts a check only if after < before.
	RuleStrictDecrease Rule = iota
	// RuleNonIncrease accepts a check if after ≤ before.
	RuleNonIncrease
)

// String implements fmt.Stringer.
func (r Rule) String() string {
	switch r {
	case RuleStrictDecrease:
		return "strict"
	case RuleNonIncrease:
		return "nonincrease"
	default:
		return "Rule(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseRule maps "strict" and "nonincrease" back to a Rule.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return RuleStrictDecrease, nil
	case "nonincrease", "non-increase":
		return RuleNonIncrease, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownRule, s)
}

// DefaultRule returns RuleStrictDecrease for a grid with an even number of
// cells and RuleNonIncrease otherwise.
func DefaultRule(cells int) Rule {
	if cells%2 == 0 {
		return RuleStrictDecrease
	}
	return RuleNonIncrease
}

// autoMinChecks makes the lower end of the check range min(D−1, |R|).
const autoMinChecks = -1

// Options configures a Searcher.
type Options struct {
	// Rule is the acceptance criterion.
	Rule Rule

	// BinarySearch locates the minimal accepting k by bisection; when false
	// k is scanned upward one at a time.
	BinarySearch bool

	// MinChecks is the lower end of the check range. Negative selects the
	// automatic bound min(D−1, |R|).
	MinChecks int
}

// Option configures a Searcher via functional arguments.
type Option func(*Options)

// DefaultOptions returns the options for a grid with the given number of cells:
// DefaultRule(cells), binary search on, automatic MinChecks.
func DefaultOptions(cells int) Options {
	return Options{
		Rule:         DefaultRule(cells),
		BinarySearch: true,
		MinChecks:    autoMinChecks,
	}
}

// WithRule overrides the acceptance criterion.
func WithRule(r Rule) Option {
	return func(o *Options) { o.Rule = r }
}

// WithBinarySearch toggles bisection over check counts.
func WithBinarySearch(on bool) Option {
	return func(o *Options) { o.BinarySearch = on }
}

// WithMinChecks fixes the lower end of the check range; n < 0 restores the
// automatic bound.
func WithMinChecks(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = autoMinChecks
		}
		o.MinChecks = n
	}
}

// ReachableSet is a sorted, duplicate-free list of indices into one partition.
type ReachableSet []int

// NewReachableSet copies, sorts and dedupes idx.
func NewReachableSet(idx ...int) ReachableSet {
	s := make(ReachableSet, 0, len(idx))
	s = append(s, idx...)
	slices.Sort(s)
	return slices.Compact(s)
}

// Full returns {0, 1, …, n−1}.
func Full(n int) ReachableSet {
	s := make(ReachableSet, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// Validate checks that s is non-empty, strictly increasing, and within [0, n).
func (s ReachableSet) Validate(n int) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidReachable)
	}
	for i, x := range s {
		if x < 0 || x >= n {
			return fmt.Errorf("%w: index %d outside [0,%d)", ErrInvalidReachable, x, n)
		}
		if i > 0 && s[i-1] >= x {
			return fmt.Errorf("%w: indices not strictly increasing at position %d", ErrInvalidReachable, i)
		}
	}
	return nil
}

// Contains reports whether i is in s.
func (s ReachableSet) Contains(i int) bool {
	_, ok := slices.BinarySearch(s, i)
	return ok
}

// Equal reports element-wise equality.
func (s ReachableSet) Equal(t ReachableSet) bool { return slices.Equal(s, t) }

// Compare orders sets lexicographically.
func (s ReachableSet) Compare(t ReachableSet) int { return slices.Compare(s, t) }

// Key is the canonical "i,j,k" encoding of s, usable as a map key.
func (s ReachableSet) Key() string {
	var b strings.Builder
	for i, x := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// ParseKey decodes the output of Key.
func ParseKey(key string) (ReachableSet, error) {
	if key == "" {
		return ReachableSet{}, nil
	}
	parts := strings.Split(key, ",")
	s := make(ReachableSet, len(parts))
	for i, p := range parts {
		x, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidReachable, key, err)
		}
		s[i] = x
	}
	return s, nil
}

// CheckOutcome is one minimal way to check: Checks cells inspected, leaving
// Reachable alive in the opposite partition.
type CheckOutcome struct {
	Checks    int
	Reachable ReachableSet
}
