package search

// epsilonTenths is ε = 0.1 expressed in tenths, so (count − ε)/size becomes
// (10·count − 1)/(10·size) and compares exactly in integers.
const epsilonTenths = 1

// fraction is (count − ε) / size with size > 0.
type fraction struct {
	count int
	size  int
}

// cmp returns -1, 0 or +1 as f is less than, equal to, or greater than g.
func (f fraction) cmp(g fraction) int {
	lhs := int64(10*f.count-epsilonTenths) * int64(10*g.size)
	rhs := int64(10*g.count-epsilonTenths) * int64(10*f.size)
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	}
	return 0
}

// accepts reports whether after satisfies r relative to before.
func (r Rule) accepts(after, before fraction) bool {
	c := after.cmp(before)
	if r == RuleNonIncrease {
		return c <= 0
	}
	return c < 0
}
