package transition

import (
	"strconv"
	"strings"

	"github.com/adpolican/dynamic-foxhole-solver/search"
)

// Label names a partition.
type Label int

const (
	// LabelTop is the partition containing the origin cell.
	LabelTop Label = 0
	// LabelBottom is the opposite partition.
	LabelBottom Label = 1
)

// Other returns the opposite label.
func (l Label) Other() Label { return 1 - l }

// Kind tags the Node variant.
type Kind int

const (
	// KindInvalid is the zero Node.
	KindInvalid Kind = iota
	// KindStart is the START sentinel.
	KindStart
	// KindReachable is a (Label, ReachableSet) node.
	KindReachable
	// KindEnd is the END sentinel.
	KindEnd
)

// Node is a tagged variant: Start, End, or Reachable(label, set).
// Nodes are comparable with == and usable as map keys; equality is by value.
type Node struct {
	kind  Kind
	label Label
	key   string // search.ReachableSet.Key() of the set
}

var (
	// Start is the shared source sentinel.
	Start = Node{kind: KindStart}
	// End is the shared sink sentinel: the adversary is contained.
	End = Node{kind: KindEnd}
)

// Reachable returns the node for set on partition label.
func Reachable(label Label, set search.ReachableSet) Node {
	return Node{kind: KindReachable, label: label, key: set.Key()}
}

// Kind returns the variant tag.
func (n Node) Kind() Kind { return n.kind }

// Label returns the partition label; meaningful only for KindReachable.
func (n Node) Label() Label { return n.label }

// Set decodes the index set; nil for sentinels.
func (n Node) Set() search.ReachableSet {
	if n.kind != KindReachable {
		return nil
	}
	s, err := search.ParseKey(n.key)
	if err != nil {
		// keys are only ever produced by ReachableSet.Key
		return nil
	}
	return s
}

// IsSentinel reports whether n is Start or End.
func (n Node) IsSentinel() bool { return n.kind == KindStart || n.kind == KindEnd }

// Valid reports whether n is one of the three variants.
func (n Node) Valid() bool {
	switch n.kind {
	case KindStart, KindEnd:
		return true
	case KindReachable:
		return n.label == LabelTop || n.label == LabelBottom
	}
	return false
}

// Relabel returns n moved to partition l. Sentinels are returned unchanged.
func (n Node) Relabel(l Label) Node {
	if n.kind != KindReachable {
		return n
	}
	n.label = l
	return n
}

// String formats sentinels as "START"/"END" and other nodes as "label:{i,j}".
func (n Node) String() string {
	switch n.kind {
	case KindStart:
		return "START"
	case KindEnd:
		return "END"
	case KindReachable:
		return strconv.Itoa(int(n.label)) + ":{" + n.key + "}"
	}
	return "INVALID"
}

// Compare orders START first, END last, and reachable nodes by label then set.
func (n Node) Compare(m Node) int {
	if n.kind != m.kind {
		if n.kind < m.kind {
			return -1
		}
		return 1
	}
	if n.kind != KindReachable {
		return 0
	}
	if n.label != m.label {
		if n.label < m.label {
			return -1
		}
		return 1
	}
	return compareKeys(n.key, m.key)
}

// compareKeys orders two ReachableSet keys as ReachableSet.Compare orders the
// decoded sets, without decoding. Keys hold Itoa output, so numbers carry no
// leading zeros and a longer digit run is a larger number.
func compareKeys(a, b string) int {
	for {
		switch {
		case a == "" && b == "":
			return 0
		case a == "":
			return -1
		case b == "":
			return 1
		}
		x, restA := nextToken(a)
		y, restB := nextToken(b)
		if len(x) != len(y) {
			if len(x) < len(y) {
				return -1
			}
			return 1
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
		a, b = restA, restB
	}
}

// nextToken splits "12,3,4" into "12" and "3,4".
func nextToken(key string) (tok, rest string) {
	if i := strings.IndexByte(key, ','); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, ""
}
