package grid

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for grid construction.
var (
	// ErrInvalidInput indicates a malformed dimension vector or a degenerate shape.
	ErrInvalidInput = errors.New("grid: invalid input")

	// ErrNotBipartite indicates the coloring produced an edge inside one class.
	ErrNotBipartite = errors.New("grid: graph is not bipartite")
)

// vertexIDSep separates coordinates in Vertex.ID ("x,y,z").
const vertexIDSep = ","

// Vertex is an immutable integer coordinate tuple.
type Vertex struct {
	coords []int
}

// NewVertex copies coords into a new Vertex.
func NewVertex(coords ...int) Vertex {
	c := make([]int, len(coords))
	copy(c, coords)
	return Vertex{coords: c}
}

// Dim returns the number of coordinates.
func (v Vertex) Dim() int { return len(v.coords) }

// Coord returns the i-th coordinate.
func (v Vertex) Coord(i int) int { return v.coords[i] }

// Coords returns a copy of the coordinates.
func (v Vertex) Coords() []int {
	c := make([]int, len(v.coords))
	copy(c, v.coords)
	return c
}

// Sum returns the sum of the coordinates; its parity is the vertex color.
func (v Vertex) Sum() int {
	s := 0
	for _, x := range v.coords {
		s += x
	}
	return s
}

// ID formats the vertex as "x,y,z". IDs are unique per coordinate tuple and
// serve as map keys.
func (v Vertex) ID() string {
	var b strings.Builder
	for i, x := range v.coords {
		if i > 0 {
			b.WriteString(vertexIDSep)
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// String implements fmt.Stringer as "(x,y,z)".
func (v Vertex) String() string { return "(" + v.ID() + ")" }

// Equal reports whether u and v have identical coordinates.
func (v Vertex) Equal(u Vertex) bool { return v.Compare(u) == 0 }

// Compare orders vertices lexicographically by coordinates, shorter tuples first
// on a common prefix. Returns -1, 0 or +1.
func (v Vertex) Compare(u Vertex) int {
	for i := 0; i < len(v.coords) && i < len(u.coords); i++ {
		switch {
		case v.coords[i] < u.coords[i]:
			return -1
		case v.coords[i] > u.coords[i]:
			return 1
		}
	}
	switch {
	case len(v.coords) < len(u.coords):
		return -1
	case len(v.coords) > len(u.coords):
		return 1
	}
	return 0
}

// Manhattan returns Σ|u_i − v_i| over the common coordinates.
func Manhattan(u, v Vertex) int {
	d := 0
	for i := 0; i < len(u.coords) && i < len(v.coords); i++ {
		x := u.coords[i] - v.coords[i]
		if x < 0 {
			x = -x
		}
		d += x
	}
	return d
}

// Adjacent reports whether u and v are grid neighbors (Manhattan distance 1).
// Symmetric and irreflexive.
func Adjacent(u, v Vertex) bool {
	return u.Dim() == v.Dim() && Manhattan(u, v) == 1
}
