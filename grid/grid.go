package grid

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// minAxisLen is the smallest permitted length of a grid axis.
const minAxisLen = 1

// Grid is an n-dimensional grid graph. Immutable once built.
//
// Vertices are stored in lexicographic (row-major, last axis fastest) order,
// so a cell's position in Vertices() is computable from its coordinates.
type Grid struct {
	dims     []int
	strides  []int
	vertices []Vertex
}

// New builds the grid spanned by dims: the Cartesian product of
// range(dims[i]) for every axis i.
// Returns ErrInvalidInput if dims is empty or holds a non-positive entry.
// Complexity: O(N·D) time and memory.
func New(dims []int) (*Grid, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: empty dimension vector", ErrInvalidInput)
	}
	for i, d := range dims {
		if d < minAxisLen {
			return nil, fmt.Errorf("%w: axis %d has length %d (must be ≥ %d)", ErrInvalidInput, i, d, minAxisLen)
		}
	}

	g := &Grid{
		dims:    append([]int(nil), dims...),
		strides: make([]int, len(dims)),
	}
	total := 1
	for i := len(dims) - 1; i >= 0; i-- {
		g.strides[i] = total
		total *= dims[i]
	}

	g.vertices = make([]Vertex, total)
	coords := make([]int, len(dims))
	for n := 0; n < total; n++ {
		g.vertices[n] = NewVertex(coords...)
		// odometer increment, last axis fastest
		for a := len(coords) - 1; a >= 0; a-- {
			coords[a]++
			if coords[a] < dims[a] {
				break
			}
			coords[a] = 0
		}
	}

	return g, nil
}

// Dims returns a copy of the axis lengths.
func (g *Grid) Dims() []int { return append([]int(nil), g.dims...) }

// Dimensionality returns the number of axes D.
func (g *Grid) Dimensionality() int { return len(g.dims) }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.vertices) }

// Vertices returns every cell in lexicographic order.
func (g *Grid) Vertices() []Vertex { return append([]Vertex(nil), g.vertices...) }

// InBounds reports whether v is a cell of g.
func (g *Grid) InBounds(v Vertex) bool {
	if v.Dim() != len(g.dims) {
		return false
	}
	for i, d := range g.dims {
		if c := v.Coord(i); c < 0 || c >= d {
			return false
		}
	}
	return true
}

// Index returns the lexicographic position of v, or false when v is out of bounds.
func (g *Grid) Index(v Vertex) (int, bool) {
	if !g.InBounds(v) {
		return 0, false
	}
	idx := 0
	for i, s := range g.strides {
		idx += v.Coord(i) * s
	}
	return idx, true
}

// Neighbors returns the in-bound cells at Manhattan distance 1 from v,
// in lexicographic order.
// Complexity: O(D).
func (g *Grid) Neighbors(v Vertex) []Vertex {
	if !g.InBounds(v) {
		return nil
	}
	out := make([]Vertex, 0, 2*len(g.dims))
	coords := v.Coords()
	for a := range g.dims {
		for _, step := range [2]int{-1, 1} {
			coords[a] += step
			if coords[a] >= 0 && coords[a] < g.dims[a] {
				out = append(out, NewVertex(coords...))
			}
			coords[a] -= step
		}
	}
	slices.SortFunc(out, Vertex.Compare)
	return out
}

// Bipartition two-colors the grid by BFS from the origin cell and returns the
// two color classes, each sorted lexicographically. Top holds the origin's
// class, which on a grid is exactly the cells with an even coordinate sum.
//
// Returns ErrNotBipartite if any edge joins two cells of the same class.
// Complexity: O(N·D) time, O(N) memory.
func (g *Grid) Bipartition() (top, bottom []Vertex, err error) {
	const uncolored = -1
	color := make([]int, len(g.vertices))
	for i := range color {
		color[i] = uncolored
	}

	// The grid is connected, but seeding every uncolored cell keeps the
	// routine total over any shape.
	for seed := range g.vertices {
		if color[seed] != uncolored {
			continue
		}
		color[seed] = 0
		queue := []int{seed}
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, nv := range g.Neighbors(g.vertices[u]) {
				w, _ := g.Index(nv)
				switch color[w] {
				case uncolored:
					color[w] = 1 - color[u]
					queue = append(queue, w)
				case color[u]:
					return nil, nil, fmt.Errorf("%w: edge %s–%s", ErrNotBipartite, g.vertices[u], nv)
				}
			}
		}
	}

	for i, v := range g.vertices {
		if color[i] == 0 {
			top = append(top, v)
		} else {
			bottom = append(bottom, v)
		}
	}
	// g.vertices is already lexicographic, so both classes are too.
	return top, bottom, nil
}
