package grid

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Partition is one color class of a grid, in lexicographic order.
// Position in the sequence is the cell's index within the partition.
type Partition struct {
	vertices []Vertex
	index    map[string]int
}

func newPartition(vs []Vertex) *Partition {
	p := &Partition{
		vertices: vs,
		index:    make(map[string]int, len(vs)),
	}
	for i, v := range vs {
		p.index[v.ID()] = i
	}
	return p
}

// Len returns the partition size.
func (p *Partition) Len() int { return len(p.vertices) }

// At returns the vertex at index i.
func (p *Partition) At(i int) Vertex { return p.vertices[i] }

// IndexOf returns the index of v, or false when v is not in the partition.
func (p *Partition) IndexOf(v Vertex) (int, bool) {
	i, ok := p.index[v.ID()]
	return i, ok
}

// Vertices returns a copy of the ordered vertices.
func (p *Partition) Vertices() []Vertex { return append([]Vertex(nil), p.vertices...) }

// Context is the immutable, shared view of one grid shape: the grid, its two
// partitions, and the Top→Bottom and Bottom→Top neighbor index lists.
//
// A Context is built once per run and passed by pointer to the search and
// builder; nothing in it is mutated afterwards, so concurrent readers are safe.
type Context struct {
	grid   *Grid // nil for contexts built from explicit partitions
	dim    int
	top    *Partition
	bottom *Partition
	down   [][]int // down[i] = sorted Bottom indices adjacent to Top[i]
	up     [][]int // up[j]   = sorted Top indices adjacent to Bottom[j]
}

// NewContext builds the grid for dims, bipartitions it and precomputes the
// neighbor lists.
// Returns ErrInvalidInput for malformed dims or when a partition is empty.
// Complexity: O(N·D·log D).
func NewContext(dims []int) (*Context, error) {
	g, err := New(dims)
	if err != nil {
		return nil, err
	}
	topVs, bottomVs, err := g.Bipartition()
	if err != nil {
		return nil, err
	}
	if len(topVs) == 0 || len(bottomVs) == 0 {
		return nil, fmt.Errorf("%w: shape %v yields an empty partition (top=%d, bottom=%d)",
			ErrInvalidInput, dims, len(topVs), len(bottomVs))
	}

	c := &Context{
		grid:   g,
		dim:    g.Dimensionality(),
		top:    newPartition(topVs),
		bottom: newPartition(bottomVs),
	}
	c.down = link(g, c.top, c.bottom)
	c.up = link(g, c.bottom, c.top)

	return c, nil
}

// NewContextFromPartitions builds a Context over two caller-supplied vertex
// sets with adjacency given by Adjacent. The sets are copied and sorted. It
// serves partitions produced outside this package, where nothing guarantees
// that every vertex has a neighbor across the split.
//
// Returns ErrInvalidInput when a set is empty, dimensionalities differ, or a
// vertex appears in both sets, and ErrNotBipartite when two vertices of the
// same set are adjacent. Context.Grid and Context.Mirror report no grid.
// Complexity: O(N²·D).
func NewContextFromPartitions(top, bottom []Vertex) (*Context, error) {
	if len(top) == 0 || len(bottom) == 0 {
		return nil, fmt.Errorf("%w: empty partition (top=%d, bottom=%d)", ErrInvalidInput, len(top), len(bottom))
	}
	dim := top[0].Dim()
	for _, set := range [][]Vertex{top, bottom} {
		for _, v := range set {
			if v.Dim() != dim {
				return nil, fmt.Errorf("%w: vertex %s has %d coordinates, want %d", ErrInvalidInput, v, v.Dim(), dim)
			}
		}
	}

	sorted := func(vs []Vertex) []Vertex {
		out := append([]Vertex(nil), vs...)
		slices.SortFunc(out, Vertex.Compare)
		return out
	}
	c := &Context{
		dim:    dim,
		top:    newPartition(sorted(top)),
		bottom: newPartition(sorted(bottom)),
	}
	for _, v := range c.bottom.vertices {
		if _, dup := c.top.IndexOf(v); dup {
			return nil, fmt.Errorf("%w: vertex %s in both partitions", ErrInvalidInput, v)
		}
	}
	for _, p := range []*Partition{c.top, c.bottom} {
		for i := range p.vertices {
			for j := i + 1; j < len(p.vertices); j++ {
				if Adjacent(p.vertices[i], p.vertices[j]) {
					return nil, fmt.Errorf("%w: edge %s–%s", ErrNotBipartite, p.vertices[i], p.vertices[j])
				}
			}
		}
	}

	c.down = linkByScan(c.top, c.bottom)
	c.up = linkByScan(c.bottom, c.top)

	return c, nil
}

func linkByScan(from, to *Partition) [][]int {
	out := make([][]int, from.Len())
	for i, u := range from.vertices {
		for j, v := range to.vertices {
			if Adjacent(u, v) {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

// link maps every vertex of from to the indices of its neighbors in to.
func link(g *Grid, from, to *Partition) [][]int {
	out := make([][]int, from.Len())
	for i, v := range from.vertices {
		for _, nv := range g.Neighbors(v) {
			if j, ok := to.IndexOf(nv); ok {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

// Grid returns the underlying grid, or nil for a context built by
// NewContextFromPartitions.
func (c *Context) Grid() *Grid { return c.grid }

// Dimensionality returns D, the number of grid axes.
func (c *Context) Dimensionality() int { return c.dim }

// Cells returns the total number of vertices across both partitions.
func (c *Context) Cells() int { return c.top.Len() + c.bottom.Len() }

// Top returns the partition searched from.
func (c *Context) Top() *Partition { return c.top }

// Bottom returns the opposite partition.
func (c *Context) Bottom() *Partition { return c.bottom }

// Neighbors returns the Bottom indices adjacent to Top[i]. The slice is shared;
// callers must not modify it.
func (c *Context) Neighbors(i int) []int { return c.down[i] }

// Flip returns the view of the same grid with Top and Bottom exchanged.
// The returned Context shares all storage with c.
func (c *Context) Flip() *Context {
	return &Context{
		grid:   c.grid,
		dim:    c.dim,
		top:    c.bottom,
		bottom: c.top,
		down:   c.up,
		up:     c.down,
	}
}

// Mirror looks for an axis reflection x_a ↦ dims[a]−1−x_a that carries Top[i]
// onto Bottom[i] for every index i. Such a reflection is a grid automorphism
// that swaps the partitions without renumbering them, so results computed for
// one direction hold verbatim for the other.
//
// Only axes of even length flip parity. Axes are tried last to first.
// Complexity: O(D·N).
func (c *Context) Mirror() (axis int, ok bool) {
	if c.grid == nil || c.top.Len() != c.bottom.Len() {
		return 0, false
	}
	dims := c.grid.dims
	for a := len(dims) - 1; a >= 0; a-- {
		if dims[a]%2 != 0 {
			continue
		}
		if c.reflects(a) {
			return a, true
		}
	}
	return 0, false
}

func (c *Context) reflects(axis int) bool {
	last := c.grid.dims[axis] - 1
	for i, v := range c.top.vertices {
		coords := v.Coords()
		coords[axis] = last - coords[axis]
		if !NewVertex(coords...).Equal(c.bottom.vertices[i]) {
			return false
		}
	}
	return true
}
