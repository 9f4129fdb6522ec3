package wfc

import "fmt"

// Dimensions is the lattice size in cells
type Dimensions struct {
	Width  int
	Depth  int
	Height int
}

// Cells returns the number of cells in the lattice
func (d Dimensions) Cells() int {
	return d.Width * d.Depth * d.Height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Depth, d.Height)
}

// Validate rejects empty lattices
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Depth <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSize, d)
	}
	return nil
}

// Link is a directed edge from a cell to its neighbour
type Link struct {
	Direction Direction
	Cell      int
}

// Graph is the lattice of cells with their neighbour lists. Cell ids run x fastest,
// then y, then z. The graph is read-only once built.
type Graph struct {
	dims      Dimensions
	edges     [][]Link
	diagonals [][]Link
}

// NewGraph builds the lattice. Axis edges exist only to in-bounds neighbours; the
// diagonal lists are kept apart and never used for propagation.
func NewGraph(dims Dimensions) (*Graph, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	n := dims.Cells()
	g := &Graph{
		dims:      dims,
		edges:     make([][]Link, n),
		diagonals: make([][]Link, n),
	}
	for id := 0; id < n; id++ {
		x, y, z := g.Position(id)
		g.edges[id] = g.link(x, y, z, AxisDirections())
		g.diagonals[id] = g.link(x, y, z, DiagonalDirections())
	}
	return g, nil
}

func (g *Graph) link(x, y, z int, dirs []Direction) []Link {
	var out []Link
	for _, d := range dirs {
		dx, dy, dz := d.Offset()
		nx, ny, nz := x+dx, y+dy, z+dz
		if !g.InBounds(nx, ny, nz) {
			continue
		}
		out = append(out, Link{Direction: d, Cell: g.Index(nx, ny, nz)})
	}
	return out
}

// Dimensions returns the lattice size
func (g *Graph) Dimensions() Dimensions { return g.dims }

// Len returns the number of cells
func (g *Graph) Len() int { return len(g.edges) }

// InBounds reports whether the position lies inside the lattice
func (g *Graph) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.dims.Width && y >= 0 && y < g.dims.Depth && z >= 0 && z < g.dims.Height
}

// Index maps a position to its cell id. It panics outside the lattice.
func (g *Graph) Index(x, y, z int) int {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("wfc: position (%d,%d,%d) outside %s lattice", x, y, z, g.dims))
	}
	return (z*g.dims.Depth+y)*g.dims.Width + x
}

// Position maps a cell id back to its coordinates
func (g *Graph) Position(id int) (x, y, z int) {
	x = id % g.dims.Width
	y = (id / g.dims.Width) % g.dims.Depth
	z = id / (g.dims.Width * g.dims.Depth)
	return x, y, z
}

// Edges returns the axis neighbours of a cell. The slice must not be modified.
func (g *Graph) Edges(id int) []Link { return g.edges[id] }

// Diagonals returns the horizontal diagonal neighbours of a cell
func (g *Graph) Diagonals(id int) []Link { return g.diagonals[id] }

// SeedCell is the pre-observed cell: horizontal centre of the bottom layer
func (g *Graph) SeedCell() int {
	return g.Index(g.dims.Width/2, g.dims.Depth/2, 0)
}
