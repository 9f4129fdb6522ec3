// Package voxel holds the dense voxel grid used for tile content and assembled maps,
// plus the encoders that turn a grid into output files.
package voxel

import "fmt"

// Voxel is a single RGBA voxel. A zero alpha means the voxel is empty.
type Voxel struct {
	R, G, B, A uint8
}

// FromRGBA builds a voxel from an [r, g, b, a] quadruple.
func FromRGBA(c [4]uint8) Voxel {
	return Voxel{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// IsEmpty reports whether the voxel is transparent air.
func (v Voxel) IsEmpty() bool {
	return v.A == 0
}

// Rotation is a quarter turn around the vertical (z) axis, counter-clockwise when
// viewed from above.
type Rotation int

const (
	R0 Rotation = iota
	R90
	R180
	R270
)

// Rotations returns the four rotation values in order.
func Rotations() []Rotation {
	return []Rotation{R0, R90, R180, R270}
}

// String returns the string representation of a Rotation
func (r Rotation) String() string {
	switch r {
	case R0:
		return "r0"
	case R90:
		return "r90"
	case R180:
		return "r180"
	case R270:
		return "r270"
	default:
		return "unknown"
	}
}

// Add composes two rotations.
func (r Rotation) Add(other Rotation) Rotation {
	return Rotation((int(r) + int(other)) & 3)
}

// Grid is a dense width × depth × height voxel volume. x runs east, y runs north and
// z runs up.
type Grid struct {
	width, depth, height int
	cells                []Voxel
}

// NewGrid allocates an empty grid.
func NewGrid(width, depth, height int) *Grid {
	if width < 0 || depth < 0 || height < 0 {
		panic(fmt.Sprintf("voxel: negative grid size %dx%dx%d", width, depth, height))
	}
	return &Grid{
		width:  width,
		depth:  depth,
		height: height,
		cells:  make([]Voxel, width*depth*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Depth() int  { return g.depth }
func (g *Grid) Height() int { return g.height }

// Len returns the number of voxels in the grid.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (x, y, z) lies inside the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.depth && z >= 0 && z < g.height
}

func (g *Grid) index(x, y, z int) int {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("voxel: position (%d,%d,%d) outside %dx%dx%d grid", x, y, z, g.width, g.depth, g.height))
	}
	return (z*g.depth+y)*g.width + x
}

// At returns the voxel at (x, y, z).
func (g *Grid) At(x, y, z int) Voxel {
	return g.cells[g.index(x, y, z)]
}

// Set stores v at (x, y, z).
func (g *Grid) Set(x, y, z int, v Voxel) {
	g.cells[g.index(x, y, z)] = v
}

// Fill sets every voxel to v.
func (g *Grid) Fill(v Voxel) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Each visits every voxel in z, y, x order.
func (g *Grid) Each(fn func(x, y, z int, v Voxel)) {
	i := 0
	for z := 0; z < g.height; z++ {
		for y := 0; y < g.depth; y++ {
			for x := 0; x < g.width; x++ {
				fn(x, y, z, g.cells[i])
				i++
			}
		}
	}
}

// Count returns the number of non-empty voxels.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, depth: g.depth, height: g.height, cells: make([]Voxel, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// RotatedZ returns a copy of the grid turned around the vertical axis. R90 maps the
// east face onto the north face; width and depth swap for odd quarter turns.
func (g *Grid) RotatedZ(r Rotation) *Grid {
	r = r.Add(R0)
	if r == R0 {
		return g.Clone()
	}
	w, d := g.width, g.depth
	var out *Grid
	if r == R180 {
		out = NewGrid(w, d, g.height)
	} else {
		out = NewGrid(d, w, g.height)
	}
	g.Each(func(x, y, z int, v Voxel) {
		var nx, ny int
		switch r {
		case R90:
			nx, ny = d-1-y, x
		case R180:
			nx, ny = w-1-x, d-1-y
		case R270:
			nx, ny = y, w-1-x
		}
		out.Set(nx, ny, z, v)
	})
	return out
}

// Equal reports whether two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.depth != other.depth || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
