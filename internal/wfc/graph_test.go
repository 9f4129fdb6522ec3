package wfc

import (
	"errors"
	"testing"
)

func TestNewGraphInvalidSize(t *testing.T) {
	for _, dims := range []Dimensions{{0, 1, 1}, {1, -1, 1}, {1, 1, 0}} {
		if _, err := NewGraph(dims); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGraph(%s) error = %v, want ErrInvalidSize", dims, err)
		}
	}
}

func TestGraphIndexPosition(t *testing.T) {
	g, err := NewGraph(Dimensions{Width: 4, Depth: 3, Height: 2})
	if err != nil {
		t.Fatalf("NewGraph() error: %v", err)
	}
	if g.Len() != 24 {
		t.Fatalf("Len() = %d, want 24", g.Len())
	}
	// x varies fastest, then y, then z.
	if got := g.Index(1, 0, 0); got != 1 {
		t.Errorf("Index(1,0,0) = %d, want 1", got)
	}
	if got := g.Index(0, 1, 0); got != 4 {
		t.Errorf("Index(0,1,0) = %d, want 4", got)
	}
	if got := g.Index(0, 0, 1); got != 12 {
		t.Errorf("Index(0,0,1) = %d, want 12", got)
	}
	for id := 0; id < g.Len(); id++ {
		x, y, z := g.Position(id)
		if g.Index(x, y, z) != id {
			t.Errorf("Index(Position(%d)) = %d", id, g.Index(x, y, z))
		}
	}
}

func TestGraphBoundaryEdges(t *testing.T) {
	dims := Dimensions{Width: 3, Depth: 3, Height: 3}
	g, err := NewGraph(dims)
	if err != nil {
		t.Fatalf("NewGraph() error: %v", err)
	}

	tests := []struct {
		x, y, z int
		edges   int
	}{
		{0, 0, 0, 3},
		{2, 2, 2, 3},
		{1, 0, 0, 4},
		{1, 1, 0, 5},
		{1, 1, 1, 6},
	}
	for _, tc := range tests {
		if got := len(g.Edges(g.Index(tc.x, tc.y, tc.z))); got != tc.edges {
			t.Errorf("cell (%d,%d,%d) has %d edges, want %d", tc.x, tc.y, tc.z, got, tc.edges)
		}
	}

	for id := 0; id < g.Len(); id++ {
		x, y, z := g.Position(id)
		for _, e := range g.Edges(id) {
			if !e.Direction.IsAxis() {
				t.Errorf("cell %d has non-axis edge %s", id, e.Direction)
			}
			nx, ny, nz := g.Position(e.Cell)
			dx, dy, dz := e.Direction.Offset()
			if nx != x+dx || ny != y+dy || nz != z+dz {
				t.Errorf("edge %s from (%d,%d,%d) lands on (%d,%d,%d)", e.Direction, x, y, z, nx, ny, nz)
			}
			if !g.InBounds(nx, ny, nz) {
				t.Errorf("edge from %d leaves the lattice", id)
			}
		}
	}
}

func TestGraphDiagonals(t *testing.T) {
	g, err := NewGraph(Dimensions{Width: 3, Depth: 3, Height: 1})
	if err != nil {
		t.Fatalf("NewGraph() error: %v", err)
	}
	if got := len(g.Diagonals(g.Index(1, 1, 0))); got != 4 {
		t.Errorf("centre has %d diagonals, want 4", got)
	}
	corner := g.Index(0, 0, 0)
	diag := g.Diagonals(corner)
	if len(diag) != 1 || diag[0].Direction != NorthEast || diag[0].Cell != g.Index(1, 1, 0) {
		t.Errorf("corner diagonals = %+v", diag)
	}
	for _, l := range g.Edges(corner) {
		if l.Direction.IsDiagonal() {
			t.Errorf("diagonal %s listed among the axis edges", l.Direction)
		}
	}
}

func TestGraphSeedCell(t *testing.T) {
	tests := []struct {
		dims    Dimensions
		x, y, z int
	}{
		{Dimensions{5, 5, 3}, 2, 2, 0},
		{Dimensions{4, 6, 2}, 2, 3, 0},
		{Dimensions{1, 1, 2}, 0, 0, 0},
	}
	for _, tc := range tests {
		g, err := NewGraph(tc.dims)
		if err != nil {
			t.Fatalf("NewGraph(%s) error: %v", tc.dims, err)
		}
		if got := g.SeedCell(); got != g.Index(tc.x, tc.y, tc.z) {
			t.Errorf("%s: SeedCell() = %d, want (%d,%d,%d)", tc.dims, got, tc.x, tc.y, tc.z)
		}
	}
}
