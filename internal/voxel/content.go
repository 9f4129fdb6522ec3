package voxel

import (
	"fmt"
	"sort"
)

var (
	Brown = [4]uint8{120, 80, 50, 255}
	Green = [4]uint8{90, 120, 20, 255}
	Grey  = [4]uint8{108, 108, 127, 255}
	Clear = [4]uint8{0, 0, 0, 0}
)

// ContentFunc produces the voxel pattern for one tile.
type ContentFunc func(width, depth, height int) *Grid

var contents = map[string]ContentFunc{
	"dirt":        Dirt,
	"grass":       Grass,
	"sky":         Sky,
	"road-inner":  RoadInner,
	"road-edge":   RoadEdge,
	"road-corner": RoadCorner,
}

// Content returns the pattern registered under kind.
func Content(kind string, width, depth, height int) (*Grid, error) {
	fn, ok := contents[kind]
	if !ok {
		return nil, fmt.Errorf("voxel: unknown content kind %q", kind)
	}
	if width <= 0 || depth <= 0 || height <= 0 {
		return nil, fmt.Errorf("voxel: invalid tile size %dx%dx%d", width, depth, height)
	}
	return fn(width, depth, height), nil
}

// ContentKinds lists the registered content kinds in sorted order.
func ContentKinds() []string {
	kinds := make([]string, 0, len(contents))
	for k := range contents {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Dirt is a solid brown block.
func Dirt(width, depth, height int) *Grid {
	g := NewGrid(width, depth, height)
	g.Fill(FromRGBA(Brown))
	return g
}

// Grass is dirt with a green top layer.
func Grass(width, depth, height int) *Grid {
	g := Dirt(width, depth, height)
	for y := 0; y < depth; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, height-1, FromRGBA(Green))
		}
	}
	return g
}

// Sky is open air.
func Sky(width, depth, height int) *Grid {
	return NewGrid(width, depth, height)
}

// RoadInner is a full paved floor.
func RoadInner(width, depth, height int) *Grid {
	g := Sky(width, depth, height)
	for y := 0; y < depth; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, 0, FromRGBA(Grey))
		}
	}
	return g
}

// RoadEdge paves the eastern half of the floor.
func RoadEdge(width, depth, height int) *Grid {
	g := Sky(width, depth, height)
	for y := 0; y < depth; y++ {
		for x := width / 2; x < width; x++ {
			g.Set(x, y, 0, FromRGBA(Grey))
		}
	}
	return g
}

// RoadCorner paves the south-western quadrant of the floor.
func RoadCorner(width, depth, height int) *Grid {
	g := Sky(width, depth, height)
	for y := 0; y <= depth/2 && y < depth; y++ {
		for x := 0; x <= width/2 && x < width; x++ {
			g.Set(x, y, 0, FromRGBA(Grey))
		}
	}
	return g
}
