package voxel

import "fmt"

// Assemble stamps one pattern per lattice cell into a single dense grid. tileIDs is
// indexed the same way as the lattice: (z*depth + y)*width + x. All patterns must share
// one size; the result is width*pw × depth*pd × height*ph.
func Assemble(width, depth, height int, tileIDs []int, patterns []*Grid) (*Grid, error) {
	if width <= 0 || depth <= 0 || height <= 0 {
		return nil, fmt.Errorf("voxel: invalid lattice size %dx%dx%d", width, depth, height)
	}
	if len(tileIDs) != width*depth*height {
		return nil, fmt.Errorf("voxel: %d tile ids for a %dx%dx%d lattice", len(tileIDs), width, depth, height)
	}
	if len(patterns) == 0 || patterns[0] == nil {
		return nil, fmt.Errorf("voxel: no tile patterns")
	}

	pw, pd, ph := patterns[0].Width(), patterns[0].Depth(), patterns[0].Height()
	for id, p := range patterns {
		if p == nil || p.Width() != pw || p.Depth() != pd || p.Height() != ph {
			return nil, fmt.Errorf("voxel: pattern %d does not match %dx%dx%d", id, pw, pd, ph)
		}
	}

	out := NewGrid(width*pw, depth*pd, height*ph)
	i := 0
	for z := 0; z < height; z++ {
		for y := 0; y < depth; y++ {
			for x := 0; x < width; x++ {
				id := tileIDs[i]
				i++
				if id < 0 || id >= len(patterns) {
					return nil, fmt.Errorf("voxel: tile id %d out of range [0,%d)", id, len(patterns))
				}
				ox, oy, oz := x*pw, y*pd, z*ph
				patterns[id].Each(func(vx, vy, vz int, v Voxel) {
					out.Set(ox+vx, oy+vy, oz+vz, v)
				})
			}
		}
	}
	return out, nil
}
