package wfc

import (
	"sort"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
)

// Solution is a fully observed lattice
type Solution struct {
	Dimensions Dimensions
	TileIDs    []int // indexed by cell id
	Steps      int

	tiles *TileSet
}

// TileSet returns the catalog the ids refer to
func (s *Solution) TileSet() *TileSet { return s.tiles }

// At returns the tile placed at a lattice position
func (s *Solution) At(x, y, z int) Tile {
	d := s.Dimensions
	return s.tiles.Tile(s.TileIDs[(z*d.Depth+y)*d.Width+x])
}

// Counts tallies how many cells hold each tile name
func (s *Solution) Counts() map[string]int {
	out := make(map[string]int)
	for _, id := range s.TileIDs {
		out[s.tiles.Tile(id).Name]++
	}
	return out
}

// TileNames returns the distinct tile names used, sorted
func (s *Solution) TileNames() []string {
	counts := s.Counts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Voxels stamps every cell's tile pattern into one grid
func (s *Solution) Voxels() (*voxel.Grid, error) {
	d := s.Dimensions
	return voxel.Assemble(d.Width, d.Depth, d.Height, s.TileIDs, s.tiles.Patterns())
}
