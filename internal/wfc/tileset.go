package wfc

import (
	"encoding/binary"
	"fmt"
	"math"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
)

// TileSet is an expanded catalog plus its compatibility table. It is read-only after
// NewTileSet returns and may be shared by any number of solvers.
type TileSet struct {
	name  string
	tiles []Tile
	rules *RuleSet
	seed  int

	// compat[id*axisCount+axis] holds one weight per candidate tile id.
	compat [][]float64
}

const axisCount = 6

// NewTileSet expands the template and precomputes compatibility for every
// (tile, axis direction) pair.
func NewTileSet(t *Template) (*TileSet, error) {
	tiles, err := t.Expand()
	if err != nil {
		return nil, err
	}
	rules, err := NewRuleSet(t.Rules)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}

	ts := &TileSet{
		name:   t.Name,
		tiles:  tiles,
		rules:  rules,
		seed:   -1,
		compat: make([][]float64, len(tiles)*axisCount),
	}
	for id, tile := range tiles {
		if tile.Name == t.Seed {
			ts.seed = id
			break
		}
	}
	if ts.seed < 0 {
		return nil, fmt.Errorf("wfc: template %s: seed tile %q not in catalog", t.Name, t.Seed)
	}

	for src, source := range tiles {
		for _, dir := range AxisDirections() {
			row := make([]float64, len(tiles))
			for dst, target := range tiles {
				row[dst], _ = rules.Weight(source, target, dir)
			}
			ts.compat[src*axisCount+int(dir)] = row
		}
	}
	return ts, nil
}

// Name returns the template name the set was built from
func (ts *TileSet) Name() string { return ts.name }

// Len returns the catalog size
func (ts *TileSet) Len() int { return len(ts.tiles) }

// SeedID returns the tile id placed in the seed cell
func (ts *TileSet) SeedID() int { return ts.seed }

// Rules returns the rule set the table was built from
func (ts *TileSet) Rules() *RuleSet { return ts.rules }

func (ts *TileSet) checkID(id int) {
	if id < 0 || id >= len(ts.tiles) {
		panic(fmt.Sprintf("wfc: tile id %d out of range [0,%d)", id, len(ts.tiles)))
	}
}

// Tile returns the tile with the given id. It panics on an out-of-range id.
func (ts *TileSet) Tile(id int) Tile {
	ts.checkID(id)
	return ts.tiles[id]
}

// Tiles returns a copy of the catalog in id order
func (ts *TileSet) Tiles() []Tile {
	out := make([]Tile, len(ts.tiles))
	copy(out, ts.tiles)
	return out
}

// ID returns the id of the tile with the given name
func (ts *TileSet) ID(name string) (int, bool) {
	for id, t := range ts.tiles {
		if t.Name == name {
			return id, true
		}
	}
	return -1, false
}

// Compatibility returns the weight vector for neighbours of tile id in direction dir.
// Entries are either Ban or a non-negative weight. The slice is shared and must not
// be modified. It panics on an out-of-range id or a non-axis direction.
func (ts *TileSet) Compatibility(id int, dir Direction) []float64 {
	ts.checkID(id)
	if !dir.IsAxis() {
		panic(fmt.Sprintf("wfc: no compatibility for direction %s", dir))
	}
	return ts.compat[id*axisCount+int(dir)]
}

// Weight returns the compatibility of target placed in direction dir of source
func (ts *TileSet) Weight(source int, dir Direction, target int) float64 {
	ts.checkID(target)
	return ts.Compatibility(source, dir)[target]
}

// Patterns returns the voxel pattern of every tile in id order
func (ts *TileSet) Patterns() []*voxel.Grid {
	out := make([]*voxel.Grid, len(ts.tiles))
	for id, t := range ts.tiles {
		out[id] = t.Voxels
	}
	return out
}

// Digest fingerprints the catalog names and the compatibility table. Two tile sets
// with the same digest drive the solver identically.
func (ts *TileSet) Digest() string {
	h := xxhash.New()
	var buf [8]byte
	for _, t := range ts.tiles {
		_, _ = h.WriteString(t.Name)
		_, _ = h.Write([]byte{0})
	}
	for _, row := range ts.compat {
		for _, w := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(w))
			_, _ = h.Write(buf[:])
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
