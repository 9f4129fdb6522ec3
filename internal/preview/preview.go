// Package preview renders solved lattices as text, one horizontal layer at a time.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

// Options selects what Render prints.
type Options struct {
	// Layers to draw, bottom first. Empty means every layer.
	Layers []int

	// Legend appends the symbol table with per-tile counts.
	Legend bool
}

var edgeSymbols = map[wfc.Direction]rune{
	wfc.North: '^',
	wfc.East:  '>',
	wfc.South: 'v',
	wfc.West:  '<',
}

var cornerSymbols = map[wfc.Direction]rune{
	wfc.NorthEast: '▝',
	wfc.NorthWest: '▘',
	wfc.SouthWest: '▖',
	wfc.SouthEast: '▗',
}

var tagSymbols = map[wfc.Tag]rune{
	wfc.TagDirt:  '#',
	wfc.TagGrass: '"',
	wfc.TagSky:   '.',
	wfc.TagRoad:  '=',
}

// Symbol picks the glyph drawn for a tile. Oriented tiles show their facing.
func Symbol(t wfc.Tile) rune {
	switch t.Orientation.Kind {
	case wfc.Edge:
		if r, ok := edgeSymbols[t.Orientation.Facing]; ok {
			return r
		}
	case wfc.Corner:
		if r, ok := cornerSymbols[t.Orientation.Facing]; ok {
			return r
		}
	}
	if r, ok := tagSymbols[t.Tag]; ok {
		return r
	}
	if t.Tag != "" {
		return []rune(string(t.Tag))[0]
	}
	return '?'
}

// Layer draws one z layer with north at the top.
func Layer(sol *wfc.Solution, z int) string {
	d := sol.Dimensions
	var b strings.Builder
	for y := d.Depth - 1; y >= 0; y-- {
		for x := 0; x < d.Width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(Symbol(sol.At(x, y, z)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render writes the selected layers of sol to w.
func Render(w io.Writer, sol *wfc.Solution, opts Options) error {
	d := sol.Dimensions
	layers := opts.Layers
	if len(layers) == 0 {
		layers = make([]int, d.Height)
		for z := range layers {
			layers[z] = z
		}
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Lattice %s (%d steps)\n", d, sol.Steps))
	out.WriteString(strings.Repeat("=", 40) + "\n\n")

	for _, z := range layers {
		if z < 0 || z >= d.Height {
			return fmt.Errorf("preview: layer %d outside 0..%d", z, d.Height-1)
		}
		out.WriteString(fmt.Sprintf("Layer %d\n", z))
		out.WriteString(strings.Repeat("-", max(2*d.Width-1, 7)) + "\n")
		out.WriteString(Layer(sol, z))
		out.WriteString("\n")
	}

	if opts.Legend {
		out.WriteString(legend(sol))
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func legend(sol *wfc.Solution) string {
	ts := sol.TileSet()
	counts := sol.Counts()

	var b strings.Builder
	b.WriteString("Legend:\n")
	for _, name := range sol.TileNames() {
		id, ok := ts.ID(name)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  [%c] %-24s %d\n", Symbol(ts.Tile(id)), name, counts[name]))
	}
	return b.String()
}
