package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

func solveMeadow(t *testing.T, dims wfc.Dimensions) *wfc.Solution {
	t.Helper()
	ts, err := wfc.NewTileSet(wfc.MeadowTemplate())
	if err != nil {
		t.Fatalf("NewTileSet() error: %v", err)
	}
	gen, err := wfc.NewGenerator(ts, wfc.DefaultGeneratorConfig(dims, 3))
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	out, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return out.Solution
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		tile wfc.Tile
		want rune
	}{
		{wfc.Tile{Name: "dirt", Tag: wfc.TagDirt}, '#'},
		{wfc.Tile{Name: "grass", Tag: wfc.TagGrass}, '"'},
		{wfc.Tile{Name: "sky", Tag: wfc.TagSky}, '.'},
		{wfc.Tile{Name: "road-inner", Tag: wfc.TagRoad}, '='},
		{wfc.Tile{Name: "road-edge-north", Tag: wfc.TagRoad, Orientation: wfc.EdgeFacing(wfc.North)}, '^'},
		{wfc.Tile{Name: "road-edge-west", Tag: wfc.TagRoad, Orientation: wfc.EdgeFacing(wfc.West)}, '<'},
		{wfc.Tile{Name: "road-corner-south-east", Tag: wfc.TagRoad, Orientation: wfc.CornerFacing(wfc.SouthEast)}, '▗'},
		{wfc.Tile{Name: "lava", Tag: "lava"}, 'l'},
		{wfc.Tile{Name: "blank"}, '?'},
	}
	for _, tt := range tests {
		if got := Symbol(tt.tile); got != tt.want {
			t.Errorf("Symbol(%s) = %q, want %q", tt.tile.Name, got, tt.want)
		}
	}
}

func TestLayerShape(t *testing.T) {
	sol := solveMeadow(t, wfc.Dimensions{Width: 5, Depth: 3, Height: 2})

	lines := strings.Split(strings.TrimSuffix(Layer(sol, 0), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Layer() has %d rows, want 3", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 9 {
			t.Errorf("row %d is %d runes, want 9: %q", i, n, line)
		}
	}

	// Bottom row of the drawing is y = 0.
	want := Symbol(sol.At(0, 0, 0))
	if got := []rune(lines[2])[0]; got != want {
		t.Errorf("bottom-left = %q, want %q", got, want)
	}
	want = Symbol(sol.At(4, 2, 0))
	if got := []rune(lines[0])[8]; got != want {
		t.Errorf("top-right = %q, want %q", got, want)
	}
}

func TestRenderAllLayersWithLegend(t *testing.T) {
	sol := solveMeadow(t, wfc.Dimensions{Width: 4, Depth: 4, Height: 3})

	var buf bytes.Buffer
	if err := Render(&buf, sol, Options{Legend: true}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "Lattice 4x4x3") {
		t.Errorf("header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, header := range []string{"Layer 0\n", "Layer 1\n", "Layer 2\n"} {
		if !strings.Contains(out, header) {
			t.Errorf("output missing %q", header)
		}
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatal("output missing legend")
	}
	for name, n := range sol.Counts() {
		if !strings.Contains(out, name) {
			t.Errorf("legend missing %s (%d cells)", name, n)
		}
	}
}

func TestRenderSelectedLayers(t *testing.T) {
	sol := solveMeadow(t, wfc.Dimensions{Width: 3, Depth: 3, Height: 3})

	var buf bytes.Buffer
	if err := Render(&buf, sol, Options{Layers: []int{1}}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Layer 1\n") || strings.Contains(out, "Layer 0\n") {
		t.Errorf("Render(layers=[1]) = %q", out)
	}
	if strings.Contains(out, "Legend:") {
		t.Error("legend printed without Options.Legend")
	}

	if err := Render(&buf, sol, Options{Layers: []int{3}}); err == nil {
		t.Error("Render() with a layer above the lattice should fail")
	}
}
