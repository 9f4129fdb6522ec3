package wfc

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
)

var ErrUnknownTemplate = errors.New("wfc: unknown template")

// BaseTile declares a tile before rotation expansion. Content names a voxel content
// kind (see voxel.ContentKinds).
type BaseTile struct {
	Name        string
	Content     string
	Tag         Tag
	Orientation Orientation
}

// Template is a named generation preset: base tiles, their voxel size, the seed tile
// and the adjacency rules.
type Template struct {
	Name        string
	Description string
	TileWidth   int
	TileDepth   int
	TileHeight  int
	Seed        string // expanded tile name placed in the seed cell
	Tiles       []BaseTile
	Rules       []Rule
}

// Validate checks the template without building voxels
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("wfc: template has no name")
	}
	if t.TileWidth <= 0 || t.TileDepth <= 0 || t.TileHeight <= 0 {
		return fmt.Errorf("wfc: template %s: invalid tile size %dx%dx%d", t.Name, t.TileWidth, t.TileDepth, t.TileHeight)
	}
	if len(t.Tiles) == 0 {
		return fmt.Errorf("wfc: template %s: no tiles", t.Name)
	}
	seen := make(map[string]bool)
	for _, bt := range t.Tiles {
		if bt.Name == "" {
			return fmt.Errorf("wfc: template %s: tile with empty name", t.Name)
		}
		if seen[bt.Name] {
			return fmt.Errorf("wfc: template %s: duplicate tile %q", t.Name, bt.Name)
		}
		seen[bt.Name] = true
		if bt.Tag == "" {
			return fmt.Errorf("wfc: template %s: tile %q has no tag", t.Name, bt.Name)
		}
		if err := bt.Orientation.Validate(); err != nil {
			return fmt.Errorf("template %s: tile %q: %w", t.Name, bt.Name, err)
		}
		// Rotated voxels swap width and depth.
		if bt.Orientation.Kind != Invariant && t.TileWidth != t.TileDepth {
			return fmt.Errorf("wfc: template %s: tile %q rotates but tiles are not square", t.Name, bt.Name)
		}
	}
	if t.Seed == "" {
		return fmt.Errorf("wfc: template %s: no seed tile", t.Name)
	}
	if _, err := NewRuleSet(t.Rules); err != nil {
		return fmt.Errorf("template %s: %w", t.Name, err)
	}
	return nil
}

// Expand builds every base tile's voxels and emits the catalog in id order: Invariant
// tiles once, Edge and Corner tiles once per rotation R0, R90, R180, R270.
func (t *Template) Expand() ([]Tile, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var tiles []Tile
	for _, bt := range t.Tiles {
		grid, err := voxel.Content(bt.Content, t.TileWidth, t.TileDepth, t.TileHeight)
		if err != nil {
			return nil, fmt.Errorf("template %s: tile %q: %w", t.Name, bt.Name, err)
		}
		base := Tile{
			Name:        bt.Name,
			Base:        bt.Name,
			Tag:         bt.Tag,
			Orientation: bt.Orientation,
			Voxels:      grid,
		}
		if bt.Orientation.Kind == Invariant {
			tiles = append(tiles, base)
			continue
		}
		for _, r := range voxel.Rotations() {
			tiles = append(tiles, base.Rotated(r))
		}
	}
	return tiles, nil
}

// ExpandedSize returns the catalog size Expand would produce
func (t *Template) ExpandedSize() int {
	n := 0
	for _, bt := range t.Tiles {
		if bt.Orientation.Kind == Invariant {
			n++
		} else {
			n += 4
		}
	}
	return n
}

// RoadTemplate is the road preset. Only the dirt and sky rules are defined; every
// other pairing, road and grass included, is banned.
func RoadTemplate() *Template {
	return &Template{
		Name:        "road",
		Description: "dirt ground under open sky with road surface tiles",
		TileWidth:   3,
		TileDepth:   3,
		TileHeight:  3,
		Seed:        "dirt",
		Tiles: []BaseTile{
			{Name: "dirt", Content: "dirt", Tag: TagDirt, Orientation: InvariantOrientation()},
			{Name: "grass", Content: "grass", Tag: TagGrass, Orientation: InvariantOrientation()},
			{Name: "road-inner", Content: "road-inner", Tag: TagRoad, Orientation: InvariantOrientation()},
			{Name: "road-edge", Content: "road-edge", Tag: TagRoad, Orientation: EdgeFacing(West)},
			{Name: "road-corner", Content: "road-corner", Tag: TagRoad, Orientation: CornerFacing(NorthEast)},
			{Name: "sky", Content: "sky", Tag: TagSky, Orientation: InvariantOrientation()},
		},
		Rules: []Rule{
			{Source: TagDirt, Target: TagDirt, Directions: Horizontal, Weight: 0.8},
			{Source: TagDirt, Target: TagSky, Directions: NewDirectionSet(Up), Weight: 1.0},
			{Source: TagDirt, Target: TagSky, Directions: Horizontal, Weight: 0.2},
		},
	}
}

// MeadowTemplate layers dirt, a grass surface and sky. Every tag has a permitted
// neighbour in every direction, so it never contradicts.
func MeadowTemplate() *Template {
	return &Template{
		Name:        "meadow",
		Description: "rolling dirt with a grass surface under open sky",
		TileWidth:   3,
		TileDepth:   3,
		TileHeight:  3,
		Seed:        "dirt",
		Tiles: []BaseTile{
			{Name: "dirt", Content: "dirt", Tag: TagDirt, Orientation: InvariantOrientation()},
			{Name: "grass", Content: "grass", Tag: TagGrass, Orientation: InvariantOrientation()},
			{Name: "sky", Content: "sky", Tag: TagSky, Orientation: InvariantOrientation()},
		},
		Rules: []Rule{
			{Source: TagDirt, Target: TagDirt, Directions: Horizontal, Weight: 0.7},
			{Source: TagDirt, Target: TagGrass, Directions: Horizontal, Weight: 0.3},
			{Source: TagDirt, Target: TagDirt, Directions: NewDirectionSet(Up), Weight: 0.4},
			{Source: TagDirt, Target: TagGrass, Directions: NewDirectionSet(Up), Weight: 0.6},
			{Source: TagDirt, Target: TagDirt, Directions: NewDirectionSet(Down), Weight: 1.0},

			{Source: TagGrass, Target: TagGrass, Directions: Horizontal, Weight: 0.8},
			{Source: TagGrass, Target: TagDirt, Directions: Horizontal, Weight: 0.2},
			{Source: TagGrass, Target: TagSky, Directions: NewDirectionSet(Up), Weight: 1.0},
			{Source: TagGrass, Target: TagDirt, Directions: NewDirectionSet(Down), Weight: 1.0},

			{Source: TagSky, Target: TagSky, Directions: Horizontal, Weight: 1.0},
			{Source: TagSky, Target: TagGrass, Directions: Horizontal, Weight: 0.1},
			{Source: TagSky, Target: TagSky, Directions: NewDirectionSet(Up), Weight: 1.0},
			{Source: TagSky, Target: TagSky, Directions: NewDirectionSet(Down), Weight: 0.5},
			{Source: TagSky, Target: TagGrass, Directions: NewDirectionSet(Down), Weight: 0.5},
		},
	}
}

// Registry holds the templates selectable by name.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns a registry holding the built-in templates
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]*Template)}
	for _, t := range []*Template{RoadTemplate(), MeadowTemplate()} {
		r.templates[t.Name] = t
	}
	return r
}

// Register adds or replaces a template after validating it
func (r *Registry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.templates[t.Name] = t
	return nil
}

// Lookup returns the template registered under name
func (r *Registry) Lookup(name string) (*Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// Names lists registered template names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
