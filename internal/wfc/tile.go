package wfc

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
)

// Tag is the semantic role of a tile. Rules are keyed on tags.
type Tag string

const (
	TagDirt  Tag = "dirt"
	TagGrass Tag = "grass"
	TagSky   Tag = "sky"
	TagRoad  Tag = "road"
)

// OrientationKind is the symmetry class of a tile
type OrientationKind int

const (
	Invariant OrientationKind = iota // Rotationally symmetric
	Edge                             // Faces one horizontal cardinal direction
	Corner                           // Faces one horizontal diagonal
)

// String returns the string representation of an OrientationKind
func (k OrientationKind) String() string {
	switch k {
	case Invariant:
		return "invariant"
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	default:
		return "unknown"
	}
}

// ParseOrientationKind converts a kind name back to an OrientationKind
func ParseOrientationKind(s string) (OrientationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "invariant":
		return Invariant, nil
	case "edge":
		return Edge, nil
	case "corner":
		return Corner, nil
	}
	return 0, fmt.Errorf("wfc: unknown orientation %q", s)
}

// Orientation is a symmetry class plus, for Edge and Corner, the facing direction.
// Facing is meaningless for Invariant.
type Orientation struct {
	Kind   OrientationKind
	Facing Direction
}

// InvariantOrientation returns the orientation of a rotationally symmetric tile
func InvariantOrientation() Orientation {
	return Orientation{Kind: Invariant}
}

// EdgeFacing returns an Edge orientation facing d
func EdgeFacing(d Direction) Orientation {
	return Orientation{Kind: Edge, Facing: d}
}

// CornerFacing returns a Corner orientation facing d
func CornerFacing(d Direction) Orientation {
	return Orientation{Kind: Corner, Facing: d}
}

// Rotated rotates the facing direction. Invariant is a fixed point.
func (o Orientation) Rotated(r voxel.Rotation) Orientation {
	if o.Kind == Invariant {
		return o
	}
	return Orientation{Kind: o.Kind, Facing: o.Facing.Rotated(r)}
}

// Faces reports whether the tile has a facing direction equal to d
func (o Orientation) Faces(d Direction) bool {
	return o.Kind != Invariant && o.Facing == d
}

// Validate checks that the facing direction suits the kind
func (o Orientation) Validate() error {
	switch o.Kind {
	case Invariant:
		return nil
	case Edge:
		if !o.Facing.IsCardinal() {
			return fmt.Errorf("wfc: edge orientation must face a horizontal cardinal direction, got %s", o.Facing)
		}
	case Corner:
		if !o.Facing.IsDiagonal() {
			return fmt.Errorf("wfc: corner orientation must face a diagonal, got %s", o.Facing)
		}
	default:
		return fmt.Errorf("wfc: unknown orientation kind %d", o.Kind)
	}
	return nil
}

func (o Orientation) String() string {
	if o.Kind == Invariant {
		return "invariant"
	}
	return o.Facing.String()
}

// Tile is one entry of an expanded catalog. Tiles are built once by NewTileSet and are
// never modified afterwards; a rotation produces a new Tile.
type Tile struct {
	Name        string
	Base        string
	Tag         Tag
	Orientation Orientation
	Voxels      *voxel.Grid
}

// Rotated returns the variant of t turned by r around the vertical axis. Edge and
// Corner variants are named "{base}-{orientation}".
func (t Tile) Rotated(r voxel.Rotation) Tile {
	if t.Orientation.Kind == Invariant {
		return t
	}
	o := t.Orientation.Rotated(r)
	out := Tile{
		Name:        fmt.Sprintf("%s-%s", t.Base, o),
		Base:        t.Base,
		Tag:         t.Tag,
		Orientation: o,
	}
	if t.Voxels != nil {
		out.Voxels = t.Voxels.RotatedZ(r)
	}
	return out
}
