package wfc

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
)

// Direction is a neighbour direction in the lattice. The six axis directions carry
// propagation edges; the four diagonals only describe corner tile orientation.
type Direction int

const (
	East Direction = iota
	West
	North
	South
	Up
	Down
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var directionNames = [...]string{
	East:      "east",
	West:      "west",
	North:     "north",
	South:     "south",
	Up:        "up",
	Down:      "down",
	NorthEast: "north-east",
	NorthWest: "north-west",
	SouthEast: "south-east",
	SouthWest: "south-west",
}

// String returns the lowercase name of a Direction
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection converts a lowercase name back to a Direction
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("wfc: unknown direction %q", s)
}

// AxisDirections returns the six propagation directions in table order
func AxisDirections() []Direction {
	return []Direction{East, West, North, South, Up, Down}
}

// HorizontalDirections returns the four horizontal cardinal directions
func HorizontalDirections() []Direction {
	return []Direction{East, West, North, South}
}

// DiagonalDirections returns the four horizontal diagonals
func DiagonalDirections() []Direction {
	return []Direction{NorthEast, NorthWest, SouthEast, SouthWest}
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	switch d {
	case East:
		return West
	case West:
		return East
	case North:
		return South
	case South:
		return North
	case Up:
		return Down
	case Down:
		return Up
	case NorthEast:
		return SouthWest
	case NorthWest:
		return SouthEast
	case SouthEast:
		return NorthWest
	case SouthWest:
		return NorthEast
	default:
		return d
	}
}

// quarterTurn is one counter-clockwise quarter turn seen from above.
var quarterTurn = map[Direction]Direction{
	East:      North,
	North:     West,
	West:      South,
	South:     East,
	NorthEast: NorthWest,
	NorthWest: SouthWest,
	SouthWest: SouthEast,
	SouthEast: NorthEast,
}

// Rotated turns a horizontal direction around the vertical axis. Up and Down are
// fixed points.
func (d Direction) Rotated(r voxel.Rotation) Direction {
	turns := int(r) % 4
	if turns < 0 {
		turns += 4
	}
	for i := 0; i < turns; i++ {
		next, ok := quarterTurn[d]
		if !ok {
			return d
		}
		d = next
	}
	return d
}

// IsAxis reports whether d is one of the six propagation directions
func (d Direction) IsAxis() bool {
	return d >= East && d <= Down
}

// IsCardinal reports whether d is East, West, North or South
func (d Direction) IsCardinal() bool {
	return d >= East && d <= South
}

// IsHorizontal reports whether d lies in the horizontal plane, diagonals included
func (d Direction) IsHorizontal() bool {
	return d.IsCardinal() || d.IsDiagonal()
}

// IsVertical reports whether d is Up or Down
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// IsDiagonal reports whether d is one of the four horizontal diagonals
func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d <= SouthWest
}

// IsPerpendicular reports whether two horizontal cardinal directions meet at a right
// angle. Any other pairing is never perpendicular.
func (d Direction) IsPerpendicular(other Direction) bool {
	if !d.IsCardinal() || !other.IsCardinal() {
		return false
	}
	eastWest := func(x Direction) bool { return x == East || x == West }
	return eastWest(d) != eastWest(other)
}

// Components splits a diagonal into its north/south and east/west parts. Axis
// directions return themselves twice.
func (d Direction) Components() (Direction, Direction) {
	switch d {
	case NorthEast:
		return North, East
	case NorthWest:
		return North, West
	case SouthEast:
		return South, East
	case SouthWest:
		return South, West
	default:
		return d, d
	}
}

// Offset returns the lattice step for d. North is +y and Up is +z.
func (d Direction) Offset() (dx, dy, dz int) {
	switch d {
	case East:
		return 1, 0, 0
	case West:
		return -1, 0, 0
	case North:
		return 0, 1, 0
	case South:
		return 0, -1, 0
	case Up:
		return 0, 0, 1
	case Down:
		return 0, 0, -1
	case NorthEast:
		return 1, 1, 0
	case NorthWest:
		return -1, 1, 0
	case SouthEast:
		return 1, -1, 0
	case SouthWest:
		return -1, -1, 0
	}
	return 0, 0, 0
}

// DirectionSet is a bitmask of directions used by rules.
type DirectionSet uint16

// NewDirectionSet builds a set from the given directions
func NewDirectionSet(dirs ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range dirs {
		s |= 1 << uint(d)
	}
	return s
}

var (
	Horizontal = NewDirectionSet(East, West, North, South)
	Vertical   = NewDirectionSet(Up, Down)
	AllAxes    = Horizontal | Vertical
)

// Has reports whether d is in the set
func (s DirectionSet) Has(d Direction) bool {
	return d >= 0 && s&(1<<uint(d)) != 0
}

// Directions lists the members in enumeration order
func (s DirectionSet) Directions() []Direction {
	var out []Direction
	for d := range directionNames {
		if s.Has(Direction(d)) {
			out = append(out, Direction(d))
		}
	}
	return out
}

func (s DirectionSet) String() string {
	switch s {
	case AllAxes:
		return "all"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	var names []string
	for _, d := range s.Directions() {
		names = append(names, d.String())
	}
	return strings.Join(names, ",")
}

// ParseDirectionSet accepts direction names plus the group names horizontal,
// vertical and all.
func ParseDirectionSet(names []string) (DirectionSet, error) {
	var s DirectionSet
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "horizontal":
			s |= Horizontal
		case "vertical":
			s |= Vertical
		case "all":
			s |= AllAxes
		default:
			d, err := ParseDirection(name)
			if err != nil {
				return 0, err
			}
			if d.IsDiagonal() {
				return 0, fmt.Errorf("wfc: diagonal %s cannot carry a rule", d)
			}
			s |= NewDirectionSet(d)
		}
	}
	if s == 0 {
		return 0, fmt.Errorf("wfc: empty direction set")
	}
	return s, nil
}
