package wfc

import (
	"testing"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
)

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{East, "east"},
		{West, "west"},
		{North, "north"},
		{South, "south"},
		{Up, "up"},
		{Down, "down"},
		{NorthEast, "north-east"},
		{SouthWest, "south-west"},
		{Direction(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range append(AxisDirections(), DiagonalDirections()...) {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v", d.String(), got, err, d)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range append(AxisDirections(), DiagonalDirections()...) {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s.Opposite().Opposite() = %s", d, d.Opposite().Opposite())
		}
		dx, dy, dz := d.Offset()
		ox, oy, oz := d.Opposite().Offset()
		if dx+ox != 0 || dy+oy != 0 || dz+oz != 0 {
			t.Errorf("%s and its opposite offsets do not cancel", d)
		}
	}
}

func TestDirectionRotated(t *testing.T) {
	tests := []struct {
		d    Direction
		r    voxel.Rotation
		want Direction
	}{
		{East, voxel.R90, North},
		{East, voxel.R180, West},
		{East, voxel.R270, South},
		{North, voxel.R90, West},
		{West, voxel.R90, South},
		{NorthEast, voxel.R90, NorthWest},
		{NorthEast, voxel.R180, SouthWest},
		{SouthEast, voxel.R90, NorthEast},
		{Up, voxel.R90, Up},
		{Down, voxel.R270, Down},
		{South, voxel.R0, South},
	}

	for _, tc := range tests {
		if got := tc.d.Rotated(tc.r); got != tc.want {
			t.Errorf("%s.Rotated(%s) = %s, want %s", tc.d, tc.r, got, tc.want)
		}
	}
}

func TestDirectionRotationClosure(t *testing.T) {
	for _, d := range append(AxisDirections(), DiagonalDirections()...) {
		got := d
		for _, r := range []voxel.Rotation{voxel.R90, voxel.R90, voxel.R90, voxel.R90} {
			got = got.Rotated(r)
		}
		if got != d {
			t.Errorf("four quarter turns took %s to %s", d, got)
		}
		if d.Rotated(voxel.R90).Rotated(voxel.R270) != d {
			t.Errorf("R90 then R270 should return %s", d)
		}
	}
}

func TestDirectionClassification(t *testing.T) {
	if !East.IsHorizontal() || East.IsVertical() || East.IsDiagonal() {
		t.Error("East should be horizontal only")
	}
	if !Up.IsVertical() || Up.IsHorizontal() {
		t.Error("Up should be vertical")
	}
	if !NorthEast.IsDiagonal() || !NorthEast.IsHorizontal() || NorthEast.IsAxis() {
		t.Error("NorthEast should be a horizontal diagonal")
	}
	if len(AxisDirections()) != 6 {
		t.Errorf("AxisDirections() has %d entries, want 6", len(AxisDirections()))
	}
}

func TestDirectionIsPerpendicular(t *testing.T) {
	tests := []struct {
		a, b Direction
		want bool
	}{
		{East, North, true},
		{South, West, true},
		{East, West, false},
		{North, North, false},
		{East, Up, false},
		{Up, Down, false},
		{NorthEast, NorthWest, false},
	}

	for _, tc := range tests {
		if got := tc.a.IsPerpendicular(tc.b); got != tc.want {
			t.Errorf("%s.IsPerpendicular(%s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParseDirectionSet(t *testing.T) {
	tests := []struct {
		in      []string
		want    DirectionSet
		wantErr bool
	}{
		{[]string{"horizontal"}, Horizontal, false},
		{[]string{"vertical"}, Vertical, false},
		{[]string{"all"}, AllAxes, false},
		{[]string{"up", "east"}, NewDirectionSet(Up, East), false},
		{[]string{"down", "horizontal"}, Horizontal | NewDirectionSet(Down), false},
		{[]string{"north-east"}, 0, true},
		{[]string{"nowhere"}, 0, true},
		{nil, 0, true},
	}

	for _, tc := range tests {
		got, err := ParseDirectionSet(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDirectionSet(%v) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDirectionSet(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDirectionSetString(t *testing.T) {
	if Horizontal.String() != "horizontal" {
		t.Errorf("Horizontal.String() = %q", Horizontal.String())
	}
	if got := NewDirectionSet(Up, East).String(); got != "east,up" {
		t.Errorf("String() = %q, want east,up", got)
	}
}
