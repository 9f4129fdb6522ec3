package voxel

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeVoxHeader(t *testing.T) {
	data, err := EncodeVox(Grass(3, 3, 3))
	if err != nil {
		t.Fatalf("EncodeVox() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("VOX ")) {
		t.Fatalf("missing VOX magic: % x", data[:8])
	}
	if data[4] != 150 {
		t.Errorf("version = %d, want 150", data[4])
	}
	if string(data[8:12]) != "MAIN" {
		t.Errorf("first chunk = %q, want MAIN", data[8:12])
	}
}

func TestEncodeDecodeVox(t *testing.T) {
	g := NewGrid(4, 3, 2)
	g.Set(0, 0, 0, FromRGBA(Brown))
	g.Set(3, 2, 1, FromRGBA(Green))
	g.Set(1, 1, 0, FromRGBA(Grey))
	g.Set(2, 1, 0, FromRGBA(Grey))

	data, err := EncodeVox(g)
	if err != nil {
		t.Fatalf("EncodeVox() error: %v", err)
	}
	back, err := DecodeVox(data)
	if err != nil {
		t.Fatalf("DecodeVox() error: %v", err)
	}
	if !back.Equal(g) {
		t.Error("decoded grid differs from the encoded one")
	}
}

func TestEncodeVoxLimits(t *testing.T) {
	if _, err := EncodeVox(NewGrid(MaxVoxDimension+1, 1, 1)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversized grid error = %v, want ErrTooLarge", err)
	}

	g := NewGrid(16, 16, 1)
	i := 0
	g.Each(func(x, y, z int, _ Voxel) {
		g.Set(x, y, z, Voxel{R: uint8(i), G: 1, B: 1, A: 255})
		i++
	})
	if _, err := EncodeVox(g); !errors.Is(err, ErrPaletteFull) {
		t.Errorf("256 colors error = %v, want ErrPaletteFull", err)
	}
}

func TestDecodeVoxRejectsGarbage(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("VOX"),
		[]byte("NOPE\x96\x00\x00\x00"),
		append([]byte("VOX \x96\x00\x00\x00MAIN"), 0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0),
	}
	for i, in := range inputs {
		if _, err := DecodeVox(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("input %d: DecodeVox() error = %v, want ErrInvalidFormat", i, err)
		}
	}
}
