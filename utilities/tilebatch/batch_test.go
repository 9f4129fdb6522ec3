package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

func TestParseSeedRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end int64
		ok         bool
	}{
		{"1-25", 1, 25, true},
		{" 7 ", 7, 7, true},
		{"3 - 4", 3, 4, true},
		{"0-3", 0, 0, false},
		{"5-2", 0, 0, false},
		{"1-2-3", 0, 0, false},
		{"abc", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, err := parseSeedRange(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseSeedRange(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && (start != tt.start || end != tt.end) {
			t.Errorf("parseSeedRange(%q) = %d-%d, want %d-%d", tt.in, start, end, tt.start, tt.end)
		}
	}
}

func TestBatchGenerate(t *testing.T) {
	dir := t.TempDir()
	batch, err := NewBatch(wfc.MeadowTemplate(), wfc.Dimensions{Width: 3, Depth: 3, Height: 2}, 5, dir)
	if err != nil {
		t.Fatalf("NewBatch() error: %v", err)
	}

	for seed := int64(1); seed <= 3; seed++ {
		entry := batch.Generate(seed)
		if entry.Error != "" {
			t.Fatalf("seed %d failed: %s", seed, entry.Error)
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.File))
		if err != nil {
			t.Fatalf("seed %d: model not written: %v", seed, err)
		}
		if voxel.Digest(data) != entry.Digest {
			t.Errorf("seed %d: digest mismatch", seed)
		}
	}

	path, err := batch.WriteManifest()
	if err != nil {
		t.Fatalf("WriteManifest() error: %v", err)
	}
	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}
	if m.Template != "meadow" || m.Size != [3]int{3, 3, 2} || len(m.Maps) != 3 {
		t.Errorf("manifest = %+v", m)
	}
	if m.Maps[1].File != "meadow_2.vox" || m.Maps[1].Attempts < 1 {
		t.Errorf("second entry = %+v", m.Maps[1])
	}
	total := 0
	for _, n := range m.Maps[0].Tiles {
		total += n
	}
	if total != 18 {
		t.Errorf("tile counts sum to %d, want 18", total)
	}
}

func TestBatchRecordsFailures(t *testing.T) {
	dir := t.TempDir()
	batch, err := NewBatch(wfc.MeadowTemplate(), wfc.Dimensions{Width: 2, Depth: 2, Height: 1}, 1, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("NewBatch() error: %v", err)
	}
	entry := batch.Generate(1)
	if entry.Error == "" {
		t.Error("writing into a missing directory should fail")
	}
}

func TestNewBatchInvalidSize(t *testing.T) {
	if _, err := NewBatch(wfc.MeadowTemplate(), wfc.Dimensions{Width: 0, Depth: 2, Height: 2}, 1, t.TempDir()); err == nil {
		t.Error("NewBatch() with an empty lattice should fail")
	}
}
