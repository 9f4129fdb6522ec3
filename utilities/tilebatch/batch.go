package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lawnchairsociety/tilegen/internal/voxel"
	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

// Batch solves one template for a series of seeds and writes a .vox per seed
type Batch struct {
	Template  *wfc.Template
	Dims      wfc.Dimensions
	Attempts  int
	OutputDir string

	tiles    *wfc.TileSet
	manifest *Manifest
}

// NewBatch builds the tile set once for every seed
func NewBatch(tmpl *wfc.Template, dims wfc.Dimensions, attempts int, outputDir string) (*Batch, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	tiles, err := wfc.NewTileSet(tmpl)
	if err != nil {
		return nil, err
	}
	return &Batch{
		Template:  tmpl,
		Dims:      dims,
		Attempts:  attempts,
		OutputDir: outputDir,
		tiles:     tiles,
		manifest: &Manifest{
			Template:      tmpl.Name,
			Size:          [3]int{dims.Width, dims.Depth, dims.Height},
			TileSetDigest: tiles.Digest(),
		},
	}, nil
}

// Generate solves one seed, writes its model and records it in the manifest.
// Failures are recorded, not returned.
func (b *Batch) Generate(seed int64) ManifestEntry {
	entry := ManifestEntry{Seed: seed}
	if err := b.generate(seed, &entry); err != nil {
		entry.Error = err.Error()
	}
	b.manifest.Maps = append(b.manifest.Maps, entry)
	return entry
}

func (b *Batch) generate(seed int64, entry *ManifestEntry) error {
	cfg := wfc.DefaultGeneratorConfig(b.Dims, seed)
	cfg.Attempts = b.Attempts
	gen, err := wfc.NewGenerator(b.tiles, cfg)
	if err != nil {
		return err
	}
	gen.OnAttempt = func(a wfc.Attempt) { entry.Attempts = a.Number + 1 }

	out, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("WFC generation failed: %w", err)
	}
	entry.SolvedSeed = out.Seed
	entry.Steps = out.Solution.Steps
	entry.Tiles = out.Solution.Counts()

	grid, err := out.Solution.Voxels()
	if err != nil {
		return err
	}
	data, err := voxel.EncodeVox(grid)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%d.vox", b.Template.Name, seed)
	if err := os.WriteFile(filepath.Join(b.OutputDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	entry.File = filename
	entry.Digest = voxel.Digest(data)
	return nil
}

// WriteManifest writes manifest.yaml into the output directory
func (b *Batch) WriteManifest() (string, error) {
	path := filepath.Join(b.OutputDir, "manifest.yaml")
	if err := WriteManifest(b.manifest, path); err != nil {
		return "", err
	}
	return path, nil
}
