package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists every map a batch produced
type Manifest struct {
	Template      string          `yaml:"template"`
	Size          [3]int          `yaml:"size,flow"`
	TileSetDigest string          `yaml:"tileset_digest"`
	Maps          []ManifestEntry `yaml:"maps"`
}

// ManifestEntry is one seed's outcome
type ManifestEntry struct {
	Seed       int64          `yaml:"seed"`
	SolvedSeed int64          `yaml:"solved_seed,omitempty"`
	Attempts   int            `yaml:"attempts"`
	Steps      int            `yaml:"steps,omitempty"`
	File       string         `yaml:"file,omitempty"`
	Digest     string         `yaml:"digest,omitempty"`
	Tiles      map[string]int `yaml:"tiles,omitempty"`
	Error      string         `yaml:"error,omitempty"`
}

// WriteManifest writes a manifest to a YAML file
func WriteManifest(m *Manifest, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# Batch of %d %s map(s)\n", len(m.Maps), m.Template)

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return enc.Close()
}

// ReadManifest loads a manifest written by WriteManifest
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
