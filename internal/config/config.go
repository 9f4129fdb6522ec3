package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/tilegen/internal/database"
	"github.com/lawnchairsociety/tilegen/internal/voxel"
	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

// GeneratorConfig holds every setting of a tilegen run.
type GeneratorConfig struct {
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Ledger     LedgerConfig     `yaml:"ledger"`
}

// GenerationConfig selects the template and the lattice.
type GenerationConfig struct {
	// Template names a built-in preset or one from TemplatesFile.
	Template string `yaml:"template"`

	// TemplatesFile is an optional YAML file of extra templates.
	TemplatesFile string `yaml:"templates_file"`

	// Lattice size in cells.
	Width  int `yaml:"width"`
	Depth  int `yaml:"depth"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`

	// MaxDistance bounds how far one observation propagates.
	MaxDistance int `yaml:"max_distance"`

	// MaxSteps caps solver steps per attempt. 0 means twice the cell count.
	MaxSteps int `yaml:"max_steps"`

	// Attempts is how many fresh seeds are tried before giving up.
	Attempts int `yaml:"attempts"`
}

// OutputConfig controls what gets written after a solve.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	GLB         bool   `yaml:"glb"`
	Compression string `yaml:"compression"`
	Preview     bool   `yaml:"preview"`
}

// LedgerConfig controls the run ledger.
type LedgerConfig struct {
	Enabled  bool            `yaml:"enabled"`
	Database database.Config `yaml:",inline"`
}

// DefaultConfig returns a GeneratorConfig that solves a small road map.
func DefaultConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Generation: GenerationConfig{
			Template:    "meadow",
			Width:       8,
			Depth:       8,
			Height:      3,
			Seed:        1,
			MaxDistance: wfc.DefaultMaxDistance,
			Attempts:    10,
		},
		Output: OutputConfig{
			Dir:         "out",
			Compression: string(voxel.CompressionNone),
		},
		Ledger: LedgerConfig{
			Database: database.DefaultConfig("data/tilegen.db"),
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// A missing file yields the defaults.
func LoadConfig(path string) (*GeneratorConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// Validate reports the first setting that cannot drive a run.
func (c *GeneratorConfig) Validate() error {
	g := c.Generation
	if g.Template == "" {
		return errors.New("generation.template cannot be empty")
	}
	if err := c.Dimensions().Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if g.MaxDistance < 1 {
		return fmt.Errorf("generation.max_distance must be at least 1, got %d", g.MaxDistance)
	}
	if g.MaxSteps < 0 {
		return fmt.Errorf("generation.max_steps cannot be negative, got %d", g.MaxSteps)
	}
	if g.Attempts < 1 {
		return fmt.Errorf("generation.attempts must be at least 1, got %d", g.Attempts)
	}
	if _, err := voxel.ParseCompression(c.Output.Compression); err != nil {
		return fmt.Errorf("output.compression: %w", err)
	}
	if c.Ledger.Enabled {
		switch database.DialectType(c.Ledger.Database.Driver) {
		case database.DialectSQLite, database.DialectPostgres:
		default:
			return fmt.Errorf("ledger.driver %q is not sqlite or postgres", c.Ledger.Database.Driver)
		}
	}
	return nil
}

// Dimensions returns the lattice size.
func (c *GeneratorConfig) Dimensions() wfc.Dimensions {
	return wfc.Dimensions{
		Width:  c.Generation.Width,
		Depth:  c.Generation.Depth,
		Height: c.Generation.Height,
	}
}

// SolverConfig converts the generation section for wfc.NewGenerator.
func (c *GeneratorConfig) SolverConfig() *wfc.GeneratorConfig {
	cfg := wfc.DefaultGeneratorConfig(c.Dimensions(), c.Generation.Seed)
	cfg.MaxDistance = c.Generation.MaxDistance
	cfg.MaxSteps = c.Generation.MaxSteps
	cfg.Attempts = c.Generation.Attempts
	return cfg
}
