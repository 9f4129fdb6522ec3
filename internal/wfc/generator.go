package wfc

import (
	"fmt"
)

// GeneratorConfig contains parameters for map generation
type GeneratorConfig struct {
	Dimensions  Dimensions
	Seed        int64 // Base seed; attempt n uses Seed + n*1000
	MaxDistance int
	MaxSteps    int
	Attempts    int // Fresh solves tried before giving up
}

// DefaultGeneratorConfig returns reasonable defaults for a lattice size
func DefaultGeneratorConfig(dims Dimensions, seed int64) *GeneratorConfig {
	return &GeneratorConfig{
		Dimensions:  dims,
		Seed:        seed,
		MaxDistance: DefaultMaxDistance,
		Attempts:    10,
	}
}

// Attempt describes one finished solve, successful or not
type Attempt struct {
	Number int // 0-based
	Seed   int64
	Steps  int
	State  State
	Err    error
}

// GeneratedMap is the output of a successful generation
type GeneratedMap struct {
	Solution *Solution
	Seed     int64 // Seed of the attempt that solved
	Attempts int   // Solves run, including the successful one
}

// Generator regenerates from scratch with a new seed whenever a solve fails. The
// solver itself never retries.
type Generator struct {
	config *GeneratorConfig
	tiles  *TileSet
	graph  *Graph

	// OnAttempt, when set, is called after every solve.
	OnAttempt func(Attempt)
}

// NewGenerator creates a new generator for one tile set and lattice
func NewGenerator(tiles *TileSet, config *GeneratorConfig) (*Generator, error) {
	graph, err := NewGraph(config.Dimensions)
	if err != nil {
		return nil, err
	}
	return &Generator{
		config: config,
		tiles:  tiles,
		graph:  graph,
	}, nil
}

// AttemptSeed returns the seed used by attempt n
func (g *Generator) AttemptSeed(n int) int64 {
	return g.config.Seed + int64(n*1000)
}

// Generate solves the lattice, retrying up to the configured number of attempts
func (g *Generator) Generate() (*GeneratedMap, error) {
	attempts := g.config.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		seed := g.AttemptSeed(attempt)
		solver := NewSolver(g.tiles, g.graph, Options{
			Seed:        seed,
			MaxDistance: g.config.MaxDistance,
			MaxSteps:    g.config.MaxSteps,
		})

		solution, err := solver.Run()
		if g.OnAttempt != nil {
			g.OnAttempt(Attempt{
				Number: attempt,
				Seed:   seed,
				Steps:  solver.Steps(),
				State:  solver.State(),
				Err:    err,
			})
		}
		if err != nil {
			lastErr = err
			continue
		}

		return &GeneratedMap{
			Solution: solution,
			Seed:     seed,
			Attempts: attempt + 1,
		}, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
	}
	return nil, ErrNoSolution
}
