package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/lawnchairsociety/tilegen/internal/config"
	"github.com/lawnchairsociety/tilegen/internal/database"
	"github.com/lawnchairsociety/tilegen/internal/logger"
	"github.com/lawnchairsociety/tilegen/internal/preview"
	"github.com/lawnchairsociety/tilegen/internal/voxel"
	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

// outcomeFailed is recorded when generation stops before any solve ran
const outcomeFailed = "failed"

// result describes what one generate call wrote
type result struct {
	Run      *database.Run
	Map      *wfc.GeneratedMap
	VoxPath  string
	GLBPath  string
	VoxBytes int
}

// loadRegistry returns the built-in templates plus those in templatesFile
func loadRegistry(templatesFile string) (*wfc.Registry, error) {
	registry := wfc.NewRegistry()
	if templatesFile != "" {
		if err := registry.LoadFile(templatesFile); err != nil {
			return nil, fmt.Errorf("failed to load templates from %s: %w", templatesFile, err)
		}
	}
	return registry, nil
}

// generate solves the configured template, writes the outputs and records the
// run in the ledger when enabled.
func generate(cfg *config.GeneratorConfig, stdout io.Writer) (*result, error) {
	g := cfg.Generation

	registry, err := loadRegistry(g.TemplatesFile)
	if err != nil {
		return nil, err
	}
	tmpl, err := registry.Lookup(g.Template)
	if err != nil {
		return nil, err
	}
	tiles, err := wfc.NewTileSet(tmpl)
	if err != nil {
		return nil, err
	}
	logger.Info("Tile set built", "template", tmpl.Name, "tiles", tiles.Len(), "digest", tiles.Digest())

	run := database.NewRun(tmpl.Name, g.Width, g.Depth, g.Height, g.Seed)
	run.TileSetDigest = tiles.Digest()

	var db *database.Database
	if cfg.Ledger.Enabled {
		db, err = database.OpenWithConfig(cfg.Ledger.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.SaveRun(run); err != nil {
			return nil, err
		}
		logger.Debug("Run recorded", "run", run.ID, "driver", cfg.Ledger.Database.Driver)
	}

	gen, err := wfc.NewGenerator(tiles, cfg.SolverConfig())
	if err != nil {
		return nil, finish(db, run, outcomeFailed, err)
	}

	var last wfc.Attempt
	gen.OnAttempt = func(a wfc.Attempt) {
		last = a
		run.Attempts = a.Number + 1
		run.Steps += a.Steps
		if a.Err != nil {
			logger.Warning("Attempt failed", "attempt", a.Number+1, "seed", a.Seed, "steps", a.Steps, "state", a.State.String(), "error", a.Err)
		} else {
			logger.Info("Attempt solved", "attempt", a.Number+1, "seed", a.Seed, "steps", a.Steps)
		}
		if db == nil {
			return
		}
		rec := &database.AttemptRecord{
			RunID:  run.ID,
			Number: a.Number + 1,
			Seed:   a.Seed,
			Steps:  a.Steps,
			State:  a.State.String(),
		}
		if a.Err != nil {
			rec.Error = a.Err.Error()
		}
		if _, err := db.RecordAttempt(rec); err != nil {
			logger.Warning("Failed to record attempt", "run", run.ID, "error", err)
		}
	}

	out, err := gen.Generate()
	if err != nil {
		return nil, finish(db, run, last.State.String(), err)
	}

	res := &result{Run: run, Map: out}
	if err := writeOutputs(cfg.Output, tmpl.Name, out.Solution, res); err != nil {
		return nil, finish(db, run, outcomeFailed, err)
	}

	if cfg.Output.Preview {
		if err := preview.Render(stdout, out.Solution, preview.Options{Legend: true}); err != nil {
			return nil, finish(db, run, outcomeFailed, err)
		}
	}

	if err := finish(db, run, wfc.Solved.String(), nil); err != nil {
		return nil, err
	}

	logger.Always("Generation complete",
		"template", tmpl.Name,
		"size", g.Width*g.Depth*g.Height,
		"seed", out.Seed,
		"attempts", out.Attempts,
		"steps", out.Solution.Steps,
		"output", res.VoxPath,
		"bytes", humanize.Bytes(uint64(res.VoxBytes)),
	)
	return res, nil
}

// finish stamps the run and saves it, returning cause (or the save error when
// there is no cause).
func finish(db *database.Database, run *database.Run, outcome string, cause error) error {
	run.Finish(outcome)
	if db == nil {
		return cause
	}
	if err := db.SaveRun(run); err != nil {
		if cause != nil {
			return errors.Join(cause, err)
		}
		return err
	}
	return cause
}

// writeOutputs encodes the solution as .vox (and optionally .glb) under
// out.Dir, filling the output fields of res.Run.
func writeOutputs(out config.OutputConfig, name string, sol *wfc.Solution, res *result) error {
	codec, err := voxel.ParseCompression(out.Compression)
	if err != nil {
		return err
	}
	grid, err := sol.Voxels()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	vox, err := voxel.EncodeVox(grid)
	if err != nil {
		return err
	}
	var packed []byte
	res.VoxPath, packed, err = writeFile(out.Dir, name+".vox", codec, vox)
	if err != nil {
		return err
	}
	res.VoxBytes = len(packed)
	res.Run.OutputPath = res.VoxPath
	res.Run.OutputBytes = int64(res.VoxBytes)
	res.Run.OutputDigest = voxel.Digest(packed)
	logger.Info("Wrote voxel model", "path", res.VoxPath, "voxels", grid.Count(), "size", humanize.Bytes(uint64(res.VoxBytes)))

	if out.GLB {
		glb, err := voxel.EncodeGLB(grid, name)
		if err != nil {
			return err
		}
		var packed []byte
		res.GLBPath, packed, err = writeFile(out.Dir, name+".glb", codec, glb)
		if err != nil {
			return err
		}
		logger.Info("Wrote mesh", "path", res.GLBPath, "size", humanize.Bytes(uint64(len(packed))))
	}
	return nil
}

// writeFile compresses data with codec and writes it as dir/file plus the codec suffix
func writeFile(dir, file string, codec voxel.Compression, data []byte) (string, []byte, error) {
	packed, err := voxel.Compress(codec, data)
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, file+codec.Extension())
	if err := os.WriteFile(path, packed, 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, packed, nil
}
