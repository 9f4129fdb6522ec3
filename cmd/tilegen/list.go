package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/lawnchairsociety/tilegen/internal/database"
)

// printTemplates lists every template with its expanded catalog size
func printTemplates(w io.Writer, templatesFile string) error {
	registry, err := loadRegistry(templatesFile)
	if err != nil {
		return err
	}
	for _, name := range registry.Names() {
		tmpl, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-12s %3d tiles  %dx%dx%d voxels  %s\n",
			name, tmpl.ExpandedSize(), tmpl.TileWidth, tmpl.TileDepth, tmpl.TileHeight, tmpl.Description)
	}
	return nil
}

// printHistory lists the newest ledger runs
func printHistory(w io.Writer, cfg database.Config, limit int) error {
	db, err := database.OpenWithConfig(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s  %-10s %3dx%dx%d  seed %-20d %-13s attempts %-2d %8s  %s\n",
			id, r.Template, r.Width, r.Depth, r.Height, r.Seed, r.Outcome, r.Attempts,
			humanize.Bytes(uint64(r.OutputBytes)), humanize.Time(r.StartedAt))
	}
	return nil
}
