package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/tilegen/internal/wfc"
)

func main() {
	template := flag.String("template", "meadow", "Template to solve")
	templatesFile := flag.String("templates", "", "YAML file with additional templates")
	seeds := flag.String("seeds", "", "Seed range to generate (e.g., 1-25 or 7)")
	width := flag.Int("width", 8, "Lattice width in cells")
	depth := flag.Int("depth", 8, "Lattice depth in cells")
	height := flag.Int("height", 3, "Lattice height in cells")
	attempts := flag.Int("attempts", 10, "Fresh seeds per map before giving up")
	outDir := flag.String("out", "", "Output directory (default: out/{template}/)")
	flag.Parse()

	if *seeds == "" {
		fmt.Fprintln(os.Stderr, "Error: --seeds is required (e.g., --seeds=1-25 or --seeds=7)")
		flag.Usage()
		os.Exit(1)
	}

	startSeed, endSeed, err := parseSeedRange(*seeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid seed range: %v\n", err)
		os.Exit(1)
	}

	outputDir := *outDir
	if outputDir == "" {
		outputDir = fmt.Sprintf("out/%s", *template)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	registry := wfc.NewRegistry()
	if *templatesFile != "" {
		if err := registry.LoadFile(*templatesFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	tmpl, err := registry.Lookup(*template)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dims := wfc.Dimensions{Width: *width, Depth: *depth, Height: *height}
	batch, err := NewBatch(tmpl, dims, *attempts, outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating seeds %d-%d for template '%s' (%s)\n", startSeed, endSeed, tmpl.Name, dims)
	fmt.Printf("Output directory: %s\n\n", outputDir)

	failed := 0
	for seed := startSeed; seed <= endSeed; seed++ {
		fmt.Printf("Generating seed %d... ", seed)
		entry := batch.Generate(seed)
		if entry.Error != "" {
			fmt.Printf("FAILED: %s\n", entry.Error)
			failed++
			continue
		}
		fmt.Printf("OK (%d attempts)\n", entry.Attempts)
	}

	path, err := batch.WriteManifest()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nGenerated %d of %d map(s), manifest at %s\n", int(endSeed-startSeed+1)-failed, endSeed-startSeed+1, path)
	if failed > 0 {
		os.Exit(1)
	}
}

// parseSeedRange parses a seed range string like "1-25" or "5"
func parseSeedRange(s string) (start, end int64, err error) {
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("invalid range format, expected 'start-end'")
		}
		start, err = strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start seed: %w", err)
		}
		end, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end seed: %w", err)
		}
	} else {
		start, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid seed: %w", err)
		}
		end = start
	}

	if start < 1 {
		return 0, 0, fmt.Errorf("seeds must be >= 1")
	}
	if end < start {
		return 0, 0, fmt.Errorf("end seed must be >= start seed")
	}

	return start, end, nil
}
