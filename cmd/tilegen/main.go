package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lawnchairsociety/tilegen/internal/config"
	"github.com/lawnchairsociety/tilegen/internal/logger"
)

func main() {
	configFile := flag.String("config", "data/tilegen.yaml", "Path to generator config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	template := flag.String("template", "", "Template to solve (see -list-templates)")
	templatesFile := flag.String("templates", "", "YAML file with additional templates")
	width := flag.Int("width", 0, "Lattice width in cells")
	depth := flag.Int("depth", 0, "Lattice depth in cells")
	height := flag.Int("height", 0, "Lattice height in cells")
	seed := flag.Int64("seed", 0, "Base seed (0 picks one from the clock)")
	maxDistance := flag.Int("max-distance", 0, "Propagation radius per observation")
	attempts := flag.Int("attempts", 0, "Fresh seeds to try before giving up")
	outDir := flag.String("out", "", "Output directory")
	glb := flag.Bool("glb", false, "Also write a binary glTF mesh")
	compression := flag.String("compression", "", "Output compression: none or zstd")
	showPreview := flag.Bool("preview", false, "Print an ASCII preview of every layer")
	listTemplates := flag.Bool("list-templates", false, "List available templates and exit")
	ledger := flag.Bool("ledger", false, "Record the run in the ledger database")
	history := flag.Int("history", 0, "Print the N most recent ledger runs and exit")
	flag.Parse()

	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading logging config: %v\n", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load config, using defaults", "path", *configFile, "error", err)
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		g := &cfg.Generation
		switch f.Name {
		case "template":
			g.Template = *template
		case "templates":
			g.TemplatesFile = *templatesFile
		case "width":
			g.Width = *width
		case "depth":
			g.Depth = *depth
		case "height":
			g.Height = *height
		case "seed":
			g.Seed = *seed
		case "max-distance":
			g.MaxDistance = *maxDistance
		case "attempts":
			g.Attempts = *attempts
		case "out":
			cfg.Output.Dir = *outDir
		case "glb":
			cfg.Output.GLB = *glb
		case "compression":
			cfg.Output.Compression = *compression
		case "preview":
			cfg.Output.Preview = *showPreview
		case "ledger":
			cfg.Ledger.Enabled = *ledger
		}
	})

	if *listTemplates {
		if err := printTemplates(os.Stdout, cfg.Generation.TemplatesFile); err != nil {
			logger.Error("Failed to list templates", "error", err)
			os.Exit(1)
		}
		return
	}

	if *history > 0 {
		if err := printHistory(os.Stdout, cfg.Ledger.Database, *history); err != nil {
			logger.Error("Failed to read ledger", "error", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Generation.Seed == 0 {
		cfg.Generation.Seed = time.Now().UnixNano()
		logger.Info("Seed selected", "seed", cfg.Generation.Seed, "random", true)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if _, err := generate(cfg, os.Stdout); err != nil {
		logger.Error("Generation failed", "template", cfg.Generation.Template, "error", err)
		os.Exit(1)
	}
}
