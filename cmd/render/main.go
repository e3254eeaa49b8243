package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scene-raytracer/internal/batch"
	"scene-raytracer/internal/config"
	"scene-raytracer/internal/output"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Render only this scene file")
	sceneDir := flag.String("scenes", "", "Directory of scene files (*.json)")
	outputDir := flag.String("output", "", "Output directory (default: <scenes>/renders)")
	format := flag.String("format", "", "Image format: png, webp, tga, bmp, tiff (default: png)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	scale := flag.Float64("scale", 0, "Resize factor applied to the output image (default: 1)")
	singleSided := flag.Bool("single-sided", false, "Do not light back faces")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SceneDir:    *sceneDir,
		OutputDir:   *outputDir,
		Format:      *format,
		Workers:     *workers,
		Scale:       *scale,
		SingleSided: *singleSided,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	imgFormat, _ := output.ParseFormat(cfg.Format)

	// Collect scenes
	var scenes []string
	switch {
	case *sceneFile != "":
		scenes = []string{*sceneFile}
	case cfg.SceneDir != "":
		var err error
		scenes, err = batch.Discover(cfg.SceneDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "Error: no input. Use -scene, -scenes or scene_dir in config.json.")
		os.Exit(1)
	}

	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// One scene gets every worker for its rows; many scenes get one worker each.
	sceneWorkers, rowWorkers := cfg.Workers, 1
	if len(scenes) == 1 {
		sceneWorkers, rowWorkers = 1, cfg.Workers
	}

	fmt.Printf("Ray tracer → %s\n", imgFormat)
	fmt.Printf("Scenes: %d, Workers: %d\n", len(scenes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:     cfg.OutputDir,
		Format:        imgFormat,
		Scale:         cfg.Scale,
		SingleSided:   cfg.SingleSided,
		Workers:       sceneWorkers,
		RenderWorkers: rowWorkers,
		Progress:      os.Stdout,
	}, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(scenes))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	if len(scenes) > 1 {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
