package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"scene-raytracer/internal/output"
	"scene-raytracer/internal/raster"
	"scene-raytracer/internal/scenefile"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir     string
	Format        output.Format
	Scale         float64
	SingleSided   bool
	Workers       int       // scenes rendered concurrently
	RenderWorkers int       // row workers per scene
	Progress      io.Writer // nil disables progress lines
}

// Result holds the outcome of rendering one scene file.
type Result struct {
	Name    string
	Scene   string // input path
	Image   string // output path relative to OutputDir
	Width   int
	Height  int
	Success bool
	Error   string
}

// Discover returns the scene files (*.json) in dir, sorted by name.
// manifest.json and config.json are skipped.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		if lower := strings.ToLower(name); lower == "manifest.json" || lower == "config.json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// Run renders all scene files using a worker pool.
// A failing scene never stops the others.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	if total == 0 {
		return results
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f scenes/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	sceneChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

// ImageName maps a scene file to its output file name.
func ImageName(scenePath string, f output.Format) string {
	base := filepath.Base(scenePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + f.Ext()
}

func processScene(cfg Config, path string) Result {
	res := Result{
		Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Scene: path,
	}

	s, err := scenefile.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if cfg.SingleSided {
		s.SingleSided = true
	}

	fb, err := raster.Render(s, cfg.RenderWorkers)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	img := fb.Image()
	if cfg.Scale > 0 {
		img = output.Resize(img, cfg.Scale)
	}

	res.Image = ImageName(path, cfg.Format)
	res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()
	if err := output.Save(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
