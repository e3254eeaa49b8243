package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"scene-raytracer/internal/output"
)

// Config holds paths and render settings.
type Config struct {
	// Paths
	SceneDir  string `json:"scene_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Format      string  `json:"format"`
	Workers     int     `json:"workers"`
	Scale       float64 `json:"scale"`
	SingleSided bool    `json:"single_sided"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.SingleSided {
		c.SingleSided = true
	}

	// Relative output dir is taken against the scene dir
	if c.OutputDir == "" {
		if c.SceneDir != "" {
			c.OutputDir = filepath.Join(c.SceneDir, "renders")
		} else {
			c.OutputDir = "renders"
		}
	} else if c.SceneDir != "" && !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		c.OutputDir = filepath.Join(c.SceneDir, c.OutputDir)
	}

	// Defaults for render settings
	if c.Format == "" {
		c.Format = string(output.PNG)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
}

// Validate checks settings that Resolve cannot default.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir    string
	OutputDir   string
	Format      string
	Workers     int
	Scale       float64
	SingleSided bool
}
