package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	RendererGIF      = "gif"
	RendererTerminal = "terminal"
	RendererNone     = "none"

	SaveRLENone    = "none"
	SaveRLEInitial = "initial"
	SaveRLEFinal   = "final"
)

// Config holds the configuration for a simulation run
type Config struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Generations    int           `json:"generations"`
	RandomDensity  float64       `json:"random_density"`
	Seed           int64         `json:"seed"` // 0 picks a seed from the clock
	FrameRate      time.Duration `json:"frame_rate"`
	CellSize       int           `json:"cell_size"`
	Renderer       string        `json:"renderer"`
	OutputDir      string        `json:"output_dir"`
	SaveRLE        string        `json:"save_rle"`
	RLEDir         string        `json:"rle_dir"`
	UseParallel    bool          `json:"use_parallel"`
	Workers        int           `json:"workers"`
	UseMemoryPool  bool          `json:"use_memory_pool"`
	UseBoundedGrid bool          `json:"use_bounded_grid"`
	LogLevel       string        `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:          50,
		Height:         50,
		Generations:    100,
		RandomDensity:  0.4,
		FrameRate:      100 * time.Millisecond,
		CellSize:       8,
		Renderer:       RendererGIF,
		OutputDir:      "GoL-gifs",
		SaveRLE:        SaveRLENone,
		RLEDir:         "saved-RLEs",
		UseParallel:    true,
		UseMemoryPool:  true,
		UseBoundedGrid: true, // Enable active region optimization
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from JSON file, unset fields keep their defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks every setting and reports the first one out of range
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.Generations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] generations must not be negative, got %d", c.Generations)
	case !(c.RandomDensity >= 0 && c.RandomDensity <= 1):
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random density must be in [0, 1], got %v", c.RandomDensity)
	case c.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame rate must be positive, got %v", c.FrameRate)
	case c.CellSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] cell size must be positive, got %d", c.CellSize)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must not be negative, got %d", c.Workers)
	}

	switch c.Renderer {
	case RendererGIF, RendererTerminal, RendererNone:
	default:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown renderer %q", c.Renderer)
	}
	switch c.SaveRLE {
	case SaveRLENone, SaveRLEInitial, SaveRLEFinal:
	default:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown save_rle mode %q", c.SaveRLE)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrapf(ErrInvalidConfig, "[Level] unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// StepWorkers returns the number of goroutines a single step may use
func (c Config) StepWorkers(numCPU int) int {
	if !c.UseParallel {
		return 1
	}
	if c.Workers > 0 {
		return c.Workers
	}
	return numCPU
}
