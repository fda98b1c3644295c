package utils

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if config.Width != 50 || config.Height != 50 || config.Generations != 100 {
		t.Fatalf("unexpected defaults: %+v", config)
	}
	if config.RandomDensity != 0.4 {
		t.Fatalf("unexpected default density: %v", config.RandomDensity)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"width": 80, "generations": 12, "renderer": "none", "frame_rate": 50000000}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config.Width != 80 || config.Generations != 12 || config.Renderer != RendererNone {
		t.Fatalf("file values not applied: %+v", config)
	}
	if config.FrameRate != 50*time.Millisecond {
		t.Fatalf("unexpected frame rate: %v", config.FrameRate)
	}
	// fields missing from the file keep their defaults
	if config.Height != 50 || config.CellSize != 8 || !config.UseBoundedGrid {
		t.Fatalf("defaults not kept: %+v", config)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{width: 3"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -4 }},
		{"negative generations", func(c *Config) { c.Generations = -1 }},
		{"density above one", func(c *Config) { c.RandomDensity = 1.5 }},
		{"negative density", func(c *Config) { c.RandomDensity = -0.1 }},
		{"NaN density", func(c *Config) { c.RandomDensity = math.NaN() }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"zero cell size", func(c *Config) { c.CellSize = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"unknown renderer", func(c *Config) { c.Renderer = "png" }},
		{"unknown save mode", func(c *Config) { c.SaveRLE = "both" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			config := DefaultConfig()
			tc.mutate(&config)
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	config := DefaultConfig()
	config.Generations = 0
	config.RandomDensity = 1
	config.Renderer = RendererTerminal
	config.SaveRLE = SaveRLEFinal
	if err := config.Validate(); err != nil {
		t.Fatalf("expected boundary values to be valid, got %v", err)
	}
}

func TestConfig_Level(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.LogLevel = "DEBUG"
	level, err := config.Level()
	if err != nil {
		t.Fatalf("Level returned error: %v", err)
	}
	if level != slog.LevelDebug {
		t.Fatalf("expected debug, got %v", level)
	}
}

func TestConfig_StepWorkers(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	if got := config.StepWorkers(8); got != 8 {
		t.Fatalf("expected one worker per CPU, got %d", got)
	}
	config.Workers = 3
	if got := config.StepWorkers(8); got != 3 {
		t.Fatalf("expected explicit worker count, got %d", got)
	}
	config.UseParallel = false
	if got := config.StepWorkers(8); got != 1 {
		t.Fatalf("expected a single worker when parallel is off, got %d", got)
	}
}
