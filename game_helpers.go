package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/engine"
	"github.com/sheikhrachel/golife/model"
	"github.com/sheikhrachel/golife/render"
	"github.com/sheikhrachel/golife/rle"
	"github.com/sheikhrachel/golife/rules"
	"github.com/sheikhrachel/golife/utils"
)

// game holds one simulation run from the starting grid to its outputs
type game struct {
	config  utils.Config
	logger  *slog.Logger
	engine  *engine.Engine
	source  string
	seed    int64
	initial *model.Grid

	// history is nil when nothing needs every generation
	history []*model.Grid
	final   *model.Grid
	elapsed time.Duration
}

// initializeGame builds the engine and the starting grid, from patternPath
// when given and randomly otherwise
func initializeGame(config utils.Config, patternPath string, logger *slog.Logger) (*game, error) {
	opts := []engine.Option{
		engine.WithWorkers(config.StepWorkers(runtime.NumCPU())),
		engine.WithBoundedRegion(config.UseBoundedGrid),
	}
	if config.UseMemoryPool {
		opts = append(opts, engine.WithPool(model.NewGridPool()))
	}

	g := &game{
		config: config,
		logger: logger,
		engine: engine.New(opts...),
	}

	var err error
	if patternPath != "" {
		g.source = patternPath
		g.initial, err = loadPattern(patternPath, config, logger)
	} else {
		g.source = "random"
		g.seed = config.Seed
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		g.initial, err = model.NewRandomGrid(config.Width, config.Height, config.RandomDensity,
			rand.New(rand.NewSource(g.seed)))
	}
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	return g, nil
}

// loadPattern reads an RLE file and centers it in the configured grid
func loadPattern(path string, config utils.Config, logger *slog.Logger) (*model.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[loadPattern] failed to read file: %s", path)
	}

	pattern, err := rle.Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "[loadPattern] %s", path)
	}
	if !rules.IsConway(pattern.Rule) {
		logger.Warn("pattern declares a different rule, simulating B3/S23 anyway",
			slog.String("file", path), slog.String("rule", pattern.Rule))
	}

	grid, err := pattern.Grid(config.Width, config.Height)
	if err != nil {
		return nil, errors.Wrapf(err, "[loadPattern] %s", path)
	}
	logger.Debug("pattern loaded",
		slog.String("name", pattern.Name),
		slog.Int("pattern_width", pattern.Width),
		slog.Int("pattern_height", pattern.Height))
	return grid, nil
}

// displayGameInfo logs the starting state
func displayGameInfo(g *game) {
	attrs := []any{
		slog.String("source", g.source),
		slog.String("grid", fmt.Sprintf("%dx%d", g.initial.GetWidth(), g.initial.GetHeight())),
		slog.Int("generations", g.config.Generations),
		slog.Int("living_cells", g.initial.CountLivingCells()),
		slog.Bool("parallel", g.config.UseParallel),
		slog.Bool("bounded", g.config.UseBoundedGrid),
	}
	if g.source == "random" {
		attrs = append(attrs, slog.Int64("seed", g.seed))
	}
	g.logger.Info("starting simulation", attrs...)
}

// needsHistory reports whether anything downstream consumes every generation
func (g *game) needsHistory() bool {
	return g.config.Renderer != utils.RendererNone
}

func (g *game) run(ctx context.Context) error {
	start := time.Now()
	defer func() { g.elapsed = time.Since(start) }()

	if !g.needsHistory() {
		final, err := g.engine.Final(g.initial, g.config.Generations)
		if err != nil {
			return errors.Wrap(err, "[run]")
		}
		g.final = final
		return nil
	}

	history, err := g.engine.SimulateContext(ctx, g.initial, g.config.Generations)
	if err != nil {
		return errors.Wrap(err, "[run]")
	}
	g.history = history
	g.final = history[len(history)-1]
	return nil
}

// render hands the history to the configured renderer. Terminal playback goes
// to out, gifs go to a fresh file in the output directory.
func (g *game) render(ctx context.Context, out io.Writer) error {
	switch g.config.Renderer {
	case utils.RendererNone:
		return nil
	case utils.RendererTerminal:
		r := &render.TerminalRenderer{FrameRate: g.config.FrameRate}
		return r.Render(ctx, out, g.history)
	}

	if err := utils.EnsureDir(g.config.OutputDir); err != nil {
		return err
	}
	filename, err := utils.UniqueFile(filepath.Join(g.config.OutputDir, gifBaseName(g.config)), "gif")
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "[render] failed to create %s", filename)
	}
	defer f.Close()

	g.logger.Info("creating animation", slog.Int("frames", len(g.history)))
	r := render.NewGIFRenderer(g.config.CellSize, g.config.FrameRate)
	if err := r.Render(ctx, f, g.history); err != nil {
		return errors.Wrapf(err, "[render] %s", filename)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "[render] failed to close %s", filename)
	}
	g.logger.Info("animation saved", slog.String("file", filename))
	return nil
}

// gifBaseName follows the GoL<size>s<generations>g naming, with WxH for non-square grids
func gifBaseName(config utils.Config) string {
	if config.Width == config.Height {
		return fmt.Sprintf("GoL%ds%dg", config.Width, config.Generations)
	}
	return fmt.Sprintf("GoL%dx%ds%dg", config.Width, config.Height, config.Generations)
}

func (g *game) saveRLE() error {
	var (
		grid    *model.Grid
		comment string
	)
	switch g.config.SaveRLE {
	case utils.SaveRLEInitial:
		grid = g.initial
		comment = fmt.Sprintf("starting state of a %d generation run", g.config.Generations)
	case utils.SaveRLEFinal:
		grid = g.final
		comment = fmt.Sprintf("state after %d generations", g.config.Generations)
	default:
		return nil
	}

	if err := utils.EnsureDir(g.config.RLEDir); err != nil {
		return err
	}
	filename, err := utils.UniqueFile(filepath.Join(g.config.RLEDir, "savedRLE"), "rle")
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "[saveRLE] failed to create %s", filename)
	}
	defer f.Close()

	if err := rle.Write(f, grid, comment); err != nil {
		return errors.Wrapf(err, "[saveRLE] %s", filename)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "[saveRLE] failed to close %s", filename)
	}
	g.logger.Info("RLE written", slog.String("file", filename))
	return nil
}

// report logs population stats and whether the run settled into a cycle
func (g *game) report() {
	if g.history == nil {
		g.logger.Info("simulation finished",
			slog.Int("generations", g.config.Generations),
			slog.Int("living_cells", g.final.CountLivingCells()),
			slog.Duration("elapsed", g.elapsed))
		return
	}

	g.logger.Info("simulation finished", slog.Any("stats", utils.SummarizeHistory(g.history, g.elapsed)))

	cycle, ok := engine.DetectCycle(g.history)
	switch {
	case !ok:
		return
	case g.history[cycle.Start].CountLivingCells() == 0:
		g.logger.Info("population died out", slog.Int("generation", cycle.Start))
	case cycle.IsStill():
		g.logger.Info("settled into a still life", slog.Int("generation", cycle.Start))
	default:
		g.logger.Info("settled into an oscillation",
			slog.Int("generation", cycle.Start), slog.Int("period", cycle.Period))
	}
}
