// Command golife simulates Conway's Game of Life.
//
// The starting grid is either random or loaded from an RLE pattern file. The
// run is rendered as an animated GIF (or played in the terminal) and the
// initial or final grid can be saved back to RLE.
//
//	golife --size 60 --generations 200 --fps 10
//	golife --size 40 --save-rle final patterns/glider.rle
//	golife rle normalize patterns/gosper.rle
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/sheikhrachel/golife/model"
	"github.com/sheikhrachel/golife/rle"
	"github.com/sheikhrachel/golife/utils"
)

const (
	appName = "golife"
	version = "1.0.0"
)

func main() {
	// A missing .env is fine, flags and defaults cover everything
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "%s: warning: failed to load .env: %v\n", appName, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      appName,
		Version:   version,
		Usage:     "simulate Conway's Game of Life and render it as an animation",
		ArgsUsage: "[pattern.rle]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "JSON configuration file", Sources: cli.EnvVars("GOL_CONFIG")},
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "grid width and height", Sources: cli.EnvVars("GOL_SIZE")},
			&cli.IntFlag{Name: "width", Usage: "grid width, overrides --size", Sources: cli.EnvVars("GOL_WIDTH")},
			&cli.IntFlag{Name: "height", Usage: "grid height, overrides --size", Sources: cli.EnvVars("GOL_HEIGHT")},
			&cli.IntFlag{Name: "generations", Aliases: []string{"g"}, Usage: "number of generations to simulate", Sources: cli.EnvVars("GOL_GENERATIONS")},
			&cli.FloatFlag{Name: "density", Usage: "probability a random cell starts alive", Sources: cli.EnvVars("GOL_DENSITY")},
			&cli.Int64Flag{Name: "seed", Usage: "random seed, 0 uses the clock", Sources: cli.EnvVars("GOL_SEED")},
			&cli.IntFlag{Name: "fps", Usage: "animation frames per second", Sources: cli.EnvVars("GOL_FPS")},
			&cli.IntFlag{Name: "cell-size", Usage: "pixels per cell in the gif", Sources: cli.EnvVars("GOL_CELL_SIZE")},
			&cli.StringFlag{Name: "renderer", Usage: "gif, terminal or none", Sources: cli.EnvVars("GOL_RENDERER")},
			&cli.StringFlag{Name: "out-dir", Usage: "directory for gif output", Sources: cli.EnvVars("GOL_OUT_DIR")},
			&cli.StringFlag{Name: "save-rle", Usage: "save the none, initial or final grid as RLE", Sources: cli.EnvVars("GOL_SAVE_RLE")},
			&cli.StringFlag{Name: "rle-dir", Usage: "directory for saved RLE files", Sources: cli.EnvVars("GOL_RLE_DIR")},
			&cli.BoolFlag{Name: "parallel", Usage: "split each generation across goroutines", Sources: cli.EnvVars("GOL_PARALLEL")},
			&cli.IntFlag{Name: "workers", Usage: "goroutines per generation, 0 means one per CPU", Sources: cli.EnvVars("GOL_WORKERS")},
			&cli.BoolFlag{Name: "bounded", Usage: "only evaluate the active region", Sources: cli.EnvVars("GOL_BOUNDED")},
			&cli.BoolFlag{Name: "pool", Usage: "recycle grids when history is not kept", Sources: cli.EnvVars("GOL_POOL")},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Sources: cli.EnvVars("GOL_LOG_LEVEL")},
		},
		Action: runSimulation,
		Commands: []*cli.Command{
			{
				Name:  "rle",
				Usage: "work with RLE pattern files",
				Commands: []*cli.Command{
					{
						Name:      "normalize",
						Usage:     "decode a pattern and print its canonical encoding",
						ArgsUsage: "<pattern.rle>",
						Action:    normalizeRLE,
					},
				},
			},
		},
	}
}

// configFromCommand layers flags and env vars over the JSON file over defaults
func configFromCommand(cmd *cli.Command) (utils.Config, error) {
	config := utils.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		if config, err = utils.LoadConfig(path); err != nil {
			return config, err
		}
	}

	if cmd.IsSet("size") {
		config.Width = cmd.Int("size")
		config.Height = cmd.Int("size")
	}
	if cmd.IsSet("width") {
		config.Width = cmd.Int("width")
	}
	if cmd.IsSet("height") {
		config.Height = cmd.Int("height")
	}
	if cmd.IsSet("generations") {
		config.Generations = cmd.Int("generations")
	}
	if cmd.IsSet("density") {
		config.RandomDensity = cmd.Float("density")
	}
	if cmd.IsSet("seed") {
		config.Seed = cmd.Int64("seed")
	}
	if cmd.IsSet("fps") {
		fps := cmd.Int("fps")
		if fps <= 0 {
			return config, errors.Wrapf(utils.ErrInvalidConfig, "[configFromCommand] fps must be positive, got %d", fps)
		}
		config.FrameRate = time.Second / time.Duration(fps)
	}
	if cmd.IsSet("cell-size") {
		config.CellSize = cmd.Int("cell-size")
	}
	if cmd.IsSet("renderer") {
		config.Renderer = cmd.String("renderer")
	}
	if cmd.IsSet("out-dir") {
		config.OutputDir = cmd.String("out-dir")
	}
	if cmd.IsSet("save-rle") {
		config.SaveRLE = cmd.String("save-rle")
	}
	if cmd.IsSet("rle-dir") {
		config.RLEDir = cmd.String("rle-dir")
	}
	if cmd.IsSet("parallel") {
		config.UseParallel = cmd.Bool("parallel")
	}
	if cmd.IsSet("workers") {
		config.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("bounded") {
		config.UseBoundedGrid = cmd.Bool("bounded")
	}
	if cmd.IsSet("pool") {
		config.UseMemoryPool = cmd.Bool("pool")
	}
	if cmd.IsSet("log-level") {
		config.LogLevel = cmd.String("log-level")
	}

	return config, config.Validate()
}

func runSimulation(ctx context.Context, cmd *cli.Command) error {
	config, err := configFromCommand(cmd)
	if err != nil {
		return err
	}
	level, _ := config.Level()
	logger := utils.NewLogger(errWriter(cmd), level)

	game, err := initializeGame(config, cmd.Args().First(), logger)
	if err != nil {
		return err
	}
	displayGameInfo(game)

	if err := game.run(ctx); err != nil {
		return err
	}
	if err := game.render(ctx, outWriter(cmd)); err != nil {
		// an interrupted playback still saves and reports what was simulated
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("rendering interrupted", tint.Err(err))
	}
	if err := game.saveRLE(); err != nil {
		return err
	}
	game.report()
	return nil
}

func normalizeRLE(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("[normalizeRLE] missing pattern file argument")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "[normalizeRLE] failed to read file: %s", path)
	}
	pattern, err := rle.Parse(string(data))
	if err != nil {
		return errors.Wrapf(err, "[normalizeRLE] %s", path)
	}

	var grid *model.Grid
	if pattern.Width == 0 || pattern.Height == 0 {
		grid, err = model.NewGrid(1, 1)
	} else {
		grid, err = pattern.Grid(pattern.Width, pattern.Height)
	}
	if err != nil {
		return errors.Wrapf(err, "[normalizeRLE] %s", path)
	}

	return rle.Write(outWriter(cmd), grid, pattern.Comments...)
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
