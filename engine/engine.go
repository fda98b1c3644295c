// Package engine advances Game of Life grids one generation at a time.
//
// Every operation is a pure function of its inputs: a step always returns a
// freshly allocated grid and never modifies the grid it was given, so a
// generation history can be kept and replayed without aliasing.
package engine

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/golife/model"
)

// Engine applies the B3/S23 rule. It keeps no per-run state and is safe for
// concurrent use.
type Engine struct {
	opts model.StepOptions
	pool *model.GridPool
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers sets how many goroutines share the rows of a single step
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.opts.Workers = n
	}
}

// WithBoundedRegion toggles evaluating only the active region of a grid
func WithBoundedRegion(bounded bool) Option {
	return func(e *Engine) {
		e.opts.Bounded = bounded
	}
}

// WithPool lets Final recycle intermediate generations
func WithPool(pool *model.GridPool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// New creates an Engine. By default it uses one worker per CPU and evaluates
// only the active region.
func New(opts ...Option) *Engine {
	e := &Engine{
		opts: model.StepOptions{
			Workers: runtime.NumCPU(),
			Bounded: true,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Step computes the next generation with the default engine
func Step(g *model.Grid) *model.Grid {
	return defaultEngine.Step(g)
}

// Simulate runs the default engine for the given number of generations
func Simulate(g *model.Grid, generations int) ([]*model.Grid, error) {
	return defaultEngine.Simulate(g, generations)
}

// Step returns a new grid of the same dimensions holding the next generation
func (e *Engine) Step(g *model.Grid) *model.Grid {
	return g.NextGeneration(e.opts, nil)
}

// Simulate returns generations+1 grids: the initial grid at index 0 followed
// by each successive generation.
func (e *Engine) Simulate(g *model.Grid, generations int) ([]*model.Grid, error) {
	return e.SimulateContext(context.Background(), g, generations)
}

// SimulateContext is Simulate with cancellation checked between generations
func (e *Engine) SimulateContext(ctx context.Context, g *model.Grid, generations int) ([]*model.Grid, error) {
	if err := validate(g, generations); err != nil {
		return nil, errors.Wrap(err, "[Simulate]")
	}

	history := make([]*model.Grid, 0, generations+1)
	history = append(history, g)
	for i := range generations {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "[Simulate] stopped at generation %d", i)
		}
		history = append(history, e.Step(history[i]))
	}
	return history, nil
}

// Final returns only the last generation. Intermediate grids are recycled
// through the engine's pool when one is configured. With zero generations the
// input grid itself is returned.
func (e *Engine) Final(g *model.Grid, generations int) (*model.Grid, error) {
	if err := validate(g, generations); err != nil {
		return nil, errors.Wrap(err, "[Final]")
	}

	current := g
	for i := range generations {
		next := current.NextGeneration(e.opts, e.pool)
		// the caller's grid is never recycled
		if i > 0 {
			model.GridToPool(current, e.pool)
		}
		current = next
	}
	return current, nil
}

// SimulateAll runs independent simulations concurrently. Result i holds the
// history of grids[i]. The first failure or a cancelled ctx stops all runs.
func (e *Engine) SimulateAll(ctx context.Context, grids []*model.Grid, generations int) ([][]*model.Grid, error) {
	results := make([][]*model.Grid, len(grids))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, g := range grids {
		eg.Go(func() error {
			history, err := e.SimulateContext(ctx, g, generations)
			if err != nil {
				return errors.Wrapf(err, "[SimulateAll] run %d", i)
			}
			results[i] = history
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validate(g *model.Grid, generations int) error {
	if g == nil {
		return errors.Wrap(model.ErrInvalidArgument, "nil grid")
	}
	if generations < 0 {
		return errors.Wrapf(model.ErrInvalidArgument, "negative generation count %d", generations)
	}
	return nil
}
