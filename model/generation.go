package model

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/golife/rules"
)

// StepOptions tunes how a generation is computed. Every combination produces
// the same next grid.
type StepOptions struct {
	// Workers is the number of goroutines sharing the rows. Values below 2
	// compute on the calling goroutine.
	Workers int
	// Bounded restricts evaluation to the active region plus a one cell margin.
	Bounded bool
}

// NextGeneration returns a new grid holding the next generation. The receiver
// is never modified. When pool is non-nil the result is taken from it.
func (g *Grid) NextGeneration(opts StepOptions, pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = newGrid(g.width, g.height)
	}

	region := Bounds{MaxX: g.width - 1, MaxY: g.height - 1}
	if opts.Bounded {
		b, ok := g.Bounds()
		if !ok {
			// nothing alive, nothing can be born
			return next
		}
		region = Bounds{
			MinX: max(0, b.MinX-1),
			MaxX: min(g.width-1, b.MaxX+1),
			MinY: max(0, b.MinY-1),
			MaxY: min(g.height-1, b.MaxY+1),
		}
	}

	numWorkers := min(max(1, opts.Workers), region.Height())
	if numWorkers == 1 {
		g.stepRows(next, region, region.MinY, region.MaxY+1)
		next.RefreshBounds()
		return next
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (region.Height() + numWorkers - 1) / numWorkers // Ceiling division
	)
	for i := range numWorkers {
		var (
			startRow = region.MinY + i*rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, region.MaxY+1)
		)
		if startRow > region.MaxY {
			break
		}
		eg.Go(func() error {
			g.stepRows(next, region, startRow, endRow)
			return nil
		})
	}
	// workers only read g and write disjoint rows of next, they cannot fail
	_ = eg.Wait()

	next.RefreshBounds()
	return next
}

func (g *Grid) stepRows(next *Grid, region Bounds, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := region.MinX; x <= region.MaxX; x++ {
			next.cells[y][x] = rules.ApplyConwayRules(g.CountAliveNeighbors(x, y), g.cells[y][x])
		}
	}
}
