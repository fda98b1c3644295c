package model

import (
	"math/rand"
	"testing"
)

// naiveStep is an independent oracle built only on Get
func naiveStep(g *Grid) *Grid {
	next := newGrid(g.GetWidth(), g.GetHeight())
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && g.Get(x+dx, y+dy) {
						n++
					}
				}
			}
			next.cells[y][x] = n == 3 || (g.Get(x, y) && n == 2)
		}
	}
	return next
}

func TestNextGeneration_OptionsAgreeWithOracle(t *testing.T) {
	t.Parallel()

	pool := NewGridPool()
	options := []StepOptions{
		{Workers: 1},
		{Workers: 4},
		{Workers: 1, Bounded: true},
		{Workers: 8, Bounded: true},
		{Workers: 64},
	}

	for seed := int64(1); seed <= 5; seed++ {
		g, err := NewRandomGrid(37, 23, 0.35, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("NewRandomGrid returned error: %v", err)
		}
		before := g.Clone()
		want := naiveStep(g)

		for _, opts := range options {
			if got := g.NextGeneration(opts, nil); !got.Equal(want) {
				t.Fatalf("seed %d opts %+v: result differs from oracle", seed, opts)
			}
			got := g.NextGeneration(opts, pool)
			if !got.Equal(want) {
				t.Fatalf("seed %d opts %+v with pool: result differs from oracle", seed, opts)
			}
			GridToPool(got, pool)
		}
		if !g.Equal(before) {
			t.Fatalf("seed %d: NextGeneration modified its receiver", seed)
		}
	}
}

func TestNextGeneration_EmptyGridBounded(t *testing.T) {
	t.Parallel()

	g, _ := NewGrid(6, 4)
	next := g.NextGeneration(StepOptions{Workers: 2, Bounded: true}, nil)
	if next == g {
		t.Fatal("NextGeneration must return a new grid")
	}
	if next.GetWidth() != 6 || next.GetHeight() != 4 || next.CountLivingCells() != 0 {
		t.Fatalf("unexpected next grid: %dx%d with %d alive", next.GetWidth(), next.GetHeight(), next.CountLivingCells())
	}
}

func TestNextGeneration_CachesBounds(t *testing.T) {
	t.Parallel()

	g := gridFromRows(t,
		".....",
		".OOO.",
		".....",
	)
	next := g.NextGeneration(StepOptions{Workers: 1}, nil)
	b, ok := next.Bounds()
	if !ok {
		t.Fatal("expected living cells after one blinker step")
	}
	if want := (Bounds{MinX: 2, MaxX: 2, MinY: 0, MaxY: 2}); b != want {
		t.Fatalf("unexpected bounds: got=%+v want=%+v", b, want)
	}
}
