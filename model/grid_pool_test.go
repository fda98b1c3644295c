package model

import "testing"

func TestGridPool_GetReturnsClearedGrid(t *testing.T) {
	t.Parallel()

	pool := NewGridPool()
	g := pool.Get(4, 3)
	g.Set(1, 1, true)
	GridToPool(g, pool)

	for range 3 {
		reused := pool.Get(5, 2)
		if reused.GetWidth() != 5 || reused.GetHeight() != 2 {
			t.Fatalf("unexpected dimensions: %dx%d", reused.GetWidth(), reused.GetHeight())
		}
		if n := reused.CountLivingCells(); n != 0 {
			t.Fatalf("pooled grid should be cleared, got %d alive", n)
		}
		if _, ok := reused.Bounds(); ok {
			t.Fatal("pooled grid should report no bounds")
		}
		GridToPool(reused, pool)
	}
}

func TestGridToPool_NilPool(t *testing.T) {
	t.Parallel()

	g, _ := NewGrid(2, 2)
	g.Set(0, 0, true)
	GridToPool(g, nil)
	if !g.Get(0, 0) {
		t.Fatal("GridToPool with a nil pool must leave the grid untouched")
	}
}
