package render

import (
	"bytes"
	"context"
	"image/gif"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
)

func blinkerFrames(t *testing.T) []*model.Grid {
	t.Helper()
	horizontal, err := model.NewGridFromPoints(5, 4, []model.Point{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	vertical, err := model.NewGridFromPoints(5, 4, []model.Point{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	return []*model.Grid{horizontal, vertical, horizontal}
}

func TestGIFRenderer_Render(t *testing.T) {
	t.Parallel()

	frames := blinkerFrames(t)
	r := NewGIFRenderer(3, 100*time.Millisecond)

	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, frames); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("output is not a valid gif: %v", err)
	}
	if len(anim.Image) != len(frames) {
		t.Fatalf("expected %d frames, got %d", len(frames), len(anim.Image))
	}
	for i, img := range anim.Image {
		if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 12 {
			t.Fatalf("frame %d: expected 15x12 pixels, got %dx%d", i, b.Dx(), b.Dy())
		}
		if anim.Delay[i] != 10 {
			t.Fatalf("frame %d: expected delay 10, got %d", i, anim.Delay[i])
		}
	}

	// cell (2, 1) is dead in the horizontal phase and alive in the vertical one
	if got := anim.Image[0].ColorIndexAt(7, 4); got != deadIndex {
		t.Errorf("frame 0: expected dead pixel, got index %d", got)
	}
	if got := anim.Image[1].ColorIndexAt(7, 4); got != aliveIndex {
		t.Errorf("frame 1: expected alive pixel, got index %d", got)
	}
	if got := anim.Image[0].ColorIndexAt(3, 6); got != aliveIndex {
		t.Errorf("frame 0: expected alive pixel, got index %d", got)
	}
}

func TestGIFRenderer_MinimumDelay(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewGIFRenderer(0, time.Millisecond)
	if err := r.Render(context.Background(), &buf, blinkerFrames(t)[:1]); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("output is not a valid gif: %v", err)
	}
	if anim.Delay[0] != 1 {
		t.Fatalf("expected delay clamped to 1, got %d", anim.Delay[0])
	}
	if b := anim.Image[0].Bounds(); b.Dx() != 5*defaultCellSize {
		t.Fatalf("expected default cell size, got width %d", b.Dx())
	}
}

func TestGIFRenderer_Errors(t *testing.T) {
	t.Parallel()

	r := NewGIFRenderer(2, 50*time.Millisecond)
	var buf bytes.Buffer

	if err := r.Render(context.Background(), &buf, nil); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Render(ctx, &buf, blinkerFrames(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("a cancelled render must not write a partial gif")
	}
}
