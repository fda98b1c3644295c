package render

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
)

const (
	defaultCellSize = 8

	deadIndex  = 0
	aliveIndex = 1
)

var (
	defaultDeadColor  = color.RGBA{R: 0x1f, G: 0x1f, B: 0x2e, A: 0xff}
	defaultAliveColor = color.RGBA{R: 0xf2, G: 0xb7, B: 0x05, A: 0xff}
)

// GIFRenderer encodes a generation history as a looping animated GIF
type GIFRenderer struct {
	// CellSize is the edge length of one cell in pixels
	CellSize int
	// FrameDelay is how long each generation stays on screen
	FrameDelay time.Duration
	Dead       color.Color
	Alive      color.Color
}

// NewGIFRenderer creates a GIFRenderer with the default colours
func NewGIFRenderer(cellSize int, frameDelay time.Duration) *GIFRenderer {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &GIFRenderer{
		CellSize:   cellSize,
		FrameDelay: frameDelay,
		Dead:       defaultDeadColor,
		Alive:      defaultAliveColor,
	}
}

// Render writes all frames as a single animation
func (r *GIFRenderer) Render(ctx context.Context, w io.Writer, frames []*model.Grid) error {
	if len(frames) == 0 {
		return errors.Wrap(ErrNoFrames, "[GIFRenderer.Render]")
	}

	var (
		palette = color.Palette{r.Dead, r.Alive}
		// GIF delays are in hundredths of a second
		delay = max(1, int(r.FrameDelay/(10*time.Millisecond)))
		anim  = &gif.GIF{
			Image: make([]*image.Paletted, 0, len(frames)),
			Delay: make([]int, 0, len(frames)),
		}
	)
	for i, g := range frames {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "[GIFRenderer.Render] stopped at frame %d", i)
		}
		anim.Image = append(anim.Image, r.frame(g, palette))
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(err, "[GIFRenderer.Render] failed to encode gif")
	}
	return nil
}

func (r *GIFRenderer) frame(g *model.Grid, palette color.Palette) *image.Paletted {
	size := r.CellSize
	img := image.NewPaletted(image.Rect(0, 0, g.GetWidth()*size, g.GetHeight()*size), palette)
	for _, p := range g.AliveCells() {
		for py := p.Y * size; py < (p.Y+1)*size; py++ {
			for px := p.X * size; px < (p.X+1)*size; px++ {
				img.SetColorIndex(px, py, aliveIndex)
			}
		}
	}
	return img
}
