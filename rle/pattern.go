package rle

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
)

// Pattern is a decoded RLE document at its own size
type Pattern struct {
	Name     string
	Author   string
	Comments []string
	Rule     string

	Width  int
	Height int
	// Alive holds the living cells relative to the pattern's top-left corner
	Alive []model.Point
}

// Grid lays the pattern out centered in a grid of exactly minWidth x minHeight
// cells. It fails with ErrDimensionTooSmall rather than truncating the pattern.
func (p *Pattern) Grid(minWidth, minHeight int) (*model.Grid, error) {
	if minWidth < p.Width || minHeight < p.Height {
		return nil, errors.Wrapf(ErrDimensionTooSmall, "[Grid] requested %dx%d, pattern needs %dx%d",
			minWidth, minHeight, p.Width, p.Height)
	}

	var (
		offsetX = (minWidth - p.Width) / 2
		offsetY = (minHeight - p.Height) / 2
		points  = make([]model.Point, len(p.Alive))
	)
	for i, pt := range p.Alive {
		points[i] = model.Point{X: pt.X + offsetX, Y: pt.Y + offsetY}
	}

	g, err := model.NewGridFromPoints(minWidth, minHeight, points)
	if err != nil {
		return nil, errors.Wrap(err, "[Grid]")
	}
	return g, nil
}
