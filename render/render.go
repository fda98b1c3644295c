// Package render turns a generation history into something a person can watch.
package render

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
)

// ErrNoFrames is returned when there is nothing to render
var ErrNoFrames = errors.New("no frames to render")

// Renderer writes a sequence of generations to w, one frame per grid
type Renderer interface {
	Render(ctx context.Context, w io.Writer, frames []*model.Grid) error
}
