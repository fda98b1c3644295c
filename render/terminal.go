package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear moves the cursor home and clears the screen
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer plays a generation history in a terminal
type TerminalRenderer struct {
	FrameRate time.Duration
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(w io.Writer, g *model.Grid) {
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			if g.Get(x, y) {
				io.WriteString(w, gridPosBlock)
			} else {
				io.WriteString(w, gridPosEmpty)
			}
		}
		io.WriteString(w, "\n")
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear(w io.Writer) {
	io.WriteString(w, ansiClear)
}

// Render shows each frame in turn, waiting FrameRate between frames
func (r *TerminalRenderer) Render(ctx context.Context, w io.Writer, frames []*model.Grid) error {
	if len(frames) == 0 {
		return errors.Wrap(ErrNoFrames, "[TerminalRenderer.Render]")
	}

	last := len(frames) - 1
	for i, g := range frames {
		bw := bufio.NewWriter(w)
		r.Clear(bw)
		fmt.Fprintf(bw, "Generation (%d/%d) | Living: %d\n", i, last, g.CountLivingCells())
		r.Display(bw, g)
		if err := bw.Flush(); err != nil {
			return errors.Wrap(err, "[TerminalRenderer.Render] failed to write frame")
		}

		if i == last || r.FrameRate <= 0 {
			continue
		}
		timer := time.NewTimer(r.FrameRate)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrapf(ctx.Err(), "[TerminalRenderer.Render] stopped at frame %d", i)
		case <-timer.C:
		}
	}
	return nil
}
