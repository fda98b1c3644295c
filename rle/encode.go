package rle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
	"github.com/sheikhrachel/golife/rules"
)

// lineWidth is the conventional maximum length of an RLE body line
const lineWidth = 70

// Encode returns the canonical RLE text of the grid's bounding box. A grid
// with no living cells encodes as a 0x0 pattern.
func Encode(g *model.Grid) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = Write(&sb, g)
	return sb.String()
}

// Write writes the grid as an RLE document, preceded by one "#C" line per comment
func Write(w io.Writer, g *model.Grid, comments ...string) error {
	bw := bufio.NewWriter(w)
	for _, comment := range comments {
		for _, line := range strings.Split(comment, "\n") {
			fmt.Fprintf(bw, "#C %s\n", line)
		}
	}

	b, ok := g.Bounds()
	if !ok {
		fmt.Fprintf(bw, "x = 0, y = 0, rule = %s\n%c\n", rules.ConwayRule, tagEnd)
		return flush(bw)
	}

	fmt.Fprintf(bw, "x = %d, y = %d, rule = %s\n", b.Width(), b.Height(), rules.ConwayRule)

	lw := &lineWriter{w: bw}
	lastRow := b.MinY
	for y := b.MinY; y <= b.MaxY; y++ {
		runs := encodeRow(g, b, y)
		if len(runs) == 0 {
			// blank rows fold into the next '$' count
			continue
		}
		if y > b.MinY {
			lw.token(run(y-lastRow, tagEOL))
		}
		for _, r := range runs {
			lw.token(r)
		}
		lastRow = y
	}
	lw.token(string(tagEnd))
	bw.WriteByte('\n')

	return flush(bw)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "[Write] failed to write pattern")
	}
	return nil
}

// encodeRow returns the run tokens of row y inside b, without the trailing dead run
func encodeRow(g *model.Grid, b model.Bounds, y int) []string {
	var (
		runs    []string
		current = g.Get(b.MinX, y)
		length  = 0
	)
	emit := func() {
		tag := byte(tagDead)
		if current {
			tag = tagAlive
		}
		runs = append(runs, run(length, tag))
	}

	for x := b.MinX; x <= b.MaxX; x++ {
		alive := g.Get(x, y)
		if alive != current {
			emit()
			current, length = alive, 0
		}
		length++
	}
	if current {
		emit()
	}
	return runs
}

func run(count int, tag byte) string {
	if count == 1 {
		return string(tag)
	}
	return strconv.Itoa(count) + string(tag)
}

// lineWriter wraps tokens so no line exceeds lineWidth. Tokens are never split.
type lineWriter struct {
	w   *bufio.Writer
	col int
}

func (lw *lineWriter) token(tok string) {
	if lw.col > 0 && lw.col+len(tok) > lineWidth {
		lw.w.WriteByte('\n')
		lw.col = 0
	}
	lw.w.WriteString(tok)
	lw.col += len(tok)
}
