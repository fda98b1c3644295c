package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

const (
	gridPosAlive = 'O'
	gridPosDead  = '.'
)

// Point is a cell coordinate. X is the column and Y is the row.
type Point struct {
	X, Y int
}

// Bounds is an inclusive rectangle of cells
type Bounds struct {
	MinX, MaxX, MinY, MaxY int
}

// Width returns the number of columns covered by the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the number of rows covered by the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Area returns the number of cells covered by the bounds
func (b Bounds) Area() int {
	return b.Width() * b.Height()
}

// Grid is a fixed-size board of cells. Everything outside the board is dead.
//
// A Grid handed to the engine is treated as an immutable snapshot: Set is only
// meant for building a grid before it is shared.
type Grid struct {
	width  int
	height int
	cells  [][]bool

	// cached bounding box of living cells, only written before the grid is shared
	activeBounds struct {
		bounds Bounds
		empty  bool
		valid  bool
	}
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] width=%d height=%d", width, height)
	}
	return newGrid(width, height), nil
}

func newGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
	g.activeBounds.empty = true
	g.activeBounds.valid = true
	return g
}

// NewRandomGrid creates a grid where every cell is independently alive with
// probability p. The same rng seed always yields the same grid.
func NewRandomGrid(width, height int, p float64, rng *rand.Rand) (*Grid, error) {
	if !(p >= 0 && p <= 1) {
		return nil, errors.Wrapf(ErrInvalidArgument, "[NewRandomGrid] alive probability %v outside [0, 1]", p)
	}
	if rng == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "[NewRandomGrid] nil random source")
	}
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[NewRandomGrid]")
	}
	for y := range g.height {
		for x := range g.width {
			g.cells[y][x] = rng.Float64() < p
		}
	}
	g.RefreshBounds()
	return g, nil
}

// NewGridFromPoints creates a grid with exactly the given cells alive
func NewGridFromPoints(width, height int, alive []Point) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, errors.Wrap(err, "[NewGridFromPoints]")
	}
	for _, p := range alive {
		if !g.inRange(p.X, p.Y) {
			return nil, errors.Wrapf(ErrInvalidArgument, "[NewGridFromPoints] point (%d, %d) outside %dx%d grid",
				p.X, p.Y, width, height)
		}
		g.cells[p.Y][p.X] = true
	}
	g.RefreshBounds()
	return g, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Reset resets the grid to new dimensions
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height

	// Resize cells if needed
	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
	g.activeBounds.empty = true
	g.activeBounds.valid = true
}

// Clear clears all cells
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
	g.activeBounds.empty = true
	g.activeBounds.valid = true
}

func (g *Grid) inRange(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set sets a cell to alive (true) or dead (false). Out of range writes are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if g.inRange(x, y) {
		g.cells[y][x] = alive
		g.activeBounds.valid = false
	}
}

// Get returns the state of a cell, cells outside the grid are dead
func (g *Grid) Get(x, y int) bool {
	if !g.inRange(x, y) {
		return false
	}
	return g.cells[y][x]
}

// CountAliveNeighbors counts living cells in the Moore neighborhood of (x, y).
// Neighbors outside the grid count as dead.
func (g *Grid) CountAliveNeighbors(x, y int) int {
	count := 0

	// Clamp the 3x3 window to the grid once instead of checking every neighbor
	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

func (g *Grid) calculateActiveBounds() (b Bounds, ok bool) {
	for y := range g.height {
		for x := range g.width {
			if !g.cells[y][x] {
				continue
			}
			if !ok {
				b = Bounds{MinX: x, MaxX: x, MinY: y, MaxY: y}
				ok = true
				continue
			}
			b.MinX = min(b.MinX, x)
			b.MaxX = max(b.MaxX, x)
			b.MinY = min(b.MinY, y)
			b.MaxY = max(b.MaxY, y)
		}
	}
	return b, ok
}

// RefreshBounds recomputes and caches the bounding box of living cells.
// Call it only while the grid is still private to the caller.
func (g *Grid) RefreshBounds() {
	b, ok := g.calculateActiveBounds()
	g.activeBounds.bounds = b
	g.activeBounds.empty = !ok
	g.activeBounds.valid = true
}

// Bounds returns the minimal rectangle containing every living cell.
// ok is false when the grid has no living cells.
func (g *Grid) Bounds() (b Bounds, ok bool) {
	if g.activeBounds.valid {
		return g.activeBounds.bounds, !g.activeBounds.empty
	}
	return g.calculateActiveBounds()
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	b, ok := g.Bounds()
	if !ok {
		return 0
	}
	return b.Area()
}

// Crop returns a new grid holding the cells inside b
func (g *Grid) Crop(b Bounds) (*Grid, error) {
	out, err := NewGrid(b.Width(), b.Height())
	if err != nil {
		return nil, errors.Wrapf(err, "[Crop] bounds %+v", b)
	}
	for y := range out.height {
		for x := range out.width {
			out.cells[y][x] = g.Get(b.MinX+x, b.MinY+y)
		}
	}
	out.RefreshBounds()
	return out, nil
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	out := newGrid(g.width, g.height)
	for y := range g.height {
		copy(out.cells[y], g.cells[y])
	}
	out.activeBounds = g.activeBounds
	return out
}

// Equal reports whether both grids have the same dimensions and cell states
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// AliveCells returns the coordinates of every living cell in row-major order
func (g *Grid) AliveCells() []Point {
	var points []Point
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// GetGridHash returns an MD5 fingerprint of the dimensions and cell states
func (g *Grid) GetGridHash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	row := make([]byte, g.width)
	for y := range g.height {
		for x := range g.width {
			row[x] = 0
			if g.cells[y][x] {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// String renders the grid as rows of 'O' (alive) and '.' (dead)
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				sb.WriteByte(gridPosAlive)
			} else {
				sb.WriteByte(gridPosDead)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
