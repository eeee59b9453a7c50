package gol

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrBadDimensions is returned when a grid is asked for with a width or height below 1,
// or with more than MaxCells cells
var ErrBadDimensions = errors.New("grid dimensions must be at least 1x1 and at most 16777216 cells")

// MaxCells is the most cells a grid can hold, whatever its shape
const MaxCells = 1 << 24

// Grid is a toroidal board of cells stored column by column.
// Every cell's neighbour count matches its 8 neighbours whenever no toggle is in progress.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// Change records what a single ToggleLife did to a cell
type Change struct {
	Index  int
	Col    int
	Row    int
	Was    bool
	Now    bool
	Colour Colour
}

// Flipped reports whether the toggle actually changed the cell
func (c Change) Flipped() bool {
	return c.Was != c.Now
}

// NewGrid makes a grid of dead cells
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadDimensions, width, height)
	}
	// Divide rather than multiply so huge sizes can't overflow
	if width > MaxCells/height {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// ToroidalIndex wraps any offset into [0, size).
// This is the only place wrap-around is worked out.
func ToroidalIndex(value, size int) int {
	return ((value % size) + size) % size
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Len() int    { return len(g.cells) }

// Index converts a (col, row) pair into the position of the cell in the slice
func (g *Grid) Index(col, row int) int {
	return col*g.height + row
}

// Coords is the inverse of Index
func (g *Grid) Coords(i int) (col, row int) {
	return i / g.height, i % g.height
}

// Cell returns a copy of the cell at (col, row)
func (g *Grid) Cell(col, row int) Cell {
	return g.cells[g.Index(col, row)]
}

// CellAt returns a copy of the cell at linear index i
func (g *Grid) CellAt(i int) Cell {
	return g.cells[i]
}

// SetInitial changes the state a cell goes back to on Reset
func (g *Grid) SetInitial(col, row int, initial bool) {
	g.cells[g.Index(col, row)].initial = initial
}

// ToggleLife sets a cell alive or dead and tells its 8 neighbours about it.
// Setting a cell to the state it already has leaves every count alone.
func (g *Grid) ToggleLife(col, row int, alive bool) Change {
	i := g.Index(col, row)
	cell := &g.cells[i]
	change := Change{Index: i, Col: col, Row: row, Was: cell.alive, Now: alive}

	if cell.alive != alive {
		cell.setAlive(alive)

		// Visit the 1 cell radius around this one, wrapping at the edges
		for _x := -1; _x < 2; _x++ {
			for _y := -1; _y < 2; _y++ {
				// Ignore the centre cell
				if _x == 0 && _y == 0 {
					continue
				}
				n := &g.cells[g.Index(ToroidalIndex(col+_x, g.width), ToroidalIndex(row+_y, g.height))]
				if alive {
					n.AddNeighbour()
				} else {
					n.SubNeighbour()
				}
			}
		}
	}

	change.Colour = cell.Colour()
	return change
}

// Step moves the whole grid on by one turn.
// The next state of every cell is read before any cell is changed, so the order
// cells are applied in doesn't matter. The context is checked after every toggle;
// if it has been cancelled the step stops part way through and the cause is returned.
func (g *Grid) Step(ctx context.Context) ([]Change, error) {
	next := make([]bool, len(g.cells))
	for i := range g.cells {
		next[i] = g.cells[i].next
	}

	changes := make([]Change, 0)
	for i := range g.cells {
		col, row := g.Coords(i)
		change := g.ToggleLife(col, row, next[i])
		if change.Flipped() {
			changes = append(changes, change)
		}
		if ctx.Err() != nil {
			return changes, context.Cause(ctx)
		}
	}
	return changes, nil
}

// Reset puts every cell back to its initial state
func (g *Grid) Reset(ctx context.Context) ([]Change, error) {
	changes := make([]Change, 0)
	for i := range g.cells {
		col, row := g.Coords(i)
		change := g.ToggleLife(col, row, g.cells[i].initial)
		if change.Flipped() {
			changes = append(changes, change)
		}
		if ctx.Err() != nil {
			return changes, context.Cause(ctx)
		}
	}
	return changes, nil
}

// Clear throws away every cell and starts again with dead ones
func (g *Grid) Clear() {
	g.cells = make([]Cell, g.width*g.height)
}

// Alive returns the indices of every live cell in index order
func (g *Grid) Alive() []int {
	alive := make([]int, 0)
	for i := range g.cells {
		if g.cells[i].alive {
			alive = append(alive, i)
		}
	}
	return alive
}

// Population counts the live cells
func (g *Grid) Population() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].alive {
			n++
		}
	}
	return n
}

// Frame copies out the colour class of every cell, in index order
func (g *Grid) Frame() []Colour {
	frame := make([]Colour, len(g.cells))
	for i := range g.cells {
		frame[i] = g.cells[i].Colour()
	}
	return frame
}

// String dumps every cell row by row, for debugging
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			sb.WriteString(g.Cell(col, row).Describe())
			sb.WriteString(";\t")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
