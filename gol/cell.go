package gol

import "fmt"

// Cell is a single automaton on the grid.
// It keeps its own live neighbour count up to date so the next state never needs a rescan.
type Cell struct {
	initial    bool
	alive      bool
	next       bool
	neighbours int
}

// Colour is the class a renderer uses to draw a cell
type Colour uint8

const (
	StableDead Colour = iota
	StableAlive
	Dying
	Born
)

// String methods allow the different colour classes to be printed.
func (c Colour) String() string {
	switch c {
	case StableDead:
		return "StableDead"
	case StableAlive:
		return "StableAlive"
	case Dying:
		return "Dying"
	case Born:
		return "Born"
	default:
		return "Incorrect Colour"
	}
}

/*

any live cell with fewer than two live neighbours dies
any live cell with two or three live neighbours is unaffected
any live cell with more than three live neighbours dies
any dead cell with exactly three live neighbours becomes alive

*/

func nextState(alive bool, neighbours int) bool {
	if alive {
		return neighbours == 2 || neighbours == 3
	}
	return neighbours == 3
}

// AddNeighbour is called when one of the cell's neighbours comes to life
func (c *Cell) AddNeighbour() {
	c.neighbours++
	c.next = nextState(c.alive, c.neighbours)
}

// SubNeighbour is called when one of the cell's neighbours dies
func (c *Cell) SubNeighbour() {
	c.neighbours--
	c.next = nextState(c.alive, c.neighbours)
}

func (c *Cell) setAlive(alive bool) {
	c.alive = alive
	c.next = nextState(c.alive, c.neighbours)
}

func (c Cell) IsInitial() bool { return c.initial }
func (c Cell) IsAlive() bool   { return c.alive }
func (c Cell) NextState() bool { return c.next }
func (c Cell) Neighbours() int { return c.neighbours }

// Colour works out how a cell should be drawn from its current and next state
func (c Cell) Colour() Colour {
	switch {
	case c.alive && c.next:
		return StableAlive
	case c.alive:
		return Dying
	case c.next:
		return Born
	default:
		return StableDead
	}
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c Cell) String() string {
	return fmt.Sprintf("{%d %d %d %d}", bit(c.initial), bit(c.alive), bit(c.next), c.neighbours)
}

// Describe is the long form of String, with each field labelled
func (c Cell) Describe() string {
	return fmt.Sprintf("{init: %d; alive: %d; next: %d; neighbours: %d}",
		bit(c.initial), bit(c.alive), bit(c.next), c.neighbours)
}
