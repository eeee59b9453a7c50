package gol

import (
	"sort"
)

// A cell is made alive by Randomise if a draw from [0, 1000) is above this, roughly 25% of cells
const randomiseLifeThreshold = 750

// Randomise picks a new random size for the grid and fills it with random cells.
// The run loop is cancelled first and restarted afterwards if it was running.
func (c *Controller) Randomise() {
	c.mutate(true, func() {
		width := 1 + c.rng.Intn(c.params.MaxSize)
		height := 1 + c.rng.Intn(c.params.MaxSize)
		c.resize(width, height)

		changes := make([]Change, 0)
		for i := 0; i < c.grid.Len(); i++ {
			col, row := c.grid.Coords(i)
			alive := c.rng.Intn(1000) > randomiseLifeThreshold
			c.grid.SetInitial(col, row, alive)
			if change := c.grid.ToggleLife(col, row, alive); change.Flipped() {
				changes = append(changes, change)
			}
		}
		c.emitChanges(changes)
	})
}

// Balance kills a random half of the live cells.
// With an odd number alive, whether the extra cell dies is a coin toss,
// so the population afterwards is always floor(n/2) or ceil(n/2).
func (c *Controller) Balance() {
	c.mutate(true, func() {
		c.emitChanges(balance(c.grid, c.rng.Intn))
	})
}

// balance does the work of Balance using intn for every random choice
func balance(g *Grid, intn func(int) int) []Change {
	type keyed struct {
		index int
		key   int
	}

	alive := g.Alive()
	cells := make([]keyed, len(alive))
	for i, index := range alive {
		cells[i] = keyed{index, intn(1000)}
	}
	// Sorting by a random key gives a random order; the first k are the ones to kill
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].key < cells[j].key
	})

	k := len(cells) / 2
	if len(cells)%2 == 1 {
		k += intn(2)
	}

	changes := make([]Change, 0, k)
	for _, cell := range cells[:k] {
		col, row := g.Coords(cell.index)
		changes = append(changes, g.ToggleLife(col, row, false))
	}
	return changes
}
