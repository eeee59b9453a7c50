package gol

import "testing"

func TestNextState(t *testing.T) {
	tests := []struct {
		alive      bool
		neighbours int
		want       bool
	}{
		{true, 0, false},
		{true, 1, false},
		{true, 2, true},
		{true, 3, true},
		{true, 4, false},
		{true, 8, false},
		{false, 2, false},
		{false, 3, true},
		{false, 4, false},
		{false, 0, false},
	}
	for _, test := range tests {
		if got := nextState(test.alive, test.neighbours); got != test.want {
			t.Errorf("nextState(%v, %d) = %v, want %v", test.alive, test.neighbours, got, test.want)
		}
	}
}

func TestCellColour(t *testing.T) {
	tests := []struct {
		cell Cell
		want Colour
	}{
		{Cell{alive: false, next: false}, StableDead},
		{Cell{alive: true, next: true}, StableAlive},
		{Cell{alive: true, next: false}, Dying},
		{Cell{alive: false, next: true}, Born},
	}
	for _, test := range tests {
		if got := test.cell.Colour(); got != test.want {
			t.Errorf("%v.Colour() = %v, want %v", test.cell, got, test.want)
		}
	}
}

func TestNeighbourCounting(t *testing.T) {
	var c Cell
	for i := 0; i < 3; i++ {
		c.AddNeighbour()
	}
	if !c.NextState() || c.Neighbours() != 3 {
		t.Fatalf("dead cell with 3 neighbours: got %v", c)
	}
	c.setAlive(true)
	c.SubNeighbour()
	if !c.NextState() {
		t.Errorf("live cell with 2 neighbours should survive: got %v", c)
	}
	c.SubNeighbour()
	if c.NextState() {
		t.Errorf("live cell with 1 neighbour should die: got %v", c)
	}
	if got, want := c.String(), "{0 1 0 1}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
