package gol

import (
	"time"

	"uk.ac.bris.cs/lifegrid/util"
)

// Params provides the details of how to run the Game of Life and which file to load.
type Params struct {
	Width     int
	Height    int
	MaxSize   int     // Largest width or height a resize will allow
	Speed     float64 // Turns per second, between MinSpeed and MaxSpeed
	Turns     int     // Stop after this many turns, 0 to run until stopped
	Seed      int64   // Seed for Randomise and Balance, 0 to seed from the clock
	LoadPath  string
	SaveDir   string
	Autostart bool
}

// If params don't have values set, fill in the defaults
func (p Params) withDefaults() Params {
	if p.MaxSize <= 0 {
		p.MaxSize = DefaultMaxSize
	}
	if p.Width == 0 {
		p.Width = DefaultSize
	}
	if p.Height == 0 {
		p.Height = DefaultSize
	}
	if p.Speed == 0 {
		p.Speed = 1
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	if p.SaveDir == "" {
		p.SaveDir = "out"
	}
	return p
}

// Run starts the processing of Game of Life. It should initialise channels and goroutines.
// Key presses and clicks are turned into controller operations until 'q' is pressed,
// at which point the events channel is closed.
func Run(p Params, events chan<- Event, keyPresses <-chan rune, clicks <-chan util.Cell) {
	p = p.withDefaults()
	controller, err := NewController(p, events)
	if err != nil {
		events <- Notice{0, err.Error()}
		events <- StateChange{0, Quitting}
		close(events)
		return
	}

	keyCommands := make(chan keyCommand)
	go startKeypress(p, keypressChannels{keyPresses, keyCommands})

	distributorChannels := distributorChannels{
		events:      events,
		keyCommands: keyCommands,
		clicks:      clicks,
	}
	go distributor(p, controller, distributorChannels)
}
