package gol

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"uk.ac.bris.cs/lifegrid/util"
)

const (
	MinSpeed       = 0.25
	MaxSpeed       = 5.00
	DefaultMaxSize = 30
	DefaultSize    = 10
)

var (
	// ErrBadSpeed is returned for a speed multiplier outside [MinSpeed, MaxSpeed]
	ErrBadSpeed = errors.New("speed must be between 0.25 and 5.00")
	// ErrOutOfBounds is returned for a cell that isn't on the grid
	ErrOutOfBounds = errors.New("cell is not on the grid")
	// ErrPaused is the cause a run loop stops with when it is asked to pause
	ErrPaused = errors.New("run loop paused")
	// ErrCancelled is the cause a run loop stops with when a mutation needs the grid straight away
	ErrCancelled = errors.New("run loop cancelled")

	errTurnsDone = errors.New("all turns done")
)

// Snapshot is a copy of the grid that can be read without stopping the run loop
// or waiting for a foreground operation
type Snapshot struct {
	Width      int
	Height     int
	Turn       int
	State      State
	Population int
	Alive      []bool
	Initial    []bool
	Frame      []Colour
}

// runLoop holds the signals for one run of the step loop.
// done is closed when the loop goroutine has returned, whatever the reason.
type runLoop struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	pause  chan struct{}
	once   sync.Once
	done   chan struct{}
	err    error
}

func (l *runLoop) requestPause() {
	l.once.Do(func() { close(l.pause) })
}

// Controller owns the grid and the goroutine that steps it.
// The grid is only ever touched by one of: the run loop, or a foreground operation
// that has stopped the run loop and waited for it to exit.
type Controller struct {
	params Params
	events chan<- Event
	rng    *rand.Rand

	// Held for the whole of every foreground operation
	opMu sync.Mutex

	mu    sync.Mutex
	grid  *Grid
	state State
	speed float64
	turn  int
	loop  *runLoop
	// The grid as of the last completed turn or operation, what Snapshot hands out
	published Snapshot
}

// NewController makes a controller with an empty grid sized from the params.
// Events are sent down the events channel if it isn't nil; it must be drained.
func NewController(p Params, events chan<- Event) (*Controller, error) {
	p = p.withDefaults()
	if p.Speed < MinSpeed || p.Speed > MaxSpeed {
		return nil, fmt.Errorf("%w: got %.2f", ErrBadSpeed, p.Speed)
	}
	width, _ := clamp(p.Width, p.MaxSize)
	height, _ := clamp(p.Height, p.MaxSize)
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		params: p,
		events: events,
		rng:    rand.New(rand.NewSource(p.Seed)),
		grid:   grid,
		state:  Idle,
		speed:  p.Speed,
	}
	c.published = c.snapshot()
	return c, nil
}

func clamp(v, max int) (int, bool) {
	if v < 1 {
		return 1, true
	}
	if v > max {
		return max, true
	}
	return v, false
}

// State returns what the controller is doing right now
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Turn returns how many turns have been completed on the current grid
func (c *Controller) Turn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turn
}

// Size returns the width and height of the current grid
func (c *Controller) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.Width(), c.grid.Height()
}

// MaxSize is the largest width or height Resize will allow
func (c *Controller) MaxSize() int {
	return c.params.MaxSize
}

// Speed returns the current speed multiplier
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Interval is how long the run loop sleeps between turns: 1000ms / speed
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(float64(time.Second) / c.speed)
}

// SetSpeed changes the speed multiplier. A running loop picks it up on its next turn.
func (c *Controller) SetSpeed(speed float64) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("%w: got %.2f", ErrBadSpeed, speed)
	}
	c.mu.Lock()
	c.speed = speed
	c.mu.Unlock()
	return nil
}

// Start begins stepping the grid in the background. Does nothing if already running.
func (c *Controller) Start() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	running := c.loop != nil
	c.mu.Unlock()
	if !running {
		c.start()
	}
}

// Stop pauses the run loop and waits for it to exit.
// A turn that is part way through is allowed to finish.
func (c *Controller) Stop() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.halt(false) {
		c.emitFrame()
	}
}

// start spawns a new run loop. opMu must be held.
func (c *Controller) start() {
	ctx, cancel := context.WithCancelCause(context.Background())
	l := &runLoop{
		ctx:    ctx,
		cancel: cancel,
		pause:  make(chan struct{}),
		done:   make(chan struct{}),
	}

	c.mu.Lock()
	c.loop = l
	c.state = Running
	c.published = c.snapshot()
	turn := c.turn
	c.mu.Unlock()

	c.emit(StateChange{turn, Running})
	go c.run(l)
}

// halt signals the run loop, if there is one, and blocks until it has exited.
// A hard halt cancels the loop's context so a step in progress stops after its current toggle.
// Returns true if the loop was stopped by us and so should be resumed afterwards.
// opMu must be held.
func (c *Controller) halt(hard bool) bool {
	c.mu.Lock()
	l := c.loop
	if l == nil {
		c.mu.Unlock()
		return false
	}
	if hard {
		c.state = CancelPending
		l.cancel(ErrCancelled)
	} else {
		c.state = PausePending
		l.requestPause()
	}
	c.mu.Unlock()

	<-l.done
	return errors.Is(l.err, ErrPaused) || errors.Is(l.err, ErrCancelled)
}

// exclusive runs fn with the run loop stopped, then restarts the loop if it was running before
func (c *Controller) exclusive(hard bool, fn func() error) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	resume := c.halt(hard)
	err := fn()
	c.publish()
	c.emitFrame()
	if resume {
		c.start()
	}
	return err
}

// mutate is exclusive for operations that can't fail
func (c *Controller) mutate(hard bool, fn func()) {
	_ = c.exclusive(hard, func() error {
		fn()
		return nil
	})
}

// run is the body of the run loop goroutine.
// Whatever happens inside, the loop is marked as finished and done is closed.
func (c *Controller) run(l *runLoop) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("run loop panicked: %v", r)
		}
		c.finish(l, err)
	}()
	err = c.runTurns(l)
}

func (c *Controller) runTurns(l *runLoop) error {
	for {
		if c.turnsDone() {
			return errTurnsDone
		}

		// Check for a signal before going to sleep
		select {
		case <-l.pause:
			return ErrPaused
		case <-l.ctx.Done():
			return context.Cause(l.ctx)
		default:
		}

		timer := time.NewTimer(c.Interval())
		select {
		case <-l.pause:
			timer.Stop()
			return ErrPaused
		case <-l.ctx.Done():
			timer.Stop()
			return context.Cause(l.ctx)
		case <-timer.C:
		}

		c.mu.Lock()
		grid := c.grid
		c.mu.Unlock()

		changes, err := grid.Step(l.ctx)
		if err != nil {
			return err
		}

		c.mu.Lock()
		c.turn++
		turn := c.turn
		c.published = c.snapshot()
		frame := c.published.Frame
		c.mu.Unlock()

		for _, change := range changes {
			c.emitFromLoop(l, CellChanged{turn, change})
		}
		c.emitFromLoop(l, TurnComplete{turn, grid.Width(), grid.Height(), frame})
	}
}

func (c *Controller) turnsDone() bool {
	if c.params.Turns <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turn >= c.params.Turns
}

// finish records why the loop stopped and tells the user.
// Pausing and cancelling are expected, so they are only reported as the controller going idle.
func (c *Controller) finish(l *runLoop, err error) {
	c.mu.Lock()
	l.err = err
	if c.loop == l {
		c.loop = nil
		c.state = Idle
	}
	turn := c.turn
	var alive []util.Cell
	if errors.Is(err, errTurnsDone) {
		alive = aliveCells(c.grid)
	}
	c.mu.Unlock()
	l.cancel(nil)

	switch {
	case errors.Is(err, ErrPaused), errors.Is(err, ErrCancelled):
	case errors.Is(err, errTurnsDone):
		c.emit(FinalTurnComplete{turn, alive})
	default:
		c.emit(LoopFailed{turn, err})
	}
	c.emit(StateChange{turn, Idle})
	close(l.done)
}

// emit sends an event from a foreground operation
func (c *Controller) emit(event Event) {
	if c.events != nil {
		c.events <- event
	}
}

// emitFromLoop sends an event from the run loop, giving up if the loop has been signalled
// so a pause-and-wait is never held up by a slow reader
func (c *Controller) emitFromLoop(l *runLoop, event Event) {
	if c.events == nil {
		return
	}
	select {
	case c.events <- event:
	case <-l.pause:
	case <-l.ctx.Done():
	}
}

func (c *Controller) emitFrame() {
	c.mu.Lock()
	turn := c.turn
	grid := c.grid
	frame := grid.Frame()
	c.mu.Unlock()
	c.emit(TurnComplete{turn, grid.Width(), grid.Height(), frame})
}

func (c *Controller) emitChanges(changes []Change) {
	turn := c.Turn()
	for _, change := range changes {
		c.emit(CellChanged{turn, change})
	}
}

// snapshot copies the grid. mu must be held.
func (c *Controller) snapshot() Snapshot {
	g := c.grid
	s := Snapshot{
		Width:   g.Width(),
		Height:  g.Height(),
		Turn:    c.turn,
		State:   c.state,
		Alive:   make([]bool, g.Len()),
		Initial: make([]bool, g.Len()),
		Frame:   g.Frame(),
	}
	for i := 0; i < g.Len(); i++ {
		cell := g.CellAt(i)
		s.Alive[i] = cell.IsAlive()
		s.Initial[i] = cell.IsInitial()
		if cell.IsAlive() {
			s.Population++
		}
	}
	return s
}

// publish makes the current grid the one Snapshot hands out.
// Only call it while nothing else is changing the grid.
func (c *Controller) publish() {
	c.mu.Lock()
	c.published = c.snapshot()
	c.mu.Unlock()
}

// Snapshot returns a copy of the grid as of the last completed turn or operation.
// It never waits for the run loop or a foreground operation, so it is safe to call
// from whatever is reading the events channel.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.published
	s.State = c.state
	return s
}

// replaceGrid swaps in a fresh grid. The run loop must not be running.
func (c *Controller) replaceGrid(g *Grid) {
	c.mu.Lock()
	c.grid = g
	c.turn = 0
	c.mu.Unlock()
}

func (c *Controller) inBounds(col, row int) error {
	width, height := c.Size()
	if col < 0 || col >= width || row < 0 || row >= height {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d grid", ErrOutOfBounds, col, row, width, height)
	}
	return nil
}

// Toggle flips a cell, as if the user clicked on it.
// The new state also becomes the cell's initial state.
func (c *Controller) Toggle(col, row int) error {
	return c.exclusive(false, func() error {
		if err := c.inBounds(col, row); err != nil {
			return err
		}
		alive := !c.grid.Cell(col, row).IsAlive()
		change := c.grid.ToggleLife(col, row, alive)
		c.grid.SetInitial(col, row, alive)
		c.emitChanges([]Change{change})
		return nil
	})
}

// SetCell makes a cell alive or dead and records that as its initial state
func (c *Controller) SetCell(col, row int, alive bool) error {
	return c.exclusive(false, func() error {
		if err := c.inBounds(col, row); err != nil {
			return err
		}
		change := c.grid.ToggleLife(col, row, alive)
		c.grid.SetInitial(col, row, alive)
		if change.Flipped() {
			c.emitChanges([]Change{change})
		}
		return nil
	})
}

// Advance does n turns straight away, without waiting between them
func (c *Controller) Advance(n int) error {
	return c.exclusive(false, func() error {
		for i := 0; i < n; i++ {
			changes, err := c.grid.Step(context.Background())
			if err != nil {
				return err
			}
			c.mu.Lock()
			c.turn++
			c.published = c.snapshot()
			c.mu.Unlock()
			c.emitChanges(changes)
		}
		return nil
	})
}

// Resize replaces the grid with an empty one of the given size.
// Sizes outside [1, MaxSize] are clamped and the size actually used is returned.
func (c *Controller) Resize(width, height int) (int, int) {
	c.mutate(true, func() {
		width, height = c.resize(width, height)
	})
	return width, height
}

// resize does the work of Resize. The run loop must not be running.
func (c *Controller) resize(width, height int) (int, int) {
	width, clampedW := clamp(width, c.params.MaxSize)
	height, clampedH := clamp(height, c.params.MaxSize)
	// Can't fail once clamped
	grid, _ := NewGrid(width, height)
	c.replaceGrid(grid)
	c.emit(GridResized{0, width, height, clampedW || clampedH})
	return width, height
}

// Clear kills every cell, including their initial states
func (c *Controller) Clear() {
	c.mutate(true, func() {
		c.mu.Lock()
		c.grid.Clear()
		c.turn = 0
		c.mu.Unlock()
	})
}

// Reset puts every cell back to its initial state
func (c *Controller) Reset() error {
	return c.exclusive(false, func() error {
		changes, err := c.grid.Reset(context.Background())
		c.emitChanges(changes)
		return err
	})
}

// aliveCells returns the coordinates of every live cell
func aliveCells(g *Grid) []util.Cell {
	cells := make([]util.Cell, 0)
	for _, i := range g.Alive() {
		col, row := g.Coords(i)
		cells = append(cells, util.Cell{X: col, Y: row})
	}
	return cells
}

// AliveCells returns the coordinates of every live cell
func (c *Controller) AliveCells() []util.Cell {
	s := c.Snapshot()
	cells := make([]util.Cell, 0)
	for i, alive := range s.Alive {
		if alive {
			cells = append(cells, util.Cell{X: i / s.Height, Y: i % s.Height})
		}
	}
	return cells
}
