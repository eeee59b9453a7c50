package gol

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestController(t *testing.T, p Params, events chan<- Event) *Controller {
	t.Helper()
	c, err := NewController(p, events)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// drain reads events until the channel is closed, returning them all
func drain(events <-chan Event) <-chan []Event {
	out := make(chan []Event, 1)
	go func() {
		var got []Event
		for e := range events {
			got = append(got, e)
		}
		out <- got
	}()
	return out
}

func TestNewControllerDefaults(t *testing.T) {
	c := newTestController(t, Params{}, nil)
	if w, h := c.Size(); w != DefaultSize || h != DefaultSize {
		t.Errorf("size %dx%d, want %dx%d", w, h, DefaultSize, DefaultSize)
	}
	if c.MaxSize() != DefaultMaxSize {
		t.Errorf("max size %d, want %d", c.MaxSize(), DefaultMaxSize)
	}
	if c.State() != Idle || c.Speed() != 1 || c.Interval() != time.Second {
		t.Errorf("got state %v speed %v interval %v", c.State(), c.Speed(), c.Interval())
	}

	if _, err := NewController(Params{Speed: 9}, nil); !errors.Is(err, ErrBadSpeed) {
		t.Errorf("speed 9: got %v, want ErrBadSpeed", err)
	}
}

func TestSetSpeed(t *testing.T) {
	c := newTestController(t, Params{}, nil)
	tests := []struct {
		speed float64
		ok    bool
	}{
		{0.25, true},
		{2, true},
		{5, true},
		{0.2, false},
		{5.25, false},
		{-1, false},
	}
	for _, test := range tests {
		err := c.SetSpeed(test.speed)
		if test.ok && err != nil {
			t.Errorf("SetSpeed(%v): %v", test.speed, err)
		}
		if !test.ok && !errors.Is(err, ErrBadSpeed) {
			t.Errorf("SetSpeed(%v): got %v, want ErrBadSpeed", test.speed, err)
		}
	}
	// The last good speed sticks
	if c.Speed() != 5 || c.Interval() != 200*time.Millisecond {
		t.Errorf("speed %v interval %v, want 5 and 200ms", c.Speed(), c.Interval())
	}
}

func TestResizeClamps(t *testing.T) {
	c := newTestController(t, Params{MaxSize: 30}, nil)
	tests := []struct {
		width, height int
		wantW, wantH  int
	}{
		{5, 8, 5, 8},
		{0, 50, 1, 30},
		{-3, 30, 1, 30},
		{31, 1, 30, 1},
	}
	for _, test := range tests {
		w, h := c.Resize(test.width, test.height)
		if w != test.wantW || h != test.wantH {
			t.Errorf("Resize(%d, %d) = %d, %d, want %d, %d", test.width, test.height, w, h, test.wantW, test.wantH)
		}
		if gw, gh := c.Size(); gw != w || gh != h {
			t.Errorf("grid is %dx%d after resizing to %dx%d", gw, gh, w, h)
		}
	}
}

func TestResizeEvent(t *testing.T) {
	events := make(chan Event, 10)
	c := newTestController(t, Params{MaxSize: 30}, events)
	c.Resize(40, 4)

	resized, ok := (<-events).(GridResized)
	if !ok || resized.Width != 30 || resized.Height != 4 || !resized.Clamped {
		t.Errorf("got %+v, want a clamped 30x4 GridResized", resized)
	}
	if frame, ok := (<-events).(TurnComplete); !ok || len(frame.Frame) != 120 {
		t.Errorf("got %+v, want a 120 cell TurnComplete", frame)
	}
}

func TestToggle(t *testing.T) {
	c := newTestController(t, Params{Width: 5, Height: 5}, nil)
	if err := c.Toggle(2, 3); err != nil {
		t.Fatal(err)
	}
	s := c.Snapshot()
	i := 2*5 + 3
	if !s.Alive[i] || !s.Initial[i] {
		t.Errorf("toggled cell: alive %v initial %v", s.Alive[i], s.Initial[i])
	}
	if err := c.Toggle(2, 3); err != nil {
		t.Fatal(err)
	}
	if s := c.Snapshot(); s.Alive[i] || s.Initial[i] {
		t.Errorf("toggled back cell: alive %v initial %v", s.Alive[i], s.Initial[i])
	}
	for _, cell := range [][2]int{{-1, 0}, {5, 0}, {0, 5}} {
		if err := c.Toggle(cell[0], cell[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Toggle%v: got %v, want ErrOutOfBounds", cell, err)
		}
	}
}

func TestAdvanceAndReset(t *testing.T) {
	c := newTestController(t, Params{Width: 5, Height: 5}, nil)
	for _, cell := range [][2]int{{1, 2}, {2, 2}, {3, 2}} {
		c.SetCell(cell[0], cell[1], true)
	}
	if err := c.Advance(3); err != nil {
		t.Fatal(err)
	}
	if c.Turn() != 3 {
		t.Errorf("turn %d after 3 turns", c.Turn())
	}
	cells := c.AliveCells()
	if len(cells) != 3 || cells[0].X != 2 {
		t.Errorf("blinker should be vertical after 3 turns: %v", cells)
	}

	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	cells = c.AliveCells()
	if len(cells) != 3 || cells[0].Y != 2 || cells[1].Y != 2 {
		t.Errorf("blinker should be back horizontal after reset: %v", cells)
	}

	c.Clear()
	if len(c.AliveCells()) != 0 || c.Turn() != 0 {
		t.Errorf("after clear: %v alive at turn %d", c.AliveCells(), c.Turn())
	}
	if err := c.Reset(); err != nil || len(c.AliveCells()) != 0 {
		t.Errorf("reset after clear brought back %v", c.AliveCells())
	}
}

func TestStartStop(t *testing.T) {
	events := make(chan Event)
	got := drain(events)
	c := newTestController(t, Params{Width: 5, Height: 5, Speed: MaxSpeed}, events)
	for _, cell := range [][2]int{{1, 2}, {2, 2}, {3, 2}} {
		c.SetCell(cell[0], cell[1], true)
	}

	c.Start()
	c.Start()
	if c.State() != Running {
		t.Fatalf("state %v after start", c.State())
	}
	time.Sleep(500 * time.Millisecond)
	c.Stop()
	if c.State() != Idle {
		t.Fatalf("state %v after stop", c.State())
	}
	turn := c.Turn()
	if turn < 1 {
		t.Errorf("no turns done in 500ms at 5 turns per second")
	}
	// Stopping twice does nothing
	c.Stop()
	close(events)

	var states []State
	completed := 0
	for _, e := range <-got {
		switch e := e.(type) {
		case StateChange:
			states = append(states, e.NewState)
		case TurnComplete:
			if e.CompletedTurns > 0 {
				completed++
			}
		}
	}
	if len(states) != 2 || states[0] != Running || states[1] != Idle {
		t.Errorf("got states %v, want [Running Idle]", states)
	}
	if completed < turn {
		t.Errorf("got %d TurnComplete events for %d turns", completed, turn)
	}
}

func TestTurnsLimit(t *testing.T) {
	events := make(chan Event, 100)
	c := newTestController(t, Params{Width: 5, Height: 5, Speed: MaxSpeed, Turns: 2}, events)
	c.SetCell(2, 2, true)
	c.Start()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-events:
			final, ok := e.(FinalTurnComplete)
			if !ok {
				continue
			}
			if final.CompletedTurns != 2 || len(final.Alive) != 0 {
				t.Errorf("got %v, want turn 2 with nothing alive", final)
			}
			if state := (<-events).(StateChange); state.NewState != Idle {
				t.Errorf("got %v after the final turn, want Idle", state)
			}
			return
		case <-timeout:
			t.Fatal("no FinalTurnComplete after 5s")
		}
	}
}

func TestLoopFailureReleasesWaiters(t *testing.T) {
	events := make(chan Event, 10)
	c := newTestController(t, Params{}, events)

	ctx, cancel := context.WithCancelCause(context.Background())
	l := &runLoop{ctx: ctx, cancel: cancel, pause: make(chan struct{}), done: make(chan struct{})}
	c.loop = l
	c.state = Running

	boom := errors.New("boom")
	c.finish(l, boom)

	select {
	case <-l.done:
	default:
		t.Fatal("done not closed after the loop failed")
	}
	if failed, ok := (<-events).(LoopFailed); !ok || !errors.Is(failed.Err, boom) {
		t.Errorf("got %v, want LoopFailed", failed)
	}
	if c.State() != Idle {
		t.Errorf("state %v after a failure, want Idle", c.State())
	}
	// The next halt has nothing to wait for
	if c.halt(true) {
		t.Errorf("halt should not resume a failed loop")
	}
}

func TestSnapshotWhileRunning(t *testing.T) {
	c := newTestController(t, Params{Width: 8, Height: 8, Speed: MaxSpeed}, nil)
	for _, cell := range [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		c.SetCell(cell[0], cell[1], true)
	}
	c.Start()
	defer c.Stop()
	for i := 0; i < 20; i++ {
		s := c.Snapshot()
		// A glider always has 5 cells
		if s.Population != 5 {
			t.Fatalf("snapshot at turn %d has %d alive", s.Turn, s.Population)
		}
		time.Sleep(30 * time.Millisecond)
	}
}

// Whatever reads the events may also ask for snapshots, even while an operation
// is blocked sending to it
func TestSnapshotFromEventReader(t *testing.T) {
	events := make(chan Event, 10)
	c := newTestController(t, Params{Width: 30, Height: 30, MaxSize: 30}, events)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range events {
			c.Snapshot()
		}
	}()

	for _, cell := range [][2]int{{1, 2}, {2, 2}, {3, 2}} {
		c.SetCell(cell[0], cell[1], true)
	}
	advanced := make(chan error, 1)
	go func() {
		// Every turn flips 4 cells, far more events than the buffer holds
		advanced <- c.Advance(500)
	}()

	select {
	case err := <-advanced:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Advance deadlocked with the event reader taking snapshots")
	}
	if s := c.Snapshot(); s.Turn != 500 || s.Population != 3 {
		t.Errorf("got turn %d with %d alive, want turn 500 with 3 alive", s.Turn, s.Population)
	}
	close(events)
	<-done
}
