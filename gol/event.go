package gol

import (
	"fmt"

	"uk.ac.bris.cs/lifegrid/util"
)

// Event represents any Game of Life event that needs to be communicated to the user.
type Event interface {
	// Stringer allows each event to be printed by the GUI
	fmt.Stringer
	// GetCompletedTurns should return the number of fully completed turns.
	// If the event was raised outside of a turn it should be the last completed turn.
	GetCompletedTurns() int
}

// State represents where the controller is in its run/pause/cancel cycle.
type State int

// This is a way of creating enums in Go.
// It will evaluate to:
//		Idle          = 0
//		Running       = 1
//		PausePending  = 2
//		CancelPending = 3
//		Quitting      = 4
const (
	Idle State = iota
	Running
	PausePending
	CancelPending
	Quitting
)

// String methods allow the different types of Events and States to be printed.
func (state State) String() string {
	switch state {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case PausePending:
		return "PausePending"
	case CancelPending:
		return "CancelPending"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// CellChanged is sent every time ToggleLife flips a cell.
type CellChanged struct {
	CompletedTurns int
	Change         Change
}

// TurnComplete is sent when a step, or any operation that changes many cells, has finished.
// Frame holds the colour class of every cell, in index order.
type TurnComplete struct {
	CompletedTurns int
	Width          int
	Height         int
	Frame          []Colour
}

// StateChange is sent when the controller's state changes.
// Going back to Idle from Running is the "paused" notice.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// AliveCellsCount is sent every 2 seconds by Run.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// GridResized is sent when the grid is replaced with one of a new size.
// Clamped is true if the requested size was outside the allowed range.
type GridResized struct {
	CompletedTurns int
	Width          int
	Height         int
	Clamped        bool
}

// LoopFailed is sent when the run loop stops because something went wrong.
type LoopFailed struct {
	CompletedTurns int
	Err            error
}

// BoardSaved is sent when the grid has been written to a file.
type BoardSaved struct {
	CompletedTurns int
	Path           string
}

// BoardLoaded is sent when a grid has been read from a file.
type BoardLoaded struct {
	CompletedTurns int
	Path           string
	Width          int
	Height         int
}

// Notice carries an informational message for the user, e.g. there was nothing to load.
type Notice struct {
	CompletedTurns int
	Message        string
}

// FinalTurnComplete is sent when the run loop has done the number of turns it was asked for.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []util.Cell
}

func (event CellChanged) String() string {
	return fmt.Sprintf("Cell (%d, %d) -> %v", event.Change.Col, event.Change.Row, event.Change.Colour)
}

func (event CellChanged) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event TurnComplete) String() string {
	return fmt.Sprintf("Turn %d", event.CompletedTurns)
}

func (event TurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %d", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event GridResized) String() string {
	if event.Clamped {
		return fmt.Sprintf("Resized to %dx%d (clamped)", event.Width, event.Height)
	}
	return fmt.Sprintf("Resized to %dx%d", event.Width, event.Height)
}

func (event GridResized) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event LoopFailed) String() string {
	return fmt.Sprintf("Run loop failed: %v", event.Err)
}

func (event LoopFailed) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event BoardSaved) String() string {
	return fmt.Sprintf("Saved to %s", event.Path)
}

func (event BoardSaved) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event BoardLoaded) String() string {
	return fmt.Sprintf("Loaded %dx%d from %s", event.Width, event.Height, event.Path)
}

func (event BoardLoaded) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event Notice) String() string {
	return event.Message
}

func (event Notice) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event FinalTurnComplete) String() string {
	return "Final Turn Complete"
}

func (event FinalTurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}
