package gol

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"uk.ac.bris.cs/lifegrid/util"
)

type distributorChannels struct {
	events      chan<- Event
	keyCommands <-chan keyCommand
	clicks      <-chan util.Cell
}

// distributor handles user input for a controller and reports on it every 2 seconds.
// It owns the events channel and closes it when the user quits.
func distributor(p Params, controller *Controller, c distributorChannels) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	// Load a board if we were given one, otherwise show the empty grid
	if p.LoadPath != "" {
		loadBoard(p, controller)
	}
	controller.emitFrame()

	if p.Autostart {
		controller.Start()
	}

	clicks := c.clicks
	for {
		select {
		// Every ticker tick send an AliveCellsCount event
		case <-ticker.C:
			s := controller.Snapshot()
			c.events <- AliveCellsCount{s.Turn, s.Population}
		case cell, ok := <-clicks:
			if !ok {
				// Stop selecting on a closed channel
				clicks = nil
				continue
			}
			if err := controller.Toggle(cell.X, cell.Y); err != nil {
				controller.emit(Notice{controller.Turn(), err.Error()})
			}
		case command, ok := <-c.keyCommands:
			if !ok || command == quit {
				controller.Stop()
				c.events <- StateChange{controller.Turn(), Quitting}
				// Close the channel to stop the SDL goroutine gracefully. Removing may cause deadlock.
				close(c.events)
				return
			}
			handleCommand(p, controller, command)
		}
	}
}

func handleCommand(p Params, controller *Controller, command keyCommand) {
	switch command {
	case startStop:
		if controller.State() == Running {
			controller.Stop()
		} else {
			controller.Start()
		}
	case randomise:
		controller.Randomise()
	case balanceCells:
		controller.Balance()
	case clearGrid:
		controller.Clear()
	case resetGrid:
		if err := controller.Reset(); err != nil {
			controller.emit(Notice{controller.Turn(), err.Error()})
		}
	case save:
		saveBoard(p, controller)
	case load:
		loadBoard(p, controller)
	case faster, slower:
		speed := controller.Speed() + 0.25
		if command == slower {
			speed = controller.Speed() - 0.25
		}
		if err := controller.SetSpeed(speed); err != nil {
			controller.emit(Notice{controller.Turn(), err.Error()})
		} else {
			controller.emit(Notice{controller.Turn(), fmt.Sprintf("Speed %.2fx (%v per turn)", speed, controller.Interval())})
		}
	case wider, narrower, taller, shorter:
		width, height := controller.Size()
		switch command {
		case wider:
			width++
		case narrower:
			width--
		case taller:
			height++
		case shorter:
			height--
		}
		controller.Resize(width, height)
	}
}

// Save the board to a new timestamped file in the save directory
func saveBoard(p Params, controller *Controller) {
	if err := os.MkdirAll(p.SaveDir, 0o755); err != nil {
		controller.emit(Notice{controller.Turn(), err.Error()})
		return
	}
	width, height := controller.Size()
	path := filepath.Join(p.SaveDir, DefaultSaveName(width, height, time.Now()))
	if err := controller.Save(path); err != nil {
		controller.emit(Notice{controller.Turn(), err.Error()})
	}
}

// Load the board from the load path, telling the user if there's nothing there
func loadBoard(p Params, controller *Controller) {
	if p.LoadPath == "" {
		controller.emit(Notice{controller.Turn(), "Nothing to load"})
		return
	}
	err := controller.Load(p.LoadPath)
	switch {
	case errors.Is(err, ErrNothingToLoad):
		controller.emit(Notice{controller.Turn(), "Nothing to load"})
	case err != nil:
		controller.emit(Notice{controller.Turn(), err.Error()})
	}
}
