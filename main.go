package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"

	"uk.ac.bris.cs/lifegrid/gol"
	"uk.ac.bris.cs/lifegrid/sdl"
	"uk.ac.bris.cs/lifegrid/util"
)

// SDL has to be driven from the main thread
func init() {
	runtime.LockOSThread()
}

// main is the function called when starting Game of Life with 'go run .'
func main() {
	var params gol.Params

	flag.IntVar(&params.Width, "w", gol.DefaultSize, "Specify the width of the board.")
	flag.IntVar(&params.Height, "h", gol.DefaultSize, "Specify the height of the board.")
	flag.IntVar(&params.MaxSize, "max", gol.DefaultMaxSize, "Largest width or height the board can be resized to.")
	flag.Float64Var(&params.Speed, "speed", 1, "Turns per second, from 0.25 to 5.")
	flag.IntVar(&params.Turns, "turns", 0, "Stop after this many turns. Defaults to running until stopped.")
	flag.Int64Var(&params.Seed, "seed", 0, "Seed for randomise and balance. Defaults to the clock.")
	flag.StringVar(&params.LoadPath, "load", "", "Saved board to load at the start and when 'l' is pressed.")
	flag.StringVar(&params.SaveDir, "out", "out", "Directory boards are saved into.")
	flag.BoolVar(&params.Autostart, "start", false, "Start running straight away.")
	noVis := flag.Bool("noVis", false, "Disables the SDL window. Runs the turns as fast as possible and saves the result.")
	random := flag.Bool("random", false, "With -noVis, start from a random board.")
	check := flag.Bool("check", false, "With -noVis, read the saved board back and check it matches.")
	flag.Parse()

	fmt.Println("Width:", params.Width)
	fmt.Println("Height:", params.Height)
	fmt.Println("Speed:", params.Speed)

	if *noVis {
		if err := headless(params, *random, *check); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		return
	}

	keyPresses := make(chan rune, 10)
	clicks := make(chan util.Cell, 10)
	events := make(chan gol.Event, 1000)

	go gol.Run(params, events, keyPresses, clicks)
	if err := sdl.Run(params, events, keyPresses, clicks); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// headless runs the requested number of turns with a progress bar instead of a window,
// then saves the board
func headless(params gol.Params, random, check bool) error {
	if params.Turns == 0 {
		params.Turns = 100
	}
	controller, err := gol.NewController(params, nil)
	if err != nil {
		return err
	}

	switch {
	case params.LoadPath != "":
		err := controller.Load(params.LoadPath)
		if errors.Is(err, gol.ErrNothingToLoad) {
			fmt.Println("Nothing to load, starting from an empty board")
		} else if err != nil {
			return err
		}
	case random:
		controller.Randomise()
	}

	width, height := controller.Size()
	fmt.Printf("Running %d turns on a %dx%d board\n", params.Turns, width, height)

	bar := pb.StartNew(params.Turns)
	for turn := 0; turn < params.Turns; turn++ {
		if err := controller.Advance(1); err != nil {
			bar.Finish()
			return err
		}
		bar.Increment()
	}
	bar.Finish()

	if err := os.MkdirAll(params.SaveDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(params.SaveDir, gol.DefaultSaveName(width, height, time.Now()))
	if err := controller.Save(path); err != nil {
		return err
	}
	alive := controller.AliveCells()
	fmt.Printf("%d cells alive after %d turns, saved to %s\n", len(alive), controller.Turn(), path)

	if check {
		if err := checkSaved(path, width, height, alive); err != nil {
			return err
		}
		fmt.Println("Saved board checked")
	}
	return nil
}

// checkSaved reads a saved board back and makes sure it has the size and live cells we expect
func checkSaved(path string, width, height int, alive []util.Cell) error {
	savedWidth, savedHeight, saved, err := util.ReadAliveCells(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if savedWidth != width || savedHeight != height {
		return fmt.Errorf("checking %s: saved %dx%d, want %dx%d", path, savedWidth, savedHeight, width, height)
	}
	want := make(map[util.Cell]bool, len(alive))
	for _, cell := range alive {
		want[cell] = true
	}
	if len(saved) != len(want) {
		return fmt.Errorf("checking %s: saved %d alive, want %d", path, len(saved), len(want))
	}
	for _, cell := range saved {
		if !want[cell] {
			return fmt.Errorf("checking %s: cell (%d, %d) should not be alive", path, cell.X, cell.Y)
		}
	}
	return nil
}
