package main

import (
	"context"
	"fmt"
	"time"

	"uk.ac.bris.cs/lifegrid/gol"
)

/////////

// This file contains the reporting loop. RPC and others are in server.go

/////////

// reportLoop reads the controller's events and prints anything the person running the server should see.
// Every 2 seconds it also prints how many cells are alive and how fast turns are going.
// It returns when the context is cancelled or the events channel is closed.
func reportLoop(ctx context.Context, controller *gol.Controller, events <-chan gol.Event) error {
	// This ticker signals us to report alive cells every 2 seconds
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	lastTurn := controller.Turn()
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			switch e := event.(type) {
			case gol.StateChange:
				println("State:", e.NewState.String(), "on turn", e.CompletedTurns)
			case gol.LoopFailed:
				println("Run loop failed on turn", e.CompletedTurns, ":", e.Err.Error())
			case gol.GridResized, gol.BoardSaved, gol.BoardLoaded, gol.Notice, gol.FinalTurnComplete:
				println(e.String())
			}
		// Tell whoever is watching how many cells are alive
		case <-ticker.C:
			snapshot := controller.Snapshot()
			if snapshot.State != gol.Running {
				continue
			}
			now := time.Now()
			turnsDiff := snapshot.Turn - lastTurn
			timeDiff := now.Sub(lastTime)
			fmt.Printf("Turn %d, %d alive, %.2f turns/s\n", snapshot.Turn, snapshot.Population, float64(turnsDiff)/timeDiff.Seconds())

			lastTime = now
			lastTurn = snapshot.Turn
		}
	}
}
