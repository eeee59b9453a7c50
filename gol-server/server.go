package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/rpc"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"uk.ac.bris.cs/lifegrid/gol"
	"uk.ac.bris.cs/lifegrid/stubs"
	"uk.ac.bris.cs/lifegrid/util"
)

// Server structure for RPC functions
// Every call goes through the one controller, which makes sure only one of them touches the grid at a time
type Server struct {
	controller *gol.Controller
	saveDir    string
}

func ok(res *stubs.ServerResponse, message string) {
	res.Success = true
	res.Message = message
}

func fail(res *stubs.ServerResponse, err error) {
	println("Request failed:", err.Error())
	res.Success = false
	res.Message = err.Error()
}

// Start is called by a client to start stepping the board
func (s *Server) Start(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	println("Received start request")
	s.controller.Start()
	ok(res, "Running")
	return
}

// Stop is called by a client to pause the board, it returns once the run loop has exited
func (s *Server) Stop(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	println("Received stop request")
	s.controller.Stop()
	ok(res, "Paused")
	return
}

// Toggle flips a single cell
func (s *Server) Toggle(req stubs.CellRequest, res *stubs.ServerResponse) (err error) {
	if err := s.controller.Toggle(req.X, req.Y); err != nil {
		fail(res, err)
		return nil
	}
	ok(res, "Toggled")
	return
}

// Randomise gives the board a random size and random cells
func (s *Server) Randomise(req stubs.Empty, res *stubs.ResizeResponse) (err error) {
	println("Randomising board")
	s.controller.Randomise()
	res.Width, res.Height = s.controller.Size()
	return
}

// Balance kills a random half of the live cells
func (s *Server) Balance(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	println("Balancing board")
	before := s.controller.Snapshot().Population
	s.controller.Balance()
	after := s.controller.Snapshot().Population
	ok(res, "Population "+strconv.Itoa(before)+" -> "+strconv.Itoa(after))
	return
}

// Clear kills every cell
func (s *Server) Clear(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	s.controller.Clear()
	ok(res, "Cleared")
	return
}

// Reset puts every cell back to its initial state
func (s *Server) Reset(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	if err := s.controller.Reset(); err != nil {
		fail(res, err)
		return nil
	}
	ok(res, "Reset")
	return
}

// Resize replaces the board with an empty one, telling the client the size that was actually used
func (s *Server) Resize(req stubs.ResizeRequest, res *stubs.ResizeResponse) (err error) {
	res.Width, res.Height = s.controller.Resize(req.Width, req.Height)
	res.Clamped = res.Width != req.Width || res.Height != req.Height
	return
}

// SetSpeed changes how fast the run loop steps
func (s *Server) SetSpeed(req stubs.SpeedRequest, res *stubs.ServerResponse) (err error) {
	if err := s.controller.SetSpeed(req.Speed); err != nil {
		fail(res, err)
		return nil
	}
	ok(res, s.controller.Interval().String()+" per turn")
	return
}

// Advance does a number of turns straight away
func (s *Server) Advance(req stubs.AdvanceRequest, res *stubs.ServerResponse) (err error) {
	if err := s.controller.Advance(req.Turns); err != nil {
		fail(res, err)
		return nil
	}
	ok(res, "Turn "+strconv.Itoa(s.controller.Turn()))
	return
}

// Save writes the board to a file on the server
func (s *Server) Save(req stubs.PathRequest, res *stubs.ServerResponse) (err error) {
	path := req.Path
	if path == "" {
		if err := os.MkdirAll(s.saveDir, 0o755); err != nil {
			fail(res, err)
			return nil
		}
		width, height := s.controller.Size()
		path = filepath.Join(s.saveDir, gol.DefaultSaveName(width, height, time.Now()))
	}
	if err := s.controller.Save(path); err != nil {
		fail(res, err)
		return nil
	}
	ok(res, path)
	return
}

// Load reads the board from a file on the server
// A missing file isn't an error, the client is just told there was nothing to load
func (s *Server) Load(req stubs.PathRequest, res *stubs.ServerResponse) (err error) {
	err = s.controller.Load(req.Path)
	if errors.Is(err, gol.ErrNothingToLoad) {
		res.Success = false
		res.Message = "Nothing to load"
		return nil
	}
	if err != nil {
		fail(res, err)
		return nil
	}
	width, height := s.controller.Size()
	ok(res, "Loaded "+strconv.Itoa(width)+"x"+strconv.Itoa(height))
	return
}

// Board sends a copy of the board to the client
func (s *Server) Board(req stubs.Empty, res *stubs.BoardResponse) (err error) {
	snapshot := s.controller.Snapshot()
	res.Width = snapshot.Width
	res.Height = snapshot.Height
	res.Turn = snapshot.Turn
	res.State = snapshot.State
	res.Speed = s.controller.Speed()
	res.Population = snapshot.Population
	res.Alive = stubs.BitBoardFromColumns(snapshot.Alive, snapshot.Height, snapshot.Width)
	res.Initial = stubs.BitBoardFromColumns(snapshot.Initial, snapshot.Height, snapshot.Width)
	return
}

// Ping exists so clients can check their connection to us
func (s *Server) Ping(req stubs.Empty, res *stubs.Empty) (err error) {
	// No need to do anything here
	return
}

func main() {
	// Read in the network port we should listen on, from the commandline argument.
	// Default to port 8020
	portPtr := flag.String("p", "8020", "port to listen on")
	width := flag.Int("w", gol.DefaultSize, "width of the board")
	height := flag.Int("h", gol.DefaultSize, "height of the board")
	speed := flag.Float64("speed", 1, "turns per second, from 0.25 to 5")
	seed := flag.Int64("seed", 0, "seed for randomise and balance, 0 to use the clock")
	loadPath := flag.String("load", "", "saved board to start from")
	saveDir := flag.String("out", "out", "directory for saved boards")
	flag.Parse()

	params := gol.Params{
		Width:    *width,
		Height:   *height,
		Speed:    *speed,
		Seed:     *seed,
		LoadPath: *loadPath,
		SaveDir:  *saveDir,
	}

	events := make(chan gol.Event, 1000)
	controller, err := gol.NewController(params, events)
	if err != nil {
		println("Error creating controller:", err.Error())
		os.Exit(1)
	}
	if params.LoadPath != "" {
		if err := controller.Load(params.LoadPath); err != nil {
			println("Error loading board:", err.Error())
		}
	}

	println("Started server")
	println("Our RPC address:", util.GetOutboundIP()+":"+*portPtr)

	// Register our RPC server
	rpc.Register(&Server{controller: controller, saveDir: params.SaveDir})

	// Create a listener to handle rpc requests
	listener, err := net.Listen("tcp", ":"+*portPtr)
	if err != nil {
		println("Error starting listener:", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	group, ctx := errgroup.WithContext(ctx)

	// This will block until the listener is closed
	group.Go(func() error {
		rpc.Accept(listener)
		stop()
		return nil
	})
	group.Go(func() error {
		return reportLoop(ctx, controller, events)
	})
	// Close everything down on ctrl-c
	group.Go(func() error {
		<-ctx.Done()
		println("Shutting down")
		controller.Stop()
		listener.Close()
		return nil
	})

	if err := group.Wait(); err != nil {
		println("Server error:", err.Error())
	}
	println("Server closed")
}
