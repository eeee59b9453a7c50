package main

import (
	"flag"
	"fmt"
	"net/rpc"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gernest/wow"
	"github.com/gernest/wow/spin"

	"uk.ac.bris.cs/lifegrid/stubs"
	"uk.ac.bris.cs/lifegrid/util"
)

const usage = `usage: gol-client [-server addr] command [args]

commands:
  start | stop | randomise | balance | clear | reset | ping
  board           draw the board, # alive, o dead but alive at the start
  alive           list the coordinates of every live cell
  toggle X Y      flip the cell in column X, row Y
  resize W H      new empty board, clamped to the server's limit
  speed S         turns per second, 0.25 to 5
  advance N       do N turns straight away
  save [path]     save on the server, default is a timestamped name
  load path       load a board saved on the server
`

// Attempt to connect to the server
// We allow for 4 retries incase the server is slow to start
func dial(address string) (*rpc.Client, error) {
	var err error
	for try := 0; try < 4; try++ {
		var server *rpc.Client
		server, err = rpc.Dial("tcp", address)
		if err == nil {
			return server, nil
		}
		println("Connection error:", err.Error())
		// Delay 0.5 seconds incase the server is still busy
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("exhausted attempts to connect to %s: %w", address, err)
}

// call makes an RPC call with a spinner running, since calls that have to stop the run loop can take a turn to return
func call(server *rpc.Client, method, text string, req, res interface{}) error {
	w := wow.New(os.Stdout, spin.Get(spin.Dots), " "+text)
	w.Start()
	err := server.Call(method, req, res)
	if err != nil {
		w.PersistWith(spin.Spinner{Frames: []string{"✗"}}, " "+text+": "+err.Error())
		return err
	}
	w.PersistWith(spin.Spinner{Frames: []string{"✓"}}, " "+text)
	return nil
}

func report(res *stubs.ServerResponse) {
	if res.Success {
		fmt.Println(res.Message)
	} else {
		fmt.Println("Server error:", res.Message)
	}
}

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(args))
	}
	values := make([]int, n)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// printBoard draws the board with # for live cells and o for cells that were alive
// at the start but aren't now
func printBoard(board stubs.BoardResponse) {
	fmt.Printf("%dx%d, turn %d, %v, speed %.2fx, %d alive\n",
		board.Width, board.Height, board.Turn, board.State, board.Speed, board.Population)
	initial := board.Initial.ToSlice()
	var sb strings.Builder
	for row, cells := range board.Alive.ToSlice() {
		for col, alive := range cells {
			switch {
			case alive:
				sb.WriteByte('#')
			case initial[row][col]:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

// printAlive lists the live cells as column, row pairs
func printAlive(board stubs.BoardResponse) {
	cells := util.GetAliveCells(board.Alive.ToSlice())
	fmt.Printf("%d alive on turn %d\n", len(cells), board.Turn)
	for _, cell := range cells {
		fmt.Printf("%d %d\n", cell.X, cell.Y)
	}
}

func run(server *rpc.Client, command string, args []string) error {
	response := new(stubs.ServerResponse)
	switch command {
	case "start":
		err := call(server, stubs.ServerStart, "Starting", stubs.Empty{}, response)
		report(response)
		return err
	case "stop":
		err := call(server, stubs.ServerStop, "Waiting for the run loop to stop", stubs.Empty{}, response)
		report(response)
		return err
	case "randomise":
		size := new(stubs.ResizeResponse)
		if err := call(server, stubs.ServerRandomise, "Randomising", stubs.Empty{}, size); err != nil {
			return err
		}
		fmt.Printf("New board is %dx%d\n", size.Width, size.Height)
	case "balance":
		err := call(server, stubs.ServerBalance, "Balancing", stubs.Empty{}, response)
		report(response)
		return err
	case "clear":
		err := call(server, stubs.ServerClear, "Clearing", stubs.Empty{}, response)
		report(response)
		return err
	case "reset":
		err := call(server, stubs.ServerReset, "Resetting", stubs.Empty{}, response)
		report(response)
		return err
	case "toggle":
		xy, err := ints(args, 2)
		if err != nil {
			return err
		}
		err = server.Call(stubs.ServerToggle, stubs.CellRequest{X: xy[0], Y: xy[1]}, response)
		report(response)
		return err
	case "resize":
		wh, err := ints(args, 2)
		if err != nil {
			return err
		}
		size := new(stubs.ResizeResponse)
		if err := call(server, stubs.ServerResize, "Resizing", stubs.ResizeRequest{Width: wh[0], Height: wh[1]}, size); err != nil {
			return err
		}
		if size.Clamped {
			fmt.Printf("Clamped to %dx%d\n", size.Width, size.Height)
		} else {
			fmt.Printf("Resized to %dx%d\n", size.Width, size.Height)
		}
	case "speed":
		if len(args) != 1 {
			return fmt.Errorf("want a speed")
		}
		speed, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}
		err = server.Call(stubs.ServerSetSpeed, stubs.SpeedRequest{Speed: speed}, response)
		report(response)
		return err
	case "advance":
		n, err := ints(args, 1)
		if err != nil {
			return err
		}
		err = call(server, stubs.ServerAdvance, "Advancing "+args[0]+" turns", stubs.AdvanceRequest{Turns: n[0]}, response)
		report(response)
		return err
	case "save":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		err := call(server, stubs.ServerSave, "Saving", stubs.PathRequest{Path: path}, response)
		report(response)
		return err
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("want a path")
		}
		err := call(server, stubs.ServerLoad, "Loading", stubs.PathRequest{Path: args[0]}, response)
		report(response)
		return err
	case "board", "alive":
		board := new(stubs.BoardResponse)
		if err := server.Call(stubs.ServerBoard, stubs.Empty{}, board); err != nil {
			return err
		}
		if command == "board" {
			printBoard(*board)
		} else {
			printAlive(*board)
		}
	case "ping":
		if err := server.Call(stubs.ServerPing, stubs.Empty{}, &stubs.Empty{}); err != nil {
			return err
		}
		fmt.Println("pong")
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func main() {
	serverAddress := flag.String("server", "localhost:8020", "address of the gol-server")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	server, err := dial(*serverAddress)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
	defer server.Close()

	if err := run(server, flag.Arg(0), flag.Args()[1:]); err != nil {
		println("Error:", err.Error())
		server.Close()
		os.Exit(1)
	}
}
