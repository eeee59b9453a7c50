package stubs

import "uk.ac.bris.cs/lifegrid/gol"

//    RPC STRINGS

// Server RPC strings
var ServerStart = "Server.Start"
var ServerStop = "Server.Stop"
var ServerToggle = "Server.Toggle"
var ServerRandomise = "Server.Randomise"
var ServerBalance = "Server.Balance"
var ServerClear = "Server.Clear"
var ServerReset = "Server.Reset"
var ServerResize = "Server.Resize"
var ServerSetSpeed = "Server.SetSpeed"
var ServerAdvance = "Server.Advance"
var ServerSave = "Server.Save"
var ServerLoad = "Server.Load"
var ServerBoard = "Server.Board"
var ServerPing = "Server.Ping"

// ServerResponse contains a result from a standard server RPC call
// Success indicates if the call executed its desired function
// Message contains any additional information
type ServerResponse struct {
	Success bool
	Message string
}

// CellRequest names a cell to toggle, X is the column and Y the row
type CellRequest struct {
	X int
	Y int
}

// ResizeRequest asks for a new empty grid of the given size
type ResizeRequest struct {
	Width  int
	Height int
}

// ResizeResponse contains the size the server actually used, after clamping
type ResizeResponse struct {
	Width   int
	Height  int
	Clamped bool
}

// SpeedRequest sets the speed multiplier
type SpeedRequest struct {
	Speed float64
}

// AdvanceRequest asks the server to do a number of turns straight away
type AdvanceRequest struct {
	Turns int
}

// PathRequest names a file on the server to save to or load from
// An empty path on save means a generated timestamped name
type PathRequest struct {
	Path string
}

// BoardResponse is a copy of the server's board
// Alive and Initial are stored row by row
type BoardResponse struct {
	Width      int
	Height     int
	Turn       int
	State      gol.State
	Speed      float64
	Population int
	Alive      *BitBoard
	Initial    *BitBoard
}

// Empty is used when there is no information for an RPC function to return
type Empty struct{}
