package gol

type keypressChannels struct {
	keyPresses <-chan rune       // An in-channel to receive keypresses
	keyCommand chan<- keyCommand // An out-channel to send key instructions
}

// keyCommand is an instruction from the keyboard for the distributor.
type keyCommand uint8

// This is a way of creating enums in Go.
const (
	startStop keyCommand = iota
	randomise
	balanceCells
	clearGrid
	resetGrid
	save
	load
	faster
	slower
	wider
	narrower
	taller
	shorter
	quit
)

// Keys the renderer should send for the arrow keys
const (
	KeyWider    = '>'
	KeyNarrower = '<'
	KeyTaller   = 'v'
	KeyShorter  = '^'
)

// startKeypress turns raw key presses into commands.
// It closes the command channel once there are no more key presses.
func startKeypress(p Params, c keypressChannels) {
	defer close(c.keyCommand)
	for key := range c.keyPresses {
		// Figure out what the key means
		switch key {
		case ' ':
			c.keyCommand <- startStop
		case 'r':
			c.keyCommand <- randomise
		case 'b':
			c.keyCommand <- balanceCells
		case 'c':
			c.keyCommand <- clearGrid
		case 'x':
			c.keyCommand <- resetGrid
		case 's':
			c.keyCommand <- save
		case 'l':
			c.keyCommand <- load
		case '+', '=':
			c.keyCommand <- faster
		case '-':
			c.keyCommand <- slower
		case KeyWider:
			c.keyCommand <- wider
		case KeyNarrower:
			c.keyCommand <- narrower
		case KeyTaller:
			c.keyCommand <- taller
		case KeyShorter:
			c.keyCommand <- shorter
		case 'q':
			c.keyCommand <- quit
			return
		}
	}
}
