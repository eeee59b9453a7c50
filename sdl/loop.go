package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"uk.ac.bris.cs/lifegrid/gol"
	"uk.ac.bris.cs/lifegrid/util"
)

// Keys we pass on to the engine
var keys = map[sdl.Keycode]rune{
	sdl.K_SPACE:   ' ',
	sdl.K_r:       'r',
	sdl.K_b:       'b',
	sdl.K_c:       'c',
	sdl.K_x:       'x',
	sdl.K_s:       's',
	sdl.K_l:       'l',
	sdl.K_q:       'q',
	sdl.K_EQUALS:  '+',
	sdl.K_KP_PLUS: '+',
	sdl.K_MINUS:   '-',
	sdl.K_RIGHT:   gol.KeyWider,
	sdl.K_LEFT:    gol.KeyNarrower,
	sdl.K_DOWN:    gol.KeyTaller,
	sdl.K_UP:      gol.KeyShorter,
}

// send passes input on without blocking, the engine might be busy mid-operation and draining
// events is what lets it finish
func send[T any](c chan<- T, v T) {
	select {
	case c <- v:
	default:
		fmt.Println("Busy, input dropped")
	}
}

// Run draws the board until the events channel is closed.
// It must be called from the main goroutine.
func Run(p gol.Params, events <-chan gol.Event, keyPresses chan<- rune, clicks chan<- util.Cell) error {
	w, err := NewWindow(int32(max(p.Width, 1)), int32(max(p.Height, 1)))
	if err != nil {
		return err
	}
	defer w.Destroy()

	// Quit can't be dropped, so keep trying to send it until it goes through
	quitPending, quitSent := false, false
	for {
		if quitPending && !quitSent {
			select {
			case keyPresses <- 'q':
				quitSent = true
			default:
			}
		}

		if event := w.PollEvent(); event != nil {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				quitPending = true
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				if key, ok := keys[e.Keysym.Sym]; ok {
					if key == 'q' {
						quitPending = true
					} else {
						send(keyPresses, key)
					}
				}
			case *sdl.MouseButtonEvent:
				if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
					if col, row, ok := w.CellAt(e.X, e.Y); ok {
						send(clicks, util.Cell{X: col, Y: row})
					}
				}
			}
		}

		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			switch e := event.(type) {
			case gol.CellChanged:
				w.SetCell(e.Change.Col, e.Change.Row, e.Change.Colour)
			case gol.TurnComplete:
				if e.Width != int(w.Width) || e.Height != int(w.Height) {
					if err := w.Resize(int32(e.Width), int32(e.Height)); err != nil {
						return err
					}
				}
				w.SetFrame(e.Frame)
				w.RenderFrame()
			case gol.AliveCellsCount:
				fmt.Printf("Completed Turns %-8v%v\n", e.CompletedTurns, e)
			default:
				if len(event.String()) > 0 {
					fmt.Printf("Completed Turns %-8v%v\n", event.GetCompletedTurns(), event)
				}
			}
		default:
			sdl.Delay(1)
		}
	}
}
