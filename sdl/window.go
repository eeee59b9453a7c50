package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"uk.ac.bris.cs/lifegrid/gol"
)

// Scale is how many screen pixels wide and high each cell is drawn
const Scale = 24

// Colours of each cell class, as RGBA
var palette = map[gol.Colour][4]byte{
	gol.StableDead:  {0xFF, 0xFF, 0xFF, 0xFF}, // white
	gol.StableAlive: {0x00, 0x00, 0xFF, 0xFF}, // blue
	gol.Dying:       {0xFF, 0x00, 0x00, 0xFF}, // red
	gol.Born:        {0x00, 0xC0, 0x00, 0xFF}, // green
}

// Window draws one texel per cell and lets SDL scale the texture up to the window
type Window struct {
	Width    int32
	Height   int32
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

// NewWindow opens a window for a board of width x height cells
func NewWindow(width, height int32) (*Window, error) {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return nil, fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow("Game of Life", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		width*Scale, height*Scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	w := &Window{window: window, renderer: renderer}
	if err := w.Resize(width, height); err != nil {
		w.Destroy()
		return nil, err
	}
	return w, nil
}

// Resize makes a new texture for a board of a different size and resizes the window to fit
func (w *Window) Resize(width, height int32) error {
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	texture, err := w.renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING, width, height)
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}
	w.texture = texture
	w.Width = width
	w.Height = height
	w.pixels = make([]byte, width*height*4)
	w.window.SetSize(width*Scale, height*Scale)
	return nil
}

// Destroy closes the window and shuts SDL down
func (w *Window) Destroy() {
	if w.texture != nil {
		w.texture.Destroy()
	}
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}

// SetCell colours a single cell
func (w *Window) SetCell(col, row int, colour gol.Colour) {
	if int32(col) >= w.Width || int32(row) >= w.Height {
		return
	}
	rgba := palette[colour]
	copy(w.pixels[4*(int32(row)*w.Width+int32(col)):], rgba[:])
}

// SetFrame colours every cell from a frame stored column by column
func (w *Window) SetFrame(frame []gol.Colour) {
	height := int(w.Height)
	for i, colour := range frame {
		w.SetCell(i/height, i%height, colour)
	}
}

// CellAt converts a point in the window into the cell under it
func (w *Window) CellAt(x, y int32) (col, row int, ok bool) {
	col, row = int(x/Scale), int(y/Scale)
	ok = x >= 0 && y >= 0 && int32(col) < w.Width && int32(row) < w.Height
	return
}

// RenderFrame copies the pixels onto the screen
func (w *Window) RenderFrame() {
	w.texture.Update(nil, w.pixels, int(w.Width)*4)
	w.renderer.Clear()
	w.renderer.Copy(w.texture, nil, nil)
	w.renderer.Present()
}

// PollEvent returns the next SDL event, or nil if there isn't one
func (w *Window) PollEvent() sdl.Event {
	return sdl.PollEvent()
}
