// Package sdl implements the window and keyboard frontend using SDL2.
package sdl

import (
	"fmt"

	"github.com/mnafees/chopper/internal"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	pixelSize int32
}

// NewIO returns a new I/O instance for the SDL frontend, drawing every
// CHIP-8 pixel as a square of scale window pixels.
func NewIO(scale int) *IO {
	return &IO{
		pixelSize: int32(max(scale, 1)),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window

	io.surface, err = window.GetSurface()
	if err != nil {
		io.Destroy()
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		io.Destroy()
		return fmt.Errorf("clearing window: %w", err)
	}
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		io.window.Destroy()
		io.window = nil
	}
	sdl.Quit()
}

// PollInput drains the SDL event queue into the keypad.
func (io *IO) PollInput(keys *internal.Keypad) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			key, ok := keymap[t.Keysym.Scancode]
			if !ok {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				keys.Press(key)
			case sdl.KEYUP:
				keys.Release(key)
			}
		case *sdl.QuitEvent:
			quit = true
		}
	}
	return quit
}

// Present draws the framebuffer to the window.
func (io *IO) Present(fb *internal.Framebuffer) error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("clearing window: %w", err)
	}

	for _, rect := range spriteRects(fb, io.pixelSize) {
		if err := io.surface.FillRect(&rect, spriteColor); err != nil {
			return fmt.Errorf("drawing pixel: %w", err)
		}
	}

	if err := io.window.UpdateSurface(); err != nil {
		return fmt.Errorf("updating window: %w", err)
	}
	return nil
}

// spriteRects returns the window rectangles of all lit pixels.
func spriteRects(fb *internal.Framebuffer, pixelSize int32) []sdl.Rect {
	var rects []sdl.Rect
	for y := range internal.ScreenHeight {
		for x := range internal.ScreenWidth {
			if !fb.At(x, y) {
				continue
			}
			rects = append(rects, sdl.Rect{
				X: int32(x) * pixelSize,
				Y: int32(y) * pixelSize,
				W: pixelSize,
				H: pixelSize,
			})
		}
	}
	return rects
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
var keymap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_V: 0xF,
}
