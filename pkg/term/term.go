// Package term implements a terminal frontend using termbox.
package term

import (
	"fmt"
	"time"
	"unicode"

	"github.com/mnafees/chopper/internal"
	"github.com/nsf/termbox-go"
)

// keyHoldTime is how long a key counts as pressed after a key event.
// Terminals report no key releases, only repeated presses.
const keyHoldTime = 200 * time.Millisecond

// Terminal draws the framebuffer as character cells, two cells per pixel
// to roughly keep the aspect ratio.
type Terminal struct {
	events  chan termbox.Event
	done    chan struct{}
	stopped chan struct{} // closed when readEvents returns

	holdPolls int
	held      [internal.NumKeys]int // remaining polls until release
}

// New returns a terminal frontend polled cycleHz times per second.
func New(cycleHz int) *Terminal {
	hold := int(time.Duration(cycleHz) * keyHoldTime / time.Second)
	return &Terminal{
		holdPolls: max(hold, 1),
	}
}

// Init takes over the terminal and starts reading input events.
func (t *Terminal) Init() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)

	t.events = make(chan termbox.Event)
	t.done = make(chan struct{})
	t.stopped = make(chan struct{})
	go t.readEvents()
	return nil
}

// Close stops the input reader and restores the terminal.
func (t *Terminal) Close() {
	t.stopReader(termbox.Interrupt)
	termbox.Close()
}

// stopReader signals readEvents to exit, wakes it with interrupt and waits
// until it has returned.
func (t *Terminal) stopReader(interrupt func()) {
	if t.done == nil {
		return
	}
	close(t.done)
	interrupt()
	<-t.stopped
	t.done = nil
}

func (t *Terminal) readEvents() {
	t.pollEvents(termbox.PollEvent)
}

func (t *Terminal) pollEvents(poll func() termbox.Event) {
	defer close(t.stopped)
	for {
		ev := poll()
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// PollInput applies all queued key events to the keypad. Esc quits.
func (t *Terminal) PollInput(keys *internal.Keypad) bool {
	t.expireKeys(keys)

	for {
		select {
		case ev := <-t.events:
			if t.handleEvent(ev, keys) {
				return true
			}
		default:
			return false
		}
	}
}

func (t *Terminal) handleEvent(ev termbox.Event, keys *internal.Keypad) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
		return true
	}

	key, ok := keymap[unicode.ToLower(ev.Ch)]
	if !ok {
		return false
	}
	keys.Press(key)
	t.held[key] = t.holdPolls
	return false
}

func (t *Terminal) expireKeys(keys *internal.Keypad) {
	for key, left := range t.held {
		if left == 0 {
			continue
		}
		t.held[key] = left - 1
		if left == 1 {
			keys.Release(uint8(key))
		}
	}
}

// Present redraws the whole screen.
func (t *Terminal) Present(fb *internal.Framebuffer) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	for y := range internal.ScreenHeight {
		for x := range internal.ScreenWidth {
			if fb.At(x, y) {
				termbox.SetCell(2*x, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
				termbox.SetCell(2*x+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			}
		}
	}
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Same layout as the SDL frontend:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keymap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}
