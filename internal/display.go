package internal

// Display constants
const (
	ScreenWidth  = 64
	ScreenHeight = 32

	PixelOff uint32 = 0x00000000
	PixelOn  uint32 = 0xFFFFFFFF
)

// Framebuffer is the 64 px x 32 px monochrome display, stored row by row
// with one 32-bit word per pixel so it can be copied straight into an RGBA
// surface.
type Framebuffer [ScreenWidth * ScreenHeight]uint32

// At returns whether the pixel at column x, row y is lit
func (fb *Framebuffer) At(x, y int) bool {
	return fb[y*ScreenWidth+x] == PixelOn
}

// Set lights or clears the pixel at column x, row y
func (fb *Framebuffer) Set(x, y int, on bool) {
	if on {
		fb[y*ScreenWidth+x] = PixelOn
	} else {
		fb[y*ScreenWidth+x] = PixelOff
	}
}

// Clear resets all pixels to off
func (fb *Framebuffer) Clear() {
	for i := range fb {
		fb[i] = PixelOff
	}
}

// Fill sets all pixels to on
func (fb *Framebuffer) Fill() {
	for i := range fb {
		fb[i] = PixelOn
	}
}

// drawSprite XORs an 8 pixel wide sprite of len(sprite) rows onto the
// display. Only the anchor wraps around the screen edges, sprite pixels that
// fall beyond the right or bottom edge are clipped. Returns whether a lit
// pixel was turned off.
func (fb *Framebuffer) drawSprite(x, y uint8, sprite []uint8) bool {
	originX := int(x) % ScreenWidth
	originY := int(y) % ScreenHeight
	collision := false

	for row, spriteByte := range sprite {
		py := originY + row
		if py >= ScreenHeight {
			break
		}
		for col := 0; col < 8; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			px := originX + col
			if px >= ScreenWidth {
				break
			}
			idx := py*ScreenWidth + px
			if fb[idx] == PixelOn {
				collision = true
			}
			fb[idx] ^= PixelOn
		}
	}
	return collision
}
