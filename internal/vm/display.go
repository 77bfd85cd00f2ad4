package vm

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome frame buffer, stored row-major.
type Display struct {
	pixels [DisplayWidth * DisplayHeight]bool
}

// Width returns the display width in pixels.
func (d *Display) Width() int {
	return DisplayWidth
}

// Height returns the display height in pixels.
func (d *Display) Height() int {
	return DisplayHeight
}

// Pixel returns whether the pixel at the given position is on.
// Coordinates wrap around the display edges.
func (d *Display) Pixel(x, y int) bool {
	x = wrap(x, DisplayWidth)
	y = wrap(y, DisplayHeight)
	return d.pixels[x+DisplayWidth*y]
}

// Pixels returns a row-major copy of the frame buffer.
func (d *Display) Pixels() []bool {
	pixels := make([]bool, len(d.pixels))
	copy(pixels, d.pixels[:])
	return pixels
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	var lit int
	for _, on := range d.pixels {
		if on {
			lit++
		}
	}
	return lit
}

func (d *Display) reset() {
	d.pixels = [DisplayWidth * DisplayHeight]bool{}
}

// drawRow XORs the 8 pixels of a sprite row onto the display, the most
// significant bit being the leftmost pixel. It returns whether any pixel
// was switched from on to off.
func (d *Display) drawRow(x, y int, row byte) bool {
	var collision bool
	y = wrap(y, DisplayHeight)

	for bit := range 8 {
		if row&(0x80>>bit) == 0 {
			continue
		}

		idx := wrap(x+bit, DisplayWidth) + DisplayWidth*y
		if d.pixels[idx] {
			collision = true
		}
		d.pixels[idx] = !d.pixels[idx]
	}
	return collision
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
