package vm

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// spriteWidth is the fixed width of a sprite row in pixels.
const spriteWidth = 8

// Framebuffer is the 64x32 monochrome display memory. Pixels are stored row
// major and drawn with XOR semantics.
type Framebuffer struct {
	pixels [Width * Height]bool
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.pixels = [Width * Height]bool{}
}

// Pixel returns whether the pixel at the given position is set. Coordinates
// outside of the display wrap around.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[index(x, y)]
}

// Lit returns the number of set pixels.
func (f *Framebuffer) Lit() int {
	count := 0
	for _, on := range f.pixels {
		if on {
			count++
		}
	}
	return count
}

// Draw XORs an 8 pixel wide sprite into the framebuffer with its top left
// corner at x, y. The start position is wrapped into the display and every
// pixel of the sprite wraps around the edges independently. It returns true
// if any pixel was turned off by this draw.
func (f *Framebuffer) Draw(x, y uint8, sprite []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height
	collision := false

	for row, bits := range sprite {
		for col := range spriteWidth {
			if bits&(0x80>>col) == 0 {
				continue
			}

			i := index(originX+col, originY+row)
			if f.pixels[i] {
				collision = true
			}
			f.pixels[i] = !f.pixels[i]
		}
	}

	return collision
}

func index(x, y int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	y %= Height
	if y < 0 {
		y += Height
	}
	return y*Width + x
}
