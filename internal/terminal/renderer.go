package terminal

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

const escHome = "\x1b[H"

// half block glyphs, indexed by top pixel | bottom pixel<<1.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// Pixels is a source of pixel states.
type Pixels interface {
	Pixel(x, y int) bool
}

// Renderer converts framebuffers into terminal output.
type Renderer struct {
	scale int
	on    string
	off   string
}

// NewRenderer returns a renderer that repeats every pixel column scale
// times. Without configured glyphs, two pixel rows are combined into one
// terminal line using half block characters.
func NewRenderer(scale int, display options.Display) *Renderer {
	return &Renderer{
		scale: options.ClampScale(scale),
		on:    display.On,
		off:   display.Off,
	}
}

// Frame returns the output that draws a complete frame starting at the
// top left corner of the terminal.
func (r *Renderer) Frame(pixels Pixels) string {
	var sb strings.Builder
	sb.WriteString(escHome)

	if r.on == "" {
		r.halfBlockFrame(&sb, pixels)
	} else {
		r.glyphFrame(&sb, pixels)
	}
	return sb.String()
}

func (r *Renderer) halfBlockFrame(sb *strings.Builder, pixels Pixels) {
	for row := range vm.Height / 2 {
		if row > 0 {
			sb.WriteString("\r\n")
		}
		for x := range vm.Width {
			idx := 0
			if pixels.Pixel(x, 2*row) {
				idx |= 1
			}
			if pixels.Pixel(x, 2*row+1) {
				idx |= 2
			}
			sb.WriteString(strings.Repeat(halfBlocks[idx], r.scale))
		}
	}
}

func (r *Renderer) glyphFrame(sb *strings.Builder, pixels Pixels) {
	on := strings.Repeat(r.on, r.scale)
	off := strings.Repeat(r.off, r.scale)

	for y := range vm.Height {
		if y > 0 {
			sb.WriteString("\r\n")
		}
		for x := range vm.Width {
			if pixels.Pixel(x, y) {
				sb.WriteString(on)
			} else {
				sb.WriteString(off)
			}
		}
	}
}
