package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-medium-tracer/pkg/core"
)

// OutputBuffer holds linear, unclamped colors for a fixed-size image.
// Distinct rows may be written concurrently.
type OutputBuffer struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewOutputBuffer creates a black buffer of the given size
func NewOutputBuffer(width, height int) *OutputBuffer {
	return &OutputBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (b *OutputBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *OutputBuffer) Height() int { return b.height }

// Set stores the color of pixel (x, y); (0, 0) is the top-left corner
func (b *OutputBuffer) Set(x, y int, c core.Vec3) {
	b.pixels[y*b.width+x] = c
}

// At returns the color of pixel (x, y)
func (b *OutputBuffer) At(x, y int) core.Vec3 {
	return b.pixels[y*b.width+x]
}

// Row returns row y. The slice aliases the buffer.
func (b *OutputBuffer) Row(y int) []core.Vec3 {
	return b.pixels[y*b.width : (y+1)*b.width]
}

// Pixels returns every pixel in row-major order. The slice aliases the buffer.
func (b *OutputBuffer) Pixels() []core.Vec3 {
	return b.pixels
}

// ToRGBA clamps every color to [0, 1], applies gamma correction and
// quantizes to 8 bits per channel
func (b *OutputBuffer) ToRGBA(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x, c := range b.Row(y) {
			c = c.Clamp(0, 1).GammaCorrect(gamma)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255.999 * c.X),
				G: uint8(255.999 * c.Y),
				B: uint8(255.999 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
