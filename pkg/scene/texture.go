package scene

import (
	"github.com/df07/go-medium-tracer/pkg/core"
)

// Texture provides color from a 2D image of linear colors
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a new image texture
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewCheckerTexture creates a size×size checkerboard alternating between a and b
func NewCheckerTexture(size int, a, b core.Vec3) *Texture {
	pixels := make([]core.Vec3, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				pixels[y*size+x] = a
			} else {
				pixels[y*size+x] = b
			}
		}
	}
	return NewTexture(size, size, pixels)
}

// valid reports whether the pixel slice matches the declared size
func (t *Texture) valid() bool {
	return t != nil && t.Width > 0 && t.Height > 0 && len(t.Pixels) == t.Width*t.Height
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *Texture) Evaluate(uv core.Vec2) core.Vec3 {
	// Wrap UV coordinates to [0, 1]
	u := uv.X - float64(int(uv.X))
	v := uv.Y - float64(int(uv.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	x = max(0, min(x, t.Width-1))
	y = max(0, min(y, t.Height-1))

	return t.Pixels[y*t.Width+x]
}
