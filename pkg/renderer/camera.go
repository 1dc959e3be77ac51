package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/scene"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Up direction (usually 0,1,0)
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
	VFov     float64   // Vertical field of view in degrees
}

// CameraConfigFromView sizes the preferred view of a scene to an image
func CameraConfigFromView(view scene.View, width, height int) CameraConfig {
	return CameraConfig{
		Position: view.Position,
		LookAt:   view.LookAt,
		Up:       view.Up,
		Width:    width,
		Height:   height,
		VFov:     view.VFov,
	}
}

// Camera is a pinhole camera generating rays through continuous pixel coordinates
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	forward    core.Vec3
	horizontal core.Vec3 // Spans half the image width
	vertical   core.Vec3 // Spans half the image height
}

// NewCamera creates a camera with the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrInvalidCamera, config.Width, config.Height)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("%w: vertical field of view %v", ErrInvalidCamera, config.VFov)
	}
	forward := config.LookAt.Subtract(config.Position)
	if forward.Length() == 0 || forward.Cross(config.Up).Length() == 0 {
		return nil, fmt.Errorf("%w: degenerate orientation", ErrInvalidCamera)
	}

	view := mgl64.LookAtV(toMgl(config.Position), toMgl(config.LookAt), toMgl(config.Up))
	right := fromMgl(view.Row(0).Vec3())
	up := fromMgl(view.Row(1).Vec3())
	back := fromMgl(view.Row(2).Vec3())

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	halfWidth := halfHeight * float64(config.Width) / float64(config.Height)

	return &Camera{
		config:     config,
		origin:     config.Position,
		forward:    back.Negate(),
		horizontal: right.Multiply(halfWidth),
		vertical:   up.Multiply(halfHeight),
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GenerateRay returns the unit ray through image position (x, y), where (0, 0)
// is the top-left corner of the image and (Width, Height) the bottom-right.
// Pixel (i, j) is centered at (i+0.5, j+0.5).
func (c *Camera) GenerateRay(x, y float64) core.Ray {
	s := 2*x/float64(c.config.Width) - 1
	t := 1 - 2*y/float64(c.config.Height)

	direction := c.forward.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Normalize()

	return core.NewRay(c.origin, direction)
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
