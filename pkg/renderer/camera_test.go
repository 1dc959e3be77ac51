package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-medium-tracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		Width:    200,
		Height:   100,
		VFov:     90,
	}
}

func TestCameraGenerateRay(t *testing.T) {
	camera, err := NewCamera(testCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	tests := []struct {
		name      string
		x, y      float64
		direction core.Vec3
	}{
		{"center", 100, 50, core.NewVec3(0, 0, -1)},
		// tan(45°) = 1, aspect 2 => the edges span x in [-2, 2] and y in [-1, 1]
		{"top edge", 100, 0, core.NewVec3(0, 1, -1).Normalize()},
		{"bottom edge", 100, 100, core.NewVec3(0, -1, -1).Normalize()},
		{"left edge", 0, 50, core.NewVec3(-2, 0, -1).Normalize()},
		{"top right corner", 200, 0, core.NewVec3(2, 1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GenerateRay(tt.x, tt.y)
			if !ray.Origin.Equals(core.NewVec3(0, 0, 5)) {
				t.Errorf("origin = %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("direction = %v, want %v", ray.Direction, tt.direction)
			}
			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("direction is not unit length: %v", ray.Direction.Length())
			}
		})
	}
}

func TestCameraRotatedView(t *testing.T) {
	config := testCameraConfig()
	config.Position = core.NewVec3(3, 0, 0)
	config.LookAt = core.NewVec3(0, 0, 0)
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	// Looking down -X with Y up, image right is -Z
	ray := camera.GenerateRay(200, 50)
	want := core.NewVec3(-1, 0, -2).Normalize()
	if ray.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("direction = %v, want %v", ray.Direction, want)
	}
}

func TestNewCameraValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"negative height", func(c *CameraConfig) { c.Height = -1 }},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"straight fov", func(c *CameraConfig) { c.VFov = 180 }},
		{"look at self", func(c *CameraConfig) { c.LookAt = c.Position }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)
			if _, err := NewCamera(config); !errors.Is(err, ErrInvalidCamera) {
				t.Errorf("expected ErrInvalidCamera, got %v", err)
			}
		})
	}
}
