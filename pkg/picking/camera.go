package picking

import (
	gomath "math"

	"github.com/Faultbox/gtgrass/pkg/math"
)

// OrbitCamera orbits around a center point and turns screen positions into
// brush rays.
type OrbitCamera struct {
	Center   math.Vec3 `yaml:"center"`
	Distance float32   `yaml:"distance"`
	Pitch    float32   `yaml:"pitch"` // radians above the horizon
	Yaw      float32   `yaml:"yaw"`   // radians around the up axis
	FovY     float32   `yaml:"fov"`   // degrees
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
}

// NewOrbitCamera creates a camera looking down at center from distance.
func NewOrbitCamera(center math.Vec3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Center:   center,
		Distance: distance,
		Pitch:    0.9,
		FovY:     60,
		Near:     0.1,
		Far:      1000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	offset := math.Vec3{
		X: c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		Y: c.Distance * float32(gomath.Sin(pitch)),
		Z: c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Center.Add(offset)
}

// ViewProj returns the combined view-projection matrix.
func (c *OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	proj := math.Perspective(c.FovY*math.Deg2Rad, aspect, c.Near, c.Far)
	view := math.LookAt(c.Position(), c.Center, math.Up)
	return proj.Mul(view)
}

// Ray returns the world ray through a screen position in a viewport of the
// given size.
func (c *OrbitCamera) Ray(screenX, screenY, viewportW, viewportH float32) Ray {
	inv := c.ViewProj(viewportW / viewportH).Inverse()
	return ScreenToRay(screenX, screenY, viewportW, viewportH, inv)
}

// HandleDrag rotates the camera by a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY, sensitivity float32) {
	c.Yaw -= deltaX * sensitivity
	c.Pitch += deltaY * sensitivity
	c.Pitch = min(max(c.Pitch, 0.05), 1.55)
}
