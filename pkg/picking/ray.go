// Package picking provides screen rays and a triangle collision world that
// answers layer-filtered raycasts.
package picking

import (
	"github.com/Faultbox/gtgrass/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top-left,
// viewportW/H are viewport dimensions and invViewProj is the inverse of the
// view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := invViewProj.Unproject(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	farWorld := invViewProj.Unproject(math.Vec3{X: ndcX, Y: ndcY, Z: 1})

	return Ray{Origin: nearWorld, Direction: farWorld.Sub(nearWorld).Normalize()}
}

// ScaleForHiDPI converts a mouse position in logical points into pixel
// coordinates, keeping the top-left origin ScreenToRay expects.
func ScaleForHiDPI(mouseX, mouseY, pixelsPerPoint float32) (x, y float32) {
	return mouseX * pixelsPerPoint, mouseY * pixelsPerPoint
}
