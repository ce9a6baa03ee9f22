package math

import "math"

// Angle conversion multipliers.
const (
	Deg2Rad = float32(math.Pi / 180)
	Rad2Deg = float32(180 / math.Pi)
)

// PolarToCartesian maps a polar offset (angle in degrees, radius) onto the
// plane perpendicular to normal.
//
// Angle zero points along (-n.z, 0, n.x), or along the X axis when the normal
// is vertical and that vector degenerates. Positive angles rotate clockwise
// when looking down the normal.
func PolarToCartesian(angleDeg, radius float32, normal Vec3) Vec3 {
	origin := Right
	if normal != Up {
		if o := (Vec3{-normal.Z, 0, normal.X}).Normalize(); o != (Vec3{}) {
			origin = o
		}
	}
	rotation := AngleAxis(-angleDeg, normal)
	return rotation.Rotate(origin).Scale(radius)
}
