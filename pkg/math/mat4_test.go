package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	view := LookAt(Vec3{3, 10, -4}, Vec3{}, Up)
	proj := Perspective(float32(math.Pi/3), 16.0/9.0, 0.1, 500)
	vp := proj.Mul(view)
	result := vp.Mul(vp.Inverse())

	id := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(result[i]-id[i])) > 0.001 {
			t.Errorf("VP * VP^-1 element %d: got %f, want %f", i, result[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestUnproject(t *testing.T) {
	eye := Vec3{0, 10, 0}
	view := LookAt(eye, Vec3{0, 0, 0.001}, Up)
	proj := Perspective(float32(math.Pi/2), 1, 1, 100)
	inv := proj.Mul(view).Inverse()

	near := inv.Unproject(Vec3{0, 0, -1})
	far := inv.Unproject(Vec3{0, 0, 1})
	dir := far.Sub(near).Normalize()

	if !dir.ApproxEqual(Vec3{0, -1, 0}, 0.01) {
		t.Errorf("center ray should point down, got %v", dir)
	}
	if !near.ApproxEqual(Vec3{0, 9, 0}, 0.01) {
		t.Errorf("near point should sit on the near plane, got %v", near)
	}
}
