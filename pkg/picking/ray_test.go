package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/gtgrass/pkg/math"
)

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 20, Z: 0}
	view := math.LookAt(eye, math.Vec3{X: 0, Y: 0, Z: 0.001}, math.Up)
	proj := math.Perspective(float32(gomath.Pi/3), 800.0/600.0, 0.1, 1000)
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(400, 300, 800, 600, inv)

	if !ray.Direction.ApproxEqual(math.Vec3{X: 0, Y: -1, Z: 0}, 0.01) {
		t.Errorf("center ray direction = %v, want straight down", ray.Direction)
	}
	if l := ray.Direction.Length(); gomath.Abs(float64(l-1)) > 0.001 {
		t.Errorf("direction should be normalized, length %v", l)
	}
}

func TestScaleForHiDPI(t *testing.T) {
	tests := []struct {
		ratio, wantX, wantY float32
	}{
		{1, 100, 50},
		{2, 200, 100},
		{1.5, 150, 75},
	}
	for _, tt := range tests {
		x, y := ScaleForHiDPI(100, 50, tt.ratio)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("ratio %v: ScaleForHiDPI = (%v, %v), want (%v, %v)", tt.ratio, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{"hit from above", Ray{math.Vec3{X: 0, Y: 5, Z: 0}, math.Vec3{X: 0, Y: -1, Z: 0}}, true, 4},
		{"miss beside", Ray{math.Vec3{X: 3, Y: 5, Z: 0}, math.Vec3{X: 0, Y: -1, Z: 0}}, false, 0},
		{"behind origin", Ray{math.Vec3{X: 0, Y: 5, Z: 0}, math.Vec3{X: 0, Y: 1, Z: 0}}, false, 0},
		{"inside returns exit", Ray{math.Vec3{}, math.Vec3{X: 1, Y: 0, Z: 0}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && gomath.Abs(float64(got-tt.wantT)) > 0.0001 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestLayerMask(t *testing.T) {
	mask := LayerBit(0) | LayerBit(4)
	if !mask.Contains(0) || !mask.Contains(4) {
		t.Error("mask should contain layers 0 and 4")
	}
	if mask.Contains(1) || mask.Contains(-1) || mask.Contains(40) {
		t.Error("mask should not contain layers 1, -1 or 40")
	}
	if !AllLayers.Contains(31) {
		t.Error("AllLayers should contain layer 31")
	}
}
