package math

import (
	"math"
	"testing"
)

func TestPolarToCartesianUp(t *testing.T) {
	tests := []struct {
		angle float32
		want  Vec3
	}{
		{0, Vec3{2, 0, 0}},
		{90, Vec3{0, 0, 2}},
		{180, Vec3{-2, 0, 0}},
		{270, Vec3{0, 0, -2}},
		{-90, Vec3{0, 0, -2}},
	}

	for _, tt := range tests {
		got := PolarToCartesian(tt.angle, 2, Up)
		if !got.ApproxEqual(tt.want, 0.0001) {
			t.Errorf("PolarToCartesian(%v, 2, up) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}

func TestPolarToCartesianPerpendicular(t *testing.T) {
	normals := []Vec3{
		Vec3{0.3, 0.9, 0.1}.Normalize(),
		Vec3{1, 0, 0},
		Vec3{0, 0, -1},
		Vec3{0, -1, 0},
		Vec3{-0.5, 0.5, 0.7}.Normalize(),
	}

	for _, n := range normals {
		for angle := float32(0); angle < 360; angle += 60 {
			p := PolarToCartesian(angle, 1.5, n)
			if d := p.Dot(n); math.Abs(float64(d)) > 0.0001 {
				t.Errorf("offset %v not perpendicular to %v (dot %v)", p, n, d)
			}
			if l := p.Length(); math.Abs(float64(l-1.5)) > 0.0001 {
				t.Errorf("offset length %v, want 1.5", l)
			}
		}
	}
}

func TestPolarToCartesianHexagon(t *testing.T) {
	// Six points at 60° steps form a regular hexagon: neighbours are radius apart.
	n := Vec3{0.2, 1, -0.1}.Normalize()
	var pts []Vec3
	for j := 0; j < 6; j++ {
		pts = append(pts, PolarToCartesian(float32(60*j), 1, n))
	}
	for j := range pts {
		d := pts[j].Distance(pts[(j+1)%len(pts)])
		if math.Abs(float64(d-1)) > 0.0001 {
			t.Errorf("edge %d length %v, want 1", j, d)
		}
	}
}
