package grass

import (
	"testing"

	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

func slopeWorld() *picking.World {
	w := picking.NewWorld()
	// Plane y = x, tilted 45 degrees.
	w.AddQuad("slope", 0, [4]math.Vec3{
		{X: -5, Y: -5, Z: -5},
		{X: 5, Y: 5, Z: -5},
		{X: 5, Y: 5, Z: 5},
		{X: -5, Y: -5, Z: 5},
	})
	return w
}

func TestProbeTilt(t *testing.T) {
	down := math.Vec3{Y: -1}
	origin := math.Vec3{Y: 10}

	tests := []struct {
		normalLimit float32
		want        bool
	}{
		{0, false},
		{0.1, false},
		{0.2, true},
		{1, true},
	}
	for _, tt := range tests {
		s := NewSampler(slopeWorld(), tt.normalLimit)
		_, ok := s.Probe(origin, down, picking.AllLayers, picking.AllLayers, 100)
		if ok != tt.want {
			t.Errorf("normal limit %v: ok = %v, want %v", tt.normalLimit, ok, tt.want)
		}
	}

	flat := NewSampler(flatWorld(), 0)
	if _, ok := flat.Probe(origin, down, picking.AllLayers, picking.AllLayers, 100); !ok {
		t.Error("flat ground must pass a zero normal limit")
	}
}

func TestProbeMasks(t *testing.T) {
	w := picking.NewWorld()
	w.AddGround("rock", 4, 0, 10)
	s := NewSampler(w, 1)
	down := math.Vec3{Y: -1}
	origin := math.Vec3{Y: 10}

	if _, ok := s.Probe(origin, down, picking.LayerBit(0), picking.AllLayers, 100); ok {
		t.Error("surface mask should exclude layer 4")
	}
	if _, ok := s.Probe(origin, down, picking.AllLayers, picking.LayerBit(0), 100); ok {
		t.Error("paint mask should exclude layer 4")
	}
	if _, ok := s.Probe(origin, down, picking.AllLayers, picking.AllLayers, 5); ok {
		t.Error("hit beyond max distance should fail")
	}
	if hit, ok := s.Cast(picking.Ray{Origin: origin, Direction: down}, picking.AllLayers, 100); !ok || hit.Layer != 4 {
		t.Errorf("Cast = %+v, %v", hit, ok)
	}
}

func TestExpectedDistance(t *testing.T) {
	down := math.Vec3{Y: -1}
	tests := []struct {
		name   string
		offset math.Vec3
		normal math.Vec3
		want   float32
	}{
		{"flat", math.Vec3{X: 0.5}, math.Up, 0.5},
		{"flat diagonal", math.Vec3{X: 0.3, Z: 0.4}, math.Up, 0.5},
		{"slope along offset", math.Vec3{X: 1}, math.Vec3{X: -1, Y: 1}.Normalize(), 1.4142},
	}
	for _, tt := range tests {
		got := expectedDistance(tt.offset, tt.normal, down)
		if d := got - tt.want; d > 1e-3 || d < -1e-3 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAddOnModerateSlope(t *testing.T) {
	s := DefaultSettings()
	p, _ := newTestPainter(t, s, slopeWorld())
	p.Add(downAt(0, 0))
	mustValidate(t, p)
	if p.CellCount() != 1 {
		t.Errorf("got %d cells on a 45 degree slope with full tilt tolerance", p.CellCount())
	}
}
