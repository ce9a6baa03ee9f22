package grass

import (
	"reflect"
	"slices"
	"testing"

	"github.com/Faultbox/gtgrass/pkg/math"
)

func TestEditRecolorsWithinBand(t *testing.T) {
	p, _ := newTestPainter(t, DefaultSettings(), flatWorld())
	p.SetRand(NewRand(1))
	p.Add(downAt(0, 0))
	p.Add(downAt(5, 0))
	before := p.Snapshot()

	s := p.Settings()
	s.Color = Color{R: 0.2, G: 0.5, B: 0.1, A: 1}
	s.ColorRange = ColorRange{R: 0.1, G: 0.2, B: 0.3}
	s.Width = 0.05
	s.Length = 2
	if err := p.SetSettings(s); err != nil {
		t.Fatal(err)
	}
	p.Edit(downAt(0, 0))
	mustValidate(t, p)

	within := func(v, lo, span float32) bool { return v >= lo && v <= lo+span }
	for i := 0; i < 7; i++ {
		c := p.buf.Colors[i]
		if !within(c.R, 0.2, 0.1) || !within(c.G, 0.5, 0.2) || !within(c.B, 0.1, 0.3) || c.A != 1 {
			t.Errorf("vertex %d color %v outside band", i, c)
		}
		if p.buf.Sizes[i] != (math.Vec2{X: 0.05, Y: 2}) {
			t.Errorf("vertex %d size = %v", i, p.buf.Sizes[i])
		}
	}
	// The far cell is outside the brush.
	for i := 7; i < 14; i++ {
		if p.buf.Colors[i] != before.Mesh.Colors[i] || p.buf.Sizes[i] != before.Mesh.Sizes[i] {
			t.Errorf("vertex %d outside the brush was edited", i)
		}
	}

	if !slices.Equal(p.buf.Triangles, before.Mesh.Triangles) || !slices.Equal(p.buf.Positions, before.Mesh.Positions) {
		t.Error("Edit changed positions or triangles")
	}
	if !reflect.DeepEqual(p.cells, before.Cells) {
		t.Error("Edit changed the cell list")
	}
}

func TestEditDeterministicUnderReseed(t *testing.T) {
	s := DefaultSettings()
	s.ColorRange = ColorRange{R: 0.5, G: 0.5, B: 0.5}
	p, _ := newTestPainter(t, s, flatWorld())
	p.Add(downAt(0, 0))

	p.SetRand(NewRand(42))
	p.Edit(downAt(0, 0))
	first := slices.Clone(p.buf.Colors)

	p.SetRand(NewRand(7))
	p.Edit(downAt(0, 0))

	p.SetRand(NewRand(42))
	p.Edit(downAt(0, 0))
	if !slices.Equal(p.buf.Colors, first) {
		t.Errorf("reseeded edit gave %v, want %v", p.buf.Colors, first)
	}
}

func TestEditDoesNotAccumulate(t *testing.T) {
	s := DefaultSettings()
	s.Color = Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
	s.ColorRange = ColorRange{R: 0.1, G: 0.1, B: 0.1}
	p, _ := newTestPainter(t, s, flatWorld())
	p.SetRand(fixedRand{v: 0.99})
	p.Add(downAt(0, 0))

	for i := 0; i < 20; i++ {
		p.Edit(downAt(0, 0))
	}
	for i, c := range p.buf.Colors {
		if c.R > 0.2 || c.G > 0.2 || c.B > 0.2 {
			t.Errorf("vertex %d color drifted to %v", i, c)
		}
	}
}
