package grass

import (
	"testing"

	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

func TestAddSingleCell(t *testing.T) {
	p, sink := newTestPainter(t, DefaultSettings(), flatWorld())

	p.Add(downAt(3, 3))
	mustValidate(t, p)

	if p.VertexCount() != 7 || p.TriangleCount() != 6 || p.CellCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles, %d cells; want 7, 6, 1",
			p.VertexCount(), p.TriangleCount(), p.CellCount())
	}
	if sink.calls != 1 || sink.vertices != 7 || sink.indices != 18 {
		t.Errorf("sink got %d calls with %d vertices and %d indices", sink.calls, sink.vertices, sink.indices)
	}

	wantTris := []Triangle{{0, 2, 1}, {0, 3, 2}, {0, 4, 3}, {0, 5, 4}, {0, 6, 5}, {0, 1, 6}}
	for i, want := range wantTris {
		if got := p.buf.Triangles[i]; got != want {
			t.Errorf("triangle %d = %v, want %v", i, got, want)
		}
	}

	cell := p.cells[0]
	if !cell.Position.ApproxEqual(math.Vec3{X: 3, Y: 0, Z: 3}, 1e-4) {
		t.Errorf("cell position = %v", cell.Position)
	}
	if got := len(cell.Center().Triangles); got != 6 {
		t.Errorf("center owns %d triangles, want 6", got)
	}
	for j, v := range cell.Vertices[1:] {
		if len(v.Triangles) != 2 {
			t.Errorf("perimeter vertex %d owns %v, want two triangles", j+1, v.Triangles)
		}
		if d := v.Position.Distance(cell.Position); d < 0.49 || d > 0.51 {
			t.Errorf("perimeter vertex %d at distance %v from center, want 0.5", j+1, d)
		}
	}

	s := p.Settings()
	for i := range p.buf.Positions {
		if p.buf.Colors[i] != s.Color {
			t.Errorf("vertex %d color = %v, want base %v with zero range", i, p.buf.Colors[i], s.Color)
		}
		if p.buf.Sizes[i] != (math.Vec2{X: s.Width, Y: s.Length}) {
			t.Errorf("vertex %d size = %v", i, p.buf.Sizes[i])
		}
		if !p.buf.Normals[i].ApproxEqual(math.Up, 1e-4) {
			t.Errorf("vertex %d normal = %v", i, p.buf.Normals[i])
		}
	}
}

func TestAddRelativeToOrigin(t *testing.T) {
	s := DefaultSettings()
	s.Origin = math.Vec3{X: 1, Y: 2, Z: 3}
	p, _ := newTestPainter(t, s, flatWorld())

	p.Add(downAt(4, 4))
	mustValidate(t, p)

	if !p.cells[0].Position.ApproxEqual(math.Vec3{X: 3, Y: -2, Z: 1}, 1e-4) {
		t.Errorf("cell position = %v, want hit minus origin", p.cells[0].Position)
	}
}

func TestAddMissesEmptySpace(t *testing.T) {
	p, _ := newTestPainter(t, DefaultSettings(), flatWorld())
	p.Add(downAt(100, 100))
	if p.VertexCount() != 0 {
		t.Errorf("painted %d vertices off the ground", p.VertexCount())
	}
}

func TestAddThrottle(t *testing.T) {
	p, _ := newTestPainter(t, DefaultSettings(), flatWorld())

	p.Add(downAt(0, 0))
	p.Add(downAt(0.5, 0))
	if p.CellCount() != 1 {
		t.Fatalf("stroke within 0.6 of the last cell should be throttled, got %d cells", p.CellCount())
	}
	p.Add(downAt(2, 0))
	if p.CellCount() != 2 {
		t.Fatalf("stroke beyond the throttle distance should paint, got %d cells", p.CellCount())
	}
	mustValidate(t, p)
}

func TestThrottleBoundary(t *testing.T) {
	p, _ := newTestPainter(t, DefaultSettings(), flatWorld())
	if p.throttled(math.Vec3{}, 1.5) {
		t.Fatal("nothing placed yet, nothing to throttle")
	}

	p.lastPlaced = math.Vec3{X: 1, Y: 2, Z: 3}
	p.hasPlaced = true
	tests := []struct {
		name   string
		center math.Vec3
		want   bool
	}{
		{"same spot", math.Vec3{X: 1, Y: 2, Z: 3}, true},
		{"inside", math.Vec3{X: 2, Y: 2, Z: 3}, true},
		{"exactly at min travel", math.Vec3{X: 2.5, Y: 2, Z: 3}, true},
		{"beyond", math.Vec3{X: 2.75, Y: 2, Z: 3}, false},
	}
	for _, tt := range tests {
		if got := p.throttled(tt.center, 1.5); got != tt.want {
			t.Errorf("%s: throttled = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAddDensity(t *testing.T) {
	for density := MinDensity; density <= MaxDensity; density++ {
		s := DefaultSettings()
		s.Density = density
		p, _ := newTestPainter(t, s, flatWorld())

		p.Add(downAt(0, 0))
		mustValidate(t, p)
		if p.CellCount() != density {
			t.Errorf("density %d: got %d cells", density, p.CellCount())
		}
		if p.VertexCount() != 7*p.CellCount() {
			t.Errorf("density %d: %d vertices for %d cells", density, p.VertexCount(), p.CellCount())
		}
	}
}

func TestGrassLimit(t *testing.T) {
	tests := []struct {
		limit     int
		wantCells int
	}{
		{7, 1},
		{13, 1},
		{14, 2},
		{100, 3},
	}
	for _, tt := range tests {
		s := DefaultSettings()
		s.GrassLimit = tt.limit
		p, _ := newTestPainter(t, s, flatWorld())

		p.Add(downAt(0, 0))
		p.Add(downAt(5, 0))
		p.Add(downAt(10, 0))
		mustValidate(t, p)
		if p.CellCount() != tt.wantCells {
			t.Errorf("limit %d: got %d cells, want %d", tt.limit, p.CellCount(), tt.wantCells)
		}
		if p.VertexCount() > tt.limit {
			t.Errorf("limit %d exceeded: %d vertices", tt.limit, p.VertexCount())
		}
	}
}

func TestAddRejectsRoughSurface(t *testing.T) {
	w := flatWorld()
	w.AddQuad("ledge", 0, [4]math.Vec3{
		{X: 0.4, Y: 3, Z: -5},
		{X: 5, Y: 3, Z: -5},
		{X: 5, Y: 3, Z: 5},
		{X: 0.4, Y: 3, Z: 5},
	})
	p, _ := newTestPainter(t, DefaultSettings(), w)

	p.Add(downAt(0, 0))
	if p.CellCount() != 0 {
		t.Errorf("cell straddling a ledge should be rejected, got %d cells", p.CellCount())
	}
}

func TestAddRespectsPaintMask(t *testing.T) {
	w := picking.NewWorld()
	w.AddGround("rock", 2, 0, 50)

	s := DefaultSettings()
	s.HitMask = picking.AllLayers
	s.PaintMask = picking.LayerBit(0)
	p, _ := newTestPainter(t, s, w)

	p.Add(downAt(0, 0))
	if p.CellCount() != 0 {
		t.Errorf("painted %d cells on an unpaintable layer", p.CellCount())
	}

	s.PaintMask = picking.LayerBit(2)
	if err := p.SetSettings(s); err != nil {
		t.Fatal(err)
	}
	p.Add(downAt(0, 0))
	if p.CellCount() != 1 {
		t.Errorf("got %d cells after allowing layer 2", p.CellCount())
	}
}

func TestStrokeDispatchAndSink(t *testing.T) {
	p, sink := newTestPainter(t, DefaultSettings(), flatWorld())

	p.Stroke(ModeAdd, downAt(0, 0))
	p.Stroke(ModeEdit, downAt(0, 0))
	p.Stroke(ModeRemove, downAt(0, 0))

	if sink.calls != 3 {
		t.Errorf("sink called %d times, want once per stroke", sink.calls)
	}
	if p.VertexCount() != 0 || sink.vertices != 0 {
		t.Errorf("remove at the center left %d vertices", p.VertexCount())
	}
}

func TestClear(t *testing.T) {
	p, sink := newTestPainter(t, DefaultSettings(), flatWorld())
	p.Add(downAt(0, 0))
	p.Add(downAt(5, 5))

	p.Clear()
	mustValidate(t, p)
	if p.VertexCount() != 0 || p.TriangleCount() != 0 || p.CellCount() != 0 {
		t.Errorf("Clear left %d/%d/%d", p.VertexCount(), p.TriangleCount(), p.CellCount())
	}
	if sink.vertices != 0 {
		t.Errorf("sink still holds %d vertices", sink.vertices)
	}

	// The throttle resets with the mesh.
	p.Add(downAt(5, 5))
	if p.CellCount() != 1 {
		t.Errorf("add after Clear placed %d cells", p.CellCount())
	}
}

func TestBrushHit(t *testing.T) {
	p, _ := newTestPainter(t, DefaultSettings(), flatWorld())

	hit, ok := p.BrushHit(downAt(1, 2))
	if !ok || !hit.Point.ApproxEqual(math.Vec3{X: 1, Y: 0, Z: 2}, 1e-4) {
		t.Errorf("BrushHit = %+v, %v", hit, ok)
	}
	if _, ok := p.BrushHit(downAt(80, 0)); ok {
		t.Error("BrushHit outside the world should miss")
	}
}

func TestRandomStrokesKeepInvariants(t *testing.T) {
	p, _ := newTestPainter(t, DefaultSettings(), flatWorld())
	p.SetRand(NewRand(3))
	driver := NewRand(11)

	modes := []Mode{ModeAdd, ModeAdd, ModeRemove, ModeEdit}
	for i := 0; i < 300; i++ {
		s := p.Settings()
		s.Density = 1 + int(driver.Float32()*MaxDensity)
		s.BrushSize = driver.Range(0.3, 2)
		s.ColorRange = ColorRange{R: 0.2, G: 0.2, B: 0.2}
		if err := p.SetSettings(s); err != nil {
			t.Fatal(err)
		}
		mode := modes[int(driver.Float32()*float32(len(modes)))]
		p.Stroke(mode, downAt(driver.Range(-8, 8), driver.Range(-8, 8)))
		if err := p.Validate(); err != nil {
			t.Fatalf("step %d (%s): %v", i, mode, err)
		}
		if p.VertexCount() > s.GrassLimit {
			t.Fatalf("step %d: %d vertices over limit", i, p.VertexCount())
		}
	}
}
