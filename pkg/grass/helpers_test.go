package grass

import (
	"testing"

	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// fixedRand returns the same fraction every time.
type fixedRand struct{ v float32 }

func (f fixedRand) Float32() float32               { return f.v }
func (f fixedRand) Range(min, max float32) float32 { return min + f.v*(max-min) }

// recordingSink remembers how often and with what it was called.
type recordingSink struct {
	calls    int
	vertices int
	indices  int
}

func (r *recordingSink) ReplaceBuffers(b *Buffers) {
	r.calls++
	r.vertices = b.VertexCount()
	r.indices = len(b.Indices())
}

func flatWorld() *picking.World {
	w := picking.NewWorld()
	w.AddGround("ground", 0, 0, 50)
	return w
}

// downAt returns a ray straight down onto (x, z).
func downAt(x, z float32) picking.Ray {
	return picking.Ray{
		Origin:    math.Vec3{X: x, Y: 10, Z: z},
		Direction: math.Vec3{X: 0, Y: -1, Z: 0},
	}
}

func newTestPainter(t *testing.T, s Settings, w SpatialQuery) (*Painter, *recordingSink) {
	t.Helper()
	p, err := NewPainter(s, w)
	if err != nil {
		t.Fatalf("NewPainter: %v", err)
	}
	sink := &recordingSink{}
	p.SetSink(sink)
	p.SetRand(fixedRand{v: 0.5})
	return p, sink
}

func mustValidate(t *testing.T, p *Painter) {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("invariants broken: %v", err)
	}
}
