package grass

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/internal/logger"
	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// Painter is one painting session: the live mesh buffers, the cell list and
// the brush state.
//
// Painter is not safe for concurrent use. Hosts driving it from several
// goroutines must serialize calls themselves.
type Painter struct {
	settings Settings
	sampler  *Sampler
	sink     MeshSink
	rng      Rand
	log      *zap.Logger

	buf   Buffers
	cells []*Cell

	// Throttle state for consecutive Add strokes.
	lastPlaced math.Vec3
	hasPlaced  bool
}

// NewPainter creates an empty session painting against query.
func NewPainter(settings Settings, query SpatialQuery) (*Painter, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Painter{
		settings: settings,
		sampler:  NewSampler(query, settings.NormalLimit),
		sink:     nopSink{},
		rng:      NewRand(uint64(time.Now().UnixNano())),
		log:      logger.Named("painter"),
	}, nil
}

// Settings returns the current brush settings.
func (p *Painter) Settings() Settings {
	return p.settings
}

// SetSettings replaces the brush settings. Existing geometry is unchanged.
func (p *Painter) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.settings = s
	p.sampler.normalLimit = s.NormalLimit
	return nil
}

// SetSink sets the renderer that receives the buffers after each stroke.
func (p *Painter) SetSink(sink MeshSink) {
	if sink == nil {
		sink = nopSink{}
	}
	p.sink = sink
}

// SetRand replaces the random source.
func (p *Painter) SetRand(r Rand) {
	p.rng = r
}

// SetLogger replaces the session logger.
func (p *Painter) SetLogger(l *zap.Logger) {
	p.log = l
}

// Stroke applies one brush stroke along ray.
func (p *Painter) Stroke(mode Mode, ray picking.Ray) {
	switch mode {
	case ModeAdd:
		p.Add(ray)
	case ModeRemove:
		p.Remove(ray)
	case ModeEdit:
		p.Edit(ray)
	default:
		p.log.Warn("ignoring stroke with unknown mode", zap.Stringer("mode", mode))
	}
}

// BrushHit returns where the brush currently touches the surface, for
// drawing the brush disc.
func (p *Painter) BrushHit(ray picking.Ray) (picking.Hit, bool) {
	return p.sampler.Cast(ray, p.settings.HitMask, p.settings.RayDistance)
}

// Clear drops every vertex, triangle and cell.
func (p *Painter) Clear() {
	p.buf = Buffers{}
	p.cells = nil
	p.hasPlaced = false
	p.flush()
	p.log.Info("cleared grass mesh")
}

// VertexCount returns the number of live vertices.
func (p *Painter) VertexCount() int {
	return p.buf.VertexCount()
}

// TriangleCount returns the number of live triangle records.
func (p *Painter) TriangleCount() int {
	return p.buf.TriangleCount()
}

// CellCount returns the number of live cells.
func (p *Painter) CellCount() int {
	return len(p.cells)
}

// Buffers exposes the live buffers read-only. The returned value is
// invalidated by the next stroke.
func (p *Painter) Buffers() *Buffers {
	return &p.buf
}

func (p *Painter) flush() {
	p.sink.ReplaceBuffers(&p.buf)
}
