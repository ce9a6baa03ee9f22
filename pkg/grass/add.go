package grass

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

var sqrt3 = float32(gomath.Sqrt(3))

// Add paints up to Density new cells around the point the ray hits.
func (p *Painter) Add(ray picking.Ray) {
	s := &p.settings
	primary, ok := p.sampler.Cast(ray, s.HitMask, s.RayDistance)
	if !ok {
		return
	}
	brushNormal := primary.Normal.Normalize()

	radius := s.BrushSize * 0.5
	if s.Density >= 3 {
		radius = s.BrushSize * 0.333
	}

	var centerOffset math.Vec3
	if s.Density > 1 && s.Density < 6 {
		length := radius
		if s.Density%2 == 0 {
			length = radius * 0.5 * sqrt3
		}
		angle := 180 + float32(s.Density-1)*30
		centerOffset = math.PolarToCartesian(angle, length, brushNormal)
	}

	throttle := s.BrushSize * 1.2
	if s.Density == 1 {
		throttle = s.BrushSize * 0.6
	}

	randomAngle := p.rng.Range(0, 360)
	placed := 0
	for k := 0; k < s.Density; k++ {
		if p.buf.VertexCount()+cellSize > s.GrassLimit {
			p.log.Debug("grass limit reached",
				zap.Int("vertices", p.buf.VertexCount()),
				zap.Int("limit", s.GrassLimit))
			break
		}

		offset := centerOffset
		if k != 0 {
			jitter := math.PolarToCartesian(60*float32(k-1)+randomAngle, radius*sqrt3*p.rng.Range(1, 1.5), brushNormal)
			offset = offset.Add(jitter)
		}

		var gate func(math.Vec3) rejection
		if k == 0 {
			gate = func(center math.Vec3) rejection {
				if p.throttled(center, throttle) {
					return rejectThrottle
				}
				p.lastPlaced = center
				p.hasPlaced = true
				return accepted
			}
		}

		sample, why := p.sampler.sampleCell(ray, offset, brushNormal, radius, s, gate)
		if why == rejectThrottle {
			p.log.Debug("stroke throttled", zap.Float32("min_travel", throttle))
			break
		}
		if why != accepted {
			p.log.Debug("cell rejected", zap.Int("candidate", k), zap.Stringer("reason", why))
			continue
		}
		p.appendCell(sample)
		placed++
	}

	if placed > 0 {
		p.log.Debug("cells added", zap.Int("count", placed), zap.Int("vertices", p.buf.VertexCount()))
	}
	p.flush()
}

// throttled reports whether center is within minTravel of the last placed
// first cell.
func (p *Painter) throttled(center math.Vec3, minTravel float32) bool {
	return p.hasPlaced && center.Distance(p.lastPlaced) <= minTravel
}

// appendCell writes the seven sampled vertices, the triangle fan around the
// center and the cell record.
func (p *Painter) appendCell(sample cellSample) {
	s := &p.settings
	base := p.buf.VertexCount()
	cell := &Cell{Position: sample[0].Point.Sub(s.Origin)}

	for _, hit := range sample {
		pos := hit.Point.Sub(s.Origin)
		idx := p.buf.appendVertex(pos, hit.Normal.Normalize(), p.jitteredColor(), p.bladeSize())
		cell.Vertices = append(cell.Vertices, &VertexData{Index: idx, Position: pos})
	}

	fan := make([]Triangle, 0, cellSize-1)
	t := uint32(base)
	for i := uint32(1); i < cellSize-1; i++ {
		fan = append(fan, Triangle{t, t + i + 1, t + i})
	}
	fan = append(fan, Triangle{t, t + 1, t + cellSize - 1})

	for _, tri := range fan {
		ti := len(p.buf.Triangles)
		p.buf.Triangles = append(p.buf.Triangles, tri)
		for _, ref := range tri {
			cell.Vertices[int(ref)-base].ownTriangle(ti)
		}
	}
	p.cells = append(p.cells, cell)
}

func (p *Painter) jitteredColor() Color {
	s := &p.settings
	return Color{
		R: s.Color.R + p.rng.Float32()*s.ColorRange.R,
		G: s.Color.G + p.rng.Float32()*s.ColorRange.G,
		B: s.Color.B + p.rng.Float32()*s.ColorRange.B,
		A: 1,
	}
}

func (p *Painter) bladeSize() math.Vec2 {
	return math.Vec2{X: p.settings.Width, Y: p.settings.Length}
}
