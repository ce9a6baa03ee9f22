package grass

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/pkg/picking"
)

// Edit recolors and resizes every vertex inside the brush from the current
// settings. Positions, triangles and cells are left untouched.
func (p *Painter) Edit(ray picking.Ray) {
	s := &p.settings
	hit, ok := p.sampler.Cast(ray, s.HitMask, s.RayDistance)
	if !ok {
		return
	}

	edited := 0
	for i, pos := range p.buf.Positions {
		if pos.Add(s.Origin).Distance(hit.Point) > s.BrushSize {
			continue
		}
		p.buf.Colors[i] = p.jitteredColor()
		p.buf.Sizes[i] = p.bladeSize()
		edited++
	}
	if edited > 0 {
		p.log.Debug("vertices edited", zap.Int("count", edited))
	}
	p.flush()
}
