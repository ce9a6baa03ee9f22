package grass

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/pkg/picking"
)

// Remove erases every cell whose center lies inside the brush, and every
// other vertex inside the brush, together with the triangles they own.
func (p *Painter) Remove(ray picking.Ray) {
	s := &p.settings
	hit, ok := p.sampler.Cast(ray, s.HitMask, s.RayDistance)
	if !ok {
		return
	}

	var marked []int
	doomed := make(map[*Cell]bool)
	for _, c := range p.cells {
		center := c.Center()
		if center == nil {
			continue
		}
		if c.Position.Add(s.Origin).Distance(hit.Point) <= s.BrushSize {
			doomed[c] = true
			for _, v := range c.Vertices {
				marked = append(marked, v.Index)
			}
			continue
		}
		for _, v := range c.Vertices[1:] {
			if v.Position.Add(s.Origin).Distance(hit.Point) <= s.BrushSize {
				marked = append(marked, v.Index)
			}
		}
	}
	if len(marked) == 0 {
		p.flush()
		return
	}

	p.eraseVertices(marked, doomed)
	p.log.Debug("vertices removed",
		zap.Int("removed", len(marked)),
		zap.Int("cells_dropped", len(doomed)),
		zap.Int("vertices", p.buf.VertexCount()))
	p.flush()
}

// eraseVertices removes the vertices at the given indices in one pass:
// per-vertex buffers, the triangles those vertices own, every surviving
// reference and the cell list are all rewritten against the same batch.
func (p *Painter) eraseVertices(indices []int, doomed map[*Cell]bool) {
	verts := newCompaction(indices)

	owner := make(map[int]*VertexData, len(indices))
	for _, c := range p.cells {
		for _, v := range c.Vertices {
			if _, ok := verts.remap(v.Index); !ok {
				owner[v.Index] = v
			}
		}
	}
	var owned []int
	for _, v := range owner {
		owned = append(owned, v.Triangles...)
	}
	tris := newCompaction(owned)

	p.buf.eraseVertices(verts)
	p.buf.eraseTriangles(tris, verts)

	kept := p.cells[:0]
	for _, c := range p.cells {
		if doomed[c] {
			continue
		}
		vs := c.Vertices[:0]
		for _, v := range c.Vertices {
			idx, ok := verts.remap(v.Index)
			if !ok {
				continue
			}
			v.Index = idx
			ts := v.Triangles[:0]
			for _, t := range v.Triangles {
				if nt, ok := tris.remap(t); ok {
					ts = append(ts, nt)
				}
			}
			v.Triangles = ts
			vs = append(vs, v)
		}
		clear(c.Vertices[len(vs):])
		c.Vertices = vs
		if len(vs) == 0 {
			continue
		}
		kept = append(kept, c)
	}
	clear(p.cells[len(kept):])
	p.cells = kept
}
