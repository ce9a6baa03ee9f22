package grass

import (
	gomath "math"

	"github.com/Faultbox/gtgrass/pkg/math"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// SpatialQuery is the host's collision world.
type SpatialQuery interface {
	Raycast(origin, dir math.Vec3, maxDistance float32, mask picking.LayerMask) (picking.Hit, bool)
}

// tiltEpsilon absorbs rounding in normalized hit normals.
const tiltEpsilon = 1e-5

// Sampler turns rays into accepted surface points.
type Sampler struct {
	query       SpatialQuery
	normalLimit float32
}

// NewSampler creates a sampler over query. normalLimit is the tilt
// tolerance in [0, 1]: 0 accepts only upward-facing normals, 1 accepts all.
func NewSampler(query SpatialQuery, normalLimit float32) *Sampler {
	return &Sampler{query: query, normalLimit: normalLimit}
}

// Cast is the unfiltered ray used to locate the brush.
func (s *Sampler) Cast(ray picking.Ray, mask picking.LayerMask, maxDistance float32) (picking.Hit, bool) {
	return s.query.Raycast(ray.Origin, ray.Direction, maxDistance, mask)
}

// Probe casts one ray and accepts the hit only if the struck layer is
// paintable and the surface is not tilted past the normal limit.
func (s *Sampler) Probe(origin, dir math.Vec3, surfaceMask, paintMask picking.LayerMask, maxDistance float32) (picking.Hit, bool) {
	hit, ok := s.query.Raycast(origin, dir, maxDistance, surfaceMask)
	if !ok {
		return picking.Hit{}, false
	}
	if !paintMask.Contains(hit.Layer) {
		return picking.Hit{}, false
	}
	if hit.Normal.Y < 1-2*s.normalLimit-tiltEpsilon {
		return picking.Hit{}, false
	}
	return hit, true
}

// rejection explains why a candidate cell was not placed.
type rejection int

const (
	accepted rejection = iota
	rejectMiss
	rejectRoughness
	rejectThrottle
)

func (r rejection) String() string {
	switch r {
	case accepted:
		return "accepted"
	case rejectMiss:
		return "probe miss"
	case rejectRoughness:
		return "roughness"
	case rejectThrottle:
		return "throttle"
	}
	return "unknown"
}

// cellSample holds the seven accepted hits of one candidate cell, center
// first.
type cellSample [cellSize]picking.Hit

// sampleCell probes the center and six hexagon points of a candidate cell.
// The probes start at ray.Origin+offset and follow ray.Direction; hexagon
// point j lies at 60*(j-1) degrees and distance radius around brushNormal.
// gate is consulted after the center probe succeeds and may veto the cell.
func (s *Sampler) sampleCell(ray picking.Ray, offset, brushNormal math.Vec3, radius float32,
	set *Settings, gate func(center math.Vec3) rejection) (cellSample, rejection) {
	var out cellSample

	for j := 0; j < cellSize; j++ {
		var pointOffset math.Vec3
		if j != 0 {
			pointOffset = math.PolarToCartesian(float32(60*(j-1)), radius, brushNormal)
		}
		origin := ray.Origin.Add(offset).Add(pointOffset)
		hit, ok := s.Probe(origin, ray.Direction, set.HitMask, set.PaintMask, set.RayDistance)
		if !ok {
			return out, rejectMiss
		}

		if j == 0 {
			if gate != nil {
				if r := gate(hit.Point); r != accepted {
					return out, r
				}
			}
		} else {
			ref := expectedDistance(pointOffset, out[0].Normal, ray.Direction)
			d := hit.Point.Distance(out[0].Point)
			if !(d > ref-set.Roughness && d < ref+set.Roughness) {
				return out, rejectRoughness
			}
		}
		out[j] = hit
	}
	return out, accepted
}

// expectedDistance is the distance a perimeter probe should land from the
// center when the surface is the plane through the center with the given
// normal, seen along view.
func expectedDistance(offset, centerNormal, view math.Vec3) float32 {
	planeNormal := offset.Normalize().Cross(view).Normalize()
	projected := centerNormal.Sub(planeNormal.Scale(planeNormal.Dot(centerNormal))).Normalize()
	if projected == (math.Vec3{}) {
		projected = centerNormal.Normalize()
	}

	along := offset.Dot(projected)
	lateral := offset.Sub(projected.Scale(along)).Length()

	cos := float64(projected.Dot(view))
	if cos < 0 {
		cos = -cos
	}
	if cos > 1 {
		cos = 1
	}
	a := gomath.Abs(float64(along))
	if a == 0 {
		return lateral
	}
	if cos == 0 {
		return float32(gomath.Inf(1))
	}
	return lateral + float32(a*gomath.Sqrt(1-cos*cos)/cos)
}
