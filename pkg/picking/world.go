package picking

import (
	gomath "math"

	"github.com/Faultbox/gtgrass/pkg/math"
)

// LayerMask is a bit set of collision layers (bit n = layer n).
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

// LayerBit returns the mask containing only layer.
func LayerBit(layer int) LayerMask {
	return LayerMask(1) << uint(layer)
}

// Contains reports whether layer is part of the mask.
func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&LayerBit(layer) != 0
}

// Hit stores the result of a successful raycast.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Layer    int
	Collider string
}

// Collider is a static triangle mesh on one collision layer.
type Collider struct {
	Name     string
	Layer    int
	Vertices []math.Vec3
	Indices  []uint32
	bounds   AABB
}

// World is a set of static colliders. It is not safe for concurrent
// mutation; concurrent Raycast calls are fine once built.
type World struct {
	colliders []*Collider
}

// NewWorld creates an empty collision world.
func NewWorld() *World {
	return &World{}
}

// AddMesh registers a triangle mesh collider.
func (w *World) AddMesh(name string, layer int, vertices []math.Vec3, indices []uint32) *Collider {
	c := &Collider{
		Name:     name,
		Layer:    layer,
		Vertices: vertices,
		Indices:  indices,
		bounds:   emptyAABB(),
	}
	for _, v := range vertices {
		c.bounds.Extend(v)
	}
	w.colliders = append(w.colliders, c)
	return c
}

// AddQuad registers a two-triangle collider spanning four corners given in
// winding order.
func (w *World) AddQuad(name string, layer int, corners [4]math.Vec3) *Collider {
	return w.AddMesh(name, layer, corners[:], []uint32{0, 1, 2, 0, 2, 3})
}

// AddGround registers a horizontal square of the given half extent at height y.
func (w *World) AddGround(name string, layer int, y, halfExtent float32) *Collider {
	return w.AddQuad(name, layer, [4]math.Vec3{
		{X: -halfExtent, Y: y, Z: -halfExtent},
		{X: -halfExtent, Y: y, Z: halfExtent},
		{X: halfExtent, Y: y, Z: halfExtent},
		{X: halfExtent, Y: y, Z: -halfExtent},
	})
}

// Colliders returns the registered colliders.
func (w *World) Colliders() []*Collider {
	return w.colliders
}

// Raycast returns the closest hit within maxDistance on a layer in mask.
// Colliders are double sided; the reported normal faces the ray origin.
func (w *World) Raycast(origin, dir math.Vec3, maxDistance float32, mask LayerMask) (Hit, bool) {
	ray := Ray{Origin: origin, Direction: dir.Normalize()}
	closest := Hit{Distance: float32(gomath.MaxFloat32)}
	found := false

	for _, c := range w.colliders {
		if !mask.Contains(c.Layer) {
			continue
		}

		// Broad phase: AABB test
		t, hit := ray.IntersectAABB(c.bounds)
		if !hit || t > maxDistance || t > closest.Distance {
			continue
		}

		// Narrow phase: triangle test
		for i := 0; i+2 < len(c.Indices); i += 3 {
			v0 := c.Vertices[c.Indices[i]]
			v1 := c.Vertices[c.Indices[i+1]]
			v2 := c.Vertices[c.Indices[i+2]]

			t, ok := mollerTrumbore(ray, v0, v1, v2)
			if !ok || t > maxDistance || t >= closest.Distance {
				continue
			}

			normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
			if normal.Dot(ray.Direction) > 0 {
				normal = normal.Scale(-1)
			}
			closest = Hit{
				Point:    ray.At(t),
				Normal:   normal,
				Distance: t,
				Layer:    c.Layer,
				Collider: c.Name,
			}
			found = true
		}
	}

	return closest, found
}

// mollerTrumbore implements the Möller–Trumbore ray-triangle intersection algorithm.
func mollerTrumbore(ray Ray, v0, v1, v2 math.Vec3) (float32, bool) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return 0, false // parallel
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
