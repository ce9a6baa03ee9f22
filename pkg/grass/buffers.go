package grass

import (
	"fmt"
	"slices"

	"github.com/Faultbox/gtgrass/pkg/math"
)

// Triangle is one triangle record: three vertex indices.
type Triangle [3]uint32

// Buffers are the flat mesh buffers handed to the renderer. Positions,
// Colors, Normals and Sizes are parallel and indexed by vertex index.
type Buffers struct {
	Positions []math.Vec3
	Colors    []Color
	Normals   []math.Vec3
	Sizes     []math.Vec2 // blade (width, length), exported as UV0
	Triangles []Triangle
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount returns the number of triangle records.
func (b *Buffers) TriangleCount() int {
	return len(b.Triangles)
}

// Indices flattens the triangle records into an index buffer.
func (b *Buffers) Indices() []uint32 {
	out := make([]uint32, 0, len(b.Triangles)*3)
	for _, t := range b.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// Clone returns a deep copy.
func (b *Buffers) Clone() *Buffers {
	return &Buffers{
		Positions: slices.Clone(b.Positions),
		Colors:    slices.Clone(b.Colors),
		Normals:   slices.Clone(b.Normals),
		Sizes:     slices.Clone(b.Sizes),
		Triangles: slices.Clone(b.Triangles),
	}
}

// Check verifies the parallel-length and index-range invariants.
func (b *Buffers) Check() error {
	n := len(b.Positions)
	if len(b.Colors) != n || len(b.Normals) != n || len(b.Sizes) != n {
		return fmt.Errorf("buffer lengths differ: positions=%d colors=%d normals=%d sizes=%d",
			n, len(b.Colors), len(b.Normals), len(b.Sizes))
	}
	for i, t := range b.Triangles {
		for _, ref := range t {
			if int(ref) >= n {
				return fmt.Errorf("triangle %d references vertex %d, only %d vertices", i, ref, n)
			}
		}
	}
	return nil
}

func (b *Buffers) appendVertex(pos, normal math.Vec3, color Color, size math.Vec2) int {
	b.Positions = append(b.Positions, pos)
	b.Normals = append(b.Normals, normal)
	b.Colors = append(b.Colors, color)
	b.Sizes = append(b.Sizes, size)
	return len(b.Positions) - 1
}

// eraseVertices drops every vertex listed in c from the per-vertex buffers.
func (b *Buffers) eraseVertices(c compaction) {
	b.Positions = eraseSorted(b.Positions, c.removed)
	b.Colors = eraseSorted(b.Colors, c.removed)
	b.Normals = eraseSorted(b.Normals, c.removed)
	b.Sizes = eraseSorted(b.Sizes, c.removed)
}

// eraseTriangles drops the triangle records listed in tris and rewrites the
// surviving references through verts.
func (b *Buffers) eraseTriangles(tris, verts compaction) {
	b.Triangles = eraseSorted(b.Triangles, tris.removed)
	for i := range b.Triangles {
		for k, ref := range b.Triangles[i] {
			// Every triangle touching a removed vertex was erased above, so
			// the remaining references always survive.
			n, _ := verts.remap(int(ref))
			b.Triangles[i][k] = uint32(n)
		}
	}
}

// compaction describes one batch of erased positions in an indexed sequence
// and maps old indices to their position after the erase.
type compaction struct {
	removed []int // ascending, unique
}

func newCompaction(indices []int) compaction {
	removed := slices.Clone(indices)
	slices.Sort(removed)
	return compaction{removed: slices.Compact(removed)}
}

// remap returns the index i moves to, or false if i itself is erased. This
// equals decrementing i once for every erased index below it.
func (c compaction) remap(i int) (int, bool) {
	below, found := slices.BinarySearch(c.removed, i)
	if found {
		return 0, false
	}
	return i - below, true
}

// eraseSorted removes the entries at the ascending indices in removed,
// preserving the order of the rest.
func eraseSorted[T any](s []T, removed []int) []T {
	if len(removed) == 0 {
		return s
	}
	w, next := 0, 0
	for i := range s {
		if next < len(removed) && removed[next] == i {
			next++
			continue
		}
		s[w] = s[i]
		w++
	}
	clear(s[w:])
	return s[:w]
}
