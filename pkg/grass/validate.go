package grass

import (
	"fmt"
	"slices"
)

// Validate checks every structural invariant of the live session: parallel
// buffer lengths, triangle references in range, each vertex owned by
// exactly one cell entry, and owned triangle sets matching the triangles
// that actually reference each vertex.
func (p *Painter) Validate() error {
	return checkGraph(&p.buf, p.cells)
}

func checkGraph(b *Buffers, cells []*Cell) error {
	if err := b.Check(); err != nil {
		return err
	}

	n := b.VertexCount()
	refs := make([][]int, n)
	for ti, t := range b.Triangles {
		for _, v := range t {
			if !slices.Contains(refs[v], ti) {
				refs[v] = append(refs[v], ti)
			}
		}
	}

	seen := make([]bool, n)
	for ci, c := range cells {
		if len(c.Vertices) == 0 || len(c.Vertices) > cellSize {
			return fmt.Errorf("cell %d has %d vertices", ci, len(c.Vertices))
		}
		for _, v := range c.Vertices {
			if v.Index < 0 || v.Index >= n {
				return fmt.Errorf("cell %d references vertex %d, only %d vertices", ci, v.Index, n)
			}
			if seen[v.Index] {
				return fmt.Errorf("vertex %d is listed by more than one cell entry", v.Index)
			}
			seen[v.Index] = true
			if v.Position != b.Positions[v.Index] {
				return fmt.Errorf("vertex %d position %v does not match buffer %v", v.Index, v.Position, b.Positions[v.Index])
			}
			owned := slices.Clone(v.Triangles)
			slices.Sort(owned)
			want := slices.Clone(refs[v.Index])
			slices.Sort(want)
			if !slices.Equal(owned, want) {
				return fmt.Errorf("vertex %d owns triangles %v, referenced by %v", v.Index, owned, want)
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("vertex %d belongs to no cell", i)
		}
	}
	return nil
}
