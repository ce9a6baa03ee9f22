package grass

import (
	"slices"

	"github.com/Faultbox/gtgrass/pkg/math"
)

// VertexData ties one vertex of the flat buffers to the triangle records
// that reference it.
type VertexData struct {
	Index     int       `yaml:"index"`
	Position  math.Vec3 `yaml:"position"`
	Triangles []int     `yaml:"triangles"`
}

func (v *VertexData) clone() *VertexData {
	return &VertexData{
		Index:     v.Index,
		Position:  v.Position,
		Triangles: slices.Clone(v.Triangles),
	}
}

func (v *VertexData) ownTriangle(t int) {
	if !slices.Contains(v.Triangles, t) {
		v.Triangles = append(v.Triangles, t)
	}
}

// Cell is one painted clump: a center vertex followed by the hexagon points
// that were actually placed. Positions are relative to the painter origin.
type Cell struct {
	Position math.Vec3     `yaml:"position"`
	Vertices []*VertexData `yaml:"vertices"`
}

// Center returns the center vertex, or nil for an empty cell.
func (c *Cell) Center() *VertexData {
	if len(c.Vertices) == 0 {
		return nil
	}
	return c.Vertices[0]
}

func (c *Cell) clone() *Cell {
	out := &Cell{Position: c.Position, Vertices: make([]*VertexData, len(c.Vertices))}
	for i, v := range c.Vertices {
		out.Vertices[i] = v.clone()
	}
	return out
}

func cloneCells(cells []*Cell) []*Cell {
	if cells == nil {
		return nil
	}
	out := make([]*Cell, len(cells))
	for i, c := range cells {
		out[i] = c.clone()
	}
	return out
}
