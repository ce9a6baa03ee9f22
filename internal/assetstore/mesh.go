package assetstore

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gtgrass/pkg/grass"
	"github.com/Faultbox/gtgrass/pkg/math"
)

// encodeMesh builds a single-primitive glTF document. Blade sizes travel as
// TEXCOORD_0 and colors as float COLOR_0. An empty mesh has no primitive.
func encodeMesh(name string, b *grass.Buffers) *gltf.Document {
	doc := gltf.NewDocument()
	mesh := &gltf.Mesh{Name: name}
	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	n := b.VertexCount()
	if n == 0 {
		// Zero-length buffers are not valid glTF.
		doc.Buffers = nil
		return doc
	}

	positions := make([][3]float32, n)
	normals := make([][3]float32, n)
	colors := make([][4]float32, n)
	sizes := make([][2]float32, n)
	for i := 0; i < n; i++ {
		positions[i] = b.Positions[i].Array()
		normals[i] = b.Normals[i].Array()
		colors[i] = b.Colors[i].Array()
		sizes[i] = b.Sizes[i].Array()
	}

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			"POSITION":   modeler.WritePosition(doc, positions),
			"NORMAL":     modeler.WriteNormal(doc, normals),
			"COLOR_0":    modeler.WriteColor(doc, colors),
			"TEXCOORD_0": modeler.WriteTextureCoord(doc, sizes),
		},
	}
	if b.TriangleCount() > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, b.Indices()))
	}
	mesh.Primitives = append(mesh.Primitives, prim)
	return doc
}

// decodeMesh reads back a document written by encodeMesh.
func decodeMesh(doc *gltf.Document) (*grass.Buffers, error) {
	out := &grass.Buffers{}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("%w: no mesh", ErrCorruptMesh)
	}
	if len(doc.Meshes[0].Primitives) == 0 {
		return out, nil
	}
	prim := doc.Meshes[0].Primitives[0]

	accessor := func(name string) (*gltf.Accessor, error) {
		idx, ok := prim.Attributes[name]
		if !ok || idx >= len(doc.Accessors) {
			return nil, fmt.Errorf("%w: missing %s", ErrCorruptMesh, name)
		}
		return doc.Accessors[idx], nil
	}

	acr, err := accessor("POSITION")
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	if acr, err = accessor("NORMAL"); err != nil {
		return nil, err
	}
	normals, err := modeler.ReadNormal(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}

	if acr, err = accessor("TEXCOORD_0"); err != nil {
		return nil, err
	}
	sizes, err := modeler.ReadTextureCoord(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("sizes: %w", err)
	}

	if acr, err = accessor("COLOR_0"); err != nil {
		return nil, err
	}
	raw, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}
	colors, ok := raw.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("%w: colors stored as %T", ErrCorruptMesh, raw)
	}

	n := len(positions)
	if len(normals) != n || len(sizes) != n || len(colors) != n {
		return nil, fmt.Errorf("%w: attribute counts differ", ErrCorruptMesh)
	}
	out.Positions = make([]math.Vec3, n)
	out.Normals = make([]math.Vec3, n)
	out.Colors = make([]grass.Color, n)
	out.Sizes = make([]math.Vec2, n)
	for i := 0; i < n; i++ {
		out.Positions[i] = math.Vec3From(positions[i])
		out.Normals[i] = math.Vec3From(normals[i])
		out.Sizes[i] = math.Vec2From(sizes[i])
		c := colors[i]
		out.Colors[i] = grass.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("%w: %d indices", ErrCorruptMesh, len(indices))
		}
		out.Triangles = make([]grass.Triangle, 0, len(indices)/3)
		for i := 0; i < len(indices); i += 3 {
			out.Triangles = append(out.Triangles, grass.Triangle{indices[i], indices[i+1], indices[i+2]})
		}
	}
	return out, nil
}
