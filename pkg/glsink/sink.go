// Package glsink uploads grass buffers to an OpenGL 4.1 core context and
// draws them as blades.
package glsink

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/internal/logger"
	"github.com/Faultbox/gtgrass/pkg/grass"
	"github.com/Faultbox/gtgrass/pkg/math"
)

// floatsPerVertex is position(3) + normal(3) + color(4) + size(2).
const floatsPerVertex = 12

const vertexStride = floatsPerVertex * 4

var _ grass.MeshSink = (*Sink)(nil)

// Sink is a grass.MeshSink backed by a VAO. All methods must be called on
// the thread that owns the GL context.
type Sink struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32

	locViewProj int32
	locOrigin   int32

	origin     math.Vec3
	indexCount int32
	scratch    []float32
}

// New compiles the blade program and allocates the GPU buffers.
func New(origin math.Vec3) (*Sink, error) {
	program, err := compileProgram(vertexShader, geometryShader, fragmentShader)
	if err != nil {
		return nil, err
	}
	s := &Sink{
		program:     program,
		origin:      origin,
		locViewProj: gl.GetUniformLocation(program, gl.Str("uViewProj\x00")),
		locOrigin:   gl.GetUniformLocation(program, gl.Str("uOrigin\x00")),
	}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	// Color
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)
	// Blade size
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, vertexStride, 10*4)
	gl.EnableVertexAttribArray(3)

	gl.GenBuffers(1, &s.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)

	gl.BindVertexArray(0)
	return s, nil
}

// SetOrigin moves the painter origin the local positions are relative to.
func (s *Sink) SetOrigin(origin math.Vec3) {
	s.origin = origin
}

// ReplaceBuffers re-uploads every vertex and index.
func (s *Sink) ReplaceBuffers(b *grass.Buffers) {
	s.scratch = interleave(s.scratch[:0], b)
	indices := b.Indices()

	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	if len(s.scratch) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(s.scratch)*4, gl.Ptr(s.scratch), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindVertexArray(0)

	s.indexCount = int32(len(indices))
	logger.Debug("grass mesh uploaded",
		zap.Int("vertices", b.VertexCount()),
		zap.Int("indices", len(indices)))
}

// Draw renders the uploaded blades.
func (s *Sink) Draw(viewProj math.Mat4) {
	if s.indexCount == 0 {
		return
	}
	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(s.locOrigin, s.origin.X, s.origin.Y, s.origin.Z)

	gl.BindVertexArray(s.vao)
	gl.DrawElements(gl.TRIANGLES, s.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU resources.
func (s *Sink) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.ebo != 0 {
		gl.DeleteBuffers(1, &s.ebo)
	}
	if s.program != 0 {
		gl.DeleteProgram(s.program)
	}
}

// interleave packs the parallel buffers into the VBO layout.
func interleave(dst []float32, b *grass.Buffers) []float32 {
	for i := range b.Positions {
		p, n, c, sz := b.Positions[i], b.Normals[i], b.Colors[i], b.Sizes[i]
		dst = append(dst,
			p.X, p.Y, p.Z,
			n.X, n.Y, n.Z,
			c.R, c.G, c.B, c.A,
			sz.X, sz.Y)
	}
	return dst
}
