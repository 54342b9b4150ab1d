package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/crashsim/internal/engine/mesh"
)

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// meshBuffer is the GPU copy of one mesh.
type meshBuffer struct {
	vao, vbo, ebo uint32
	indexCount    int32
	vertexCount   int
	version       uint64
}

func newMeshBuffer(m *mesh.Mesh) *meshBuffer {
	b := &meshBuffer{version: m.Version()}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	data := interleave(m)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	}
	b.vertexCount = len(m.Vertices)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}
	b.indexCount = int32(len(m.Indices))

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return b
}

// sync re-uploads vertex data if the mesh was modified. The vertex count of
// a deformed mesh never changes, so the buffer is updated in place.
func (b *meshBuffer) sync(m *mesh.Mesh) {
	if m.Version() == b.version {
		return
	}
	b.version = m.Version()

	data := interleave(m)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(m.Vertices) == b.vertexCount && len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	} else if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
		b.vertexCount = len(m.Vertices)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *meshBuffer) draw() {
	if b.indexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, 0)
}

func (b *meshBuffer) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}

// interleave packs positions and smoothed normals into one vertex stream.
func interleave(m *mesh.Mesh) []float32 {
	normals := m.Normals()
	out := make([]float32, 0, len(m.Vertices)*floatsPerVertex)
	for i, v := range m.Vertices {
		n := normals[i]
		out = append(out, v.X, v.Y, v.Z, n.X, n.Y, n.Z)
	}
	return out
}

// lineBuffer streams debug line vertices every draw.
type lineBuffer struct {
	vao, vbo uint32
	capacity int
}

func newLineBuffer() *lineBuffer {
	b := &lineBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return b
}

func (b *lineBuffer) draw(vertices []float32) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
		b.capacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
}

func (b *lineBuffer) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}
