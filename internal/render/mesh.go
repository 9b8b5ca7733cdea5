// Package render provides OpenGL buffer management for meshed chunk geometry.
package render

import (
	"voxelcore/internal/mesher"
	"voxelcore/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// floatsPerVertex matches mesher.Vertex: position(3) + uv(2) + normal(3) +
// shade(1), all uploaded as float32 for a single uniform vertex attribute
// layout.
const floatsPerVertex = 9

// ChunkMesh owns the OpenGL buffers for one meshed vertex/index stream. It
// satisfies chunk.GpuMesh, batch.Drawable, and world.GpuDrawable.
type ChunkMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Uploader creates ChunkMesh instances from mesher output. It is the single
// concrete type the world package wraps to satisfy mesher.Uploader,
// batch.Uploader, and world.MeshUploader simultaneously.
type Uploader struct{}

// NewUploader returns the GPU mesh uploader used to wire the world package
// to this renderer.
func NewUploader() Uploader { return Uploader{} }

// Upload builds GPU buffers from a mesher vertex/index stream. Returns nil
// for an empty stream so callers can skip drawing it.
func (Uploader) Upload(vertices []mesher.Vertex, indices []uint32) world.GpuDrawable {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil
	}

	flat := make([]float32, 0, len(vertices)*floatsPerVertex)
	for _, v := range vertices {
		flat = append(flat,
			v.X, v.Y, v.Z,
			v.U, v.V,
			v.NX, v.NY, v.NZ,
			float32(v.Shade)/255.0,
		)
	}

	m := &ChunkMesh{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, gl.Ptr(flat), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 8*4)
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
	return m
}

// Draw issues the draw call for this mesh. Safe to call on a nil receiver.
func (m *ChunkMesh) Draw() {
	if m == nil || m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the mesh's OpenGL buffers. Safe to call multiple times or
// on a nil receiver.
func (m *ChunkMesh) Delete() {
	if m == nil {
		return
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
