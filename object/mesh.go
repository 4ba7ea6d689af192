// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"

	"gioui.org/glwrap/gl"
)

// Mesh owns one vertex buffer per vertex stream, an index buffer and a
// vertex array object describing them.
type Mesh struct {
	f          gl.Functions
	vao        gl.VertexArray
	vbos       []*Buffer
	ibo        *Buffer
	layouts    []VertexLayout
	indexCount int
	indexType  gl.Enum
	usage      gl.Enum
	primitive  gl.Enum
}

// NewMesh uploads vertexData[i] into a buffer described by layouts[i],
// uploads indexData and builds a vertex array over them. Attributes are
// numbered consecutively across all layouts, in order.
func NewMesh(f gl.Functions, vertexData [][]byte, indexData []byte, layouts []VertexLayout, indexType, usage, primitive gl.Enum) (*Mesh, error) {
	if len(vertexData) != len(layouts) {
		return nil, newError(KindMesh, "NewMesh", "", fmt.Errorf("%w: %d buffers, %d layouts", ErrLayoutMismatch, len(vertexData), len(layouts)))
	}
	isz := indexSize(indexType)
	if isz == 0 {
		return nil, newError(KindMesh, "NewMesh", "", fmt.Errorf("%w: %#x", ErrIndexType, uint(indexType)))
	}
	for _, l := range layouts {
		for _, a := range l.Attributes {
			switch a.ShaderInput {
			case gl.FLOAT, gl.INT, gl.UNSIGNED_INT, gl.DOUBLE:
			default:
				return nil, newError(KindMesh, "NewMesh", "", fmt.Errorf("%w: %#x", ErrInvalidAttribType, uint(a.ShaderInput)))
			}
		}
	}
	m := &Mesh{
		f:          f,
		layouts:    make([]VertexLayout, len(layouts)),
		indexCount: len(indexData) / isz,
		indexType:  indexType,
		usage:      usage,
		primitive:  primitive,
	}
	for i, l := range layouts {
		m.layouts[i] = l.Clone()
	}
	for _, data := range vertexData {
		vbo, err := NewBuffer(f, gl.ARRAY_BUFFER, data, usage)
		if err != nil {
			m.Release()
			return nil, newError(KindMesh, "NewMesh", "", err)
		}
		m.vbos = append(m.vbos, vbo)
	}
	ibo, err := NewBuffer(f, gl.ELEMENT_ARRAY_BUFFER, indexData, usage)
	if err != nil {
		m.Release()
		return nil, newError(KindMesh, "NewMesh", "", err)
	}
	m.ibo = ibo
	gl.Check(f)
	m.vao = f.CreateVertexArray()
	attrib := gl.Attrib(0)
	for i, l := range m.layouts {
		f.VertexArrayVertexBuffer(m.vao, i, m.vbos[i].Name(), 0, l.Stride)
		for _, a := range l.Attributes {
			f.EnableVertexArrayAttrib(m.vao, attrib)
			switch a.ShaderInput {
			case gl.FLOAT:
				f.VertexArrayAttribFormat(m.vao, attrib, a.Size, a.Type, a.Normalized, a.Offset)
			case gl.INT, gl.UNSIGNED_INT:
				f.VertexArrayAttribIFormat(m.vao, attrib, a.Size, a.Type, a.Offset)
			case gl.DOUBLE:
				f.VertexArrayAttribLFormat(m.vao, attrib, a.Size, a.Type, a.Offset)
			}
			f.VertexArrayAttribBinding(m.vao, attrib, i)
			attrib++
		}
	}
	f.VertexArrayElementBuffer(m.vao, ibo.Name())
	if err := gl.Check(f); err != nil {
		m.Release()
		return nil, newError(KindMesh, "NewMesh", "", err)
	}
	Logger().Debug("mesh created", "vao", m.vao.V, "streams", len(m.vbos), "indices", m.indexCount)
	return m, nil
}

// BufferVertexSubData uploads data at offset into vertex stream i.
func (m *Mesh) BufferVertexSubData(i int, data []byte, offset int) error {
	if i < 0 || i >= len(m.vbos) {
		return newError(KindMesh, "BufferVertexSubData", "", fmt.Errorf("%w: %d of %d", ErrStreamIndex, i, len(m.vbos)))
	}
	return m.vbos[i].BufferSubData(data, offset)
}

// BufferIndexSubData uploads index data at offset. The index count is
// unchanged.
func (m *Mesh) BufferIndexSubData(data []byte, offset int) error {
	if m.ibo == nil {
		return newError(KindMesh, "BufferIndexSubData", "", fmt.Errorf("%w: released mesh", ErrInvalidArgument))
	}
	return m.ibo.BufferSubData(data, offset)
}

// BindVertexArray binds the mesh's vertex array, for callers issuing
// their own draw calls.
func (m *Mesh) BindVertexArray() {
	m.f.BindVertexArray(m.vao)
}

// Draw draws all indices instances times.
func (m *Mesh) Draw(instances int) {
	m.f.BindVertexArray(m.vao)
	m.f.DrawElementsInstanced(m.primitive, m.indexCount, m.indexType, 0, instances)
	m.f.BindVertexArray(gl.VertexArray{})
}

// VertexLayouts returns a copy of the vertex layouts.
func (m *Mesh) VertexLayouts() []VertexLayout {
	ls := make([]VertexLayout, len(m.layouts))
	for i, l := range m.layouts {
		ls[i] = l.Clone()
	}
	return ls
}

func (m *Mesh) VertexArray() gl.VertexArray { return m.vao }
func (m *Mesh) IndexCount() int             { return m.indexCount }
func (m *Mesh) IndexType() gl.Enum          { return m.indexType }
func (m *Mesh) Primitive() gl.Enum          { return m.primitive }
func (m *Mesh) Usage() gl.Enum              { return m.usage }
func (m *Mesh) VertexBufferCount() int      { return len(m.vbos) }
func (m *Mesh) IndexBuffer() *Buffer        { return m.ibo }

// VertexBuffer returns the buffer of stream i, or nil.
func (m *Mesh) VertexBuffer(i int) *Buffer {
	if i < 0 || i >= len(m.vbos) {
		return nil
	}
	return m.vbos[i]
}

// VertexBufferSize returns the byte size of stream i, or zero if i is
// out of range.
func (m *Mesh) VertexBufferSize(i int) int {
	if b := m.VertexBuffer(i); b != nil {
		return b.Size()
	}
	return 0
}

// Release deletes the vertex array and all buffers.
func (m *Mesh) Release() {
	if m.vao.Valid() {
		m.f.DeleteVertexArray(m.vao)
		m.vao = gl.VertexArray{}
	}
	for _, b := range m.vbos {
		b.Release()
	}
	m.vbos = nil
	if m.ibo != nil {
		m.ibo.Release()
		m.ibo = nil
	}
}
