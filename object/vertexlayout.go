// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"golang.org/x/exp/slices"

	"gioui.org/glwrap/gl"
)

// VertexAttribute describes one attribute within a vertex stream.
type VertexAttribute struct {
	// Size is the number of components, 1 to 4.
	Size int
	// Type is the component type in the buffer.
	Type       gl.Enum
	Normalized bool
	// Offset is the byte offset within a vertex.
	Offset int
	// ShaderInput is the type the vertex shader reads: gl.FLOAT,
	// gl.INT, gl.UNSIGNED_INT or gl.DOUBLE.
	ShaderInput gl.Enum
}

// VertexLayout describes the interleaved attributes of one vertex
// buffer.
type VertexLayout struct {
	// Stride is the byte distance between consecutive vertices.
	Stride     int
	Attributes []VertexAttribute
}

func (l VertexLayout) Equal(o VertexLayout) bool {
	return l.Stride == o.Stride && slices.Equal(l.Attributes, o.Attributes)
}

func (l VertexLayout) Clone() VertexLayout {
	l.Attributes = slices.Clone(l.Attributes)
	return l
}

// ByteSize returns the size of the attribute's data within a vertex.
func (a VertexAttribute) ByteSize() int {
	return ComponentSize(a.Type) * a.Size
}

// ComponentSize returns the byte size of a vertex component type, or
// zero for unknown types. Packed types count as one component.
func ComponentSize(ty gl.Enum) int {
	switch ty {
	case gl.BYTE, gl.UNSIGNED_BYTE:
		return 1
	case gl.SHORT, gl.UNSIGNED_SHORT, gl.HALF_FLOAT:
		return 2
	case gl.INT, gl.UNSIGNED_INT, gl.FIXED, gl.FLOAT,
		gl.INT_2_10_10_10_REV, gl.UNSIGNED_INT_2_10_10_10_REV, gl.UNSIGNED_INT_10F_11F_11F_REV:
		return 4
	case gl.DOUBLE:
		return 8
	}
	return 0
}

// indexSize returns the byte size of an index type, or zero.
func indexSize(ty gl.Enum) int {
	switch ty {
	case gl.UNSIGNED_INT:
		return 4
	case gl.UNSIGNED_SHORT:
		return 2
	case gl.UNSIGNED_BYTE:
		return 1
	}
	return 0
}
