// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"gioui.org/glwrap/gl"
)

// LayoutForFormat returns a single-level 2D layout for a WebGPU texture
// format.
func LayoutForFormat(format gputypes.TextureFormat, width, height int) (TextureLayout, error) {
	l := TextureLayout{Width: width, Height: height, Depth: 1}
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		l.InternalFormat, l.Format, l.Type = gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	case gputypes.TextureFormatBGRA8Unorm:
		l.InternalFormat, l.Format, l.Type = gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE
	case gputypes.TextureFormatR8Unorm:
		l.InternalFormat, l.Format, l.Type = gl.R8, gl.RED, gl.UNSIGNED_BYTE
	case gputypes.TextureFormatDepth24PlusStencil8:
		l.InternalFormat, l.Format, l.Type = gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	default:
		return TextureLayout{}, fmt.Errorf("%w: texture format %v", ErrInvalidArgument, format)
	}
	return l, nil
}

// AttributeFor returns the vertex attribute for a WebGPU vertex format
// at the given byte offset.
func AttributeFor(format gputypes.VertexFormat, offset int) (VertexAttribute, error) {
	a := VertexAttribute{Type: gl.FLOAT, ShaderInput: gl.FLOAT, Offset: offset}
	switch format {
	case gputypes.VertexFormatFloat32:
		a.Size = 1
	case gputypes.VertexFormatFloat32x2:
		a.Size = 2
	case gputypes.VertexFormatFloat32x4:
		a.Size = 4
	default:
		return VertexAttribute{}, fmt.Errorf("%w: vertex format %v", ErrInvalidArgument, format)
	}
	return a, nil
}

// IndexTypeFor returns the index type for a WebGPU index format.
func IndexTypeFor(format gputypes.IndexFormat) gl.Enum {
	if format == gputypes.IndexFormatUint16 {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

// SamplerParamsFor returns filtering and wrapping parameters matching
// a WebGPU filter and address mode.
func SamplerParamsFor(filter gputypes.FilterMode, address gputypes.AddressMode) []IntParam {
	glFilter, wrap := gl.NEAREST, gl.REPEAT
	if filter == gputypes.FilterModeLinear {
		glFilter = gl.LINEAR
	}
	if address == gputypes.AddressModeClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	return []IntParam{
		{gl.TEXTURE_MIN_FILTER, glFilter},
		{gl.TEXTURE_MAG_FILTER, glFilter},
		{gl.TEXTURE_WRAP_S, wrap},
		{gl.TEXTURE_WRAP_T, wrap},
		{gl.TEXTURE_WRAP_R, wrap},
	}
}
