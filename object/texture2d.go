// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"
	"image"

	"gioui.org/glwrap/gl"
)

// Texture1D is a one-dimensional texture.
type Texture1D struct {
	texture
}

// NewTexture1D creates a texture from l.Width texels of data, which may
// be nil.
func NewTexture1D(f gl.Functions, id string, l TextureLayout, data []byte, genMipmap bool) (*Texture1D, error) {
	t := &Texture1D{texture{f: f, id: id, target: gl.TEXTURE_1D}}
	if err := t.allocate("NewTexture1D", l, data, genMipmap, 1); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the storage with a new allocation for l. The texture
// name changes, and any bindless handle is invalidated.
func (t *Texture1D) Reload(l TextureLayout, data []byte, genMipmap bool) error {
	return t.allocate("Reload", l, data, genMipmap, 1)
}

func (t *Texture1D) Width() int { return t.layout.Width }

// Texture2D is a two-dimensional texture.
type Texture2D struct {
	texture
}

// NewTexture2D creates a texture described by l and uploads data to
// level 0 unless it is nil.
func NewTexture2D(f gl.Functions, id string, l TextureLayout, data []byte, genMipmap bool) (*Texture2D, error) {
	t := &Texture2D{texture{f: f, id: id, target: gl.TEXTURE_2D}}
	if err := t.allocate("NewTexture2D", l, data, genMipmap, 2); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the storage with a new allocation for l. The texture
// name changes, and any bindless handle is invalidated.
func (t *Texture2D) Reload(l TextureLayout, data []byte, genMipmap bool) error {
	return t.allocate("Reload", l, data, genMipmap, 2)
}

func (t *Texture2D) Width() int  { return t.layout.Width }
func (t *Texture2D) Height() int { return t.layout.Height }

// SubImage2D uploads pixels to the rectangle at offset of the given
// level, in the texture's pixel format and type.
func (t *Texture2D) SubImage2D(level int, offset, size image.Point, pixels []byte) error {
	if level < 0 || level >= t.levels {
		return newError(KindTexture, "SubImage2D", t.id, fmt.Errorf("%w: level %d of %d", ErrOutOfBounds, level, t.levels))
	}
	r := image.Rectangle{Min: offset, Max: offset.Add(size)}
	w, h := max(t.layout.Width>>level, 1), max(t.layout.Height>>level, 1)
	if size.X < 0 || size.Y < 0 || !r.In(image.Rect(0, 0, w, h)) {
		return newError(KindTexture, "SubImage2D", t.id, fmt.Errorf("%w: %v at level %d of %dx%d", ErrOutOfBounds, r, level, w, h))
	}
	if n := size.X * size.Y * texelSize(t.layout.Format, t.layout.Type); len(pixels) < n {
		return newError(KindTexture, "SubImage2D", t.id, fmt.Errorf("%w: %d bytes for %d", ErrOutOfBounds, len(pixels), n))
	}
	gl.Check(t.f)
	t.f.TextureSubImage2D(t.obj, level, offset.X, offset.Y, size.X, size.Y, t.layout.Format, t.layout.Type, pixels)
	return t.check("SubImage2D")
}

// texelSize returns the size of a client-side texel of the given pixel
// format and component type.
func texelSize(format, ty gl.Enum) int {
	comps := 4
	switch format {
	case gl.RED, gl.RED_INTEGER, gl.DEPTH_COMPONENT, gl.DEPTH_STENCIL:
		comps = 1
	case gl.RG:
		comps = 2
	case gl.RGB:
		comps = 3
	}
	switch ty {
	case gl.BYTE, gl.UNSIGNED_BYTE:
		return comps
	case gl.SHORT, gl.UNSIGNED_SHORT, gl.HALF_FLOAT:
		return comps * 2
	case gl.FLOAT_32_UNSIGNED_INT_24_8_REV, gl.DOUBLE:
		return comps * 8
	default:
		return comps * 4
	}
}
