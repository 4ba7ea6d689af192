// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"

	"gioui.org/glwrap/gl"
)

// Texture3D is a volume texture.
type Texture3D struct {
	texture
}

func NewTexture3D(f gl.Functions, id string, l TextureLayout, data []byte, genMipmap bool) (*Texture3D, error) {
	t := &Texture3D{texture{f: f, id: id, target: gl.TEXTURE_3D}}
	if err := t.allocate("NewTexture3D", l, data, genMipmap, 3); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the storage with a new allocation for l. Views of the
// old storage keep it alive in the driver but no longer alias t.
func (t *Texture3D) Reload(l TextureLayout, data []byte, genMipmap bool) error {
	return t.allocate("Reload", l, data, genMipmap, 3)
}

func (t *Texture3D) Width() int  { return t.layout.Width }
func (t *Texture3D) Height() int { return t.layout.Height }
func (t *Texture3D) Depth() int  { return t.layout.Depth }

// Texture2DArray is an array of two-dimensional layers. The layout's
// Depth is the layer count.
type Texture2DArray struct {
	texture
}

func NewTexture2DArray(f gl.Functions, id string, l TextureLayout, data []byte, genMipmap bool) (*Texture2DArray, error) {
	t := &Texture2DArray{texture{f: f, id: id, target: gl.TEXTURE_2D_ARRAY}}
	if err := t.allocate("NewTexture2DArray", l, data, genMipmap, 3); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Texture2DArray) Reload(l TextureLayout, data []byte, genMipmap bool) error {
	return t.allocate("Reload", l, data, genMipmap, 3)
}

func (t *Texture2DArray) Width() int  { return t.layout.Width }
func (t *Texture2DArray) Height() int { return t.layout.Height }
func (t *Texture2DArray) Layers() int { return t.layout.Depth }

// TextureCubemapArray is an array of cubemaps. The layout's Depth counts
// layer-faces and must be a multiple of 6. Nearest filtering and edge
// clamping are applied before the layout's own parameters.
type TextureCubemapArray struct {
	texture
}

func NewTextureCubemapArray(f gl.Functions, id string, l TextureLayout, data []byte, genMipmap bool) (*TextureCubemapArray, error) {
	t := &TextureCubemapArray{texture{f: f, id: id, target: gl.TEXTURE_CUBE_MAP_ARRAY}}
	if err := t.allocate("NewTextureCubemapArray", l, data, genMipmap, 3); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TextureCubemapArray) Reload(l TextureLayout, data []byte, genMipmap bool) error {
	return t.allocate("Reload", l, data, genMipmap, 3)
}

func (t *TextureCubemapArray) Width() int  { return t.layout.Width }
func (t *TextureCubemapArray) Height() int { return t.layout.Height }

// Cubes returns the number of cubemaps in the array.
func (t *TextureCubemapArray) Cubes() int { return t.layout.Depth / 6 }

// Texture3DView aliases a range of levels of a Texture3D. It does not
// own the storage and must not be used after the source is released or
// reloaded.
type Texture3DView struct {
	texture
	source    *Texture3D
	minLevel  int
	minLayer  int
	numLayers int
}

// NewTexture3DView creates a view of numLevels levels of source starting
// at minLevel. The layout supplies the view's internal format, which
// must be compatible with the source's, and its parameters.
func NewTexture3DView(f gl.Functions, id string, source *Texture3D, l TextureLayout, minLevel, numLevels, minLayer, numLayers int) (*Texture3DView, error) {
	if source == nil || !source.obj.Valid() {
		return nil, newError(KindTexture, "NewTexture3DView", id, fmt.Errorf("%w: released source", ErrInvalidArgument))
	}
	if numLevels < 1 || !inRange(minLevel, numLevels, source.levels) {
		return nil, newError(KindTexture, "NewTexture3DView", id, fmt.Errorf("%w: levels [%d, %d) of %d", ErrOutOfBounds, minLevel, minLevel+numLevels, source.levels))
	}
	// A 3D texture has a single layer.
	if minLayer != 0 || numLayers != 1 {
		return nil, newError(KindTexture, "NewTexture3DView", id, fmt.Errorf("%w: layers [%d, %d) of 1", ErrOutOfBounds, minLayer, minLayer+numLayers))
	}
	gl.Check(f)
	obj := f.GenTexture()
	f.TextureView(obj, gl.TEXTURE_3D, source.obj, l.InternalFormat, minLevel, numLevels, minLayer, numLayers)
	for _, p := range l.IntParams {
		f.TextureParameteri(obj, p.Name, p.Value)
	}
	for _, p := range l.FloatParams {
		f.TextureParameterf(obj, p.Name, p.Value)
	}
	if err := gl.Check(f); err != nil {
		f.DeleteTexture(obj)
		return nil, newError(KindTexture, "NewTexture3DView", id, err)
	}
	layout := l.Clone()
	layout.Width = max(source.layout.Width>>minLevel, 1)
	layout.Height = max(source.layout.Height>>minLevel, 1)
	layout.Depth = max(source.layout.Depth>>minLevel, 1)
	v := &Texture3DView{
		texture: texture{
			f:      f,
			id:     id,
			obj:    obj,
			target: gl.TEXTURE_3D,
			layout: layout,
			levels: numLevels,
		},
		source:    source,
		minLevel:  minLevel,
		minLayer:  minLayer,
		numLayers: numLayers,
	}
	Logger().Debug("texture view created", "id", id, "name", obj.V, "source", source.id, "minLevel", minLevel, "levels", numLevels)
	return v, nil
}

// Source returns the viewed texture.
func (v *Texture3DView) Source() *Texture3D {
	return v.source
}

// MinLevel returns the source level that is level 0 of the view.
func (v *Texture3DView) MinLevel() int {
	return v.minLevel
}

// Layers returns the first layer and number of layers of the view.
func (v *Texture3DView) Layers() (minLayer, numLayers int) {
	return v.minLayer, v.numLayers
}

// Release deletes the view. The source is unaffected.
func (v *Texture3DView) Release() {
	v.texture.Release()
	v.source = nil
}
