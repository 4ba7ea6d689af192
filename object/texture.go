// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/slices"

	"gioui.org/glwrap/gl"
)

// IntParam is a texture or sampler parameter with an integer value.
type IntParam struct {
	Name  gl.Enum
	Value int
}

// FloatParam is a texture or sampler parameter with a float value.
type FloatParam struct {
	Name  gl.Enum
	Value float32
}

// TextureLayout describes the storage and parameters of a texture.
type TextureLayout struct {
	InternalFormat gl.Enum
	Width          int
	Height         int
	// Depth is the depth of 3D textures and the layer count of arrays.
	// Cubemap arrays count layer-faces, a multiple of 6.
	Depth  int
	Format gl.Enum
	Type   gl.Enum
	// Levels is the number of mip levels to allocate. Zero means one
	// level, or the full chain when mipmaps are generated.
	Levels int
	// IntParams and FloatParams are applied in order, integer
	// parameters first.
	IntParams   []IntParam
	FloatParams []FloatParam
}

// Clone returns a copy of l that shares no parameter storage with it.
func (l TextureLayout) Clone() TextureLayout {
	l.IntParams = slices.Clone(l.IntParams)
	l.FloatParams = slices.Clone(l.FloatParams)
	return l
}

// Equal reports whether two layouts describe the same configuration.
func (l TextureLayout) Equal(o TextureLayout) bool {
	return l.InternalFormat == o.InternalFormat &&
		l.Width == o.Width && l.Height == o.Height && l.Depth == o.Depth &&
		l.Format == o.Format && l.Type == o.Type && l.Levels == o.Levels &&
		slices.Equal(l.IntParams, o.IntParams) && slices.Equal(l.FloatParams, o.FloatParams)
}

// MipLevels returns the number of levels to allocate for a texture
// whose largest dimension is maxDim. A full chain has
// floor(log2(maxDim))+1 levels.
func MipLevels(maxDim, requested int, genMipmap bool) int {
	if !genMipmap {
		return max(requested, 1)
	}
	full := bits.Len(uint(max(maxDim, 1)))
	if requested > 0 && requested < full {
		return requested
	}
	return full
}

// Texture is implemented by every texture variant.
type Texture interface {
	// ID returns the application-chosen identifier.
	ID() string
	Name() gl.Texture
	Target() gl.Enum
	InternalFormat() gl.Enum
	Format() gl.Enum
	Type() gl.Enum
	Levels() int
	// Layout returns the layout of the current allocation.
	Layout() TextureLayout
	Bind()
	BindUnit(unit int)
	BindImage(unit int, access gl.Enum) error
	BindImageLevel(unit, level int, layered bool, layer int, access gl.Enum) error
	UpdateMipmaps() error
	// Handle returns the bindless handle, resolving it on first use.
	Handle() (uint64, error)
	MakeResident() error
	MakeNonResident() error
	ImageHandle(level int, layered bool, layer int) (uint64, error)
	SetDebugLabel(label string)
	Release()
}

// texture holds the state shared by all variants.
type texture struct {
	f      gl.Functions
	id     string
	obj    gl.Texture
	target gl.Enum
	layout TextureLayout
	levels int
	// handle is the cached bindless handle; zero when unresolved.
	handle   uint64
	resident bool
}

func (t *texture) ID() string              { return t.id }
func (t *texture) Name() gl.Texture        { return t.obj }
func (t *texture) Target() gl.Enum         { return t.target }
func (t *texture) InternalFormat() gl.Enum { return t.layout.InternalFormat }
func (t *texture) Format() gl.Enum         { return t.layout.Format }
func (t *texture) Type() gl.Enum           { return t.layout.Type }
func (t *texture) Levels() int             { return t.levels }

// Layout returns the layout of the current allocation, with Levels set
// to the number of levels actually allocated.
func (t *texture) Layout() TextureLayout {
	l := t.layout.Clone()
	l.Levels = t.levels
	return l
}

// Bind binds the texture to its target on the active texture unit.
func (t *texture) Bind() {
	t.f.BindTexture(t.target, t.obj)
}

// BindUnit binds the texture to a texture unit.
func (t *texture) BindUnit(unit int) {
	t.f.BindTextureUnit(unit, t.obj)
}

// BindImage binds all layers of level 0 to an image unit.
func (t *texture) BindImage(unit int, access gl.Enum) error {
	return t.BindImageLevel(unit, 0, true, 0, access)
}

func (t *texture) BindImageLevel(unit, level int, layered bool, layer int, access gl.Enum) error {
	gl.Check(t.f)
	t.f.BindImageTexture(unit, t.obj, level, layered, layer, access, t.layout.InternalFormat)
	return t.check("BindImage")
}

// UpdateMipmaps regenerates levels 1 and up from level 0.
func (t *texture) UpdateMipmaps() error {
	gl.Check(t.f)
	t.f.GenerateTextureMipmap(t.obj)
	return t.check("UpdateMipmaps")
}

// SetParameteri sets an integer parameter on the current allocation.
// It is not recorded in the layout and does not survive Reload.
func (t *texture) SetParameteri(pname gl.Enum, v int) error {
	gl.Check(t.f)
	t.f.TextureParameteri(t.obj, pname, v)
	return t.check("SetParameter")
}

// SetParameterf is like SetParameteri for float parameters.
func (t *texture) SetParameterf(pname gl.Enum, v float32) error {
	gl.Check(t.f)
	t.f.TextureParameterf(t.obj, pname, v)
	return t.check("SetParameter")
}

func (t *texture) Handle() (uint64, error) {
	if t.handle != 0 {
		return t.handle, nil
	}
	gl.Check(t.f)
	h := t.f.GetTextureHandle(t.obj)
	if err := t.check("Handle"); err != nil {
		return 0, err
	}
	t.handle = h
	return h, nil
}

// MakeResident makes the bindless handle resident, resolving it first
// if needed.
func (t *texture) MakeResident() error {
	h, err := t.Handle()
	if err != nil {
		return err
	}
	gl.Check(t.f)
	t.f.MakeTextureHandleResident(h)
	if err := t.check("MakeResident"); err != nil {
		return err
	}
	t.resident = true
	return nil
}

func (t *texture) MakeNonResident() error {
	h, err := t.Handle()
	if err != nil {
		return err
	}
	gl.Check(t.f)
	t.f.MakeTextureHandleNonResident(h)
	if err := t.check("MakeNonResident"); err != nil {
		return err
	}
	t.resident = false
	return nil
}

// Resident reports whether the bindless handle was made resident.
func (t *texture) Resident() bool {
	return t.resident
}

// ImageHandle returns a bindless image handle for a level and layer.
func (t *texture) ImageHandle(level int, layered bool, layer int) (uint64, error) {
	gl.Check(t.f)
	h := t.f.GetImageHandle(t.obj, level, layered, layer, t.layout.InternalFormat)
	if err := t.check("ImageHandle"); err != nil {
		return 0, err
	}
	return h, nil
}

// SetDebugLabel names the texture in driver debug output.
func (t *texture) SetDebugLabel(label string) {
	t.f.ObjectLabel(gl.TEXTURE, t.obj.V, label)
}

// Release deletes the texture object.
func (t *texture) Release() {
	if !t.obj.Valid() {
		return
	}
	Logger().Debug("texture released", "id", t.id, "name", t.obj.V)
	t.f.DeleteTexture(t.obj)
	t.obj = gl.Texture{}
	t.handle = 0
	t.resident = false
}

func (t *texture) check(op string) error {
	if err := gl.Check(t.f); err != nil {
		return newError(KindTexture, op, t.id, err)
	}
	return nil
}

// allocate creates a fresh texture object for l, replacing the current
// one only on success. dims is the number of storage dimensions.
func (t *texture) allocate(op string, l TextureLayout, data []byte, genMipmap bool, dims int) error {
	if err := checkLayout(l, dims); err != nil {
		return newError(KindTexture, op, t.id, err)
	}
	f := t.f
	gl.Check(f)
	obj := f.CreateTexture(t.target)
	if t.target == gl.TEXTURE_CUBE_MAP_ARRAY {
		for _, p := range cubemapDefaults {
			f.TextureParameteri(obj, p.Name, p.Value)
		}
	}
	for _, p := range l.IntParams {
		f.TextureParameteri(obj, p.Name, p.Value)
	}
	for _, p := range l.FloatParams {
		f.TextureParameterf(obj, p.Name, p.Value)
	}
	maxDim := l.Width
	if dims >= 2 {
		maxDim = max(maxDim, l.Height)
	}
	if t.target == gl.TEXTURE_3D {
		maxDim = max(maxDim, l.Depth)
	}
	levels := MipLevels(maxDim, l.Levels, genMipmap)
	switch dims {
	case 1:
		f.TextureStorage1D(obj, levels, l.InternalFormat, l.Width)
		if data != nil {
			f.TextureSubImage1D(obj, 0, 0, l.Width, l.Format, l.Type, data)
		}
	case 2:
		f.TextureStorage2D(obj, levels, l.InternalFormat, l.Width, l.Height)
		if data != nil {
			f.TextureSubImage2D(obj, 0, 0, 0, l.Width, l.Height, l.Format, l.Type, data)
		}
	default:
		f.TextureStorage3D(obj, levels, l.InternalFormat, l.Width, l.Height, l.Depth)
		if data != nil {
			f.TextureSubImage3D(obj, 0, 0, 0, 0, l.Width, l.Height, l.Depth, l.Format, l.Type, data)
		}
	}
	if genMipmap {
		if t.target == gl.TEXTURE_CUBE_MAP_ARRAY {
			f.TextureParameteri(obj, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		}
		f.GenerateTextureMipmap(obj)
	}
	if err := gl.Check(f); err != nil {
		f.DeleteTexture(obj)
		return newError(KindTexture, op, t.id, err)
	}
	if t.obj.Valid() {
		f.DeleteTexture(t.obj)
	}
	t.obj = obj
	t.layout = l.Clone()
	t.levels = levels
	t.handle = 0
	t.resident = false
	Logger().Debug("texture allocated", "id", t.id, "name", obj.V, "target", uint(t.target),
		"width", l.Width, "height", l.Height, "depth", l.Depth, "levels", levels)
	return nil
}

// cubemapDefaults are applied to cubemap arrays before the layout's own
// parameters.
var cubemapDefaults = []IntParam{
	{gl.TEXTURE_MAG_FILTER, gl.NEAREST},
	{gl.TEXTURE_MIN_FILTER, gl.NEAREST},
	{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE},
	{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE},
	{gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE},
}

func checkLayout(l TextureLayout, dims int) error {
	if l.Width < 1 || (dims >= 2 && l.Height < 1) || (dims >= 3 && l.Depth < 1) || l.Levels < 0 {
		return fmt.Errorf("%w: %dx%dx%d with %d levels", ErrInvalidArgument, l.Width, l.Height, l.Depth, l.Levels)
	}
	return nil
}
