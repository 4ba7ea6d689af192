// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/internal/gltest"
)

func rgba8Layout(w, h, d int) TextureLayout {
	return TextureLayout{
		InternalFormat: gl.RGBA8,
		Width:          w,
		Height:         h,
		Depth:          d,
		Format:         gl.RGBA,
		Type:           gl.UNSIGNED_BYTE,
	}
}

func TestMipLevels(t *testing.T) {
	for _, tc := range []struct {
		maxDim, requested int
		gen               bool
		want              int
	}{
		{256, 0, false, 1},
		{256, 3, false, 3},
		{256, 0, true, 9},
		{255, 0, true, 8},
		{1, 0, true, 1},
		{300, 4, true, 4},
		{4, 10, true, 3},
	} {
		got := MipLevels(tc.maxDim, tc.requested, tc.gen)
		assert.Equal(t, tc.want, got, "MipLevels(%d, %d, %v)", tc.maxDim, tc.requested, tc.gen)
	}
}

func TestTextureLayoutEqual(t *testing.T) {
	a := rgba8Layout(4, 4, 1)
	a.IntParams = []IntParam{{gl.TEXTURE_MIN_FILTER, gl.LINEAR}}
	b := a.Clone()
	assert.True(t, a.Equal(b))
	b.IntParams[0].Value = gl.NEAREST
	assert.False(t, a.Equal(b))
	assert.Equal(t, gl.LINEAR, a.IntParams[0].Value, "Clone shares parameter storage")
}

func TestTexture2D(t *testing.T) {
	f := gltest.New()
	l := rgba8Layout(4, 2, 1)
	l.IntParams = []IntParam{
		{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
		{gl.TEXTURE_WRAP_S, gl.REPEAT},
	}
	l.FloatParams = []FloatParam{{gl.TEXTURE_LOD_BIAS, 0.5}}
	pixels := make([]byte, 4*2*4)
	pixels[0] = 0xff
	tex, err := NewTexture2D(f, "albedo", l, pixels, false)
	require.NoError(t, err)
	defer tex.Release()

	ts := f.Texture(tex.Name())
	require.NotNil(t, ts)
	assert.Equal(t, gl.Enum(gl.TEXTURE_2D), ts.Target)
	assert.Equal(t, 1, ts.Levels)
	assert.Equal(t, [3]int{4, 2, 1}, [3]int{ts.Width, ts.Height, ts.Depth})
	assert.Equal(t, pixels, ts.Data)
	assert.Equal(t, []gl.Enum{gl.TEXTURE_MIN_FILTER, gl.TEXTURE_WRAP_S, gl.TEXTURE_LOD_BIAS}, ts.ParamOrder)
	assert.Equal(t, float32(0.5), ts.FloatParams[gl.TEXTURE_LOD_BIAS])

	assert.Equal(t, "albedo", tex.ID())
	assert.Equal(t, 4, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.Equal(t, gl.Enum(gl.RGBA8), tex.InternalFormat())
	assert.Equal(t, 1, tex.Levels())
	assert.Equal(t, 1, tex.Layout().Levels)
}

func TestTexture2DMipmaps(t *testing.T) {
	f := gltest.New()
	tex, err := NewTexture2D(f, "mips", rgba8Layout(16, 4, 1), nil, true)
	require.NoError(t, err)
	defer tex.Release()
	assert.Equal(t, 5, tex.Levels())
	assert.Equal(t, 1, f.Texture(tex.Name()).MipmapsBuilt)

	require.NoError(t, tex.UpdateMipmaps())
	assert.Equal(t, 2, f.Texture(tex.Name()).MipmapsBuilt)
}

func TestTextureInvalidLayout(t *testing.T) {
	f := gltest.New()
	_, err := NewTexture2D(f, "empty", rgba8Layout(0, 4, 1), nil, false)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, ErrTexture)
	assert.Zero(t, f.CallCount("CreateTexture"))
}

func TestTextureDriverError(t *testing.T) {
	f := gltest.New()
	f.MaxTextureSize = 64
	_, err := NewTexture2D(f, "huge", rgba8Layout(128, 4, 1), nil, false)
	require.ErrorIs(t, err, ErrTexture)
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, gl.Enum(gl.INVALID_VALUE), oe.Code)
	assert.Equal(t, "huge", oe.ID)
	assert.Zero(t, f.LiveObjects())
}

func TestTextureReload(t *testing.T) {
	f := gltest.New()
	tex, err := NewTexture2D(f, "target", rgba8Layout(4, 4, 1), nil, false)
	require.NoError(t, err)
	defer tex.Release()
	old := tex.Name()
	h, err := tex.Handle()
	require.NoError(t, err)
	require.NoError(t, tex.MakeResident())
	require.True(t, f.Resident(h))

	require.NoError(t, tex.Reload(rgba8Layout(8, 2, 1), nil, true))
	assert.NotEqual(t, old, tex.Name())
	assert.Nil(t, f.Texture(old), "old storage not deleted")
	assert.Equal(t, 8, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.Equal(t, 4, tex.Levels())
	assert.False(t, tex.Resident())

	h2, err := tex.Handle()
	require.NoError(t, err)
	assert.NotEqual(t, h, h2, "bindless handle survived reload")
	assert.Equal(t, 1, f.LiveObjects())
}

func TestTextureReloadFailureKeepsOld(t *testing.T) {
	f := gltest.New()
	tex, err := NewTexture2D(f, "keep", rgba8Layout(4, 4, 1), nil, false)
	require.NoError(t, err)
	defer tex.Release()
	old := tex.Name()

	f.FailOn("TextureStorage2D", gl.OUT_OF_MEMORY)
	err = tex.Reload(rgba8Layout(8, 8, 1), nil, false)
	require.ErrorIs(t, err, ErrTexture)
	assert.Equal(t, old, tex.Name())
	assert.Equal(t, 4, tex.Width())
	assert.NotNil(t, f.Texture(old))
	assert.Equal(t, 1, f.LiveObjects())
}

func TestTextureHandleCached(t *testing.T) {
	f := gltest.New()
	tex, err := NewTexture2D(f, "bindless", rgba8Layout(2, 2, 1), nil, false)
	require.NoError(t, err)
	defer tex.Release()

	h1, err := tex.Handle()
	require.NoError(t, err)
	h2, err := tex.Handle()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, f.CallCount("GetTextureHandle"))

	require.NoError(t, tex.MakeResident())
	assert.True(t, tex.Resident())
	require.NoError(t, tex.MakeNonResident())
	assert.False(t, f.Resident(h1))
	// A second release of residency is a driver error.
	assert.ErrorIs(t, tex.MakeNonResident(), ErrTexture)

	ih, err := tex.ImageHandle(0, false, 0)
	require.NoError(t, err)
	assert.NotZero(t, ih)
	_, err = tex.ImageHandle(3, false, 0)
	assert.ErrorIs(t, err, ErrTexture)
}

func TestTextureBinding(t *testing.T) {
	f := gltest.New()
	tex, err := NewTexture2D(f, "bind", rgba8Layout(2, 2, 1), nil, false)
	require.NoError(t, err)
	defer tex.Release()

	tex.Bind()
	assert.Equal(t, tex.Name(), f.BoundTexture(gl.TEXTURE_2D))
	tex.BindUnit(3)
	assert.Equal(t, tex.Name(), f.TextureUnit(3))
	require.NoError(t, tex.BindImage(1, gl.READ_WRITE))
	img := f.ImageUnit(1)
	assert.Equal(t, tex.Name().V, img.Texture)
	assert.Equal(t, gl.Enum(gl.RGBA8), img.Format)
	assert.True(t, img.Layered)

	tex.SetDebugLabel("bind")
	assert.Equal(t, "bind", f.Label(gl.TEXTURE, tex.Name().V))
	require.NoError(t, tex.SetParameteri(gl.TEXTURE_MAG_FILTER, gl.NEAREST))
	assert.Equal(t, gl.NEAREST, f.Texture(tex.Name()).IntParams[gl.TEXTURE_MAG_FILTER])
}

func TestSubImage2D(t *testing.T) {
	f := gltest.New()
	tex, err := NewTexture2D(f, "sub", rgba8Layout(4, 4, 1), make([]byte, 64), true)
	require.NoError(t, err)
	defer tex.Release()

	texel := []byte{1, 2, 3, 4}
	require.NoError(t, tex.SubImage2D(0, image.Pt(3, 3), image.Pt(1, 1), texel))
	assert.Equal(t, texel, f.Texture(tex.Name()).Data[60:64])
	require.NoError(t, tex.SubImage2D(2, image.Pt(0, 0), image.Pt(1, 1), texel))

	f.ResetCalls()
	assert.ErrorIs(t, tex.SubImage2D(0, image.Pt(3, 3), image.Pt(2, 1), make([]byte, 8)), ErrOutOfBounds)
	assert.ErrorIs(t, tex.SubImage2D(1, image.Pt(0, 0), image.Pt(4, 4), make([]byte, 64)), ErrOutOfBounds)
	assert.ErrorIs(t, tex.SubImage2D(3, image.Pt(0, 0), image.Pt(1, 1), texel), ErrOutOfBounds)
	assert.ErrorIs(t, tex.SubImage2D(0, image.Pt(0, 0), image.Pt(2, 2), texel), ErrOutOfBounds)
	assert.ErrorIs(t, tex.SubImage2D(-1, image.Pt(0, 0), image.Pt(1, 1), texel), ErrOutOfBounds)
	assert.ErrorIs(t, tex.SubImage2D(0, image.Pt(2, 2), image.Pt(-1, -1), texel), ErrOutOfBounds)
	assert.Zero(t, f.CallCount("TextureSubImage2D"))
}

func TestTexture1D(t *testing.T) {
	f := gltest.New()
	l := TextureLayout{InternalFormat: gl.R32F, Width: 8, Format: gl.RED, Type: gl.FLOAT}
	tex, err := NewTexture1D(f, "curve", l, make([]byte, 32), false)
	require.NoError(t, err)
	defer tex.Release()
	assert.Equal(t, gl.Enum(gl.TEXTURE_1D), tex.Target())
	assert.Equal(t, 8, tex.Width())
	assert.Len(t, f.Texture(tex.Name()).Data, 32)
}

func TestTexture3DAndArray(t *testing.T) {
	f := gltest.New()
	vol, err := NewTexture3D(f, "volume", rgba8Layout(8, 4, 2), nil, true)
	require.NoError(t, err)
	defer vol.Release()
	assert.Equal(t, 4, vol.Levels())
	assert.Equal(t, 2, vol.Depth())

	arr, err := NewTexture2DArray(f, "layers", rgba8Layout(4, 4, 16), make([]byte, 4*4*16*4), true)
	require.NoError(t, err)
	defer arr.Release()
	// Array layers do not contribute to the mip chain.
	assert.Equal(t, 3, arr.Levels())
	assert.Equal(t, 16, arr.Layers())
	assert.Equal(t, gl.Enum(gl.TEXTURE_2D_ARRAY), f.Texture(arr.Name()).Target)

	require.NoError(t, arr.Reload(rgba8Layout(4, 4, 4), nil, false))
	assert.Equal(t, 4, arr.Layers())
}

func TestTextureCubemapArray(t *testing.T) {
	f := gltest.New()
	l := rgba8Layout(8, 8, 12)
	l.IntParams = []IntParam{{gl.TEXTURE_MAG_FILTER, gl.LINEAR}}
	cube, err := NewTextureCubemapArray(f, "probes", l, nil, true)
	require.NoError(t, err)
	defer cube.Release()
	assert.Equal(t, 2, cube.Cubes())

	ts := f.Texture(cube.Name())
	// Layout parameters override the cubemap defaults.
	assert.Equal(t, gl.LINEAR, ts.IntParams[gl.TEXTURE_MAG_FILTER])
	assert.Equal(t, gl.CLAMP_TO_EDGE, ts.IntParams[gl.TEXTURE_WRAP_R])
	assert.Equal(t, gl.LINEAR_MIPMAP_LINEAR, ts.IntParams[gl.TEXTURE_MIN_FILTER])

	_, err = NewTextureCubemapArray(f, "bad", rgba8Layout(8, 8, 7), nil, false)
	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, gl.Enum(gl.INVALID_VALUE), oe.Code)
}

func TestTexture3DView(t *testing.T) {
	f := gltest.New()
	src, err := NewTexture3D(f, "volume", rgba8Layout(16, 16, 16), nil, true)
	require.NoError(t, err)
	defer src.Release()

	vl := rgba8Layout(0, 0, 0)
	vl.IntParams = []IntParam{{gl.TEXTURE_MIN_FILTER, gl.NEAREST}}
	view, err := NewTexture3DView(f, "coarse", src, vl, 2, 3, 0, 1)
	require.NoError(t, err)

	vs := f.Texture(view.Name())
	assert.Equal(t, src.Name().V, vs.ViewOf)
	assert.Equal(t, 2, vs.MinLevel)
	assert.Equal(t, gl.NEAREST, vs.IntParams[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, 3, view.Levels())
	assert.Equal(t, 4, view.Layout().Width)
	assert.Same(t, src, view.Source())
	assert.Equal(t, 2, view.MinLevel())
	minLayer, numLayers := view.Layers()
	assert.Equal(t, [2]int{0, 1}, [2]int{minLayer, numLayers})

	view.Release()
	assert.NotNil(t, f.Texture(src.Name()), "releasing a view deleted its source")
	assert.Nil(t, view.Source())

	_, err = NewTexture3DView(f, "past", src, vl, 3, 3, 0, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	f.ResetCalls()
	for _, layers := range [][2]int{{1, 1}, {0, 2}, {0, 0}, {-1, 1}} {
		_, err = NewTexture3DView(f, "layered", src, vl, 0, 1, layers[0], layers[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "layers %v", layers)
	}
	assert.Zero(t, f.CallCount("TextureView"))
	src.Release()
	_, err = NewTexture3DView(f, "gone", src, vl, 0, 1, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTextureInterface(t *testing.T) {
	f := gltest.New()
	var texs []Texture
	t2, err := NewTexture2D(f, "a", rgba8Layout(2, 2, 1), nil, false)
	require.NoError(t, err)
	texs = append(texs, t2)
	t3, err := NewTexture3D(f, "b", rgba8Layout(2, 2, 2), nil, false)
	require.NoError(t, err)
	texs = append(texs, t3)
	for _, tex := range texs {
		tex.Release()
		tex.Release()
	}
	assert.Zero(t, f.LiveObjects())
}
