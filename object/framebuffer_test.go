// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/internal/gltest"
)

func TestFramebufferDepthStencil(t *testing.T) {
	for _, tc := range []struct {
		ds         DepthStencilFormat
		attachment gl.Enum
		ifmt       gl.Enum
	}{
		{Depth24, gl.DEPTH_ATTACHMENT, gl.DEPTH_COMPONENT24},
		{Depth32F, gl.DEPTH_ATTACHMENT, gl.DEPTH_COMPONENT32F},
		{Depth24Stencil8, gl.DEPTH_STENCIL_ATTACHMENT, gl.DEPTH24_STENCIL8},
		{Depth32FStencil8, gl.DEPTH_STENCIL_ATTACHMENT, gl.DEPTH32F_STENCIL8},
	} {
		t.Run(tc.ds.String(), func(t *testing.T) {
			f := gltest.New()
			fb, err := NewFramebuffer(f, 32, 16, tc.ds)
			require.NoError(t, err)
			defer fb.Release()

			ds := fb.DepthStencil()
			require.NotNil(t, ds)
			assert.Equal(t, tc.ifmt, ds.InternalFormat())
			assert.Equal(t, ds.Name().V, f.Framebuffer(fb.Name()).Attachments[tc.attachment])
			assert.Equal(t, tc.ds, fb.DepthFormat())
		})
	}

	f := gltest.New()
	fb, err := NewFramebuffer(f, 8, 8, DepthStencilNone)
	require.NoError(t, err)
	assert.Nil(t, fb.DepthStencil())
	assert.Empty(t, f.Framebuffer(fb.Name()).Attachments)
	assert.ErrorIs(t, fb.BindDepthStencil(0), ErrInvalidArgument)
	fb.Release()

	_, err = NewFramebuffer(f, 8, 8, DepthStencilFormat(42))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewFramebuffer(f, 0, 8, Depth24)
	assert.ErrorIs(t, err, ErrFramebuffer)
	assert.Zero(t, f.LiveObjects())
}

func TestFramebufferColorAttachments(t *testing.T) {
	f := gltest.New()
	f.MaxColorAttachments = 2
	fb, err := NewFramebuffer(f, 4, 4, Depth24)
	require.NoError(t, err)
	defer fb.Release()

	require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "albedo"))
	require.NoError(t, fb.CreateColorAttachment(gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT, "normal"))
	f.ResetCalls()
	err = fb.CreateColorAttachment(gl.R32F, gl.RED, gl.FLOAT, "depth")
	require.ErrorIs(t, err, ErrAttachmentLimit)
	assert.ErrorIs(t, err, ErrFramebuffer)
	assert.Zero(t, f.CallCount("CreateTexture"), "texture allocated past the limit")
	assert.Equal(t, 2, fb.NumColorAttachments())

	tex, semantic := fb.ColorAttachment(1)
	require.NotNil(t, tex)
	assert.Equal(t, "normal", semantic)
	assert.Equal(t, gl.Enum(gl.RGBA16F), tex.InternalFormat())
	ts := f.Texture(tex.Name())
	assert.Equal(t, gl.NEAREST, ts.IntParams[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, gl.CLAMP_TO_EDGE, ts.IntParams[gl.TEXTURE_WRAP_T])
	assert.Equal(t, tex.Name().V, f.Framebuffer(fb.Name()).Attachments[gl.COLOR_ATTACHMENT0+1])
	tex, _ = fb.ColorAttachment(2)
	assert.Nil(t, tex)

	assert.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT0 + 1}, fb.DrawBuffers())
}

func TestFramebufferBind(t *testing.T) {
	f := gltest.New()
	fb, err := NewFramebuffer(f, 4, 4, DepthStencilNone)
	require.NoError(t, err)
	defer fb.Release()
	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, s))
	}

	fb.Bind()
	draw, read := f.BoundFramebuffers()
	assert.Equal(t, fb.Name(), draw)
	assert.Equal(t, fb.Name(), read)
	assert.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0, gl.COLOR_ATTACHMENT0 + 1, gl.COLOR_ATTACHMENT0 + 2}, f.DrawBufferList())

	require.NoError(t, fb.BindDrawBuffers(2, 0))
	assert.Equal(t, []gl.Enum{gl.COLOR_ATTACHMENT0 + 2, gl.COLOR_ATTACHMENT0}, f.DrawBufferList())
	assert.ErrorIs(t, fb.BindDrawBuffers(3), ErrOutOfBounds)

	f.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
	require.NoError(t, fb.BindToRead(1))
	draw, read = f.BoundFramebuffers()
	assert.False(t, draw.Valid())
	assert.Equal(t, fb.Name(), read)
	assert.Equal(t, gl.Enum(gl.COLOR_ATTACHMENT0+1), f.Framebuffer(fb.Name()).ReadBuffer)
	assert.ErrorIs(t, fb.BindToRead(-1), ErrOutOfBounds)

	fb.BindToDraw()
	draw, _ = f.BoundFramebuffers()
	assert.Equal(t, fb.Name(), draw)

	require.NoError(t, fb.BindColorAttachment(2, 5))
	tex, _ := fb.ColorAttachment(2)
	assert.Equal(t, tex.Name(), f.TextureUnit(5))
	assert.ErrorIs(t, fb.BindColorAttachment(4, 0), ErrOutOfBounds)
}

func TestFramebufferResize(t *testing.T) {
	f := gltest.New()
	fb, err := NewFramebuffer(f, 4, 4, Depth24Stencil8)
	require.NoError(t, err)
	defer fb.Release()
	require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"))
	color, _ := fb.ColorAttachment(0)
	oldColor, oldDepth := color.Name(), fb.DepthStencil().Name()

	require.NoError(t, fb.Resize(64, 32))
	assert.Equal(t, 64, fb.Width())
	assert.Equal(t, 32, fb.Height())

	attachments := f.Framebuffer(fb.Name()).Attachments
	assert.NotEqual(t, oldColor, color.Name())
	assert.NotEqual(t, oldDepth, fb.DepthStencil().Name())
	assert.Equal(t, color.Name().V, attachments[gl.COLOR_ATTACHMENT0])
	assert.Equal(t, fb.DepthStencil().Name().V, attachments[gl.DEPTH_STENCIL_ATTACHMENT])

	ts := f.Texture(color.Name())
	assert.Equal(t, [2]int{64, 32}, [2]int{ts.Width, ts.Height})
	assert.Equal(t, gl.Enum(gl.RGBA8), ts.InternalFormat)
	assert.Equal(t, gl.NEAREST, ts.IntParams[gl.TEXTURE_MAG_FILTER])
	assert.Equal(t, 3, f.LiveObjects())

	assert.ErrorIs(t, fb.Resize(0, 1), ErrInvalidArgument)
	assert.Equal(t, 64, fb.Width())
}

func TestFramebufferResizeFailure(t *testing.T) {
	f := gltest.New()
	fb, err := NewFramebuffer(f, 4, 4, Depth24)
	require.NoError(t, err)
	defer fb.Release()
	require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"))
	color, _ := fb.ColorAttachment(0)
	depth := fb.DepthStencil()

	checkSize := func(t *testing.T) {
		t.Helper()
		assert.Equal(t, [2]int{4, 4}, [2]int{fb.Width(), fb.Height()})
		for _, tex := range []*Texture2D{color, depth} {
			ts := f.Texture(tex.Name())
			require.NotNil(t, ts)
			assert.Equal(t, [2]int{4, 4}, [2]int{ts.Width, ts.Height})
			assert.Equal(t, [2]int{4, 4}, [2]int{tex.Width(), tex.Height()})
		}
		attachments := f.Framebuffer(fb.Name()).Attachments
		assert.Equal(t, color.Name().V, attachments[gl.COLOR_ATTACHMENT0])
		assert.Equal(t, depth.Name().V, attachments[gl.DEPTH_ATTACHMENT])
		assert.Equal(t, 3, f.LiveObjects())
	}

	t.Run("reattach", func(t *testing.T) {
		f.FailOn("NamedFramebufferTexture", gl.INVALID_OPERATION)
		err := fb.Resize(8, 8)
		require.ErrorIs(t, err, ErrFramebuffer)
		var oe *Error
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, "Resize", oe.Op)
		assert.Equal(t, gl.Enum(gl.INVALID_OPERATION), oe.Code)
		checkSize(t)
	})
	t.Run("reload", func(t *testing.T) {
		old := color.Name()
		f.FailOn("TextureStorage2D", gl.OUT_OF_MEMORY)
		err := fb.Resize(8, 8)
		require.ErrorIs(t, err, ErrFramebuffer)
		assert.ErrorIs(t, err, ErrTexture)
		assert.Equal(t, old, color.Name())
		checkSize(t)
	})

	require.NoError(t, fb.Resize(8, 8))
	assert.Equal(t, 8, depth.Width())
	assert.Equal(t, 8, f.Texture(color.Name()).Width)
}

func TestFramebufferCheckStatus(t *testing.T) {
	f := gltest.New()
	fb, err := NewFramebuffer(f, 4, 4, DepthStencilNone)
	require.NoError(t, err)
	defer fb.Release()

	err = fb.CheckStatus(gl.FRAMEBUFFER)
	require.ErrorIs(t, err, ErrIncomplete)
	var oe *Error
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, KindFramebuffer, oe.Kind)
	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT), oe.Code)
	assert.Contains(t, err.Error(), "missing attachment")

	require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"))
	before := len(f.Calls)
	assert.NoError(t, fb.CheckStatus(gl.DRAW_FRAMEBUFFER))
	assert.Equal(t, []string{"CheckNamedFramebufferStatus"}, f.Calls[before:])

	f.FramebufferStatus = gl.FRAMEBUFFER_UNSUPPORTED
	require.ErrorAs(t, fb.CheckStatus(gl.FRAMEBUFFER), &oe)
	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_UNSUPPORTED), oe.Code)
}

func TestFramebufferReadImage(t *testing.T) {
	f := gltest.New()
	fb, err := NewFramebuffer(f, 2, 2, DepthStencilNone)
	require.NoError(t, err)
	defer fb.Release()
	require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"))
	require.NoError(t, fb.CreateColorAttachment(gl.R32F, gl.RED, gl.FLOAT, "value"))

	color, _ := fb.ColorAttachment(0)
	// Bottom row red, top row blue, in GL's bottom-up order.
	require.NoError(t, color.SubImage2D(0, image.Pt(0, 0), image.Pt(2, 2), []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}))

	raw := make([]byte, 4)
	require.NoError(t, fb.ReadPixels(0, image.Rect(1, 0, 2, 1), raw))
	assert.Equal(t, []byte{255, 0, 0, 255}, raw)

	img, err := fb.ReadImage(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pix[0:4], "top row should come first")
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pix[8:12])

	_, err = fb.ReadImage(1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, fb.ReadPixels(0, image.Rect(0, 0, 3, 1), make([]byte, 12)), ErrOutOfBounds)
	assert.ErrorIs(t, fb.ReadPixels(0, image.Rect(0, 0, 2, 2), make([]byte, 8)), ErrOutOfBounds)
	assert.ErrorIs(t, fb.ReadPixels(2, image.Rect(0, 0, 1, 1), make([]byte, 4)), ErrOutOfBounds)
}

func TestFramebufferRelease(t *testing.T) {
	f := gltest.New()
	fb, err := NewFramebuffer(f, 4, 4, Depth32F)
	require.NoError(t, err)
	require.NoError(t, fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"))
	fb.SetDebugLabel("gbuffer")
	assert.Equal(t, "gbuffer", f.Label(gl.FRAMEBUFFER, fb.Name().V))
	assert.Equal(t, "gbuffer", fb.DebugLabel())

	fb.Release()
	fb.Release()
	assert.Zero(t, f.LiveObjects())
}
