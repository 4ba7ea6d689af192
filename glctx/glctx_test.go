// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"image"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/object"
)

func newContext(t *testing.T) *Context {
	if runtime.GOOS == "darwin" {
		t.Skip("GLFW must run on the main thread")
	}
	ctx, err := New(Options{})
	if err != nil {
		t.Skipf("no context available: %v", err)
	}
	t.Cleanup(ctx.Release)
	return ctx
}

func TestContextBuffer(t *testing.T) {
	ctx := newContext(t)
	assert.GreaterOrEqual(t, ctx.Version()[0], 4)
	err := ctx.Do(func(f gl.Functions) error {
		b, err := object.NewBuffer(f, gl.ARRAY_BUFFER, []byte{1, 2, 3, 4, 5, 6, 7, 8}, gl.STATIC_DRAW)
		if err != nil {
			return err
		}
		defer b.Release()
		if err := b.BufferSubData([]byte{9, 9}, 2); err != nil {
			return err
		}
		got := make([]byte, 8)
		if err := b.Download(got, 0); err != nil {
			return err
		}
		assert.Equal(t, []byte{1, 2, 9, 9, 5, 6, 7, 8}, got)
		return nil
	})
	require.NoError(t, err)
}

func TestContextFramebuffer(t *testing.T) {
	ctx := newContext(t)
	err := ctx.Do(func(f gl.Functions) error {
		fb, err := object.NewFramebuffer(f, 4, 4, object.Depth24)
		if err != nil {
			return err
		}
		defer fb.Release()
		if err := fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"); err != nil {
			return err
		}
		if err := fb.CheckStatus(gl.FRAMEBUFFER); err != nil {
			return err
		}
		fb.Bind()
		f.Viewport(0, 0, 4, 4)
		f.ClearColor(1, 0, 0, 1)
		f.Clear(gl.COLOR_BUFFER_BIT)
		pix := make([]byte, 4)
		if err := fb.ReadPixels(0, image.Rect(0, 0, 1, 1), pix); err != nil {
			return err
		}
		f.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
		assert.Equal(t, []byte{255, 0, 0, 255}, pix)
		return nil
	})
	require.NoError(t, err)
}

func TestContextRelease(t *testing.T) {
	ctx := newContext(t)
	ctx.Release()
	ctx.Release()
	err := ctx.Do(func(gl.Functions) error { return nil })
	assert.ErrorIs(t, err, ErrReleased)
}
