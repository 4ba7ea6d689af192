// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/internal/gltest"
)

func TestBufferSubData(t *testing.T) {
	f := gltest.New()
	b, err := NewBuffer(f, gl.ARRAY_BUFFER, make([]byte, 8), gl.STATIC_DRAW)
	require.NoError(t, err)
	defer b.Release()

	require.NoError(t, b.BufferSubData([]byte{1, 2, 3, 4}, 4))
	assert.Equal(t, []byte{0, 0, 0, 0, 1, 2, 3, 4}, f.Buffer(b.Name()).Data)

	// A range ending exactly at the end of the buffer is valid.
	require.NoError(t, b.BufferSubData([]byte{9}, 7))
}

func TestBufferSubDataOutOfBounds(t *testing.T) {
	f := gltest.New()
	b, err := NewBuffer(f, gl.ARRAY_BUFFER, make([]byte, 8), gl.STATIC_DRAW)
	require.NoError(t, err)
	defer b.Release()
	f.ResetCalls()

	for _, tc := range []struct {
		name   string
		data   []byte
		offset int
	}{
		{"past end", make([]byte, 4), 5},
		{"too long", make([]byte, 9), 0},
		{"negative offset", make([]byte, 1), -1},
		{"offset overflows", make([]byte, 4), math.MaxInt - 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := b.BufferSubData(tc.data, tc.offset)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.ErrorIs(t, err, ErrBuffer)
			assert.NotErrorIs(t, err, ErrTexture)
		})
	}
	assert.Zero(t, f.CallCount("NamedBufferSubData"), "driver called despite failed precondition")
	assert.Equal(t, make([]byte, 8), f.Buffer(b.Name()).Data)
}

func TestRebuffer(t *testing.T) {
	f := gltest.New()
	b, err := NewBuffer(f, gl.SHADER_STORAGE_BUFFER, make([]byte, 4), gl.DYNAMIC_DRAW)
	require.NoError(t, err)
	defer b.Release()

	require.NoError(t, b.Rebuffer(make([]byte, 64)))
	assert.Equal(t, 64, b.Size())
	assert.Len(t, f.Buffer(b.Name()).Data, 64)
	// The new size bounds later uploads.
	require.NoError(t, b.BufferSubData(make([]byte, 16), 48))
	assert.ErrorIs(t, b.BufferSubData(make([]byte, 16), 49), ErrOutOfBounds)

	require.NoError(t, b.Rebuffer(nil))
	assert.Zero(t, b.Size())
}

func TestBufferDriverError(t *testing.T) {
	f := gltest.New()
	f.FailOn("NamedBufferData", gl.OUT_OF_MEMORY)
	_, err := NewBuffer(f, gl.ARRAY_BUFFER, make([]byte, 16), gl.STATIC_DRAW)
	require.Error(t, err)

	var oe *Error
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, KindBuffer, oe.Kind)
	assert.Equal(t, gl.Enum(gl.OUT_OF_MEMORY), oe.Code)
	var code gl.Error
	require.True(t, errors.As(err, &code))
	assert.Equal(t, gl.Error(gl.OUT_OF_MEMORY), code)
	assert.Zero(t, f.LiveObjects(), "failed buffer leaked")
}

func TestBufferStaleErrorIgnored(t *testing.T) {
	f := gltest.New()
	f.SetError(gl.INVALID_ENUM)
	b, err := NewBuffer(f, gl.ARRAY_BUFFER, []byte{1}, gl.STATIC_DRAW)
	require.NoError(t, err)
	b.Release()
}

func TestCopyBuffer(t *testing.T) {
	f := gltest.New()
	src, err := NewBuffer(f, gl.COPY_READ_BUFFER, []byte{1, 2, 3, 4}, gl.STATIC_COPY)
	require.NoError(t, err)
	defer src.Release()
	dst, err := NewImmutableBufferSize(f, gl.COPY_WRITE_BUFFER, 6, 0)
	require.NoError(t, err)
	defer dst.Release()

	require.NoError(t, CopyBuffer(src, dst, 1, 2, 3))
	out := make([]byte, 6)
	require.NoError(t, dst.Download(out, 0))
	assert.Equal(t, []byte{0, 0, 2, 3, 4, 0}, out)

	require.NoError(t, CopyAll(src, dst))
	require.NoError(t, dst.Download(out[:4], 0))
	assert.Equal(t, []byte{1, 2, 3, 4}, out[:4])
}

func TestCopyBufferBounds(t *testing.T) {
	f := gltest.New()
	src, err := NewBufferSize(f, gl.COPY_READ_BUFFER, 4, gl.STATIC_COPY)
	require.NoError(t, err)
	defer src.Release()
	dst, err := NewBufferSize(f, gl.COPY_WRITE_BUFFER, 2, gl.STATIC_COPY)
	require.NoError(t, err)
	defer dst.Release()
	f.ResetCalls()

	err = CopyBuffer(src, dst, 2, 0, 4)
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Contains(t, err.Error(), "source range")

	// The source range is checked before the target range.
	err = CopyBuffer(src, dst, 0, 0, 4)
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Contains(t, err.Error(), "target range")

	assert.ErrorIs(t, CopyAll(src, dst), ErrOutOfBounds)
	assert.ErrorIs(t, CopyBuffer(src, dst, math.MaxInt-1, 0, 2), ErrOutOfBounds)
	assert.ErrorIs(t, CopyBuffer(src, dst, 0, math.MaxInt-1, 2), ErrOutOfBounds)
	assert.ErrorIs(t, CopyBuffer(src, dst, 0, 0, -1), ErrOutOfBounds)
	assert.Zero(t, f.CallCount("CopyNamedBufferSubData"))
}

func TestBufferBindings(t *testing.T) {
	f := gltest.New()
	b, err := NewBufferSize(f, gl.UNIFORM_BUFFER, 16, gl.DYNAMIC_DRAW)
	require.NoError(t, err)
	defer b.Release()

	b.Bind()
	assert.Equal(t, b.Name(), f.BoundBuffer(gl.UNIFORM_BUFFER))
	require.NoError(t, b.BindBase(3))
	assert.Equal(t, b.Name(), f.BoundBufferBase(gl.UNIFORM_BUFFER, 3))
	require.NoError(t, b.BindBaseAs(gl.SHADER_STORAGE_BUFFER, 1))
	assert.Equal(t, b.Name(), f.BoundBufferBase(gl.SHADER_STORAGE_BUFFER, 1))
}

func TestImmutableBuffer(t *testing.T) {
	f := gltest.New()
	fixed, err := NewImmutableBuffer(f, gl.ARRAY_BUFFER, []byte{1, 2}, 0)
	require.NoError(t, err)
	defer fixed.Release()
	err = fixed.BufferSubData([]byte{3}, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, f.CallCount("NamedBufferSubData"))

	dyn, err := NewImmutableBufferSize(f, gl.ARRAY_BUFFER, 4, gl.DYNAMIC_STORAGE_BIT)
	require.NoError(t, err)
	defer dyn.Release()
	require.NoError(t, dyn.BufferSubData([]byte{7, 8}, 2))
	assert.Equal(t, []byte{0, 0, 7, 8}, f.Buffer(dyn.Name()).Data)
	assert.ErrorIs(t, dyn.BufferSubData([]byte{7, 8}, 3), ErrOutOfBounds)
	assert.True(t, f.Buffer(dyn.Name()).Immutable)

	_, err = NewImmutableBufferSize(f, gl.ARRAY_BUFFER, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBufferRelease(t *testing.T) {
	f := gltest.New()
	b, err := NewBufferSize(f, gl.ARRAY_BUFFER, 4, gl.STATIC_DRAW)
	require.NoError(t, err)
	b.Release()
	b.Release()
	assert.Zero(t, f.LiveObjects())
	assert.Equal(t, 1, f.CallCount("DeleteBuffer"))
	assert.False(t, b.Name().Valid())
}
