// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"

	"gioui.org/glwrap/gl"
)

// ImmutableBuffer is a buffer object with fixed-size storage, allocated
// with glNamedBufferStorage.
type ImmutableBuffer struct {
	bufferObject
	flags gl.Enum
}

// NewImmutableBuffer creates a buffer holding data. The flags are the
// GL_*_BIT storage flags; GL_DYNAMIC_STORAGE_BIT is required for later
// calls to BufferSubData.
func NewImmutableBuffer(f gl.Functions, target gl.Enum, data []byte, flags gl.Enum) (*ImmutableBuffer, error) {
	return newImmutableBuffer(f, target, len(data), data, flags)
}

// NewImmutableBufferSize creates a zero-filled buffer of size bytes.
func NewImmutableBufferSize(f gl.Functions, target gl.Enum, size int, flags gl.Enum) (*ImmutableBuffer, error) {
	if size <= 0 {
		return nil, newError(KindBuffer, "NewImmutableBuffer", "", fmt.Errorf("%w: size %d", ErrInvalidArgument, size))
	}
	return newImmutableBuffer(f, target, size, nil, flags)
}

func newImmutableBuffer(f gl.Functions, target gl.Enum, size int, data []byte, flags gl.Enum) (*ImmutableBuffer, error) {
	if size == 0 {
		return nil, newError(KindBuffer, "NewImmutableBuffer", "", fmt.Errorf("%w: empty storage", ErrInvalidArgument))
	}
	gl.Check(f)
	b := &ImmutableBuffer{
		bufferObject: bufferObject{f: f, obj: f.CreateBuffer(), target: target, size: size},
		flags:        flags,
	}
	f.NamedBufferStorage(b.obj, size, data, flags)
	if err := gl.Check(f); err != nil {
		b.Release()
		return nil, newError(KindBuffer, "NewImmutableBuffer", "", err)
	}
	Logger().Debug("immutable buffer created", "name", b.obj.V, "target", uint(target), "size", size)
	return b, nil
}

// Flags returns the storage flags.
func (b *ImmutableBuffer) Flags() gl.Enum {
	return b.flags
}

// BufferSubData uploads data at offset. The buffer must have been
// created with GL_DYNAMIC_STORAGE_BIT.
func (b *ImmutableBuffer) BufferSubData(data []byte, offset int) error {
	if b.flags&gl.DYNAMIC_STORAGE_BIT == 0 {
		return newError(KindBuffer, "BufferSubData", b.id(), fmt.Errorf("%w: storage lacks GL_DYNAMIC_STORAGE_BIT", ErrInvalidArgument))
	}
	return b.subData("BufferSubData", data, offset)
}
