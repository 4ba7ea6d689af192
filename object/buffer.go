// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"
	"strconv"

	"gioui.org/glwrap/gl"
)

// BufferStorage is implemented by Buffer and ImmutableBuffer.
type BufferStorage interface {
	Name() gl.Buffer
	Size() int
	funcs() gl.Functions
}

// bufferObject holds what mutable and immutable buffers share.
type bufferObject struct {
	f      gl.Functions
	obj    gl.Buffer
	target gl.Enum
	size   int
}

// Buffer is a buffer object whose storage can be reallocated.
type Buffer struct {
	bufferObject
	usage gl.Enum
}

// NewBuffer creates a buffer for the target binding point and fills it
// with data.
func NewBuffer(f gl.Functions, target gl.Enum, data []byte, usage gl.Enum) (*Buffer, error) {
	return newBuffer(f, target, len(data), data, usage)
}

// NewBufferSize creates a buffer of size bytes with undefined contents.
func NewBufferSize(f gl.Functions, target gl.Enum, size int, usage gl.Enum) (*Buffer, error) {
	if size < 0 {
		return nil, newError(KindBuffer, "NewBuffer", "", fmt.Errorf("%w: negative size %d", ErrInvalidArgument, size))
	}
	return newBuffer(f, target, size, nil, usage)
}

func newBuffer(f gl.Functions, target gl.Enum, size int, data []byte, usage gl.Enum) (*Buffer, error) {
	gl.Check(f)
	b := &Buffer{
		bufferObject: bufferObject{f: f, obj: f.CreateBuffer(), target: target, size: size},
		usage:        usage,
	}
	f.NamedBufferData(b.obj, size, data, usage)
	if err := gl.Check(f); err != nil {
		b.Release()
		return nil, newError(KindBuffer, "NewBuffer", "", err)
	}
	Logger().Debug("buffer created", "name", b.obj.V, "target", uint(target), "size", size)
	return b, nil
}

// Usage returns the usage hint of the current allocation.
func (b *Buffer) Usage() gl.Enum {
	return b.usage
}

// BufferSubData uploads data at offset. The range must lie within the
// current allocation.
func (b *Buffer) BufferSubData(data []byte, offset int) error {
	return b.subData("BufferSubData", data, offset)
}

// Rebuffer reallocates the storage to exactly len(data) bytes and fills
// it with data.
func (b *Buffer) Rebuffer(data []byte) error {
	gl.Check(b.f)
	b.size = len(data)
	b.f.NamedBufferData(b.obj, len(data), data, b.usage)
	if err := gl.Check(b.f); err != nil {
		return newError(KindBuffer, "Rebuffer", b.id(), err)
	}
	Logger().Debug("buffer reallocated", "name", b.obj.V, "size", b.size)
	return nil
}

func (b *bufferObject) Name() gl.Buffer {
	return b.obj
}

func (b *bufferObject) Target() gl.Enum {
	return b.target
}

// Size returns the size in bytes of the current allocation.
func (b *bufferObject) Size() int {
	return b.size
}

func (b *bufferObject) funcs() gl.Functions {
	return b.f
}

func (b *bufferObject) id() string {
	return strconv.FormatUint(uint64(b.obj.V), 10)
}

// Bind binds the buffer to its target.
func (b *bufferObject) Bind() {
	b.f.BindBuffer(b.target, b.obj)
}

// BindBase binds the buffer to an indexed binding point of its target.
func (b *bufferObject) BindBase(index int) error {
	return b.BindBaseAs(b.target, index)
}

// BindBaseAs binds the buffer to an indexed binding point of target.
func (b *bufferObject) BindBaseAs(target gl.Enum, index int) error {
	gl.Check(b.f)
	b.f.BindBufferBase(target, index, b.obj)
	if err := gl.Check(b.f); err != nil {
		return newError(KindBuffer, "BindBase", b.id(), err)
	}
	return nil
}

// Download reads len(data) bytes starting at offset.
func (b *bufferObject) Download(data []byte, offset int) error {
	if err := b.checkRange("Download", offset, len(data)); err != nil {
		return err
	}
	gl.Check(b.f)
	b.f.GetNamedBufferSubData(b.obj, offset, data)
	if err := gl.Check(b.f); err != nil {
		return newError(KindBuffer, "Download", b.id(), err)
	}
	return nil
}

// Release deletes the buffer object.
func (b *bufferObject) Release() {
	if !b.obj.Valid() {
		return
	}
	Logger().Debug("buffer released", "name", b.obj.V)
	b.f.DeleteBuffer(b.obj)
	b.obj = gl.Buffer{}
	b.size = 0
}

func (b *bufferObject) checkRange(op string, offset, n int) error {
	if !inRange(offset, n, b.size) {
		return newError(KindBuffer, op, b.id(), fmt.Errorf("%w: [%d, %d) of %d bytes", ErrOutOfBounds, offset, offset+n, b.size))
	}
	return nil
}

// inRange reports whether [offset, offset+n) lies within size bytes.
// offset+n is never formed, so it cannot wrap.
func inRange(offset, n, size int) bool {
	return offset >= 0 && n >= 0 && offset <= size && n <= size-offset
}

func (b *bufferObject) subData(op string, data []byte, offset int) error {
	if err := b.checkRange(op, offset, len(data)); err != nil {
		return err
	}
	gl.Check(b.f)
	b.f.NamedBufferSubData(b.obj, offset, data)
	if err := gl.Check(b.f); err != nil {
		return newError(KindBuffer, op, b.id(), err)
	}
	return nil
}

// CopyBuffer copies size bytes from src at readOffset to dst at
// writeOffset. Both ranges must lie within their buffers.
func CopyBuffer(src, dst BufferStorage, readOffset, writeOffset, size int) error {
	if !inRange(readOffset, size, src.Size()) {
		return newError(KindBuffer, "CopyBuffer", bufferID(src), fmt.Errorf("%w: source range [%d, %d) of %d bytes", ErrOutOfBounds, readOffset, readOffset+size, src.Size()))
	}
	if !inRange(writeOffset, size, dst.Size()) {
		return newError(KindBuffer, "CopyBuffer", bufferID(dst), fmt.Errorf("%w: target range [%d, %d) of %d bytes", ErrOutOfBounds, writeOffset, writeOffset+size, dst.Size()))
	}
	f := src.funcs()
	gl.Check(f)
	f.CopyNamedBufferSubData(src.Name(), dst.Name(), readOffset, writeOffset, size)
	if err := gl.Check(f); err != nil {
		return newError(KindBuffer, "CopyBuffer", bufferID(src), err)
	}
	return nil
}

// CopyAll copies the whole of src to the start of dst.
func CopyAll(src, dst BufferStorage) error {
	return CopyBuffer(src, dst, 0, 0, src.Size())
}

func bufferID(b BufferStorage) string {
	return strconv.FormatUint(uint64(b.Name().V), 10)
}
