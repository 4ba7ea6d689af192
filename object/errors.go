// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"errors"
	"strings"

	"gioui.org/glwrap/gl"
)

// Kind identifies the object family an Error originates from.
type Kind uint8

const (
	KindBuffer Kind = iota + 1
	KindTexture
	KindMesh
	KindFramebuffer
	KindProgram
	KindSampler
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindMesh:
		return "mesh"
	case KindFramebuffer:
		return "framebuffer"
	case KindProgram:
		return "program"
	case KindSampler:
		return "sampler"
	}
	return "object"
}

// Family errors. Every *Error matches the one of its Kind with errors.Is.
var (
	ErrBuffer      = errors.New("buffer error")
	ErrTexture     = errors.New("texture error")
	ErrMesh        = errors.New("mesh error")
	ErrFramebuffer = errors.New("framebuffer error")
	ErrProgram     = errors.New("program error")
	ErrSampler     = errors.New("sampler error")
)

// Precondition failures. These are detected before any driver call.
var (
	ErrOutOfBounds       = errors.New("range exceeds allocated storage")
	ErrLayoutMismatch    = errors.New("vertex buffer and layout counts differ")
	ErrInvalidAttribType = errors.New("unsupported shader input type")
	ErrIndexType         = errors.New("unsupported index type")
	ErrStreamIndex       = errors.New("vertex stream index out of range")
	ErrAttachmentLimit   = errors.New("maximum number of color attachments reached")
	ErrEmptySource       = errors.New("no shader source")
	ErrNotLinked         = errors.New("program not linked")
	ErrIncomplete        = errors.New("incomplete framebuffer")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// Error describes a failed operation on a GL object.
type Error struct {
	Kind Kind
	// Op names the failed operation.
	Op string
	// ID identifies the object, if known.
	ID string
	// Code is the glGetError code or framebuffer status, if any.
	Code gl.Enum
	// Log is the driver's info log for compile and link failures.
	Log string
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.ID != "" {
		b.WriteString(" ")
		b.WriteString(e.ID)
	}
	b.WriteString(": ")
	b.WriteString(e.Op)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Log != "" {
		b.WriteString(": ")
		b.WriteString(e.Log)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrBuffer:
		return e.Kind == KindBuffer
	case ErrTexture:
		return e.Kind == KindTexture
	case ErrMesh:
		return e.Kind == KindMesh
	case ErrFramebuffer:
		return e.Kind == KindFramebuffer
	case ErrProgram:
		return e.Kind == KindProgram
	case ErrSampler:
		return e.Kind == KindSampler
	}
	return false
}

func newError(kind Kind, op, id string, err error) *Error {
	e := &Error{Kind: kind, Op: op, ID: id, Err: err}
	var code gl.Error
	if errors.As(err, &code) {
		e.Code = gl.Enum(code)
		Logger().Warn("driver error", "kind", kind.String(), "op", op, "id", id, "code", uint(code))
	}
	return e
}
