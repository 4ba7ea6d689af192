// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Error is a code reported by glGetError.
type Error Enum

func (e Error) Error() string {
	if s := e.name(); s != "" {
		return fmt.Sprintf("glGetError: %#x (%s)", uint(e), s)
	}
	return fmt.Sprintf("glGetError: %#x", uint(e))
}

func (e Error) name() string {
	switch e {
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return ""
}

// Check returns the pending driver error, if any, as an Error.
// Calling Check before an operation clears a stale error so that the
// check after it only sees what the operation caused.
func Check(f Functions) error {
	if st := f.GetError(); st != NO_ERROR {
		return Error(st)
	}
	return nil
}

// FramebufferStatusString names a CheckNamedFramebufferStatus result.
func FramebufferStatusString(st Enum) string {
	switch st {
	case FRAMEBUFFER_COMPLETE:
		return "complete"
	case FRAMEBUFFER_UNDEFINED:
		return "undefined"
	case FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "incomplete attachment"
	case FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "missing attachment"
	case FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "incomplete draw buffer"
	case FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "incomplete read buffer"
	case FRAMEBUFFER_UNSUPPORTED:
		return "unsupported"
	case FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "incomplete multisample"
	case FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "incomplete layer targets"
	}
	return fmt.Sprintf("status %#x", uint(st))
}

// BytesView returns a byte slice view of a slice.
func BytesView[T constraints.Integer | constraints.Float](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// ParseGLVersion extracts the major and minor version from a
// GL_VERSION string.
func ParseGLVersion(glVer string) ([2]int, error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	}
	return ver, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// HasExtension reports whether the space separated GL_EXTENSIONS list
// contains ext.
func HasExtension(exts, ext string) bool {
	for _, e := range strings.Fields(exts) {
		if e == ext {
			return true
		}
	}
	return false
}
