// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"testing"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in  string
		ver [2]int
	}{
		{"4.6.0 NVIDIA 535.54.03", [2]int{4, 6}},
		{"4.5 (Core Profile) Mesa 23.1.4", [2]int{4, 5}},
		{"OpenGL ES 3.2 Mesa 23.0", [2]int{3, 2}},
	}
	for _, test := range tests {
		ver, err := ParseGLVersion(test.in)
		if err != nil {
			t.Errorf("ParseGLVersion(%q): %v", test.in, err)
			continue
		}
		if ver != test.ver {
			t.Errorf("ParseGLVersion(%q) = %v, want %v", test.in, ver, test.ver)
		}
	}
	if _, err := ParseGLVersion("garbage"); err == nil {
		t.Error("ParseGLVersion accepted garbage")
	}
}

func TestErrorString(t *testing.T) {
	if got, want := Error(INVALID_VALUE).Error(), "glGetError: 0x501 (GL_INVALID_VALUE)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := Error(0x1234).Error(), "glGetError: 0x1234"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	var err error = Error(OUT_OF_MEMORY)
	var glErr Error
	if !errors.As(err, &glErr) || glErr != OUT_OF_MEMORY {
		t.Errorf("errors.As failed for %v", err)
	}
}

func TestBytesView(t *testing.T) {
	if b := BytesView([]float32(nil)); b != nil {
		t.Errorf("expected nil view of empty slice, got %v", b)
	}
	u := []uint16{0x0102, 0x0304}
	if n := len(BytesView(u)); n != 4 {
		t.Errorf("uint16 view has %d bytes, want 4", n)
	}
	f := []float32{1, 2, 3}
	if n := len(BytesView(f)); n != 12 {
		t.Errorf("float32 view has %d bytes, want 12", n)
	}
	b := BytesView(u)
	b[0], b[1] = 0, 0
	if u[0] != 0 {
		t.Error("view does not alias its slice")
	}
}

func TestFramebufferStatusString(t *testing.T) {
	if s := FramebufferStatusString(FRAMEBUFFER_COMPLETE); s != "complete" {
		t.Errorf("got %q", s)
	}
	if s := FramebufferStatusString(0x42); s != "status 0x42" {
		t.Errorf("got %q", s)
	}
}

func TestHasExtension(t *testing.T) {
	exts := "GL_ARB_bindless_texture GL_KHR_debug"
	if !HasExtension(exts, "GL_KHR_debug") {
		t.Error("GL_KHR_debug not found")
	}
	if HasExtension(exts, "GL_ARB_bindless") {
		t.Error("prefix matched as extension")
	}
}
