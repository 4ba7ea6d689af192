// SPDX-License-Identifier: Unlicense OR MIT

package gltest

import (
	"testing"

	"gioui.org/glwrap/gl"
)

func TestErrorFlagIsSticky(t *testing.T) {
	f := New()
	b := f.CreateBuffer()
	f.NamedBufferData(b, 4, nil, gl.STATIC_DRAW)
	f.NamedBufferSubData(b, 2, []byte{1, 2, 3})
	f.BindBufferBase(gl.ARRAY_BUFFER, 0, b)
	if got := f.GetError(); got != gl.INVALID_VALUE {
		t.Errorf("first error = %#x, want INVALID_VALUE", got)
	}
	if got := f.GetError(); got != gl.NO_ERROR {
		t.Errorf("error not cleared, got %#x", got)
	}
}

func TestFailOn(t *testing.T) {
	f := New()
	f.FailOn("CreateBuffer", gl.OUT_OF_MEMORY)
	f.CreateBuffer()
	if got := f.GetError(); got != gl.OUT_OF_MEMORY {
		t.Errorf("got %#x, want OUT_OF_MEMORY", got)
	}
	f.CreateBuffer()
	if got := f.GetError(); got != gl.NO_ERROR {
		t.Errorf("FailOn fired twice: %#x", got)
	}
}

func TestTextureStorageIsImmutable(t *testing.T) {
	f := New()
	tex := f.CreateTexture(gl.TEXTURE_2D)
	f.TextureStorage2D(tex, 3, gl.RGBA8, 4, 4)
	if got := f.GetError(); got != gl.NO_ERROR {
		t.Fatalf("storage failed: %#x", got)
	}
	f.TextureStorage2D(tex, 1, gl.RGBA8, 4, 4)
	if got := f.GetError(); got != gl.INVALID_OPERATION {
		t.Errorf("second storage allocation: got %#x", got)
	}
	tex2 := f.CreateTexture(gl.TEXTURE_2D)
	f.TextureStorage2D(tex2, 4, gl.RGBA8, 4, 4)
	if got := f.GetError(); got != gl.INVALID_OPERATION {
		t.Errorf("too many levels: got %#x", got)
	}
}

func TestLinkAssignsLocations(t *testing.T) {
	f := New()
	p := f.CreateProgram()
	vs := f.CreateShader(gl.VERTEX_SHADER)
	f.ShaderSource(vs, "#version 450\nin vec3 pos;\nin vec2 uv;\nuniform mat4 mvp;\nvoid main() {}\n")
	f.CompileShader(vs)
	f.AttachShader(p, vs)
	f.DeleteShader(vs)
	f.BindAttribLocation(p, 0, "uv")
	f.LinkProgram(p)
	ps := f.Program(p)
	if !ps.Linked {
		t.Fatalf("link failed: %s", ps.Log)
	}
	if len(ps.Attribs) != 2 || ps.Attribs[0].Name != "uv" || ps.Attribs[1].Name != "pos" {
		t.Errorf("unexpected attributes %+v", ps.Attribs)
	}
	if u := f.GetUniformLocation(p, "mvp"); !u.Valid() {
		t.Error("mvp has no location")
	}
	f.DeleteProgram(p)
	if n := f.LiveObjects(); n != 0 {
		t.Errorf("%d objects leaked", n)
	}
}

func TestReadPixels(t *testing.T) {
	f := New()
	tex := f.CreateTexture(gl.TEXTURE_2D)
	f.TextureStorage2D(tex, 1, gl.RGBA8, 2, 2)
	f.TextureSubImage2D(tex, 0, 0, 0, 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
	})
	fb := f.CreateFramebuffer()
	f.NamedFramebufferTexture(fb, gl.COLOR_ATTACHMENT0, tex, 0)
	f.BindFramebuffer(gl.FRAMEBUFFER, fb)
	px := make([]byte, 4)
	f.ReadPixels(1, 1, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, px)
	if px[0] != 4 {
		t.Errorf("read %v, want texel 4", px)
	}
}
