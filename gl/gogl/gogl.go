// SPDX-License-Identifier: Unlicense OR MIT

// Package gogl implements gl.Functions with the go-gl bindings. The
// entry points are loaded from the context current on the calling
// thread, and every method must be called on that thread.
package gogl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	native "github.com/go-gl/gl/v4.6-core/gl"

	"gioui.org/glwrap/gl"
)

type Functions struct{}

var _ gl.Functions = (*Functions)(nil)

// New loads the OpenGL entry points. A context must be current.
func New() (*Functions, error) {
	if err := native.Init(); err != nil {
		return nil, fmt.Errorf("gogl: %w", err)
	}
	return new(Functions), nil
}

// EnableDebugOutput forwards KHR_debug messages to logger. High
// severity messages are logged as errors, notifications at debug level.
func (f *Functions) EnableDebugOutput(logger *slog.Logger) {
	native.Enable(native.DEBUG_OUTPUT)
	native.Enable(native.DEBUG_OUTPUT_SYNCHRONOUS)
	native.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		level := slog.LevelInfo
		switch severity {
		case native.DEBUG_SEVERITY_HIGH:
			level = slog.LevelError
		case native.DEBUG_SEVERITY_MEDIUM:
			level = slog.LevelWarn
		case native.DEBUG_SEVERITY_NOTIFICATION:
			level = slog.LevelDebug
		}
		logger.Log(context.Background(), level, strings.TrimSpace(message),
			slog.Uint64("source", uint64(source)),
			slog.Uint64("type", uint64(gltype)),
			slog.Uint64("id", uint64(id)))
	}, nil)
}

// ptr returns the address of the first element of data, or nil.
func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return native.Ptr(data)
}

func cstr(s string) *uint8 {
	return native.Str(s + "\x00")
}

func (f *Functions) CreateBuffer() gl.Buffer {
	var b uint32
	native.CreateBuffers(1, &b)
	return gl.Buffer{V: uint(b)}
}

func (f *Functions) NamedBufferData(b gl.Buffer, size int, data []byte, usage gl.Enum) {
	native.NamedBufferData(uint32(b.V), size, ptr(data), uint32(usage))
}

func (f *Functions) NamedBufferStorage(b gl.Buffer, size int, data []byte, flags gl.Enum) {
	native.NamedBufferStorage(uint32(b.V), size, ptr(data), uint32(flags))
}

func (f *Functions) NamedBufferSubData(b gl.Buffer, offset int, data []byte) {
	native.NamedBufferSubData(uint32(b.V), offset, len(data), ptr(data))
}

func (f *Functions) GetNamedBufferSubData(b gl.Buffer, offset int, data []byte) {
	native.GetNamedBufferSubData(uint32(b.V), offset, len(data), ptr(data))
}

func (f *Functions) CopyNamedBufferSubData(src, dst gl.Buffer, readOffset, writeOffset, size int) {
	native.CopyNamedBufferSubData(uint32(src.V), uint32(dst.V), readOffset, writeOffset, size)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	native.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	native.BindBufferBase(uint32(target), uint32(index), uint32(b.V))
}

func (f *Functions) DeleteBuffer(v gl.Buffer) {
	b := uint32(v.V)
	native.DeleteBuffers(1, &b)
}

func (f *Functions) CreateTexture(target gl.Enum) gl.Texture {
	var t uint32
	native.CreateTextures(uint32(target), 1, &t)
	return gl.Texture{V: uint(t)}
}

func (f *Functions) GenTexture() gl.Texture {
	var t uint32
	native.GenTextures(1, &t)
	return gl.Texture{V: uint(t)}
}

func (f *Functions) TextureParameteri(t gl.Texture, pname gl.Enum, param int) {
	native.TextureParameteri(uint32(t.V), uint32(pname), int32(param))
}

func (f *Functions) TextureParameterf(t gl.Texture, pname gl.Enum, param float32) {
	native.TextureParameterf(uint32(t.V), uint32(pname), param)
}

func (f *Functions) TextureStorage1D(t gl.Texture, levels int, internalFormat gl.Enum, width int) {
	native.TextureStorage1D(uint32(t.V), int32(levels), uint32(internalFormat), int32(width))
}

func (f *Functions) TextureStorage2D(t gl.Texture, levels int, internalFormat gl.Enum, width, height int) {
	native.TextureStorage2D(uint32(t.V), int32(levels), uint32(internalFormat), int32(width), int32(height))
}

func (f *Functions) TextureStorage3D(t gl.Texture, levels int, internalFormat gl.Enum, width, height, depth int) {
	native.TextureStorage3D(uint32(t.V), int32(levels), uint32(internalFormat), int32(width), int32(height), int32(depth))
}

func (f *Functions) TextureSubImage1D(t gl.Texture, level, x, width int, format, ty gl.Enum, data []byte) {
	native.TextureSubImage1D(uint32(t.V), int32(level), int32(x), int32(width), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TextureSubImage2D(t gl.Texture, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	native.TextureSubImage2D(uint32(t.V), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TextureSubImage3D(t gl.Texture, level, x, y, z, width, height, depth int, format, ty gl.Enum, data []byte) {
	native.TextureSubImage3D(uint32(t.V), int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) GenerateTextureMipmap(t gl.Texture) {
	native.GenerateTextureMipmap(uint32(t.V))
}

func (f *Functions) TextureView(view gl.Texture, target gl.Enum, orig gl.Texture, internalFormat gl.Enum, minLevel, numLevels, minLayer, numLayers int) {
	native.TextureView(uint32(view.V), uint32(target), uint32(orig.V), uint32(internalFormat),
		uint32(minLevel), uint32(numLevels), uint32(minLayer), uint32(numLayers))
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	native.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) BindTextureUnit(unit int, t gl.Texture) {
	native.BindTextureUnit(uint32(unit), uint32(t.V))
}

func (f *Functions) BindImageTexture(unit int, t gl.Texture, level int, layered bool, layer int, access, format gl.Enum) {
	native.BindImageTexture(uint32(unit), uint32(t.V), int32(level), layered, int32(layer), uint32(access), uint32(format))
}

func (f *Functions) DeleteTexture(v gl.Texture) {
	t := uint32(v.V)
	native.DeleteTextures(1, &t)
}

func (f *Functions) GetTextureHandle(t gl.Texture) uint64 {
	return native.GetTextureHandleARB(uint32(t.V))
}

func (f *Functions) GetImageHandle(t gl.Texture, level int, layered bool, layer int, format gl.Enum) uint64 {
	return native.GetImageHandleARB(uint32(t.V), int32(level), layered, int32(layer), uint32(format))
}

func (f *Functions) MakeTextureHandleResident(handle uint64) {
	native.MakeTextureHandleResidentARB(handle)
}

func (f *Functions) MakeTextureHandleNonResident(handle uint64) {
	native.MakeTextureHandleNonResidentARB(handle)
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	var va uint32
	native.CreateVertexArrays(1, &va)
	return gl.VertexArray{V: uint(va)}
}

func (f *Functions) VertexArrayVertexBuffer(va gl.VertexArray, binding int, b gl.Buffer, offset, stride int) {
	native.VertexArrayVertexBuffer(uint32(va.V), uint32(binding), uint32(b.V), offset, int32(stride))
}

func (f *Functions) VertexArrayElementBuffer(va gl.VertexArray, b gl.Buffer) {
	native.VertexArrayElementBuffer(uint32(va.V), uint32(b.V))
}

func (f *Functions) EnableVertexArrayAttrib(va gl.VertexArray, a gl.Attrib) {
	native.EnableVertexArrayAttrib(uint32(va.V), uint32(a))
}

func (f *Functions) VertexArrayAttribFormat(va gl.VertexArray, a gl.Attrib, size int, ty gl.Enum, normalized bool, offset int) {
	native.VertexArrayAttribFormat(uint32(va.V), uint32(a), int32(size), uint32(ty), normalized, uint32(offset))
}

func (f *Functions) VertexArrayAttribIFormat(va gl.VertexArray, a gl.Attrib, size int, ty gl.Enum, offset int) {
	native.VertexArrayAttribIFormat(uint32(va.V), uint32(a), int32(size), uint32(ty), uint32(offset))
}

func (f *Functions) VertexArrayAttribLFormat(va gl.VertexArray, a gl.Attrib, size int, ty gl.Enum, offset int) {
	native.VertexArrayAttribLFormat(uint32(va.V), uint32(a), int32(size), uint32(ty), uint32(offset))
}

func (f *Functions) VertexArrayAttribBinding(va gl.VertexArray, a gl.Attrib, binding int) {
	native.VertexArrayAttribBinding(uint32(va.V), uint32(a), uint32(binding))
}

func (f *Functions) BindVertexArray(va gl.VertexArray) {
	native.BindVertexArray(uint32(va.V))
}

func (f *Functions) DeleteVertexArray(v gl.VertexArray) {
	va := uint32(v.V)
	native.DeleteVertexArrays(1, &va)
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	native.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), native.PtrOffset(offset), int32(instances))
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	var fb uint32
	native.CreateFramebuffers(1, &fb)
	return gl.Framebuffer{V: uint(fb)}
}

func (f *Functions) NamedFramebufferTexture(fb gl.Framebuffer, attachment gl.Enum, t gl.Texture, level int) {
	native.NamedFramebufferTexture(uint32(fb.V), uint32(attachment), uint32(t.V), int32(level))
}

func (f *Functions) CheckNamedFramebufferStatus(fb gl.Framebuffer, target gl.Enum) gl.Enum {
	return gl.Enum(native.CheckNamedFramebufferStatus(uint32(fb.V), uint32(target)))
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	native.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {
	if len(bufs) == 0 {
		native.DrawBuffers(0, nil)
		return
	}
	b := make([]uint32, len(bufs))
	for i, e := range bufs {
		b[i] = uint32(e)
	}
	native.DrawBuffers(int32(len(b)), &b[0])
}

func (f *Functions) ReadBuffer(src gl.Enum) {
	native.ReadBuffer(uint32(src))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	native.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) DeleteFramebuffer(v gl.Framebuffer) {
	fb := uint32(v.V)
	native.DeleteFramebuffers(1, &fb)
}

func (f *Functions) Viewport(x, y, width, height int) {
	native.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	native.ClearColor(red, green, blue, alpha)
}

func (f *Functions) Clear(mask gl.Enum) {
	native.Clear(uint32(mask))
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program{V: uint(native.CreateProgram())}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: uint(native.CreateShader(uint32(ty)))}
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	csources, free := native.Strs(src + "\x00")
	native.ShaderSource(uint32(s.V), 1, csources, nil)
	free()
}

func (f *Functions) CompileShader(s gl.Shader) {
	native.CompileShader(uint32(s.V))
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var i int32
	native.GetShaderiv(uint32(s.V), uint32(pname), &i)
	return int(i)
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	var n int32
	native.GetShaderiv(uint32(s.V), native.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	native.GetShaderInfoLog(uint32(s.V), n, nil, &buf[0])
	return native.GoStr(&buf[0])
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	native.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) DeleteShader(s gl.Shader) {
	native.DeleteShader(uint32(s.V))
}

func (f *Functions) LinkProgram(p gl.Program) {
	native.LinkProgram(uint32(p.V))
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	var i int32
	native.GetProgramiv(uint32(p.V), uint32(pname), &i)
	return int(i)
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	var n int32
	native.GetProgramiv(uint32(p.V), native.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	native.GetProgramInfoLog(uint32(p.V), n, nil, &buf[0])
	return native.GoStr(&buf[0])
}

func (f *Functions) UseProgram(p gl.Program) {
	native.UseProgram(uint32(p.V))
}

func (f *Functions) DeleteProgram(p gl.Program) {
	native.DeleteProgram(uint32(p.V))
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	native.BindAttribLocation(uint32(p.V), uint32(a), cstr(name))
}

func (f *Functions) BindFragDataLocation(p gl.Program, color int, name string) {
	native.BindFragDataLocation(uint32(p.V), uint32(color), cstr(name))
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	return int(native.GetAttribLocation(uint32(p.V), cstr(name)))
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{V: int(native.GetUniformLocation(uint32(p.V), cstr(name)))}
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	n := f.GetProgrami(p, native.ACTIVE_UNIFORM_MAX_LENGTH)
	buf := make([]uint8, n+1)
	var length, size int32
	var ty uint32
	native.GetActiveUniform(uint32(p.V), uint32(index), int32(len(buf)), &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), gl.Enum(ty)
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	n := f.GetProgrami(p, native.ACTIVE_ATTRIBUTE_MAX_LENGTH)
	buf := make([]uint8, n+1)
	var length, size int32
	var ty uint32
	native.GetActiveAttrib(uint32(p.V), uint32(index), int32(len(buf)), &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), gl.Enum(ty)
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	native.Uniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	native.Uniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	native.Uniform3f(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	native.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	native.Uniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform2i(dst gl.Uniform, v0, v1 int) {
	native.Uniform2i(int32(dst.V), int32(v0), int32(v1))
}

func (f *Functions) Uniform3i(dst gl.Uniform, v0, v1, v2 int) {
	native.Uniform3i(int32(dst.V), int32(v0), int32(v1), int32(v2))
}

func (f *Functions) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int) {
	native.Uniform4i(int32(dst.V), int32(v0), int32(v1), int32(v2), int32(v3))
}

func (f *Functions) Uniform1ui(dst gl.Uniform, v uint32) {
	native.Uniform1ui(int32(dst.V), v)
}

func (f *Functions) Uniform2ui(dst gl.Uniform, v0, v1 uint32) {
	native.Uniform2ui(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3ui(dst gl.Uniform, v0, v1, v2 uint32) {
	native.Uniform3ui(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4ui(dst gl.Uniform, v0, v1, v2, v3 uint32) {
	native.Uniform4ui(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, transpose bool, v []float32) {
	native.UniformMatrix2fv(int32(dst.V), int32(len(v)/4), transpose, &v[0])
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, transpose bool, v []float32) {
	native.UniformMatrix3fv(int32(dst.V), int32(len(v)/9), transpose, &v[0])
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	native.UniformMatrix4fv(int32(dst.V), int32(len(v)/16), transpose, &v[0])
}

func (f *Functions) CreateSampler() gl.Sampler {
	var s uint32
	native.CreateSamplers(1, &s)
	return gl.Sampler{V: uint(s)}
}

func (f *Functions) SamplerParameteri(s gl.Sampler, pname gl.Enum, param int) {
	native.SamplerParameteri(uint32(s.V), uint32(pname), int32(param))
}

func (f *Functions) SamplerParameterf(s gl.Sampler, pname gl.Enum, param float32) {
	native.SamplerParameterf(uint32(s.V), uint32(pname), param)
}

func (f *Functions) BindSampler(unit int, s gl.Sampler) {
	native.BindSampler(uint32(unit), uint32(s.V))
}

func (f *Functions) DeleteSampler(v gl.Sampler) {
	s := uint32(v.V)
	native.DeleteSamplers(1, &s)
}

func (f *Functions) ObjectLabel(identifier gl.Enum, name uint, label string) {
	native.ObjectLabel(uint32(identifier), uint32(name), int32(len(label)), cstr(label))
}

func (f *Functions) GetError() gl.Enum {
	return gl.Enum(native.GetError())
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	// Large enough for the widest integer query.
	var p [4]int32
	native.GetIntegerv(uint32(pname), &p[0])
	return int(p[0])
}

func (f *Functions) GetString(pname gl.Enum) string {
	if pname != gl.EXTENSIONS {
		return native.GoStr(native.GetString(uint32(pname)))
	}
	// Core profiles don't support glGetString(GL_EXTENSIONS).
	n := f.GetInteger(native.NUM_EXTENSIONS)
	exts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		exts = append(exts, native.GoStr(native.GetStringi(native.EXTENSIONS, uint32(i))))
	}
	return strings.Join(exts, " ")
}
