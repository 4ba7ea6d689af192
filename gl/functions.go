// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the set of OpenGL entry points available in a current
// context. Implementations forward each method to the driver function of
// the same name; they must not check errors, since callers do that
// through GetError.
//
// A Functions value is only valid on the thread that owns its context.
type Functions interface {
	CreateBuffer() Buffer
	// NamedBufferData allocates size bytes of storage. A nil data
	// leaves the contents undefined.
	NamedBufferData(b Buffer, size int, data []byte, usage Enum)
	NamedBufferStorage(b Buffer, size int, data []byte, flags Enum)
	NamedBufferSubData(b Buffer, offset int, data []byte)
	GetNamedBufferSubData(b Buffer, offset int, data []byte)
	CopyNamedBufferSubData(src, dst Buffer, readOffset, writeOffset, size int)
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	DeleteBuffer(b Buffer)

	CreateTexture(target Enum) Texture
	// GenTexture returns a name without an associated object, as
	// required by TextureView.
	GenTexture() Texture
	TextureParameteri(t Texture, pname Enum, param int)
	TextureParameterf(t Texture, pname Enum, param float32)
	TextureStorage1D(t Texture, levels int, internalFormat Enum, width int)
	TextureStorage2D(t Texture, levels int, internalFormat Enum, width, height int)
	TextureStorage3D(t Texture, levels int, internalFormat Enum, width, height, depth int)
	TextureSubImage1D(t Texture, level, x, width int, format, ty Enum, data []byte)
	TextureSubImage2D(t Texture, level, x, y, width, height int, format, ty Enum, data []byte)
	TextureSubImage3D(t Texture, level, x, y, z, width, height, depth int, format, ty Enum, data []byte)
	GenerateTextureMipmap(t Texture)
	TextureView(view Texture, target Enum, orig Texture, internalFormat Enum, minLevel, numLevels, minLayer, numLayers int)
	BindTexture(target Enum, t Texture)
	BindTextureUnit(unit int, t Texture)
	BindImageTexture(unit int, t Texture, level int, layered bool, layer int, access, format Enum)
	DeleteTexture(t Texture)

	// ARB_bindless_texture.
	GetTextureHandle(t Texture) uint64
	GetImageHandle(t Texture, level int, layered bool, layer int, format Enum) uint64
	MakeTextureHandleResident(handle uint64)
	MakeTextureHandleNonResident(handle uint64)

	CreateVertexArray() VertexArray
	VertexArrayVertexBuffer(va VertexArray, binding int, b Buffer, offset, stride int)
	VertexArrayElementBuffer(va VertexArray, b Buffer)
	EnableVertexArrayAttrib(va VertexArray, a Attrib)
	VertexArrayAttribFormat(va VertexArray, a Attrib, size int, ty Enum, normalized bool, offset int)
	VertexArrayAttribIFormat(va VertexArray, a Attrib, size int, ty Enum, offset int)
	VertexArrayAttribLFormat(va VertexArray, a Attrib, size int, ty Enum, offset int)
	VertexArrayAttribBinding(va VertexArray, a Attrib, binding int)
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)

	CreateFramebuffer() Framebuffer
	NamedFramebufferTexture(fb Framebuffer, attachment Enum, t Texture, level int)
	CheckNamedFramebufferStatus(fb Framebuffer, target Enum) Enum
	BindFramebuffer(target Enum, fb Framebuffer)
	DrawBuffers(bufs []Enum)
	ReadBuffer(src Enum)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	DeleteFramebuffer(fb Framebuffer)
	Viewport(x, y, width, height int)
	ClearColor(red, green, blue, alpha float32)
	Clear(mask Enum)

	CreateProgram() Program
	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	AttachShader(p Program, s Shader)
	DeleteShader(s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)
	BindAttribLocation(p Program, a Attrib, name string)
	BindFragDataLocation(p Program, color int, name string)
	GetAttribLocation(p Program, name string) int
	GetUniformLocation(p Program, name string) Uniform
	GetActiveUniform(p Program, index int) (name string, size int, ty Enum)
	GetActiveAttrib(p Program, index int) (name string, size int, ty Enum)
	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	Uniform1i(dst Uniform, v int)
	Uniform2i(dst Uniform, v0, v1 int)
	Uniform3i(dst Uniform, v0, v1, v2 int)
	Uniform4i(dst Uniform, v0, v1, v2, v3 int)
	Uniform1ui(dst Uniform, v uint32)
	Uniform2ui(dst Uniform, v0, v1 uint32)
	Uniform3ui(dst Uniform, v0, v1, v2 uint32)
	Uniform4ui(dst Uniform, v0, v1, v2, v3 uint32)
	UniformMatrix2fv(dst Uniform, transpose bool, v []float32)
	UniformMatrix3fv(dst Uniform, transpose bool, v []float32)
	UniformMatrix4fv(dst Uniform, transpose bool, v []float32)

	CreateSampler() Sampler
	SamplerParameteri(s Sampler, pname Enum, param int)
	SamplerParameterf(s Sampler, pname Enum, param float32)
	BindSampler(unit int, s Sampler)
	DeleteSampler(s Sampler)

	// ObjectLabel attaches a KHR_debug label to an object name.
	ObjectLabel(identifier Enum, name uint, label string)
	GetError() Enum
	GetInteger(pname Enum) int
	GetString(pname Enum) string
}
