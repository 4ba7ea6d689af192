// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest implements gl.Functions in memory, for testing code
// that drives OpenGL without a context.
//
// The fake tracks object lifetimes, buffer and texture contents, vertex
// array and framebuffer state, and shader compile and link results. It
// raises the same error codes a conforming driver raises for the misuse
// it can detect, and lets tests inject further errors.
package gltest

import (
	"regexp"
	"sort"

	"gioui.org/glwrap/gl"
)

// Functions is a fake driver. The zero value is not usable; call New.
type Functions struct {
	// MaxColorAttachments is reported for GL_MAX_COLOR_ATTACHMENTS.
	MaxColorAttachments int
	// MaxTextureSize is reported for GL_MAX_TEXTURE_SIZE and bounds
	// texture storage dimensions.
	MaxTextureSize int
	// CompileHook, if set, decides shader compilation. The default
	// fails sources containing "#error".
	CompileHook func(ty gl.Enum, src string) (log string, ok bool)
	// LinkHook, if set, is consulted after the default link checks.
	LinkHook func(p gl.Program) (log string, ok bool)
	// FramebufferStatus, if non-zero, overrides the computed status.
	FramebufferStatus gl.Enum

	// Calls records the name of every method invoked, in order.
	Calls []string
	// Draws records every draw call.
	Draws []Draw

	err    gl.Enum
	failOn map[string]gl.Enum
	next   uint

	buffers      map[uint]*BufferState
	textures     map[uint]*TextureState
	vertexArrays map[uint]*VertexArrayState
	framebuffers map[uint]*FramebufferState
	shaders      map[uint]*ShaderState
	programs     map[uint]*ProgramState
	samplers     map[uint]*SamplerState
	handles      map[uint64]uint
	resident     map[uint64]bool
	labels       map[labelKey]string

	boundBuffers      map[gl.Enum]uint
	boundBufferBases  map[bufferBase]uint
	boundTextures     map[gl.Enum]uint
	textureUnits      map[int]uint
	imageUnits        map[int]ImageBinding
	samplerUnits      map[int]uint
	drawFramebuffer   uint
	readFramebuffer   uint
	vertexArray       uint
	program           uint
	defaultDrawBufs   []gl.Enum
	defaultReadBuffer gl.Enum
	viewport          [4]int
	clearColor        [4]float32
}

type labelKey struct {
	identifier gl.Enum
	name       uint
}

type bufferBase struct {
	target gl.Enum
	index  int
}

type BufferState struct {
	Data      []byte
	Usage     gl.Enum
	Flags     gl.Enum
	Immutable bool
}

type TextureState struct {
	Target         gl.Enum
	InternalFormat gl.Enum
	Levels         int
	Width          int
	Height         int
	Depth          int
	// IntParams and FloatParams hold the last value of each parameter;
	// ParamOrder lists parameter names in the order they were set.
	IntParams   map[gl.Enum]int
	FloatParams map[gl.Enum]float32
	ParamOrder  []gl.Enum
	// Data holds level 0 as uploaded with TextureSubImage calls, with
	// BytesPerTexel taken from the first upload.
	Data          []byte
	BytesPerTexel int
	MipmapsBuilt  int
	Allocated     bool
	// ViewOf is the name of the source texture for views.
	ViewOf    uint
	MinLevel  int
	MinLayer  int
	NumLayers int
}

type VertexArrayState struct {
	Bindings       map[int]VertexBinding
	ElementBuffer  uint
	Attribs        map[gl.Attrib]*AttribState
	AttribsEnabled []gl.Attrib
}

type VertexBinding struct {
	Buffer uint
	Offset int
	Stride int
}

// AttribKind tells which format entry point described an attribute.
type AttribKind int

const (
	AttribFloat AttribKind = iota
	AttribInteger
	AttribDouble
)

type AttribState struct {
	Enabled    bool
	Kind       AttribKind
	Size       int
	Type       gl.Enum
	Normalized bool
	Offset     int
	Binding    int
}

type FramebufferState struct {
	Attachments map[gl.Enum]uint
	DrawBuffers []gl.Enum
	ReadBuffer  gl.Enum
}

type ShaderState struct {
	Type     gl.Enum
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
	attached int
}

type ProgramState struct {
	Shaders       []uint
	Linked        bool
	LinkCount     int
	Log           string
	AttribBinds   map[string]int
	FragDataBinds map[string]int
	// Uniforms and Attribs are the active variables of the last
	// successful link, ordered by location.
	Uniforms      []Variable
	Attribs       []Variable
	UniformValues map[int][]float64
}

type Variable struct {
	Name     string
	Type     gl.Enum
	Size     int
	Location int
}

type SamplerState struct {
	IntParams   map[gl.Enum]int
	FloatParams map[gl.Enum]float32
}

type ImageBinding struct {
	Texture uint
	Level   int
	Layered bool
	Layer   int
	Access  gl.Enum
	Format  gl.Enum
}

type Draw struct {
	Mode        gl.Enum
	Count       int
	Type        gl.Enum
	Offset      int
	Instances   int
	VertexArray uint
	Program     uint
}

// New returns a fake driver with an OpenGL 4.6 capability set.
func New() *Functions {
	return &Functions{
		MaxColorAttachments: 8,
		MaxTextureSize:      16384,
		failOn:              make(map[string]gl.Enum),
		buffers:             make(map[uint]*BufferState),
		textures:            make(map[uint]*TextureState),
		vertexArrays:        make(map[uint]*VertexArrayState),
		framebuffers:        make(map[uint]*FramebufferState),
		shaders:             make(map[uint]*ShaderState),
		programs:            make(map[uint]*ProgramState),
		samplers:            make(map[uint]*SamplerState),
		handles:             make(map[uint64]uint),
		resident:            make(map[uint64]bool),
		labels:              make(map[labelKey]string),
		boundBuffers:        make(map[gl.Enum]uint),
		boundBufferBases:    make(map[bufferBase]uint),
		boundTextures:       make(map[gl.Enum]uint),
		textureUnits:        make(map[int]uint),
		imageUnits:          make(map[int]ImageBinding),
		samplerUnits:        make(map[int]uint),
		defaultDrawBufs:     []gl.Enum{gl.BACK},
		defaultReadBuffer:   gl.BACK,
	}
}

// FailOn makes the next call to the named method raise code.
func (f *Functions) FailOn(method string, code gl.Enum) {
	f.failOn[method] = code
}

// SetError raises code as if the last call had failed.
func (f *Functions) SetError(code gl.Enum) {
	f.raise(code)
}

// ResetCalls clears the call log.
func (f *Functions) ResetCalls() {
	f.Calls = nil
	f.Draws = nil
}

// CallCount returns how many times the named method was called.
func (f *Functions) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// LiveObjects returns the number of objects that have not been deleted.
func (f *Functions) LiveObjects() int {
	n := len(f.buffers) + len(f.textures) + len(f.vertexArrays) + len(f.framebuffers) + len(f.programs) + len(f.samplers)
	for _, s := range f.shaders {
		if !s.Deleted {
			n++
		}
	}
	return n
}

func (f *Functions) Buffer(b gl.Buffer) *BufferState                { return f.buffers[b.V] }
func (f *Functions) Texture(t gl.Texture) *TextureState             { return f.textures[t.V] }
func (f *Functions) VertexArray(va gl.VertexArray) *VertexArrayState { return f.vertexArrays[va.V] }
func (f *Functions) Framebuffer(fb gl.Framebuffer) *FramebufferState {
	return f.framebuffers[fb.V]
}
func (f *Functions) Shader(s gl.Shader) *ShaderState    { return f.shaders[s.V] }
func (f *Functions) Program(p gl.Program) *ProgramState { return f.programs[p.V] }
func (f *Functions) Sampler(s gl.Sampler) *SamplerState { return f.samplers[s.V] }

// BoundBuffer returns the buffer bound to target.
func (f *Functions) BoundBuffer(target gl.Enum) gl.Buffer {
	return gl.Buffer{V: f.boundBuffers[target]}
}

// BoundBufferBase returns the buffer bound to an indexed target.
func (f *Functions) BoundBufferBase(target gl.Enum, index int) gl.Buffer {
	return gl.Buffer{V: f.boundBufferBases[bufferBase{target, index}]}
}

// BoundTexture returns the texture bound to target.
func (f *Functions) BoundTexture(target gl.Enum) gl.Texture {
	return gl.Texture{V: f.boundTextures[target]}
}

// TextureUnit returns the texture bound to a texture unit.
func (f *Functions) TextureUnit(unit int) gl.Texture {
	return gl.Texture{V: f.textureUnits[unit]}
}

// ImageUnit returns the image binding of an image unit.
func (f *Functions) ImageUnit(unit int) ImageBinding {
	return f.imageUnits[unit]
}

// SamplerUnit returns the sampler bound to a texture unit.
func (f *Functions) SamplerUnit(unit int) gl.Sampler {
	return gl.Sampler{V: f.samplerUnits[unit]}
}

// BoundFramebuffers returns the draw and read framebuffer bindings.
func (f *Functions) BoundFramebuffers() (draw, read gl.Framebuffer) {
	return gl.Framebuffer{V: f.drawFramebuffer}, gl.Framebuffer{V: f.readFramebuffer}
}

// BoundVertexArray returns the current vertex array.
func (f *Functions) BoundVertexArray() gl.VertexArray {
	return gl.VertexArray{V: f.vertexArray}
}

// CurrentProgram returns the program in use.
func (f *Functions) CurrentProgram() gl.Program {
	return gl.Program{V: f.program}
}

// Resident reports whether a bindless handle is resident.
func (f *Functions) Resident(handle uint64) bool {
	return f.resident[handle]
}

// Label returns the debug label of an object.
func (f *Functions) Label(identifier gl.Enum, name uint) string {
	return f.labels[labelKey{identifier, name}]
}

// CurrentViewport returns the last viewport set.
func (f *Functions) CurrentViewport() [4]int {
	return f.viewport
}

// UniformValue returns the last value written to the named uniform of p.
func (f *Functions) UniformValue(p gl.Program, name string) []float64 {
	ps := f.programs[p.V]
	if ps == nil {
		return nil
	}
	for _, u := range ps.Uniforms {
		if u.Name == name {
			return ps.UniformValues[u.Location]
		}
	}
	return nil
}

// call logs a method call and raises any error registered with FailOn.
func (f *Functions) call(method string) {
	f.Calls = append(f.Calls, method)
	if code, ok := f.failOn[method]; ok {
		delete(f.failOn, method)
		f.raise(code)
	}
}

// raise records code unless an earlier error is still pending.
func (f *Functions) raise(code gl.Enum) {
	if f.err == gl.NO_ERROR {
		f.err = code
	}
}

func (f *Functions) newName() uint {
	f.next++
	return f.next
}

var declRE = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(uniform|in)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)

// declarations extracts the uniform or input declarations of a GLSL
// source.
func declarations(src, qualifier string) []Variable {
	var vars []Variable
	for _, m := range declRE.FindAllStringSubmatch(src, -1) {
		if m[1] != qualifier {
			continue
		}
		size := 1
		if m[4] != "" {
			size = 0
			for _, c := range m[4] {
				size = size*10 + int(c-'0')
			}
		}
		vars = append(vars, Variable{Name: m[3], Type: glslType(m[2]), Size: size})
	}
	return vars
}

func glslType(name string) gl.Enum {
	switch name {
	case "vec2":
		return gl.FLOAT_VEC2
	case "vec3":
		return gl.FLOAT_VEC3
	case "vec4":
		return gl.FLOAT_VEC4
	case "mat2":
		return gl.FLOAT_MAT2
	case "mat3":
		return gl.FLOAT_MAT3
	case "mat4":
		return gl.FLOAT_MAT4
	case "int":
		return gl.INT
	case "ivec2":
		return gl.INT_VEC2
	case "ivec3":
		return gl.INT_VEC3
	case "ivec4":
		return gl.INT_VEC4
	case "uint":
		return gl.UNSIGNED_INT
	case "double":
		return gl.DOUBLE
	case "sampler2D":
		return gl.SAMPLER_2D
	default:
		return gl.FLOAT
	}
}

func sortByLocation(vars []Variable) {
	sort.Slice(vars, func(i, j int) bool { return vars[i].Location < vars[j].Location })
}

// texelSize returns the size in bytes of one texel of the given pixel
// format and type.
func texelSize(format, ty gl.Enum) int {
	comps := 4
	switch format {
	case gl.RED, gl.RED_INTEGER, gl.DEPTH_COMPONENT, gl.DEPTH_STENCIL:
		comps = 1
	case gl.RG:
		comps = 2
	case gl.RGB:
		comps = 3
	}
	switch ty {
	case gl.BYTE, gl.UNSIGNED_BYTE:
		return comps
	case gl.SHORT, gl.UNSIGNED_SHORT, gl.HALF_FLOAT:
		return comps * 2
	case gl.FLOAT_32_UNSIGNED_INT_24_8_REV:
		return 8
	case gl.DOUBLE:
		return comps * 8
	default:
		return comps * 4
	}
}
