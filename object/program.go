// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"errors"
	"fmt"
	"strings"

	"gioui.org/shader"
	"github.com/go-gl/mathgl/mgl32"

	"gioui.org/glwrap/gl"
)

// ShaderSource is the GLSL source of one shader stage.
type ShaderSource struct {
	// Stage is the shader type, such as gl.VERTEX_SHADER.
	Stage  gl.Enum
	Source string
}

// Location pairs a variable name with an attribute or fragment output
// location.
type Location struct {
	Index int
	Name  string
}

// Variable describes an active uniform or vertex attribute of a linked
// program.
type Variable struct {
	Name     string
	Type     gl.Enum
	Size     int
	Location int
}

// Program owns a shader program. Shaders are compiled and attached one
// stage at a time and take effect once the program is linked.
type Program struct {
	f      gl.Functions
	obj    gl.Program
	linked bool
	log    string
	label  string

	// compileFailed is set once any stage fails to compile. The program
	// can no longer be linked.
	compileFailed bool
}

// NewProgram creates an empty, unlinked program.
func NewProgram(f gl.Functions) (*Program, error) {
	gl.Check(f)
	obj := f.CreateProgram()
	if err := gl.Check(f); err != nil {
		return nil, newError(KindProgram, "NewProgram", "", err)
	}
	if !obj.Valid() {
		return nil, newError(KindProgram, "NewProgram", "", errors.New("glCreateProgram failed"))
	}
	Logger().Debug("program created", "name", obj.V)
	return &Program{f: f, obj: obj}, nil
}

// WrapProgram takes ownership of an existing program object.
func WrapProgram(f gl.Functions, obj gl.Program) *Program {
	return &Program{
		f:      f,
		obj:    obj,
		linked: f.GetProgrami(obj, gl.LINK_STATUS) != 0,
	}
}

// NewProgramFromSources compiles every source and links the result.
// The program is released if any step fails.
func NewProgramFromSources(f gl.Functions, sources ...ShaderSource) (*Program, error) {
	p, err := NewProgram(f)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		if err := p.CompileShader(src.Stage, src.Source); err != nil {
			p.Release()
			return nil, err
		}
	}
	if err := p.Link(); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// NewProgramFromGio builds a program from the GLSL 1.50 variants of a
// pair of gio shaders. Vertex inputs are bound to their reflected
// locations and sampler uniforms to their texture units. Uniform
// blocks keep their default bindings.
func NewProgramFromGio(f gl.Functions, vert, frag shader.Sources) (*Program, error) {
	p, err := NewProgram(f)
	if err != nil {
		return nil, err
	}
	p.label = vert.Name
	if err := p.CompileShader(gl.VERTEX_SHADER, vert.GLSL150); err != nil {
		p.Release()
		return nil, fmt.Errorf("%s: %w", vert.Name, err)
	}
	if err := p.CompileShader(gl.FRAGMENT_SHADER, frag.GLSL150); err != nil {
		p.Release()
		return nil, fmt.Errorf("%s: %w", frag.Name, err)
	}
	for _, inp := range vert.Inputs {
		f.BindAttribLocation(p.obj, gl.Attrib(inp.Location), inp.Name)
	}
	if err := p.Link(); err != nil {
		p.Release()
		return nil, err
	}
	f.UseProgram(p.obj)
	for _, texs := range [][]shader.TextureBinding{vert.Textures, frag.Textures} {
		for _, tex := range texs {
			u := f.GetUniformLocation(p.obj, tex.Name)
			if u.Valid() {
				f.Uniform1i(u, tex.Binding)
			}
		}
	}
	f.UseProgram(gl.Program{})
	if err := gl.Check(f); err != nil {
		p.Release()
		return nil, p.error("NewProgramFromGio", err)
	}
	return p, nil
}

// CompileShader compiles src as a stage of the program and attaches it.
// The shader object is flagged for deletion so that it is freed with
// the program.
func (p *Program) CompileShader(stage gl.Enum, src string) error {
	if src == "" {
		p.compileFailed = true
		return p.error("CompileShader", fmt.Errorf("%w: %s", ErrEmptySource, stageName(stage)))
	}
	f := p.f
	gl.Check(f)
	s := f.CreateShader(stage)
	if !s.Valid() {
		p.compileFailed = true
		err := gl.Check(f)
		if err == nil {
			err = errors.New("glCreateShader failed")
		}
		return p.error("CompileShader", err)
	}
	f.ShaderSource(s, src)
	f.CompileShader(s)
	if f.GetShaderi(s, gl.COMPILE_STATUS) == 0 {
		p.compileFailed = true
		p.log = strings.TrimSpace(f.GetShaderInfoLog(s))
		f.DeleteShader(s)
		e := p.error("CompileShader", fmt.Errorf("%s shader compilation failed", stageName(stage)))
		e.Log = p.log
		return e
	}
	f.AttachShader(p.obj, s)
	f.DeleteShader(s)
	if err := gl.Check(f); err != nil {
		p.compileFailed = true
		return p.error("CompileShader", err)
	}
	return nil
}

// Link links the attached shaders. On failure the program is left
// unlinked and the error carries the info log. A program with a stage
// that failed to compile never links.
func (p *Program) Link() error {
	if p.compileFailed {
		p.linked = false
		e := p.error("Link", errors.New("shader compilation failed"))
		e.Log = p.log
		return e
	}
	f := p.f
	gl.Check(f)
	f.LinkProgram(p.obj)
	p.linked = f.GetProgrami(p.obj, gl.LINK_STATUS) != 0
	p.log = strings.TrimSpace(f.GetProgramInfoLog(p.obj))
	if !p.linked {
		e := p.error("Link", errors.New("program link failed"))
		e.Log = p.log
		return e
	}
	if err := gl.Check(f); err != nil {
		return p.error("Link", err)
	}
	Logger().Debug("program linked", "name", p.obj.V, "label", p.label)
	return nil
}

// Use makes the program current.
func (p *Program) Use() error {
	if !p.linked {
		return p.error("Use", ErrNotLinked)
	}
	p.f.UseProgram(p.obj)
	return nil
}

// BindAttribLocation assigns a vertex attribute location and relinks.
func (p *Program) BindAttribLocation(index int, name string) error {
	return p.BindAttribLocations(Location{Index: index, Name: name})
}

// BindAttribLocations assigns several attribute locations and relinks
// once.
func (p *Program) BindAttribLocations(locs ...Location) error {
	gl.Check(p.f)
	for _, l := range locs {
		p.f.BindAttribLocation(p.obj, gl.Attrib(l.Index), l.Name)
	}
	if err := gl.Check(p.f); err != nil {
		return p.error("BindAttribLocation", err)
	}
	return p.Link()
}

// BindFragDataLocation assigns a fragment output to a color attachment
// index and relinks.
func (p *Program) BindFragDataLocation(index int, name string) error {
	return p.BindFragDataLocations(Location{Index: index, Name: name})
}

// BindFragDataLocations assigns several fragment outputs and relinks
// once.
func (p *Program) BindFragDataLocations(locs ...Location) error {
	gl.Check(p.f)
	for _, l := range locs {
		p.f.BindFragDataLocation(p.obj, l.Index, l.Name)
	}
	if err := gl.Check(p.f); err != nil {
		return p.error("BindFragDataLocation", err)
	}
	return p.Link()
}

// UniformLocation looks up a uniform. The result is invalid if the
// program has no active uniform of that name.
func (p *Program) UniformLocation(name string) gl.Uniform {
	return p.f.GetUniformLocation(p.obj, name)
}

// The SetUniform methods look up the location of name on every call
// and upload to the program in use. Unknown names are ignored by the
// driver.

// SetUniformf sets a float, vec2, vec3 or vec4 uniform. It panics
// unless 1 to 4 values are given.
func (p *Program) SetUniformf(name string, v ...float32) error {
	return p.setUniform("SetUniformf", name, func(u gl.Uniform) {
		switch len(v) {
		case 1:
			p.f.Uniform1f(u, v[0])
		case 2:
			p.f.Uniform2f(u, v[0], v[1])
		case 3:
			p.f.Uniform3f(u, v[0], v[1], v[2])
		case 4:
			p.f.Uniform4f(u, v[0], v[1], v[2], v[3])
		default:
			panic(fmt.Errorf("uniform %s: %d components", name, len(v)))
		}
	})
}

// SetUniformi is like SetUniformf for int, ivecN and sampler uniforms.
func (p *Program) SetUniformi(name string, v ...int) error {
	return p.setUniform("SetUniformi", name, func(u gl.Uniform) {
		switch len(v) {
		case 1:
			p.f.Uniform1i(u, v[0])
		case 2:
			p.f.Uniform2i(u, v[0], v[1])
		case 3:
			p.f.Uniform3i(u, v[0], v[1], v[2])
		case 4:
			p.f.Uniform4i(u, v[0], v[1], v[2], v[3])
		default:
			panic(fmt.Errorf("uniform %s: %d components", name, len(v)))
		}
	})
}

// SetUniformui is like SetUniformf for uint and uvecN uniforms.
func (p *Program) SetUniformui(name string, v ...uint32) error {
	return p.setUniform("SetUniformui", name, func(u gl.Uniform) {
		switch len(v) {
		case 1:
			p.f.Uniform1ui(u, v[0])
		case 2:
			p.f.Uniform2ui(u, v[0], v[1])
		case 3:
			p.f.Uniform3ui(u, v[0], v[1], v[2])
		case 4:
			p.f.Uniform4ui(u, v[0], v[1], v[2], v[3])
		default:
			panic(fmt.Errorf("uniform %s: %d components", name, len(v)))
		}
	})
}

func (p *Program) SetUniformVec2(name string, v mgl32.Vec2) error {
	return p.SetUniformf(name, v[:]...)
}

func (p *Program) SetUniformVec3(name string, v mgl32.Vec3) error {
	return p.SetUniformf(name, v[:]...)
}

func (p *Program) SetUniformVec4(name string, v mgl32.Vec4) error {
	return p.SetUniformf(name, v[:]...)
}

// SetUniformMat2 sets a mat2 uniform from a column-major matrix.
func (p *Program) SetUniformMat2(name string, m mgl32.Mat2) error {
	return p.setUniform("SetUniformMat2", name, func(u gl.Uniform) {
		p.f.UniformMatrix2fv(u, false, m[:])
	})
}

func (p *Program) SetUniformMat3(name string, m mgl32.Mat3) error {
	return p.setUniform("SetUniformMat3", name, func(u gl.Uniform) {
		p.f.UniformMatrix3fv(u, false, m[:])
	})
}

func (p *Program) SetUniformMat4(name string, m mgl32.Mat4) error {
	return p.setUniform("SetUniformMat4", name, func(u gl.Uniform) {
		p.f.UniformMatrix4fv(u, false, m[:])
	})
}

func (p *Program) setUniform(op, name string, upload func(u gl.Uniform)) error {
	gl.Check(p.f)
	upload(p.f.GetUniformLocation(p.obj, name))
	if err := gl.Check(p.f); err != nil {
		return p.error(op, fmt.Errorf("%s: %w", name, err))
	}
	return nil
}

// ActiveUniforms lists the active uniforms of the linked program.
func (p *Program) ActiveUniforms() []Variable {
	n := p.f.GetProgrami(p.obj, gl.ACTIVE_UNIFORMS)
	vars := make([]Variable, 0, n)
	for i := 0; i < n; i++ {
		name, size, ty := p.f.GetActiveUniform(p.obj, i)
		loc := p.f.GetUniformLocation(p.obj, name)
		vars = append(vars, Variable{Name: name, Type: ty, Size: size, Location: loc.V})
	}
	return vars
}

// ActiveAttributes lists the active vertex attributes of the linked
// program.
func (p *Program) ActiveAttributes() []Variable {
	n := p.f.GetProgrami(p.obj, gl.ACTIVE_ATTRIBUTES)
	vars := make([]Variable, 0, n)
	for i := 0; i < n; i++ {
		name, size, ty := p.f.GetActiveAttrib(p.obj, i)
		loc := p.f.GetAttribLocation(p.obj, name)
		vars = append(vars, Variable{Name: name, Type: ty, Size: size, Location: loc})
	}
	return vars
}

// Log returns the info log of the last compile or link.
func (p *Program) Log() string { return p.log }

func (p *Program) Linked() bool       { return p.linked }
func (p *Program) Name() gl.Program   { return p.obj }
func (p *Program) DebugLabel() string { return p.label }

// SetDebugLabel names the program in driver debug output and in
// errors.
func (p *Program) SetDebugLabel(label string) {
	p.label = label
	p.f.ObjectLabel(gl.PROGRAM, p.obj.V, label)
}

// Release deletes the program and the shaders attached to it.
func (p *Program) Release() {
	if !p.obj.Valid() {
		return
	}
	Logger().Debug("program released", "name", p.obj.V, "label", p.label)
	p.f.DeleteProgram(p.obj)
	p.obj = gl.Program{}
	p.linked = false
}

func (p *Program) error(op string, err error) *Error {
	return newError(KindProgram, op, p.label, err)
}

func stageName(stage gl.Enum) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	case gl.TESS_CONTROL_SHADER:
		return "tessellation control"
	case gl.TESS_EVALUATION_SHADER:
		return "tessellation evaluation"
	case gl.COMPUTE_SHADER:
		return "compute"
	}
	return fmt.Sprintf("%#x", uint(stage))
}
