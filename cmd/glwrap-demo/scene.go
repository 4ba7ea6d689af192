// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/object"
)

const (
	vertSrc = `#version 450 core
in vec2 position;
in vec2 texcoord;
uniform mat4 mvp;
uniform int instances;
out vec2 uv;
void main() {
	float n = float(instances);
	vec2 offset = vec2(-1.0 + (2.0*float(gl_InstanceID) + 1.0)/n, 0.0);
	uv = texcoord;
	gl_Position = mvp * vec4(position/n + offset, 0.0, 1.0);
}
`
	fragSrc = `#version 450 core
in vec2 uv;
uniform sampler2D tex;
uniform vec4 tint;
out vec4 color;
void main() {
	color = texture(tex, uv) * tint;
}
`
)

// scene holds the objects needed to draw a frame.
type scene struct {
	f       gl.Functions
	prog    *object.Program
	mesh    *object.Mesh
	tex     *object.Texture2D
	sampler *object.Sampler
	fb      *object.Framebuffer
}

func newScene(f gl.Functions, width, height int) (*scene, error) {
	s := &scene{f: f}
	if err := s.init(width, height); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (s *scene) init(width, height int) error {
	var err error
	s.prog, err = object.NewProgramFromSources(s.f,
		object.ShaderSource{Stage: gl.VERTEX_SHADER, Source: vertSrc},
		object.ShaderSource{Stage: gl.FRAGMENT_SHADER, Source: fragSrc})
	if err != nil {
		return err
	}
	s.prog.SetDebugLabel("textured")
	// Match the attribute indices the mesh assigns.
	err = s.prog.BindAttribLocations(
		object.Location{Index: 0, Name: "position"},
		object.Location{Index: 1, Name: "texcoord"})
	if err != nil {
		return err
	}
	if err := s.prog.BindFragDataLocation(0, "color"); err != nil {
		return err
	}

	if s.mesh, err = newTriangle(s.f); err != nil {
		return err
	}
	s.tex, err = object.NewTexture2DFromImage(s.f, "checker", checker(64, 8), nil, true)
	if err != nil {
		return err
	}
	params := object.SamplerParamsFor(gputypes.FilterModeLinear, gputypes.AddressModeClampToEdge)
	if s.sampler, err = object.NewSampler(s.f, params, nil); err != nil {
		return err
	}
	s.sampler.SetDebugLabel("linear-clamp")

	if s.fb, err = object.NewFramebuffer(s.f, width, height, object.Depth24Stencil8); err != nil {
		return err
	}
	s.fb.SetDebugLabel("offscreen")
	if err := s.fb.CreateColorAttachment(gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, "color"); err != nil {
		return err
	}
	return s.fb.CheckStatus(gl.FRAMEBUFFER)
}

func newTriangle(f gl.Functions) (*object.Mesh, error) {
	pos, err := object.AttributeFor(gputypes.VertexFormatFloat32x2, 0)
	if err != nil {
		return nil, err
	}
	uv, err := object.AttributeFor(gputypes.VertexFormatFloat32x2, 8)
	if err != nil {
		return nil, err
	}
	layout := object.VertexLayout{Stride: 16, Attributes: []object.VertexAttribute{pos, uv}}
	vertices := []float32{
		-0.8, -0.8, 0, 0,
		0.8, -0.8, 1, 0,
		0, 0.8, 0.5, 1,
	}
	indices := []uint16{0, 1, 2}
	return object.NewMesh(f,
		[][]byte{gl.BytesView(vertices)}, gl.BytesView(indices),
		[]object.VertexLayout{layout},
		object.IndexTypeFor(gputypes.IndexFormatUint16), gl.STATIC_DRAW, gl.TRIANGLES)
}

// checker returns a size by size checkerboard with cells of the given
// size.
func checker(size, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	dark := color.RGBA{R: 0x44, G: 0x66, B: 0x99, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Render draws instances triangles side by side and reads back the
// color attachment.
func (s *scene) Render(instances int) (*image.RGBA, error) {
	w, h := s.fb.Width(), s.fb.Height()
	s.fb.Bind()
	defer s.f.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
	s.f.Viewport(0, 0, w, h)
	s.f.ClearColor(0.1, 0.1, 0.1, 1)
	s.f.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if err := s.prog.Use(); err != nil {
		return nil, err
	}
	defer s.f.UseProgram(gl.Program{})
	aspect := float32(w) / float32(h)
	if err := s.prog.SetUniformMat4("mvp", mgl32.Ortho2D(-aspect, aspect, -1, 1)); err != nil {
		return nil, err
	}
	if err := s.prog.SetUniformi("instances", instances); err != nil {
		return nil, err
	}
	if err := s.prog.SetUniformi("tex", 0); err != nil {
		return nil, err
	}
	if err := s.prog.SetUniformVec4("tint", mgl32.Vec4{1, 0.9, 0.8, 1}); err != nil {
		return nil, err
	}
	s.tex.BindUnit(0)
	s.sampler.Bind(0)
	defer s.sampler.Unbind(0)

	gl.Check(s.f)
	s.mesh.Draw(instances)
	if err := gl.Check(s.f); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	return s.fb.ReadImage(0)
}

func (s *scene) Release() {
	if s.fb != nil {
		s.fb.Release()
	}
	if s.sampler != nil {
		s.sampler.Release()
	}
	if s.tex != nil {
		s.tex.Release()
	}
	if s.mesh != nil {
		s.mesh.Release()
	}
	if s.prog != nil {
		s.prog.Release()
	}
}
