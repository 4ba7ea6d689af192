// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"golang.org/x/exp/slices"

	"gioui.org/glwrap/gl"
)

// Sampler owns a sampler object. Bound to a texture unit, it overrides
// the sampling parameters of the texture bound there.
type Sampler struct {
	f           gl.Functions
	obj         gl.Sampler
	intParams   []IntParam
	floatParams []FloatParam
}

// NewSampler creates a sampler with the given parameters, applied in
// order, integer parameters first.
func NewSampler(f gl.Functions, intParams []IntParam, floatParams []FloatParam) (*Sampler, error) {
	gl.Check(f)
	obj := f.CreateSampler()
	for _, p := range intParams {
		f.SamplerParameteri(obj, p.Name, p.Value)
	}
	for _, p := range floatParams {
		f.SamplerParameterf(obj, p.Name, p.Value)
	}
	if err := gl.Check(f); err != nil {
		f.DeleteSampler(obj)
		return nil, newError(KindSampler, "NewSampler", "", err)
	}
	return &Sampler{
		f:           f,
		obj:         obj,
		intParams:   slices.Clone(intParams),
		floatParams: slices.Clone(floatParams),
	}, nil
}

func (s *Sampler) Bind(unit int) {
	s.f.BindSampler(unit, s.obj)
}

// Unbind clears the sampler binding of a texture unit.
func (s *Sampler) Unbind(unit int) {
	s.f.BindSampler(unit, gl.Sampler{})
}

func (s *Sampler) Name() gl.Sampler { return s.obj }

// Params returns copies of the parameters the sampler was created with.
func (s *Sampler) Params() ([]IntParam, []FloatParam) {
	return slices.Clone(s.intParams), slices.Clone(s.floatParams)
}

func (s *Sampler) SetDebugLabel(label string) {
	s.f.ObjectLabel(gl.SAMPLER, s.obj.V, label)
}

func (s *Sampler) Release() {
	if s.obj.Valid() {
		s.f.DeleteSampler(s.obj)
		s.obj = gl.Sampler{}
	}
}
