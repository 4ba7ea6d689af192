// SPDX-License-Identifier: Unlicense OR MIT

package gltest

import (
	"strings"

	"gioui.org/glwrap/gl"
)

var _ gl.Functions = (*Functions)(nil)

func (f *Functions) CreateBuffer() gl.Buffer {
	f.call("CreateBuffer")
	n := f.newName()
	f.buffers[n] = &BufferState{}
	return gl.Buffer{V: n}
}

func (f *Functions) NamedBufferData(b gl.Buffer, size int, data []byte, usage gl.Enum) {
	f.call("NamedBufferData")
	bs := f.buffers[b.V]
	switch {
	case bs == nil || bs.Immutable:
		f.raise(gl.INVALID_OPERATION)
		return
	case size < 0 || (data != nil && len(data) < size):
		f.raise(gl.INVALID_VALUE)
		return
	}
	bs.Data = make([]byte, size)
	copy(bs.Data, data)
	bs.Usage = usage
}

func (f *Functions) NamedBufferStorage(b gl.Buffer, size int, data []byte, flags gl.Enum) {
	f.call("NamedBufferStorage")
	bs := f.buffers[b.V]
	switch {
	case bs == nil || bs.Immutable:
		f.raise(gl.INVALID_OPERATION)
		return
	case size <= 0 || (data != nil && len(data) < size):
		f.raise(gl.INVALID_VALUE)
		return
	}
	bs.Data = make([]byte, size)
	copy(bs.Data, data)
	bs.Flags = flags
	bs.Immutable = true
}

func (f *Functions) NamedBufferSubData(b gl.Buffer, offset int, data []byte) {
	f.call("NamedBufferSubData")
	bs := f.buffers[b.V]
	switch {
	case bs == nil:
		f.raise(gl.INVALID_OPERATION)
	case offset < 0 || offset+len(data) > len(bs.Data):
		f.raise(gl.INVALID_VALUE)
	case bs.Immutable && bs.Flags&gl.DYNAMIC_STORAGE_BIT == 0:
		f.raise(gl.INVALID_OPERATION)
	default:
		copy(bs.Data[offset:], data)
	}
}

func (f *Functions) GetNamedBufferSubData(b gl.Buffer, offset int, data []byte) {
	f.call("GetNamedBufferSubData")
	bs := f.buffers[b.V]
	switch {
	case bs == nil:
		f.raise(gl.INVALID_OPERATION)
	case offset < 0 || offset+len(data) > len(bs.Data):
		f.raise(gl.INVALID_VALUE)
	default:
		copy(data, bs.Data[offset:])
	}
}

func (f *Functions) CopyNamedBufferSubData(src, dst gl.Buffer, readOffset, writeOffset, size int) {
	f.call("CopyNamedBufferSubData")
	sb, db := f.buffers[src.V], f.buffers[dst.V]
	switch {
	case sb == nil || db == nil:
		f.raise(gl.INVALID_OPERATION)
	case readOffset < 0 || writeOffset < 0 || size < 0 ||
		readOffset+size > len(sb.Data) || writeOffset+size > len(db.Data):
		f.raise(gl.INVALID_VALUE)
	default:
		copy(db.Data[writeOffset:writeOffset+size], sb.Data[readOffset:readOffset+size])
	}
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.call("BindBuffer")
	if b.V != 0 && f.buffers[b.V] == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.boundBuffers[target] = b.V
}

func (f *Functions) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	f.call("BindBufferBase")
	switch target {
	case gl.UNIFORM_BUFFER, gl.SHADER_STORAGE_BUFFER, gl.ATOMIC_COUNTER_BUFFER:
	default:
		f.raise(gl.INVALID_ENUM)
		return
	}
	if b.V != 0 && f.buffers[b.V] == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.boundBufferBases[bufferBase{target, index}] = b.V
	f.boundBuffers[target] = b.V
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.call("DeleteBuffer")
	delete(f.buffers, b.V)
	for t, v := range f.boundBuffers {
		if v == b.V {
			delete(f.boundBuffers, t)
		}
	}
}

func (f *Functions) CreateTexture(target gl.Enum) gl.Texture {
	f.call("CreateTexture")
	n := f.newName()
	f.textures[n] = newTextureState(target)
	return gl.Texture{V: n}
}

func newTextureState(target gl.Enum) *TextureState {
	return &TextureState{
		Target:      target,
		IntParams:   make(map[gl.Enum]int),
		FloatParams: make(map[gl.Enum]float32),
	}
}

func (f *Functions) GenTexture() gl.Texture {
	f.call("GenTexture")
	n := f.newName()
	f.textures[n] = newTextureState(gl.NONE)
	return gl.Texture{V: n}
}

func (f *Functions) TextureParameteri(t gl.Texture, pname gl.Enum, param int) {
	f.call("TextureParameteri")
	ts := f.textures[t.V]
	if ts == nil || ts.Target == gl.NONE {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ts.IntParams[pname] = param
	ts.ParamOrder = append(ts.ParamOrder, pname)
}

func (f *Functions) TextureParameterf(t gl.Texture, pname gl.Enum, param float32) {
	f.call("TextureParameterf")
	ts := f.textures[t.V]
	if ts == nil || ts.Target == gl.NONE {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ts.FloatParams[pname] = param
	ts.ParamOrder = append(ts.ParamOrder, pname)
}

func (f *Functions) TextureStorage1D(t gl.Texture, levels int, internalFormat gl.Enum, width int) {
	f.call("TextureStorage1D")
	f.storage(t, gl.TEXTURE_1D, levels, internalFormat, width, 1, 1)
}

func (f *Functions) TextureStorage2D(t gl.Texture, levels int, internalFormat gl.Enum, width, height int) {
	f.call("TextureStorage2D")
	f.storage(t, gl.TEXTURE_2D, levels, internalFormat, width, height, 1)
}

func (f *Functions) TextureStorage3D(t gl.Texture, levels int, internalFormat gl.Enum, width, height, depth int) {
	f.call("TextureStorage3D")
	ts := f.textures[t.V]
	if ts != nil && ts.Target == gl.TEXTURE_CUBE_MAP_ARRAY && depth%6 != 0 {
		f.raise(gl.INVALID_VALUE)
		return
	}
	target := gl.Enum(gl.TEXTURE_3D)
	if ts != nil {
		switch ts.Target {
		case gl.TEXTURE_2D_ARRAY, gl.TEXTURE_CUBE_MAP_ARRAY:
			target = ts.Target
		}
	}
	f.storage(t, target, levels, internalFormat, width, height, depth)
}

func (f *Functions) storage(t gl.Texture, target gl.Enum, levels int, internalFormat gl.Enum, w, h, d int) {
	ts := f.textures[t.V]
	switch {
	case ts == nil || ts.Target != target || ts.Allocated:
		f.raise(gl.INVALID_OPERATION)
		return
	case w < 1 || h < 1 || d < 1 || levels < 1 ||
		w > f.MaxTextureSize || h > f.MaxTextureSize || d > f.MaxTextureSize:
		f.raise(gl.INVALID_VALUE)
		return
	}
	maxDim := w
	if target != gl.TEXTURE_1D && h > maxDim {
		maxDim = h
	}
	if target == gl.TEXTURE_3D && d > maxDim {
		maxDim = d
	}
	if levels > fullMipLevels(maxDim) {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ts.Levels = levels
	ts.InternalFormat = internalFormat
	ts.Width, ts.Height, ts.Depth = w, h, d
	ts.Allocated = true
}

func fullMipLevels(dim int) int {
	n := 0
	for ; dim > 0; dim >>= 1 {
		n++
	}
	return n
}

func (f *Functions) TextureSubImage1D(t gl.Texture, level, x, width int, format, ty gl.Enum, data []byte) {
	f.call("TextureSubImage1D")
	f.subImage(t, level, x, 0, 0, width, 1, 1, format, ty, data)
}

func (f *Functions) TextureSubImage2D(t gl.Texture, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.call("TextureSubImage2D")
	f.subImage(t, level, x, y, 0, width, height, 1, format, ty, data)
}

func (f *Functions) TextureSubImage3D(t gl.Texture, level, x, y, z, width, height, depth int, format, ty gl.Enum, data []byte) {
	f.call("TextureSubImage3D")
	f.subImage(t, level, x, y, z, width, height, depth, format, ty, data)
}

func (f *Functions) subImage(t gl.Texture, level, x, y, z, w, h, d int, format, ty gl.Enum, data []byte) {
	ts := f.textures[t.V]
	if ts == nil || !ts.Allocated {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	if level < 0 || level >= ts.Levels || x < 0 || y < 0 || z < 0 ||
		x+w > ts.Width || y+h > ts.Height || z+d > ts.Depth {
		f.raise(gl.INVALID_VALUE)
		return
	}
	bpt := texelSize(format, ty)
	if len(data) < w*h*d*bpt {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	if level != 0 {
		return
	}
	if ts.BytesPerTexel != bpt || ts.Data == nil {
		ts.BytesPerTexel = bpt
		ts.Data = make([]byte, ts.Width*ts.Height*ts.Depth*bpt)
	}
	row := w * bpt
	for k := 0; k < d; k++ {
		for j := 0; j < h; j++ {
			src := ((k*h)+j)*row
			dst := (((z+k)*ts.Height+(y+j))*ts.Width + x) * bpt
			copy(ts.Data[dst:dst+row], data[src:src+row])
		}
	}
}

func (f *Functions) GenerateTextureMipmap(t gl.Texture) {
	f.call("GenerateTextureMipmap")
	ts := f.textures[t.V]
	if ts == nil || !ts.Allocated {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ts.MipmapsBuilt++
}

func (f *Functions) TextureView(view gl.Texture, target gl.Enum, orig gl.Texture, internalFormat gl.Enum, minLevel, numLevels, minLayer, numLayers int) {
	f.call("TextureView")
	vs, os := f.textures[view.V], f.textures[orig.V]
	switch {
	case vs == nil || vs.Target != gl.NONE || os == nil || !os.Allocated:
		f.raise(gl.INVALID_OPERATION)
		return
	case minLevel < 0 || numLevels < 1 || minLevel >= os.Levels:
		f.raise(gl.INVALID_VALUE)
		return
	}
	if minLevel+numLevels > os.Levels {
		numLevels = os.Levels - minLevel
	}
	vs.Target = target
	vs.InternalFormat = internalFormat
	vs.Levels = numLevels
	vs.Width = max(os.Width>>minLevel, 1)
	vs.Height = max(os.Height>>minLevel, 1)
	vs.Depth = max(os.Depth>>minLevel, 1)
	vs.Allocated = true
	vs.ViewOf = orig.V
	vs.MinLevel, vs.MinLayer, vs.NumLayers = minLevel, minLayer, numLayers
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.call("BindTexture")
	if ts := f.textures[t.V]; t.V != 0 && (ts == nil || (ts.Target != gl.NONE && ts.Target != target)) {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.boundTextures[target] = t.V
}

func (f *Functions) BindTextureUnit(unit int, t gl.Texture) {
	f.call("BindTextureUnit")
	if t.V != 0 && f.textures[t.V] == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.textureUnits[unit] = t.V
}

func (f *Functions) BindImageTexture(unit int, t gl.Texture, level int, layered bool, layer int, access, format gl.Enum) {
	f.call("BindImageTexture")
	if ts := f.textures[t.V]; t.V != 0 && (ts == nil || !ts.Allocated) {
		f.raise(gl.INVALID_VALUE)
		return
	}
	f.imageUnits[unit] = ImageBinding{Texture: t.V, Level: level, Layered: layered, Layer: layer, Access: access, Format: format}
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.call("DeleteTexture")
	delete(f.textures, t.V)
	for h, n := range f.handles {
		if n == t.V {
			delete(f.handles, h)
			delete(f.resident, h)
		}
	}
	for _, fb := range f.framebuffers {
		for a, n := range fb.Attachments {
			if n == t.V {
				delete(fb.Attachments, a)
			}
		}
	}
}

func (f *Functions) GetTextureHandle(t gl.Texture) uint64 {
	f.call("GetTextureHandle")
	ts := f.textures[t.V]
	if ts == nil || !ts.Allocated {
		f.raise(gl.INVALID_OPERATION)
		return 0
	}
	h := uint64(0x1000_0000) | uint64(t.V)
	f.handles[h] = t.V
	return h
}

func (f *Functions) GetImageHandle(t gl.Texture, level int, layered bool, layer int, format gl.Enum) uint64 {
	f.call("GetImageHandle")
	ts := f.textures[t.V]
	if ts == nil || !ts.Allocated {
		f.raise(gl.INVALID_OPERATION)
		return 0
	}
	if level < 0 || level >= ts.Levels {
		f.raise(gl.INVALID_VALUE)
		return 0
	}
	h := uint64(0x2000_0000) | uint64(t.V) | uint64(level)<<32 | uint64(layer)<<40
	if layered {
		h |= 1 << 56
	}
	f.handles[h] = t.V
	return h
}

func (f *Functions) MakeTextureHandleResident(handle uint64) {
	f.call("MakeTextureHandleResident")
	if _, ok := f.handles[handle]; !ok || f.resident[handle] {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.resident[handle] = true
}

func (f *Functions) MakeTextureHandleNonResident(handle uint64) {
	f.call("MakeTextureHandleNonResident")
	if !f.resident[handle] {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	delete(f.resident, handle)
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	f.call("CreateVertexArray")
	n := f.newName()
	f.vertexArrays[n] = &VertexArrayState{
		Bindings: make(map[int]VertexBinding),
		Attribs:  make(map[gl.Attrib]*AttribState),
	}
	return gl.VertexArray{V: n}
}

func (f *Functions) VertexArrayVertexBuffer(va gl.VertexArray, binding int, b gl.Buffer, offset, stride int) {
	f.call("VertexArrayVertexBuffer")
	vs := f.vertexArrays[va.V]
	switch {
	case vs == nil || (b.V != 0 && f.buffers[b.V] == nil):
		f.raise(gl.INVALID_OPERATION)
	case offset < 0 || stride < 0:
		f.raise(gl.INVALID_VALUE)
	default:
		vs.Bindings[binding] = VertexBinding{Buffer: b.V, Offset: offset, Stride: stride}
	}
}

func (f *Functions) VertexArrayElementBuffer(va gl.VertexArray, b gl.Buffer) {
	f.call("VertexArrayElementBuffer")
	vs := f.vertexArrays[va.V]
	if vs == nil || (b.V != 0 && f.buffers[b.V] == nil) {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	vs.ElementBuffer = b.V
}

func (f *Functions) attrib(va gl.VertexArray, a gl.Attrib) *AttribState {
	vs := f.vertexArrays[va.V]
	if vs == nil {
		f.raise(gl.INVALID_OPERATION)
		return nil
	}
	if a >= 16 {
		f.raise(gl.INVALID_VALUE)
		return nil
	}
	as := vs.Attribs[a]
	if as == nil {
		as = &AttribState{Binding: int(a)}
		vs.Attribs[a] = as
	}
	return as
}

func (f *Functions) EnableVertexArrayAttrib(va gl.VertexArray, a gl.Attrib) {
	f.call("EnableVertexArrayAttrib")
	if as := f.attrib(va, a); as != nil {
		as.Enabled = true
		vs := f.vertexArrays[va.V]
		vs.AttribsEnabled = append(vs.AttribsEnabled, a)
	}
}

func (f *Functions) VertexArrayAttribFormat(va gl.VertexArray, a gl.Attrib, size int, ty gl.Enum, normalized bool, offset int) {
	f.call("VertexArrayAttribFormat")
	f.attribFormat(va, a, AttribFloat, size, ty, normalized, offset)
}

func (f *Functions) VertexArrayAttribIFormat(va gl.VertexArray, a gl.Attrib, size int, ty gl.Enum, offset int) {
	f.call("VertexArrayAttribIFormat")
	switch ty {
	case gl.BYTE, gl.UNSIGNED_BYTE, gl.SHORT, gl.UNSIGNED_SHORT, gl.INT, gl.UNSIGNED_INT:
	default:
		f.raise(gl.INVALID_ENUM)
		return
	}
	f.attribFormat(va, a, AttribInteger, size, ty, false, offset)
}

func (f *Functions) VertexArrayAttribLFormat(va gl.VertexArray, a gl.Attrib, size int, ty gl.Enum, offset int) {
	f.call("VertexArrayAttribLFormat")
	if ty != gl.DOUBLE {
		f.raise(gl.INVALID_ENUM)
		return
	}
	f.attribFormat(va, a, AttribDouble, size, ty, false, offset)
}

func (f *Functions) attribFormat(va gl.VertexArray, a gl.Attrib, kind AttribKind, size int, ty gl.Enum, normalized bool, offset int) {
	if size < 1 || size > 4 || offset < 0 {
		f.raise(gl.INVALID_VALUE)
		return
	}
	if as := f.attrib(va, a); as != nil {
		as.Kind, as.Size, as.Type, as.Normalized, as.Offset = kind, size, ty, normalized, offset
	}
}

func (f *Functions) VertexArrayAttribBinding(va gl.VertexArray, a gl.Attrib, binding int) {
	f.call("VertexArrayAttribBinding")
	if as := f.attrib(va, a); as != nil {
		as.Binding = binding
	}
}

func (f *Functions) BindVertexArray(va gl.VertexArray) {
	f.call("BindVertexArray")
	if va.V != 0 && f.vertexArrays[va.V] == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.vertexArray = va.V
}

func (f *Functions) DeleteVertexArray(va gl.VertexArray) {
	f.call("DeleteVertexArray")
	delete(f.vertexArrays, va.V)
	if f.vertexArray == va.V {
		f.vertexArray = 0
	}
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.call("DrawElementsInstanced")
	if count < 0 || instances < 0 {
		f.raise(gl.INVALID_VALUE)
		return
	}
	vs := f.vertexArrays[f.vertexArray]
	if vs == nil || vs.ElementBuffer == 0 {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.Draws = append(f.Draws, Draw{
		Mode:        mode,
		Count:       count,
		Type:        ty,
		Offset:      offset,
		Instances:   instances,
		VertexArray: f.vertexArray,
		Program:     f.program,
	})
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	f.call("CreateFramebuffer")
	n := f.newName()
	f.framebuffers[n] = &FramebufferState{
		Attachments: make(map[gl.Enum]uint),
		DrawBuffers: []gl.Enum{gl.COLOR_ATTACHMENT0},
		ReadBuffer:  gl.COLOR_ATTACHMENT0,
	}
	return gl.Framebuffer{V: n}
}

func (f *Functions) NamedFramebufferTexture(fb gl.Framebuffer, attachment gl.Enum, t gl.Texture, level int) {
	f.call("NamedFramebufferTexture")
	fs := f.framebuffers[fb.V]
	if fs == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	switch {
	case attachment >= gl.COLOR_ATTACHMENT0 && attachment < gl.COLOR_ATTACHMENT0+32:
		if int(attachment-gl.COLOR_ATTACHMENT0) >= f.MaxColorAttachments {
			f.raise(gl.INVALID_OPERATION)
			return
		}
	case attachment == gl.DEPTH_ATTACHMENT, attachment == gl.STENCIL_ATTACHMENT, attachment == gl.DEPTH_STENCIL_ATTACHMENT:
	default:
		f.raise(gl.INVALID_ENUM)
		return
	}
	if t.V == 0 {
		delete(fs.Attachments, attachment)
		return
	}
	ts := f.textures[t.V]
	if ts == nil || !ts.Allocated {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	if level < 0 || level >= ts.Levels {
		f.raise(gl.INVALID_VALUE)
		return
	}
	fs.Attachments[attachment] = t.V
}

func (f *Functions) CheckNamedFramebufferStatus(fb gl.Framebuffer, target gl.Enum) gl.Enum {
	f.call("CheckNamedFramebufferStatus")
	if f.FramebufferStatus != 0 {
		return f.FramebufferStatus
	}
	if fb.V == 0 {
		return gl.FRAMEBUFFER_COMPLETE
	}
	fs := f.framebuffers[fb.V]
	if fs == nil {
		f.raise(gl.INVALID_OPERATION)
		return 0
	}
	if len(fs.Attachments) == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.call("BindFramebuffer")
	if fb.V != 0 && f.framebuffers[fb.V] == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	switch target {
	case gl.FRAMEBUFFER:
		f.drawFramebuffer, f.readFramebuffer = fb.V, fb.V
	case gl.DRAW_FRAMEBUFFER:
		f.drawFramebuffer = fb.V
	case gl.READ_FRAMEBUFFER:
		f.readFramebuffer = fb.V
	default:
		f.raise(gl.INVALID_ENUM)
	}
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) {
	f.call("DrawBuffers")
	if len(bufs) > f.MaxColorAttachments {
		f.raise(gl.INVALID_VALUE)
		return
	}
	bufs = append([]gl.Enum(nil), bufs...)
	if f.drawFramebuffer == 0 {
		f.defaultDrawBufs = bufs
		return
	}
	f.framebuffers[f.drawFramebuffer].DrawBuffers = bufs
}

func (f *Functions) ReadBuffer(src gl.Enum) {
	f.call("ReadBuffer")
	if f.readFramebuffer == 0 {
		f.defaultReadBuffer = src
		return
	}
	f.framebuffers[f.readFramebuffer].ReadBuffer = src
}

// DrawBufferList returns the draw buffers of the bound draw framebuffer.
func (f *Functions) DrawBufferList() []gl.Enum {
	if f.drawFramebuffer == 0 {
		return f.defaultDrawBufs
	}
	return f.framebuffers[f.drawFramebuffer].DrawBuffers
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.call("ReadPixels")
	bpt := texelSize(format, ty)
	if len(data) < width*height*bpt {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	for i := range data[:width*height*bpt] {
		data[i] = 0
	}
	fs := f.framebuffers[f.readFramebuffer]
	if fs == nil {
		return
	}
	ts := f.textures[fs.Attachments[fs.ReadBuffer]]
	if ts == nil || ts.Data == nil || ts.BytesPerTexel != bpt {
		return
	}
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			sx, sy := x+i, y+j
			if sx < 0 || sy < 0 || sx >= ts.Width || sy >= ts.Height {
				continue
			}
			src := (sy*ts.Width + sx) * bpt
			dst := (j*width + i) * bpt
			copy(data[dst:dst+bpt], ts.Data[src:src+bpt])
		}
	}
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.call("DeleteFramebuffer")
	delete(f.framebuffers, fb.V)
	if f.drawFramebuffer == fb.V {
		f.drawFramebuffer = 0
	}
	if f.readFramebuffer == fb.V {
		f.readFramebuffer = 0
	}
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.call("Viewport")
	if width < 0 || height < 0 {
		f.raise(gl.INVALID_VALUE)
		return
	}
	f.viewport = [4]int{x, y, width, height}
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.call("ClearColor")
	f.clearColor = [4]float32{red, green, blue, alpha}
}

func (f *Functions) Clear(mask gl.Enum) {
	f.call("Clear")
}

func (f *Functions) CreateProgram() gl.Program {
	f.call("CreateProgram")
	n := f.newName()
	f.programs[n] = &ProgramState{
		AttribBinds:   make(map[string]int),
		FragDataBinds: make(map[string]int),
		UniformValues: make(map[int][]float64),
	}
	return gl.Program{V: n}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	f.call("CreateShader")
	switch ty {
	case gl.VERTEX_SHADER, gl.FRAGMENT_SHADER, gl.GEOMETRY_SHADER,
		gl.TESS_CONTROL_SHADER, gl.TESS_EVALUATION_SHADER, gl.COMPUTE_SHADER:
	default:
		f.raise(gl.INVALID_ENUM)
		return gl.Shader{}
	}
	n := f.newName()
	f.shaders[n] = &ShaderState{Type: ty}
	return gl.Shader{V: n}
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.call("ShaderSource")
	ss := f.shaders[s.V]
	if ss == nil {
		f.raise(gl.INVALID_VALUE)
		return
	}
	ss.Source = src
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.call("CompileShader")
	ss := f.shaders[s.V]
	if ss == nil {
		f.raise(gl.INVALID_VALUE)
		return
	}
	if f.CompileHook != nil {
		ss.Log, ss.Compiled = f.CompileHook(ss.Type, ss.Source)
		return
	}
	if strings.Contains(ss.Source, "#error") {
		ss.Log, ss.Compiled = "0:1(1): error: #error directive encountered\n", false
		return
	}
	ss.Log, ss.Compiled = "", true
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.call("GetShaderi")
	ss := f.shaders[s.V]
	if ss == nil {
		f.raise(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if ss.Compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		if ss.Log == "" {
			return 0
		}
		return len(ss.Log) + 1
	}
	f.raise(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.call("GetShaderInfoLog")
	if ss := f.shaders[s.V]; ss != nil {
		return ss.Log
	}
	f.raise(gl.INVALID_VALUE)
	return ""
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.call("AttachShader")
	ps, ss := f.programs[p.V], f.shaders[s.V]
	if ps == nil || ss == nil {
		f.raise(gl.INVALID_VALUE)
		return
	}
	for _, n := range ps.Shaders {
		if n == s.V {
			f.raise(gl.INVALID_OPERATION)
			return
		}
	}
	ps.Shaders = append(ps.Shaders, s.V)
	ss.attached++
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.call("DeleteShader")
	ss := f.shaders[s.V]
	if ss == nil {
		return
	}
	if ss.attached > 0 {
		ss.Deleted = true
		return
	}
	delete(f.shaders, s.V)
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.call("LinkProgram")
	ps := f.programs[p.V]
	if ps == nil {
		f.raise(gl.INVALID_VALUE)
		return
	}
	ps.LinkCount++
	ps.Linked = false
	if len(ps.Shaders) == 0 {
		ps.Log = "error: no shaders attached to the program\n"
		return
	}
	var uniforms, attribs []Variable
	seen := make(map[string]bool)
	for _, n := range ps.Shaders {
		ss := f.shaders[n]
		if !ss.Compiled {
			ps.Log = "error: linking with uncompiled/unspecialized shader\n"
			return
		}
		for _, u := range declarations(ss.Source, "uniform") {
			if !seen[u.Name] {
				seen[u.Name] = true
				uniforms = append(uniforms, u)
			}
		}
		if ss.Type == gl.VERTEX_SHADER {
			attribs = append(attribs, declarations(ss.Source, "in")...)
		}
	}
	if f.LinkHook != nil {
		if log, ok := f.LinkHook(p); !ok {
			ps.Log = log
			return
		}
	}
	for i := range uniforms {
		uniforms[i].Location = i
	}
	used := make(map[int]bool)
	for i, a := range attribs {
		if loc, ok := ps.AttribBinds[a.Name]; ok {
			attribs[i].Location = loc
			used[loc] = true
		} else {
			attribs[i].Location = -1
		}
	}
	next := 0
	for i := range attribs {
		if attribs[i].Location != -1 {
			continue
		}
		for used[next] {
			next++
		}
		attribs[i].Location = next
		used[next] = true
	}
	sortByLocation(attribs)
	ps.Uniforms, ps.Attribs = uniforms, attribs
	ps.UniformValues = make(map[int][]float64)
	ps.Linked, ps.Log = true, ""
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.call("GetProgrami")
	ps := f.programs[p.V]
	if ps == nil {
		f.raise(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if ps.Linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		if ps.Log == "" {
			return 0
		}
		return len(ps.Log) + 1
	case gl.ACTIVE_UNIFORMS:
		return len(ps.Uniforms)
	case gl.ACTIVE_ATTRIBUTES:
		return len(ps.Attribs)
	}
	f.raise(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.call("GetProgramInfoLog")
	if ps := f.programs[p.V]; ps != nil {
		return ps.Log
	}
	f.raise(gl.INVALID_VALUE)
	return ""
}

func (f *Functions) UseProgram(p gl.Program) {
	f.call("UseProgram")
	if p.V != 0 {
		ps := f.programs[p.V]
		if ps == nil || !ps.Linked {
			f.raise(gl.INVALID_OPERATION)
			return
		}
	}
	f.program = p.V
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.call("DeleteProgram")
	ps := f.programs[p.V]
	if ps == nil {
		return
	}
	for _, n := range ps.Shaders {
		ss := f.shaders[n]
		ss.attached--
		if ss.Deleted && ss.attached == 0 {
			delete(f.shaders, n)
		}
	}
	delete(f.programs, p.V)
	if f.program == p.V {
		f.program = 0
	}
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.call("BindAttribLocation")
	ps := f.programs[p.V]
	switch {
	case ps == nil:
		f.raise(gl.INVALID_VALUE)
	case strings.HasPrefix(name, "gl_"):
		f.raise(gl.INVALID_OPERATION)
	default:
		ps.AttribBinds[name] = int(a)
	}
}

func (f *Functions) BindFragDataLocation(p gl.Program, color int, name string) {
	f.call("BindFragDataLocation")
	ps := f.programs[p.V]
	switch {
	case ps == nil:
		f.raise(gl.INVALID_VALUE)
	case strings.HasPrefix(name, "gl_"):
		f.raise(gl.INVALID_OPERATION)
	case color < 0 || color >= f.MaxColorAttachments:
		f.raise(gl.INVALID_VALUE)
	default:
		ps.FragDataBinds[name] = color
	}
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	f.call("GetAttribLocation")
	ps := f.programs[p.V]
	if ps == nil || !ps.Linked {
		f.raise(gl.INVALID_OPERATION)
		return -1
	}
	for _, a := range ps.Attribs {
		if a.Name == name {
			return a.Location
		}
	}
	return -1
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.call("GetUniformLocation")
	ps := f.programs[p.V]
	if ps == nil || !ps.Linked {
		f.raise(gl.INVALID_OPERATION)
		return gl.Uniform{V: -1}
	}
	for _, u := range ps.Uniforms {
		if u.Name == name {
			return gl.Uniform{V: u.Location}
		}
	}
	return gl.Uniform{V: -1}
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	f.call("GetActiveUniform")
	ps := f.programs[p.V]
	if ps == nil || index < 0 || index >= len(ps.Uniforms) {
		f.raise(gl.INVALID_VALUE)
		return "", 0, 0
	}
	u := ps.Uniforms[index]
	return u.Name, u.Size, u.Type
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	f.call("GetActiveAttrib")
	ps := f.programs[p.V]
	if ps == nil || index < 0 || index >= len(ps.Attribs) {
		f.raise(gl.INVALID_VALUE)
		return "", 0, 0
	}
	a := ps.Attribs[index]
	return a.Name, a.Size, a.Type
}

// setUniform stores v for the uniform at dst in the current program.
// Location -1 is silently ignored, as the driver does.
func (f *Functions) setUniform(method string, dst gl.Uniform, v ...float64) {
	f.call(method)
	if dst.V == -1 {
		return
	}
	ps := f.programs[f.program]
	if ps == nil || dst.V < 0 || dst.V >= len(ps.Uniforms) {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ps.UniformValues[dst.V] = v
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.setUniform("Uniform1f", dst, float64(v))
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.setUniform("Uniform2f", dst, float64(v0), float64(v1))
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.setUniform("Uniform3f", dst, float64(v0), float64(v1), float64(v2))
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.setUniform("Uniform4f", dst, float64(v0), float64(v1), float64(v2), float64(v3))
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.setUniform("Uniform1i", dst, float64(v))
}

func (f *Functions) Uniform2i(dst gl.Uniform, v0, v1 int) {
	f.setUniform("Uniform2i", dst, float64(v0), float64(v1))
}

func (f *Functions) Uniform3i(dst gl.Uniform, v0, v1, v2 int) {
	f.setUniform("Uniform3i", dst, float64(v0), float64(v1), float64(v2))
}

func (f *Functions) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int) {
	f.setUniform("Uniform4i", dst, float64(v0), float64(v1), float64(v2), float64(v3))
}

func (f *Functions) Uniform1ui(dst gl.Uniform, v uint32) {
	f.setUniform("Uniform1ui", dst, float64(v))
}

func (f *Functions) Uniform2ui(dst gl.Uniform, v0, v1 uint32) {
	f.setUniform("Uniform2ui", dst, float64(v0), float64(v1))
}

func (f *Functions) Uniform3ui(dst gl.Uniform, v0, v1, v2 uint32) {
	f.setUniform("Uniform3ui", dst, float64(v0), float64(v1), float64(v2))
}

func (f *Functions) Uniform4ui(dst gl.Uniform, v0, v1, v2, v3 uint32) {
	f.setUniform("Uniform4ui", dst, float64(v0), float64(v1), float64(v2), float64(v3))
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, transpose bool, v []float32) {
	f.uniformMatrix("UniformMatrix2fv", dst, 4, v)
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, transpose bool, v []float32) {
	f.uniformMatrix("UniformMatrix3fv", dst, 9, v)
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	f.uniformMatrix("UniformMatrix4fv", dst, 16, v)
}

func (f *Functions) uniformMatrix(method string, dst gl.Uniform, n int, v []float32) {
	if len(v) < n {
		f.call(method)
		f.raise(gl.INVALID_VALUE)
		return
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(v[i])
	}
	f.setUniform(method, dst, vals...)
}

func (f *Functions) CreateSampler() gl.Sampler {
	f.call("CreateSampler")
	n := f.newName()
	f.samplers[n] = &SamplerState{
		IntParams:   make(map[gl.Enum]int),
		FloatParams: make(map[gl.Enum]float32),
	}
	return gl.Sampler{V: n}
}

func (f *Functions) SamplerParameteri(s gl.Sampler, pname gl.Enum, param int) {
	f.call("SamplerParameteri")
	ss := f.samplers[s.V]
	if ss == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ss.IntParams[pname] = param
}

func (f *Functions) SamplerParameterf(s gl.Sampler, pname gl.Enum, param float32) {
	f.call("SamplerParameterf")
	ss := f.samplers[s.V]
	if ss == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	ss.FloatParams[pname] = param
}

func (f *Functions) BindSampler(unit int, s gl.Sampler) {
	f.call("BindSampler")
	if s.V != 0 && f.samplers[s.V] == nil {
		f.raise(gl.INVALID_OPERATION)
		return
	}
	f.samplerUnits[unit] = s.V
}

func (f *Functions) DeleteSampler(s gl.Sampler) {
	f.call("DeleteSampler")
	delete(f.samplers, s.V)
}

func (f *Functions) ObjectLabel(identifier gl.Enum, name uint, label string) {
	f.call("ObjectLabel")
	f.labels[labelKey{identifier, name}] = label
}

func (f *Functions) GetError() gl.Enum {
	f.call("GetError")
	err := f.err
	f.err = gl.NO_ERROR
	return err
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.call("GetInteger")
	switch pname {
	case gl.MAX_COLOR_ATTACHMENTS, gl.MAX_DRAW_BUFFERS:
		return f.MaxColorAttachments
	case gl.MAX_TEXTURE_SIZE, gl.MAX_3D_TEXTURE_SIZE:
		return f.MaxTextureSize
	case gl.MAX_ARRAY_TEXTURE_LAYERS:
		return 2048
	case gl.MAX_VERTEX_ATTRIBS:
		return 16
	case gl.MAJOR_VERSION:
		return 4
	case gl.MINOR_VERSION:
		return 6
	}
	f.raise(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.call("GetString")
	switch pname {
	case gl.VENDOR, gl.RENDERER:
		return "gltest"
	case gl.VERSION:
		return "4.6 (Core Profile) gltest"
	case gl.SHADING_LANGUAGE_VERSION:
		return "4.60"
	case gl.EXTENSIONS:
		return "GL_ARB_bindless_texture GL_KHR_debug"
	}
	f.raise(gl.INVALID_ENUM)
	return ""
}
