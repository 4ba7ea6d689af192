// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"
	"image"

	"gioui.org/glwrap/gl"
)

// DepthStencilFormat selects the depth and stencil attachment of a
// Framebuffer.
type DepthStencilFormat uint8

const (
	DepthStencilNone DepthStencilFormat = iota
	Depth24
	Depth32F
	Depth24Stencil8
	Depth32FStencil8
)

func (d DepthStencilFormat) String() string {
	switch d {
	case DepthStencilNone:
		return "none"
	case Depth24:
		return "depth24"
	case Depth32F:
		return "depth32f"
	case Depth24Stencil8:
		return "depth24_stencil8"
	case Depth32FStencil8:
		return "depth32f_stencil8"
	}
	return fmt.Sprintf("DepthStencilFormat(%d)", uint8(d))
}

// layout returns the texture layout and attachment point for d.
func (d DepthStencilFormat) layout(w, h int) (TextureLayout, gl.Enum, bool) {
	l := TextureLayout{Width: w, Height: h, Depth: 1, IntParams: attachmentParams}
	switch d {
	case Depth24:
		l.InternalFormat, l.Format, l.Type = gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT
		return l, gl.DEPTH_ATTACHMENT, true
	case Depth32F:
		l.InternalFormat, l.Format, l.Type = gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT
		return l, gl.DEPTH_ATTACHMENT, true
	case Depth24Stencil8:
		l.InternalFormat, l.Format, l.Type = gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
		return l, gl.DEPTH_STENCIL_ATTACHMENT, true
	case Depth32FStencil8:
		l.InternalFormat, l.Format, l.Type = gl.DEPTH32F_STENCIL8, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV
		return l, gl.DEPTH_STENCIL_ATTACHMENT, true
	}
	return TextureLayout{}, 0, false
}

var attachmentParams = []IntParam{
	{gl.TEXTURE_MIN_FILTER, gl.NEAREST},
	{gl.TEXTURE_MAG_FILTER, gl.NEAREST},
	{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE},
	{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE},
}

type colorAttachment struct {
	tex      *Texture2D
	semantic string
}

// Framebuffer owns a framebuffer object together with its color and
// depth/stencil attachment textures.
type Framebuffer struct {
	f            gl.Functions
	obj          gl.Framebuffer
	colors       []colorAttachment
	depthStencil *Texture2D
	dsFormat     DepthStencilFormat
	dsAttachment gl.Enum
	width        int
	height       int
	drawBuffers  []gl.Enum
	label        string
}

// NewFramebuffer creates a framebuffer of the given size without color
// attachments. A depth or depth/stencil texture is attached unless
// depthStencil is DepthStencilNone.
func NewFramebuffer(f gl.Functions, width, height int, depthStencil DepthStencilFormat) (*Framebuffer, error) {
	if width < 1 || height < 1 {
		return nil, newError(KindFramebuffer, "NewFramebuffer", "", fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height))
	}
	l, attachment, ok := depthStencil.layout(width, height)
	if !ok && depthStencil != DepthStencilNone {
		return nil, newError(KindFramebuffer, "NewFramebuffer", "", fmt.Errorf("%w: %v", ErrInvalidArgument, depthStencil))
	}
	gl.Check(f)
	fb := &Framebuffer{
		f:            f,
		obj:          f.CreateFramebuffer(),
		dsFormat:     depthStencil,
		dsAttachment: attachment,
		width:        width,
		height:       height,
	}
	if ok {
		tex, err := NewTexture2D(f, depthStencil.String(), l, nil, false)
		if err != nil {
			fb.Release()
			return nil, newError(KindFramebuffer, "NewFramebuffer", "", err)
		}
		fb.depthStencil = tex
		f.NamedFramebufferTexture(fb.obj, attachment, tex.Name(), 0)
	}
	if err := gl.Check(f); err != nil {
		fb.Release()
		return nil, newError(KindFramebuffer, "NewFramebuffer", "", err)
	}
	Logger().Debug("framebuffer created", "name", fb.obj.V, "width", width, "height", height, "depthStencil", depthStencil.String())
	return fb, nil
}

// CreateColorAttachment adds a color texture of the current size at the
// next free attachment point and appends it to the draw buffers.
func (fb *Framebuffer) CreateColorAttachment(internalFormat, format, typ gl.Enum, semantic string) error {
	limit := fb.f.GetInteger(gl.MAX_COLOR_ATTACHMENTS)
	if len(fb.colors) >= limit {
		return fb.error("CreateColorAttachment", fmt.Errorf("%w: %d", ErrAttachmentLimit, limit))
	}
	l := TextureLayout{
		InternalFormat: internalFormat,
		Width:          fb.width,
		Height:         fb.height,
		Depth:          1,
		Format:         format,
		Type:           typ,
		IntParams:      attachmentParams,
	}
	tex, err := NewTexture2D(fb.f, semantic, l, nil, false)
	if err != nil {
		return fb.error("CreateColorAttachment", err)
	}
	attachment := gl.Enum(gl.COLOR_ATTACHMENT0 + len(fb.colors))
	gl.Check(fb.f)
	fb.f.NamedFramebufferTexture(fb.obj, attachment, tex.Name(), 0)
	if err := gl.Check(fb.f); err != nil {
		tex.Release()
		return fb.error("CreateColorAttachment", err)
	}
	fb.colors = append(fb.colors, colorAttachment{tex: tex, semantic: semantic})
	fb.drawBuffers = append(fb.drawBuffers, attachment)
	Logger().Debug("color attachment created", "framebuffer", fb.obj.V, "attachment", len(fb.colors)-1, "semantic", semantic)
	return nil
}

// Bind binds the framebuffer for drawing and reading, with every color
// attachment as a draw buffer.
func (fb *Framebuffer) Bind() {
	fb.f.BindFramebuffer(gl.FRAMEBUFFER, fb.obj)
	fb.f.DrawBuffers(fb.drawBuffers)
}

// BindDrawBuffers binds the framebuffer with only the given color
// attachments as draw buffers, in order.
func (fb *Framebuffer) BindDrawBuffers(indices ...int) error {
	bufs := make([]gl.Enum, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(fb.colors) {
			return fb.error("BindDrawBuffers", fmt.Errorf("%w: attachment %d of %d", ErrOutOfBounds, idx, len(fb.colors)))
		}
		bufs[i] = gl.COLOR_ATTACHMENT0 + gl.Enum(idx)
	}
	fb.f.BindFramebuffer(gl.FRAMEBUFFER, fb.obj)
	fb.f.DrawBuffers(bufs)
	return nil
}

// BindToRead binds the framebuffer for reading from color attachment
// index.
func (fb *Framebuffer) BindToRead(index int) error {
	if index < 0 || index >= len(fb.colors) {
		return fb.error("BindToRead", fmt.Errorf("%w: attachment %d of %d", ErrOutOfBounds, index, len(fb.colors)))
	}
	fb.f.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.obj)
	fb.f.ReadBuffer(gl.COLOR_ATTACHMENT0 + gl.Enum(index))
	return nil
}

// BindToDraw binds the framebuffer as the draw framebuffer only.
func (fb *Framebuffer) BindToDraw() {
	fb.f.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb.obj)
	fb.f.DrawBuffers(fb.drawBuffers)
}

// BindColorAttachment binds color attachment index to a texture unit.
func (fb *Framebuffer) BindColorAttachment(index, unit int) error {
	if index < 0 || index >= len(fb.colors) {
		return fb.error("BindColorAttachment", fmt.Errorf("%w: attachment %d of %d", ErrOutOfBounds, index, len(fb.colors)))
	}
	fb.colors[index].tex.BindUnit(unit)
	return nil
}

// BindDepthStencil binds the depth/stencil texture to a texture unit.
func (fb *Framebuffer) BindDepthStencil(unit int) error {
	if fb.depthStencil == nil {
		return fb.error("BindDepthStencil", fmt.Errorf("%w: no depth attachment", ErrInvalidArgument))
	}
	fb.depthStencil.BindUnit(unit)
	return nil
}

// Resize reallocates every attachment at the new size and reattaches
// it. Formats and parameters are kept. If an attachment cannot be
// resized, the attachments already resized are restored to the
// current size and an error is returned.
func (fb *Framebuffer) Resize(width, height int) error {
	if width < 1 || height < 1 {
		return fb.error("Resize", fmt.Errorf("%w: size %dx%d", ErrInvalidArgument, width, height))
	}
	if err := fb.resizeAttachments(width, height); err != nil {
		if rerr := fb.resizeAttachments(fb.width, fb.height); rerr != nil {
			Logger().Error("framebuffer attachments left at mixed sizes", "name", fb.obj.V, "label", fb.label, "error", rerr)
		}
		return fb.error("Resize", err)
	}
	fb.width, fb.height = width, height
	Logger().Debug("framebuffer resized", "name", fb.obj.V, "width", width, "height", height)
	return nil
}

func (fb *Framebuffer) resizeAttachments(width, height int) error {
	for i, c := range fb.colors {
		if err := fb.reattach(c.tex, gl.COLOR_ATTACHMENT0+gl.Enum(i), width, height); err != nil {
			return err
		}
	}
	if fb.depthStencil != nil {
		return fb.reattach(fb.depthStencil, fb.dsAttachment, width, height)
	}
	return nil
}

// reattach reloads tex at width by height and attaches it. Textures
// already at that size are left alone.
func (fb *Framebuffer) reattach(tex *Texture2D, attachment gl.Enum, width, height int) error {
	l := tex.Layout()
	if l.Width == width && l.Height == height {
		return nil
	}
	l.Width, l.Height = width, height
	if err := tex.Reload(l, nil, false); err != nil {
		return err
	}
	gl.Check(fb.f)
	fb.f.NamedFramebufferTexture(fb.obj, attachment, tex.Name(), 0)
	return gl.Check(fb.f)
}

// CheckStatus returns nil if the framebuffer is complete for target,
// and otherwise an error carrying the status code.
func (fb *Framebuffer) CheckStatus(target gl.Enum) error {
	st := fb.f.CheckNamedFramebufferStatus(fb.obj, target)
	if st == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	e := fb.error("CheckStatus", fmt.Errorf("%w: %s", ErrIncomplete, gl.FramebufferStatusString(st)))
	e.Code = st
	return e
}

// ReadPixels reads the rectangle r of color attachment index into
// pixels, in the attachment's format and type. Rows are bottom-up.
func (fb *Framebuffer) ReadPixels(index int, r image.Rectangle, pixels []byte) error {
	if index < 0 || index >= len(fb.colors) {
		return fb.error("ReadPixels", fmt.Errorf("%w: attachment %d of %d", ErrOutOfBounds, index, len(fb.colors)))
	}
	if !r.In(image.Rect(0, 0, fb.width, fb.height)) {
		return fb.error("ReadPixels", fmt.Errorf("%w: %v outside %dx%d", ErrOutOfBounds, r, fb.width, fb.height))
	}
	l := fb.colors[index].tex.layout
	if n := r.Dx() * r.Dy() * texelSize(l.Format, l.Type); len(pixels) < n {
		return fb.error("ReadPixels", fmt.Errorf("%w: %d bytes for %d", ErrOutOfBounds, len(pixels), n))
	}
	gl.Check(fb.f)
	fb.f.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.obj)
	fb.f.ReadBuffer(gl.COLOR_ATTACHMENT0 + gl.Enum(index))
	fb.f.ReadPixels(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), l.Format, l.Type, pixels)
	if err := gl.Check(fb.f); err != nil {
		return fb.error("ReadPixels", err)
	}
	return nil
}

// ReadImage reads an RGBA8 color attachment into an image with the
// origin in the upper left corner.
func (fb *Framebuffer) ReadImage(index int) (*image.RGBA, error) {
	if index >= 0 && index < len(fb.colors) {
		if l := fb.colors[index].tex.layout; l.Format != gl.RGBA || l.Type != gl.UNSIGNED_BYTE {
			return nil, fb.error("ReadImage", fmt.Errorf("%w: attachment %d is not RGBA8", ErrInvalidArgument, index))
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	if err := fb.ReadPixels(index, img.Bounds(), img.Pix); err != nil {
		return nil, err
	}
	flipImageY(img.Stride, fb.height, img.Pix)
	return img, nil
}

// SetDebugLabel names the framebuffer in driver debug output.
func (fb *Framebuffer) SetDebugLabel(label string) {
	fb.label = label
	fb.f.ObjectLabel(gl.FRAMEBUFFER, fb.obj.V, label)
}

func (fb *Framebuffer) DebugLabel() string       { return fb.label }
func (fb *Framebuffer) Name() gl.Framebuffer     { return fb.obj }
func (fb *Framebuffer) Width() int               { return fb.width }
func (fb *Framebuffer) Height() int              { return fb.height }
func (fb *Framebuffer) NumColorAttachments() int { return len(fb.colors) }

// DepthStencil returns the depth/stencil texture, or nil.
func (fb *Framebuffer) DepthStencil() *Texture2D {
	return fb.depthStencil
}

func (fb *Framebuffer) DepthFormat() DepthStencilFormat {
	return fb.dsFormat
}

// ColorAttachment returns the texture and semantic of attachment index,
// or nil.
func (fb *Framebuffer) ColorAttachment(index int) (*Texture2D, string) {
	if index < 0 || index >= len(fb.colors) {
		return nil, ""
	}
	c := fb.colors[index]
	return c.tex, c.semantic
}

// DrawBuffers returns the draw buffers Bind declares.
func (fb *Framebuffer) DrawBuffers() []gl.Enum {
	return append([]gl.Enum(nil), fb.drawBuffers...)
}

// Release deletes the framebuffer and its attachment textures.
func (fb *Framebuffer) Release() {
	for _, c := range fb.colors {
		c.tex.Release()
	}
	fb.colors = nil
	fb.drawBuffers = nil
	if fb.depthStencil != nil {
		fb.depthStencil.Release()
		fb.depthStencil = nil
	}
	if fb.obj.Valid() {
		Logger().Debug("framebuffer released", "name", fb.obj.V)
		fb.f.DeleteFramebuffer(fb.obj)
		fb.obj = gl.Framebuffer{}
	}
}

func (fb *Framebuffer) error(op string, err error) *Error {
	return newError(KindFramebuffer, op, fb.label, err)
}
