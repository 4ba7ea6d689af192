// SPDX-License-Identifier: Unlicense OR MIT

package object

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"gioui.org/glwrap/gl"
)

// NewTexture2DFromImage creates an RGBA8 texture holding img. Images
// that are not *image.RGBA with a tight stride are converted first.
func NewTexture2DFromImage(f gl.Functions, id string, img image.Image, params []IntParam, genMipmap bool) (*Texture2D, error) {
	rgba := toRGBA(img)
	size := rgba.Bounds().Size()
	l := TextureLayout{
		InternalFormat: gl.RGBA8,
		Width:          size.X,
		Height:         size.Y,
		Depth:          1,
		Format:         gl.RGBA,
		Type:           gl.UNSIGNED_BYTE,
		IntParams:      params,
	}
	return NewTexture2D(f, id, l, rgbaPixels(rgba), genMipmap)
}

// UploadImage copies img into the texture at offset. The texture must
// hold RGBA8 texels.
func (t *Texture2D) UploadImage(offset image.Point, img image.Image) error {
	if t.layout.Format != gl.RGBA || t.layout.Type != gl.UNSIGNED_BYTE {
		return newError(KindTexture, "UploadImage", t.id, fmt.Errorf("%w: texture is not RGBA8", ErrInvalidArgument))
	}
	rgba := toRGBA(img)
	return t.SubImage2D(0, offset, rgba.Bounds().Size(), rgbaPixels(rgba))
}

// ScaleImage resamples img to size with bilinear filtering.
func ScaleImage(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func rgbaPixels(img *image.RGBA) []byte {
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil
	}
	start := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y)
	return img.Pix[start : start+size.X*size.Y*4]
}

// flipImageY flips rows of pixels in place. OpenGL's origin is in the
// lower left corner.
func flipImageY(stride, height int, pixels []byte) {
	row := make([]uint8, stride)
	for y := 0; y < height/2; y++ {
		y1 := height - y - 1
		dest := y1 * stride
		src := y * stride
		copy(row, pixels[dest:])
		copy(pixels[dest:], pixels[src:src+len(row)])
		copy(pixels[src:], row)
	}
}
