package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrPixelFormat indicates a decoded image does not use a channel layout
// this package can normalize to 3-channel RGB
var ErrPixelFormat = errors.New("unsupported pixel format")

// RGB is an in-memory image with a fixed 3-channel, 8-bit layout and no
// alpha channel. Pix holds the pixels in R, G, B order, which is exactly
// the layout host renderers upload as a texture without conversion.
type RGB struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB allocates a zeroed RGB image with the given bounds
func NewRGB(r image.Rectangle) *RGB {
	return &RGB{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

// ColorModel implements image.Image
func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (p *RGB) Bounds() image.Rectangle { return p.Rect }

// At implements image.Image
func (p *RGB) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
}

// PixOffset returns the index of the first byte of the pixel at (x, y)
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// Set stores a pixel, discarding any alpha
func (p *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	r, g, b, _ := c.RGBA()
	p.Pix[i] = uint8(r >> 8)
	p.Pix[i+1] = uint8(g >> 8)
	p.Pix[i+2] = uint8(b >> 8)
}

// FromImage converts a decoded image into the fixed RGB layout.
//
// YCbCr (the JPEG native layout), RGBA and NRGBA sources are accepted;
// alpha is dropped. Anything else (grayscale, CMYK, paletted) is rejected
// with ErrPixelFormat so a corrupt or foreign cache artifact surfaces as
// a decode failure rather than a wrongly-colored frame.
func FromImage(src image.Image) (*RGB, error) {
	switch src.(type) {
	case *image.YCbCr, *image.RGBA, *image.NRGBA:
	default:
		return nil, fmt.Errorf("%w: %T", ErrPixelFormat, src)
	}

	b := src.Bounds()
	dst := NewRGB(image.Rect(0, 0, b.Dx(), b.Dy()))

	// Convert through RGBA once, then strip the alpha bytes. draw.Draw has
	// fast paths for YCbCr sources that per-pixel At calls do not.
	tmp := image.NewRGBA(dst.Rect)
	draw.Draw(tmp, dst.Rect, src, b.Min, draw.Src)

	for i, j := 0, 0; i < len(tmp.Pix); i, j = i+4, j+3 {
		dst.Pix[j] = tmp.Pix[i]
		dst.Pix[j+1] = tmp.Pix[i+1]
		dst.Pix[j+2] = tmp.Pix[i+2]
	}
	return dst, nil
}
