package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FitWithin downscales src so it fits inside maxWidth x maxHeight while
// preserving its aspect ratio. Images already within the target are
// returned untouched; this never upscales. The dimension that needs the
// larger shrink factor determines the final size.
func FitWithin(src image.Image, maxWidth, maxHeight int) image.Image {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= maxWidth && height <= maxHeight {
		return src
	}

	targetRatio := float64(maxWidth) / float64(maxHeight)
	imageRatio := float64(width) / float64(height)

	var newWidth, newHeight int
	if imageRatio < targetRatio {
		// Height is the limiting dimension
		newHeight = maxHeight
		newWidth = int(float64(width) / (float64(height) / float64(maxHeight)))
	} else {
		newWidth = maxWidth
		newHeight = int(float64(height) / (float64(width) / float64(maxWidth)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
