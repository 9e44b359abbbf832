package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src so that it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.NearestNeighbor)
}

// Composite draws overlay over frame into dst and returns it. dst is
// reallocated when its bounds differ from frame. A nil overlay copies frame.
func Composite(dst, frame, overlay *image.RGBA) *image.RGBA {
	if frame == nil {
		return dst
	}
	b := frame.Bounds()
	if dst == nil || dst.Bounds() != b {
		dst = image.NewRGBA(b)
	}
	draw.Draw(dst, b, frame, b.Min, draw.Src)
	if overlay != nil {
		draw.Draw(dst, b, overlay, overlay.Bounds().Min, draw.Over)
	}
	return dst
}
