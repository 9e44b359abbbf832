package capture

import (
	"image"
	"sync"
)

// Reusable frame pool for the large RGBA buffers the player and the tracking
// loop copy frames into. AcquireFrame returns a frame sized to rect; callers
// hand it back with RecycleFrame once nothing references it any more. Frames
// that are never recycled are simply collected.

var framePool sync.Pool // stores *image.RGBA

// AcquireFrame returns a reusable RGBA image sized to rect. The returned Pix
// length exactly matches rect area * 4, and Stride is width*4. Pixel contents
// are unspecified.
func AcquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		img = &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	} else {
		img.Stride = w * 4
		img.Rect = rect
		img.Pix = img.Pix[:needed]
	}
	return img
}

// RecycleFrame returns the frame to the pool for potential reuse. The frame
// must no longer be accessed by the caller after invoking RecycleFrame.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}

// CopyFrame copies src into dst, reshaping dst when its bounds differ.
// It returns dst, or a freshly acquired frame when dst is nil.
func CopyFrame(dst, src *image.RGBA) *image.RGBA {
	if src == nil {
		return dst
	}
	b := src.Bounds()
	if dst == nil {
		dst = AcquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
	} else if dst.Bounds().Dx() != b.Dx() || dst.Bounds().Dy() != b.Dy() {
		needed := b.Dx() * b.Dy() * 4
		if cap(dst.Pix) < needed {
			dst.Pix = make([]byte, needed)
		}
		dst.Pix = dst.Pix[:needed]
		dst.Stride = b.Dx() * 4
		dst.Rect = image.Rect(0, 0, b.Dx(), b.Dy())
	}
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		do := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		copy(dst.Pix[do:do+rowLen], src.Pix[so:so+rowLen])
	}
	return dst
}
