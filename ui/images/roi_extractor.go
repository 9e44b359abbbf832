package images

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

var ErrNoFrame = errors.New("images: nil frame")

// ExtractRegion copies the part of frame covered by r into a fresh image
// anchored at the origin. r is normalized and clamped to the frame bounds;
// a region that misses the frame entirely yields a 1x1 image at the nearest
// corner. The clamped rectangle is returned alongside the copy.
func ExtractRegion(frame *image.RGBA, r image.Rectangle) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, ErrNoFrame
	}
	b := frame.Bounds()
	roi := r.Canon().Intersect(b)
	if roi.Empty() {
		x := clamp(r.Canon().Min.X, b.Min.X, b.Max.X-1)
		y := clamp(r.Canon().Min.Y, b.Min.Y, b.Max.Y-1)
		roi = image.Rect(x, y, x+1, y+1)
	}
	out := image.NewRGBA(image.Rect(0, 0, roi.Dx(), roi.Dy()))
	draw.Draw(out, out.Bounds(), frame, roi.Min, draw.Src)
	return out, roi, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
