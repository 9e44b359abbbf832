package overlay

import (
	"image"
	"math"
)

// FitToWidth scales intrinsic to displayWidth preserving aspect ratio.
// A non-positive displayWidth keeps the intrinsic size.
func FitToWidth(intrinsic image.Point, displayWidth int) image.Point {
	if intrinsic.X <= 0 || intrinsic.Y <= 0 {
		return image.Point{}
	}
	if displayWidth <= 0 {
		return intrinsic
	}
	h := int(math.Round(float64(intrinsic.Y) * float64(displayWidth) / float64(intrinsic.X)))
	return image.Pt(displayWidth, max(h, 1))
}
