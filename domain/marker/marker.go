package marker

import "image"

// Point is a position in frame (display) pixel coordinates.
type Point struct {
	X, Y int
}

// ClampTo pins p to the last column and row of a frame of the given size.
func (p Point) ClampTo(size image.Point) Point {
	return Point{
		X: max(0, min(p.X, size.X-1)),
		Y: max(0, min(p.Y, size.Y-1)),
	}
}

// Rect is the user-drawn region of interest, kept in gesture order.
// Start is the pointer-down position, End the latest pointer position.
type Rect struct {
	Start Point
	End   Point
}

// Valid reports whether the marker spans a non-zero extent on both axes.
func (r Rect) Valid() bool {
	return r.Start.X != r.End.X && r.Start.Y != r.End.Y
}

// Bounds returns the normalized rectangle (Min <= Max on both axes).
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.Start.X, r.Start.Y, r.End.X, r.End.Y)
}

// Window returns the x/y/width/height form of the normalized marker.
func (r Rect) Window() (x, y, w, h int) {
	b := r.Bounds()
	return b.Min.X, b.Min.Y, b.Dx(), b.Dy()
}

// Collapse sets End to Start leaving a zero-extent marker.
func (r Rect) Collapse() Rect {
	return Rect{Start: r.Start, End: r.Start}
}
