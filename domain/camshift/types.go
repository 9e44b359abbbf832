package camshift

import (
	"image"
	"math"
)

// Window is the axis-aligned search rectangle carried between frames.
type Window struct {
	X, Y, W, H int
}

// WindowFromRect converts a normalized rectangle into a Window.
func WindowFromRect(r image.Rectangle) Window {
	r = r.Canon()
	return Window{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rect returns the window as an image.Rectangle.
func (w Window) Rect() image.Rectangle {
	return image.Rect(w.X, w.Y, w.X+w.W, w.Y+w.H)
}

// Empty reports whether the window has no area.
func (w Window) Empty() bool { return w.W <= 0 || w.H <= 0 }

// clip intersects w with the frame bounds [0,width)x[0,height).
// A non-overlapping window clips to the zero Window.
func (w Window) clip(width, height int) Window {
	r := w.Rect().Intersect(image.Rect(0, 0, width, height))
	if r.Empty() {
		return Window{}
	}
	return WindowFromRect(r)
}

// Point2f is a sub-pixel position.
type Point2f struct {
	X, Y float64
}

// Size2f is a sub-pixel extent.
type Size2f struct {
	W, H float64
}

// Box is the rotated rectangle describing the tracked object.
// Size.H is the length along the major axis, Size.W along the minor one.
// Angle is in degrees in [0,180).
type Box struct {
	Center Point2f
	Size   Size2f
	Angle  float64
}

// Empty reports whether the box carries no object (zero size).
func (b Box) Empty() bool { return b.Size.W == 0 && b.Size.H == 0 }

// Points returns the four corners of the rotated rectangle in drawing order.
func (b Box) Points() [4]Point2f {
	rad := b.Angle * math.Pi / 180
	bc := math.Cos(rad) * 0.5
	as := math.Sin(rad) * 0.5
	c := b.Center
	var pt [4]Point2f
	pt[0] = Point2f{c.X - as*b.Size.H - bc*b.Size.W, c.Y + bc*b.Size.H - as*b.Size.W}
	pt[1] = Point2f{c.X + as*b.Size.H - bc*b.Size.W, c.Y - bc*b.Size.H - as*b.Size.W}
	pt[2] = Point2f{2*c.X - pt[0].X, 2*c.Y - pt[0].Y}
	pt[3] = Point2f{2*c.X - pt[1].X, 2*c.Y - pt[1].Y}
	return pt
}

// Criteria bounds the mean-shift iterations.
type Criteria struct {
	MaxIter int
	Epsilon float64
}

// DefaultCriteria stops after 10 iterations or when the window moves less than 1px.
var DefaultCriteria = Criteria{MaxIter: 10, Epsilon: 1}
