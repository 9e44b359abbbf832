package camshift

import (
	"errors"
	"image"
	"math"
)

const (
	// tolerance expands the converged window before the orientation pass.
	tolerance  = 10
	dblEpsilon = 2.220446049250313e-16
)

var ErrDegenerateWindow = errors.New("camshift: window has non-positive size")

// moments holds raw and central image moments of a window.
type moments struct {
	m00, m10, m01    float64
	mu20, mu11, mu02 float64
	m20, m11, m02    float64
}

// windowMoments computes moments of prob restricted to w, with coordinates
// relative to the window origin. w must lie inside prob's bounds.
func windowMoments(prob *image.Gray, w Window) moments {
	var m moments
	b := prob.Bounds()
	for y := 0; y < w.H; y++ {
		off := prob.PixOffset(b.Min.X+w.X, b.Min.Y+w.Y+y)
		row := prob.Pix[off : off+w.W]
		fy := float64(y)
		for x, p := range row {
			if p == 0 {
				continue
			}
			v := float64(p)
			fx := float64(x)
			m.m00 += v
			m.m10 += fx * v
			m.m01 += fy * v
			m.m20 += fx * fx * v
			m.m11 += fx * fy * v
			m.m02 += fy * fy * v
		}
	}
	if m.m00 != 0 {
		cx, cy := m.m10/m.m00, m.m01/m.m00
		m.mu20 = m.m20 - cx*m.m10
		m.mu11 = m.m11 - cx*m.m01
		m.mu02 = m.m02 - cy*m.m01
	}
	return m
}

func round(v float64) int { return int(math.RoundToEven(v)) }

// MeanShift moves w toward the local mass centroid of prob. It returns the
// converged window and the number of iterations performed.
func MeanShift(prob *image.Gray, w Window, c Criteria) (Window, int, error) {
	if prob == nil || w.Empty() {
		return w, 0, ErrDegenerateWindow
	}
	width, height := prob.Bounds().Dx(), prob.Bounds().Dy()
	clipped := w.clip(width, height)

	eps := float64(round(max(c.Epsilon, 0) * max(c.Epsilon, 0)))
	niters := max(c.MaxIter, 1)

	cur := w
	i := 0
	for ; i < niters; i++ {
		cur = cur.clip(width, height)
		if cur == (Window{}) {
			cur.X = width / 2
			cur.Y = height / 2
		}
		cur.W = max(cur.W, 1)
		cur.H = max(cur.H, 1)

		m := windowMoments(prob, cur)
		if math.Abs(m.m00) < dblEpsilon {
			break
		}

		dx := round(m.m10/m.m00 - float64(clipped.W)*0.5)
		dy := round(m.m01/m.m00 - float64(clipped.H)*0.5)

		nx := min(max(cur.X+dx, 0), width-cur.W)
		ny := min(max(cur.Y+dy, 0), height-cur.H)

		dx = nx - cur.X
		dy = ny - cur.Y
		cur.X, cur.Y = nx, ny

		if float64(dx*dx+dy*dy) < eps {
			break
		}
	}
	return cur, i, nil
}

// CamShift runs MeanShift and then fits a rotated box to the mass inside the
// tolerance-expanded window. It returns the box and the window to seed the
// next frame with. An empty box is returned when the window holds no mass.
func CamShift(prob *image.Gray, w Window, c Criteria) (Box, Window, error) {
	win, _, err := MeanShift(prob, w, c)
	if err != nil {
		return Box{}, w, err
	}
	width, height := prob.Bounds().Dx(), prob.Bounds().Dy()

	win.X -= tolerance
	if win.X < 0 {
		win.X = 0
	}
	win.Y -= tolerance
	if win.Y < 0 {
		win.Y = 0
	}
	win.W += 2 * tolerance
	if win.X+win.W > width {
		win.W = width - win.X
	}
	win.H += 2 * tolerance
	if win.Y+win.H > height {
		win.H = height - win.Y
	}

	m := windowMoments(prob, win)
	if math.Abs(m.m00) < dblEpsilon {
		return Box{}, win, nil
	}

	inv := 1 / m.m00
	xc := round(m.m10*inv + float64(win.X))
	yc := round(m.m01*inv + float64(win.Y))
	a, b, cc := m.mu20*inv, m.mu11*inv, m.mu02*inv

	square := math.Sqrt(4*b*b + (a-cc)*(a-cc))
	theta := math.Atan2(2*b, a-cc+square)

	cs, sn := math.Cos(theta), math.Sin(theta)
	rotateA := max(0, cs*cs*m.mu20+2*cs*sn*m.mu11+sn*sn*m.mu02)
	rotateC := max(0, sn*sn*m.mu20-2*cs*sn*m.mu11+cs*cs*m.mu02)
	length := math.Sqrt(rotateA*inv) * 4
	breadth := math.Sqrt(rotateC*inv) * 4

	if length < breadth {
		length, breadth = breadth, length
		cs, sn = sn, cs
		theta = math.Pi*0.5 - theta
	}

	t0 := max(round(math.Abs(length*cs)), round(math.Abs(breadth*sn))) + 2
	win.W = min(t0, (width-xc)*2)
	t0 = max(round(math.Abs(length*sn)), round(math.Abs(breadth*cs))) + 2
	win.H = min(t0, (height-yc)*2)

	win.X = max(0, xc-win.W/2)
	win.Y = max(0, yc-win.H/2)
	win.W = min(width-win.X, win.W)
	win.H = min(height-win.Y, win.H)

	angle := (math.Pi*0.5 + theta) * 180 / math.Pi
	for angle < 0 {
		angle += 360
	}
	for angle >= 360 {
		angle -= 360
	}
	if angle >= 180 {
		angle -= 180
	}

	box := Box{
		Center: Point2f{X: float64(win.X) + float64(win.W)*0.5, Y: float64(win.Y) + float64(win.H)*0.5},
		Size:   Size2f{W: breadth, H: length},
		Angle:  angle,
	}
	return box, win, nil
}
