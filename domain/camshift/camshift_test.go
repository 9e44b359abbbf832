package camshift

import (
	"image"
	"math"
	"testing"
)

func probWith(w, h int, blob image.Rectangle) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for y := blob.Min.Y; y < blob.Max.Y; y++ {
		for x := blob.Min.X; x < blob.Max.X; x++ {
			g.Pix[g.PixOffset(x, y)] = 255
		}
	}
	return g
}

func TestCamShift_SquareBlobStaysCentered(t *testing.T) {
	prob := probWith(10, 10, image.Rect(2, 2, 6, 6))
	win := Window{X: 2, Y: 2, W: 4, H: 4}
	for frame := 0; frame < 5; frame++ {
		box, next, err := CamShift(prob, win, DefaultCriteria)
		if err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if math.Abs(box.Center.X-4) > 1 || math.Abs(box.Center.Y-4) > 1 {
			t.Fatalf("frame %d: center drifted to (%.2f,%.2f)", frame, box.Center.X, box.Center.Y)
		}
		if next != (Window{X: 1, Y: 1, W: 6, H: 6}) {
			t.Fatalf("frame %d: unexpected window %+v", frame, next)
		}
		win = next
	}
}

func TestCamShift_EmptyProbabilityYieldsEmptyBox(t *testing.T) {
	prob := image.NewGray(image.Rect(0, 0, 16, 16))
	box, _, err := CamShift(prob, Window{X: 4, Y: 4, W: 4, H: 4}, DefaultCriteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !box.Empty() {
		t.Fatalf("expected empty box, got %+v", box)
	}
}

func TestCamShift_DegenerateWindow(t *testing.T) {
	prob := image.NewGray(image.Rect(0, 0, 8, 8))
	if _, _, err := CamShift(prob, Window{X: 1, Y: 1, W: 0, H: 3}, DefaultCriteria); err != ErrDegenerateWindow {
		t.Fatalf("expected ErrDegenerateWindow, got %v", err)
	}
}

func TestCamShift_HorizontalBarOrientation(t *testing.T) {
	prob := probWith(60, 40, image.Rect(10, 18, 40, 22))
	box, win, err := CamShift(prob, Window{X: 10, Y: 18, W: 30, H: 4}, DefaultCriteria)
	if err != nil {
		t.Fatalf("camshift: %v", err)
	}
	if math.Abs(box.Angle-90) > 1e-6 {
		t.Fatalf("horizontal bar expected angle 90, got %v", box.Angle)
	}
	if box.Size.H <= box.Size.W {
		t.Fatalf("length should exceed breadth: %+v", box.Size)
	}
	if win.W <= win.H {
		t.Fatalf("window should be wider than tall: %+v", win)
	}
}

func TestCamShift_VerticalBarOrientation(t *testing.T) {
	prob := probWith(40, 60, image.Rect(18, 10, 22, 40))
	box, _, err := CamShift(prob, Window{X: 18, Y: 10, W: 4, H: 30}, DefaultCriteria)
	if err != nil {
		t.Fatalf("camshift: %v", err)
	}
	if d := math.Min(box.Angle, 180-box.Angle); d > 1e-6 {
		t.Fatalf("vertical bar expected angle 0 (mod 180), got %v", box.Angle)
	}
}

func TestMeanShift_MovesTowardMass(t *testing.T) {
	prob := probWith(20, 20, image.Rect(12, 12, 16, 16))
	win, _, err := MeanShift(prob, Window{X: 8, Y: 8, W: 6, H: 6}, DefaultCriteria)
	if err != nil {
		t.Fatalf("meanshift: %v", err)
	}
	if !image.Rect(12, 12, 16, 16).In(win.Rect()) {
		t.Fatalf("window %+v should cover the blob", win)
	}
}

func TestBox_PointsAxisAligned(t *testing.T) {
	b := Box{Center: Point2f{10, 10}, Size: Size2f{W: 4, H: 8}, Angle: 0}
	pts := b.Points()
	want := [4]Point2f{{8, 14}, {8, 6}, {12, 6}, {12, 14}}
	for i := range pts {
		if math.Abs(pts[i].X-want[i].X) > 1e-9 || math.Abs(pts[i].Y-want[i].Y) > 1e-9 {
			t.Fatalf("point %d = %+v want %+v", i, pts[i], want[i])
		}
	}
}
