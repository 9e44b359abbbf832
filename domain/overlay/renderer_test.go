package overlay

import (
	"image"
	"testing"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/marker"
)

func alphaAt(img *image.RGBA, x, y int) uint8 { return img.RGBAAt(x, y).A }

func TestRenderer_DrawMarkerStrokesOutline(t *testing.T) {
	r := NewRenderer(image.Pt(20, 20), DefaultStyle)
	r.DrawMarker(marker.Rect{Start: marker.Point{X: 12, Y: 12}, End: marker.Point{X: 2, Y: 2}})
	s := r.Surface()
	edge := s.RGBAAt(2, 7)
	if edge.A < 200 || edge.G < 200 {
		t.Fatalf("left edge should be stroked green, got %+v", edge)
	}
	if alphaAt(s, 7, 7) != 0 {
		t.Fatalf("marker interior should stay transparent")
	}
	if r.Mode() != ModeMarker {
		t.Fatalf("mode=%v", r.Mode())
	}
}

func TestRenderer_CollapsedMarkerDrawsNothing(t *testing.T) {
	r := NewRenderer(image.Pt(10, 10), DefaultStyle)
	r.DrawMarker(marker.Rect{Start: marker.Point{X: 3, Y: 3}, End: marker.Point{X: 3, Y: 3}})
	for i := 3; i < len(r.Surface().Pix); i += 4 {
		if r.Surface().Pix[i] != 0 {
			t.Fatalf("collapsed marker left pixels on the surface")
		}
	}
	if r.Mode() != ModeNone {
		t.Fatalf("mode=%v", r.Mode())
	}
}

func TestRenderer_LineMarkerDrawsNothing(t *testing.T) {
	lines := []marker.Rect{
		{Start: marker.Point{X: 5, Y: 5}, End: marker.Point{X: 5, Y: 15}},
		{Start: marker.Point{X: 5, Y: 5}, End: marker.Point{X: 15, Y: 5}},
	}
	for _, m := range lines {
		r := NewRenderer(image.Pt(20, 20), DefaultStyle)
		r.DrawMarker(m)
		painted := 0
		for i := 3; i < len(r.Surface().Pix); i += 4 {
			if r.Surface().Pix[i] != 0 {
				painted++
			}
		}
		if painted != 0 || r.Mode() != ModeNone {
			t.Fatalf("%+v: painted=%d mode=%v", m, painted, r.Mode())
		}
	}
}

func TestRenderer_DrawTrackReplacesMarker(t *testing.T) {
	r := NewRenderer(image.Pt(20, 20), DefaultStyle)
	r.DrawMarker(marker.Rect{Start: marker.Point{X: 2, Y: 2}, End: marker.Point{X: 12, Y: 12}})
	v := r.Version()
	r.DrawTrack(camshift.Box{Center: camshift.Point2f{X: 15, Y: 15}, Size: camshift.Size2f{W: 4, H: 4}})
	s := r.Surface()
	if alphaAt(s, 2, 7) != 0 {
		t.Fatalf("previous marker should be cleared")
	}
	if alphaAt(s, 13, 15) < 200 {
		t.Fatalf("box edge should be stroked")
	}
	if r.Mode() != ModeTrack || r.Version() <= v {
		t.Fatalf("mode=%v version=%d", r.Mode(), r.Version())
	}
}

func TestRenderer_EmptyBoxClears(t *testing.T) {
	r := NewRenderer(image.Pt(20, 20), DefaultStyle)
	r.DrawTrack(camshift.Box{Center: camshift.Point2f{X: 10, Y: 10}, Size: camshift.Size2f{W: 6, H: 6}})
	r.DrawTrack(camshift.Box{})
	if alphaAt(r.Surface(), 7, 10) != 0 || r.Mode() != ModeNone {
		t.Fatalf("empty box should leave a clear overlay")
	}
}

func TestRenderer_ResizeResetsSurface(t *testing.T) {
	r := NewRenderer(image.Pt(4, 4), Style{})
	r.Resize(image.Pt(8, 6))
	if r.Surface().Bounds() != image.Rect(0, 0, 8, 6) {
		t.Fatalf("bounds=%v", r.Surface().Bounds())
	}
}

func TestFitToWidth(t *testing.T) {
	if got := FitToWidth(image.Pt(1920, 1080), 640); got != image.Pt(640, 360) {
		t.Fatalf("got %v", got)
	}
	if got := FitToWidth(image.Pt(0, 0), 640); got != (image.Point{}) {
		t.Fatalf("unknown size should stay zero, got %v", got)
	}
	if got := FitToWidth(image.Pt(320, 240), 0); got != image.Pt(320, 240) {
		t.Fatalf("zero width keeps intrinsic, got %v", got)
	}
}

func TestRenderer_SetStyleKeepsUnsetFields(t *testing.T) {
	r := NewRenderer(image.Pt(20, 20), DefaultStyle)
	r.SetStyle(Style{Color: "#FF0000"})
	r.DrawMarker(marker.Rect{Start: marker.Point{X: 2, Y: 2}, End: marker.Point{X: 12, Y: 12}})
	edge := r.Surface().RGBAAt(2, 7)
	if edge.R < 200 || edge.G > 50 {
		t.Fatalf("marker should use the new colour, got %+v", edge)
	}
	if alphaAt(r.Surface(), 3, 7) < 200 {
		t.Fatalf("width should be kept at 4")
	}
}
