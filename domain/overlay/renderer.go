package overlay

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/marker"
)

// Mode is what the overlay currently shows.
type Mode int

const (
	ModeNone Mode = iota
	ModeMarker
	ModeTrack
)

func (m Mode) String() string {
	switch m {
	case ModeMarker:
		return "marker"
	case ModeTrack:
		return "track"
	default:
		return "none"
	}
}

// Style configures strokes.
type Style struct {
	Color string // hex, e.g. "#39FF14"
	Width float64
}

// DefaultStyle is a 4px neon green stroke.
var DefaultStyle = Style{Color: "#39FF14", Width: 4}

// Renderer draws the marker or the tracked box onto a transparent surface
// sized like the displayed video. Every draw starts from a cleared surface.
type Renderer struct {
	mu      sync.Mutex
	style   Style
	surface *image.RGBA
	dc      *gg.Context
	mode    Mode
	version uint64
}

// NewRenderer returns a renderer with a transparent surface of size.
func NewRenderer(size image.Point, style Style) *Renderer {
	if style.Color == "" {
		style.Color = DefaultStyle.Color
	}
	if style.Width <= 0 {
		style.Width = DefaultStyle.Width
	}
	r := &Renderer{style: style}
	r.resizeLocked(size)
	return r
}

func (r *Renderer) resizeLocked(size image.Point) {
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	r.surface = image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	r.dc = gg.NewContextForRGBA(r.surface)
	r.mode = ModeNone
	r.version++
}

// Resize replaces the surface; the overlay is left empty.
func (r *Renderer) Resize(size image.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surface.Bounds().Size() == size {
		return
	}
	r.resizeLocked(size)
}

// SetStyle changes the stroke used by later draws. Zero fields keep the
// current value.
func (r *Renderer) SetStyle(style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if style.Color != "" {
		r.style.Color = style.Color
	}
	if style.Width > 0 {
		r.style.Width = style.Width
	}
}

func (r *Renderer) clearLocked() {
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
	r.mode = ModeNone
	r.version++
}

func (r *Renderer) strokeLocked() {
	r.dc.SetHexColor(r.style.Color)
	r.dc.SetLineWidth(r.style.Width)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.dc.Stroke()
}

// Clear erases the overlay.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

// DrawMarker shows the axis-aligned marker. A reversed drag is drawn normalized.
// A marker without extent on both axes leaves the overlay cleared.
func (r *Renderer) DrawMarker(m marker.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	if !m.Valid() {
		return
	}
	x, y, w, h := m.Window()
	r.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	r.strokeLocked()
	r.mode = ModeMarker
}

// DrawTrack shows the rotated box as a closed polygon through its rounded corners.
// An empty box leaves the overlay cleared.
func (r *Renderer) DrawTrack(b camshift.Box) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	if b.Empty() {
		return
	}
	pts := b.Points()
	r.dc.MoveTo(math.Round(pts[0].X), math.Round(pts[0].Y))
	for _, p := range pts[1:] {
		r.dc.LineTo(math.Round(p.X), math.Round(p.Y))
	}
	r.dc.ClosePath()
	r.strokeLocked()
	r.mode = ModeTrack
}

// Surface returns the overlay image. It is mutated by subsequent draws.
func (r *Renderer) Surface() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface
}

// Mode returns what the overlay currently shows.
func (r *Renderer) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// Version increments on every change; views use it to skip redundant redraws.
func (r *Renderer) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}
